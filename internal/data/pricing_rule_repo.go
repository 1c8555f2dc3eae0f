package data

import (
	"context"
	"errors"
	"strings"

	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// pricingRuleRepo 定价规则仓库实现
type pricingRuleRepo struct {
	data *Data
	log  *log.Helper
}

// NewPricingRuleRepo 创建定价规则仓库
func NewPricingRuleRepo(data *Data, logger log.Logger) biz.PricingRuleRepo {
	return &pricingRuleRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// ListActiveRules 按优先级升序返回启用的规则
func (r *pricingRuleRepo) ListActiveRules(ctx context.Context, clubID string) ([]*biz.PricingRule, error) {
	var models []model.PricingRule
	if err := r.data.DB(ctx).
		Where("club_id = ? AND active = ?", clubID, true).
		Order("priority ASC, rule_id ASC").
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list active rules for club %s: %v", clubID, err)
		return nil, err
	}
	return toBizRules(models), nil
}

// ListRules 列出俱乐部全部规则
func (r *pricingRuleRepo) ListRules(ctx context.Context, clubID string) ([]*biz.PricingRule, error) {
	var models []model.PricingRule
	if err := r.data.DB(ctx).
		Where("club_id = ?", clubID).
		Order("priority ASC, rule_id ASC").
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list rules for club %s: %v", clubID, err)
		return nil, err
	}
	return toBizRules(models), nil
}

// GetRule 根据ID获取规则, 不存在时返回 (nil, nil)
func (r *pricingRuleRepo) GetRule(ctx context.Context, ruleID uint64) (*biz.PricingRule, error) {
	var m model.PricingRule
	err := r.data.DB(ctx).Where("rule_id = ?", ruleID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to get rule %d: %v", ruleID, err)
		return nil, err
	}
	return toBizRule(&m), nil
}

// CreateRule 创建规则
func (r *pricingRuleRepo) CreateRule(ctx context.Context, rule *biz.PricingRule) error {
	m := toModelRule(rule)
	if err := r.data.DB(ctx).Create(m).Error; err != nil {
		r.log.Errorf("Failed to create rule: %v", err)
		return err
	}
	rule.RuleID = m.RuleID
	return nil
}

// UpdateRule 更新规则
func (r *pricingRuleRepo) UpdateRule(ctx context.Context, rule *biz.PricingRule) error {
	m := toModelRule(rule)
	if err := r.data.DB(ctx).
		Model(&model.PricingRule{}).
		Where("rule_id = ?", rule.RuleID).
		Select("*").
		Omit("rule_id", "created_at").
		Updates(m).Error; err != nil {
		r.log.Errorf("Failed to update rule %d: %v", rule.RuleID, err)
		return err
	}
	return nil
}

// DeleteRule 删除规则
func (r *pricingRuleRepo) DeleteRule(ctx context.Context, ruleID uint64) error {
	if err := r.data.DB(ctx).Delete(&model.PricingRule{}, "rule_id = ?", ruleID).Error; err != nil {
		r.log.Errorf("Failed to delete rule %d: %v", ruleID, err)
		return err
	}
	return nil
}

func toBizRules(models []model.PricingRule) []*biz.PricingRule {
	rules := make([]*biz.PricingRule, len(models))
	for i, m := range models {
		rules[i] = toBizRule(&m)
	}
	return rules
}

func toBizRule(m *model.PricingRule) *biz.PricingRule {
	var planIDs []string
	if m.PlanIDs != "" {
		planIDs = strings.Split(m.PlanIDs, ",")
	}
	return &biz.PricingRule{
		RuleID:              m.RuleID,
		ClubID:              m.ClubID,
		Name:                m.Name,
		RuleType:            m.RuleType,
		PlanIDs:             planIDs,
		MinQuantity:         m.MinQuantity,
		CapAmountPence:      m.CapAmountPence,
		DiscountAmountPence: m.DiscountAmountPence,
		DiscountPercent:     m.DiscountPercent,
		BundlePricePence:    m.BundlePricePence,
		RequiredAdults:      m.RequiredAdults,
		RequiredJuniors:     m.RequiredJuniors,
		AnyJunior:           m.AnyJunior,
		Priority:            m.Priority,
		Active:              m.Active,
		Exclusive:           m.Exclusive,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toModelRule(rule *biz.PricingRule) *model.PricingRule {
	return &model.PricingRule{
		RuleID:              rule.RuleID,
		ClubID:              rule.ClubID,
		Name:                rule.Name,
		RuleType:            rule.RuleType,
		PlanIDs:             strings.Join(rule.PlanIDs, ","),
		MinQuantity:         rule.MinQuantity,
		CapAmountPence:      rule.CapAmountPence,
		DiscountAmountPence: rule.DiscountAmountPence,
		DiscountPercent:     rule.DiscountPercent,
		BundlePricePence:    rule.BundlePricePence,
		RequiredAdults:      rule.RequiredAdults,
		RequiredJuniors:     rule.RequiredJuniors,
		AnyJunior:           rule.AnyJunior,
		Priority:            rule.Priority,
		Active:              rule.Active,
		Exclusive:           rule.Exclusive,
	}
}
