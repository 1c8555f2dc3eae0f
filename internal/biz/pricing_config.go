package biz

import (
	"context"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
	"github.com/kerry-png/clubstand-platform-sub000/internal/errors"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// PricingConfig 俱乐部会费定价配置 (按俱乐部 + 赛季类型生效)
// 所有金额字段均为非负整数便士, 不允许小数
type PricingConfig struct {
	ClubID     string
	SeasonType string // annual, summer, winter
	// PricingModel 定价模式: bundled / flat / family_cap(预留)
	PricingModel string

	// 年龄分界参数
	CutoffMonth        int // 分界日期月份
	CutoffDay          int // 分界日期日
	JuniorMaxAge       int // 少年会员最大年龄
	AdultMinAge        int // 成人会员最小年龄
	AdultBundleMinAge  int // 参与成人捆绑的最小年龄(同时区分 full/intermediate 档)
	MinAdultsForBundle int // 成人捆绑所需的最少人数
	// RequireJuniorForBundle 成人捆绑是否要求家庭中至少有一名少年会员
	RequireJuniorForBundle bool
	// EnableAdultBundle 是否启用成人捆绑价
	EnableAdultBundle bool

	// 价格表(便士)
	JuniorSinglePence       int64
	JuniorMultiPence        int64
	MaleFullPence           int64
	MaleIntermediatePence   int64
	FemaleFullPence         int64
	FemaleIntermediatePence int64
	SocialAdultPence        int64
	AdultBundlePence        int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultPricingConfig 默认定价配置
// 俱乐部未配置时的显式回退值, 不再散落在各调用点
func DefaultPricingConfig() *PricingConfig {
	return &PricingConfig{
		SeasonType:              "annual",
		PricingModel:            constants.PricingModelBundled,
		CutoffMonth:             9,
		CutoffDay:               1,
		JuniorMaxAge:            17,
		AdultMinAge:             18,
		AdultBundleMinAge:       22,
		MinAdultsForBundle:      2,
		RequireJuniorForBundle:  true,
		EnableAdultBundle:       true,
		JuniorSinglePence:       15600,
		JuniorMultiPence:        24000,
		MaleFullPence:           11500,
		MaleIntermediatePence:   7500,
		FemaleFullPence:         8000,
		FemaleIntermediatePence: 5500,
		SocialAdultPence:        3000,
		AdultBundlePence:        15000,
	}
}

// Validate 校验配置
// 负数价格、未知定价模式等必须在配置写入时拒绝, 定价引擎本身不做校验
func (c *PricingConfig) Validate() bool {
	if c.CutoffMonth < 1 || c.CutoffMonth > 12 || c.CutoffDay < 1 || c.CutoffDay > 31 {
		return false
	}
	switch c.PricingModel {
	case constants.PricingModelBundled, constants.PricingModelFlat, constants.PricingModelFamilyCap:
	default:
		return false
	}
	prices := []int64{
		c.JuniorSinglePence, c.JuniorMultiPence,
		c.MaleFullPence, c.MaleIntermediatePence,
		c.FemaleFullPence, c.FemaleIntermediatePence,
		c.SocialAdultPence, c.AdultBundlePence,
	}
	for _, p := range prices {
		if p < 0 {
			return false
		}
	}
	return c.JuniorMaxAge >= 0 && c.AdultMinAge >= 0 && c.AdultBundleMinAge >= 0 && c.MinAdultsForBundle >= 0
}

// PricingConfigRepo 定价配置仓库接口
type PricingConfigRepo interface {
	// GetPricingConfig 获取俱乐部定价配置, 不存在时返回 (nil, nil)
	GetPricingConfig(ctx context.Context, clubID, seasonType string) (*PricingConfig, error)
	SavePricingConfig(ctx context.Context, cfg *PricingConfig) error
}

// ConfigUsecase 定价配置与定价规则管理
type ConfigUsecase struct {
	configRepo PricingConfigRepo
	ruleRepo   PricingRuleRepo
	log        *log.Helper
}

// NewConfigUsecase 创建定价配置用例
func NewConfigUsecase(configRepo PricingConfigRepo, ruleRepo PricingRuleRepo, logger log.Logger) *ConfigUsecase {
	return &ConfigUsecase{
		configRepo: configRepo,
		ruleRepo:   ruleRepo,
		log:        log.NewHelper(logger),
	}
}

// GetPricingConfig 获取俱乐部定价配置, 未配置时返回默认配置
func (uc *ConfigUsecase) GetPricingConfig(ctx context.Context, clubID, seasonType string) (*PricingConfig, error) {
	if seasonType == "" {
		seasonType = "annual"
	}
	cfg, err := uc.configRepo.GetPricingConfig(ctx, clubID, seasonType)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultPricingConfig()
		cfg.ClubID = clubID
		cfg.SeasonType = seasonType
	}
	return cfg, nil
}

// SavePricingConfig 保存俱乐部定价配置
func (uc *ConfigUsecase) SavePricingConfig(ctx context.Context, cfg *PricingConfig) error {
	if !cfg.Validate() {
		return pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodePricingConfigInvalid)
	}
	if err := uc.configRepo.SavePricingConfig(ctx, cfg); err != nil {
		uc.log.Errorf("Failed to save pricing config for club %s: %v", cfg.ClubID, err)
		return err
	}
	return nil
}

// ListRules 列出俱乐部全部定价规则
func (uc *ConfigUsecase) ListRules(ctx context.Context, clubID string) ([]*PricingRule, error) {
	return uc.ruleRepo.ListRules(ctx, clubID)
}

// CreateRule 创建定价规则
func (uc *ConfigUsecase) CreateRule(ctx context.Context, rule *PricingRule) error {
	if !rule.Validate() {
		return pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodePricingRuleInvalid)
	}
	if err := uc.ruleRepo.CreateRule(ctx, rule); err != nil {
		uc.log.Errorf("Failed to create pricing rule for club %s: %v", rule.ClubID, err)
		return err
	}
	return nil
}

// UpdateRule 更新定价规则
func (uc *ConfigUsecase) UpdateRule(ctx context.Context, rule *PricingRule) error {
	if !rule.Validate() {
		return pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodePricingRuleInvalid)
	}
	existing, err := uc.ruleRepo.GetRule(ctx, rule.RuleID)
	if err != nil {
		return err
	}
	if existing == nil {
		return pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodePricingRuleNotFound)
	}
	// 保留原属俱乐部
	rule.ClubID = existing.ClubID
	if err := uc.ruleRepo.UpdateRule(ctx, rule); err != nil {
		uc.log.Errorf("Failed to update pricing rule %d: %v", rule.RuleID, err)
		return err
	}
	return nil
}

// DeleteRule 删除定价规则
func (uc *ConfigUsecase) DeleteRule(ctx context.Context, ruleID uint64) error {
	existing, err := uc.ruleRepo.GetRule(ctx, ruleID)
	if err != nil {
		return err
	}
	if existing == nil {
		return pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodePricingRuleNotFound)
	}
	return uc.ruleRepo.DeleteRule(ctx, ruleID)
}
