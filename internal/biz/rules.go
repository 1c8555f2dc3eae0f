package biz

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
)

// PricingRule 俱乐部自定义定价规则 (通用规则引擎)
type PricingRule struct {
	RuleID uint64
	ClubID string
	Name   string
	// RuleType household_cap / multi_member_discount / bundle
	RuleType string
	// PlanIDs 适用的收费项白名单, 为空表示全部适用
	PlanIDs     []string
	MinQuantity int

	// 折扣/封顶类参数(三者取其一)
	CapAmountPence      int64
	DiscountAmountPence int64
	DiscountPercent     int

	// 捆绑类参数
	BundlePricePence int64
	RequiredAdults   int
	RequiredJuniors  int
	AnyJunior        bool

	// Priority 数字越小越先执行
	Priority int
	Active   bool
	// Exclusive 标记捆绑规则与其他规则互斥, 仅供后台展示
	// 引擎按固定顺序执行, 捆绑命中后直接短路, 不读取此字段
	Exclusive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate 校验规则参数
func (r *PricingRule) Validate() bool {
	switch r.RuleType {
	case constants.RuleTypeHouseholdCap:
		return r.CapAmountPence >= 0
	case constants.RuleTypeMultiMemberDiscount:
		return r.DiscountAmountPence >= 0 && r.DiscountPercent >= 0 && r.DiscountPercent <= 100
	case constants.RuleTypeBundle:
		return r.BundlePricePence >= 0 && r.RequiredAdults >= 0 && r.RequiredJuniors >= 0
	}
	return false
}

// PricingRuleRepo 定价规则仓库接口
type PricingRuleRepo interface {
	// ListActiveRules 按优先级升序返回启用的规则
	ListActiveRules(ctx context.Context, clubID string) ([]*PricingRule, error)
	ListRules(ctx context.Context, clubID string) ([]*PricingRule, error)
	GetRule(ctx context.Context, ruleID uint64) (*PricingRule, error)
	CreateRule(ctx context.Context, rule *PricingRule) error
	UpdateRule(ctx context.Context, rule *PricingRule) error
	DeleteRule(ctx context.Context, ruleID uint64) error
}

// PricedItem 规则引擎的输入: 已计价的收费项
type PricedItem struct {
	PlanID      string
	Category    string // adult, junior, social
	AmountPence int64
}

// RuleApplication 单条规则的生效记录, 用于审计与后台展示
type RuleApplication struct {
	RuleID      uint64
	RuleType    string
	Name        string
	ImpactPence int64 // 对总价的影响, 负数表示减价
}

// RuleResult 规则引擎输出
type RuleResult struct {
	BaseTotalPence  int64
	FinalTotalPence int64
	AdjustmentPence int64
	Applied         []*RuleApplication
}

// MissingBundlePriceError 捆绑规则匹配成功但未配置正数价格
// 不再静默跳过, 由调用方决定硬失败还是记日志
type MissingBundlePriceError struct {
	RuleID uint64
	Name   string
}

func (e *MissingBundlePriceError) Error() string {
	return fmt.Sprintf("bundle rule %d (%s) matched but has no positive bundle price configured", e.RuleID, e.Name)
}

// ApplyPricingRules 对已计价收费项执行通用定价规则
// 处理顺序固定: 捆绑规则(独占, 短路) -> 多人折扣(可叠加) -> 家庭封顶
// 返回的 RuleResult 始终可用; 捆绑规则缺少价格时同时返回 *MissingBundlePriceError
func ApplyPricingRules(ctx context.Context, items []*PricedItem, rules []*PricingRule) (*RuleResult, error) {
	_ = ctx

	var base int64
	adults, juniors := 0, 0
	for _, it := range items {
		base += it.AmountPence
		switch it.Category {
		case constants.CategoryAdult:
			adults++
		case constants.CategoryJunior:
			juniors++
		}
	}

	result := &RuleResult{BaseTotalPence: base, FinalTotalPence: base}
	var missingPrice *MissingBundlePriceError

	active := make([]*PricingRule, 0, len(rules))
	for _, r := range rules {
		if r.Active {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Priority < active[j].Priority })

	// 1. 捆绑规则: 按优先级取第一条匹配的, 独占且短路后续所有规则
	for _, r := range active {
		if r.RuleType != constants.RuleTypeBundle {
			continue
		}
		if r.RequiredAdults > 0 && adults < r.RequiredAdults {
			continue
		}
		if r.AnyJunior {
			if juniors < 1 {
				continue
			}
		} else if r.RequiredJuniors > 0 && juniors < r.RequiredJuniors {
			continue
		}
		if r.BundlePricePence <= 0 {
			if missingPrice == nil {
				missingPrice = &MissingBundlePriceError{RuleID: r.RuleID, Name: r.Name}
			}
			continue
		}
		result.FinalTotalPence = r.BundlePricePence
		result.AdjustmentPence = result.FinalTotalPence - base
		result.Applied = append(result.Applied, &RuleApplication{
			RuleID:      r.RuleID,
			RuleType:    r.RuleType,
			Name:        r.Name,
			ImpactPence: result.AdjustmentPence,
		})
		return result, errOrNil(missingPrice)
	}

	running := base

	// 2. 多人折扣: 可叠加
	for _, r := range active {
		if r.RuleType != constants.RuleTypeMultiMemberDiscount {
			continue
		}
		eligible := filterByPlans(items, r.PlanIDs)
		fromN := r.MinQuantity
		if fromN < 2 {
			fromN = 2
		}
		discountable := len(eligible) - (fromN - 1)
		if discountable <= 0 {
			continue
		}

		var impact int64
		if r.DiscountAmountPence > 0 {
			impact = r.DiscountAmountPence * int64(discountable)
		} else if r.DiscountPercent > 0 {
			// 百分比折扣作用在最便宜的 N 件上, 保护高价项
			sorted := make([]*PricedItem, len(eligible))
			copy(sorted, eligible)
			sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].AmountPence < sorted[j].AmountPence })
			for _, it := range sorted[:discountable] {
				impact += it.AmountPence * int64(r.DiscountPercent) / 100
			}
		}
		if impact == 0 {
			continue
		}

		running -= impact
		result.Applied = append(result.Applied, &RuleApplication{
			RuleID:      r.RuleID,
			RuleType:    r.RuleType,
			Name:        r.Name,
			ImpactPence: -impact,
		})
	}

	// 3. 家庭封顶: 最后执行, 只向下收紧
	for _, r := range active {
		if r.RuleType != constants.RuleTypeHouseholdCap {
			continue
		}
		if running > r.CapAmountPence {
			impact := r.CapAmountPence - running
			running = r.CapAmountPence
			result.Applied = append(result.Applied, &RuleApplication{
				RuleID:      r.RuleID,
				RuleType:    r.RuleType,
				Name:        r.Name,
				ImpactPence: impact,
			})
		}
	}

	// 总价不允许为负
	if running < 0 {
		running = 0
	}
	result.FinalTotalPence = running
	result.AdjustmentPence = running - base
	return result, errOrNil(missingPrice)
}

func filterByPlans(items []*PricedItem, planIDs []string) []*PricedItem {
	if len(planIDs) == 0 {
		return items
	}
	allowed := make(map[string]bool, len(planIDs))
	for _, id := range planIDs {
		allowed[id] = true
	}
	var out []*PricedItem
	for _, it := range items {
		if allowed[it.PlanID] {
			out = append(out, it)
		}
	}
	return out
}

// errOrNil 避免带 nil 指针的非空 error 接口
func errOrNil(e *MissingBundlePriceError) error {
	if e == nil {
		return nil
	}
	return e
}
