package biz

import (
	"context"
	"testing"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adultItem(amount int64) *PricedItem {
	return &PricedItem{PlanID: constants.ChargeKindAdultTopup, Category: constants.CategoryAdult, AmountPence: amount}
}

func juniorItem(amount int64) *PricedItem {
	return &PricedItem{PlanID: constants.ChargeKindJuniorBundle, Category: constants.CategoryJunior, AmountPence: amount}
}

func TestApplyPricingRulesNoRules(t *testing.T) {
	items := []*PricedItem{adultItem(11500), juniorItem(15600)}

	result, err := ApplyPricingRules(context.Background(), items, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(27100), result.BaseTotalPence)
	assert.Equal(t, int64(27100), result.FinalTotalPence)
	assert.Zero(t, result.AdjustmentPence)
	assert.Empty(t, result.Applied)
}

func TestApplyPricingRulesHouseholdCap(t *testing.T) {
	items := []*PricedItem{adultItem(11500), adultItem(11500), juniorItem(24000)}
	rules := []*PricingRule{
		{RuleID: 1, Name: "family cap", RuleType: constants.RuleTypeHouseholdCap, CapAmountPence: 30000, Active: true},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	require.NoError(t, err)
	assert.Equal(t, int64(47000), result.BaseTotalPence)
	assert.Equal(t, int64(30000), result.FinalTotalPence)
	assert.Equal(t, int64(-17000), result.AdjustmentPence)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, int64(-17000), result.Applied[0].ImpactPence)
}

func TestApplyPricingRulesCapNotEngagedBelowThreshold(t *testing.T) {
	// 多人折扣先把总价降到 18000, 低于 20000 的封顶线, 封顶不触发
	items := []*PricedItem{adultItem(10000), adultItem(10000)}
	rules := []*PricingRule{
		{RuleID: 1, Name: "cap", RuleType: constants.RuleTypeHouseholdCap, CapAmountPence: 20000, Active: true, Priority: 10},
		{RuleID: 2, Name: "second member discount", RuleType: constants.RuleTypeMultiMemberDiscount,
			DiscountAmountPence: 2000, MinQuantity: 2, Active: true, Priority: 1},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	require.NoError(t, err)
	assert.Equal(t, int64(18000), result.FinalTotalPence)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, uint64(2), result.Applied[0].RuleID)
}

func TestApplyPricingRulesDiscountsStack(t *testing.T) {
	items := []*PricedItem{adultItem(10000), adultItem(10000), adultItem(10000)}
	rules := []*PricingRule{
		{RuleID: 1, Name: "fixed discount", RuleType: constants.RuleTypeMultiMemberDiscount,
			DiscountAmountPence: 1000, MinQuantity: 2, Active: true, Priority: 1},
		{RuleID: 2, Name: "percent discount", RuleType: constants.RuleTypeMultiMemberDiscount,
			DiscountPercent: 10, MinQuantity: 3, Active: true, Priority: 2},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	require.NoError(t, err)
	// 固定折扣: 第 2 件起每件 1000, 共 2000
	// 百分比折扣: 第 3 件起 1 件, 作用在最便宜的 1 件上, 1000
	assert.Equal(t, int64(30000-2000-1000), result.FinalTotalPence)
	assert.Len(t, result.Applied, 2)
}

func TestApplyPricingRulesPercentDiscountCheapestItems(t *testing.T) {
	items := []*PricedItem{adultItem(11500), adultItem(8000), adultItem(5000)}
	rules := []*PricingRule{
		{RuleID: 1, Name: "multi member 50%", RuleType: constants.RuleTypeMultiMemberDiscount,
			DiscountPercent: 50, MinQuantity: 2, Active: true},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	require.NoError(t, err)
	// 可折扣 2 件, 取最便宜的 5000 和 8000 各打五折
	assert.Equal(t, int64(24500-2500-4000), result.FinalTotalPence)
}

func TestApplyPricingRulesPlanFilter(t *testing.T) {
	items := []*PricedItem{adultItem(10000), adultItem(10000), juniorItem(24000)}
	rules := []*PricingRule{
		{RuleID: 1, Name: "adult only discount", RuleType: constants.RuleTypeMultiMemberDiscount,
			PlanIDs:             []string{constants.ChargeKindAdultTopup},
			DiscountAmountPence: 1500, MinQuantity: 2, Active: true},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	require.NoError(t, err)
	// 少年项不在白名单内, 仅成人 2 件中的第 2 件享受折扣
	assert.Equal(t, int64(44000-1500), result.FinalTotalPence)
}

func TestApplyPricingRulesBundleShortCircuits(t *testing.T) {
	items := []*PricedItem{adultItem(11500), adultItem(8000), juniorItem(15600)}
	rules := []*PricingRule{
		{RuleID: 3, Name: "late bundle", RuleType: constants.RuleTypeBundle,
			BundlePricePence: 29000, RequiredAdults: 2, AnyJunior: true, Active: true, Priority: 5, Exclusive: true},
		{RuleID: 1, Name: "family bundle", RuleType: constants.RuleTypeBundle,
			BundlePricePence: 30000, RequiredAdults: 2, AnyJunior: true, Active: true, Priority: 1, Exclusive: true},
		{RuleID: 2, Name: "cap", RuleType: constants.RuleTypeHouseholdCap, CapAmountPence: 25000, Active: true, Priority: 2},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	require.NoError(t, err)
	// 优先级最小的捆绑规则生效, 即便更低价的捆绑和封顶规则都存在也被短路
	assert.Equal(t, int64(30000), result.FinalTotalPence)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, uint64(1), result.Applied[0].RuleID)
	assert.Equal(t, int64(30000-35100), result.Applied[0].ImpactPence)
}

func TestApplyPricingRulesBundleRequirementsNotMet(t *testing.T) {
	items := []*PricedItem{adultItem(11500)}
	rules := []*PricingRule{
		{RuleID: 1, Name: "family bundle", RuleType: constants.RuleTypeBundle,
			BundlePricePence: 30000, RequiredAdults: 2, AnyJunior: true, Active: true},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	require.NoError(t, err)
	assert.Equal(t, int64(11500), result.FinalTotalPence)
	assert.Empty(t, result.Applied)
}

func TestApplyPricingRulesMissingBundlePrice(t *testing.T) {
	items := []*PricedItem{adultItem(11500), adultItem(8000), juniorItem(15600)}
	rules := []*PricingRule{
		{RuleID: 9, Name: "misconfigured bundle", RuleType: constants.RuleTypeBundle,
			BundlePricePence: 0, RequiredAdults: 2, AnyJunior: true, Active: true, Priority: 1},
		{RuleID: 2, Name: "cap", RuleType: constants.RuleTypeHouseholdCap, CapAmountPence: 20000, Active: true, Priority: 2},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	// 配置错误要上报而不是静默跳过, 但剩余规则照常执行, 结果仍然可用
	require.Error(t, err)
	var missing *MissingBundlePriceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, uint64(9), missing.RuleID)

	require.NotNil(t, result)
	assert.Equal(t, int64(20000), result.FinalTotalPence)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, uint64(2), result.Applied[0].RuleID)
}

func TestApplyPricingRulesInactiveIgnored(t *testing.T) {
	items := []*PricedItem{adultItem(11500), adultItem(8000)}
	rules := []*PricingRule{
		{RuleID: 1, Name: "disabled cap", RuleType: constants.RuleTypeHouseholdCap, CapAmountPence: 1000, Active: false},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	require.NoError(t, err)
	assert.Equal(t, int64(19500), result.FinalTotalPence)
	assert.Empty(t, result.Applied)
}

func TestApplyPricingRulesTotalNeverNegative(t *testing.T) {
	items := []*PricedItem{adultItem(1000), adultItem(1000)}
	rules := []*PricingRule{
		{RuleID: 1, Name: "oversized discount", RuleType: constants.RuleTypeMultiMemberDiscount,
			DiscountAmountPence: 5000, MinQuantity: 2, Active: true},
	}

	result, err := ApplyPricingRules(context.Background(), items, rules)

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.FinalTotalPence)
	assert.Equal(t, int64(-2000), result.AdjustmentPence)
}

func TestPricingRuleValidate(t *testing.T) {
	tests := []struct {
		name string
		rule PricingRule
		want bool
	}{
		{"valid cap", PricingRule{RuleType: constants.RuleTypeHouseholdCap, CapAmountPence: 20000}, true},
		{"negative cap", PricingRule{RuleType: constants.RuleTypeHouseholdCap, CapAmountPence: -1}, false},
		{"valid discount", PricingRule{RuleType: constants.RuleTypeMultiMemberDiscount, DiscountPercent: 10}, true},
		{"percent over 100", PricingRule{RuleType: constants.RuleTypeMultiMemberDiscount, DiscountPercent: 101}, false},
		{"valid bundle", PricingRule{RuleType: constants.RuleTypeBundle, BundlePricePence: 30000, RequiredAdults: 2}, true},
		{"unknown type", PricingRule{RuleType: "loyalty"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Validate())
		})
	}
}
