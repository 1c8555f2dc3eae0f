package biz

import (
	"context"
	"testing"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"

	"pgregory.net/rapid"
)

// genMember 随机生成一名家庭成员, 少量成员没有出生日期
func genMember(t *rapid.T, id uint64) *Member {
	m := &Member{
		MemberID:    id,
		HouseholdID: 1,
		Name:        "member",
		Gender: rapid.SampledFrom([]string{
			constants.GenderMale, constants.GenderFemale, constants.GenderOther, constants.GenderUnknown,
		}).Draw(t, "gender"),
		Role: rapid.SampledFrom([]string{
			constants.RolePlaying, constants.RoleSupporter, constants.RoleCoach, constants.RoleOther,
		}).Draw(t, "role"),
	}
	if rapid.IntRange(0, 9).Draw(t, "has_dob") > 0 {
		year := rapid.IntRange(1940, 2025).Draw(t, "birth_year")
		month := time.Month(rapid.IntRange(1, 12).Draw(t, "birth_month"))
		day := rapid.IntRange(1, 28).Draw(t, "birth_day")
		m.DateOfBirth = dob(year, month, day)
	}
	return m
}

func genHousehold(t *rapid.T) []*Member {
	n := rapid.IntRange(0, 8).Draw(t, "household_size")
	members := make([]*Member, n)
	for i := range members {
		members[i] = genMember(t, uint64(i+1))
	}
	return members
}

func TestPricingTotalMatchesCharges(t *testing.T) {
	cfg := DefaultPricingConfig()
	rapid.Check(t, func(rt *rapid.T) {
		members := genHousehold(rt)
		result := bundledStrategy{}.Price(members, cfg, testSeasonYear)

		if result.TotalPence < 0 {
			rt.Fatalf("total must not be negative, got %d", result.TotalPence)
		}
		if got := chargesTotal(result.Charges); got != result.TotalPence {
			rt.Fatalf("charges sum %d does not match total %d", got, result.TotalPence)
		}
		if len(result.Members) != len(members) {
			rt.Fatalf("expected %d member prices, got %d", len(members), len(result.Members))
		}
	})
}

func TestPricingBundleNeverIncreasesTotal(t *testing.T) {
	cfg := DefaultPricingConfig()
	noBundle := DefaultPricingConfig()
	noBundle.EnableAdultBundle = false

	rapid.Check(t, func(rt *rapid.T) {
		members := genHousehold(rt)
		withBundle := bundledStrategy{}.Price(members, cfg, testSeasonYear)
		withoutBundle := bundledStrategy{}.Price(members, noBundle, testSeasonYear)

		// 捆绑只在严格更便宜时采用, 总价不可能因此升高
		if withBundle.TotalPence > withoutBundle.TotalPence {
			rt.Fatalf("bundle raised total from %d to %d", withoutBundle.TotalPence, withBundle.TotalPence)
		}
		if withBundle.Summary.AdultBundleApplied && withBundle.TotalPence >= withoutBundle.TotalPence {
			rt.Fatalf("bundle applied without strict saving: %d vs %d", withBundle.TotalPence, withoutBundle.TotalPence)
		}
	})
}

// standalonePrice 成员单独计价时的价格 (不含任何捆绑)
func standalonePrice(m *Member, cfg *PricingConfig) int64 {
	cl := ClassifyMember(m, cfg, CutoffDate(cfg, testSeasonYear))
	switch cl.Category {
	case constants.CategoryJunior:
		return cfg.JuniorSinglePence
	case constants.CategoryAdult:
		return BandPrice(cl.Band, cfg)
	case constants.CategorySocial:
		return cfg.SocialAdultPence
	}
	return 0
}

func TestPricingMonotonicAddingMember(t *testing.T) {
	cfg := DefaultPricingConfig()
	noBundle := DefaultPricingConfig()
	noBundle.EnableAdultBundle = false

	rapid.Check(t, func(rt *rapid.T) {
		members := genHousehold(rt)
		extra := genMember(rt, uint64(len(members)+1))
		grown := append(append([]*Member{}, members...), extra)

		// 捆绑关闭时, 新增成员永远不会让总价下降
		before := bundledStrategy{}.Price(members, noBundle, testSeasonYear)
		after := bundledStrategy{}.Price(grown, noBundle, testSeasonYear)
		if after.TotalPence < before.TotalPence {
			rt.Fatalf("adding member dropped pre-bundle total from %d to %d", before.TotalPence, after.TotalPence)
		}

		// 捆绑开启时, 总价涨幅不会超过新成员的单独价格
		before = bundledStrategy{}.Price(members, cfg, testSeasonYear)
		after = bundledStrategy{}.Price(grown, cfg, testSeasonYear)
		if delta, limit := after.TotalPence-before.TotalPence, standalonePrice(extra, cfg); delta > limit {
			rt.Fatalf("adding member raised total by %d, more than its standalone price %d", delta, limit)
		}
	})
}

func TestPricingUnclassifiedNeverCharged(t *testing.T) {
	cfg := DefaultPricingConfig()
	rapid.Check(t, func(rt *rapid.T) {
		members := genHousehold(rt)
		result := bundledStrategy{}.Price(members, cfg, testSeasonYear)

		charged := map[uint64]bool{}
		for _, ch := range result.Charges {
			if ch.MemberID != nil {
				charged[*ch.MemberID] = true
			}
		}
		for _, mp := range result.Members {
			if mp.Category != constants.CategoryUnclassified {
				continue
			}
			if mp.PricePence != 0 {
				rt.Fatalf("unclassified member %d has price %d", mp.MemberID, mp.PricePence)
			}
			if charged[mp.MemberID] {
				rt.Fatalf("unclassified member %d appears in charges", mp.MemberID)
			}
		}
	})
}

func TestRuleEngineInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(rt, "item_count")
		items := make([]*PricedItem, n)
		for i := range items {
			items[i] = &PricedItem{
				PlanID: rapid.SampledFrom([]string{
					constants.ChargeKindAdultTopup, constants.ChargeKindJuniorBundle, constants.ChargeKindSocialAdult,
				}).Draw(rt, "plan"),
				AmountPence: int64(rapid.IntRange(0, 50000).Draw(rt, "amount")),
			}
			items[i].Category = chargeCategory(items[i].PlanID)
		}

		ruleCount := rapid.IntRange(0, 4).Draw(rt, "rule_count")
		rules := make([]*PricingRule, ruleCount)
		for i := range rules {
			rules[i] = &PricingRule{
				RuleID:   uint64(i + 1),
				Name:     "generated",
				RuleType: rapid.SampledFrom([]string{constants.RuleTypeHouseholdCap, constants.RuleTypeMultiMemberDiscount}).Draw(rt, "rule_type"),
				Priority: rapid.IntRange(0, 10).Draw(rt, "priority"),
				Active:   rapid.Bool().Draw(rt, "active"),
			}
			switch rules[i].RuleType {
			case constants.RuleTypeHouseholdCap:
				rules[i].CapAmountPence = int64(rapid.IntRange(0, 60000).Draw(rt, "cap"))
			case constants.RuleTypeMultiMemberDiscount:
				rules[i].MinQuantity = rapid.IntRange(0, 4).Draw(rt, "min_qty")
				if rapid.Bool().Draw(rt, "flat_discount") {
					rules[i].DiscountAmountPence = int64(rapid.IntRange(0, 5000).Draw(rt, "discount"))
				} else {
					rules[i].DiscountPercent = rapid.IntRange(0, 100).Draw(rt, "percent")
				}
			}
		}

		result, err := ApplyPricingRules(context.Background(), items, rules)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}

		if result.FinalTotalPence < 0 {
			rt.Fatalf("final total must not be negative, got %d", result.FinalTotalPence)
		}
		// 折扣与封顶只会降价
		if result.FinalTotalPence > result.BaseTotalPence {
			rt.Fatalf("rules raised total from %d to %d", result.BaseTotalPence, result.FinalTotalPence)
		}
		if result.AdjustmentPence != result.FinalTotalPence-result.BaseTotalPence {
			rt.Fatalf("adjustment %d inconsistent with totals", result.AdjustmentPence)
		}
	})
}

func TestReconcileIdempotentProperty(t *testing.T) {
	cfg := DefaultPricingConfig()
	rapid.Check(t, func(rt *rapid.T) {
		members := genHousehold(rt)
		result := bundledStrategy{}.Price(members, cfg, testSeasonYear)

		// 第一趟: 没有任何既有记录, 所有收费项都要创建
		first := ReconcileSubscriptions(testSeasonYear, result.Charges, nil)
		if len(first.ToCreate) != len(result.Charges) {
			rt.Fatalf("expected %d creations, got %d", len(result.Charges), len(first.ToCreate))
		}

		// 把第一趟的创建结果落为 pending 记录, 第二趟应当无事可做
		existing := make([]*Subscription, len(first.ToCreate))
		for i, ch := range first.ToCreate {
			existing[i] = &Subscription{
				SubscriptionID: "sub",
				HouseholdID:    1,
				MemberID:       ch.MemberID,
				SeasonYear:     testSeasonYear,
				PlanKind:       ch.Kind,
				Status:         constants.SubscriptionStatusPending,
				AmountPence:    ch.AmountPence,
			}
		}
		second := ReconcileSubscriptions(testSeasonYear, result.Charges, existing)
		if len(second.ToCreate) != 0 || len(second.ToCancel) != 0 {
			rt.Fatalf("second pass not idempotent: create=%d cancel=%d", len(second.ToCreate), len(second.ToCancel))
		}
	})
}
