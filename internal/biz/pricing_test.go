package biz

import (
	"context"
	"testing"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeasonYear = 2026

func priceBundled(t *testing.T, members []*Member, cfg *PricingConfig) *PricingResult {
	t.Helper()
	s, err := SelectStrategy(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, constants.PricingModelBundled, s.Name())
	return s.Price(members, cfg, testSeasonYear)
}

func chargesTotal(charges []*ChargeItem) int64 {
	var total int64
	for _, ch := range charges {
		total += ch.AmountPence
	}
	return total
}

func TestPriceSinglePlayingAdult(t *testing.T) {
	cfg := DefaultPricingConfig()
	members := []*Member{
		newMember(1, dob(1995, 6, 15), constants.GenderMale, constants.RolePlaying), // 30 岁
	}

	result := priceBundled(t, members, cfg)

	assert.Equal(t, int64(11500), result.TotalPence)
	assert.Equal(t, "2025-09-01", result.CutoffDate)
	assert.False(t, result.Summary.AdultBundleApplied)
	require.Len(t, result.Charges, 1)
	assert.Equal(t, constants.ChargeKindAdultTopup, result.Charges[0].Kind)
	require.NotNil(t, result.Charges[0].MemberID)
	assert.Equal(t, uint64(1), *result.Charges[0].MemberID)
}

func TestPriceAdultBundleWithJunior(t *testing.T) {
	cfg := DefaultPricingConfig()
	members := []*Member{
		newMember(1, dob(1985, 6, 1), constants.GenderMale, constants.RolePlaying),   // 40 岁, male_full 11500
		newMember(2, dob(1990, 6, 1), constants.GenderFemale, constants.RolePlaying), // 35 岁, female_full 8000
		newMember(3, dob(2015, 6, 1), constants.GenderMale, constants.RolePlaying),   // 10 岁, junior
	}

	result := priceBundled(t, members, cfg)

	// 单独计价 11500+8000+15600=35100, 捆绑 15000+15600=30600, 取更便宜的捆绑价
	assert.True(t, result.Summary.AdultBundleApplied)
	assert.Equal(t, int64(30600), result.TotalPence)
	assert.Equal(t, int64(15000), result.Summary.AdultTotalPence)
	assert.Equal(t, int64(15600), result.Summary.JuniorTotalPence)

	var kinds []string
	for _, ch := range result.Charges {
		kinds = append(kinds, ch.Kind)
	}
	assert.Equal(t, []string{constants.ChargeKindAdultBundle, constants.ChargeKindJuniorBundle}, kinds)
	assert.Equal(t, result.TotalPence, chargesTotal(result.Charges))

	for _, mp := range result.Members {
		if mp.Category == constants.CategoryAdult {
			assert.True(t, mp.BundleCovered)
		}
	}
}

func TestPriceBundleNotAppliedWhenNotCheaper(t *testing.T) {
	cfg := DefaultPricingConfig()
	// 两名女性成人 8000+8000=16000, 捆绑价 15000+剩余 0 = 15000, 更便宜 → 采用
	// 把捆绑价提高到 16000 后不再严格更便宜 → 不采用
	cfg.AdultBundlePence = 16000
	members := []*Member{
		newMember(1, dob(1990, 6, 1), constants.GenderFemale, constants.RolePlaying),
		newMember(2, dob(1992, 6, 1), constants.GenderFemale, constants.RolePlaying),
		newMember(3, dob(2015, 6, 1), constants.GenderMale, constants.RolePlaying),
	}

	result := priceBundled(t, members, cfg)

	assert.False(t, result.Summary.AdultBundleApplied)
	assert.Equal(t, int64(16000), result.Summary.AdultTotalPence)
}

func TestPriceBundleRequiresJunior(t *testing.T) {
	cfg := DefaultPricingConfig()
	members := []*Member{
		newMember(1, dob(1985, 6, 1), constants.GenderMale, constants.RolePlaying),
		newMember(2, dob(1990, 6, 1), constants.GenderFemale, constants.RolePlaying),
	}

	result := priceBundled(t, members, cfg)
	assert.False(t, result.Summary.AdultBundleApplied)
	assert.Equal(t, int64(19500), result.TotalPence)

	// 不要求少年时, 两名达龄成人即可捆绑
	cfg.RequireJuniorForBundle = false
	result = priceBundled(t, members, cfg)
	assert.True(t, result.Summary.AdultBundleApplied)
	assert.Equal(t, int64(15000), result.TotalPence)
}

func TestPriceBundleExcludesIntermediateAdults(t *testing.T) {
	cfg := DefaultPricingConfig()
	cfg.RequireJuniorForBundle = false
	// 一名达龄成人 + 一名 intermediate 成人: 达龄人数不足, 不捆绑
	members := []*Member{
		newMember(1, dob(1985, 6, 1), constants.GenderMale, constants.RolePlaying), // 40 岁
		newMember(2, dob(2006, 6, 1), constants.GenderMale, constants.RolePlaying), // 19 岁
	}

	result := priceBundled(t, members, cfg)
	assert.False(t, result.Summary.AdultBundleApplied)
	assert.Equal(t, int64(11500+7500), result.TotalPence)
}

func TestPriceBundleGreedyPicksMostExpensive(t *testing.T) {
	cfg := DefaultPricingConfig()
	cfg.RequireJuniorForBundle = false
	// 三名达龄成人: male 11500, male 11500, female 8000
	// 捆绑覆盖最贵的两名 male, female 单独补差
	members := []*Member{
		newMember(1, dob(1985, 6, 1), constants.GenderMale, constants.RolePlaying),
		newMember(2, dob(1990, 6, 1), constants.GenderFemale, constants.RolePlaying),
		newMember(3, dob(1987, 6, 1), constants.GenderMale, constants.RolePlaying),
	}

	result := priceBundled(t, members, cfg)

	require.True(t, result.Summary.AdultBundleApplied)
	assert.Equal(t, int64(15000+8000), result.Summary.AdultTotalPence)

	covered := map[uint64]bool{}
	for _, mp := range result.Members {
		if mp.BundleCovered {
			covered[mp.MemberID] = true
		}
	}
	assert.Equal(t, map[uint64]bool{1: true, 3: true}, covered)
}

func TestPriceJuniorTiers(t *testing.T) {
	cfg := DefaultPricingConfig()

	junior := func(id uint64, year int) *Member {
		return newMember(id, dob(year, 6, 1), constants.GenderMale, constants.RolePlaying)
	}

	// 三名少年只收一次多人价, 而不是 3 倍单人价
	result := priceBundled(t, []*Member{junior(1, 2012), junior(2, 2014), junior(3, 2016)}, cfg)
	assert.Equal(t, int64(24000), result.TotalPence)
	require.Len(t, result.Charges, 1)
	assert.Equal(t, constants.ChargeKindJuniorBundle, result.Charges[0].Kind)
	assert.Nil(t, result.Charges[0].MemberID)

	// 单名少年收单人价
	result = priceBundled(t, []*Member{junior(1, 2012)}, cfg)
	assert.Equal(t, int64(15600), result.TotalPence)

	// 没有少年不收少年费
	result = priceBundled(t, nil, cfg)
	assert.Equal(t, int64(0), result.TotalPence)
	assert.Empty(t, result.Charges)
}

func TestPriceSocialAndUnclassified(t *testing.T) {
	cfg := DefaultPricingConfig()
	members := []*Member{
		newMember(1, dob(1980, 6, 1), constants.GenderFemale, constants.RoleSupporter), // social
		newMember(2, dob(1980, 6, 1), constants.GenderMale, constants.RoleCoach),       // unclassified
	}

	result := priceBundled(t, members, cfg)

	assert.Equal(t, int64(3000), result.TotalPence)
	assert.Equal(t, 1, result.Summary.SocialCount)
	assert.Equal(t, 1, result.Summary.UnclassifiedCount)
	require.Len(t, result.Members, 2)

	var unclassified *MemberPrice
	for _, mp := range result.Members {
		if mp.Category == constants.CategoryUnclassified {
			unclassified = mp
		}
	}
	require.NotNil(t, unclassified)
	assert.Zero(t, unclassified.PricePence)
	assert.NotEmpty(t, unclassified.Note)
}

func TestPriceFlatStrategy(t *testing.T) {
	cfg := DefaultPricingConfig()
	cfg.PricingModel = constants.PricingModelFlat

	s, err := SelectStrategy(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, constants.PricingModelFlat, s.Name())

	members := []*Member{
		newMember(1, dob(1985, 6, 1), constants.GenderMale, constants.RolePlaying),   // 11500
		newMember(2, dob(1990, 6, 1), constants.GenderFemale, constants.RolePlaying), // 8000
		newMember(3, dob(2015, 6, 1), constants.GenderMale, constants.RolePlaying),   // 15600 单人价
		newMember(4, nil, constants.GenderMale, constants.RolePlaying),               // 无出生日期, 跳过
	}

	result := s.Price(members, cfg, testSeasonYear)

	// 平价模式不做捆绑, 每名少年单独收单人价, 无出生日期的成员不参与
	assert.Equal(t, int64(11500+8000+15600), result.TotalPence)
	assert.False(t, result.Summary.AdultBundleApplied)
	assert.Len(t, result.Members, 3)
	assert.Len(t, result.Charges, 3)
	for _, ch := range result.Charges {
		assert.NotNil(t, ch.MemberID)
	}
}

func TestSelectStrategyUnsupportedModel(t *testing.T) {
	cfg := DefaultPricingConfig()
	cfg.PricingModel = constants.PricingModelFamilyCap

	_, err := SelectStrategy(context.Background(), cfg)
	assert.Error(t, err)
}

func TestChargesToPricedItems(t *testing.T) {
	memberID := uint64(7)
	charges := []*ChargeItem{
		{Kind: constants.ChargeKindAdultBundle, AmountPence: 15000},
		{Kind: constants.ChargeKindAdultTopup, MemberID: &memberID, AmountPence: 8000},
		{Kind: constants.ChargeKindJuniorBundle, AmountPence: 24000},
		{Kind: constants.ChargeKindSocialAdult, MemberID: &memberID, AmountPence: 3000},
	}

	items := ChargesToPricedItems(charges)

	require.Len(t, items, 4)
	assert.Equal(t, constants.CategoryAdult, items[0].Category)
	assert.Equal(t, constants.CategoryAdult, items[1].Category)
	assert.Equal(t, constants.CategoryJunior, items[2].Category)
	assert.Equal(t, constants.CategorySocial, items[3].Category)
	assert.Equal(t, int64(15000), items[0].AmountPence)
}

func TestPriceCutoffBoundary(t *testing.T) {
	cfg := DefaultPricingConfig()

	// 生日恰好在分界日期当天: 已满 18 岁, 按成人计价
	onCutoff := newMember(1, dob(2007, 9, 1), constants.GenderMale, constants.RolePlaying)
	result := priceBundled(t, []*Member{onCutoff}, cfg)
	require.Len(t, result.Members, 1)
	assert.Equal(t, constants.CategoryAdult, result.Members[0].Category)
	assert.Equal(t, int64(7500), result.TotalPence)

	// 生日在分界日期次日: 仍是 17 岁少年
	dayAfter := newMember(2, dob(2007, 9, 2), constants.GenderMale, constants.RolePlaying)
	result = priceBundled(t, []*Member{dayAfter}, cfg)
	require.Len(t, result.Members, 1)
	assert.Equal(t, constants.CategoryJunior, result.Members[0].Category)
	assert.Equal(t, int64(15600), result.TotalPence)
}
