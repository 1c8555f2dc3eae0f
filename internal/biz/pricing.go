package biz

import (
	"context"
	"sort"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
	"github.com/kerry-png/clubstand-platform-sub000/internal/errors"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
)

// ChargeItem 计算得到的收费项, 尚未落库
// MemberID 为空表示家庭级收费(捆绑类)
type ChargeItem struct {
	Kind          string // adult_bundle, adult_topup, junior_bundle, social_adult
	MemberID      *uint64
	AmountPence   int64
	BillingPeriod string // annual
}

// MemberPrice 单个成员的定价明细
type MemberPrice struct {
	MemberID      uint64
	Name          string
	Category      string
	Band          string
	AgeOnCutoff   int
	PricePence    int64
	BundleCovered bool
	Note          string
}

// PricingSummary 定价计算的统计信息, 用于后台展示
type PricingSummary struct {
	AdultCount         int
	JuniorCount        int
	SocialCount        int
	UnclassifiedCount  int
	AdultTotalPence    int64
	JuniorTotalPence   int64
	SocialTotalPence   int64
	AdultBundleApplied bool
}

// PricingResult 家庭会费定价结果
type PricingResult struct {
	SeasonYear int
	CutoffDate string // ISO 格式
	TotalPence int64
	Members    []*MemberPrice
	Summary    PricingSummary
	Charges    []*ChargeItem
}

// PricingStrategy 定价策略接口
// 由配置的 pricing_model 选择实现, 对账层无需关心收费项出自哪种策略
type PricingStrategy interface {
	Name() string
	Price(members []*Member, cfg *PricingConfig, seasonYear int) *PricingResult
}

// SelectStrategy 按定价模式选择策略
func SelectStrategy(ctx context.Context, cfg *PricingConfig) (PricingStrategy, error) {
	switch cfg.PricingModel {
	case constants.PricingModelBundled, "":
		return bundledStrategy{}, nil
	case constants.PricingModelFlat:
		return flatStrategy{}, nil
	default:
		// family_cap 为预留模式
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodePricingModelUnsupported)
	}
}

// bundledStrategy 档位 + 捆绑定价 (默认模式)
type bundledStrategy struct{}

func (bundledStrategy) Name() string { return constants.PricingModelBundled }

func (bundledStrategy) Price(members []*Member, cfg *PricingConfig, seasonYear int) *PricingResult {
	cutoff := CutoffDate(cfg, seasonYear)
	result := &PricingResult{
		SeasonYear: seasonYear,
		CutoffDate: cutoff.Format(time.DateOnly),
	}

	type pricedAdult struct {
		index int // 原始顺序, 用于稳定平局处理
		mp    *MemberPrice
		age   int
	}
	var adults []*pricedAdult
	var juniors, socials []*MemberPrice

	for i, m := range members {
		cl := ClassifyMember(m, cfg, cutoff)
		mp := &MemberPrice{
			MemberID:    m.MemberID,
			Name:        m.Name,
			Category:    cl.Category,
			Band:        cl.Band,
			AgeOnCutoff: cl.AgeOnCutoff,
			Note:        cl.Note,
		}
		result.Members = append(result.Members, mp)

		switch cl.Category {
		case constants.CategoryAdult:
			mp.PricePence = BandPrice(cl.Band, cfg)
			adults = append(adults, &pricedAdult{index: i, mp: mp, age: cl.AgeOnCutoff})
		case constants.CategoryJunior:
			juniors = append(juniors, mp)
		case constants.CategorySocial:
			mp.PricePence = cfg.SocialAdultPence
			socials = append(socials, mp)
		default:
			result.Summary.UnclassifiedCount++
		}
	}

	result.Summary.AdultCount = len(adults)
	result.Summary.JuniorCount = len(juniors)
	result.Summary.SocialCount = len(socials)

	// 成人: 先算全部按个人价的合计, 再判断捆绑价是否更优
	var individualTotal int64
	for _, a := range adults {
		individualTotal += a.mp.PricePence
	}
	adultTotal := individualTotal

	var eligible []*pricedAdult
	for _, a := range adults {
		if a.age >= cfg.AdultBundleMinAge {
			eligible = append(eligible, a)
		}
	}
	bundleAllowed := cfg.EnableAdultBundle &&
		len(eligible) >= cfg.MinAdultsForBundle && cfg.MinAdultsForBundle > 0 &&
		(!cfg.RequireJuniorForBundle || len(juniors) > 0)

	if bundleAllowed {
		// 贪心选择: 价格最高的 N 名达龄成人进捆绑, 平局按原始顺序
		candidates := make([]*pricedAdult, len(eligible))
		copy(candidates, eligible)
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].mp.PricePence > candidates[j].mp.PricePence
		})
		candidates = candidates[:cfg.MinAdultsForBundle]

		var coveredTotal int64
		for _, c := range candidates {
			coveredTotal += c.mp.PricePence
		}
		bundleTotal := individualTotal - coveredTotal + cfg.AdultBundlePence

		// 仅在严格更便宜时采用捆绑价
		if bundleTotal < individualTotal {
			adultTotal = bundleTotal
			result.Summary.AdultBundleApplied = true
			for _, c := range candidates {
				c.mp.BundleCovered = true
			}
		}
	}

	// 少年: 0 人不收费, 1 人单人价, 2 人及以上整个家庭收一次多人价
	var juniorTotal int64
	switch {
	case len(juniors) == 1:
		juniorTotal = cfg.JuniorSinglePence
	case len(juniors) >= 2:
		juniorTotal = cfg.JuniorMultiPence
	}
	for _, j := range juniors {
		j.BundleCovered = true
	}

	var socialTotal int64
	for _, s := range socials {
		socialTotal += s.PricePence
	}

	result.Summary.AdultTotalPence = adultTotal
	result.Summary.JuniorTotalPence = juniorTotal
	result.Summary.SocialTotalPence = socialTotal
	result.TotalPence = adultTotal + juniorTotal + socialTotal

	// 拆分为收费项
	if result.Summary.AdultBundleApplied {
		result.Charges = append(result.Charges, &ChargeItem{
			Kind:          constants.ChargeKindAdultBundle,
			AmountPence:   cfg.AdultBundlePence,
			BillingPeriod: constants.BillingPeriodAnnual,
		})
	}
	for _, a := range adults {
		if a.mp.BundleCovered {
			continue
		}
		id := a.mp.MemberID
		result.Charges = append(result.Charges, &ChargeItem{
			Kind:          constants.ChargeKindAdultTopup,
			MemberID:      &id,
			AmountPence:   a.mp.PricePence,
			BillingPeriod: constants.BillingPeriodAnnual,
		})
	}
	if juniorTotal > 0 {
		result.Charges = append(result.Charges, &ChargeItem{
			Kind:          constants.ChargeKindJuniorBundle,
			AmountPence:   juniorTotal,
			BillingPeriod: constants.BillingPeriodAnnual,
		})
	}
	for _, s := range socials {
		id := s.MemberID
		result.Charges = append(result.Charges, &ChargeItem{
			Kind:          constants.ChargeKindSocialAdult,
			MemberID:      &id,
			AmountPence:   s.PricePence,
			BillingPeriod: constants.BillingPeriodAnnual,
		})
	}

	return result
}

// flatStrategy 平价模式: 每个成员按档位单独计价, 不做任何捆绑
// 出生日期缺失的成员直接跳过, 不参与分类
type flatStrategy struct{}

func (flatStrategy) Name() string { return constants.PricingModelFlat }

func (flatStrategy) Price(members []*Member, cfg *PricingConfig, seasonYear int) *PricingResult {
	cutoff := CutoffDate(cfg, seasonYear)
	result := &PricingResult{
		SeasonYear: seasonYear,
		CutoffDate: cutoff.Format(time.DateOnly),
	}

	for _, m := range members {
		if m.DateOfBirth == nil {
			continue
		}
		cl := ClassifyMember(m, cfg, cutoff)
		mp := &MemberPrice{
			MemberID:    m.MemberID,
			Name:        m.Name,
			Category:    cl.Category,
			Band:        cl.Band,
			AgeOnCutoff: cl.AgeOnCutoff,
			Note:        cl.Note,
		}
		result.Members = append(result.Members, mp)

		var kind string
		switch cl.Category {
		case constants.CategoryAdult:
			mp.PricePence = BandPrice(cl.Band, cfg)
			kind = constants.ChargeKindAdultTopup
			result.Summary.AdultCount++
			result.Summary.AdultTotalPence += mp.PricePence
		case constants.CategoryJunior:
			mp.PricePence = cfg.JuniorSinglePence
			kind = constants.ChargeKindJuniorBundle
			result.Summary.JuniorCount++
			result.Summary.JuniorTotalPence += mp.PricePence
		case constants.CategorySocial:
			mp.PricePence = cfg.SocialAdultPence
			kind = constants.ChargeKindSocialAdult
			result.Summary.SocialCount++
			result.Summary.SocialTotalPence += mp.PricePence
		default:
			result.Summary.UnclassifiedCount++
			continue
		}

		id := mp.MemberID
		result.TotalPence += mp.PricePence
		result.Charges = append(result.Charges, &ChargeItem{
			Kind:          kind,
			MemberID:      &id,
			AmountPence:   mp.PricePence,
			BillingPeriod: constants.BillingPeriodAnnual,
		})
	}

	return result
}

// chargeCategory 收费项对应的规则引擎分类
func chargeCategory(kind string) string {
	switch kind {
	case constants.ChargeKindAdultBundle, constants.ChargeKindAdultTopup:
		return constants.CategoryAdult
	case constants.ChargeKindJuniorBundle:
		return constants.CategoryJunior
	case constants.ChargeKindSocialAdult:
		return constants.CategorySocial
	}
	return constants.CategoryUnclassified
}

// ChargesToPricedItems 把收费项转换为规则引擎的输入
func ChargesToPricedItems(charges []*ChargeItem) []*PricedItem {
	items := make([]*PricedItem, len(charges))
	for i, ch := range charges {
		items[i] = &PricedItem{
			PlanID:      ch.Kind,
			Category:    chargeCategory(ch.Kind),
			AmountPence: ch.AmountPence,
		}
	}
	return items
}
