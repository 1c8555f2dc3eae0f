package biz

import (
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
)

// Classification 成员在某个赛季的分类结果
type Classification struct {
	Member      *Member
	Category    string // junior, adult, social, unclassified
	Band        string // 仅 adult 分类有档位
	AgeOnCutoff int
	Note        string
}

// CutoffDate 计算赛季年龄分界日期
// 分界日期取赛季前一年的 cutoff_month-cutoff_day
func CutoffDate(cfg *PricingConfig, seasonYear int) time.Time {
	return time.Date(seasonYear-1, time.Month(cfg.CutoffMonth), cfg.CutoffDay, 0, 0, 0, 0, time.UTC)
}

// AgeOnCutoff 计算分界日期时的周岁年龄
// 出生日期缺失时按 0 岁处理; 生日在分界年内晚于分界日期时减一岁
func AgeOnCutoff(dob *time.Time, cutoff time.Time) int {
	if dob == nil {
		return 0
	}
	age := cutoff.Year() - dob.Year()
	if dob.Month() > cutoff.Month() || (dob.Month() == cutoff.Month() && dob.Day() > cutoff.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// ClassifyMember 按角色与年龄对成员分类
// 规则按顺序求值: 少年 > 社交 > 成人, 其余为 unclassified(不收费, 不报错)
func ClassifyMember(m *Member, cfg *PricingConfig, cutoff time.Time) *Classification {
	age := AgeOnCutoff(m.DateOfBirth, cutoff)
	c := &Classification{Member: m, AgeOnCutoff: age}

	switch {
	case m.Role == constants.RolePlaying && age <= cfg.JuniorMaxAge:
		c.Category = constants.CategoryJunior
	case m.Role == constants.RoleSupporter && age >= cfg.AdultMinAge:
		c.Category = constants.CategorySocial
	case m.Role == constants.RolePlaying && age >= cfg.AdultMinAge:
		c.Category = constants.CategoryAdult
		c.Band = adultBand(m.Gender, age, cfg)
	default:
		c.Category = constants.CategoryUnclassified
		c.Note = "no matching membership category for role/age, not charged"
	}
	return c
}

// adultBand 按性别和年龄确定成人价格档位
// 女性走 female 档, 其余性别走 male 档; 达到捆绑年龄为 full, 否则 intermediate
func adultBand(gender string, age int, cfg *PricingConfig) string {
	full := age >= cfg.AdultBundleMinAge
	if gender == constants.GenderFemale {
		if full {
			return constants.BandFemaleFull
		}
		return constants.BandFemaleIntermediate
	}
	if full {
		return constants.BandMaleFull
	}
	return constants.BandMaleIntermediate
}

// BandPrice 档位对应的配置价格
func BandPrice(band string, cfg *PricingConfig) int64 {
	switch band {
	case constants.BandMaleFull:
		return cfg.MaleFullPence
	case constants.BandMaleIntermediate:
		return cfg.MaleIntermediatePence
	case constants.BandFemaleFull:
		return cfg.FemaleFullPence
	case constants.BandFemaleIntermediate:
		return cfg.FemaleIntermediatePence
	}
	return 0
}
