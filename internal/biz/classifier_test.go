package biz

import (
	"testing"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dob(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func newMember(id uint64, d *time.Time, gender, role string) *Member {
	return &Member{
		MemberID:    id,
		HouseholdID: 1,
		Name:        "member",
		DateOfBirth: d,
		Gender:      gender,
		Role:        role,
	}
}

func TestCutoffDate(t *testing.T) {
	cfg := DefaultPricingConfig()

	// 2026 赛季的分界日期是 2025-09-01
	cutoff := CutoffDate(cfg, 2026)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), cutoff)

	cfg.CutoffMonth = 1
	cfg.CutoffDay = 15
	cutoff = CutoffDate(cfg, 2026)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), cutoff)
}

func TestAgeOnCutoff(t *testing.T) {
	cutoff := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  *time.Time
		want int
	}{
		{"nil date of birth counts as zero", nil, 0},
		{"birthday exactly on cutoff", dob(2007, 9, 1), 18},
		{"birthday the day after cutoff", dob(2007, 9, 2), 17},
		{"birthday before cutoff in same year", dob(2007, 8, 31), 18},
		{"born after cutoff clamps to zero", dob(2026, 3, 1), 0},
		{"adult", dob(1995, 6, 15), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeOnCutoff(tt.dob, cutoff))
		})
	}
}

func TestClassifyMember(t *testing.T) {
	cfg := DefaultPricingConfig()
	cutoff := CutoffDate(cfg, 2026) // 2025-09-01

	tests := []struct {
		name     string
		member   *Member
		category string
		band     string
	}{
		{"playing age 17 is junior", newMember(1, dob(2008, 6, 1), constants.GenderMale, constants.RolePlaying), constants.CategoryJunior, ""},
		{"playing age 18 is intermediate adult", newMember(2, dob(2007, 6, 1), constants.GenderMale, constants.RolePlaying), constants.CategoryAdult, constants.BandMaleIntermediate},
		{"playing age 22 is full adult", newMember(3, dob(2003, 6, 1), constants.GenderMale, constants.RolePlaying), constants.CategoryAdult, constants.BandMaleFull},
		{"female playing age 35 gets female full band", newMember(4, dob(1990, 6, 1), constants.GenderFemale, constants.RolePlaying), constants.CategoryAdult, constants.BandFemaleFull},
		{"female playing age 20 gets female intermediate band", newMember(5, dob(2005, 6, 1), constants.GenderFemale, constants.RolePlaying), constants.CategoryAdult, constants.BandFemaleIntermediate},
		{"supporter age 40 is social", newMember(6, dob(1985, 6, 1), constants.GenderMale, constants.RoleSupporter), constants.CategorySocial, ""},
		{"supporter age 17 is unclassified", newMember(7, dob(2008, 6, 1), constants.GenderMale, constants.RoleSupporter), constants.CategoryUnclassified, ""},
		{"coach is unclassified", newMember(8, dob(1985, 6, 1), constants.GenderMale, constants.RoleCoach), constants.CategoryUnclassified, ""},
		{"playing without date of birth is junior at age zero", newMember(9, nil, constants.GenderMale, constants.RolePlaying), constants.CategoryJunior, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := ClassifyMember(tt.member, cfg, cutoff)
			require.NotNil(t, cl)
			assert.Equal(t, tt.category, cl.Category)
			assert.Equal(t, tt.band, cl.Band)
			if tt.category == constants.CategoryUnclassified {
				assert.NotEmpty(t, cl.Note)
			}
		})
	}
}

func TestClassifyMemberJuniorWinsOverAdult(t *testing.T) {
	// 少年规则优先于成人规则求值: playing 且达到成人年龄但仍在少年上限内时
	// (junior_max_age >= adult_min_age 的非常规配置), 归为少年
	cfg := DefaultPricingConfig()
	cfg.JuniorMaxAge = 20
	cutoff := CutoffDate(cfg, 2026)

	cl := ClassifyMember(newMember(1, dob(2006, 6, 1), constants.GenderMale, constants.RolePlaying), cfg, cutoff)
	assert.Equal(t, constants.CategoryJunior, cl.Category)
}

func TestBandPrice(t *testing.T) {
	cfg := DefaultPricingConfig()

	assert.Equal(t, int64(11500), BandPrice(constants.BandMaleFull, cfg))
	assert.Equal(t, int64(7500), BandPrice(constants.BandMaleIntermediate, cfg))
	assert.Equal(t, int64(8000), BandPrice(constants.BandFemaleFull, cfg))
	assert.Equal(t, int64(5500), BandPrice(constants.BandFemaleIntermediate, cfg))
	assert.Equal(t, int64(0), BandPrice("unknown", cfg))
}
