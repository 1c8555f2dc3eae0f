package model

import "time"

// PricingConfig 俱乐部定价配置模型 (所有金额均为便士整数)
type PricingConfig struct {
	PricingConfigID uint64 `gorm:"primaryKey;column:pricing_config_id;autoIncrement;type:bigint unsigned"`
	ClubID          string `gorm:"column:club_id;type:varchar(50);not null;uniqueIndex:uk_club_season"`
	SeasonType      string `gorm:"column:season_type;type:varchar(20);not null;default:'annual';uniqueIndex:uk_club_season"`
	PricingModel    string `gorm:"column:pricing_model;type:varchar(20);not null;default:'bundled'"`

	CutoffMonth            int  `gorm:"column:cutoff_month"`
	CutoffDay              int  `gorm:"column:cutoff_day"`
	JuniorMaxAge           int  `gorm:"column:junior_max_age"`
	AdultMinAge            int  `gorm:"column:adult_min_age"`
	AdultBundleMinAge      int  `gorm:"column:adult_bundle_min_age"`
	MinAdultsForBundle     int  `gorm:"column:min_adults_for_bundle"`
	RequireJuniorForBundle bool `gorm:"column:require_junior_for_bundle"`
	EnableAdultBundle      bool `gorm:"column:enable_adult_bundle"`

	JuniorSinglePence       int64 `gorm:"column:junior_single_pence"`
	JuniorMultiPence        int64 `gorm:"column:junior_multi_pence"`
	MaleFullPence           int64 `gorm:"column:male_full_pence"`
	MaleIntermediatePence   int64 `gorm:"column:male_intermediate_pence"`
	FemaleFullPence         int64 `gorm:"column:female_full_pence"`
	FemaleIntermediatePence int64 `gorm:"column:female_intermediate_pence"`
	SocialAdultPence        int64 `gorm:"column:social_adult_pence"`
	AdultBundlePence        int64 `gorm:"column:adult_bundle_pence"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PricingConfig) TableName() string { return "pricing_config" }
