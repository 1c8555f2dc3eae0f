package model

import "time"

// PricingRule 定价规则模型
// PlanIDs 以逗号分隔存储, 为空表示全部收费项适用
type PricingRule struct {
	RuleID      uint64 `gorm:"primaryKey;column:rule_id;autoIncrement;type:bigint unsigned"`
	ClubID      string `gorm:"column:club_id;type:varchar(50);not null;index:idx_club_id"`
	Name        string `gorm:"column:name;type:varchar(100)"`
	RuleType    string `gorm:"column:rule_type;type:varchar(30);not null"`
	PlanIDs     string `gorm:"column:plan_ids;type:varchar(255)"`
	MinQuantity int    `gorm:"column:min_quantity"`

	CapAmountPence      int64 `gorm:"column:cap_amount_pence"`
	DiscountAmountPence int64 `gorm:"column:discount_amount_pence"`
	DiscountPercent     int   `gorm:"column:discount_percent"`

	BundlePricePence int64 `gorm:"column:bundle_price_pence"`
	RequiredAdults   int   `gorm:"column:required_adults"`
	RequiredJuniors  int   `gorm:"column:required_juniors"`
	AnyJunior        bool  `gorm:"column:any_junior"`

	Priority  int  `gorm:"column:priority;index:idx_club_priority,priority:2"`
	Active    bool `gorm:"column:active;default:true"`
	Exclusive bool `gorm:"column:exclusive"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PricingRule) TableName() string { return "pricing_rule" }
