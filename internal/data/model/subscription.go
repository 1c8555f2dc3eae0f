package model

import "time"

// Subscription 订阅(计费)记录模型
// member_id 为空表示家庭级收费(捆绑类)
type Subscription struct {
	SubscriptionID string     `gorm:"primaryKey;column:subscription_id;type:varchar(50)"`
	HouseholdID    uint64     `gorm:"column:household_id;not null;index:idx_household_id;type:bigint unsigned"`
	MemberID       *uint64    `gorm:"column:member_id;type:bigint unsigned"`
	SeasonYear     int        `gorm:"column:season_year;not null;index:idx_household_season,priority:2"`
	PlanKind       string     `gorm:"column:plan_kind;type:varchar(30);not null"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:'pending'"`
	AmountPence    int64      `gorm:"column:amount_pence;not null"`
	DiscountPence  int64      `gorm:"column:discount_pence"`
	Notes          string     `gorm:"column:notes;type:varchar(500)"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Subscription) TableName() string { return "subscription" }
