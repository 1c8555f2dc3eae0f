package model

import "time"

// BillingHistory 计费历史模型 (只追加)
type BillingHistory struct {
	BillingHistoryID uint64    `gorm:"primaryKey;column:billing_history_id;autoIncrement;type:bigint unsigned"`
	HouseholdID      uint64    `gorm:"column:household_id;not null;index:idx_household_id;type:bigint unsigned"`
	SubscriptionID   string    `gorm:"column:subscription_id;type:varchar(50)"`
	SeasonYear       int       `gorm:"column:season_year"`
	PlanKind         string    `gorm:"column:plan_kind;type:varchar(30)"`
	Action           string    `gorm:"column:action;type:varchar(20);not null"`
	AmountPence      int64     `gorm:"column:amount_pence"`
	Notes            string    `gorm:"column:notes;type:varchar(500)"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (BillingHistory) TableName() string { return "billing_history" }
