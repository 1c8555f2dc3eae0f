package model

import "time"

// Order 结算订单模型
type Order struct {
	OrderID       string    `gorm:"primaryKey;column:order_id;type:varchar(50)"`
	HouseholdID   uint64    `gorm:"column:household_id;not null;index:idx_household_id;type:bigint unsigned"`
	SeasonYear    int       `gorm:"column:season_year;not null"`
	AmountPence   int64     `gorm:"column:amount_pence;not null"`
	PaymentStatus string    `gorm:"column:payment_status;type:varchar(20);not null;default:'pending'"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "billing_order" }
