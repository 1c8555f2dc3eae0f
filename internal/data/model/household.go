package model

import "time"

// Household 家庭(计费单元)模型
type Household struct {
	HouseholdID uint64    `gorm:"primaryKey;column:household_id;autoIncrement;type:bigint unsigned"`
	ClubID      string    `gorm:"column:club_id;type:varchar(50);not null;index:idx_club_id"`
	OwnerUID    string    `gorm:"column:owner_uid;type:varchar(50);not null;index:idx_owner_uid"` // 注册该家庭的账号ID
	Name        string    `gorm:"column:name;type:varchar(100)"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Household) TableName() string { return "household" }
