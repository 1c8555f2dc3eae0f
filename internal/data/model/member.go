package model

import "time"

// Member 成员模型
type Member struct {
	MemberID    uint64     `gorm:"primaryKey;column:member_id;autoIncrement;type:bigint unsigned"`
	HouseholdID uint64     `gorm:"column:household_id;not null;index:idx_household_id;type:bigint unsigned"`
	Name        string     `gorm:"column:name;type:varchar(100)"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth"` // 可为空
	Gender      string     `gorm:"column:gender;type:varchar(10);default:'unknown'"`
	Role        string     `gorm:"column:role;type:varchar(20);not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Member) TableName() string { return "member" }
