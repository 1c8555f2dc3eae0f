package biz

import (
	"context"
	"time"
)

// Member 俱乐部成员
// 在一次定价计算期间视为不可变
type Member struct {
	MemberID    uint64
	HouseholdID uint64
	Name        string
	DateOfBirth *time.Time // 可为空, 缺失时按 0 岁处理
	Gender      string     // male, female, other, unknown
	Role        string     // playing, supporter, coach, other
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Household 家庭(计费单元), 归属于一个俱乐部
type Household struct {
	HouseholdID uint64
	ClubID      string
	OwnerUID    string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MemberRepo 成员仓库接口
type MemberRepo interface {
	ListMembersByHousehold(ctx context.Context, householdID uint64) ([]*Member, error)
}

// HouseholdRepo 家庭仓库接口
type HouseholdRepo interface {
	GetHousehold(ctx context.Context, householdID uint64) (*Household, error)
	// ListHouseholds 分页列出家庭, clubID 为空时返回所有俱乐部的家庭(用于定时任务)
	ListHouseholds(ctx context.Context, clubID string, page, pageSize int) ([]*Household, int, error)
}
