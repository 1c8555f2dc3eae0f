package biz

import (
	"context"
	"time"
)

// BillingHistory 计费历史记录 (只追加)
type BillingHistory struct {
	BillingHistoryID uint64
	HouseholdID      uint64
	SubscriptionID   string
	SeasonYear       int
	PlanKind         string
	Action           string // created, cancelled, activated
	AmountPence      int64
	Notes            string
	CreatedAt        time.Time
}

// BillingHistoryRepo 计费历史仓库接口
type BillingHistoryRepo interface {
	AddBillingHistory(ctx context.Context, h *BillingHistory) error
	ListBillingHistory(ctx context.Context, householdID uint64, page, pageSize int) ([]*BillingHistory, int, error)
}
