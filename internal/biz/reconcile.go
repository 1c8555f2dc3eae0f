package biz

import (
	"context"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
)

// Subscription 订阅(计费)记录
// 由对账流程以 pending 创建, 支付成功后转为 active, 不再被收费项覆盖时取消
// 已取消的记录永远不会被重新激活
type Subscription struct {
	SubscriptionID string
	HouseholdID    uint64
	MemberID       *uint64 // 为空表示家庭级收费
	SeasonYear     int
	PlanKind       string // 同 ChargeItem.Kind
	Status         string // pending, active, cancelled
	AmountPence    int64
	DiscountPence  int64
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SubscriptionRepo 订阅记录仓库接口
type SubscriptionRepo interface {
	ListSubscriptionsByHousehold(ctx context.Context, householdID uint64) ([]*Subscription, error)
	// FindLiveSubscription 按 (plan, member-or-household, season) 查找未取消的记录, 用于创建前去重
	FindLiveSubscription(ctx context.Context, householdID uint64, planKind string, memberID *uint64, seasonYear int) (*Subscription, error)
	CreateSubscription(ctx context.Context, sub *Subscription) error
	SaveSubscription(ctx context.Context, sub *Subscription) error
}

// ReconcileOutcome 对账结果: 需要创建/取消的记录与金额汇总
type ReconcileOutcome struct {
	// ToCreate 没有对应订阅记录的收费项
	ToCreate []*ChargeItem
	// ToCancel 不再被任何收费项覆盖、且仍为 pending 的订阅记录
	ToCancel []*Subscription

	EngineTotalPence  int64
	ActiveTotalPence  int64
	PendingTotalPence int64
	RemainingPence    int64
}

// ReconcileSubscriptions 将引擎计算的收费项与既有订阅记录对账
//
// 仅按成员身份匹配(双方同为家庭级, 或 member_id 相同), 不比较金额;
// 单趟贪心认领, 每条记录最多被一个收费项认领;
// 未被认领且仍为 pending 的赛季记录进入取消列表,
// active 与 cancelled 记录无论是否匹配都不动.
func ReconcileSubscriptions(seasonYear int, charges []*ChargeItem, existing []*Subscription) *ReconcileOutcome {
	outcome := &ReconcileOutcome{}

	var seasonSubs []*Subscription
	for _, s := range existing {
		if s.SeasonYear != seasonYear {
			continue
		}
		seasonSubs = append(seasonSubs, s)
		switch s.Status {
		case constants.SubscriptionStatusActive:
			outcome.ActiveTotalPence += s.AmountPence
		case constants.SubscriptionStatusPending:
			outcome.PendingTotalPence += s.AmountPence
		}
	}

	claimed := make([]bool, len(seasonSubs))
	for _, ch := range charges {
		outcome.EngineTotalPence += ch.AmountPence

		matched := false
		for i, s := range seasonSubs {
			if claimed[i] {
				continue
			}
			if !sameIdentity(ch.MemberID, s.MemberID) {
				continue
			}
			claimed[i] = true
			matched = true
			break
		}
		if !matched {
			outcome.ToCreate = append(outcome.ToCreate, ch)
		}
	}

	for i, s := range seasonSubs {
		if !claimed[i] && s.Status == constants.SubscriptionStatusPending {
			outcome.ToCancel = append(outcome.ToCancel, s)
		}
	}

	outcome.RemainingPence = outcome.EngineTotalPence - outcome.ActiveTotalPence
	if outcome.RemainingPence < 0 {
		outcome.RemainingPence = 0
	}
	return outcome
}

func sameIdentity(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
