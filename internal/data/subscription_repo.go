package data

import (
	"context"
	"errors"

	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
	"github.com/kerry-png/clubstand-platform-sub000/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// subscriptionRepo 订阅记录仓库实现
type subscriptionRepo struct {
	data *Data
	log  *log.Helper
}

// NewSubscriptionRepo 创建订阅记录仓库
func NewSubscriptionRepo(data *Data, logger log.Logger) biz.SubscriptionRepo {
	return &subscriptionRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// ListSubscriptionsByHousehold 获取家庭全部订阅记录(所有赛季、所有状态)
func (r *subscriptionRepo) ListSubscriptionsByHousehold(ctx context.Context, householdID uint64) ([]*biz.Subscription, error) {
	var models []model.Subscription
	if err := r.data.DB(ctx).
		Where("household_id = ?", householdID).
		Order("created_at ASC, subscription_id ASC").
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list subscriptions for household %d: %v", householdID, err)
		return nil, err
	}

	subs := make([]*biz.Subscription, len(models))
	for i, m := range models {
		subs[i] = toBizSubscription(&m)
	}
	return subs, nil
}

// FindLiveSubscription 按 (plan, member-or-household, season) 查找未取消的记录
// 用于创建前的唯一键去重
func (r *subscriptionRepo) FindLiveSubscription(ctx context.Context, householdID uint64, planKind string, memberID *uint64, seasonYear int) (*biz.Subscription, error) {
	query := r.data.DB(ctx).
		Where("household_id = ? AND plan_kind = ? AND season_year = ? AND status <> ?",
			householdID, planKind, seasonYear, constants.SubscriptionStatusCancelled)
	if memberID == nil {
		query = query.Where("member_id IS NULL")
	} else {
		query = query.Where("member_id = ?", *memberID)
	}

	var m model.Subscription
	err := query.First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to find live subscription for household %d: %v", householdID, err)
		return nil, err
	}
	return toBizSubscription(&m), nil
}

// CreateSubscription 创建订阅记录
func (r *subscriptionRepo) CreateSubscription(ctx context.Context, sub *biz.Subscription) error {
	m := toModelSubscription(sub)
	if err := r.data.DB(ctx).Create(m).Error; err != nil {
		r.log.Errorf("Failed to create subscription for household %d: %v", sub.HouseholdID, err)
		return err
	}
	return nil
}

// SaveSubscription 保存订阅记录
func (r *subscriptionRepo) SaveSubscription(ctx context.Context, sub *biz.Subscription) error {
	m := toModelSubscription(sub)
	if err := r.data.DB(ctx).Save(m).Error; err != nil {
		r.log.Errorf("Failed to save subscription %s: %v", sub.SubscriptionID, err)
		return err
	}
	return nil
}

func toBizSubscription(m *model.Subscription) *biz.Subscription {
	return &biz.Subscription{
		SubscriptionID: m.SubscriptionID,
		HouseholdID:    m.HouseholdID,
		MemberID:       m.MemberID,
		SeasonYear:     m.SeasonYear,
		PlanKind:       m.PlanKind,
		Status:         m.Status,
		AmountPence:    m.AmountPence,
		DiscountPence:  m.DiscountPence,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toModelSubscription(sub *biz.Subscription) *model.Subscription {
	return &model.Subscription{
		SubscriptionID: sub.SubscriptionID,
		HouseholdID:    sub.HouseholdID,
		MemberID:       sub.MemberID,
		SeasonYear:     sub.SeasonYear,
		PlanKind:       sub.PlanKind,
		Status:         sub.Status,
		AmountPence:    sub.AmountPence,
		DiscountPence:  sub.DiscountPence,
		Notes:          sub.Notes,
		CreatedAt:      sub.CreatedAt,
		UpdatedAt:      sub.UpdatedAt,
	}
}
