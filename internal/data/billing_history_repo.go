package data

import (
	"context"

	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
)

// billingHistoryRepo 计费历史仓库实现
type billingHistoryRepo struct {
	data *Data
	log  *log.Helper
}

// NewBillingHistoryRepo 创建计费历史仓库
func NewBillingHistoryRepo(data *Data, logger log.Logger) biz.BillingHistoryRepo {
	return &billingHistoryRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// AddBillingHistory 追加一条计费历史
func (r *billingHistoryRepo) AddBillingHistory(ctx context.Context, h *biz.BillingHistory) error {
	m := &model.BillingHistory{
		HouseholdID:    h.HouseholdID,
		SubscriptionID: h.SubscriptionID,
		SeasonYear:     h.SeasonYear,
		PlanKind:       h.PlanKind,
		Action:         h.Action,
		AmountPence:    h.AmountPence,
		Notes:          h.Notes,
		CreatedAt:      h.CreatedAt,
	}
	if err := r.data.DB(ctx).Create(m).Error; err != nil {
		r.log.Errorf("Failed to add billing history for household %d: %v", h.HouseholdID, err)
		return err
	}
	h.BillingHistoryID = m.BillingHistoryID
	return nil
}

// ListBillingHistory 分页查询家庭计费历史, 按时间倒序
func (r *billingHistoryRepo) ListBillingHistory(ctx context.Context, householdID uint64, page, pageSize int) ([]*biz.BillingHistory, int, error) {
	var models []model.BillingHistory
	var total int64

	if err := r.data.DB(ctx).Model(&model.BillingHistory{}).
		Where("household_id = ?", householdID).
		Count(&total).Error; err != nil {
		r.log.Errorf("Failed to count billing history for household %d: %v", householdID, err)
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.data.DB(ctx).
		Where("household_id = ?", householdID).
		Order("created_at DESC, billing_history_id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list billing history for household %d: %v", householdID, err)
		return nil, 0, err
	}

	items := make([]*biz.BillingHistory, len(models))
	for i, m := range models {
		items[i] = &biz.BillingHistory{
			BillingHistoryID: m.BillingHistoryID,
			HouseholdID:      m.HouseholdID,
			SubscriptionID:   m.SubscriptionID,
			SeasonYear:       m.SeasonYear,
			PlanKind:         m.PlanKind,
			Action:           m.Action,
			AmountPence:      m.AmountPence,
			Notes:            m.Notes,
			CreatedAt:        m.CreatedAt,
		}
	}
	return items, int(total), nil
}
