package data

import (
	"context"
	"errors"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
	"github.com/kerry-png/clubstand-platform-sub000/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// orderRepo 订单仓库实现
type orderRepo struct {
	data *Data
	log  *log.Helper
}

// NewOrderRepo 创建订单仓库
func NewOrderRepo(data *Data, logger log.Logger) biz.OrderRepo {
	return &orderRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// CreateOrder 创建订单
func (r *orderRepo) CreateOrder(ctx context.Context, order *biz.Order) error {
	m := toModelOrder(order)
	if err := r.data.DB(ctx).Create(m).Error; err != nil {
		r.log.Errorf("Failed to create order for household %d: %v", order.HouseholdID, err)
		return err
	}
	return nil
}

// GetOrder 获取订单, 不存在时返回 (nil, nil)
func (r *orderRepo) GetOrder(ctx context.Context, orderID string) (*biz.Order, error) {
	var m model.Order
	err := r.data.DB(ctx).Where("order_id = ?", orderID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to get order %s: %v", orderID, err)
		return nil, err
	}
	return &biz.Order{
		OrderID:       m.OrderID,
		HouseholdID:   m.HouseholdID,
		SeasonYear:    m.SeasonYear,
		AmountPence:   m.AmountPence,
		PaymentStatus: m.PaymentStatus,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// UpdateOrder 更新订单
func (r *orderRepo) UpdateOrder(ctx context.Context, order *biz.Order) error {
	m := toModelOrder(order)
	if err := r.data.DB(ctx).Save(m).Error; err != nil {
		r.log.Errorf("Failed to update order %s: %v", order.OrderID, err)
		return err
	}
	return nil
}

// CloseExpiredOrders 关闭超时未支付的订单
func (r *orderRepo) CloseExpiredOrders(ctx context.Context, olderThan time.Time) (int, error) {
	result := r.data.DB(ctx).
		Model(&model.Order{}).
		Where("payment_status = ? AND created_at < ?", constants.PaymentStatusPending, olderThan).
		Update("payment_status", constants.PaymentStatusClosed)
	if result.Error != nil {
		r.log.Errorf("Failed to close expired orders: %v", result.Error)
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func toModelOrder(order *biz.Order) *model.Order {
	return &model.Order{
		OrderID:       order.OrderID,
		HouseholdID:   order.HouseholdID,
		SeasonYear:    order.SeasonYear,
		AmountPence:   order.AmountPence,
		PaymentStatus: order.PaymentStatus,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
