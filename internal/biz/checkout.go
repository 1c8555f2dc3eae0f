package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
	bizErrors "github.com/kerry-png/clubstand-platform-sub000/internal/errors"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
)

// Order 结算订单: 把家庭当季全部待支付订阅打包成一笔支付
type Order struct {
	OrderID       string
	HouseholdID   uint64
	SeasonYear    int
	AmountPence   int64
	PaymentStatus string // pending, paid, closed
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderRepo 订单仓库接口
type OrderRepo interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	UpdateOrder(ctx context.Context, order *Order) error
	// CloseExpiredOrders 关闭超时未支付的订单, 返回关闭数量
	CloseExpiredOrders(ctx context.Context, olderThan time.Time) (int, error)
}

// PaymentClient 支付服务客户端接口 (防腐层)
type PaymentClient interface {
	CreatePayment(ctx context.Context, orderID string, householdID uint64, amountPence int64, subject, returnURL string) (paymentID, payURL string, err error)
}

// CheckoutResult 发起支付的结果
type CheckoutResult struct {
	OrderID     string
	PaymentID   string
	PayURL      string
	AmountPence int64
}

// CreateCheckout 为家庭当季的待支付订阅创建支付订单
func (uc *BillingUsecase) CreateCheckout(ctx context.Context, householdID uint64, seasonYear int) (*CheckoutResult, error) {
	if seasonYear <= 0 {
		seasonYear = uc.SeasonYear()
	}

	subs, err := uc.subRepo.ListSubscriptionsByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	var amount int64
	count := 0
	for _, s := range subs {
		if s.SeasonYear == seasonYear && s.Status == constants.SubscriptionStatusPending {
			amount += s.AmountPence
			count++
		}
	}
	if count == 0 {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, bizErrors.ErrCodeNoPendingCharges)
	}
	if amount <= 0 {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, bizErrors.ErrCodePaymentInvalidAmount)
	}

	now := time.Now().UTC()
	order := &Order{
		OrderID:       fmt.Sprintf("MEM%d%d", now.UnixNano(), householdID),
		HouseholdID:   householdID,
		SeasonYear:    seasonYear,
		AmountPence:   amount,
		PaymentStatus: constants.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.orderRepo.CreateOrder(ctx, order); err != nil {
		uc.log.Errorf("Failed to create order for household %d: %v", householdID, err)
		return nil, err
	}

	returnURL := ""
	if uc.config != nil && uc.config.Billing != nil {
		returnURL = uc.config.Billing.ReturnURL
	}
	subject := fmt.Sprintf("Membership fees season %d", seasonYear)
	paymentID, payURL, err := uc.paymentClient.CreatePayment(ctx, order.OrderID, householdID, amount, subject, returnURL)
	if err != nil {
		uc.log.Errorf("Payment service failed for order %s: %v", order.OrderID, err)
		return nil, pkgErrors.NewBizErrorWithLang(ctx, bizErrors.ErrCodePaymentFailed)
	}

	return &CheckoutResult{
		OrderID:     order.OrderID,
		PaymentID:   paymentID,
		PayURL:      payURL,
		AmountPence: amount,
	}, nil
}

// HandlePaymentSuccess 处理支付成功回调
// 订单下所有仍为 pending 的当季订阅转为 active; 已取消的记录永不重新激活
func (uc *BillingUsecase) HandlePaymentSuccess(ctx context.Context, orderID string, amountPence int64) error {
	order, err := uc.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return pkgErrors.NewBizErrorWithLang(ctx, bizErrors.ErrCodeOrderNotFound)
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		// 回调重放, 幂等处理
		uc.log.Infof("Order %s already paid, ignoring duplicate notification", orderID)
		return nil
	}
	if amountPence != order.AmountPence {
		uc.log.Errorf("Payment amount mismatch for order %s: got %d, want %d", orderID, amountPence, order.AmountPence)
		return pkgErrors.NewBizErrorWithLang(ctx, bizErrors.ErrCodePaymentInvalidAmount)
	}

	now := time.Now().UTC()
	return uc.tx.Exec(ctx, func(ctx context.Context) error {
		order.PaymentStatus = constants.PaymentStatusPaid
		order.UpdatedAt = now
		if err := uc.orderRepo.UpdateOrder(ctx, order); err != nil {
			return err
		}

		subs, err := uc.subRepo.ListSubscriptionsByHousehold(ctx, order.HouseholdID)
		if err != nil {
			return err
		}
		for _, s := range subs {
			if s.SeasonYear != order.SeasonYear || s.Status != constants.SubscriptionStatusPending {
				continue
			}
			s.Status = constants.SubscriptionStatusActive
			s.UpdatedAt = now
			if err := uc.subRepo.SaveSubscription(ctx, s); err != nil {
				return err
			}
			if err := uc.historyRepo.AddBillingHistory(ctx, &BillingHistory{
				HouseholdID:    order.HouseholdID,
				SubscriptionID: s.SubscriptionID,
				SeasonYear:     s.SeasonYear,
				PlanKind:       s.PlanKind,
				Action:         constants.ActionSubscriptionActivated,
				AmountPence:    s.AmountPence,
				Notes:          fmt.Sprintf("activated by payment of order %s", orderID),
				CreatedAt:      now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// CloseExpiredOrders 关闭超时未支付的订单 (定时任务调用)
func (uc *BillingUsecase) CloseExpiredOrders(ctx context.Context) (int, error) {
	expiryMinutes := constants.DefaultOrderExpiryMinutes
	if uc.config != nil && uc.config.Billing != nil && uc.config.Billing.OrderExpiryMinutes > 0 {
		expiryMinutes = uc.config.Billing.OrderExpiryMinutes
	}
	olderThan := time.Now().UTC().Add(-time.Duration(expiryMinutes) * time.Minute)
	return uc.orderRepo.CloseExpiredOrders(ctx, olderThan)
}
