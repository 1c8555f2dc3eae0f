package data

import (
	"context"

	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/conf"
	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"

	"github.com/go-kratos/kratos/v2/transport/http"
)

// paymentClient 支付服务客户端 (防腐层)
// 通过 payment-service 的 JSON 接口创建支付
type paymentClient struct {
	client *http.Client
}

// NewPaymentClient 创建支付服务客户端
func NewPaymentClient(c *conf.Bootstrap) (biz.PaymentClient, error) {
	client, err := http.NewClient(
		context.Background(),
		http.WithEndpoint(c.Client.PaymentService.Addr),
	)
	if err != nil {
		return nil, err
	}
	return &paymentClient{client: client}, nil
}

type createPaymentRequest struct {
	OrderID     string `json:"order_id"`
	HouseholdID uint64 `json:"household_id"`
	AmountPence int64  `json:"amount_pence"`
	Currency    string `json:"currency"`
	Source      string `json:"source"`
	Subject     string `json:"subject"`
	ReturnURL   string `json:"return_url"`
}

type createPaymentReply struct {
	PaymentID string `json:"payment_id"`
	PayURL    string `json:"pay_url"`
}

// CreatePayment 调用支付服务创建支付
func (c *paymentClient) CreatePayment(ctx context.Context, orderID string, householdID uint64, amountPence int64, subject, returnURL string) (string, string, error) {
	req := &createPaymentRequest{
		OrderID:     orderID,
		HouseholdID: householdID,
		AmountPence: amountPence,
		Currency:    "GBP",
		Source:      constants.PaymentSourceMembership,
		Subject:     subject,
		ReturnURL:   returnURL,
	}

	var resp createPaymentReply
	if err := c.client.Invoke(ctx, "POST", "/v1/payments", req, &resp); err != nil {
		return "", "", err
	}
	return resp.PaymentID, resp.PayURL, nil
}
