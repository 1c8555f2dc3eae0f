package biz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/conf"
	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
	bizErrors "github.com/kerry-png/clubstand-platform-sub000/internal/errors"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
)

// Transaction 数据层事务接口
type Transaction interface {
	Exec(ctx context.Context, fn func(ctx context.Context) error) error
}

// PricingPreview 一次家庭定价计算的完整输出
type PricingPreview struct {
	Config  *PricingConfig
	Pricing *PricingResult
	// Rules 通用规则引擎结果, 俱乐部未配置规则时为空
	Rules *RuleResult
}

// ReconcileReport 一次对账落库的结果汇总
type ReconcileReport struct {
	SeasonYear        int
	CreatedIDs        []string
	CancelledIDs      []string
	SkippedDuplicates int
	EngineTotalPence  int64
	ActiveTotalPence  int64
	PendingTotalPence int64
	RemainingPence    int64
}

// BillingUsecase 家庭会费计费业务逻辑
// 定价引擎与对账算法本身是纯函数, 本用例负责取数、加锁与事务落库
type BillingUsecase struct {
	memberRepo    MemberRepo
	householdRepo HouseholdRepo
	configRepo    PricingConfigRepo
	ruleRepo      PricingRuleRepo
	subRepo       SubscriptionRepo
	historyRepo   BillingHistoryRepo
	orderRepo     OrderRepo
	paymentClient PaymentClient
	tx            Transaction
	rs            *redsync.Redsync
	config        *conf.Bootstrap
	log           *log.Helper
}

// NewBillingUsecase 创建计费业务用例
func NewBillingUsecase(
	memberRepo MemberRepo,
	householdRepo HouseholdRepo,
	configRepo PricingConfigRepo,
	ruleRepo PricingRuleRepo,
	subRepo SubscriptionRepo,
	historyRepo BillingHistoryRepo,
	orderRepo OrderRepo,
	paymentClient PaymentClient,
	tx Transaction,
	rs *redsync.Redsync,
	config *conf.Bootstrap,
	logger log.Logger,
) *BillingUsecase {
	return &BillingUsecase{
		memberRepo:    memberRepo,
		householdRepo: householdRepo,
		configRepo:    configRepo,
		ruleRepo:      ruleRepo,
		subRepo:       subRepo,
		historyRepo:   historyRepo,
		orderRepo:     orderRepo,
		paymentClient: paymentClient,
		tx:            tx,
		rs:            rs,
		config:        config,
		log:           log.NewHelper(logger),
	}
}

// SeasonYear 当前计费赛季年份
func (uc *BillingUsecase) SeasonYear() int {
	if uc.config != nil && uc.config.Billing != nil && uc.config.Billing.SeasonYear > 0 {
		return uc.config.Billing.SeasonYear
	}
	return time.Now().UTC().Year()
}

func (uc *BillingUsecase) seasonType() string {
	if uc.config != nil && uc.config.Billing != nil && uc.config.Billing.SeasonType != "" {
		return uc.config.Billing.SeasonType
	}
	return "annual"
}

// GetHousehold 获取家庭, 不存在时返回业务错误
func (uc *BillingUsecase) GetHousehold(ctx context.Context, householdID uint64) (*Household, error) {
	h, err := uc.householdRepo.GetHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, bizErrors.ErrCodeHouseholdNotFound)
	}
	return h, nil
}

// PreviewPricing 计算家庭会费, 不写任何数据
func (uc *BillingUsecase) PreviewPricing(ctx context.Context, clubID string, householdID uint64, seasonYear int) (*PricingPreview, error) {
	if seasonYear <= 0 {
		seasonYear = uc.SeasonYear()
	}

	members, err := uc.memberRepo.ListMembersByHousehold(ctx, householdID)
	if err != nil {
		uc.log.Errorf("Failed to list members for household %d: %v", householdID, err)
		return nil, err
	}

	cfg, err := uc.configRepo.GetPricingConfig(ctx, clubID, uc.seasonType())
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultPricingConfig()
		cfg.ClubID = clubID
		cfg.SeasonType = uc.seasonType()
	}

	strategy, err := SelectStrategy(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pricing := strategy.Price(members, cfg, seasonYear)

	preview := &PricingPreview{Config: cfg, Pricing: pricing}

	// 俱乐部配置了通用规则时, 把收费项再过一遍规则引擎
	rules, err := uc.ruleRepo.ListActiveRules(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if len(rules) > 0 {
		ruleResult, ruleErr := ApplyPricingRules(ctx, ChargesToPricedItems(pricing.Charges), rules)
		var missing *MissingBundlePriceError
		if errors.As(ruleErr, &missing) {
			// 规则缺价不再静默吞掉, 至少要在日志里可见
			uc.log.Warnf("Pricing rule skipped for club %s: %v", clubID, missing)
		}
		preview.Rules = ruleResult
	}

	return preview, nil
}

// Reconcile 计算家庭会费并与既有订阅记录对账落库
// 同一家庭的并发对账由分布式锁拦截, 创建前再按唯一键去重兜底
func (uc *BillingUsecase) Reconcile(ctx context.Context, clubID string, householdID uint64, seasonYear int) (*ReconcileReport, error) {
	if seasonYear <= 0 {
		seasonYear = uc.SeasonYear()
	}

	lockKey := fmt.Sprintf("household_billing_lock:household:%d", householdID)
	mutex := uc.rs.NewMutex(
		lockKey,
		redsync.WithExpiry(constants.ReconcileLockExpiration),
		redsync.WithTries(constants.ReconcileLockRetries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		uc.log.Infof("Skipping reconcile for household %d: lock busy", householdID)
		return nil, pkgErrors.NewBizErrorWithLang(ctx, bizErrors.ErrCodeReconcileLockBusy)
	}
	defer func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			uc.log.Warnf("Failed to unlock reconcile lock for household %d: %v", householdID, err)
		}
	}()

	preview, err := uc.PreviewPricing(ctx, clubID, householdID, seasonYear)
	if err != nil {
		return nil, err
	}

	existing, err := uc.subRepo.ListSubscriptionsByHousehold(ctx, householdID)
	if err != nil {
		uc.log.Errorf("Failed to list subscriptions for household %d: %v", householdID, err)
		return nil, err
	}

	outcome := ReconcileSubscriptions(seasonYear, preview.Pricing.Charges, existing)
	report := &ReconcileReport{
		SeasonYear:        seasonYear,
		EngineTotalPence:  outcome.EngineTotalPence,
		ActiveTotalPence:  outcome.ActiveTotalPence,
		PendingTotalPence: outcome.PendingTotalPence,
		RemainingPence:    outcome.RemainingPence,
	}

	now := time.Now().UTC()
	err = uc.tx.Exec(ctx, func(ctx context.Context) error {
		for _, ch := range outcome.ToCreate {
			// 唯一键兜底: 并发窗口内已有同键的未取消记录时跳过
			dup, err := uc.subRepo.FindLiveSubscription(ctx, householdID, ch.Kind, ch.MemberID, seasonYear)
			if err != nil {
				return err
			}
			if dup != nil {
				report.SkippedDuplicates++
				continue
			}

			sub := &Subscription{
				SubscriptionID: uuid.New().String(),
				HouseholdID:    householdID,
				MemberID:       ch.MemberID,
				SeasonYear:     seasonYear,
				PlanKind:       ch.Kind,
				Status:         constants.SubscriptionStatusPending,
				AmountPence:    ch.AmountPence,
				Notes:          fmt.Sprintf("auto-created by reconcile for season %d", seasonYear),
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := uc.subRepo.CreateSubscription(ctx, sub); err != nil {
				return err
			}
			report.CreatedIDs = append(report.CreatedIDs, sub.SubscriptionID)

			if err := uc.historyRepo.AddBillingHistory(ctx, &BillingHistory{
				HouseholdID:    householdID,
				SubscriptionID: sub.SubscriptionID,
				SeasonYear:     seasonYear,
				PlanKind:       ch.Kind,
				Action:         constants.ActionSubscriptionCreated,
				AmountPence:    ch.AmountPence,
				CreatedAt:      now,
			}); err != nil {
				return err
			}
		}

		for _, sub := range outcome.ToCancel {
			sub.Status = constants.SubscriptionStatusCancelled
			sub.Notes = fmt.Sprintf("cancelled by reconcile for season %d: no longer justified", seasonYear)
			sub.UpdatedAt = now
			if err := uc.subRepo.SaveSubscription(ctx, sub); err != nil {
				return err
			}
			report.CancelledIDs = append(report.CancelledIDs, sub.SubscriptionID)

			if err := uc.historyRepo.AddBillingHistory(ctx, &BillingHistory{
				HouseholdID:    householdID,
				SubscriptionID: sub.SubscriptionID,
				SeasonYear:     seasonYear,
				PlanKind:       sub.PlanKind,
				Action:         constants.ActionSubscriptionCancelled,
				AmountPence:    sub.AmountPence,
				CreatedAt:      now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Errorf("Failed to apply reconcile for household %d: %v", householdID, err)
		return nil, err
	}

	uc.log.Infof("Reconciled household %d for season %d: created=%d cancelled=%d skipped=%d",
		householdID, seasonYear, len(report.CreatedIDs), len(report.CancelledIDs), report.SkippedDuplicates)
	return report, nil
}

// ListSubscriptions 列出家庭的订阅记录
func (uc *BillingUsecase) ListSubscriptions(ctx context.Context, householdID uint64) ([]*Subscription, error) {
	return uc.subRepo.ListSubscriptionsByHousehold(ctx, householdID)
}

// RunSeasonSweep 批量对账: 分页遍历所有家庭并执行对账
// 由定时任务调用; 单个家庭失败不中断整个批次
func (uc *BillingUsecase) RunSeasonSweep(ctx context.Context, seasonYear int) (int, int, error) {
	if seasonYear <= 0 {
		seasonYear = uc.SeasonYear()
	}
	pageSize := constants.DefaultSweepPageSize
	if uc.config != nil && uc.config.Billing != nil && uc.config.Billing.SweepPageSize > 0 {
		pageSize = uc.config.Billing.SweepPageSize
	}

	processed, failed := 0, 0
	for page := 1; ; page++ {
		households, total, err := uc.householdRepo.ListHouseholds(ctx, "", page, pageSize)
		if err != nil {
			return processed, failed, err
		}
		if len(households) == 0 {
			break
		}
		for _, h := range households {
			if _, err := uc.Reconcile(ctx, h.ClubID, h.HouseholdID, seasonYear); err != nil {
				failed++
				uc.log.Errorf("Season sweep: reconcile failed for household %d: %v", h.HouseholdID, err)
				continue
			}
			processed++
		}
		if page*pageSize >= total {
			break
		}
	}
	return processed, failed, nil
}
