package service

import (
	"context"

	"github.com/kerry-png/clubstand-platform-sub000/internal/auth"
	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	"github.com/gaoyong06/go-pkg/middleware/app_id"
)

// MembershipService 会员计费服务
type MembershipService struct {
	billing *biz.BillingUsecase
	config  *biz.ConfigUsecase
}

// NewMembershipService 创建会员计费服务实例
func NewMembershipService(billing *biz.BillingUsecase, config *biz.ConfigUsecase) *MembershipService {
	return &MembershipService{billing: billing, config: config}
}

// CalculatePricing 计算家庭会费 (只读预览)
// 返回按成员的明细、收费项拆分和规则引擎调整
func (s *MembershipService) CalculatePricing(ctx context.Context, req *CalculatePricingRequest) (*CalculatePricingReply, error) {
	household, err := s.billing.GetHousehold(ctx, req.HouseholdID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckHouseholdAccess(ctx, household.OwnerUID); err != nil {
		return nil, err
	}

	preview, err := s.billing.PreviewPricing(ctx, household.ClubID, req.HouseholdID, req.SeasonYear)
	if err != nil {
		return nil, err
	}
	return toPricingReply(preview), nil
}

// Reconcile 计算家庭会费并与既有订阅记录对账落库
func (s *MembershipService) Reconcile(ctx context.Context, req *ReconcileRequest) (*ReconcileReply, error) {
	household, err := s.billing.GetHousehold(ctx, req.HouseholdID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckHouseholdAccess(ctx, household.OwnerUID); err != nil {
		return nil, err
	}

	report, err := s.billing.Reconcile(ctx, household.ClubID, req.HouseholdID, req.SeasonYear)
	if err != nil {
		return nil, err
	}
	return &ReconcileReply{
		SeasonYear:        report.SeasonYear,
		CreatedIDs:        report.CreatedIDs,
		CancelledIDs:      report.CancelledIDs,
		SkippedDuplicates: report.SkippedDuplicates,
		EngineTotalPence:  report.EngineTotalPence,
		ActiveTotalPence:  report.ActiveTotalPence,
		PendingTotalPence: report.PendingTotalPence,
		RemainingPence:    report.RemainingPence,
	}, nil
}

// ListSubscriptions 列出家庭的订阅记录
func (s *MembershipService) ListSubscriptions(ctx context.Context, req *ListSubscriptionsRequest) (*ListSubscriptionsReply, error) {
	household, err := s.billing.GetHousehold(ctx, req.HouseholdID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckHouseholdAccess(ctx, household.OwnerUID); err != nil {
		return nil, err
	}

	subs, err := s.billing.ListSubscriptions(ctx, req.HouseholdID)
	if err != nil {
		return nil, err
	}

	items := make([]*SubscriptionInfo, len(subs))
	for i, sub := range subs {
		items[i] = &SubscriptionInfo{
			SubscriptionID: sub.SubscriptionID,
			MemberID:       sub.MemberID,
			SeasonYear:     sub.SeasonYear,
			PlanKind:       sub.PlanKind,
			Status:         sub.Status,
			AmountPence:    sub.AmountPence,
			Notes:          sub.Notes,
			CreatedAt:      sub.CreatedAt.Unix(),
		}
	}
	return &ListSubscriptionsReply{Subscriptions: items}, nil
}

// CreateCheckout 为家庭待支付订阅创建支付订单
func (s *MembershipService) CreateCheckout(ctx context.Context, req *CreateCheckoutRequest) (*CreateCheckoutReply, error) {
	household, err := s.billing.GetHousehold(ctx, req.HouseholdID)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckHouseholdAccess(ctx, household.OwnerUID); err != nil {
		return nil, err
	}

	result, err := s.billing.CreateCheckout(ctx, req.HouseholdID, req.SeasonYear)
	if err != nil {
		return nil, err
	}
	return &CreateCheckoutReply{
		OrderID:     result.OrderID,
		PaymentID:   result.PaymentID,
		PayURL:      result.PayURL,
		AmountPence: result.AmountPence,
	}, nil
}

// HandlePaymentNotify 处理支付成功回调
func (s *MembershipService) HandlePaymentNotify(ctx context.Context, req *PaymentNotifyRequest) (*PaymentNotifyReply, error) {
	if err := s.billing.HandlePaymentSuccess(ctx, req.OrderID, req.AmountPence); err != nil {
		return nil, err
	}
	return &PaymentNotifyReply{Success: true}, nil
}

// GetPricingConfig 获取俱乐部定价配置 (未配置时返回默认值)
func (s *MembershipService) GetPricingConfig(ctx context.Context, req *GetPricingConfigRequest) (*PricingConfigReply, error) {
	clubID := app_id.GetAppIDFromContext(ctx)
	if clubID == "" {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, pkgErrors.ErrCodeInvalidArgument)
	}

	cfg, err := s.config.GetPricingConfig(ctx, clubID, req.SeasonType)
	if err != nil {
		return nil, err
	}
	return toConfigReply(cfg), nil
}

// SavePricingConfig 保存俱乐部定价配置
func (s *MembershipService) SavePricingConfig(ctx context.Context, req *SavePricingConfigRequest) (*PricingConfigReply, error) {
	clubID := app_id.GetAppIDFromContext(ctx)
	if clubID == "" {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, pkgErrors.ErrCodeInvalidArgument)
	}

	cfg := fromConfigRequest(clubID, req)
	if err := s.config.SavePricingConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return toConfigReply(cfg), nil
}

// ListPricingRules 列出俱乐部定价规则
func (s *MembershipService) ListPricingRules(ctx context.Context, req *ListPricingRulesRequest) (*ListPricingRulesReply, error) {
	clubID := app_id.GetAppIDFromContext(ctx)
	if clubID == "" {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, pkgErrors.ErrCodeInvalidArgument)
	}

	rules, err := s.config.ListRules(ctx, clubID)
	if err != nil {
		return nil, err
	}
	items := make([]*PricingRuleInfo, len(rules))
	for i, r := range rules {
		items[i] = toRuleInfo(r)
	}
	return &ListPricingRulesReply{Rules: items}, nil
}

// CreatePricingRule 创建定价规则
func (s *MembershipService) CreatePricingRule(ctx context.Context, req *PricingRuleRequest) (*PricingRuleReply, error) {
	clubID := app_id.GetAppIDFromContext(ctx)
	if clubID == "" {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, pkgErrors.ErrCodeInvalidArgument)
	}

	rule := fromRuleRequest(clubID, req)
	if err := s.config.CreateRule(ctx, rule); err != nil {
		return nil, err
	}
	return &PricingRuleReply{Rule: toRuleInfo(rule)}, nil
}

// UpdatePricingRule 更新定价规则
func (s *MembershipService) UpdatePricingRule(ctx context.Context, ruleID uint64, req *PricingRuleRequest) (*PricingRuleReply, error) {
	clubID := app_id.GetAppIDFromContext(ctx)
	if clubID == "" {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, pkgErrors.ErrCodeInvalidArgument)
	}

	rule := fromRuleRequest(clubID, req)
	rule.RuleID = ruleID
	if err := s.config.UpdateRule(ctx, rule); err != nil {
		return nil, err
	}
	return &PricingRuleReply{Rule: toRuleInfo(rule)}, nil
}

// DeletePricingRule 删除定价规则
func (s *MembershipService) DeletePricingRule(ctx context.Context, ruleID uint64) (*DeletePricingRuleReply, error) {
	if err := s.config.DeleteRule(ctx, ruleID); err != nil {
		return nil, err
	}
	return &DeletePricingRuleReply{RuleID: ruleID}, nil
}

func toPricingReply(preview *biz.PricingPreview) *CalculatePricingReply {
	pricing := preview.Pricing
	reply := &CalculatePricingReply{
		SeasonYear:   pricing.SeasonYear,
		CutoffDate:   pricing.CutoffDate,
		TotalPence:   pricing.TotalPence,
		PricingModel: preview.Config.PricingModel,
		Summary: &PricingSummaryInfo{
			AdultCount:         pricing.Summary.AdultCount,
			JuniorCount:        pricing.Summary.JuniorCount,
			SocialCount:        pricing.Summary.SocialCount,
			UnclassifiedCount:  pricing.Summary.UnclassifiedCount,
			AdultTotalPence:    pricing.Summary.AdultTotalPence,
			JuniorTotalPence:   pricing.Summary.JuniorTotalPence,
			SocialTotalPence:   pricing.Summary.SocialTotalPence,
			AdultBundleApplied: pricing.Summary.AdultBundleApplied,
		},
	}

	for _, m := range pricing.Members {
		reply.Members = append(reply.Members, &MemberPriceInfo{
			MemberID:      m.MemberID,
			Name:          m.Name,
			Category:      m.Category,
			Band:          m.Band,
			AgeOnCutoff:   m.AgeOnCutoff,
			PricePence:    m.PricePence,
			BundleCovered: m.BundleCovered,
			Note:          m.Note,
		})
	}
	for _, ch := range pricing.Charges {
		reply.Charges = append(reply.Charges, &ChargeItemInfo{
			Kind:          ch.Kind,
			MemberID:      ch.MemberID,
			AmountPence:   ch.AmountPence,
			BillingPeriod: ch.BillingPeriod,
		})
	}

	if preview.Rules != nil {
		rules := &RuleResultInfo{
			BaseTotalPence:  preview.Rules.BaseTotalPence,
			FinalTotalPence: preview.Rules.FinalTotalPence,
			AdjustmentPence: preview.Rules.AdjustmentPence,
		}
		for _, a := range preview.Rules.Applied {
			rules.Applied = append(rules.Applied, &RuleApplicationInfo{
				RuleID:      a.RuleID,
				RuleType:    a.RuleType,
				Name:        a.Name,
				ImpactPence: a.ImpactPence,
			})
		}
		reply.Rules = rules
	}
	return reply
}

func toConfigReply(cfg *biz.PricingConfig) *PricingConfigReply {
	return &PricingConfigReply{
		ClubID:                  cfg.ClubID,
		SeasonType:              cfg.SeasonType,
		PricingModel:            cfg.PricingModel,
		CutoffMonth:             cfg.CutoffMonth,
		CutoffDay:               cfg.CutoffDay,
		JuniorMaxAge:            cfg.JuniorMaxAge,
		AdultMinAge:             cfg.AdultMinAge,
		AdultBundleMinAge:       cfg.AdultBundleMinAge,
		MinAdultsForBundle:      cfg.MinAdultsForBundle,
		RequireJuniorForBundle:  cfg.RequireJuniorForBundle,
		EnableAdultBundle:       cfg.EnableAdultBundle,
		JuniorSinglePence:       cfg.JuniorSinglePence,
		JuniorMultiPence:        cfg.JuniorMultiPence,
		MaleFullPence:           cfg.MaleFullPence,
		MaleIntermediatePence:   cfg.MaleIntermediatePence,
		FemaleFullPence:         cfg.FemaleFullPence,
		FemaleIntermediatePence: cfg.FemaleIntermediatePence,
		SocialAdultPence:        cfg.SocialAdultPence,
		AdultBundlePence:        cfg.AdultBundlePence,
	}
}

func fromConfigRequest(clubID string, req *SavePricingConfigRequest) *biz.PricingConfig {
	seasonType := req.SeasonType
	if seasonType == "" {
		seasonType = "annual"
	}
	pricingModel := req.PricingModel
	if pricingModel == "" {
		pricingModel = constants.PricingModelBundled
	}
	return &biz.PricingConfig{
		ClubID:                  clubID,
		SeasonType:              seasonType,
		PricingModel:            pricingModel,
		CutoffMonth:             req.CutoffMonth,
		CutoffDay:               req.CutoffDay,
		JuniorMaxAge:            req.JuniorMaxAge,
		AdultMinAge:             req.AdultMinAge,
		AdultBundleMinAge:       req.AdultBundleMinAge,
		MinAdultsForBundle:      req.MinAdultsForBundle,
		RequireJuniorForBundle:  req.RequireJuniorForBundle,
		EnableAdultBundle:       req.EnableAdultBundle,
		JuniorSinglePence:       req.JuniorSinglePence,
		JuniorMultiPence:        req.JuniorMultiPence,
		MaleFullPence:           req.MaleFullPence,
		MaleIntermediatePence:   req.MaleIntermediatePence,
		FemaleFullPence:         req.FemaleFullPence,
		FemaleIntermediatePence: req.FemaleIntermediatePence,
		SocialAdultPence:        req.SocialAdultPence,
		AdultBundlePence:        req.AdultBundlePence,
	}
}

func toRuleInfo(r *biz.PricingRule) *PricingRuleInfo {
	return &PricingRuleInfo{
		RuleID:              r.RuleID,
		Name:                r.Name,
		RuleType:            r.RuleType,
		PlanIDs:             r.PlanIDs,
		MinQuantity:         r.MinQuantity,
		CapAmountPence:      r.CapAmountPence,
		DiscountAmountPence: r.DiscountAmountPence,
		DiscountPercent:     r.DiscountPercent,
		BundlePricePence:    r.BundlePricePence,
		RequiredAdults:      r.RequiredAdults,
		RequiredJuniors:     r.RequiredJuniors,
		AnyJunior:           r.AnyJunior,
		Priority:            r.Priority,
		Active:              r.Active,
		Exclusive:           r.Exclusive,
	}
}

func fromRuleRequest(clubID string, req *PricingRuleRequest) *biz.PricingRule {
	return &biz.PricingRule{
		ClubID:              clubID,
		Name:                req.Name,
		RuleType:            req.RuleType,
		PlanIDs:             req.PlanIDs,
		MinQuantity:         req.MinQuantity,
		CapAmountPence:      req.CapAmountPence,
		DiscountAmountPence: req.DiscountAmountPence,
		DiscountPercent:     req.DiscountPercent,
		BundlePricePence:    req.BundlePricePence,
		RequiredAdults:      req.RequiredAdults,
		RequiredJuniors:     req.RequiredJuniors,
		AnyJunior:           req.AnyJunior,
		Priority:            req.Priority,
		Active:              req.Active,
		Exclusive:           req.Exclusive,
	}
}
