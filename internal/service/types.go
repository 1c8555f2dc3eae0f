package service

// 服务层请求/响应结构 (JSON over HTTP)

type CalculatePricingRequest struct {
	HouseholdID uint64 `json:"household_id"`
	SeasonYear  int    `json:"season_year"`
}

type MemberPriceInfo struct {
	MemberID      uint64 `json:"member_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Band          string `json:"band,omitempty"`
	AgeOnCutoff   int    `json:"age_on_cutoff"`
	PricePence    int64  `json:"price_pence"`
	BundleCovered bool   `json:"bundle_covered"`
	Note          string `json:"note,omitempty"`
}

type ChargeItemInfo struct {
	Kind          string  `json:"kind"`
	MemberID      *uint64 `json:"member_id,omitempty"`
	AmountPence   int64   `json:"amount_pence"`
	BillingPeriod string  `json:"billing_period"`
}

type PricingSummaryInfo struct {
	AdultCount         int   `json:"adult_count"`
	JuniorCount        int   `json:"junior_count"`
	SocialCount        int   `json:"social_count"`
	UnclassifiedCount  int   `json:"unclassified_count"`
	AdultTotalPence    int64 `json:"adult_total_pence"`
	JuniorTotalPence   int64 `json:"junior_total_pence"`
	SocialTotalPence   int64 `json:"social_total_pence"`
	AdultBundleApplied bool  `json:"adult_bundle_applied"`
}

type RuleApplicationInfo struct {
	RuleID      uint64 `json:"rule_id"`
	RuleType    string `json:"rule_type"`
	Name        string `json:"name"`
	ImpactPence int64  `json:"impact_pence"`
}

type RuleResultInfo struct {
	BaseTotalPence  int64                  `json:"base_total_pence"`
	FinalTotalPence int64                  `json:"final_total_pence"`
	AdjustmentPence int64                  `json:"adjustment_pence"`
	Applied         []*RuleApplicationInfo `json:"applied,omitempty"`
}

type CalculatePricingReply struct {
	SeasonYear   int                 `json:"season_year"`
	CutoffDate   string              `json:"cutoff_date"`
	TotalPence   int64               `json:"total_pence"`
	PricingModel string              `json:"pricing_model"`
	Members      []*MemberPriceInfo  `json:"members"`
	Charges      []*ChargeItemInfo   `json:"charges"`
	Summary      *PricingSummaryInfo `json:"summary"`
	Rules        *RuleResultInfo     `json:"rules,omitempty"`
}

type ReconcileRequest struct {
	HouseholdID uint64 `json:"household_id"`
	SeasonYear  int    `json:"season_year"`
}

type ReconcileReply struct {
	SeasonYear        int      `json:"season_year"`
	CreatedIDs        []string `json:"created_ids"`
	CancelledIDs      []string `json:"cancelled_ids"`
	SkippedDuplicates int      `json:"skipped_duplicates"`
	EngineTotalPence  int64    `json:"engine_total_pence"`
	ActiveTotalPence  int64    `json:"active_total_pence"`
	PendingTotalPence int64    `json:"pending_total_pence"`
	RemainingPence    int64    `json:"remaining_pence"`
}

type ListSubscriptionsRequest struct {
	HouseholdID uint64 `json:"household_id"`
}

type SubscriptionInfo struct {
	SubscriptionID string  `json:"subscription_id"`
	MemberID       *uint64 `json:"member_id,omitempty"`
	SeasonYear     int     `json:"season_year"`
	PlanKind       string  `json:"plan_kind"`
	Status         string  `json:"status"`
	AmountPence    int64   `json:"amount_pence"`
	Notes          string  `json:"notes,omitempty"`
	CreatedAt      int64   `json:"created_at"`
}

type ListSubscriptionsReply struct {
	Subscriptions []*SubscriptionInfo `json:"subscriptions"`
}

type CreateCheckoutRequest struct {
	HouseholdID uint64 `json:"household_id"`
	SeasonYear  int    `json:"season_year"`
}

type CreateCheckoutReply struct {
	OrderID     string `json:"order_id"`
	PaymentID   string `json:"payment_id"`
	PayURL      string `json:"pay_url"`
	AmountPence int64  `json:"amount_pence"`
}

type PaymentNotifyRequest struct {
	OrderID     string `json:"order_id"`
	AmountPence int64  `json:"amount_pence"`
}

type PaymentNotifyReply struct {
	Success bool `json:"success"`
}

type GetPricingConfigRequest struct {
	SeasonType string `json:"season_type"`
}

type SavePricingConfigRequest struct {
	SeasonType              string `json:"season_type"`
	PricingModel            string `json:"pricing_model"`
	CutoffMonth             int    `json:"cutoff_month"`
	CutoffDay               int    `json:"cutoff_day"`
	JuniorMaxAge            int    `json:"junior_max_age"`
	AdultMinAge             int    `json:"adult_min_age"`
	AdultBundleMinAge       int    `json:"adult_bundle_min_age"`
	MinAdultsForBundle      int    `json:"min_adults_for_bundle"`
	RequireJuniorForBundle  bool   `json:"require_junior_for_bundle"`
	EnableAdultBundle       bool   `json:"enable_adult_bundle"`
	JuniorSinglePence       int64  `json:"junior_single_pence"`
	JuniorMultiPence        int64  `json:"junior_multi_pence"`
	MaleFullPence           int64  `json:"male_full_pence"`
	MaleIntermediatePence   int64  `json:"male_intermediate_pence"`
	FemaleFullPence         int64  `json:"female_full_pence"`
	FemaleIntermediatePence int64  `json:"female_intermediate_pence"`
	SocialAdultPence        int64  `json:"social_adult_pence"`
	AdultBundlePence        int64  `json:"adult_bundle_pence"`
}

type PricingConfigReply struct {
	ClubID                  string `json:"club_id"`
	SeasonType              string `json:"season_type"`
	PricingModel            string `json:"pricing_model"`
	CutoffMonth             int    `json:"cutoff_month"`
	CutoffDay               int    `json:"cutoff_day"`
	JuniorMaxAge            int    `json:"junior_max_age"`
	AdultMinAge             int    `json:"adult_min_age"`
	AdultBundleMinAge       int    `json:"adult_bundle_min_age"`
	MinAdultsForBundle      int    `json:"min_adults_for_bundle"`
	RequireJuniorForBundle  bool   `json:"require_junior_for_bundle"`
	EnableAdultBundle       bool   `json:"enable_adult_bundle"`
	JuniorSinglePence       int64  `json:"junior_single_pence"`
	JuniorMultiPence        int64  `json:"junior_multi_pence"`
	MaleFullPence           int64  `json:"male_full_pence"`
	MaleIntermediatePence   int64  `json:"male_intermediate_pence"`
	FemaleFullPence         int64  `json:"female_full_pence"`
	FemaleIntermediatePence int64  `json:"female_intermediate_pence"`
	SocialAdultPence        int64  `json:"social_adult_pence"`
	AdultBundlePence        int64  `json:"adult_bundle_pence"`
}

type ListPricingRulesRequest struct{}

type PricingRuleInfo struct {
	RuleID              uint64   `json:"rule_id"`
	Name                string   `json:"name"`
	RuleType            string   `json:"rule_type"`
	PlanIDs             []string `json:"plan_ids,omitempty"`
	MinQuantity         int      `json:"min_quantity"`
	CapAmountPence      int64    `json:"cap_amount_pence"`
	DiscountAmountPence int64    `json:"discount_amount_pence"`
	DiscountPercent     int      `json:"discount_percent"`
	BundlePricePence    int64    `json:"bundle_price_pence"`
	RequiredAdults      int      `json:"required_adults"`
	RequiredJuniors     int      `json:"required_juniors"`
	AnyJunior           bool     `json:"any_junior"`
	Priority            int      `json:"priority"`
	Active              bool     `json:"active"`
	Exclusive           bool     `json:"exclusive"`
}

type ListPricingRulesReply struct {
	Rules []*PricingRuleInfo `json:"rules"`
}

type PricingRuleRequest struct {
	Name                string   `json:"name"`
	RuleType            string   `json:"rule_type"`
	PlanIDs             []string `json:"plan_ids"`
	MinQuantity         int      `json:"min_quantity"`
	CapAmountPence      int64    `json:"cap_amount_pence"`
	DiscountAmountPence int64    `json:"discount_amount_pence"`
	DiscountPercent     int      `json:"discount_percent"`
	BundlePricePence    int64    `json:"bundle_price_pence"`
	RequiredAdults      int      `json:"required_adults"`
	RequiredJuniors     int      `json:"required_juniors"`
	AnyJunior           bool     `json:"any_junior"`
	Priority            int      `json:"priority"`
	Active              bool     `json:"active"`
	Exclusive           bool     `json:"exclusive"`
}

type PricingRuleReply struct {
	Rule *PricingRuleInfo `json:"rule"`
}

type DeletePricingRuleReply struct {
	RuleID uint64 `json:"rule_id"`
}
