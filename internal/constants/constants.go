package constants

import "time"

// 缓存相关常量
const (
	// DefaultCacheExpiration 默认缓存过期时间
	DefaultCacheExpiration = time.Hour
	// NullCacheExpiration 空值缓存过期时间 (防止缓存穿透)
	NullCacheExpiration = 5 * time.Minute
	// CacheRandomMaxSeconds 缓存随机过期时间最大值(秒) - 防止缓存雪崩
	CacheRandomMaxSeconds = 600 // 10分钟
)

// 分页相关常量
const (
	// DefaultPageSize 默认分页大小
	DefaultPageSize = 10
	// MaxPageSize 最大分页大小
	MaxPageSize = 100
)

// 分布式锁相关常量
const (
	// ReconcileLockExpiration 家庭对账锁过期时间
	ReconcileLockExpiration = 5 * time.Minute
	// ReconcileLockRetries 家庭对账锁重试次数
	ReconcileLockRetries = 1
)

// 订阅记录状态
const (
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

// 成员角色
const (
	RolePlaying   = "playing"
	RoleSupporter = "supporter"
	RoleCoach     = "coach"
	RoleOther     = "other"
)

// 成员性别
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

// 定价分类
const (
	CategoryJunior       = "junior"
	CategoryAdult        = "adult"
	CategorySocial       = "social"
	CategoryUnclassified = "unclassified"
)

// 成人价格档位
const (
	BandMaleFull           = "male_full"
	BandMaleIntermediate   = "male_intermediate"
	BandFemaleFull         = "female_full"
	BandFemaleIntermediate = "female_intermediate"
)

// 定价模式 (pricing_model)
const (
	PricingModelBundled = "bundled"
	PricingModelFlat    = "flat"
	// PricingModelFamilyCap 预留模式, 暂未实现
	PricingModelFamilyCap = "family_cap"
)

// 收费项类型
const (
	ChargeKindAdultBundle  = "adult_bundle"
	ChargeKindAdultTopup   = "adult_topup"
	ChargeKindJuniorBundle = "junior_bundle"
	ChargeKindSocialAdult  = "social_adult"
)

// 计费周期
const (
	BillingPeriodAnnual = "annual"
)

// 定价规则类型
const (
	RuleTypeHouseholdCap        = "household_cap"
	RuleTypeMultiMemberDiscount = "multi_member_discount"
	RuleTypeBundle              = "bundle"
)

// 计费历史操作
const (
	ActionSubscriptionCreated   = "created"
	ActionSubscriptionCancelled = "cancelled"
	ActionSubscriptionActivated = "activated"
)

// 订单支付状态(与payment-service保持一致)
const (
	PaymentStatusPending = "pending" // 待支付(订单已创建，等待支付)
	PaymentStatusPaid    = "paid"    // 支付成功
	PaymentStatusClosed  = "closed"  // 订单关闭
)

// 支付来源常量（用于 payment-service）
const (
	// PaymentSourceMembership 会费来源
	PaymentSourceMembership = "membership"
)

// 对账默认值
const (
	// DefaultSweepPageSize 批量对账默认分页大小
	DefaultSweepPageSize = 50
	// DefaultOrderExpiryMinutes 未支付订单默认关闭时限(分钟)
	DefaultOrderExpiryMinutes = 30
)
