package errors

import (
	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	i18nPkg "github.com/gaoyong06/go-pkg/middleware/i18n"
)

func init() {
	// 初始化全局错误管理器（使用项目特定的配置）
	pkgErrors.InitGlobalErrorManager("i18n", i18nPkg.Language)
}

// 会员计费服务错误码定义
// 错误码格式：SSMMEE (6位数字)，其中 SS=14 表示 membership-service
// 模块划分：
//   01: 定价配置模块
//   02: 家庭/成员模块
//   03: 定价规则模块
//   04: 订阅对账模块
//   05: 订单/支付模块

// 定价配置模块 (140100-140199)
const (
	// ErrCodePricingConfigNotFound 定价配置不存在错误
	ErrCodePricingConfigNotFound = 140101
	// ErrCodePricingConfigInvalid 定价配置无效错误(负数价格等)
	ErrCodePricingConfigInvalid = 140102
	// ErrCodePricingModelUnsupported 定价模式不支持错误(含预留的 family_cap)
	ErrCodePricingModelUnsupported = 140103
)

// 家庭/成员模块 (140200-140299)
const (
	// ErrCodeHouseholdNotFound 家庭不存在错误
	ErrCodeHouseholdNotFound = 140201
	// ErrCodeHouseholdEmpty 家庭没有成员错误
	ErrCodeHouseholdEmpty = 140202
)

// 定价规则模块 (140300-140399)
const (
	// ErrCodePricingRuleNotFound 定价规则不存在错误
	ErrCodePricingRuleNotFound = 140301
	// ErrCodePricingRuleInvalid 定价规则无效错误
	ErrCodePricingRuleInvalid = 140302
)

// 订阅对账模块 (140400-140499)
const (
	// ErrCodeSubscriptionNotFound 订阅记录不存在错误
	ErrCodeSubscriptionNotFound = 140401
	// ErrCodeReconcileLockBusy 家庭对账正在进行中错误
	ErrCodeReconcileLockBusy = 140402
)

// 订单/支付模块 (140500-140599)
const (
	// ErrCodeOrderNotFound 订单不存在错误
	ErrCodeOrderNotFound = 140501
	// ErrCodeOrderAlreadyPaid 订单已支付错误
	ErrCodeOrderAlreadyPaid = 140502
	// ErrCodeNoPendingCharges 没有待支付的订阅记录错误
	ErrCodeNoPendingCharges = 140503
	// ErrCodePaymentFailed 支付服务错误
	ErrCodePaymentFailed = 140504
	// ErrCodePaymentInvalidAmount 支付金额无效错误
	ErrCodePaymentInvalidAmount = 140505
)
