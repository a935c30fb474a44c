// Package domain 期权定价核心：Black-Scholes 解析定价、二分法隐含波动率、蒙特卡洛模拟
package domain

import "math"

// OptionType 期权类型
type OptionType string

const (
	OptionTypeCall OptionType = "CALL" // 看涨期权
	OptionTypePut  OptionType = "PUT"  // 看跌期权
)

// IsCall 是否为看涨期权
func (t OptionType) IsCall() bool {
	return t == OptionTypeCall
}

// Epsilon 输入下限：spot/strike/volatility/time_to_maturity 统一钳位到该值，
// 避免除零与 log(0)
const Epsilon = 1e-6

// OptionSpec 单个期权合约的参数描述。值语义，构造后不修改；
// 调用方如需改动（例如求解器覆盖波动率）通过副本派生。
type OptionSpec struct {
	// 标的现价
	Spot float64 `json:"spot"`
	// 行权价
	Strike float64 `json:"strike"`
	// 连续复利无风险利率，可为负
	Rate float64 `json:"rate"`
	// 年化波动率
	Volatility float64 `json:"volatility"`
	// 剩余到期时间（年）
	TimeToMaturity float64 `json:"time_to_maturity"`
	// 连续分红/持有成本率
	DividendYield float64 `json:"dividend_yield"`
	// 期权类型
	Type OptionType `json:"type"`
}

// Sanitize 返回钳位后的副本。定价核心假设输入已经过此处理，不再重复校验。
func (s OptionSpec) Sanitize() OptionSpec {
	out := s
	out.Spot = math.Max(s.Spot, Epsilon)
	out.Strike = math.Max(s.Strike, Epsilon)
	out.Volatility = math.Max(s.Volatility, Epsilon)
	out.TimeToMaturity = math.Max(s.TimeToMaturity, Epsilon)
	return out
}

// WithVolatility 返回覆盖波动率后的副本，原值不变
func (s OptionSpec) WithVolatility(sigma float64) OptionSpec {
	out := s
	out.Volatility = sigma
	return out
}
