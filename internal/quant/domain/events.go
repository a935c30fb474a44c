package domain

import "time"

// 领域事件类型
const (
	OptionPricedEventType     = "quant.option.priced"
	GreeksCalculatedEventType = "quant.greeks.calculated"
	ImpliedVolSolvedEventType = "quant.implied_vol.solved"
	MonteCarloPricedEventType = "quant.monte_carlo.priced"
)

// OptionPricedEvent 期权解析定价完成事件
type OptionPricedEvent struct {
	Symbol     string     `json:"symbol"`
	OptionType OptionType `json:"option_type"`
	Spot       float64    `json:"spot"`
	Strike     float64    `json:"strike"`
	Price      float64    `json:"price"`
	OccurredOn time.Time  `json:"occurred_on"`
}

// GreeksCalculatedEvent 希腊值计算完成事件
type GreeksCalculatedEvent struct {
	Symbol     string     `json:"symbol"`
	OptionType OptionType `json:"option_type"`
	Delta      float64    `json:"delta"`
	Gamma      float64    `json:"gamma"`
	Vega       float64    `json:"vega"`
	Theta      float64    `json:"theta"`
	Rho        float64    `json:"rho"`
	OccurredOn time.Time  `json:"occurred_on"`
}

// ImpliedVolSolvedEvent 隐含波动率求解完成事件
type ImpliedVolSolvedEvent struct {
	Symbol      string     `json:"symbol"`
	OptionType  OptionType `json:"option_type"`
	TargetPrice float64    `json:"target_price"`
	Volatility  float64    `json:"volatility"`
	Converged   bool       `json:"converged"`
	Iterations  int        `json:"iterations"`
	OccurredOn  time.Time  `json:"occurred_on"`
}

// MonteCarloPricedEvent 蒙特卡洛定价完成事件
type MonteCarloPricedEvent struct {
	Symbol        string     `json:"symbol"`
	OptionType    OptionType `json:"option_type"`
	Paths         int        `json:"paths"`
	Seed          int64      `json:"seed"`
	Price         float64    `json:"price"`
	StandardError float64    `json:"standard_error"`
	OccurredOn    time.Time  `json:"occurred_on"`
}
