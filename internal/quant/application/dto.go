package application

import "github.com/shopspring/decimal"

// PriceResult 解析定价响应
type PriceResult struct {
	Symbol       string          `json:"symbol"`
	OptionType   string          `json:"option_type"`
	Price        decimal.Decimal `json:"price"`
	CalculatedAt int64           `json:"calculated_at"`
}

// GreeksResult 希腊值响应
type GreeksResult struct {
	Symbol       string          `json:"symbol"`
	OptionType   string          `json:"option_type"`
	Price        decimal.Decimal `json:"price"`
	Delta        decimal.Decimal `json:"delta"`
	Gamma        decimal.Decimal `json:"gamma"`
	Vega         decimal.Decimal `json:"vega"`
	Theta        decimal.Decimal `json:"theta"`
	Rho          decimal.Decimal `json:"rho"`
	CalculatedAt int64           `json:"calculated_at"`
}

// ImpliedVolResult 隐含波动率响应
type ImpliedVolResult struct {
	Symbol       string          `json:"symbol"`
	OptionType   string          `json:"option_type"`
	Volatility   decimal.Decimal `json:"volatility"`
	Converged    bool            `json:"converged"`
	Iterations   int             `json:"iterations"`
	CalculatedAt int64           `json:"calculated_at"`
}

// MonteCarloResult 蒙特卡洛定价响应
type MonteCarloResult struct {
	Symbol        string          `json:"symbol"`
	OptionType    string          `json:"option_type"`
	Price         decimal.Decimal `json:"price"`
	StandardError decimal.Decimal `json:"standard_error"`
	Paths         int             `json:"paths"`
	Seed          int64           `json:"seed"`
	CalculatedAt  int64           `json:"calculated_at"`
}
