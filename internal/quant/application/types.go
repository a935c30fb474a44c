package application

// OptionInput 定价请求的期权参数，未经清洗的原始输入
type OptionInput struct {
	// 合约标识，事件分区键
	Symbol string `json:"symbol"`
	// 期权类型：CALL 或 PUT，大小写不敏感
	OptionType string `json:"option_type"`
	// 标的现价
	Spot float64 `json:"spot"`
	// 行权价
	Strike float64 `json:"strike"`
	// 无风险利率
	Rate float64 `json:"rate"`
	// 年化波动率
	Volatility float64 `json:"volatility"`
	// 剩余到期时间（年）
	TimeToMaturity float64 `json:"time_to_maturity"`
	// 连续分红率
	DividendYield float64 `json:"dividend_yield"`
}

// ImpliedVolCommand 隐含波动率求解命令。求解器参数为 0 时使用服务配置默认值。
type ImpliedVolCommand struct {
	Option        OptionInput `json:"option"`
	TargetPrice   float64     `json:"target_price"`
	LowerBound    float64     `json:"lower_bound"`
	UpperBound    float64     `json:"upper_bound"`
	Tolerance     float64     `json:"tolerance"`
	MaxIterations int         `json:"max_iterations"`
}

// MonteCarloCommand 蒙特卡洛定价命令。Paths <= 0 时使用服务配置默认路径数。
type MonteCarloCommand struct {
	Option OptionInput `json:"option"`
	Paths  int         `json:"paths"`
	Seed   int64       `json:"seed"`
}
