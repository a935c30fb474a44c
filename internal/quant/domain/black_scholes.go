package domain

import "math"

// BlackScholesResult 解析定价结果：价格与全部一阶/二阶希腊值。
// theta 按每年计；rho 对应利率变动 1.0（即 100%），调用方自行缩放。
type BlackScholesResult struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// normCdf 标准正态分布累积分布函数。
// 用 erfc 实现，尾部精度优于 0.5*(1+erf) 的写法。
func normCdf(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// normPdf 标准正态分布概率密度函数
func normPdf(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// CalculateBlackScholes 计算欧式期权 Black-Scholes 价格及希腊值，
// 支持连续分红率。输入需已经过 Sanitize，核心不做二次校验。
func CalculateBlackScholes(spec OptionSpec) BlackScholesResult {
	s := spec.Spot
	k := spec.Strike
	r := spec.Rate
	sigma := spec.Volatility
	t := spec.TimeToMaturity
	q := spec.DividendYield

	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/k) + (r-q+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	discR := math.Exp(-r * t) // 无风险贴现因子
	discQ := math.Exp(-q * t) // 分红贴现因子
	pdfD1 := normPdf(d1)

	var result BlackScholesResult
	// gamma 和 vega 对看涨/看跌相同
	result.Gamma = discQ * pdfD1 / (s * sigma * sqrtT)
	result.Vega = s * discQ * pdfD1 * sqrtT

	if spec.Type.IsCall() {
		cdfD1 := normCdf(d1)
		cdfD2 := normCdf(d2)
		result.Price = s*discQ*cdfD1 - k*discR*cdfD2
		result.Delta = discQ * cdfD1
		result.Theta = -(s*discQ*pdfD1*sigma)/(2*sqrtT) - r*k*discR*cdfD2 + q*s*discQ*cdfD1
		result.Rho = k * t * discR * cdfD2
	} else {
		cdfNegD1 := normCdf(-d1)
		cdfNegD2 := normCdf(-d2)
		result.Price = k*discR*cdfNegD2 - s*discQ*cdfNegD1
		result.Delta = -discQ * cdfNegD1
		result.Theta = -(s*discQ*pdfD1*sigma)/(2*sqrtT) + r*k*discR*cdfNegD2 - q*s*discQ*cdfNegD1
		result.Rho = -k * t * discR * cdfNegD2
	}

	return result
}
