package domain

import (
	"math"
	"math/rand"
)

// MonteCarloResult 蒙特卡洛模拟结果
type MonteCarloResult struct {
	// 贴现后的期权价格估计
	Price float64 `json:"price"`
	// 价格估计的标准误
	StandardError float64 `json:"standard_error"`
}

// MonteCarloPrice 用几何布朗运动单步模拟到期价并估计期权价格。
// 相同 seed 与 paths 的结果逐位可复现；paths <= 0 时返回零值。
func MonteCarloPrice(spec OptionSpec, paths int, seed int64) MonteCarloResult {
	if paths <= 0 {
		return MonteCarloResult{}
	}

	s := spec.Spot
	k := spec.Strike
	r := spec.Rate
	sigma := spec.Volatility
	t := spec.TimeToMaturity
	q := spec.DividendYield

	drift := (r - q - 0.5*sigma*sigma) * t
	diffusion := sigma * math.Sqrt(t)
	isCall := spec.Type.IsCall()

	// 固定种子、固定顺序累加，保证可复现性，不做并行
	rng := rand.New(rand.NewSource(seed))

	var sum, sumSq float64
	for i := 0; i < paths; i++ {
		z := rng.NormFloat64()
		st := s * math.Exp(drift+diffusion*z)

		var payoff float64
		if isCall {
			payoff = math.Max(st-k, 0)
		} else {
			payoff = math.Max(k-st, 0)
		}

		sum += payoff
		sumSq += payoff * payoff
	}

	n := float64(paths)
	mean := sum / n
	variance := sumSq/n - mean*mean // 总体方差
	if variance < 0 {
		variance = 0
	}

	disc := math.Exp(-r * t)
	return MonteCarloResult{
		Price:         disc * mean,
		StandardError: disc * math.Sqrt(variance/n),
	}
}
