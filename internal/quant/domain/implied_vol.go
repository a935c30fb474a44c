package domain

import "math"

// SolverParams 二分法求解器参数
type SolverParams struct {
	// 波动率搜索区间下界
	LowerBound float64
	// 波动率搜索区间上界
	UpperBound float64
	// 价格容差
	Tolerance float64
	// 最大迭代次数
	MaxIterations int
}

// DefaultSolverParams 默认求解器参数
func DefaultSolverParams() SolverParams {
	return SolverParams{
		LowerBound:    1e-6,
		UpperBound:    5.0,
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// ImpliedVolResult 隐含波动率求解结果
type ImpliedVolResult struct {
	// 求得的波动率（未收敛时为最后一次迭代的中点）
	Volatility float64 `json:"volatility"`
	// 是否在容差内收敛
	Converged bool `json:"converged"`
	// 实际执行的迭代次数
	Iterations int `json:"iterations"`
}

// SolveImpliedVolatility 用二分法在 [LowerBound, UpperBound] 内求解使
// Black-Scholes 价格等于 targetPrice 的波动率。spec 中的 Volatility 字段被忽略。
// 收敛判定：价格误差小于容差，或搜索区间宽度收缩到容差以内。
func SolveImpliedVolatility(spec OptionSpec, targetPrice float64, params SolverParams) ImpliedVolResult {
	low := params.LowerBound
	high := params.UpperBound
	maxIter := params.MaxIterations
	if maxIter < 1 {
		maxIter = 1
	}

	var mid float64
	for i := 0; i < maxIter; i++ {
		mid = 0.5 * (low + high)
		price := CalculateBlackScholes(spec.WithVolatility(mid)).Price
		diff := price - targetPrice

		if math.Abs(diff) < params.Tolerance {
			return ImpliedVolResult{Volatility: mid, Converged: true, Iterations: i + 1}
		}

		// 价格对波动率单调递增
		if diff > 0 {
			high = mid
		} else {
			low = mid
		}

		// 收缩后区间宽度小于容差时同样视为收敛
		if high-low < params.Tolerance {
			return ImpliedVolResult{Volatility: mid, Converged: true, Iterations: i + 1}
		}
	}

	return ImpliedVolResult{Volatility: mid, Converged: false, Iterations: maxIter}
}
