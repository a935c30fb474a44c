package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonteCarloPriceConvergesToAnalytic(t *testing.T) {
	spec := OptionSpec{
		Spot:           120,
		Strike:         110,
		Rate:           0.015,
		Volatility:     0.25,
		TimeToMaturity: 0.75,
		Type:           OptionTypeCall,
	}
	analytic := CalculateBlackScholes(spec).Price

	result := MonteCarloPrice(spec, 100000, 42)

	require.Greater(t, result.Price, 0.0)
	assert.InEpsilon(t, analytic, result.Price, 0.02)
	assert.Greater(t, result.StandardError, 0.0)
	// 标准误应明显小于 2% 的偏差容限
	assert.Less(t, result.StandardError, 0.02*analytic)
}

func TestMonteCarloPricePut(t *testing.T) {
	spec := OptionSpec{
		Spot:           90,
		Strike:         100,
		Rate:           0.02,
		Volatility:     0.3,
		TimeToMaturity: 1,
		Type:           OptionTypePut,
	}
	analytic := CalculateBlackScholes(spec).Price

	result := MonteCarloPrice(spec, 200000, 7)

	assert.InEpsilon(t, analytic, result.Price, 0.02)
}

func TestMonteCarloPriceZeroPaths(t *testing.T) {
	spec := OptionSpec{Spot: 100, Strike: 100, Volatility: 0.2, TimeToMaturity: 1, Type: OptionTypeCall}

	result := MonteCarloPrice(spec, 0, 42)
	assert.Equal(t, MonteCarloResult{}, result)

	result = MonteCarloPrice(spec, -5, 42)
	assert.Equal(t, MonteCarloResult{}, result)
}

func TestMonteCarloPriceDeterministic(t *testing.T) {
	spec := OptionSpec{
		Spot:           100,
		Strike:         105,
		Rate:           0.01,
		Volatility:     0.2,
		TimeToMaturity: 0.5,
		Type:           OptionTypeCall,
	}

	a := MonteCarloPrice(spec, 50000, 123)
	b := MonteCarloPrice(spec, 50000, 123)

	assert.Equal(t, a, b)

	c := MonteCarloPrice(spec, 50000, 124)
	assert.NotEqual(t, a.Price, c.Price)
}

func TestMonteCarloStandardErrorScaling(t *testing.T) {
	spec := OptionSpec{
		Spot:           100,
		Strike:         100,
		Rate:           0.01,
		Volatility:     0.2,
		TimeToMaturity: 1,
		Type:           OptionTypeCall,
	}

	small := MonteCarloPrice(spec, 25000, 42)
	large := MonteCarloPrice(spec, 100000, 42)

	// 路径数翻两番，标准误大约减半
	ratio := large.StandardError / small.StandardError
	assert.InDelta(t, 0.5, ratio, 0.1)
}
