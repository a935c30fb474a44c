package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func referenceSpec(t OptionType) OptionSpec {
	return OptionSpec{
		Spot:           100,
		Strike:         100,
		Rate:           0.01,
		Volatility:     0.2,
		TimeToMaturity: 1,
		DividendYield:  0,
		Type:           t,
	}
}

func TestCalculateBlackScholesCall(t *testing.T) {
	result := CalculateBlackScholes(referenceSpec(OptionTypeCall))

	assert.InDelta(t, 8.433319, result.Price, 1e-5)
	assert.InDelta(t, 0.559618, result.Delta, 1e-5)
	assert.InDelta(t, 0.019724, result.Gamma, 1e-6)
	assert.InDelta(t, 39.447933, result.Vega, 1e-4)
	assert.InDelta(t, -4.420078, result.Theta, 1e-4)
	assert.InDelta(t, 47.528451, result.Rho, 1e-4)
}

func TestCalculateBlackScholesPut(t *testing.T) {
	result := CalculateBlackScholes(referenceSpec(OptionTypePut))

	assert.InDelta(t, 7.438302, result.Price, 1e-5)
	assert.InDelta(t, -0.440382, result.Delta, 1e-5)
}

func TestPutCallParity(t *testing.T) {
	spec := OptionSpec{
		Spot:           105,
		Strike:         95,
		Rate:           0.03,
		Volatility:     0.35,
		TimeToMaturity: 0.5,
		DividendYield:  0.02,
	}

	spec.Type = OptionTypeCall
	call := CalculateBlackScholes(spec)
	spec.Type = OptionTypePut
	put := CalculateBlackScholes(spec)

	// C - P = S*e^{-qT} - K*e^{-rT}
	lhs := call.Price - put.Price
	rhs := 105*math.Exp(-0.02*0.5) - 95*math.Exp(-0.03*0.5)
	assert.InDelta(t, rhs, lhs, 1e-5)
}

func TestGammaVegaSameForCallAndPut(t *testing.T) {
	spec := referenceSpec(OptionTypeCall)
	call := CalculateBlackScholes(spec)
	spec.Type = OptionTypePut
	put := CalculateBlackScholes(spec)

	assert.InDelta(t, call.Gamma, put.Gamma, 1e-12)
	assert.InDelta(t, call.Vega, put.Vega, 1e-12)
}

func TestDividendYieldLowersCallPrice(t *testing.T) {
	spec := referenceSpec(OptionTypeCall)
	base := CalculateBlackScholes(spec)

	spec.DividendYield = 0.05
	withDiv := CalculateBlackScholes(spec)

	assert.Less(t, withDiv.Price, base.Price)
}

func TestSanitizeClampsToEpsilon(t *testing.T) {
	spec := OptionSpec{Spot: 0, Strike: -1, Volatility: 0, TimeToMaturity: 0, Type: OptionTypeCall}
	clean := spec.Sanitize()

	assert.Equal(t, Epsilon, clean.Spot)
	assert.Equal(t, Epsilon, clean.Strike)
	assert.Equal(t, Epsilon, clean.Volatility)
	assert.Equal(t, Epsilon, clean.TimeToMaturity)
}
