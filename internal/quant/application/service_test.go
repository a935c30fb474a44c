package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/quantpricing/internal/quant/domain"
	"github.com/wyfcoding/quantpricing/pkg/config"
)

// fakePublisher 记录发布的事件，可注入错误
type fakePublisher struct {
	events []publishedEvent
	err    error
}

type publishedEvent struct {
	eventType string
	key       string
	payload   any
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, key string, event any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, publishedEvent{eventType: eventType, key: key, payload: event})
	return nil
}

func testQuantConfig() config.QuantConfig {
	return config.QuantConfig{
		DefaultPaths:        10000,
		VolLowerBound:       1e-6,
		VolUpperBound:       5.0,
		SolverTolerance:     1e-6,
		SolverMaxIterations: 100,
	}
}

func validInput() OptionInput {
	return OptionInput{
		Symbol:         "AAPL-20261218-C-200",
		OptionType:     "call",
		Spot:           100,
		Strike:         100,
		Rate:           0.01,
		Volatility:     0.2,
		TimeToMaturity: 1,
	}
}

func TestPriceOption(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewQuantService(pub, nil, testQuantConfig())

	result, err := svc.PriceOption(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "CALL", result.OptionType)
	assert.InDelta(t, 8.433319, result.Price.InexactFloat64(), 1e-5)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.OptionPricedEventType, pub.events[0].eventType)
	assert.Equal(t, "AAPL-20261218-C-200", pub.events[0].key)
}

func TestPriceOptionValidation(t *testing.T) {
	svc := NewQuantService(nil, nil, testQuantConfig())

	input := validInput()
	input.Symbol = ""
	_, err := svc.PriceOption(context.Background(), input)
	assert.ErrorIs(t, err, ErrSymbolRequired)

	input = validInput()
	input.OptionType = "STRADDLE"
	_, err = svc.PriceOption(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidOptionType)
}

func TestPriceOptionSanitizesInput(t *testing.T) {
	svc := NewQuantService(nil, nil, testQuantConfig())

	input := validInput()
	input.Spot = 0
	input.TimeToMaturity = -1

	result, err := svc.PriceOption(context.Background(), input)
	require.NoError(t, err)
	// 钳位后仍能定价，结果有限且非负
	assert.GreaterOrEqual(t, result.Price.InexactFloat64(), 0.0)
}

func TestPriceOptionPublisherFailureDoesNotFailRequest(t *testing.T) {
	pub := &fakePublisher{err: errors.New("kafka down")}
	svc := NewQuantService(pub, nil, testQuantConfig())

	result, err := svc.PriceOption(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestCalculateGreeks(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewQuantService(pub, nil, testQuantConfig())

	input := validInput()
	input.OptionType = "PUT"
	result, err := svc.CalculateGreeks(context.Background(), input)

	require.NoError(t, err)
	assert.InDelta(t, -0.440382, result.Delta.InexactFloat64(), 1e-5)
	assert.InDelta(t, 0.019724, result.Gamma.InexactFloat64(), 1e-6)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.GreeksCalculatedEventType, pub.events[0].eventType)
}

func TestSolveImpliedVolUsesConfigDefaults(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewQuantService(pub, nil, testQuantConfig())

	input := validInput()
	target := 8.433319

	// 不显式给求解器参数，全部走配置默认值
	result, err := svc.SolveImpliedVol(context.Background(), ImpliedVolCommand{
		Option:      input,
		TargetPrice: target,
	})

	require.NoError(t, err)
	assert.True(t, result.Converged)
	assert.InDelta(t, 0.2, result.Volatility.InexactFloat64(), 1e-4)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.ImpliedVolSolvedEventType, pub.events[0].eventType)
}

func TestRunMonteCarloDefaultsPaths(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewQuantService(pub, nil, testQuantConfig())

	result, err := svc.RunMonteCarlo(context.Background(), MonteCarloCommand{
		Option: validInput(),
		Paths:  0,
		Seed:   42,
	})

	require.NoError(t, err)
	assert.Equal(t, 10000, result.Paths)
	assert.Greater(t, result.Price.InexactFloat64(), 0.0)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.MonteCarloPricedEventType, pub.events[0].eventType)
	event, ok := pub.events[0].payload.(domain.MonteCarloPricedEvent)
	require.True(t, ok)
	assert.Equal(t, 10000, event.Paths)
}

func TestRunMonteCarloReproducible(t *testing.T) {
	svc := NewQuantService(nil, nil, testQuantConfig())

	cmd := MonteCarloCommand{Option: validInput(), Paths: 50000, Seed: 99}

	a, err := svc.RunMonteCarlo(context.Background(), cmd)
	require.NoError(t, err)
	b, err := svc.RunMonteCarlo(context.Background(), cmd)
	require.NoError(t, err)

	assert.True(t, a.Price.Equal(b.Price))
	assert.True(t, a.StandardError.Equal(b.StandardError))
}
