// Package application 期权定价应用服务：输入校验与清洗、默认值填充、
// 指标记录与领域事件发布
package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/quantpricing/internal/quant/domain"
	"github.com/wyfcoding/quantpricing/pkg/config"
	"github.com/wyfcoding/quantpricing/pkg/logger"
	"github.com/wyfcoding/quantpricing/pkg/metrics"
)

var (
	// ErrSymbolRequired 请求缺少合约标识
	ErrSymbolRequired = errors.New("symbol is required")
	// ErrInvalidOptionType 期权类型不是 CALL/PUT
	ErrInvalidOptionType = errors.New("option_type must be CALL or PUT")
)

// QuantService 定价应用服务
type QuantService struct {
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	cfg       config.QuantConfig
}

// NewQuantService 创建定价应用服务实例。publisher 和 m 允许为 nil，
// 此时对应的事件发布和指标记录被跳过。
func NewQuantService(publisher domain.EventPublisher, m *metrics.Metrics, cfg config.QuantConfig) *QuantService {
	return &QuantService{
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
	}
}

// toSpec 校验输入并转换为清洗后的领域对象
func toSpec(input OptionInput) (domain.OptionSpec, error) {
	if input.Symbol == "" {
		return domain.OptionSpec{}, ErrSymbolRequired
	}

	var optType domain.OptionType
	switch strings.ToUpper(input.OptionType) {
	case string(domain.OptionTypeCall):
		optType = domain.OptionTypeCall
	case string(domain.OptionTypePut):
		optType = domain.OptionTypePut
	default:
		return domain.OptionSpec{}, ErrInvalidOptionType
	}

	spec := domain.OptionSpec{
		Spot:           input.Spot,
		Strike:         input.Strike,
		Rate:           input.Rate,
		Volatility:     input.Volatility,
		TimeToMaturity: input.TimeToMaturity,
		DividendYield:  input.DividendYield,
		Type:           optType,
	}
	return spec.Sanitize(), nil
}

// PriceOption 期权解析定价
func (s *QuantService) PriceOption(ctx context.Context, input OptionInput) (*PriceResult, error) {
	spec, err := toSpec(input)
	if err != nil {
		return nil, err
	}

	bs := domain.CalculateBlackScholes(spec)

	if s.metrics != nil {
		s.metrics.PricingsTotal.Inc()
	}

	now := time.Now()
	s.publish(ctx, domain.OptionPricedEventType, input.Symbol, domain.OptionPricedEvent{
		Symbol:     input.Symbol,
		OptionType: spec.Type,
		Spot:       spec.Spot,
		Strike:     spec.Strike,
		Price:      bs.Price,
		OccurredOn: now,
	})

	return &PriceResult{
		Symbol:       input.Symbol,
		OptionType:   string(spec.Type),
		Price:        decimal.NewFromFloat(bs.Price),
		CalculatedAt: now.Unix(),
	}, nil
}

// CalculateGreeks 计算期权希腊值
func (s *QuantService) CalculateGreeks(ctx context.Context, input OptionInput) (*GreeksResult, error) {
	spec, err := toSpec(input)
	if err != nil {
		return nil, err
	}

	bs := domain.CalculateBlackScholes(spec)

	if s.metrics != nil {
		s.metrics.PricingsTotal.Inc()
	}

	now := time.Now()
	s.publish(ctx, domain.GreeksCalculatedEventType, input.Symbol, domain.GreeksCalculatedEvent{
		Symbol:     input.Symbol,
		OptionType: spec.Type,
		Delta:      bs.Delta,
		Gamma:      bs.Gamma,
		Vega:       bs.Vega,
		Theta:      bs.Theta,
		Rho:        bs.Rho,
		OccurredOn: now,
	})

	return &GreeksResult{
		Symbol:       input.Symbol,
		OptionType:   string(spec.Type),
		Price:        decimal.NewFromFloat(bs.Price),
		Delta:        decimal.NewFromFloat(bs.Delta),
		Gamma:        decimal.NewFromFloat(bs.Gamma),
		Vega:         decimal.NewFromFloat(bs.Vega),
		Theta:        decimal.NewFromFloat(bs.Theta),
		Rho:          decimal.NewFromFloat(bs.Rho),
		CalculatedAt: now.Unix(),
	}, nil
}

// SolveImpliedVol 求解隐含波动率，未显式给出的求解器参数取服务配置
func (s *QuantService) SolveImpliedVol(ctx context.Context, cmd ImpliedVolCommand) (*ImpliedVolResult, error) {
	spec, err := toSpec(cmd.Option)
	if err != nil {
		return nil, err
	}

	params := domain.SolverParams{
		LowerBound:    cmd.LowerBound,
		UpperBound:    cmd.UpperBound,
		Tolerance:     cmd.Tolerance,
		MaxIterations: cmd.MaxIterations,
	}
	if params.LowerBound <= 0 {
		params.LowerBound = s.cfg.VolLowerBound
	}
	if params.UpperBound <= 0 {
		params.UpperBound = s.cfg.VolUpperBound
	}
	if params.Tolerance <= 0 {
		params.Tolerance = s.cfg.SolverTolerance
	}
	if params.MaxIterations <= 0 {
		params.MaxIterations = s.cfg.SolverMaxIterations
	}

	result := domain.SolveImpliedVolatility(spec, cmd.TargetPrice, params)

	if s.metrics != nil {
		s.metrics.ImpliedVolTotal.Inc()
		s.metrics.ImpliedVolIterations.Observe(float64(result.Iterations))
		if !result.Converged {
			s.metrics.ImpliedVolNonConverged.Inc()
		}
	}
	if !result.Converged {
		logger.Warn(ctx, "Implied volatility solve did not converge",
			"symbol", cmd.Option.Symbol,
			"target_price", cmd.TargetPrice,
			"iterations", result.Iterations,
		)
	}

	now := time.Now()
	s.publish(ctx, domain.ImpliedVolSolvedEventType, cmd.Option.Symbol, domain.ImpliedVolSolvedEvent{
		Symbol:      cmd.Option.Symbol,
		OptionType:  spec.Type,
		TargetPrice: cmd.TargetPrice,
		Volatility:  result.Volatility,
		Converged:   result.Converged,
		Iterations:  result.Iterations,
		OccurredOn:  now,
	})

	return &ImpliedVolResult{
		Symbol:       cmd.Option.Symbol,
		OptionType:   string(spec.Type),
		Volatility:   decimal.NewFromFloat(result.Volatility),
		Converged:    result.Converged,
		Iterations:   result.Iterations,
		CalculatedAt: now.Unix(),
	}, nil
}

// RunMonteCarlo 蒙特卡洛定价，Paths <= 0 时使用配置默认路径数
func (s *QuantService) RunMonteCarlo(ctx context.Context, cmd MonteCarloCommand) (*MonteCarloResult, error) {
	spec, err := toSpec(cmd.Option)
	if err != nil {
		return nil, err
	}

	paths := cmd.Paths
	if paths <= 0 {
		paths = s.cfg.DefaultPaths
	}

	result := domain.MonteCarloPrice(spec, paths, cmd.Seed)

	if s.metrics != nil {
		s.metrics.MonteCarloTotal.Inc()
		s.metrics.MonteCarloPaths.Observe(float64(paths))
	}

	now := time.Now()
	s.publish(ctx, domain.MonteCarloPricedEventType, cmd.Option.Symbol, domain.MonteCarloPricedEvent{
		Symbol:        cmd.Option.Symbol,
		OptionType:    spec.Type,
		Paths:         paths,
		Seed:          cmd.Seed,
		Price:         result.Price,
		StandardError: result.StandardError,
		OccurredOn:    now,
	})

	return &MonteCarloResult{
		Symbol:        cmd.Option.Symbol,
		OptionType:    string(spec.Type),
		Price:         decimal.NewFromFloat(result.Price),
		StandardError: decimal.NewFromFloat(result.StandardError),
		Paths:         paths,
		Seed:          cmd.Seed,
		CalculatedAt:  now.Unix(),
	}, nil
}

// publish 发布领域事件，失败仅记录日志不影响定价结果
func (s *QuantService) publish(ctx context.Context, eventType, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, key, event); err != nil {
		logger.Error(ctx, "Failed to publish domain event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}
