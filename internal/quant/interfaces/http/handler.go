// Package http 定价服务的 HTTP 接口层
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/quantpricing/internal/quant/application"
	"github.com/wyfcoding/quantpricing/pkg/logger"
)

// QuantHandler HTTP 处理器
// 负责处理期权定价相关的 HTTP 请求
type QuantHandler struct {
	svc *application.QuantService
}

// NewQuantHandler 创建 HTTP 处理器实例
func NewQuantHandler(svc *application.QuantService) *QuantHandler {
	return &QuantHandler{svc: svc}
}

// RegisterRoutes 注册路由
// 将处理器方法绑定到 Gin 路由引擎
func (h *QuantHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/quant")
	{
		api.POST("/price", h.PriceOption)
		api.POST("/greeks", h.CalculateGreeks)
		api.POST("/implied-vol", h.SolveImpliedVol)
		api.POST("/monte-carlo", h.RunMonteCarlo)
	}
}

// OptionRequest 期权参数请求体
type OptionRequest struct {
	Symbol     string `json:"symbol" binding:"required"`
	OptionType string `json:"option_type" binding:"required"`
	// 数值字段允许为 0，由应用层统一钳位到下限
	Spot           float64 `json:"spot"`
	Strike         float64 `json:"strike"`
	Rate           float64 `json:"rate"`
	Volatility     float64 `json:"volatility"`
	TimeToMaturity float64 `json:"time_to_maturity"`
	DividendYield  float64 `json:"dividend_yield"`
}

// ImpliedVolRequest 隐含波动率请求体
type ImpliedVolRequest struct {
	Option OptionRequest `json:"option" binding:"required"`
	// 目标价允许为 0（区间坍缩到下界），求解器自行处理
	TargetPrice   float64 `json:"target_price"`
	LowerBound    float64       `json:"lower_bound"`
	UpperBound    float64       `json:"upper_bound"`
	Tolerance     float64       `json:"tolerance"`
	MaxIterations int           `json:"max_iterations"`
}

// MonteCarloRequest 蒙特卡洛定价请求体
type MonteCarloRequest struct {
	Option OptionRequest `json:"option" binding:"required"`
	Paths  int           `json:"paths"`
	Seed   int64         `json:"seed"`
}

func toInput(req OptionRequest) application.OptionInput {
	return application.OptionInput{
		Symbol:         req.Symbol,
		OptionType:     req.OptionType,
		Spot:           req.Spot,
		Strike:         req.Strike,
		Rate:           req.Rate,
		Volatility:     req.Volatility,
		TimeToMaturity: req.TimeToMaturity,
		DividendYield:  req.DividendYield,
	}
}

// isValidationError 区分输入错误与内部错误
func isValidationError(err error) bool {
	return errors.Is(err, application.ErrSymbolRequired) ||
		errors.Is(err, application.ErrInvalidOptionType)
}

// PriceOption 期权解析定价
func (h *QuantHandler) PriceOption(c *gin.Context) {
	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.PriceOption(c.Request.Context(), toInput(req))
	if err != nil {
		h.writeError(c, "Failed to price option", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CalculateGreeks 计算希腊值
func (h *QuantHandler) CalculateGreeks(c *gin.Context) {
	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.CalculateGreeks(c.Request.Context(), toInput(req))
	if err != nil {
		h.writeError(c, "Failed to calculate greeks", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SolveImpliedVol 求解隐含波动率
func (h *QuantHandler) SolveImpliedVol(c *gin.Context) {
	var req ImpliedVolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.SolveImpliedVol(c.Request.Context(), application.ImpliedVolCommand{
		Option:        toInput(req.Option),
		TargetPrice:   req.TargetPrice,
		LowerBound:    req.LowerBound,
		UpperBound:    req.UpperBound,
		Tolerance:     req.Tolerance,
		MaxIterations: req.MaxIterations,
	})
	if err != nil {
		h.writeError(c, "Failed to solve implied volatility", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RunMonteCarlo 蒙特卡洛定价
func (h *QuantHandler) RunMonteCarlo(c *gin.Context) {
	var req MonteCarloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.RunMonteCarlo(c.Request.Context(), application.MonteCarloCommand{
		Option: toInput(req.Option),
		Paths:  req.Paths,
		Seed:   req.Seed,
	})
	if err != nil {
		h.writeError(c, "Failed to run Monte Carlo pricing", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *QuantHandler) writeError(c *gin.Context, msg string, err error) {
	if isValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Error(c.Request.Context(), msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
