package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/moseskolleh/promptcoach/internal/advisor"
	"github.com/moseskolleh/promptcoach/internal/equivalency"
	"github.com/moseskolleh/promptcoach/internal/history"
	"github.com/moseskolleh/promptcoach/internal/impact"
	"github.com/moseskolleh/promptcoach/internal/prompt"
)

// Error codes surfaced to API consumers.
const (
	codeInvalidRequest         = "invalid_request"
	codeModelNotFound          = "model_not_found"
	codeInfrastructureNotFound = "infrastructure_not_found"
	codeHistoryDisabled        = "history_disabled"
	codeInternal               = "internal_error"
)

// Model IDs that select the average-across-models estimate.
func isAverageSelector(modelID string) bool {
	return modelID == "" || modelID == "auto" || modelID == "average"
}

type comparisonsPayload struct {
	Energy string `json:"energy"`
	Water  string `json:"water"`
	Carbon string `json:"carbon"`
}

func comparisonsFor(energyWh, waterML, carbonG float64) comparisonsPayload {
	return comparisonsPayload{
		Energy: equivalency.FormatEnergy(energyWh),
		Water:  equivalency.FormatWater(waterML),
		Carbon: equivalency.FormatCarbon(carbonG),
	}
}

func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, impact.ErrModelNotFound), errors.Is(err, impact.ErrNoComparableModels):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": codeModelNotFound})
	case errors.Is(err, impact.ErrInfrastructureNotFound):
		// Data-integrity failure, logged distinctly by the estimator.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": codeInfrastructureNotFound})
	case errors.Is(err, impact.ErrEmptyCatalog):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "code": codeInternal})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": codeInternal})
	}
}

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": codeInvalidRequest})
}

// resolveMultiplier picks the energy multiplier: an explicit value
// wins, then the task type's known multiplier, then 1.0.
func (s *Server) resolveMultiplier(c *gin.Context, taskType string, explicit float64) (float64, bool) {
	if explicit > 0 {
		return explicit, true
	}
	if taskType == "" {
		return 1.0, true
	}
	mult, ok := prompt.MultiplierForTask(taskType)
	if !ok {
		s.badRequest(c, "unknown task_type "+strconv.Quote(taskType))
		return 0, false
	}
	return mult, true
}

type estimateRequest struct {
	ModelID          string  `json:"model_id"`
	InputTokens      int     `json:"input_tokens"`
	OutputTokens     int     `json:"output_tokens"`
	TaskType         string  `json:"task_type"`
	EnergyMultiplier float64 `json:"energy_multiplier"`
}

func (s *Server) handleEstimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}

	mult, ok := s.resolveMultiplier(c, req.TaskType, req.EnergyMultiplier)
	if !ok {
		return
	}

	if isAverageSelector(req.ModelID) {
		s.respondAverage(c, req.InputTokens, req.OutputTokens, mult)
		return
	}

	est := s.estimator()
	result, err := est.CalculateImpact(req.ModelID, req.InputTokens, req.OutputTokens, mult)
	if err != nil {
		s.respondError(c, err)
		return
	}
	estimatesTotal.WithLabelValues(result.ModelID).Inc()

	ecoScore := est.EcoScore(result.Energy.MeanWh)
	s.recordHistory(result, req.TaskType, ecoScore)

	c.JSON(http.StatusOK, gin.H{
		"estimate":    result,
		"eco_score":   ecoScore,
		"comparisons": comparisonsFor(result.Energy.MeanWh, result.Water.TotalML, result.CarbonG),
	})
}

type averageRequest struct {
	InputTokens      int     `json:"input_tokens"`
	OutputTokens     int     `json:"output_tokens"`
	TaskType         string  `json:"task_type"`
	EnergyMultiplier float64 `json:"energy_multiplier"`
}

func (s *Server) handleAverage(c *gin.Context) {
	var req averageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}
	mult, ok := s.resolveMultiplier(c, req.TaskType, req.EnergyMultiplier)
	if !ok {
		return
	}
	s.respondAverage(c, req.InputTokens, req.OutputTokens, mult)
}

func (s *Server) respondAverage(c *gin.Context, inputTokens, outputTokens int, mult float64) {
	avg, err := s.estimator().CalculateAverageImpact(inputTokens, outputTokens, mult)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"average":     avg,
		"comparisons": comparisonsFor(avg.EnergyWh.Mean, avg.WaterML.Mean, avg.CarbonG.Mean),
	})
}

type compareRequest struct {
	ModelIDs     []string `json:"model_ids"`
	InputTokens  int      `json:"input_tokens"`
	OutputTokens int      `json:"output_tokens"`
}

func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}

	est := s.estimator()
	modelIDs := req.ModelIDs
	if len(modelIDs) == 0 {
		modelIDs = est.Catalog().ModelIDs()
	}

	cmp, err := est.CompareModels(modelIDs, req.InputTokens, req.OutputTokens)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

type analyzeRequest struct {
	Prompt       string `json:"prompt"`
	ModelID      string `json:"model_id"`
	OutputTokens int    `json:"output_tokens"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Prompt == "" {
		s.badRequest(c, "prompt is required")
		return
	}

	modelID := req.ModelID
	if isAverageSelector(modelID) {
		modelID = s.defaultModel
	}

	advice, err := s.newAdvisor().Advise(advisor.Request{
		Prompt:       req.Prompt,
		ModelID:      modelID,
		OutputTokens: req.OutputTokens,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"advice": advice,
		"comparisons": comparisonsFor(
			advice.Estimate.Energy.MeanWh,
			advice.Estimate.Water.TotalML,
			advice.Estimate.CarbonG,
		),
	})
}

type projectionRequest struct {
	DailyQueries      int64   `json:"daily_queries"`
	CarbonPerQueryG   float64 `json:"carbon_per_query_gco2e"`
	MonthlyGrowthRate float64 `json:"monthly_growth_rate"`
}

func (s *Server) handleProjection(c *gin.Context) {
	var req projectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid request body: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, impact.ProjectAnnual(req.DailyQueries, req.CarbonPerQueryG, req.MonthlyGrowthRate))
}

func (s *Server) handleModels(c *gin.Context) {
	models := s.estimator().Catalog().Models()
	out := make([]gin.H, 0, len(models))
	for _, m := range models {
		out = append(out, gin.H{
			"id":           m.ID,
			"display_name": m.DisplayName,
			"provider":     m.Provider,
			"hosting_key":  m.HostingKey,
			"size_class":   m.SizeClass,
		})
	}
	c.JSON(http.StatusOK, gin.H{"models": out})
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history disabled", "code": codeHistoryDisabled})
		return
	}
	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	records, err := s.history.Recent(limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (s *Server) handleHistorySummary(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history disabled", "code": codeHistoryDisabled})
		return
	}
	summary, err := s.history.Summarize()
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"models": s.estimator().Catalog().ModelCount(),
	})
}

// recordHistory saves an estimate to the history store, if configured.
func (s *Server) recordHistory(est *impact.ImpactEstimate, taskType string, ecoScore int) {
	if s.history == nil {
		return
	}
	detail, err := json.Marshal(est)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal estimate detail")
		detail = nil
	}
	s.history.Save(&history.EstimateRecord{
		ModelID:      est.ModelID,
		TaskType:     taskType,
		InputTokens:  est.Tokens.Input,
		OutputTokens: est.Tokens.Output,
		EnergyWh:     est.Energy.MeanWh,
		WaterML:      est.Water.TotalML,
		CarbonG:      est.CarbonG,
		EcoScore:     ecoScore,
		Multiplier:   est.Multipliers.Energy,
		Detail:       detail,
	})
}
