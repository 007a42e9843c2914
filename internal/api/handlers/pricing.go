package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warehouse-pricing/internal/api/models"
	"warehouse-pricing/internal/config"
	"warehouse-pricing/internal/model"
	"warehouse-pricing/internal/pricing"
	"warehouse-pricing/internal/store"
)

// Step bounds imposed at the request edge; the engine itself only requires a
// non-negative count.
const (
	minSteps = 5
	maxSteps = 200
)

// PricingHandler runs simulations and one-shot price suggestions against the
// current snapshot.
type PricingHandler struct {
	snapshots    *SnapshotHandler
	settingsPath string
	engineSeed   int64
	history      *store.History
	log          *zap.Logger
}

func NewPricingHandler(snapshots *SnapshotHandler, settingsPath string, engineSeed int64, history *store.History, log *zap.Logger) *PricingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PricingHandler{
		snapshots:    snapshots,
		settingsPath: settingsPath,
		engineSeed:   engineSeed,
		history:      history,
		log:          log,
	}
}

// RunSimulation handles POST /api/v1/simulate.
func (h *PricingHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	rec, market, ok := h.lookupProduct(c, req.Source, req.ProductID, req.Seed)
	if !ok {
		return
	}

	settings := config.LoadSettings(h.settingsPath)
	steps := req.Steps
	if steps == 0 {
		steps = settings.DefaultSteps
	}
	steps = clampSteps(steps)

	engine := pricing.NewEngineSeeded(settings, h.engineSeed)
	result := engine.RunSimulation(rec, market, steps)

	resp := models.SimulateResponse{InitialMarket: market, Result: result}
	if h.history != nil {
		entry, err := h.history.Append(c.Request.Context(), result)
		if err != nil {
			// History is a collaborator, not a gate: report the result anyway.
			h.log.Warn("failed to persist simulation", zap.Error(err))
		} else {
			resp.HistoryID = entry.ID
		}
	}
	c.JSON(http.StatusOK, resp)
}

// SuggestPrice handles POST /api/v1/suggest.
func (h *PricingHandler) SuggestPrice(c *gin.Context) {
	var req models.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	rec, market, ok := h.lookupProduct(c, req.Source, req.ProductID, req.Seed)
	if !ok {
		return
	}

	settings := config.LoadSettings(h.settingsPath)
	engine := pricing.NewEngineSeeded(settings, h.engineSeed)
	price := engine.SuggestPrice(rec, market)
	breakdown := pricing.Reward(market.CurrentPrice, price, market, settings)

	c.JSON(http.StatusOK, models.SuggestResponse{
		ProductID:      rec.SampleID,
		CurrentPrice:   market.CurrentPrice,
		SuggestedPrice: price,
		Breakdown:      breakdown,
		Market:         market,
	})
}

// lookupProduct resolves the product and its initial market, writing the
// error response itself when resolution fails. Products without a positive
// price are rejected before the engine ever sees them.
func (h *PricingHandler) lookupProduct(c *gin.Context, source string, productID int, seed *int64) (model.CatalogRecord, model.MarketState, bool) {
	path, err := h.snapshots.resolveSource(source)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SOURCE_NOT_FOUND", Message: err.Error()},
		})
		return model.CatalogRecord{}, model.MarketState{}, false
	}
	snap, err := h.snapshots.load(path, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INGEST_ERROR", Message: err.Error()},
		})
		return model.CatalogRecord{}, model.MarketState{}, false
	}
	rec, found := snap.FindRecord(productID)
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "PRODUCT_NOT_FOUND", Message: "no sampled product with that id"},
		})
		return model.CatalogRecord{}, model.MarketState{}, false
	}
	if rec.Price <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_PRODUCT", Message: "product has no positive price to simulate from"},
		})
		return model.CatalogRecord{}, model.MarketState{}, false
	}

	var market model.MarketState
	if seed != nil {
		market = model.NewMarketStateSeeded(rec, *seed)
	} else {
		market = model.NewMarketState(rec)
	}
	return rec, market, true
}

func clampSteps(steps int) int {
	if steps < minSteps {
		return minSteps
	}
	if steps > maxSteps {
		return maxSteps
	}
	return steps
}
