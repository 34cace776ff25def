// Package valuation exposes the workbench core over JSON HTTP for the
// browser front end. Handlers never block computation on validation
// failures: the numbers and the validation result travel together and the
// caller decides what to trust.
package valuation

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"financeanalyst/pkg/core/assumption"
	"financeanalyst/pkg/core/audit"
	"financeanalyst/pkg/core/montecarlo"
	"financeanalyst/pkg/core/pipeline"
	"financeanalyst/pkg/core/projection"
	"financeanalyst/pkg/core/sensitivity"
	coreval "financeanalyst/pkg/core/valuation"
	"financeanalyst/pkg/core/validate"
)

// maxMonteCarloIterations caps a single request; larger studies belong in a
// background worker.
const maxMonteCarloIterations = 100_000

// Handler serves the valuation endpoints.
type Handler struct {
	logger   *zap.Logger
	auditLog *audit.Log
}

// NewHandler builds the handler. A nil logger is replaced with a no-op one;
// a nil audit log disables change tracking.
func NewHandler(logger *zap.Logger, auditLog *audit.Log) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{logger: logger, auditLog: auditLog}
}

// Register attaches all valuation routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/valuation/dcf", h.HandleDCF)
	mux.HandleFunc("/api/valuation/validate", h.HandleValidate)
	mux.HandleFunc("/api/valuation/heatmaps", h.HandleHeatmaps)
	mux.HandleFunc("/api/valuation/tornado", h.HandleTornado)
	mux.HandleFunc("/api/valuation/montecarlo", h.HandleMonteCarlo)
}

// baseRequest carries the assumption payload shared by every endpoint.
// Fields absent from the JSON keep their workbench defaults.
type baseRequest struct {
	Scenario    string          `json:"scenario"`
	Assumptions json.RawMessage `json:"assumptions"`
}

func decodeAssumptions(raw json.RawMessage) (assumption.Assumptions, error) {
	a := assumption.Default()
	if len(raw) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return a, err
	}
	return a, nil
}

// cors mirrors the front end's preflight expectations. Returns true when the
// request was an OPTIONS preflight and has been fully answered.
func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// DCFResponse bundles the schedule, the result, and the validation verdict.
type DCFResponse struct {
	Rows       []projection.Row      `json:"rows"`
	Result     coreval.Result        `json:"result"`
	WACC       coreval.WACCBreakdown `json:"wacc"`
	Validation validate.Result       `json:"validation"`
}

// HandleDCF runs the full pipeline once.
func (h *Handler) HandleDCF(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req baseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := decodeAssumptions(req.Assumptions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	res, rows := pipeline.RunRows(a)
	h.logger.Info("dcf computed",
		zap.String("scenario", req.Scenario),
		zap.Float64("per_share", res.PerShare),
		zap.Duration("elapsed", time.Since(start)))

	h.writeJSON(w, DCFResponse{
		Rows:       rows,
		Result:     res,
		WACC:       coreval.CalculateWACC(a),
		Validation: validate.Check(a),
	})
}

// HandleValidate checks assumptions without running the pipeline.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req struct {
		baseRequest
		Previous json.RawMessage `json:"previous"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := decodeAssumptions(req.Assumptions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Record the change trail when the caller supplies the scenario's
	// previous state alongside the new one.
	if h.auditLog != nil && len(req.Previous) > 0 {
		if prev, err := decodeAssumptions(req.Previous); err == nil {
			if err := h.auditLog.Record(r.Context(), req.Scenario, prev, a); err != nil {
				h.logger.Warn("audit record failed", zap.Error(err))
			}
		}
	}

	h.writeJSON(w, validate.Check(a))
}

// HeatmapRequest optionally narrows the grid configuration.
type HeatmapRequest struct {
	baseRequest
	Config *sensitivity.Config `json:"config"`
}

// HandleHeatmaps computes the named sensitivity grids.
func (h *Handler) HandleHeatmaps(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req HeatmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := decodeAssumptions(req.Assumptions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg := sensitivity.DefaultConfig(a)
	if req.Config != nil {
		cfg = *req.Config
	}
	grids, err := sensitivity.GenerateHeatmaps(a, cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger.Info("heatmaps computed",
		zap.String("scenario", req.Scenario),
		zap.Int("grids", len(grids)))
	h.writeJSON(w, map[string]interface{}{"grids": grids})
}

// TornadoRequest optionally overrides the perturbation set.
type TornadoRequest struct {
	baseRequest
	Perturbations []sensitivity.Perturbation `json:"perturbations"`
}

// HandleTornado ranks single-variable impacts around the base case.
func (h *Handler) HandleTornado(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req TornadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := decodeAssumptions(req.Assumptions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	perts := req.Perturbations
	if len(perts) == 0 {
		perts = sensitivity.DefaultPerturbations()
	}
	base := pipeline.Run(a).PerShare
	items, err := sensitivity.GenerateTornado(a, base, perts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, map[string]interface{}{
		"base_per_share": base,
		"items":          items,
	})
}

// MonteCarloRequest configures one simulation.
type MonteCarloRequest struct {
	baseRequest
	Priors     []montecarlo.Prior `json:"priors"`
	Iterations int                `json:"iterations"`
	Seed       uint64             `json:"seed"`
}

// HandleMonteCarlo runs the simulation synchronously. The core is pure, so
// hosts that want the loop off the interaction path can call it from a
// worker instead.
func (h *Handler) HandleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	var req MonteCarloRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a, err := decodeAssumptions(req.Assumptions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Iterations <= 0 {
		req.Iterations = 5000
	}
	if req.Iterations > maxMonteCarloIterations {
		http.Error(w, "iterations above per-request limit", http.StatusBadRequest)
		return
	}
	priors := req.Priors
	if len(priors) == 0 {
		priors = montecarlo.GeneratePriors(a)
	}

	start := time.Now()
	res, err := montecarlo.Run(a, priors, req.Iterations, req.Seed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger.Info("monte carlo computed",
		zap.String("scenario", req.Scenario),
		zap.Int("requested", res.Requested),
		zap.Int("valid", res.Valid),
		zap.Duration("elapsed", time.Since(start)))
	h.writeJSON(w, res)
}
