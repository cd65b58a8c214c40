package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/helmcode/configlint-ai/pkg/analyzer"
	"github.com/helmcode/configlint-ai/pkg/controller"
	"github.com/helmcode/configlint-ai/pkg/model"
	"github.com/helmcode/configlint-ai/pkg/view"
)

const maxBodyBytes = 1 << 20

// Config captures the settings of the browser UI.
type Config struct {
	Title string
	// ControllerOptions are applied to every session controller.
	ControllerOptions []controller.Option
}

type Handlers struct {
	cfg      Config
	analyzer controller.Analyzer
	logger   *zap.Logger
}

type HealthResponse struct {
	Status string `json:"status"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func NewHandlers(cfg Config, a controller.Analyzer, logger *zap.Logger) *Handlers {
	if cfg.Title == "" {
		cfg.Title = "Config Lint AI"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{cfg: cfg, analyzer: a, logger: logger}
}

// Routes returns the mux serving the page, the JSON API and sessions.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /api/categories", h.Categories)
	mux.HandleFunc("POST /api/analyze", h.Analyze)
	mux.HandleFunc("GET /ws", h.Session)
	return mux
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	snap := controller.Snapshot{Category: model.DefaultCategory, Phase: controller.Idle{}}
	if err := view.Page(w, h.cfg.Title, snap); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	out := make([]CategoryResponse, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		out = append(out, CategoryResponse{ID: string(c), Label: c.Label()})
	}
	respondJSON(w, http.StatusOK, out)
}

// Analyze runs the analysis client directly, without session state.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalysisRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		respondError(w, http.StatusBadRequest, "source is required")
		return
	}
	category, err := model.ParseCategory(string(req.Category))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), req.Source, category)
	if err != nil {
		var aerr *analyzer.AnalysisError
		if !errors.As(err, &aerr) {
			h.logger.Error("unexpected analyzer failure", zap.Error(err))
		}
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
