// Package server exposes the projection engine, advice generator, and plan
// file exchange over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lifeplan-tools/lifeplan-forecast/internal/config"
	"github.com/lifeplan-tools/lifeplan-forecast/internal/metrics"
	"github.com/lifeplan-tools/lifeplan-forecast/internal/sim"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/advice"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/constants"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/faq"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/planfile"
	"github.com/lifeplan-tools/lifeplan-forecast/pkg/summary"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the projection API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/version", h.handleVersion)
	r.Get("/api/faq", h.handleFAQ)
	r.Post("/api/simulate", h.handleSimulate)
	r.Post("/api/advice", h.handleAdvice)
	r.Post("/api/plan/import", h.handlePlanImport)
	r.Post("/api/plan/export", h.handlePlanExport)

	return r
}

type simulateRequest struct {
	Plan config.Simulation `json:"plan"`
	Goal string            `json:"goal,omitempty"`
}

type simulateResponse struct {
	Records  []sim.YearlyRecord `json:"records"`
	Summary  summary.Summary    `json:"summary"`
	Warnings []string           `json:"warnings,omitempty"`
	Duration string             `json:"duration"`
}

type adviceResponse struct {
	Advice  string          `json:"advice"`
	Summary summary.Summary `json:"summary"`
}

type exportRequest struct {
	Plan   config.Simulation `json:"plan"`
	Format string            `json:"format,omitempty"` // csv (default) or yaml
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleFAQ(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"entries": faq.Entries()})
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSimulateRequest(w, r, "server.handleSimulate")
	if !ok {
		return
	}

	records, warnings, elapsed, ok := h.project(w, req, "server.handleSimulate")
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, simulateResponse{
		Records:  records,
		Summary:  summary.FromRecords(records),
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleAdvice(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSimulateRequest(w, r, "server.handleAdvice")
	if !ok {
		return
	}

	records, _, _, ok := h.project(w, req, "server.handleAdvice")
	if !ok {
		return
	}

	s := summary.FromRecords(records)
	h.writeJSON(w, http.StatusOK, adviceResponse{
		Advice:  advice.Generate(advice.Input{Goal: req.Goal, Summary: s}),
		Summary: s,
	})
}

func (h *handler) decodeSimulateRequest(w http.ResponseWriter, r *http.Request, op string) (simulateRequest, bool) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return req, false
	}
	if req.Plan.Expenses.Monthly == nil {
		req.Plan.Expenses.Monthly = make(map[string]float64)
	}
	return req, true
}

func (h *handler) project(w http.ResponseWriter, req simulateRequest, op string) ([]sim.YearlyRecord, []string, time.Duration, bool) {
	conf := config.Configuration{Plan: req.Plan, Goal: req.Goal}
	warnings := conf.ValidateWarnings()

	start := time.Now()
	records, err := sim.Project(h.logger, conf)
	elapsed := time.Since(start)
	if err != nil {
		metrics.Simulations.WithLabelValues("error").Inc()
		var invalidErr *config.InvalidConfigurationError
		if errors.As(err, &invalidErr) {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
		} else {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute projection: %v", err), op)
		}
		return nil, nil, 0, false
	}

	metrics.Simulations.WithLabelValues("ok").Inc()
	metrics.SimulationDuration.Observe(elapsed.Seconds())

	h.logger.Info("projection computed",
		zap.String("op", op),
		zap.Int("years", len(records)),
		zap.Duration("duration", elapsed),
	)

	return records, warnings, elapsed, true
}

func (h *handler) handlePlanImport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePlanImport"

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		metrics.PlanTransfers.WithLabelValues("import", "error").Inc()
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		metrics.PlanTransfers.WithLabelValues("import", "error").Inc()
		h.respondError(w, http.StatusBadRequest, "missing plan file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		metrics.PlanTransfers.WithLabelValues("import", "error").Inc()
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read plan file: %v", err), op)
		return
	}

	plan, err := planfile.Read(&buf)
	if err != nil {
		metrics.PlanTransfers.WithLabelValues("import", "error").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	metrics.PlanTransfers.WithLabelValues("import", "ok").Inc()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"plan": plan})
}

func (h *handler) handlePlanExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePlanExport"

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.PlanTransfers.WithLabelValues("export", "error").Inc()
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	switch req.Format {
	case "", "csv":
		var buf bytes.Buffer
		if err := planfile.Write(&buf, req.Plan); err != nil {
			metrics.PlanTransfers.WithLabelValues("export", "error").Inc()
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode plan: %v", err), op)
			return
		}
		metrics.PlanTransfers.WithLabelValues("export", "ok").Inc()
		h.writeJSON(w, http.StatusOK, map[string]string{"planCsv": buf.String()})
	case "yaml":
		yamlBytes, err := yaml.Marshal(req.Plan)
		if err != nil {
			metrics.PlanTransfers.WithLabelValues("export", "error").Inc()
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode plan: %v", err), op)
			return
		}
		metrics.PlanTransfers.WithLabelValues("export", "ok").Inc()
		h.writeJSON(w, http.StatusOK, map[string]string{"planYaml": string(yamlBytes)})
	default:
		metrics.PlanTransfers.WithLabelValues("export", "error").Inc()
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown export format %q", req.Format), op)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
