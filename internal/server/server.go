package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lucaspazio/Financial-Model/internal/baseline"
	"github.com/lucaspazio/Financial-Model/internal/config"
	"github.com/lucaspazio/Financial-Model/internal/engine"
	"github.com/lucaspazio/Financial-Model/internal/forecast"
	"github.com/lucaspazio/Financial-Model/internal/reasonability"
	"github.com/lucaspazio/Financial-Model/internal/store"
	"github.com/lucaspazio/Financial-Model/pkg/constants"
	"github.com/lucaspazio/Financial-Model/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

// Keys in request bodies that are not scale parameters.
const (
	fieldName           = "name"
	fieldScales         = "scales"
	fieldParams         = "params"
	fieldIncludeResults = "includeResults"
)

var errStoreDisabled = errors.New("scenario store is not configured")

type handler struct {
	logger      *zap.Logger
	plan        *baseline.Plan
	scenarios   store.Store
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the chart UI, the
// compute API and scenario persistence. A nil store disables the scenario
// endpoints.
func NewHandler(logger *zap.Logger, plan *baseline.Plan, scenarios store.Store, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if plan == nil {
		plan = baseline.Default()
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		plan:        plan,
		scenarios:   scenarios,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/compute", h.handleCompute)
	mux.HandleFunc("GET /api/baseline", h.handleBaseline)
	mux.HandleFunc("GET /api/version", h.handleVersion)
	mux.HandleFunc("POST /api/export", h.handleExport)

	mux.HandleFunc("GET /api/scenarios", h.handleListScenarios)
	mux.HandleFunc("POST /api/scenarios", h.handleSaveScenario)
	mux.HandleFunc("GET /api/scenarios/{name}", h.handleGetScenario)
	mux.HandleFunc("DELETE /api/scenarios/{name}", h.handleDeleteScenario)
	mux.HandleFunc("POST /api/scenarios/{name}/compute", h.handleComputeScenario)

	// Routes used by the first version of the chart page.
	mux.HandleFunc("POST /run_model", h.handleCompute)
	mux.HandleFunc("POST /save_scenario", h.handleLegacySave)
	mux.HandleFunc("POST /load_scenario", h.handleLegacyLoad)
	mux.HandleFunc("GET /list_scenarios", h.handleListScenarios)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("GET /", http.FileServer(http.FS(sub)))

	return mux
}

type computeResponse struct {
	Name          string                 `json:"name,omitempty"`
	Parameters    config.ScaleParameters `json:"parameters"`
	Results       *engine.Result         `json:"results"`
	Reasonability reasonability.Report   `json:"reasonability"`
	Warnings      []string               `json:"warnings,omitempty"`
	Duration      string                 `json:"duration"`
}

func newComputeResponse(f forecast.Forecast, start time.Time) computeResponse {
	return computeResponse{
		Name:          f.Name,
		Parameters:    f.Parameters,
		Results:       f.Results,
		Reasonability: f.Reasonability,
		Warnings:      f.Warnings,
		Duration:      time.Since(start).String(),
	}
}

func (h *handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompute"
	start := time.Now()

	payload, ok := h.readObject(w, r, op)
	if !ok {
		return
	}

	result := forecast.RunRaw("", h.plan, scalesFrom(payload))
	h.logger.Debug("computed forecast",
		zap.String("op", op),
		zap.Int("warnings", len(result.Warnings)),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, newComputeResponse(result, start))
}

func (h *handler) handleBaseline(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.plan)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// handleExport renders a scenario as a config.yaml snippet the command line
// tool can run.
func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"

	payload, ok := h.readObject(w, r, op)
	if !ok {
		return
	}

	name, _ := payload[fieldName].(string)
	if strings.TrimSpace(name) == "" {
		name = "exported"
	}
	params, warnings := config.ParseScaleParameters(scalesFrom(payload))

	snippet := map[string]interface{}{
		"scenarios": []map[string]interface{}{{
			"name":   name,
			"active": true,
			"scales": params.AsMap(),
		}},
	}
	data, err := yaml.Marshal(snippet)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"yaml":     string(data),
		"warnings": warnings,
	})
}

func (h *handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListScenarios"
	if !h.requireStore(w, op) {
		return
	}

	names, err := h.scenarios.List(r.Context())
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, names)
}

func (h *handler) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSaveScenario"
	if !h.requireStore(w, op) {
		return
	}

	payload, ok := h.readObject(w, r, op)
	if !ok {
		return
	}

	doc, ok := h.saveDocument(r.Context(), w, payload, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusCreated, doc)
}

func (h *handler) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetScenario"
	if !h.requireStore(w, op) {
		return
	}

	doc, err := h.scenarios.Load(r.Context(), r.PathValue("name"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

func (h *handler) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteScenario"
	if !h.requireStore(w, op) {
		return
	}

	name := r.PathValue("name")
	if err := h.scenarios.Delete(r.Context(), name); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.logger.Info("deleted scenario",
		zap.String("op", op),
		zap.String("scenario", name),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleComputeScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleComputeScenario"
	if !h.requireStore(w, op) {
		return
	}
	start := time.Now()

	doc, err := h.scenarios.Load(r.Context(), r.PathValue("name"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, newComputeResponse(forecast.Run(doc.Name, h.plan, doc.Scales), start))
}

func (h *handler) handleLegacySave(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLegacySave"
	if !h.requireStore(w, op) {
		return
	}

	payload, ok := h.readObject(w, r, op)
	if !ok {
		return
	}
	if _, named := payload[fieldName]; !named {
		payload[fieldName] = "scenario"
	}

	doc, ok := h.saveDocument(r.Context(), w, payload, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": doc.ID})
}

// handleLegacyLoad answers with the flat name plus scale keys layout the
// first chart page saved.
func (h *handler) handleLegacyLoad(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLegacyLoad"
	if !h.requireStore(w, op) {
		return
	}

	payload, ok := h.readObject(w, r, op)
	if !ok {
		return
	}
	name, _ := payload[fieldName].(string)

	doc, err := h.scenarios.Load(r.Context(), name)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}

	flat := make(map[string]interface{}, len(config.ScaleKeys)+1)
	for key, value := range doc.Scales.AsMap() {
		flat[key] = value
	}
	flat[fieldName] = doc.Name
	h.writeJSON(w, http.StatusOK, flat)
}

func (h *handler) saveDocument(ctx context.Context, w http.ResponseWriter, payload map[string]interface{}, op string) (store.Document, bool) {
	name, _ := payload[fieldName].(string)
	if err := validation.ValidateScenarioName(name); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return store.Document{}, false
	}

	params, warnings := config.ParseScaleParameters(scalesFrom(payload))
	for _, warning := range warnings {
		h.logger.Warn(warning,
			zap.String("op", op),
			zap.String("scenario", name),
		)
	}

	var result *engine.Result
	if coerceBool(payload[fieldIncludeResults]) {
		result = engine.Compute(h.plan, params)
	}

	doc := store.NewDocument(name, params, result)
	if err := h.scenarios.Save(ctx, doc); err != nil {
		h.respondStoreError(w, err, op)
		return store.Document{}, false
	}

	h.logger.Info("saved scenario",
		zap.String("op", op),
		zap.String("scenario", name),
		zap.String("id", doc.ID),
	)
	return doc, true
}

// scalesFrom picks the scale bag out of a request body. Bodies either nest
// it under "scales" (or "params") or carry the keys at the top level.
func scalesFrom(payload map[string]interface{}) map[string]interface{} {
	for _, key := range []string{fieldScales, fieldParams} {
		if nested, ok := payload[key].(map[string]interface{}); ok {
			return nested
		}
	}

	scales := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		switch key {
		case fieldName, fieldScales, fieldParams, fieldIncludeResults:
			continue
		}
		scales[key] = value
	}
	return scales
}

// readObject reads a JSON object body. An empty body is an empty object.
func (h *handler) readObject(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err), op)
		return nil, false
	}

	payload, err := decodeJSONObject(data)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON payload: %v", err), op)
		return nil, false
	}
	return payload, true
}

func decodeJSONObject(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var result map[string]interface{}
	if err := decoder.Decode(&result); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, errors.New("unexpected data after JSON object")
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) requireStore(w http.ResponseWriter, op string) bool {
	if h.scenarios == nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, errStoreDisabled.Error(), op)
		return false
	}
	return true
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.respondErrorWithOp(w, http.StatusNotFound, store.ErrNotFound.Error(), op)
	case errors.Is(err, validation.ErrInvalidScenarioName):
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
	default:
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("scenario store failed: %v", err), op)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request failed", fields...)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return false
}
