/*
handlers.go - HTTP API handlers for the compliance obligation engine

PURPOSE:
  Exposes the obligation engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Catalog:
    GET    /api/catalog                  List obligation definitions
    PUT    /api/catalog                  Replace the whole catalog
    GET    /api/catalog/schedule         Project deadlines over a horizon

  Recurrence:
    POST   /api/recurrence/expand        Expand a rule into deadline dates

  Clients:
    GET    /api/clients                  List client profiles
    POST   /api/clients                  Create/supersede a profile
    GET    /api/clients/{id}             Fetch a profile
    GET    /api/clients/{id}/obligations Derived obligations
    GET    /api/clients/{id}/risk        Consistency findings + score
    GET    /api/clients/{id}/coverage    Reconciliation vs tracked items

  Tasks:
    GET    /api/clients/{id}/tasks       List tracked items
    POST   /api/clients/{id}/tasks       Add a tracked item
    DELETE /api/clients/{id}/tasks/{taskID}

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Profiles/Tasks/Catalog: Storage interfaces
  - Log: Structured logger

  Derivation, risk and coverage are computed per request; they are pure and
  cheap, so nothing is cached between calls.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Client or task not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scheduler.go: Background risk snapshot refresh
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warp/compliance-engine/catalog"
	"github.com/warp/compliance-engine/engine"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Profiles engine.ProfileStore
	Tasks    engine.TaskStore
	Catalog  catalog.Store
	Log      *logrus.Logger
}

// NewHandler creates a new handler over the given stores.
func NewHandler(profiles engine.ProfileStore, tasks engine.TaskStore, cat catalog.Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{Profiles: profiles, Tasks: tasks, Catalog: cat, Log: log}
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// ListCatalog returns all obligation definitions in wire form.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	defs, err := h.Catalog.ListDefinitions(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list catalog", err)
		return
	}

	dtos := make([]catalog.DefinitionJSON, len(defs))
	for i, def := range defs {
		dtos[i] = catalog.ToJSON(def)
	}
	writeJSON(w, http.StatusOK, map[string]any{"definitions": dtos})
}

// ReplaceCatalog replaces the stored catalog wholesale.
func (h *Handler) ReplaceCatalog(w http.ResponseWriter, r *http.Request) {
	var req ReplaceCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	defs := make([]catalog.ObligationDefinition, len(req.Definitions))
	for i, dj := range req.Definitions {
		defs[i] = catalog.FromJSON(dj)
	}

	if err := h.Catalog.ReplaceCatalog(r.Context(), defs); err != nil {
		h.internalError(w, "Failed to replace catalog", err)
		return
	}

	h.Log.WithField("definitions", len(defs)).Info("catalog replaced")
	catalogReplacements.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "count": len(defs)})
}

// GetSchedule projects every catalog definition over a horizon.
// Query params: start (YYYY-MM-DD, default today), months (default 3).
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	start, months, ok := h.horizonParams(w, r)
	if !ok {
		return
	}

	defs, err := h.Catalog.ListDefinitions(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list catalog", err)
		return
	}

	scheduled := catalog.Schedule(defs, start, months)
	writeJSON(w, http.StatusOK, map[string]any{
		"horizonStart":  start,
		"horizonMonths": months,
		"obligations":   scheduled,
	})
}

// =============================================================================
// RECURRENCE HANDLERS
// =============================================================================

// ExpandRecurrence expands a single rule into concrete deadline dates.
func (h *Handler) ExpandRecurrence(w http.ResponseWriter, r *http.Request) {
	var req ExpandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := engine.ParseDate(req.HorizonStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid horizonStart (use YYYY-MM-DD)", err)
		return
	}
	if req.HorizonMonths <= 0 {
		writeError(w, http.StatusBadRequest, "horizonMonths must be positive", nil)
		return
	}

	rule := catalog.FromJSON(catalog.DefinitionJSON{Rule: req.Rule}).Rule
	dates := engine.Expand(rule, start, req.HorizonMonths)
	if dates == nil {
		dates = []engine.Date{}
	}

	expansionRequests.Inc()
	writeJSON(w, http.StatusOK, ExpandResponse{Dates: dates})
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

// ListClients returns all client profiles.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Profiles.ListProfiles(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list clients", err)
		return
	}
	if profiles == nil {
		profiles = []engine.RegulatoryProfile{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": profiles})
}

// UpsertClient creates or supersedes a client profile. The profile is
// normalized before storage so downstream reads never see raw input.
func (h *Handler) UpsertClient(w http.ResponseWriter, r *http.Request) {
	var req UpsertClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	clientID := req.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}

	profile := engine.RegulatoryProfile{
		ClientID:     clientID,
		EntityType:   engine.EntityType(req.EntityType),
		TaxRegime:    engine.TaxRegime(req.TaxRegime),
		VATMode:      engine.VATMode(req.VATMode),
		Payroll:      req.Payroll,
		Special:      req.Special,
		BankAccounts: req.BankAccounts,
		UpdatedAt:    time.Now().UTC(),
	}.Normalize()

	if err := h.Profiles.SaveProfile(r.Context(), profile); err != nil {
		h.internalError(w, "Failed to save client profile", err)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"client": profile.ClientID,
		"regime": profile.TaxRegime,
	}).Info("client profile saved")
	profileWrites.Inc()

	writeJSON(w, http.StatusCreated, profile)
}

// GetClient returns a single client profile.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// GetObligations derives the obligation set from the client's profile.
func (h *Handler) GetObligations(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	obligations := engine.Derive(profile)
	if obligations == nil {
		obligations = []engine.DerivedObligation{}
	}

	derivationRequests.Inc()
	writeJSON(w, http.StatusOK, ObligationsResponse{
		ClientID:    profile.ClientID,
		Obligations: obligations,
	})
}

// GetRisk runs the consistency checks and scores the findings.
func (h *Handler) GetRisk(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	derived := engine.Derive(profile)
	findings := engine.Check(profile, derived)
	score := engine.Score(findings)
	if findings == nil {
		findings = []engine.RiskFinding{}
	}

	riskChecks.Inc()
	riskScoreGauge.WithLabelValues(string(score.Label)).Set(float64(score.Value))

	writeJSON(w, http.StatusOK, RiskResponse{
		ClientID: profile.ClientID,
		Findings: findings,
		Score:    score,
	})
}

// GetCoverage reconciles derived obligations against the client's tracked
// items.
func (h *Handler) GetCoverage(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	tracked, err := h.Tasks.ListTasks(r.Context(), profile.ClientID)
	if err != nil {
		h.internalError(w, "Failed to list tasks", err)
		return
	}

	derived := engine.Derive(profile)
	result := engine.Reconcile(derived, tracked)
	stats := result.Stats()

	coverageRequests.Inc()
	writeJSON(w, http.StatusOK, CoverageResponse{
		ClientID:       profile.ClientID,
		Result:         result,
		Stats:          stats,
		CoveredPercent: stats.Percent().String(),
	})
}

// =============================================================================
// TASK HANDLERS
// =============================================================================

// ListTasks returns the client's tracked items.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	items, err := h.Tasks.ListTasks(r.Context(), profile.ClientID)
	if err != nil {
		h.internalError(w, "Failed to list tasks", err)
		return
	}
	if items == nil {
		items = []engine.TrackedItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": items})
}

// CreateTask adds a tracked item for the client.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required", nil)
		return
	}

	item := engine.TrackedItem{
		ID:     req.ID,
		Title:  req.Title,
		Status: req.Status,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = "open"
	}
	if req.DueDate != "" {
		due, err := engine.ParseDate(req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid dueDate (use YYYY-MM-DD)", err)
			return
		}
		item.DueDate = due
	}

	if err := h.Tasks.SaveTask(r.Context(), profile.ClientID, item); err != nil {
		h.internalError(w, "Failed to save task", err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// DeleteTask removes a tracked item.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	taskID := chi.URLParam(r, "taskID")

	if err := h.Tasks.DeleteTask(r.Context(), clientID, taskID); err != nil {
		if engine.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Task not found", nil)
			return
		}
		h.internalError(w, "Failed to delete task", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// HELPERS
// =============================================================================

// loadProfile resolves the {id} URL parameter to a profile, writing the error
// response itself on failure.
func (h *Handler) loadProfile(w http.ResponseWriter, r *http.Request) (engine.RegulatoryProfile, bool) {
	clientID := chi.URLParam(r, "id")

	profile, err := h.Profiles.GetProfile(r.Context(), clientID)
	if err != nil {
		if engine.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Client not found", nil)
		} else {
			h.internalError(w, "Failed to get client profile", err)
		}
		return engine.RegulatoryProfile{}, false
	}
	return profile, true
}

func (h *Handler) horizonParams(w http.ResponseWriter, r *http.Request) (engine.Date, int, bool) {
	start := engine.Today()
	if s := r.URL.Query().Get("start"); s != "" {
		parsed, err := engine.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start (use YYYY-MM-DD)", err)
			return engine.Date{}, 0, false
		}
		start = parsed
	}

	months := 3
	if m := r.URL.Query().Get("months"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid months (positive integer)", err)
			return engine.Date{}, 0, false
		}
		months = parsed
	}
	return start, months, true
}

func (h *Handler) internalError(w http.ResponseWriter, message string, err error) {
	h.Log.WithError(err).Error(message)
	writeError(w, http.StatusInternalServerError, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
