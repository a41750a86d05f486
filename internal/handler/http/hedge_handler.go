package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/hedge-finder-service/internal/models"
	"github.com/cypherlabdev/hedge-finder-service/internal/service"
)

// HedgeHandler handles HTTP requests for hedge opportunities
type HedgeHandler struct {
	service *service.HedgeService
	logger  zerolog.Logger
}

// NewHedgeHandler creates a new hedge HTTP handler
func NewHedgeHandler(service *service.HedgeService, logger zerolog.Logger) *HedgeHandler {
	return &HedgeHandler{
		service: service,
		logger:  logger.With().Str("component", "hedge_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *HedgeHandler) RegisterRoutes(mux *http.ServeMux) {
	// GET /api/v1/opportunities/:event - Get the best opportunity for an event
	mux.HandleFunc("/api/v1/opportunities/", h.handleGetBest)

	// GET /api/v1/events/:event/opportunities - Get all opportunities for an event
	mux.HandleFunc("/api/v1/events/", h.handleGetEventOpportunities)
}

// handleGetBest handles GET /api/v1/opportunities/:event
func (h *HedgeHandler) handleGetBest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	event := strings.TrimPrefix(r.URL.Path, "/api/v1/opportunities/")
	if event == "" || strings.Contains(event, "/") {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/opportunities/:event")
		return
	}

	opp, err := h.service.GetBestOpportunity(r.Context(), event)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("event", event).
			Msg("no opportunity cached")
		h.errorResponse(w, http.StatusNotFound, "no opportunity found")
		return
	}

	h.jsonResponse(w, http.StatusOK, ToOpportunityResponse(opp))
}

// handleGetEventOpportunities handles GET /api/v1/events/:event/opportunities
func (h *HedgeHandler) handleGetEventOpportunities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse path: /api/v1/events/:event/opportunities
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/events/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "opportunities" {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/events/:event/opportunities")
		return
	}

	event := parts[0]
	if event == "" {
		h.errorResponse(w, http.StatusBadRequest, "event is required")
		return
	}

	opportunities, err := h.service.GetOpportunitiesByEvent(r.Context(), event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("event", event).
			Msg("failed to retrieve event opportunities")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve opportunities")
		return
	}

	responses := make([]*OpportunityResponse, 0, len(opportunities))
	for i := range opportunities {
		responses = append(responses, ToOpportunityResponse(&opportunities[i]))
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"event":         event,
		"count":         len(responses),
		"opportunities": responses,
	})
}

// jsonResponse writes a JSON response
func (h *HedgeHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *HedgeHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}

// OpportunityResponse represents the API response for a hedge opportunity
type OpportunityResponse struct {
	Event      string `json:"event"`
	Selection  string `json:"selection"`
	Opposite   string `json:"opposite"`
	BonusBook  string `json:"bonus_book"`
	BonusOdds  string `json:"bonus_odds"`
	HedgeBook  string `json:"hedge_book"`
	HedgeOdds  string `json:"hedge_odds"`
	HedgeStake string `json:"hedge_stake"`
	Profit     string `json:"profit"`
	Efficiency string `json:"efficiency"`
	DetectedAt string `json:"detected_at"`
}

// ToOpportunityResponse converts a HedgeOpportunity to API response format
func ToOpportunityResponse(opp *models.HedgeOpportunity) *OpportunityResponse {
	return &OpportunityResponse{
		Event:      opp.Event,
		Selection:  opp.Selection,
		Opposite:   opp.Opposite,
		BonusBook:  string(opp.BonusBook),
		BonusOdds:  opp.BonusOdds.String(),
		HedgeBook:  string(opp.HedgeBook),
		HedgeOdds:  opp.HedgeOdds.String(),
		HedgeStake: opp.HedgeStake.StringFixed(2),
		Profit:     opp.Profit.StringFixed(2),
		Efficiency: opp.Efficiency.String(),
		DetectedAt: opp.DetectedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
