package ui

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielxmed/nobra-calculator/app"
	"github.com/danielxmed/nobra-calculator/domain/score"
)

// errorResponse is the uniform error payload. Every variant carries enough
// structured detail to be actionable without consulting logs.
type errorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type listResponse struct {
	Scores []score.Info `json:"scores"`
	Total  int          `json:"total"`
}

type reloadResponse struct {
	ScoreCount int    `json:"score_count"`
	Took       string `json:"took"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"scores": a.registry.Current().Count(),
	})
}

func (a *App) handleListScores(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	scores := a.scores.List(category, search)
	writeJSON(w, http.StatusOK, listResponse{Scores: scores, Total: len(scores)})
}

func (a *App) handleGetScore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	descriptor, err := a.scores.Get(id)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, descriptor)
}

func (a *App) handleCalculate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// UseNumber keeps integer/float distinction intact for the validator.
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "MalformedRequest",
			Message: "request body must be a JSON object",
		})
		return
	}

	result, err := a.scores.Dispatch(r.Context(), id, raw)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *App) handleReload(w http.ResponseWriter, r *http.Request) {
	outcome, err := a.registry.Reload(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		ScoreCount: outcome.ScoreCount,
		Took:       outcome.Took.String(),
	})
}

// writeError maps the engine's error taxonomy onto HTTP status codes.
func (a *App) writeError(w http.ResponseWriter, err error) {
	var unknownErr *score.UnknownScoreError
	var validationErr *score.ValidationError
	var computationErr *score.ComputationError
	var bandErr *score.NoMatchingBandError
	var reloadErr *app.ReloadError

	switch {
	case errors.As(err, &unknownErr):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   "ScoreNotFound",
			Message: unknownErr.Error(),
			Details: map[string]string{"id": unknownErr.ID},
		})

	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "InvalidParameters",
			Message: validationErr.Error(),
			Details: map[string]interface{}{"violations": validationErr.Violations},
		})

	case errors.As(err, &computationErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "CalculationError",
			Message: computationErr.Error(),
			Details: map[string]string{"id": computationErr.ID, "cause": computationErr.Cause.Error()},
		})

	case errors.As(err, &bandErr):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "InterpretationError",
			Message: bandErr.Error(),
			Details: map[string]interface{}{"id": bandErr.ID, "value": bandErr.Value},
		})

	case errors.As(err, &reloadErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   "ReloadFailed",
			Message: reloadErr.Error(),
			Details: map[string]interface{}{"stage": reloadErr.Stage, "failed_ids": reloadErr.FailedIDs()},
		})

	default:
		a.logger.Error("unhandled error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "InternalServerError",
			Message: "an unexpected error occurred",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
