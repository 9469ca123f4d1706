// backend/src/handlers/persona_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/financecoach/backend/src/logger"
	"github.com/username/financecoach/backend/src/services"
	"github.com/username/financecoach/backend/src/utils"
)

type PersonaHandler struct {
	dataSource     services.FinanceDataSource
	summaryService *services.SummaryService
}

func NewPersonaHandler(dataSource services.FinanceDataSource, summaryService *services.SummaryService) *PersonaHandler {
	return &PersonaHandler{
		dataSource:     dataSource,
		summaryService: summaryService,
	}
}

// HandleListPersonas returns the fixed persona set.
func (h *PersonaHandler) HandleListPersonas(w http.ResponseWriter, r *http.Request) {
	personas := h.dataSource.ListPersonas()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(personas); err != nil {
		logger.FromContext(r.Context()).Error("Error encoding personas response", "error", err)
	}
}

// HandleGetPersonaSummary returns the cached finance summary for one persona.
func (h *PersonaHandler) HandleGetPersonaSummary(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")
	ctxLogger := logger.FromContext(r.Context())

	summary, err := h.summaryService.GetSummary(personaID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPersona) {
			utils.SendJSONError(w, fmt.Sprintf("Persona '%s' not found.", personaID), http.StatusNotFound)
			return
		}
		ctxLogger.Error("Error computing finance summary", "personaID", personaID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error computing summary: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		ctxLogger.Error("Error encoding summary response", "personaID", personaID, "error", err)
	}
}
