package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"dualfin/internal/ledger/domain"
	ledgerErrors "dualfin/internal/ledger/errors"
)

type EventHandler struct {
	service LedgerServiceInterface
}

func NewEventHandler(service LedgerServiceInterface) *EventHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &EventHandler{service: service}
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var event domain.CalendarEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.AddEvent(userID, &event); err != nil {
		if ledgerErrors.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Event successfully created.",
		"data":    event,
	})
}

func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	events, err := h.service.GetEvents(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve events")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   events,
	})
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var update domain.EventUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateEvent(userID, r.PathValue("id"), update); err != nil {
		if errors.Is(err, ledgerErrors.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if ledgerErrors.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteEvent(userID, r.PathValue("id")); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// CompleteEvent marks the event done and books the generated income
// transaction; both appear together or not at all.
func (h *EventHandler) CompleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		ActualProfit float64 `json:"actual_profit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CompleteEvent(userID, r.PathValue("id"), req.ActualProfit); err != nil {
		if errors.Is(err, ledgerErrors.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, ledgerErrors.ErrEventAlreadyCompleted) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if ledgerErrors.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to complete event")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Event completed.",
	})
}
