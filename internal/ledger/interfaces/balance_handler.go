package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dualfin/internal/ledger/domain"
	ledgerErrors "dualfin/internal/ledger/errors"
)

type BalanceHandler struct {
	service LedgerServiceInterface
}

func NewBalanceHandler(service LedgerServiceInterface) *BalanceHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &BalanceHandler{service: service}
}

// GetBalance returns the stored baseline together with the derived balance.
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	mode := r.PathValue("mode")
	baseline, err := h.service.GetBalance(userID, mode)
	if err != nil {
		if ledgerErrors.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to retrieve balance")
		return
	}
	calculated, err := h.service.CalculatedBalance(userID, mode)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve balance")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"mode":               mode,
			"baseline":           baseline,
			"calculated_balance": calculated,
		},
	})
}

func (h *BalanceHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SetBalance(userID, r.PathValue("mode"), req.Value); err != nil {
		if ledgerErrors.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to set balance")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// GetMonthlySummary reports the current month's confirmed totals for the
// dashboard cards.
func (h *BalanceHandler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	mode := r.URL.Query().Get("mode")
	if !domain.IsValidMode(mode) {
		respondError(w, http.StatusBadRequest, "Invalid mode")
		return
	}

	summary, err := h.service.GetMonthlySummary(userID, mode, time.Now().UTC())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve monthly summary")
		return
	}
	calculated, err := h.service.CalculatedBalance(userID, mode)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve monthly summary")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"summary":            summary,
			"calculated_balance": calculated,
		},
	})
}
