package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"dualfin/internal/ledger/domain"
	ledgerErrors "dualfin/internal/ledger/errors"
)

type TransactionHandler struct {
	service LedgerServiceInterface
}

func NewTransactionHandler(service LedgerServiceInterface) *TransactionHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &TransactionHandler{service: service}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var transaction domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.AddTransaction(userID, &transaction); err != nil {
		if ledgerErrors.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	})
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode != "" && !domain.IsValidMode(mode) {
		respondError(w, http.StatusBadRequest, "Invalid mode")
		return
	}

	transactions, err := h.service.GetTransactions(userID, mode)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transactions,
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var update domain.TransactionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateTransaction(userID, r.PathValue("id"), update); err != nil {
		if errors.Is(err, ledgerErrors.ErrTransactionNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if ledgerErrors.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTransaction(userID, r.PathValue("id")); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
