package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/caremesh/hospital/pkg/common/logger"
	"github.com/caremesh/hospital/pkg/common/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/billing", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/billing", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("/billing/policy", h.handlePolicy).Methods(http.MethodGet)
	r.HandleFunc("/billing/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/billing/{id}/status", h.handleUpdateStatus).Methods(http.MethodPut)
	r.HandleFunc("/billing/{id}", h.handleDelete).Methods(http.MethodDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBillingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	bill, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUnknownPatient):
			http.Error(w, "patient does not exist", http.StatusUnprocessableEntity)
		default:
			logger.Log.WithError(err).Error("failed to create billing")
			http.Error(w, "failed to create billing", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, bill)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	billingID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid billing id", http.StatusBadRequest)
		return
	}
	var req models.UpdateBillingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), billingID, req); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			http.Error(w, "billing record not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidState):
			http.Error(w, "payment status violates billing invariant", http.StatusConflict)
		default:
			logger.Log.WithError(err).Error("failed to update billing status")
			http.Error(w, "failed to update billing status", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "billing status updated"})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	billingID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid billing id", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), billingID); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "billing record not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to delete billing")
		http.Error(w, "failed to delete billing", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "billing deleted"})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	billingID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid billing id", http.StatusBadRequest)
		return
	}
	bill, err := h.service.Get(r.Context(), billingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "billing record not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to get billing")
		http.Error(w, "failed to get billing", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var patientID int64
	if raw := r.URL.Query().Get("patient_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid patient_id", http.StatusBadRequest)
			return
		}
		patientID = parsed
	}

	bills, err := h.service.List(r.Context(), patientID)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list billing")
		http.Error(w, "failed to list billing", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *Handler) handlePolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Policy())
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
