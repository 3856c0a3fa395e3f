package appointments

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
	r.HandleFunc("/appointments", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/appointments", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{id}", h.handleUpdateStatus).Methods(http.MethodPut)
	r.HandleFunc("/appointments/{id}", h.handleDelete).Methods(http.MethodDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUnknownPatient), errors.Is(err, ErrUnknownDoctor):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			logger.Log.WithError(err).Error("failed to create appointment")
			http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list appointments")
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}
	appt, err := h.service.Get(r.Context(), appointmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to get appointment")
		http.Error(w, "failed to get appointment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}
	var req models.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), appointmentID, req.Status); err != nil {
		switch {
		case IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "appointment not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidTransition):
			http.Error(w, "appointment is no longer scheduled", http.StatusConflict)
		default:
			logger.Log.WithError(err).Error("failed to update appointment status")
			http.Error(w, "failed to update appointment status", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "appointment status updated"})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), appointmentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to delete appointment")
		http.Error(w, "failed to delete appointment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "appointment deleted and sequence reset"})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
