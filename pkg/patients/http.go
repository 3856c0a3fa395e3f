package patients

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
	r.HandleFunc("/admit", h.handleAdmit).Methods(http.MethodPost)
	r.HandleFunc("/discharge/{id}", h.handleDischarge).Methods(http.MethodPost)
	r.HandleFunc("/patients", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}", h.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/patients/{id}", h.handleDelete).Methods(http.MethodDelete)
}

func (h *Handler) handleAdmit(w http.ResponseWriter, r *http.Request) {
	var req models.AdmitPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patientID, err := h.service.Admit(r.Context(), req)
	if err != nil {
		switch {
		case IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrRoomConflict):
			http.Error(w, "room is not available", http.StatusConflict)
		case errors.Is(err, ErrUnknownDoctor), errors.Is(err, ErrUnknownRoom):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			logger.Log.WithError(err).Error("failed to admit patient")
			http.Error(w, "failed to admit patient", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, models.AdmitPatientResponse{
		PatientID: patientID,
		Status:    "admitted",
	})
}

func (h *Handler) handleDischarge(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}

	if err := h.service.Discharge(r.Context(), patientID); err != nil {
		if errors.Is(err, ErrNotAdmitted) {
			http.Error(w, "patient is not currently admitted", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to discharge patient")
		http.Error(w, "failed to discharge patient", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "patient discharged"})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), patientID); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to delete patient")
		http.Error(w, "failed to delete patient", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "patient deleted"})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		patientID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			http.Error(w, "invalid patient id", http.StatusBadRequest)
			return
		}
		patient, err := h.service.Get(r.Context(), patientID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
			logger.Log.WithError(err).Error("failed to get patient")
			http.Error(w, "failed to get patient", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, []Patient{*patient})
		return
	}

	list, err := h.service.List(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list patients")
		http.Error(w, "failed to list patients", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}
	patient, err := h.service.Get(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to get patient")
		http.Error(w, "failed to get patient", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid patient id", http.StatusBadRequest)
		return
	}
	var req models.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateDemographics(r.Context(), patientID, req); err != nil {
		switch {
		case IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "patient not found", http.StatusNotFound)
		default:
			logger.Log.WithError(err).Error("failed to update patient")
			http.Error(w, "failed to update patient", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "patient updated"})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
