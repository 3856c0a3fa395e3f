package directory

import (
	"encoding/json"
	"net/http"

	"github.com/caremesh/hospital/pkg/common/logger"
	"github.com/gorilla/mux"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/doctors", h.handleListDoctors).Methods(http.MethodGet)
	r.HandleFunc("/medications", h.handleListMedications).Methods(http.MethodGet)
}

func (h *Handler) handleListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.repo.ListDoctors(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list doctors")
		http.Error(w, "failed to list doctors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *Handler) handleListMedications(w http.ResponseWriter, r *http.Request) {
	meds, err := h.repo.ListMedications(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list medications")
		http.Error(w, "failed to list medications", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, meds)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
