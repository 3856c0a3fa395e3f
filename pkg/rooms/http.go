package rooms

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
	r.HandleFunc("/rooms", h.handleListAvailable).Methods(http.MethodGet)
	r.HandleFunc("/rooms", h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{id}/status", h.handleSetStatus).Methods(http.MethodPatch)
	r.HandleFunc("/bookedrooms", h.handleListBooked).Methods(http.MethodGet)
	r.HandleFunc("/maintenance-rooms", h.handleListMaintenance).Methods(http.MethodGet)
}

func (h *Handler) handleListAvailable(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListAvailable(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list available rooms")
		http.Error(w, "failed to list rooms", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *Handler) handleListBooked(w http.ResponseWriter, r *http.Request) {
	booked, err := h.service.ListBooked(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list booked rooms")
		http.Error(w, "failed to list rooms", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, booked)
}

func (h *Handler) handleListMaintenance(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.ListMaintenance(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list maintenance rooms")
		http.Error(w, "failed to list rooms", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	roomID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid room id", http.StatusBadRequest)
		return
	}
	room, err := h.service.Get(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to get room")
		http.Error(w, "failed to get room", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var room Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if room.RoomType == "" || room.CostPerDay < 0 {
		http.Error(w, "room_type is required and cost_per_day must not be negative", http.StatusBadRequest)
		return
	}
	if err := h.service.Create(r.Context(), &room); err != nil {
		logger.Log.WithError(err).Error("failed to create room")
		http.Error(w, "failed to create room", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	roomID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid room id", http.StatusBadRequest)
		return
	}
	var req models.UpdateRoomStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.service.SetStatus(r.Context(), roomID, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, "status must be Available or Maintenance", http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "room not found", http.StatusNotFound)
		case errors.Is(err, ErrConflict):
			http.Error(w, "room is occupied", http.StatusConflict)
		default:
			logger.Log.WithError(err).Error("failed to update room status")
			http.Error(w, "failed to update room status", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
