package job_broadcast_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/dispatch"
	"dispatch/pkg/logger"
)

type broadcastRequest struct {
	JobID string `json:"job_id"`
}

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request broadcastRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	jobID, err := uuid.Parse(request.JobID)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := h.service.StartBroadcast(r.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrJobNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, dispatch.ErrInvalidJobID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, dispatch.ErrInvalidState), errors.Is(err, dispatch.ErrAlreadyAssigned):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.BroadcastStartResponse{
		JobID:            result.Job.ID.String(),
		Attempt:          result.Attempt,
		NotifiedCouriers: len(result.EligibleCourier),
		EndsAt:           result.EndsAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
