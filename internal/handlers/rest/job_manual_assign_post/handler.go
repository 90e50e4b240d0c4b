package job_manual_assign_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/dispatch"
	"dispatch/pkg/logger"
)

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
	var assignDTO dto.ManualAssign
	err := json.NewDecoder(r.Body).Decode(&assignDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	jobID, err := uuid.Parse(assignDTO.JobID)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	job, err := h.service.ManualAssign(r.Context(), jobID, assignDTO.CourierID)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrInvalidJobID), errors.Is(err, dispatch.ErrInvalidCourierID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, dispatch.ErrJobNotFound), errors.Is(err, dispatch.ErrCourierNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, dispatch.ErrAlreadyAssigned), errors.Is(err, dispatch.ErrInvalidState):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	jobDTO := dto.JobFromEntity(job)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(jobDTO)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
