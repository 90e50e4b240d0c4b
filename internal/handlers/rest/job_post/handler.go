package job_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"dispatch/internal/entities"
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
	var jobCreateDTO dto.JobCreate
	err := json.NewDecoder(r.Body).Decode(&jobCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	fee, err := decimal.NewFromString(jobCreateDTO.Fee)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	paymentMethod := entities.PaymentMethod(jobCreateDTO.PaymentMethod)
	jobModifyEntity := entities.JobModify{
		Fee:           &fee,
		PaymentMethod: &paymentMethod,
		MaxAttempts:   jobCreateDTO.MaxAttempts,
	}

	// Пустой код не передаём — сервис сгенерирует его сам.
	if jobCreateDTO.Code != "" {
		jobModifyEntity.Code = &jobCreateDTO.Code
	}
	if jobCreateDTO.Priority != "" {
		priority := entities.JobPriority(jobCreateDTO.Priority)
		jobModifyEntity.Priority = &priority
	}
	if jobCreateDTO.Pickup != nil {
		jobModifyEntity.Pickup = &entities.GeoPoint{Lat: jobCreateDTO.Pickup.Lat, Lon: jobCreateDTO.Pickup.Lon}
	}
	if jobCreateDTO.Drop != nil {
		jobModifyEntity.Drop = &entities.GeoPoint{Lat: jobCreateDTO.Drop.Lat, Lon: jobCreateDTO.Drop.Lon}
	}
	if jobCreateDTO.BroadcastRadiusKm != nil {
		jobModifyEntity.BroadcastRadius = jobCreateDTO.BroadcastRadiusKm
	}
	if jobCreateDTO.BroadcastTTLSeconds != nil {
		ttl := time.Duration(*jobCreateDTO.BroadcastTTLSeconds) * time.Second
		jobModifyEntity.BroadcastTTL = &ttl
	}

	job, err := h.service.CreateJob(r.Context(), jobModifyEntity)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, dispatch.ErrJobAlreadyExists):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.JobCreateResponse{
		ID: job.ID.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
