package ruleset_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/earnings"
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
	var ruleSetDTO dto.RuleSetCreate
	err := json.NewDecoder(r.Body).Decode(&ruleSetDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	bands := make([]entities.RuleBand, 0, len(ruleSetDTO.Bands))
	for _, bandDTO := range ruleSetDTO.Bands {
		band, err := bandFromDTO(bandDTO)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		bands = append(bands, band)
	}

	ruleSet, err := h.service.SaveRuleSet(r.Context(), bands)
	if err != nil {
		switch {
		case errors.Is(err, earnings.ErrInvalidRuleSet):
			w.WriteHeader(http.StatusUnprocessableEntity)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.RuleSetFromEntity(ruleSet)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func bandFromDTO(bandDTO dto.RuleBand) (entities.RuleBand, error) {
	minFee, err := decimal.NewFromString(bandDTO.MinFee)
	if err != nil {
		return entities.RuleBand{}, err
	}
	maxFee, err := decimal.NewFromString(bandDTO.MaxFee)
	if err != nil {
		return entities.RuleBand{}, err
	}

	band := entities.RuleBand{
		MinFee: minFee,
		MaxFee: maxFee,
	}

	if band.DriverFixed, err = parseOptional(bandDTO.DriverFixed); err != nil {
		return entities.RuleBand{}, err
	}
	if band.DriverPercentage, err = parseOptional(bandDTO.DriverPercentage); err != nil {
		return entities.RuleBand{}, err
	}
	if band.CompanyFixed, err = parseOptional(bandDTO.CompanyFixed); err != nil {
		return entities.RuleBand{}, err
	}
	if band.CompanyPercentage, err = parseOptional(bandDTO.CompanyPercentage); err != nil {
		return entities.RuleBand{}, err
	}

	return band, nil
}

func parseOptional(value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
