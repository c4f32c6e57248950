package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/service"
	"go.uber.org/zap"
)

// AnnualCodeHandler exposes the annual code administration endpoints
type AnnualCodeHandler struct {
	annualService *service.AnnualCodeService
	logger        *zap.Logger
}

func NewAnnualCodeHandler(annualService *service.AnnualCodeService, logger *zap.Logger) *AnnualCodeHandler {
	return &AnnualCodeHandler{
		annualService: annualService,
		logger:        logger,
	}
}

// Status godoc
// @Summary Annual code status
// @Description Current year's counter, remaining capacity and whether a rollover is due
// @Tags Annual Codes
// @Produce json
// @Success 200 {object} domain.AnnualCodeStatusDTO
// @Failure 500 {object} domain.APIError
// @Router /annual-codes/status [get]
func (h *AnnualCodeHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.annualService.Status(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "get annual code status")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// Reset godoc
// @Summary Reset all annual codes
// @Description Clears every client's annual code and resets the current year's counter to 0
// @Tags Annual Codes
// @Produce json
// @Success 200 {object} domain.AnnualCodeStatusDTO
// @Failure 500 {object} domain.APIError
// @Router /annual-codes/reset [post]
func (h *AnnualCodeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.annualService.ResetAllCodes(r.Context()); err != nil {
		handleServiceError(w, h.logger, err, "reset annual codes")
		return
	}
	h.Status(w, r)
}

// AssignAll godoc
// @Summary Assign codes to all active clients without one
// @Description Clients are numbered in ascending order of name, continuing from the current counter
// @Tags Annual Codes
// @Produce json
// @Success 200 {object} domain.AnnualCodeBatchResultDTO
// @Failure 422 {object} domain.APIError "Annual code space exhausted"
// @Router /annual-codes/assign [post]
func (h *AnnualCodeHandler) AssignAll(w http.ResponseWriter, r *http.Request) {
	assigned, err := h.annualService.AssignAllCodes(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "assign annual codes")
		return
	}
	respondJSON(w, http.StatusOK, domain.AnnualCodeBatchResultDTO{
		Year:     h.annualService.CurrentYear(),
		Assigned: assigned,
	})
}

// Rollover godoc
// @Summary Run the new-year rollover
// @Description Resets and re-assigns all codes if any client still holds a code from an earlier year. No-op otherwise.
// @Tags Annual Codes
// @Produce json
// @Success 200 {object} domain.AnnualCodeBatchResultDTO
// @Failure 422 {object} domain.APIError "Annual code space exhausted"
// @Router /annual-codes/rollover [post]
func (h *AnnualCodeHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	assigned, err := h.annualService.BulkAssignForNewYear(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "roll over annual codes")
		return
	}
	respondJSON(w, http.StatusOK, domain.AnnualCodeBatchResultDTO{
		Year:     h.annualService.CurrentYear(),
		Assigned: assigned,
	})
}

// Next godoc
// @Summary Take the next annual code
// @Description Advances the current year's counter without binding the code to a client
// @Tags Annual Codes
// @Produce json
// @Success 200 {object} domain.AnnualCodeCheckDTO
// @Failure 422 {object} domain.APIError "Annual code space exhausted"
// @Router /annual-codes/next [post]
func (h *AnnualCodeHandler) Next(w http.ResponseWriter, r *http.Request) {
	code, err := h.annualService.GetNextAnnualCode(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "get next annual code")
		return
	}
	respondJSON(w, http.StatusOK, domain.AnnualCodeCheckDTO{
		Code:     code,
		Year:     h.annualService.CurrentYear(),
		Valid:    true,
		Assigned: false,
	})
}

// Check godoc
// @Summary Check an annual code
// @Description Reports whether code is well-formed and whether a client holds it in the given year
// @Tags Annual Codes
// @Produce json
// @Param code query string true "3-digit annual code"
// @Param year query int false "Year (defaults to current year)"
// @Success 200 {object} domain.AnnualCodeCheckDTO
// @Failure 400 {object} domain.APIError
// @Router /annual-codes/check [get]
func (h *AnnualCodeHandler) Check(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'code' is required")
		return
	}

	var year *int
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 2000 || parsed > 2099 {
			respondWithError(w, http.StatusBadRequest, "year must be between 2000 and 2099")
			return
		}
		year = &parsed
	}

	result := domain.AnnualCodeCheckDTO{
		Code:  code,
		Year:  h.annualService.CurrentYear(),
		Valid: h.annualService.IsValidCode(code),
	}
	if year != nil {
		result.Year = *year
	}

	if result.Valid {
		assigned, err := h.annualService.IsCodeAssigned(r.Context(), code, year)
		if err != nil {
			handleServiceError(w, h.logger, err, "check annual code")
			return
		}
		result.Assigned = assigned
	}

	respondJSON(w, http.StatusOK, result)
}

// History godoc
// @Summary Annual code counters by year
// @Tags Annual Codes
// @Produce json
// @Success 200 {array} domain.AnnualCodeSequenceDTO
// @Failure 500 {object} domain.APIError
// @Router /annual-codes/history [get]
func (h *AnnualCodeHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.annualService.History(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "list annual code history")
		return
	}
	respondJSON(w, http.StatusOK, history)
}
