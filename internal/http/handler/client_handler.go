package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/repository"
	"github.com/pms-portal/billing-api/internal/service"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService  *service.ClientService
	annualService  *service.AnnualCodeService
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewClientHandler(
	clientService *service.ClientService,
	annualService *service.AnnualCodeService,
	invoiceService *service.InvoiceService,
	logger *zap.Logger,
) *ClientHandler {
	return &ClientHandler{
		clientService:  clientService,
		annualService:  annualService,
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// List godoc
// @Summary List clients
// @Description Get paginated list of clients ordered by name
// @Tags Clients
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name, permanent code or annual code"
// @Param active query bool false "Only active clients"
// @Param issuingCompany query string false "Filter by issuing company" Enums(DET, FZCO, DMCC)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ClientDTO}
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	q := r.URL.Query()

	filters := &repository.ClientFilters{
		Search:     strings.TrimSpace(q.Get("search")),
		ActiveOnly: q.Get("active") == "true",
	}
	if c := q.Get("issuingCompany"); c != "" {
		company := domain.IssuingCompany(strings.ToUpper(c))
		if !company.IsValid() {
			respondWithError(w, http.StatusBadRequest, "issuingCompany must be one of: DET FZCO DMCC")
			return
		}
		filters.IssuingCompany = &company
	}

	result, err := h.clientService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		handleServiceError(w, h.logger, err, "list clients")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get client by ID
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Success 200 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /clients/{id} [get]
func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// GetByPermanentCode godoc
// @Summary Get client by permanent code
// @Tags Clients
// @Produce json
// @Param code path string true "5-digit permanent code"
// @Success 200 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /clients/by-code/{code} [get]
func (h *ClientHandler) GetByPermanentCode(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientService.GetByPermanentCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handleServiceError(w, h.logger, err, "get client by permanent code")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// Create godoc
// @Summary Create client
// @Description Register a client. A permanent code and an annual code for the current year are issued.
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.CreateClientRequest true "Client data"
// @Success 201 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Failure 422 {object} domain.APIError "Code space exhausted"
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	client, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create client")
		return
	}

	w.Header().Set("Location", "/api/v1/clients/"+client.ID.String())
	respondJSON(w, http.StatusCreated, client)
}

// Update godoc
// @Summary Update client
// @Description Partial update. Permanent code and issuing company cannot be changed.
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Param request body domain.UpdateClientRequest true "Fields to change"
// @Success 200 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /clients/{id} [patch]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateClientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.IsEmpty() {
		respondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	client, err := h.clientService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "update client")
		return
	}

	respondJSON(w, http.StatusOK, client)
}

// AssignAnnualCode godoc
// @Summary Ensure the client has an annual code
// @Description Returns the client's code for the current year, allocating the next one if missing. Idempotent within a year.
// @Tags Annual Codes
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Success 200 {object} domain.AnnualCodeDTO
// @Failure 404 {object} domain.APIError
// @Failure 422 {object} domain.APIError "Annual code space exhausted"
// @Router /clients/{id}/annual-code [post]
func (h *ClientHandler) AssignAnnualCode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	code, err := h.annualService.AssignCodeToClient(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "assign annual code")
		return
	}

	respondJSON(w, http.StatusOK, domain.AnnualCodeDTO{
		ClientID:   id,
		AnnualCode: code,
		Year:       h.annualService.CurrentYear(),
	})
}

// ListInvoices godoc
// @Summary List a client's invoices
// @Tags Invoices
// @Produce json
// @Param id path string true "Client ID" format(uuid)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.InvoiceDTO}
// @Failure 404 {object} domain.APIError
// @Router /clients/{id}/invoices [get]
func (h *ClientHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	page, pageSize := pageParams(r)

	result, err := h.invoiceService.ListByClient(r.Context(), id, page, pageSize)
	if err != nil {
		handleServiceError(w, h.logger, err, "list client invoices")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// PermanentCounter godoc
// @Summary Permanent code counter
// @Description Last issued permanent code and the next one to be issued
// @Tags Clients
// @Produce json
// @Success 200 {object} domain.PermanentCodeCounterDTO
// @Failure 500 {object} domain.APIError
// @Router /permanent-codes/counter [get]
func (h *ClientHandler) PermanentCounter(w http.ResponseWriter, r *http.Request) {
	counter, err := h.clientService.PermanentCodeCounter(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "get permanent code counter")
		return
	}
	respondJSON(w, http.StatusOK, counter)
}

// AdvancePermanentCounter godoc
// @Summary Advance the permanent code counter
// @Description Moves the counter forward after importing clients with existing codes. The counter never moves backwards.
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.AdvancePermanentCounterRequest true "New last code"
// @Success 200 {object} domain.PermanentCodeCounterDTO
// @Failure 400 {object} domain.APIError
// @Router /permanent-codes/counter [put]
func (h *ClientHandler) AdvancePermanentCounter(w http.ResponseWriter, r *http.Request) {
	var req domain.AdvancePermanentCounterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	counter, err := h.clientService.AdvancePermanentCounter(r.Context(), req.LastCode)
	if err != nil {
		handleServiceError(w, h.logger, err, "advance permanent code counter")
		return
	}
	respondJSON(w, http.StatusOK, counter)
}

// parseID reads the {id} path parameter
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
