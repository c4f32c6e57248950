package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pms-portal/billing-api/internal/domain"
	"github.com/pms-portal/billing-api/internal/repository"
	"github.com/pms-portal/billing-api/internal/service"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewInvoiceHandler(invoiceService *service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// List godoc
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param clientId query string false "Filter by client" format(uuid)
// @Param status query string false "Filter by status" Enums(draft, issued, paid, cancelled)
// @Param issuingCompany query string false "Filter by issuing company" Enums(DET, FZCO, DMCC)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.InvoiceDTO}
// @Failure 400 {object} domain.APIError
// @Router /invoices [get]
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	q := r.URL.Query()

	filters := &repository.InvoiceFilters{}
	if c := q.Get("clientId"); c != "" {
		id, err := uuid.Parse(c)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid clientId format")
			return
		}
		filters.ClientID = &id
	}
	if s := q.Get("status"); s != "" {
		status := domain.InvoiceStatus(strings.ToLower(s))
		filters.Status = &status
	}
	if c := q.Get("issuingCompany"); c != "" {
		company := domain.IssuingCompany(strings.ToUpper(c))
		if !company.IsValid() {
			respondWithError(w, http.StatusBadRequest, "issuingCompany must be one of: DET FZCO DMCC")
			return
		}
		filters.IssuingCompany = &company
	}

	result, err := h.invoiceService.List(r.Context(), page, pageSize, filters)
	if err != nil {
		handleServiceError(w, h.logger, err, "list invoices")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get invoice by ID
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Success 200 {object} domain.InvoiceDTO
// @Failure 404 {object} domain.APIError
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get invoice")
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Create godoc
// @Summary Create invoice
// @Description Raise a draft invoice. The invoice number is derived from the client's codes and the invoice date and never changes afterwards.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body domain.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Client inactive"
// @Failure 422 {object} domain.APIError "Annual code space exhausted"
// @Router /invoices [post]
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	invoice, err := h.invoiceService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create invoice")
		return
	}

	w.Header().Set("Location", "/api/v1/invoices/"+invoice.ID.String())
	respondJSON(w, http.StatusCreated, invoice)
}

// UpdateStatus godoc
// @Summary Change invoice status
// @Description draft -> issued|cancelled, issued -> paid|cancelled
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID" format(uuid)
// @Param request body domain.UpdateInvoiceStatusRequest true "New status"
// @Success 200 {object} domain.InvoiceDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Transition not allowed"
// @Router /invoices/{id}/status [put]
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateInvoiceStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		handleServiceError(w, h.logger, err, "update invoice status")
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}

// Lookup godoc
// @Summary Find invoices by number
// @Description The trailing " PMS" is optional
// @Tags Invoices
// @Produce json
// @Param number query string true "Invoice number, e.g. 2503001-10001-10 PMS"
// @Success 200 {array} domain.InvoiceDTO
// @Failure 400 {object} domain.APIError
// @Router /invoices/lookup [get]
func (h *InvoiceHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if number == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'number' is required")
		return
	}

	invoices, err := h.invoiceService.FindByNumber(r.Context(), number)
	if err != nil {
		handleServiceError(w, h.logger, err, "look up invoice")
		return
	}

	respondJSON(w, http.StatusOK, invoices)
}

// Decode godoc
// @Summary Decode an invoice number
// @Description Splits a number into year, month, annual code, client code and company code
// @Tags Invoice Numbers
// @Produce json
// @Param number query string true "Invoice number"
// @Success 200 {object} domain.DecodedInvoiceNumberDTO
// @Failure 400 {object} domain.APIError
// @Router /invoice-numbers/decode [get]
func (h *InvoiceHandler) Decode(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if number == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'number' is required")
		return
	}

	decoded, err := h.invoiceService.DecodeNumber(number)
	if err != nil {
		handleServiceError(w, h.logger, err, "decode invoice number")
		return
	}

	respondJSON(w, http.StatusOK, decoded)
}
