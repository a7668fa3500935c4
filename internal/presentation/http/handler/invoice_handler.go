package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kiplagat/billify-api/internal/application/service"
	"github.com/kiplagat/billify-api/internal/domain/enum"
	"github.com/kiplagat/billify-api/internal/domain/repository"
	"github.com/kiplagat/billify-api/internal/presentation/http/dto/request"
	"github.com/kiplagat/billify-api/internal/presentation/http/dto/response"
	"github.com/kiplagat/billify-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices (supports both page-based and cursor-based pagination)
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var status *enum.InvoiceStatus
	if filter.Status != "" {
		parsed, err := enum.ParseInvoiceStatus(filter.Status)
		if err != nil {
			response.BadRequest(c, "Invalid invoice status")
			return
		}
		status = &parsed
	}

	var customerID *uuid.UUID
	if filter.CustomerID != "" {
		id, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &id
	}

	startDate, err := parseDateParam(filter.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := parseDateParam(filter.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	// Check if cursor-based pagination is requested
	if filter.Cursor != "" || filter.Limit > 0 {
		params := &repository.InvoiceCursorFilterParams{
			Cursor: &pagination.CursorParams{
				Cursor:    filter.Cursor,
				Direction: pagination.CursorDirectionNext,
				Limit:     filter.Limit,
			},
			Search:     filter.Search,
			Status:     status,
			CustomerID: customerID,
			StartDate:  startDate,
			EndDate:    endDate,
		}

		result, err := h.invoiceService.ListInvoicesWithCursor(c.Request.Context(), params)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Invoices retrieved successfully", result)
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		Status:     status,
		CustomerID: customerID,
		StartDate:  startDate,
		EndDate:    endDate,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice with its lines
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	taxRate := decimal.Zero
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	issueDate := time.Time{}
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	input := &service.CreateInvoiceInput{
		CustomerID: req.CustomerID,
		InvoiceNo:  req.InvoiceNo,
		IssueDate:  issueDate,
		DueDate:    req.DueDate,
		Currency:   req.Currency,
		TaxRate:    taxRate,
		Notes:      req.Notes,
		Lines:      make([]service.InvoiceLineInput, 0, len(req.Lines)),
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, service.InvoiceLineInput{
			ItemID:      line.ItemID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice with its lines
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles updating the header fields of an editable invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, &service.UpdateInvoiceInput{
		CustomerID: req.CustomerID,
		InvoiceNo:  req.InvoiceNo,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Currency:   req.Currency,
		TaxRate:    req.TaxRate,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an editable invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// AddLine handles appending a line to an editable invoice
func (h *InvoiceHandler) AddLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.InvoiceLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.AddLine(c.Request.Context(), id, &service.InvoiceLineInput{
		ItemID:      req.ItemID,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice line added successfully", invoice)
}

// DeleteLine handles removing a line from an editable invoice
func (h *InvoiceHandler) DeleteLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice line ID")
		return
	}

	invoice, err := h.invoiceService.DeleteLine(c.Request.Context(), id, lineID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice line removed successfully", invoice)
}

// SetStatus handles moving an invoice through its status machine
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.SetInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, err := enum.ParseInvoiceStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Invalid invoice status")
		return
	}

	invoice, err := h.invoiceService.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice status updated successfully", invoice)
}

// parseDateParam parses an optional YYYY-MM-DD query value
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
