package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasknity/tasknity-api/internal/dto"
	"github.com/tasknity/tasknity-api/internal/services"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

type InvoiceItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"gte=0"`
	UnitPrice   float64 `json:"unitPrice" binding:"gte=0"`
	Amount      float64 `json:"amount"`
}

type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	ClientName    string               `json:"clientName" binding:"required"`
	ClientEmail   string               `json:"clientEmail" binding:"required,email"`
	ClientAddress string               `json:"clientAddress"`
	IssueDate     string               `json:"issueDate" binding:"required"`
	DueDate       string               `json:"dueDate" binding:"required"`
	Status        string               `json:"status" binding:"omitempty,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
	SubTotal      float64              `json:"subTotal"`
	TaxRate       float64              `json:"taxRate"`
	TaxAmount     float64              `json:"taxAmount"`
	Discount      float64              `json:"discount"`
	TotalAmount   float64              `json:"totalAmount"`
	Notes         string               `json:"notes"`
	Items         []InvoiceItemRequest `json:"items" binding:"dive"`
}

type UpdateInvoiceRequest struct {
	InvoiceNumber *string               `json:"invoiceNumber"`
	ClientName    *string               `json:"clientName"`
	ClientEmail   *string               `json:"clientEmail" binding:"omitempty,email"`
	ClientAddress *string               `json:"clientAddress"`
	IssueDate     *string               `json:"issueDate"`
	DueDate       *string               `json:"dueDate"`
	Status        *string               `json:"status" binding:"omitempty,oneof=DRAFT SENT PAID OVERDUE CANCELLED"`
	SubTotal      *float64              `json:"subTotal"`
	TaxRate       *float64              `json:"taxRate"`
	TaxAmount     *float64              `json:"taxAmount"`
	Discount      *float64              `json:"discount"`
	TotalAmount   *float64              `json:"totalAmount"`
	Notes         *string               `json:"notes"`
	Items         *[]InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
}

func toItemInputs(items []InvoiceItemRequest) []services.InvoiceItemInput {
	out := make([]services.InvoiceItemInput, len(items))
	for i, it := range items {
		out[i] = services.InvoiceItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
		}
	}
	return out
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoiceService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceDTOs(invoices))
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceDTO(*invoice))
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), services.CreateInvoiceInput{
		CreatorID:     p.UserID,
		InvoiceNumber: req.InvoiceNumber,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientAddress: req.ClientAddress,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Status:        req.Status,
		SubTotal:      req.SubTotal,
		TaxRate:       req.TaxRate,
		TaxAmount:     req.TaxAmount,
		Discount:      req.Discount,
		TotalAmount:   req.TotalAmount,
		Notes:         req.Notes,
		Items:         toItemInputs(req.Items),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceDTO(*invoice))
}

// Update changes the given fields. Sending items replaces all line items.
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	var items *[]services.InvoiceItemInput
	if req.Items != nil {
		converted := toItemInputs(*req.Items)
		items = &converted
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), c.Param("id"), services.UpdateInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientAddress: req.ClientAddress,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Status:        req.Status,
		SubTotal:      req.SubTotal,
		TaxRate:       req.TaxRate,
		TaxAmount:     req.TaxAmount,
		Discount:      req.Discount,
		TotalAmount:   req.TotalAmount,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceDTO(*invoice))
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.invoiceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "Invoice")
}
