// controllers/invoice.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vetdesk-backend/middleware"
	"vetdesk-backend/services"
	"vetdesk-backend/utils"
)

type InvoiceController struct {
	billing *services.BillingService
}

func NewInvoiceController(billing *services.BillingService) *InvoiceController {
	return &InvoiceController{billing: billing}
}

func (ic *InvoiceController) Create(c *gin.Context) {
	var input services.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if userID, exists := c.Get(middleware.ContextUserID); exists {
		if s, ok := userID.(string); ok {
			if parsed, err := uuid.Parse(s); err == nil {
				input.CreatedByUserID = parsed
			}
		}
	}

	invoice, err := ic.billing.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (ic *InvoiceController) List(c *gin.Context) {
	invoices, err := ic.billing.ListInvoices(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (ic *InvoiceController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}
	invoice, err := ic.billing.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

type ApplyPaymentInput struct {
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
}

func (ic *InvoiceController) ApplyPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input ApplyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := ic.billing.ApplyPayment(c.Request.Context(), id, input.Amount, input.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ic *InvoiceController) ClientReceipts(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}
	receipts, err := ic.billing.GetClientReceipts(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}
