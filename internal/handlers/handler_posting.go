package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siamerp/finpost/internal/apperrors"
	portssvc "github.com/siamerp/finpost/internal/core/ports/services"
	"github.com/siamerp/finpost/internal/dto"
	"github.com/siamerp/finpost/internal/middleware"
)

// postingHandler handles HTTP requests that turn business documents into
// journal entries.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(ps portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: ps}
}

// registerPostingRoutes registers document posting routes.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("/sales-invoices/:invoiceID", h.postSalesInvoice)
		postings.POST("/goods-receipts/:receiptID", h.postGoodsReceipt)
		postings.POST("/payments/:paymentID", h.postPayment)
	}
}

// postSalesInvoice godoc
// @Summary Post a sales invoice to the general ledger
// @Description Creates the AR journal entry (Dr. AR / Cr. Revenue / Cr. Output VAT) for a finalized sales invoice
// @Tags postings
// @Produce json
// @Param invoiceID path string true "Sales Invoice ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "GL determination not configured"
// @Failure 500 {object} map[string]string "Posting failed"
// @Security BearerAuth
// @Router /postings/sales-invoices/{invoiceID} [post]
func (h *postingHandler) postSalesInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	actingUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.postingService.PostSalesInvoice(c.Request.Context(), invoiceID, actingUserID)
	if err != nil {
		respondPostingError(c, logger, err, "Failed to post sales invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postGoodsReceipt godoc
// @Summary Post a goods receipt to the general ledger
// @Description Creates the AP journal entry for a goods receipt. Not yet implemented.
// @Tags postings
// @Produce json
// @Param receiptID path string true "Goods Receipt ID"
// @Failure 501 {object} map[string]string "Not implemented"
// @Security BearerAuth
// @Router /postings/goods-receipts/{receiptID} [post]
func (h *postingHandler) postGoodsReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	actingUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.postingService.PostGoodsReceipt(c.Request.Context(), receiptID, actingUserID)
	if err != nil {
		respondPostingError(c, logger, err, "Failed to post goods receipt")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postPayment godoc
// @Summary Post a payment to the general ledger
// @Description Creates the payment journal entry with an optional withholding split. Not yet implemented.
// @Tags postings
// @Accept json
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Param payment body dto.PostPaymentRequest false "Optional withholding amount"
// @Failure 501 {object} map[string]string "Not implemented"
// @Security BearerAuth
// @Router /postings/payments/{paymentID} [post]
func (h *postingHandler) postPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	actingUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PostPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for PostPayment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	entry, err := h.postingService.PostPayment(c.Request.Context(), paymentID, actingUserID, req.WithholdingAmount)
	if err != nil {
		respondPostingError(c, logger, err, "Failed to post payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// respondPostingError maps posting failures to HTTP statuses. An unbalanced
// entry is a 500: the engine computed the lines itself, so imbalance is an
// internal defect, never caller input.
func respondPostingError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Posting target not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConfigurationMissing):
		logger.Warn("GL determination missing", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Posting validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnsupported):
		logger.Info("Unsupported posting procedure requested", slog.String("error", err.Error()))
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnbalanced):
		logger.Error("Engine produced an unbalanced entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Posting produced an unbalanced entry"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
