package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siamerp/finpost/internal/apperrors"
	"github.com/siamerp/finpost/internal/core/domain"
	portssvc "github.com/siamerp/finpost/internal/core/ports/services"
	"github.com/siamerp/finpost/internal/dto"
	"github.com/siamerp/finpost/internal/middleware"
)

// taxHandler handles HTTP requests over Thai tax master data and certificates.
type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

// newTaxHandler creates a new taxHandler.
func newTaxHandler(ts portssvc.TaxSvcFacade) *taxHandler {
	return &taxHandler{taxService: ts}
}

// registerTaxRoutes registers tax master data and certificate routes.
func registerTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxHandler(taxService)

	tax := rg.Group("/thai-tax")
	{
		tax.GET("/wht-codes", h.listTaxCodes)
		tax.GET("/tax-groups", h.listTaxGroups)
		tax.POST("/wht-certificates", h.issueCertificate)
		tax.GET("/wht-certificates", h.listCertificates)
		tax.GET("/wht-certificates/:certificateID", h.getCertificate)
		tax.POST("/wht-certificates/:certificateID/cancel", h.cancelCertificate)
	}
}

// listTaxCodes godoc
// @Summary List withholding tax codes
// @Description Retrieves the active WHT tax codes (W1, W3, W5, W10) with their rates
// @Tags thai-tax
// @Produce json
// @Success 200 {array} dto.TaxCodeResponse
// @Failure 500 {object} map[string]string "Failed to list tax codes"
// @Security BearerAuth
// @Router /thai-tax/wht-codes [get]
func (h *taxHandler) listTaxCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	codes, err := h.taxService.ListTaxCodes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list WHT tax codes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tax codes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxCodeResponses(codes))
}

// listTaxGroups godoc
// @Summary List VAT tax groups
// @Description Retrieves active VAT tax groups (V7, V7I, Z0, E0), optionally filtered by direction
// @Tags thai-tax
// @Produce json
// @Param direction query string false "VAT direction" Enums(OUTPUT, INPUT)
// @Success 200 {array} dto.TaxGroupResponse
// @Failure 400 {object} map[string]string "Invalid direction"
// @Failure 500 {object} map[string]string "Failed to list tax groups"
// @Security BearerAuth
// @Router /thai-tax/tax-groups [get]
func (h *taxHandler) listTaxGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var direction *domain.VATDirection
	if raw := c.Query("direction"); raw != "" {
		d := domain.VATDirection(raw)
		if d != domain.VATOutput && d != domain.VATInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be OUTPUT or INPUT"})
			return
		}
		direction = &d
	}

	groups, err := h.taxService.ListTaxGroups(c.Request.Context(), direction)
	if err != nil {
		logger.Error("Failed to list tax groups", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tax groups"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxGroupResponses(groups))
}

// issueCertificate godoc
// @Summary Issue a withholding tax certificate
// @Description Computes the withholding amount from the tax code rate, allocates the next yearly book number and stores the certificate
// @Tags thai-tax
// @Accept json
// @Produce json
// @Param certificate body dto.IssueCertificateRequest true "Certificate details"
// @Success 201 {object} dto.CertificateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Tax code not found"
// @Failure 500 {object} map[string]string "Failed to issue certificate"
// @Security BearerAuth
// @Router /thai-tax/wht-certificates [post]
func (h *taxHandler) issueCertificate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.IssueCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueCertificate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cert, err := h.taxService.IssueCertificate(c.Request.Context(), req, actingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to issue WHT certificate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue certificate"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCertificateResponse(cert))
}

// listCertificates godoc
// @Summary List withholding certificates
// @Description Retrieves a paginated list of certificates, newest first
// @Tags thai-tax
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListCertificatesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list certificates"
// @Security BearerAuth
// @Router /thai-tax/wht-certificates [get]
func (h *taxHandler) listCertificates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCertificatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.taxService.ListCertificates(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list WHT certificates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list certificates"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getCertificate godoc
// @Summary Get a withholding certificate by id
// @Description Retrieves one issued or cancelled certificate
// @Tags thai-tax
// @Produce json
// @Param certificateID path string true "Certificate ID"
// @Success 200 {object} dto.CertificateResponse
// @Failure 404 {object} map[string]string "Certificate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve certificate"
// @Security BearerAuth
// @Router /thai-tax/wht-certificates/{certificateID} [get]
func (h *taxHandler) getCertificate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	certificateID := c.Param("certificateID")

	cert, err := h.taxService.GetCertificate(c.Request.Context(), certificateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
			return
		}
		logger.Error("Failed to get WHT certificate", slog.String("certificate_id", certificateID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve certificate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCertificateResponse(cert))
}

// cancelCertificate godoc
// @Summary Cancel a withholding certificate
// @Description Flips an issued certificate to CANCELLED; the record stays on file
// @Tags thai-tax
// @Produce json
// @Param certificateID path string true "Certificate ID"
// @Success 200 {object} dto.CertificateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Certificate not found"
// @Failure 409 {object} map[string]string "Certificate already cancelled"
// @Failure 500 {object} map[string]string "Failed to cancel certificate"
// @Security BearerAuth
// @Router /thai-tax/wht-certificates/{certificateID}/cancel [post]
func (h *taxHandler) cancelCertificate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	certificateID := c.Param("certificateID")

	actingUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cert, err := h.taxService.CancelCertificate(c.Request.Context(), certificateID, actingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificate not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to cancel WHT certificate", slog.String("certificate_id", certificateID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel certificate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCertificateResponse(cert))
}
