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

// determinationHandler handles HTTP requests over GL determination configuration.
type determinationHandler struct {
	determinationService portssvc.DeterminationSvcFacade
}

// newDeterminationHandler creates a new determinationHandler.
func newDeterminationHandler(ds portssvc.DeterminationSvcFacade) *determinationHandler {
	return &determinationHandler{determinationService: ds}
}

// registerDeterminationRoutes registers GL determination routes.
func registerDeterminationRoutes(rg *gin.RouterGroup, determinationService portssvc.DeterminationSvcFacade) {
	h := newDeterminationHandler(determinationService)

	determinations := rg.Group("/gl-determinations")
	{
		determinations.GET("", h.listDeterminations)
		determinations.GET("/resolve", h.resolveAccount)
		determinations.PUT("", h.upsertDetermination)
	}
}

// listDeterminations godoc
// @Summary List GL determination entries
// @Description Retrieves every determination entry of a configuration profile
// @Tags gl-determinations
// @Produce json
// @Param profile query string false "Profile name (default: Default)"
// @Success 200 {array} dto.DeterminationResponse
// @Failure 500 {object} map[string]string "Failed to list determinations"
// @Security BearerAuth
// @Router /gl-determinations [get]
func (h *determinationHandler) listDeterminations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profileName := c.Query("profile")

	dets, err := h.determinationService.ListDeterminations(c.Request.Context(), profileName)
	if err != nil {
		logger.Error("Failed to list determinations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list determinations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDeterminationResponses(dets))
}

// resolveAccount godoc
// @Summary Resolve a process key to an account
// @Description Returns the account configured for a business-process key under a profile
// @Tags gl-determinations
// @Produce json
// @Param processKey query string true "Process key (e.g. SALES_REVENUE)"
// @Param profile query string false "Profile name (default: Default)"
// @Success 200 {object} dto.ResolveAccountResponse
// @Failure 400 {object} map[string]string "Missing process key"
// @Failure 422 {object} map[string]string "No determination configured"
// @Failure 500 {object} map[string]string "Resolution failed"
// @Security BearerAuth
// @Router /gl-determinations/resolve [get]
func (h *determinationHandler) resolveAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	processKey := c.Query("processKey")
	profileName := c.Query("profile")

	accountID, err := h.determinationService.ResolveAccount(c.Request.Context(), processKey, profileName, nil)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConfigurationMissing):
			logger.Warn("GL determination missing", slog.String("process_key", processKey))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to resolve account", slog.String("process_key", processKey), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve account"})
		}
		return
	}

	if profileName == "" {
		profileName = "Default"
	}
	c.JSON(http.StatusOK, dto.ResolveAccountResponse{
		ProcessKey:  processKey,
		ProfileName: profileName,
		AccountID:   accountID,
	})
}

// upsertDetermination godoc
// @Summary Create or replace a GL determination entry
// @Description Maps a business-process key to a ledger account under a profile; invalidates the resolver cache
// @Tags gl-determinations
// @Accept json
// @Produce json
// @Param determination body dto.UpsertDeterminationRequest true "Determination entry"
// @Success 200 {object} dto.DeterminationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save determination"
// @Security BearerAuth
// @Router /gl-determinations [put]
func (h *determinationHandler) upsertDetermination(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertDeterminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertDetermination", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actingUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Acting user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	det, err := h.determinationService.UpsertDetermination(c.Request.Context(), req, actingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to upsert determination", slog.String("process_key", req.ProcessKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save determination"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDeterminationResponse(det))
}
