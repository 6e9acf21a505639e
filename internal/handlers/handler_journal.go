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
	"github.com/siamerp/finpost/internal/utils/accounting"
)

// journalHandler handles HTTP requests over posted journal entries.
type journalHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(ps portssvc.PostingSvcFacade) *journalHandler {
	return &journalHandler{postingService: ps}
}

// registerJournalRoutes registers journal entry read and validation routes.
func registerJournalRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newJournalHandler(postingService)

	journals := rg.Group("/journal-entries")
	{
		journals.GET("", h.listJournalEntries)
		journals.GET("/:journalNo", h.getJournalEntry)
		journals.POST("/validate-balance", h.validateBalance)
	}
}

// getJournalEntry godoc
// @Summary Get a journal entry by number
// @Description Retrieves a journal entry header and its lines by journal number (e.g. JV-2025-08-0001)
// @Tags journal-entries
// @Produce json
// @Param journalNo path string true "Journal Number"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{journalNo} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalNo := c.Param("journalNo")

	entry, err := h.postingService.GetJournalEntry(c.Request.Context(), journalNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry", slog.String("journal_no", journalNo), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Retrieves a paginated list of journal entry headers, newest first
// @Tags journal-entries
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.postingService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// validateBalance godoc
// @Summary Validate that a candidate line set balances
// @Description Checks that debits equal credits exactly and every line carries exactly one side
// @Tags journal-entries
// @Accept json
// @Produce json
// @Param lines body dto.ValidateBalanceRequest true "Candidate journal lines"
// @Success 200 {object} dto.ValidateBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /journal-entries/validate-balance [post]
func (h *journalHandler) validateBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ValidateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValidateBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	lines := dto.ToDomainLines(req.Lines)
	totalDebit, totalCredit := accounting.LineTotals(lines)

	resp := dto.ValidateBalanceResponse{
		TotalDebit:  totalDebit.String(),
		TotalCredit: totalCredit.String(),
	}
	if err := h.postingService.ValidateBalance(lines); err != nil {
		resp.Balanced = false
		resp.Reason = err.Error()
	} else {
		resp.Balanced = true
	}

	c.JSON(http.StatusOK, resp)
}
