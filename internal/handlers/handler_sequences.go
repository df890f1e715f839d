package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
	"github.com/schoolworks/fee_management_app/internal/dto"
	"github.com/schoolworks/fee_management_app/internal/middleware"
)

// sequenceHandler handles HTTP requests for admission and receipt numbering.
type sequenceHandler struct {
	sequence portssvc.SequenceSvcFacade
}

func newSequenceHandler(sequence portssvc.SequenceSvcFacade) *sequenceHandler {
	return &sequenceHandler{sequence: sequence}
}

// registerSequenceRoutes registers routes related to sequence counters.
func registerSequenceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newSequenceHandler(services.Sequence)

	sequences := rg.Group("/sequences")
	{
		sequences.POST("/admission-number", h.nextAdmissionNumber)
		sequences.POST("/receipt-number", h.nextReceiptNumber)
		sequences.POST("/receipt-number/resync", h.resyncReceiptCounter)
	}
}

func (h *sequenceHandler) nextAdmissionNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for NextAdmissionNumber", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	number, err := h.sequence.NextAdmissionNumber(c.Request.Context(), req.Branch, req.AcademicYear)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to issue admission number")
		return
	}

	c.JSON(http.StatusOK, gin.H{"admissionNumber": number})
}

func (h *sequenceHandler) nextReceiptNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for NextReceiptNumber", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	number, err := h.sequence.NextReceiptNumber(c.Request.Context(), req.Branch, req.AcademicYear)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to issue receipt number")
		return
	}

	c.JSON(http.StatusOK, gin.H{"receiptNumber": number})
}

func (h *sequenceHandler) resyncReceiptCounter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResyncReceiptCounter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	lastNo, err := h.sequence.ResyncReceiptCounter(c.Request.Context(), req.Branch, req.AcademicYear)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resync receipt counter")
		return
	}

	c.JSON(http.StatusOK, gin.H{"lastReceiptNo": lastNo})
}
