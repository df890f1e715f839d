package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolworks/fee_management_app/internal/apperrors"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
	"github.com/schoolworks/fee_management_app/internal/dto"
	"github.com/schoolworks/fee_management_app/internal/middleware"
)

// feeHandler handles HTTP requests for obligation assignment and maintenance.
type feeHandler struct {
	assignment portssvc.AssignmentSvcFacade
	studentFee portssvc.StudentFeeSvcFacade
	concession portssvc.ConcessionSvcFacade
}

func newFeeHandler(assignment portssvc.AssignmentSvcFacade, studentFee portssvc.StudentFeeSvcFacade, concession portssvc.ConcessionSvcFacade) *feeHandler {
	return &feeHandler{
		assignment: assignment,
		studentFee: studentFee,
		concession: concession,
	}
}

// registerFeeRoutes registers routes related to fee assignment and obligations.
func registerFeeRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newFeeHandler(services.Assignment, services.StudentFee, services.Concession)

	fees := rg.Group("/fees")
	{
		fees.POST("/assign", h.assignFee)
		fees.POST("/auto-enroll", h.autoEnroll)
		fees.POST("/special", h.assignSpecialFee)
		fees.POST("/concessions/apply", h.applyConcession)
		fees.PUT("/:feeID", h.updateStudentFee)
		fees.DELETE("/:feeID", h.deleteStudentFee)
	}

	rg.GET("/students/:studentID/fees", h.getStudentFeeDetails)
}

func (h *feeHandler) assignFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AssignFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AssignFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.assignment.AssignFeeToStudent(c.Request.Context(), req.StudentID, req.FeeStructureID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to assign fee")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *feeHandler) autoEnroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AutoEnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AutoEnroll", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.assignment.AutoEnrollStudentFees(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to auto-enroll student")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *feeHandler) assignSpecialFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SpecialFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AssignSpecialFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.studentFee.AssignSpecialFee(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to assign special fee")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *feeHandler) applyConcession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApplyConcessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyConcession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.concession.ApplyConcession(c.Request.Context(), req, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to apply concession")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *feeHandler) updateStudentFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeID := c.Param("feeID")

	var req dto.UpdateStudentFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStudentFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fee, err := h.studentFee.UpdateStudentFee(c.Request.Context(), feeID, req, updaterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update obligation")
		return
	}

	c.JSON(http.StatusOK, fee)
}

func (h *feeHandler) deleteStudentFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeID := c.Param("feeID")

	if err := h.studentFee.DeleteStudentFee(c.Request.Context(), feeID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete obligation")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *feeHandler) getStudentFeeDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")
	academicYear := c.Query("academicYear")
	if academicYear == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "academicYear query parameter is required"})
		return
	}

	details, err := h.studentFee.GetStudentFeeDetails(c.Request.Context(), studentID, academicYear)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list obligations")
		return
	}

	c.JSON(http.StatusOK, details)
}

// respondServiceError maps sentinel errors onto HTTP statuses. Unknown errors are
// logged and reported as a generic 500 without leaking internals.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, genericMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Error(genericMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericMsg})
	}
}
