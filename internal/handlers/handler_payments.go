package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
	"github.com/schoolworks/fee_management_app/internal/dto"
	"github.com/schoolworks/fee_management_app/internal/middleware"
)

// paymentHandler handles HTTP requests for the payment ledger.
type paymentHandler struct {
	payment portssvc.PaymentSvcFacade
}

func newPaymentHandler(payment portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{payment: payment}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPaymentHandler(services.Payment)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.POST("/:paymentID/reverse", h.reversePayment)
	}

	rg.GET("/students/:studentID/payments", h.listStudentPayments)
}

func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	collectorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	collectorName := middleware.GetUserNameFromContext(c)

	receipt, err := h.payment.RecordPayment(c.Request.Context(), req, collectorID, collectorName)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

func (h *paymentHandler) reversePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	if err := h.payment.ReversePayment(c.Request.Context(), paymentID); err != nil {
		respondServiceError(c, logger, err, "Failed to reverse payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reversed"})
}

func (h *paymentHandler) listStudentPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")
	academicYear := c.Query("academicYear")

	history, err := h.payment.ListStudentPayments(c.Request.Context(), studentID, academicYear)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, history)
}
