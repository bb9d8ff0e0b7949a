package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearledger/payroll_ledger_app/internal/apperrors"
	portssvc "github.com/clearledger/payroll_ledger_app/internal/core/ports/services"
	"github.com/clearledger/payroll_ledger_app/internal/dto"
	"github.com/clearledger/payroll_ledger_app/internal/middleware"
)

// payrollHandler handles HTTP requests related to payroll records.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(payrollService portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{
		payrollService: payrollService,
	}
}

// createPayrollRecord creates a new payroll record inside its period's open batch.
func (h *payrollHandler) createPayrollRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreatePayrollRecordRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreatePayrollRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.payrollService.CreatePayrollRecord(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating payroll record", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create payroll record in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payroll record"})
		}
		return
	}

	logger.Info("Payroll record created", slog.String("record_id", record.RecordID))
	c.JSON(http.StatusCreated, dto.ToPayrollRecordResponse(record))
}

// getPayrollRecord retrieves a payroll record by its ID.
func (h *payrollHandler) getPayrollRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	record, err := h.payrollService.GetPayrollRecordByID(c.Request.Context(), recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll record not found", slog.String("record_id", recordID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll record not found"})
			return
		}
		logger.Error("Failed to get payroll record from service", slog.String("error", err.Error()), slog.String("record_id", recordID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payroll record"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollRecordResponse(record))
}

// approvePayrollRecord marks a record APPROVED and posts the batch accrual.
func (h *payrollHandler) approvePayrollRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Approver user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.payrollService.ApprovePayrollRecord(c.Request.Context(), recordID, approverID)
	if err != nil {
		h.respondStatusError(c, logger, err, recordID, "approve")
		return
	}

	logger.Info("Payroll record approved", slog.String("record_id", recordID), slog.String("approver_id", approverID))
	c.JSON(http.StatusOK, dto.ToPayrollRecordResponse(record))
}

// markPayrollRecordPaid marks a record PAID and posts the batch payment.
func (h *payrollHandler) markPayrollRecordPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.payrollService.MarkPayrollRecordPaid(c.Request.Context(), recordID, actorID)
	if err != nil {
		h.respondStatusError(c, logger, err, recordID, "pay")
		return
	}

	logger.Info("Payroll record marked paid", slog.String("record_id", recordID))
	c.JSON(http.StatusOK, dto.ToPayrollRecordResponse(record))
}

// updatePayrollStatus performs an administrative status update on a record.
func (h *payrollHandler) updatePayrollStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	updateReq := dto.UpdatePayrollStatusRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdatePayrollStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.payrollService.UpdatePayrollRecordStatus(c.Request.Context(), recordID, updateReq.Status, actorID)
	if err != nil {
		h.respondStatusError(c, logger, err, recordID, "update status of")
		return
	}

	logger.Info("Payroll record status updated", slog.String("record_id", recordID), slog.String("status", string(record.Status)))
	c.JSON(http.StatusOK, dto.ToPayrollRecordResponse(record))
}

// respondStatusError maps lifecycle errors onto HTTP responses.
func (h *payrollHandler) respondStatusError(c *gin.Context, logger *slog.Logger, err error, recordID string, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Payroll record not found", slog.String("record_id", recordID))
		c.JSON(http.StatusNotFound, gin.H{"error": "Payroll record not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on payroll record", slog.String("record_id", recordID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting payroll transition", slog.String("record_id", recordID), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" payroll record", slog.String("record_id", recordID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " payroll record"})
	}
}

// registerPayrollRoutes registers payroll record specific routes
func registerPayrollRoutes(group *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	payrolls := group.Group("/payrolls")
	{
		payrolls.POST("", h.createPayrollRecord)
		payrolls.GET("/:recordID", h.getPayrollRecord)
		payrolls.POST("/:recordID/approve", h.approvePayrollRecord)
		payrolls.POST("/:recordID/pay", h.markPayrollRecordPaid)
		payrolls.PATCH("/:recordID/status", h.updatePayrollStatus)
	}
}
