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

// batchHandler handles HTTP requests related to payroll batches.
type batchHandler struct {
	payrollService portssvc.PayrollSvcFacade
	postingService portssvc.PostingSvcFacade
}

// newBatchHandler creates a new batchHandler.
func newBatchHandler(payrollService portssvc.PayrollSvcFacade, postingService portssvc.PostingSvcFacade) *batchHandler {
	return &batchHandler{
		payrollService: payrollService,
		postingService: postingService,
	}
}

// getBatch retrieves a payroll batch by its ID.
func (h *batchHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	batch, err := h.payrollService.GetBatchByID(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll batch not found", slog.String("batch_id", batchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll batch not found"})
			return
		}
		logger.Error("Failed to get payroll batch from service", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payroll batch"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollBatchResponse(batch))
}

// getOpenBatchByPeriod retrieves the period's batch that has not reached PAID.
func (h *batchHandler) getOpenBatchByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period := c.Param("period")

	batch, err := h.payrollService.GetOpenBatchByPeriod(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No open payroll batch for period", slog.String("period", period))
			c.JSON(http.StatusNotFound, gin.H{"error": "No open payroll batch for period"})
			return
		}
		logger.Error("Failed to get open payroll batch from service", slog.String("error", err.Error()), slog.String("period", period))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payroll batch"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollBatchResponse(batch))
}

// listBatchRecords retrieves every payroll record assigned to a batch.
func (h *batchHandler) listBatchRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	records, err := h.payrollService.ListBatchRecords(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll batch not found", slog.String("batch_id", batchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll batch not found"})
			return
		}
		logger.Error("Failed to list batch records from service", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve batch records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": dto.ToPayrollRecordResponses(records)})
}

// recalculateBatch rederives the batch rollup totals from its member records.
func (h *batchHandler) recalculateBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	result, err := h.payrollService.RecalculateBatch(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payroll batch not found", slog.String("batch_id", batchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Payroll batch not found"})
			return
		}
		logger.Error("Failed to recalculate batch in service", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recalculate payroll batch"})
		return
	}

	logger.Info("Payroll batch recalculated", slog.String("batch_id", batchID))
	c.JSON(http.StatusOK, dto.BatchRecalculationResponse{
		Batch:   dto.ToPayrollBatchResponse(&result.Batch),
		Records: dto.ToPayrollRecordResponses(result.Records),
	})
}

// getBatchTransaction retrieves the cash transaction recorded for a batch's payment.
func (h *batchHandler) getBatchTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	txn, err := h.postingService.GetTransactionByBatchID(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No payment transaction for batch", slog.String("batch_id", batchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "No payment transaction for batch"})
			return
		}
		logger.Error("Failed to get payment transaction from service", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashTransactionResponse(txn))
}

// registerBatchRoutes registers payroll batch specific routes
func registerBatchRoutes(group *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newBatchHandler(payrollService, postingService)

	batches := group.Group("/batches")
	{
		batches.GET("/open/:period", h.getOpenBatchByPeriod)
		batches.GET("/:batchID", h.getBatch)
		batches.GET("/:batchID/records", h.listBatchRecords)
		batches.GET("/:batchID/transaction", h.getBatchTransaction)
		batches.POST("/:batchID/recalculate", h.recalculateBatch)
	}
}
