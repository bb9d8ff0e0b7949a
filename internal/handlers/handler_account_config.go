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

// accountConfigHandler handles HTTP requests for payroll account configurations.
type accountConfigHandler struct {
	configService portssvc.AccountConfigSvcFacade
}

// newAccountConfigHandler creates a new accountConfigHandler.
func newAccountConfigHandler(configService portssvc.AccountConfigSvcFacade) *accountConfigHandler {
	return &accountConfigHandler{
		configService: configService,
	}
}

// upsertAccountConfig creates or replaces an employee's payroll account mapping.
func (h *accountConfigHandler) upsertAccountConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	upsertReq := dto.UpsertAccountConfigRequest{}
	if err := c.ShouldBindJSON(&upsertReq); err != nil {
		logger.Error("Failed to bind JSON for UpsertAccountConfig", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	config, err := h.configService.UpsertConfig(c.Request.Context(), upsertReq, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error upserting account config", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to upsert account config in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save account configuration"})
		return
	}

	logger.Info("Account config upserted", slog.String("employee_id", config.EmployeeID))
	c.JSON(http.StatusOK, dto.ToAccountConfigResponse(config))
}

// getAccountConfig retrieves an employee's payroll account mapping.
func (h *accountConfigHandler) getAccountConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeID")

	config, err := h.configService.GetConfigByEmployeeID(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account config not found", slog.String("employee_id", employeeID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account configuration not found"})
			return
		}
		logger.Error("Failed to get account config from service", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account configuration"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountConfigResponse(config))
}

// registerAccountConfigRoutes registers account configuration routes
func registerAccountConfigRoutes(group *gin.RouterGroup, configService portssvc.AccountConfigSvcFacade) {
	h := newAccountConfigHandler(configService)

	configs := group.Group("/account-configs")
	{
		configs.PUT("", h.upsertAccountConfig)
		configs.GET("/:employeeID", h.getAccountConfig)
	}
}
