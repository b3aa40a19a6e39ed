package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	portssvc "github.com/i-golovko/bb-currency/internal/core/ports/services"
	"github.com/i-golovko/bb-currency/internal/dto"
	"github.com/i-golovko/bb-currency/internal/middleware"
)

// providerHandler handles HTTP requests related to rate providers.
type providerHandler struct {
	providerService portssvc.ProviderSvcFacade
}

// newProviderHandler creates a new providerHandler.
func newProviderHandler(ps portssvc.ProviderSvcFacade) *providerHandler {
	return &providerHandler{
		providerService: ps,
	}
}

// registerProviderRoutes registers routes related to rate providers.
func registerProviderRoutes(rg *gin.RouterGroup, providerService portssvc.ProviderSvcFacade) {
	h := newProviderHandler(providerService)

	providers := rg.Group("/providers")
	{
		providers.POST("", h.createProvider)
		providers.GET("", h.listProviders)
		providers.GET("/:name", h.getProviderByName)
		providers.PUT("/:name", h.updateProvider)
	}
}

// createProvider godoc
// @Summary Register a new rate provider
// @Description Adds an external rate source with its priority and endpoint configuration
// @Tags providers
// @Accept  json
// @Produce  json
// @Param   provider body dto.CreateProviderRequest true "Provider details"
// @Success 201 {object} dto.ProviderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Provider name already exists"
// @Failure 500 {object} map[string]string "Failed to create provider"
// @Router /providers [post]
func (h *providerHandler) createProvider(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProvider", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	createdProvider, err := h.providerService.CreateProvider(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Provider '%s' already exists", req.Name)})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create provider in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create provider"})
		}
		return
	}

	logger.Info("Provider created successfully", slog.String("provider_name", createdProvider.Name))
	c.JSON(http.StatusCreated, dto.ToProviderResponse(createdProvider))
}

// getProviderByName godoc
// @Summary Get a provider by name
// @Description Retrieves the configuration of a specific rate provider
// @Tags providers
// @Produce  json
// @Param   name path string true "Provider name"
// @Success 200 {object} dto.ProviderResponse
// @Failure 404 {object} map[string]string "Provider not found"
// @Failure 500 {object} map[string]string "Failed to retrieve provider"
// @Router /providers/{name} [get]
func (h *providerHandler) getProviderByName(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	provider, err := h.providerService.GetProviderByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Provider '%s' not found", name)})
		} else {
			logger.Error("Failed to get provider", slog.String("error", err.Error()), slog.String("provider_name", name))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve provider"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProviderResponse(provider))
}

// listProviders godoc
// @Summary List all providers
// @Description Retrieves all rate providers ordered by ascending priority
// @Tags providers
// @Produce  json
// @Success 200 {array} dto.ProviderResponse
// @Failure 500 {object} map[string]string "Failed to list providers"
// @Router /providers [get]
func (h *providerHandler) listProviders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	providers, err := h.providerService.ListProviders(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list providers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProviderResponse(providers))
}

// updateProvider godoc
// @Summary Update a provider
// @Description Replaces the configuration of an existing rate provider
// @Tags providers
// @Accept  json
// @Produce  json
// @Param   name path string true "Provider name"
// @Param   provider body dto.UpdateProviderRequest true "New provider configuration"
// @Success 200 {object} dto.ProviderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Provider not found"
// @Failure 500 {object} map[string]string "Failed to update provider"
// @Router /providers/{name} [put]
func (h *providerHandler) updateProvider(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	var req dto.UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProvider", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updatedProvider, err := h.providerService.UpdateProvider(c.Request.Context(), name, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Provider '%s' not found", name)})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update provider in service", slog.String("error", err.Error()), slog.String("provider_name", name))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider"})
		}
		return
	}

	logger.Info("Provider updated successfully", slog.String("provider_name", name))
	c.JSON(http.StatusOK, dto.ToProviderResponse(updatedProvider))
}
