package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loftpos/concessions-api/internal/application/service"
	"github.com/loftpos/concessions-api/internal/domain/enum"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/request"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/response"
)

// ConfigurationHandler handles tax and printer configuration HTTP requests
type ConfigurationHandler struct {
	configService *service.ConfigurationService
	auditService  *service.AuditService
}

// NewConfigurationHandler creates a new configuration handler
func NewConfigurationHandler(configService *service.ConfigurationService, auditService *service.AuditService) *ConfigurationHandler {
	return &ConfigurationHandler{configService: configService, auditService: auditService}
}

func taxInputFromRequest(req *request.TaxConfigurationRequest) (*service.TaxConfigurationInput, error) {
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return nil, err
	}
	return &service.TaxConfigurationInput{
		Name:        req.Name,
		Rate:        rate,
		Description: req.Description,
		IsDefault:   req.IsDefault,
		IsActive:    req.IsActive,
	}, nil
}

// CreateTax handles tax configuration creation
func (h *ConfigurationHandler) CreateTax(c *gin.Context) {
	var req request.TaxConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := taxInputFromRequest(&req)
	if err != nil {
		response.BadRequest(c, "Invalid tax rate")
		return
	}

	cfg, err := h.configService.CreateTaxConfiguration(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "create", "tax_configuration", cfg.ID.String(), map[string]interface{}{
		"name": cfg.Name,
		"rate": cfg.Rate,
	})

	response.Created(c, "Tax configuration created successfully", cfg)
}

// UpdateTax handles tax configuration updates
func (h *ConfigurationHandler) UpdateTax(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax configuration ID")
		return
	}

	var req request.TaxConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := taxInputFromRequest(&req)
	if err != nil {
		response.BadRequest(c, "Invalid tax rate")
		return
	}

	cfg, err := h.configService.UpdateTaxConfiguration(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "update", "tax_configuration", id.String(), nil)

	response.OK(c, "Tax configuration updated successfully", cfg)
}

// DeleteTax handles tax configuration deletion
func (h *ConfigurationHandler) DeleteTax(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax configuration ID")
		return
	}

	if err := h.configService.DeleteTaxConfiguration(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "delete", "tax_configuration", id.String(), nil)

	response.OK(c, "Tax configuration deleted successfully", nil)
}

// ListTax handles listing tax configurations
func (h *ConfigurationHandler) ListTax(c *gin.Context) {
	cfgs, err := h.configService.ListTaxConfigurations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax configurations retrieved successfully", cfgs)
}

func printerInputFromRequest(req *request.PrinterConfigurationRequest) *service.PrinterConfigurationInput {
	return &service.PrinterConfigurationInput{
		Name:           req.Name,
		Type:           enum.PrinterType(req.Type),
		ConnectionType: enum.ConnectionType(req.ConnectionType),
		IPAddress:      req.IPAddress,
		Port:           req.Port,
		DevicePath:     req.DevicePath,
		PaperWidth:     req.PaperWidth,
		IsDefault:      req.IsDefault,
		IsActive:       req.IsActive,
	}
}

// CreatePrinter handles printer configuration creation
func (h *ConfigurationHandler) CreatePrinter(c *gin.Context) {
	var req request.PrinterConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := h.configService.CreatePrinterConfiguration(c.Request.Context(), printerInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "create", "printer_configuration", cfg.ID.String(), map[string]interface{}{
		"name": cfg.Name,
	})

	response.Created(c, "Printer configuration created successfully", cfg)
}

// UpdatePrinter handles printer configuration updates
func (h *ConfigurationHandler) UpdatePrinter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid printer configuration ID")
		return
	}

	var req request.PrinterConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cfg, err := h.configService.UpdatePrinterConfiguration(c.Request.Context(), id, printerInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "update", "printer_configuration", id.String(), nil)

	response.OK(c, "Printer configuration updated successfully", cfg)
}

// DeletePrinter handles printer configuration deletion
func (h *ConfigurationHandler) DeletePrinter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid printer configuration ID")
		return
	}

	if err := h.configService.DeletePrinterConfiguration(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "delete", "printer_configuration", id.String(), nil)

	response.OK(c, "Printer configuration deleted successfully", nil)
}

// ListPrinters handles listing printer configurations
func (h *ConfigurationHandler) ListPrinters(c *gin.Context) {
	cfgs, err := h.configService.ListPrinterConfigurations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Printer configurations retrieved successfully", cfgs)
}
