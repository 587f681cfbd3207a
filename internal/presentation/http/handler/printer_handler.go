package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/loftpos/concessions-api/internal/application/service"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/request"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printing HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// receiptPayload is the print endpoint response body. The rendered
// receipt always comes back; warning is set when dispatch failed so the
// client can show the receipt on screen instead.
type receiptPayload struct {
	Receipt interface{} `json:"receipt"`
	Printed bool        `json:"printed"`
	Warning string      `json:"warning,omitempty"`
}

// PrintReceipt renders and prints the receipt for an order
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var printerID *uuid.UUID
	if req.PrinterID != "" {
		id, err := uuid.Parse(req.PrinterID)
		if err != nil {
			response.BadRequest(c, "Invalid printer ID")
			return
		}
		printerID = &id
	}

	result, err := h.printerService.PrintOrderReceipt(c.Request.Context(), orderID, printerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := receiptPayload{Receipt: result.Receipt, Printed: result.Printed}
	if result.Err != nil {
		payload.Warning = "Printing failed: " + result.Err.Error()
	}

	response.OK(c, "Receipt generated", payload)
}

// TestPrint sends a test page to a printer
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var printerID *uuid.UUID
	if req.PrinterID != "" {
		id, err := uuid.Parse(req.PrinterID)
		if err != nil {
			response.BadRequest(c, "Invalid printer ID")
			return
		}
		printerID = &id
	}

	if err := h.printerService.TestPrint(c.Request.Context(), printerID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test page printed successfully", nil)
}
