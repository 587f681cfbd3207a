package request

// TaxConfigurationRequest represents a tax configuration create or
// update request. Rate is a fraction, "0.18" for 18%.
type TaxConfigurationRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Rate        string `json:"rate" binding:"required"`
	Description string `json:"description" binding:"omitempty,max=255"`
	IsDefault   bool   `json:"is_default"`
	IsActive    bool   `json:"is_active"`
}

// PrinterConfigurationRequest represents a printer configuration create
// or update request
type PrinterConfigurationRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Type           string `json:"type" binding:"required"`
	ConnectionType string `json:"connection_type" binding:"required"`
	IPAddress      string `json:"ip_address" binding:"omitempty,max=100"`
	Port           int    `json:"port" binding:"omitempty,min=1,max=65535"`
	DevicePath     string `json:"device_path" binding:"omitempty,max=255"`
	PaperWidth     int    `json:"paper_width" binding:"omitempty,min=20,max=120"`
	IsDefault      bool   `json:"is_default"`
	IsActive       bool   `json:"is_active"`
}

// PrintReceiptRequest selects the printer for a print job. Empty means
// the default printer.
type PrintReceiptRequest struct {
	PrinterID string `json:"printer_id" binding:"omitempty,uuid"`
}
