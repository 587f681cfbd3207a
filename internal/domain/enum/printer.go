package enum

// PrinterType is informational only; formatting is identical for all.
type PrinterType string

const (
	PrinterTypeThermal PrinterType = "thermal"
	PrinterTypeInkjet  PrinterType = "inkjet"
	PrinterTypeLaser   PrinterType = "laser"
)

// Valid reports whether t is a known printer type.
func (t PrinterType) Valid() bool {
	switch t {
	case PrinterTypeThermal, PrinterTypeInkjet, PrinterTypeLaser:
		return true
	}
	return false
}

// ConnectionType is how the printer is attached. Only network printers
// can actually be driven; the others are accepted in configuration but
// rejected at print time.
type ConnectionType string

const (
	ConnectionTypeUSB       ConnectionType = "usb"
	ConnectionTypeNetwork   ConnectionType = "network"
	ConnectionTypeBluetooth ConnectionType = "bluetooth"
)

// Valid reports whether c is a known connection type.
func (c ConnectionType) Valid() bool {
	switch c {
	case ConnectionTypeUSB, ConnectionTypeNetwork, ConnectionTypeBluetooth:
		return true
	}
	return false
}
