// Package units converts between physical millimeters and device units.
package units

import "strconv"

// MillimetersPerInch is the length of one inch in millimeters.
const MillimetersPerInch = 25.4

// Converter converts with a fixed density in device units per millimeter.
// The zero value is not usable; use New or FromDPI.
type Converter struct {
	density float64
}

// New returns a Converter for density device units per millimeter.
// A non-positive density falls back to one unit per millimeter.
func New(density float64) Converter {
	if density <= 0 {
		density = 1
	}
	return Converter{density: density}
}

// FromDPI returns a Converter for a display with dpi device units per inch.
func FromDPI(dpi float64) Converter {
	return New(dpi / MillimetersPerInch)
}

func (c Converter) Density() float64 { return c.density }

func (c Converter) ToDeviceUnits(mm float64) float64 { return mm * c.density }

func (c Converter) ToMillimeters(units float64) float64 { return units / c.density }

// FormatMillimeters renders a device-unit length as millimeters with one
// fractional digit and a '.' decimal point.
func (c Converter) FormatMillimeters(units float64) string {
	return strconv.FormatFloat(c.ToMillimeters(units), 'f', 1, 64)
}
