// Package transform maps table objects from local space into table space and
// from table space (left-handed, Z-up, table units) into export space
// (right-handed, Y-up, meters).
package transform

// Table units are defined so that a standard 1.0625 inch ball is 50 units
// across.
const (
	MillimetersPerUnit = 25.4 * 1.0625 / 50
	// UnitsToMeters is the default export scale.
	UnitsToMeters = MillimetersPerUnit / 1000
)

// MMToUnits converts millimeters to table units.
func MMToUnits(mm float32) float32 {
	return mm / MillimetersPerUnit
}

// UnitsToMM converts table units to millimeters.
func UnitsToMM(u float32) float32 {
	return u * MillimetersPerUnit
}
