// Enumeration-like type for coordinate layouts.
package coords

/*
CoordType enumerates the coordinate layouts a position can carry: two dimensional
(XY), three dimensional (XYZ), two dimensional with a measure value (XYM) and three
dimensional with a measure value (XYZM).

The layout fixes the number of values per position and their order: x, y, then z if
present, then m if present.
*/
type CoordType int

const (
	XY CoordType = iota
	XYZ
	XYM
	XYZM
)

// Number of values a single position of this layout holds.
func (coordType CoordType) Dim() int {
	switch coordType {
	case XYZM:
		return 4
	case XYZ, XYM:
		return 3
	default:
		return 2
	}
}

// Whether positions of this layout carry a z value.
func (coordType CoordType) HasZ() bool {
	return coordType == XYZ || coordType == XYZM
}

// Whether positions of this layout carry an m value.
func (coordType CoordType) HasM() bool {
	return coordType == XYM || coordType == XYZM
}

func (coordType CoordType) String() string {
	switch coordType {
	case XYZ:
		return "xyz"
	case XYM:
		return "xym"
	case XYZM:
		return "xyzm"
	default:
		return "xy"
	}
}

// TypeFor returns the layout carrying the requested optional values.
func TypeFor(hasZ bool, hasM bool) CoordType {
	switch {
	case hasZ && hasM:
		return XYZM
	case hasZ:
		return XYZ
	case hasM:
		return XYM
	default:
		return XY
	}
}

/*
TypeForDim infers a layout from a per-position value count. Three values are always
read as XYZ, never XYM -- a bare value triple is ambiguous and xyz is the documented
resolution. Callers that know better (an explicit M suffix, for instance) should not
use this inference.

Returns ok=false for counts outside 2..4.
*/
func TypeForDim(dim int) (coordType CoordType, ok bool) {
	switch dim {
	case 2:
		return XY, true
	case 3:
		return XYZ, true
	case 4:
		return XYZM, true
	}
	return XY, false
}
