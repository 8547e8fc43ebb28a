package coords

/*
Position is an ordered tuple of coordinate values tagged with a CoordType. The
backing slice is usually a view into a shared PositionSeries buffer rather than an
allocation of its own, so a Position is cheap to pass by value.

The backing slice length always equals the layout dimension.
*/
type Position struct {
	values    []float64
	coordType CoordType
}

// NewPosition wraps values as a position of the given layout. The slice is NOT
// copied; callers must not mutate it while the position is in use.
func NewPosition(coordType CoordType, values ...float64) Position {
	if len(values) != coordType.Dim() {
		// A mismatched tuple is a programming error at the call site, not input
		// data, so it is not part of the format error taxonomy.
		panic("coords: position value count does not match layout dimension")
	}
	return Position{values: values, coordType: coordType}
}

// NewPosition2D returns an XY position.
func NewPosition2D(x float64, y float64) Position {
	return Position{values: []float64{x, y}, coordType: XY}
}

func (pos Position) Type() CoordType {
	return pos.coordType
}

// Values returns the backing slice in coordinate order (x, y, [z], [m]).
func (pos Position) Values() []float64 {
	return pos.values
}

func (pos Position) X() float64 { return pos.values[0] }

func (pos Position) Y() float64 { return pos.values[1] }

// Z returns the z value, or 0 for layouts without one.
func (pos Position) Z() float64 {
	if !pos.coordType.HasZ() {
		return 0
	}
	return pos.values[2]
}

// M returns the m value, or 0 for layouts without one.
func (pos Position) M() float64 {
	if !pos.coordType.HasM() {
		return 0
	}
	return pos.values[pos.coordType.Dim()-1]
}

// SwapXY returns the position with its first two values exchanged. Used when the
// coordinate reference system declares y-before-x axis order.
func (pos Position) SwapXY() Position {
	swapped := make([]float64, len(pos.values))
	copy(swapped, pos.values)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	return Position{values: swapped, coordType: pos.coordType}
}
