package coords

/*
Box is an axis-aligned bounding box: a min/max value pair per coordinate axis,
sharing the CoordType concept with Position. Used for bounding-box metadata on
geometries, features and collections.
*/
type Box struct {
	min       []float64
	max       []float64
	coordType CoordType
}

// NewBox builds a box from min values followed by max values, each of the layout
// dimension.
func NewBox(coordType CoordType, values ...float64) Box {
	dim := coordType.Dim()
	if len(values) != dim*2 {
		panic("coords: box value count does not match layout dimension")
	}
	min := make([]float64, dim)
	max := make([]float64, dim)
	copy(min, values[:dim])
	copy(max, values[dim:])
	return Box{min: min, max: max, coordType: coordType}
}

/*
BoxFromValues maps a flattened bbox array to a Box by arity: 4 values decode as XY,
6 as XYZ and 8 as XYZM, positionally min-x, min-y, [min-z, [min-m,]] max-x, max-y,
[max-z, [max-m]]. A 6-value array could also be xym; it resolves as xyz, the same
ambiguity resolution as TypeForDim.

Any other length returns ok=false.
*/
func BoxFromValues(values []float64) (box Box, ok bool) {
	var coordType CoordType
	switch len(values) {
	case 4:
		coordType = XY
	case 6:
		coordType = XYZ
	case 8:
		coordType = XYZM
	default:
		return Box{}, false
	}
	return NewBox(coordType, values...), true
}

func (box Box) Type() CoordType {
	return box.coordType
}

// Min returns the minimum corner as a position.
func (box Box) Min() Position {
	return Position{values: box.min, coordType: box.coordType}
}

// Max returns the maximum corner as a position.
func (box Box) Max() Position {
	return Position{values: box.max, coordType: box.coordType}
}

func (box Box) MinX() float64 { return box.min[0] }
func (box Box) MinY() float64 { return box.min[1] }
func (box Box) MaxX() float64 { return box.max[0] }
func (box Box) MaxY() float64 { return box.max[1] }

// Values returns the flattened min values followed by max values, 2 * Dim() long.
func (box Box) Values() []float64 {
	values := make([]float64, 0, len(box.min)*2)
	values = append(values, box.min...)
	values = append(values, box.max...)
	return values
}

// SwapXY returns the box with x and y exchanged in both corners.
func (box Box) SwapXY() Box {
	min := make([]float64, len(box.min))
	max := make([]float64, len(box.max))
	copy(min, box.min)
	copy(max, box.max)
	min[0], min[1] = min[1], min[0]
	max[0], max[1] = max[1], max[0]
	return Box{min: min, max: max, coordType: box.coordType}
}

// Extend returns the smallest box covering both this box and other. Both boxes
// must share a layout; the receiver's layout wins on mismatch with extra axes of
// other ignored.
func (box Box) Extend(other Box) Box {
	dim := box.coordType.Dim()
	min := make([]float64, dim)
	max := make([]float64, dim)
	copy(min, box.min)
	copy(max, box.max)
	for compIndex := 0; compIndex < dim && compIndex < other.coordType.Dim(); compIndex++ {
		if other.min[compIndex] < min[compIndex] {
			min[compIndex] = other.min[compIndex]
		}
		if other.max[compIndex] > max[compIndex] {
			max[compIndex] = other.max[compIndex]
		}
	}
	return Box{min: min, max: max, coordType: box.coordType}
}
