package coords

/*
PositionSeries is a flat, contiguous sequence of coordinate values representing N
positions of one layout. Logically it behaves like a list of positions, physically
it is one buffer of N * Dim() numbers, which is what keeps bulk geometry decode and
encode allocation-light.

A series is immutable once constructed. NewSeries copies the caller's values into an
owned buffer; ViewSeries wraps the caller's storage without copying, in which case
the caller must not mutate that storage while the series is in use.

A series may optionally be backed by float32 storage (NewSeries32) for
memory-constrained bulk ingestion; values read back are the float64 widening of the
stored float32.
*/
type PositionSeries struct {
	values    []float64
	values32  []float32
	coordType CoordType
}

// NewSeries copies values into an owned buffer. The value count must be a multiple
// of the layout dimension.
func NewSeries(coordType CoordType, values ...float64) PositionSeries {
	checkSeriesLen(coordType, len(values))
	owned := make([]float64, len(values))
	copy(owned, values)
	return PositionSeries{values: owned, coordType: coordType}
}

// ViewSeries wraps values without copying. The caller must not mutate the slice
// while the series is in use; this is a documented aliasing hazard, not a runtime
// enforced invariant.
func ViewSeries(coordType CoordType, values []float64) PositionSeries {
	checkSeriesLen(coordType, len(values))
	return PositionSeries{values: values, coordType: coordType}
}

// NewSeries32 stores values in single precision. Reads widen back to float64.
func NewSeries32(coordType CoordType, values ...float64) PositionSeries {
	checkSeriesLen(coordType, len(values))
	stored := make([]float32, len(values))
	for index, value := range values {
		stored[index] = float32(value)
	}
	return PositionSeries{values32: stored, coordType: coordType}
}

func checkSeriesLen(coordType CoordType, valueCount int) {
	if valueCount%coordType.Dim() != 0 {
		panic("coords: series value count is not a multiple of layout dimension")
	}
}

func (series PositionSeries) Type() CoordType {
	return series.coordType
}

// Count returns the number of positions in the series.
func (series PositionSeries) Count() int {
	if series.values32 != nil {
		return len(series.values32) / series.coordType.Dim()
	}
	return len(series.values) / series.coordType.Dim()
}

// IsEmpty reports whether the series holds no positions.
func (series PositionSeries) IsEmpty() bool {
	return series.Count() == 0
}

// Value returns component compIndex (0 = x) of position posIndex.
func (series PositionSeries) Value(posIndex int, compIndex int) float64 {
	flat := posIndex*series.coordType.Dim() + compIndex
	if series.values32 != nil {
		return float64(series.values32[flat])
	}
	return series.values[flat]
}

// Position returns the position at posIndex. For float64-backed series the result
// is a sub-slice view of the flat buffer, not a copy.
func (series PositionSeries) Position(posIndex int) Position {
	dim := series.coordType.Dim()
	start := posIndex * dim
	if series.values32 != nil {
		widened := make([]float64, dim)
		for index := range widened {
			widened[index] = float64(series.values32[start+index])
		}
		return Position{values: widened, coordType: series.coordType}
	}
	return Position{
		values:    series.values[start : start+dim],
		coordType: series.coordType,
	}
}

// Values returns the flattened coordinate values. For float64-backed series this is
// the backing buffer itself; for float32-backed series a widened copy is built.
func (series PositionSeries) Values() []float64 {
	if series.values32 != nil {
		widened := make([]float64, len(series.values32))
		for index, value := range series.values32 {
			widened[index] = float64(value)
		}
		return widened
	}
	return series.values
}

// SwapXY returns a copy of the series with x and y exchanged in every position.
func (series PositionSeries) SwapXY() PositionSeries {
	dim := series.coordType.Dim()
	values := series.Values()
	swapped := make([]float64, len(values))
	copy(swapped, values)
	for start := 0; start < len(swapped); start += dim {
		swapped[start], swapped[start+1] = swapped[start+1], swapped[start]
	}
	return PositionSeries{values: swapped, coordType: series.coordType}
}

// SeriesBounds computes the combined bounding box of a group of series. Returns
// ok=false when every series in the group is empty.
func SeriesBounds(group []PositionSeries) (box Box, ok bool) {
	var merged *Box
	for _, series := range group {
		if seriesBox, seriesOk := series.Bounds(); seriesOk {
			if merged == nil {
				merged = &seriesBox
			} else {
				extended := merged.Extend(seriesBox)
				merged = &extended
			}
		}
	}
	if merged == nil {
		return Box{}, false
	}
	return *merged, true
}

// Bounds computes the axis-aligned bounding box of the series. Returns ok=false
// for an empty series.
func (series PositionSeries) Bounds() (box Box, ok bool) {
	count := series.Count()
	if count == 0 {
		return Box{}, false
	}

	dim := series.coordType.Dim()
	min := make([]float64, dim)
	max := make([]float64, dim)
	for compIndex := 0; compIndex < dim; compIndex++ {
		min[compIndex] = series.Value(0, compIndex)
		max[compIndex] = series.Value(0, compIndex)
	}

	for posIndex := 1; posIndex < count; posIndex++ {
		for compIndex := 0; compIndex < dim; compIndex++ {
			value := series.Value(posIndex, compIndex)
			if value < min[compIndex] {
				min[compIndex] = value
			}
			if value > max[compIndex] {
				max[compIndex] = value
			}
		}
	}

	return Box{min: min, max: max, coordType: series.coordType}, true
}
