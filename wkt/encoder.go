package wkt

import (
	"bytes"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
)

/*
Encoder is a content sink rendering Well-Known Text. Each geometry call writes its
complete `TYPE [Z|M|ZM](...)` or `TYPE EMPTY` fragment directly to the output
buffer; nesting is handled with a separator flag rather than recursive buffering,
so a geometry collection of any depth streams through one buffer.

The dimensionality suffix is derived from the CoordType of the data being written,
never inferred from value counts; that inference only exists on the decode side.

WKT has no feature concept, so Encoder implements the geometry and coordinate
capabilities only.
*/
type Encoder struct {
	opts       *Options
	out        *bytes.Buffer
	needsComma bool
	scratch    []byte
}

func NewEncoder(opts *Options) *Encoder {
	return &Encoder{opts: opts.orDefault(), out: &bytes.Buffer{}}
}

// Bytes returns the text encoded so far.
func (encoder *Encoder) Bytes() []byte {
	return encoder.out.Bytes()
}

// String returns the text encoded so far.
func (encoder *Encoder) String() string {
	return encoder.out.String()
}

func (encoder *Encoder) child() *Encoder {
	return &Encoder{opts: encoder.opts, out: encoder.out}
}

func (encoder *Encoder) elemSep() {
	if encoder.needsComma {
		encoder.out.WriteByte(',')
	}
	encoder.needsComma = true
}

// tagged writes the geometry keyword plus its Z/M/ZM suffix.
func (encoder *Encoder) tagged(keyword string, coordType coords.CoordType) {
	encoder.out.WriteString(keyword)
	switch {
	case coordType.HasZ() && coordType.HasM():
		encoder.out.WriteString(" ZM")
	case coordType.HasZ():
		encoder.out.WriteString(" Z")
	case coordType.HasM():
		encoder.out.WriteString(" M")
	}
}

func optsType(opts *content.GeomOpts, fallback coords.CoordType) coords.CoordType {
	if opts != nil && opts.HasType {
		return opts.Type
	}
	return fallback
}

func (encoder *Encoder) value(value float64) {
	encoder.scratch = coords.AppendValue(
		encoder.scratch[:0], value, encoder.opts.decimals(),
	)
	encoder.out.Write(encoder.scratch)
}

// positionText writes one position's values separated by spaces.
func (encoder *Encoder) positionText(pos coords.Position) {
	values := pos.Values()
	for index := range values {
		if index > 0 {
			encoder.out.WriteByte(' ')
		}
		readIndex := index
		if encoder.opts.SwapXY && index < 2 {
			readIndex = 1 - index
		}
		encoder.value(values[readIndex])
	}
}

func (encoder *Encoder) seriesText(series coords.PositionSeries) {
	for posIndex := 0; posIndex < series.Count(); posIndex++ {
		if posIndex > 0 {
			encoder.out.WriteByte(',')
		}
		encoder.positionText(series.Position(posIndex))
	}
}

func (encoder *Encoder) groupText(group []coords.PositionSeries) {
	for seriesIndex, series := range group {
		if seriesIndex > 0 {
			encoder.out.WriteByte(',')
		}
		encoder.out.WriteByte('(')
		encoder.seriesText(series)
		encoder.out.WriteByte(')')
	}
}

// ---------------------------------------------------------------------------
// content.CoordinateContent

func (encoder *Encoder) Position(pos coords.Position) {
	encoder.elemSep()
	encoder.positionText(pos)
}

func (encoder *Encoder) Positions(series coords.PositionSeries) {
	encoder.elemSep()
	encoder.seriesText(series)
}

// Bounds writes a box as its two corner positions.
func (encoder *Encoder) Bounds(box coords.Box) {
	encoder.elemSep()
	encoder.positionText(box.Min())
	encoder.out.WriteByte(',')
	encoder.positionText(box.Max())
}

// ---------------------------------------------------------------------------
// content.GeometryContent

func (encoder *Encoder) Point(pos coords.Position, opts *content.GeomOpts) {
	encoder.elemSep()
	encoder.tagged("POINT", optsType(opts, pos.Type()))
	encoder.out.WriteByte('(')
	encoder.positionText(pos)
	encoder.out.WriteByte(')')
}

func (encoder *Encoder) LineString(
	chain coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.elemSep()
	encoder.tagged("LINESTRING", optsType(opts, chain.Type()))
	encoder.out.WriteByte('(')
	encoder.seriesText(chain)
	encoder.out.WriteByte(')')
}

func (encoder *Encoder) Polygon(
	rings []coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.elemSep()
	encoder.tagged("POLYGON", optsType(opts, groupType(rings)))
	encoder.out.WriteByte('(')
	encoder.groupText(rings)
	encoder.out.WriteByte(')')
}

func (encoder *Encoder) MultiPoint(
	points coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.elemSep()
	encoder.tagged("MULTIPOINT", optsType(opts, points.Type()))
	encoder.out.WriteByte('(')
	encoder.seriesText(points)
	encoder.out.WriteByte(')')
}

func (encoder *Encoder) MultiLineString(
	lines []coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.elemSep()
	encoder.tagged("MULTILINESTRING", optsType(opts, groupType(lines)))
	encoder.out.WriteByte('(')
	encoder.groupText(lines)
	encoder.out.WriteByte(')')
}

func (encoder *Encoder) MultiPolygon(
	polygons [][]coords.PositionSeries, opts *content.GeomOpts,
) {
	fallback := coords.XY
	if len(polygons) > 0 {
		fallback = groupType(polygons[0])
	}

	encoder.elemSep()
	encoder.tagged("MULTIPOLYGON", optsType(opts, fallback))
	encoder.out.WriteByte('(')
	for polyIndex, rings := range polygons {
		if polyIndex > 0 {
			encoder.out.WriteByte(',')
		}
		encoder.out.WriteByte('(')
		encoder.groupText(rings)
		encoder.out.WriteByte(')')
	}
	encoder.out.WriteByte(')')
}

// EmptyGeometry writes the `TYPE EMPTY` literal, suffixed when an explicit
// non-default layout was requested.
func (encoder *Encoder) EmptyGeometry(kind content.GeomKind, opts *content.GeomOpts) {
	encoder.elemSep()
	encoder.tagged(keywordFor(kind), optsType(opts, coords.XY))
	encoder.out.WriteString(" EMPTY")
}

func (encoder *Encoder) GeometryCollection(
	write func(content.GeometryContent), count int, opts *content.GeomOpts,
) {
	encoder.elemSep()
	encoder.out.WriteString("GEOMETRYCOLLECTION(")
	write(encoder.child())
	encoder.out.WriteByte(')')
}

func groupType(group []coords.PositionSeries) coords.CoordType {
	if len(group) == 0 {
		return coords.XY
	}
	return group[0].Type()
}

func keywordFor(kind content.GeomKind) string {
	switch kind {
	case content.KindPoint:
		return "POINT"
	case content.KindLineString:
		return "LINESTRING"
	case content.KindPolygon:
		return "POLYGON"
	case content.KindMultiPoint:
		return "MULTIPOINT"
	case content.KindMultiLineString:
		return "MULTILINESTRING"
	case content.KindMultiPolygon:
		return "MULTIPOLYGON"
	default:
		return "GEOMETRYCOLLECTION"
	}
}
