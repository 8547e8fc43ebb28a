package wkb

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
)

/*
Encoder is a content sink rendering ISO Well-Known Binary. Every geometry carries
its own byte-order flag and type code, so nested members are self-describing and
the encoder never needs to look ahead.

Geometry collections are the one place the format demands a count before its
members are known; when the producer cannot supply one the children are staged in
a side buffer, counted, and spliced in after the count word.

An empty point has no zero-count to express emptiness with, so it is written as a
full tuple of NaN values. Every other kind writes a zero count.
*/
type Encoder struct {
	opts    *Options
	out     *bytes.Buffer
	order   binary.ByteOrder
	written int
	scratch [8]byte
}

func NewEncoder(opts *Options) *Encoder {
	opts = opts.orDefault()
	return &Encoder{opts: opts, out: &bytes.Buffer{}, order: opts.byteOrder()}
}

// Bytes returns the binary encoded so far.
func (encoder *Encoder) Bytes() []byte {
	return encoder.out.Bytes()
}

func (encoder *Encoder) child(out *bytes.Buffer) *Encoder {
	return &Encoder{opts: encoder.opts, out: out, order: encoder.order}
}

// begin counts one sink invocation and writes its header. The count backs the
// spliced count word of an unknown-count collection, so member headers inside
// multi geometries go through header directly and are never counted.
func (encoder *Encoder) begin(kind content.GeomKind, coordType coords.CoordType) {
	encoder.written++
	encoder.header(kind, coordType)
}

func (encoder *Encoder) header(kind content.GeomKind, coordType coords.CoordType) {
	if encoder.opts.BigEndian {
		encoder.out.WriteByte(orderBig)
	} else {
		encoder.out.WriteByte(orderLittle)
	}
	encoder.writeUint32(typeCode(kind, coordType))
}

func (encoder *Encoder) writeUint32(value uint32) {
	encoder.order.PutUint32(encoder.scratch[:4], value)
	encoder.out.Write(encoder.scratch[:4])
}

func (encoder *Encoder) writeValue(value float64) {
	encoder.order.PutUint64(encoder.scratch[:8], math.Float64bits(value))
	encoder.out.Write(encoder.scratch[:8])
}

func (encoder *Encoder) writePosition(pos coords.Position) {
	values := pos.Values()
	for index := range values {
		readIndex := index
		if encoder.opts.SwapXY && index < 2 {
			readIndex = 1 - index
		}
		encoder.writeValue(values[readIndex])
	}
}

// writeSeries writes a count word followed by the series values.
func (encoder *Encoder) writeSeries(series coords.PositionSeries) {
	encoder.writeUint32(uint32(series.Count()))
	for posIndex := 0; posIndex < series.Count(); posIndex++ {
		encoder.writePosition(series.Position(posIndex))
	}
}

func (encoder *Encoder) writeRings(rings []coords.PositionSeries) {
	encoder.writeUint32(uint32(len(rings)))
	for _, ring := range rings {
		encoder.writeSeries(ring)
	}
}

func layoutOf(opts *content.GeomOpts, fallback coords.CoordType) coords.CoordType {
	if opts != nil && opts.HasType {
		return opts.Type
	}
	return fallback
}

func groupLayout(group []coords.PositionSeries) coords.CoordType {
	if len(group) == 0 {
		return coords.XY
	}
	return group[0].Type()
}

// ---------------------------------------------------------------------------
// content.GeometryContent

func (encoder *Encoder) Point(pos coords.Position, opts *content.GeomOpts) {
	encoder.begin(content.KindPoint, layoutOf(opts, pos.Type()))
	encoder.writePosition(pos)
}

func (encoder *Encoder) LineString(
	chain coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.begin(content.KindLineString, layoutOf(opts, chain.Type()))
	encoder.writeSeries(chain)
}

func (encoder *Encoder) Polygon(
	rings []coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.begin(content.KindPolygon, layoutOf(opts, groupLayout(rings)))
	encoder.writeRings(rings)
}

// MultiPoint writes each member as a complete point geometry, header included,
// as the format requires.
func (encoder *Encoder) MultiPoint(
	points coords.PositionSeries, opts *content.GeomOpts,
) {
	coordType := layoutOf(opts, points.Type())
	encoder.begin(content.KindMultiPoint, coordType)
	encoder.writeUint32(uint32(points.Count()))
	for posIndex := 0; posIndex < points.Count(); posIndex++ {
		encoder.header(content.KindPoint, coordType)
		encoder.writePosition(points.Position(posIndex))
	}
}

func (encoder *Encoder) MultiLineString(
	lines []coords.PositionSeries, opts *content.GeomOpts,
) {
	coordType := layoutOf(opts, groupLayout(lines))
	encoder.begin(content.KindMultiLineString, coordType)
	encoder.writeUint32(uint32(len(lines)))
	for _, line := range lines {
		encoder.header(content.KindLineString, coordType)
		encoder.writeSeries(line)
	}
}

func (encoder *Encoder) MultiPolygon(
	polygons [][]coords.PositionSeries, opts *content.GeomOpts,
) {
	fallback := coords.XY
	if len(polygons) > 0 {
		fallback = groupLayout(polygons[0])
	}

	coordType := layoutOf(opts, fallback)
	encoder.begin(content.KindMultiPolygon, coordType)
	encoder.writeUint32(uint32(len(polygons)))
	for _, rings := range polygons {
		encoder.header(content.KindPolygon, coordType)
		encoder.writeRings(rings)
	}
}

func (encoder *Encoder) EmptyGeometry(kind content.GeomKind, opts *content.GeomOpts) {
	coordType := layoutOf(opts, coords.XY)
	encoder.begin(kind, coordType)

	if kind == content.KindPoint {
		for index := 0; index < coordType.Dim(); index++ {
			encoder.writeValue(math.NaN())
		}
		return
	}
	encoder.writeUint32(0)
}

func (encoder *Encoder) GeometryCollection(
	write func(content.GeometryContent), count int, opts *content.GeomOpts,
) {
	encoder.begin(content.KindGeometryCollection, layoutOf(opts, coords.XY))

	if count >= 0 {
		encoder.writeUint32(uint32(count))
		write(encoder.child(encoder.out))
		return
	}

	// Count unknown up front: stage the members, then splice.
	staged := &bytes.Buffer{}
	child := encoder.child(staged)
	write(child)

	encoder.writeUint32(uint32(child.written))
	encoder.out.Write(staged.Bytes())
}
