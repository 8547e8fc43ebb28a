package wkb

import (
	"encoding/binary"
	"math"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
	"github.com/illuscio-dev/geotools-go/geoerrors"
)

/*
Decoder scans ISO or EWKB Well-Known Binary and drives any content sink. Every
nested geometry carries its own byte-order flag and type code, so mixed-order
documents decode correctly; an EWKB SRID word is read and discarded.

Every declared count is validated against the bytes actually remaining before
anything is allocated, so a corrupt count can never drive an outsized allocation.
*/
type Decoder struct {
	opts *Options
}

func NewDecoder(opts *Options) *Decoder {
	return &Decoder{opts: opts.orDefault()}
}

// DecodeGeometry decodes one complete geometry from data. Trailing bytes after
// the geometry are an error.
func (decoder *Decoder) DecodeGeometry(
	data []byte, sink content.GeometryContent,
) (err error) {
	defer geoerrors.Capture(&err)

	reader := &wkbReader{data: data, opts: decoder.opts}
	reader.geometry(sink, 0)
	if reader.offset != len(reader.data) {
		binErr("trailing bytes after geometry", reader.offset)
	}
	return nil
}

// wkbReader is the cursor state for one decode pass.
type wkbReader struct {
	data   []byte
	offset int
	opts   *Options
}

func (reader *wkbReader) geometry(sink content.GeometryContent, depth int) {
	order := reader.order()
	base, coordType, hasSRID, ok := splitCode(reader.uint32Val(order))
	if !ok {
		binErr("unrecognized geometry type code", reader.offset-4)
	}
	if hasSRID {
		reader.uint32Val(order)
	}

	opts := &content.GeomOpts{Type: coordType, HasType: true}
	kind := kindForCode(base)

	switch base {
	case codePoint:
		values := reader.position(order, coordType)
		if allNaN(values) {
			sink.EmptyGeometry(kind, opts)
			return
		}
		sink.Point(coords.NewPosition(coordType, values...), opts)

	case codeLineString:
		chain := reader.series(order, coordType)
		if chain.IsEmpty() {
			sink.EmptyGeometry(kind, opts)
			return
		}
		sink.LineString(chain, opts)

	case codePolygon:
		rings := reader.rings(order, coordType)
		if len(rings) == 0 {
			sink.EmptyGeometry(kind, opts)
			return
		}
		sink.Polygon(rings, opts)

	case codeMultiPoint:
		reader.multiPoint(sink, order, coordType, opts)

	case codeMultiLineString:
		count := reader.memberCount(order)
		if count == 0 {
			sink.EmptyGeometry(kind, opts)
			return
		}
		lines := make([]coords.PositionSeries, 0, count)
		for index := 0; index < count; index++ {
			memberOrder, memberType := reader.memberHeader(codeLineString, coordType)
			lines = append(lines, reader.series(memberOrder, memberType))
		}
		sink.MultiLineString(lines, opts)

	case codeMultiPolygon:
		count := reader.memberCount(order)
		if count == 0 {
			sink.EmptyGeometry(kind, opts)
			return
		}
		polygons := make([][]coords.PositionSeries, 0, count)
		for index := 0; index < count; index++ {
			memberOrder, memberType := reader.memberHeader(codePolygon, coordType)
			polygons = append(polygons, reader.rings(memberOrder, memberType))
		}
		sink.MultiPolygon(polygons, opts)

	case codeGeometryCollection:
		reader.collection(sink, order, depth)
	}
}

func (reader *wkbReader) multiPoint(
	sink content.GeometryContent,
	order binary.ByteOrder,
	coordType coords.CoordType,
	opts *content.GeomOpts,
) {
	count := reader.memberCount(order)
	if count == 0 {
		sink.EmptyGeometry(kindForCode(codeMultiPoint), opts)
		return
	}

	dim := coordType.Dim()
	flat := make([]float64, 0, count*dim)
	for index := 0; index < count; index++ {
		memberOrder, memberType := reader.memberHeader(codePoint, coordType)
		flat = append(flat, reader.position(memberOrder, memberType)...)
	}

	if reader.opts.SinglePrecision {
		sink.MultiPoint(coords.NewSeries32(coordType, flat...), opts)
		return
	}
	sink.MultiPoint(coords.ViewSeries(coordType, flat), opts)
}

func (reader *wkbReader) collection(
	sink content.GeometryContent, order binary.ByteOrder, depth int,
) {
	if depth >= reader.opts.maxDepth() {
		geoerrors.FormatError.Panic(
			"geometry collections nested too deeply",
			map[string]interface{}{"maxDepth": reader.opts.maxDepth()},
			nil,
		)
	}

	count := reader.memberCount(order)

	// Windowing applies to the document's own collection, never to nested
	// members.
	winStart := 0
	winEnd := count
	if depth == 0 {
		winStart = reader.opts.ItemOffset
		if winStart < 0 {
			winStart = 0
		}
		if reader.opts.ItemLimit > 0 && winStart+reader.opts.ItemLimit < winEnd {
			winEnd = winStart + reader.opts.ItemLimit
		}
	}

	windowed := winEnd - winStart
	if windowed < 0 {
		windowed = 0
	}

	sink.GeometryCollection(
		func(child content.GeometryContent) {
			// Members outside the window still have to be scanned past: WKB
			// elements are only delimited by parsing them.
			for index := 0; index < count; index++ {
				target := content.GeometryContent(discardSink{})
				if index >= winStart && index < winEnd {
					target = child
				}
				reader.geometry(target, depth+1)
			}
		},
		windowed,
		nil,
	)
}

// memberHeader reads a nested member's own byte-order flag and type code,
// checking that it is the kind and layout its container promises.
func (reader *wkbReader) memberHeader(
	wantBase uint32, wantType coords.CoordType,
) (binary.ByteOrder, coords.CoordType) {
	order := reader.order()
	base, coordType, hasSRID, ok := splitCode(reader.uint32Val(order))
	if !ok || base != wantBase {
		binErr("container member has the wrong geometry type", reader.offset-4)
	}
	if coordType != wantType {
		binErr("container member layout differs from its container", reader.offset-4)
	}
	if hasSRID {
		reader.uint32Val(order)
	}
	return order, coordType
}

func (reader *wkbReader) order() binary.ByteOrder {
	flag := reader.byteVal()
	switch flag {
	case orderBig:
		return binary.BigEndian
	case orderLittle:
		return binary.LittleEndian
	default:
		binErr("unrecognized byte-order flag", reader.offset-1)
		return nil
	}
}

// memberCount reads a count word and sanity-checks it against the smallest
// possible member encoding still fitting in the remaining input.
func (reader *wkbReader) memberCount(order binary.ByteOrder) int {
	count := int(reader.uint32Val(order))
	if count > (len(reader.data)-reader.offset)/4 {
		binErr("declared count exceeds remaining input", reader.offset-4)
	}
	return count
}

func (reader *wkbReader) position(
	order binary.ByteOrder, coordType coords.CoordType,
) []float64 {
	values := make([]float64, coordType.Dim())
	for index := range values {
		values[index] = reader.float(order)
	}
	if reader.opts.SwapXY {
		values[0], values[1] = values[1], values[0]
	}
	return values
}

func (reader *wkbReader) series(
	order binary.ByteOrder, coordType coords.CoordType,
) coords.PositionSeries {
	count := int(reader.uint32Val(order))
	dim := coordType.Dim()
	if count > (len(reader.data)-reader.offset)/(dim*8) {
		binErr("declared count exceeds remaining input", reader.offset-4)
	}

	flat := make([]float64, 0, count*dim)
	for index := 0; index < count; index++ {
		flat = append(flat, reader.position(order, coordType)...)
	}

	if reader.opts.SinglePrecision {
		return coords.NewSeries32(coordType, flat...)
	}
	return coords.ViewSeries(coordType, flat)
}

func (reader *wkbReader) rings(
	order binary.ByteOrder, coordType coords.CoordType,
) []coords.PositionSeries {
	count := int(reader.uint32Val(order))
	if count > (len(reader.data)-reader.offset)/4 {
		binErr("declared count exceeds remaining input", reader.offset-4)
	}

	rings := make([]coords.PositionSeries, 0, count)
	for index := 0; index < count; index++ {
		rings = append(rings, reader.series(order, coordType))
	}
	return rings
}

func (reader *wkbReader) byteVal() byte {
	if reader.offset >= len(reader.data) {
		binErr("input truncated", reader.offset)
	}
	value := reader.data[reader.offset]
	reader.offset++
	return value
}

func (reader *wkbReader) uint32Val(order binary.ByteOrder) uint32 {
	if reader.offset+4 > len(reader.data) {
		binErr("input truncated", reader.offset)
	}
	value := order.Uint32(reader.data[reader.offset:])
	reader.offset += 4
	return value
}

func (reader *wkbReader) float(order binary.ByteOrder) float64 {
	if reader.offset+8 > len(reader.data) {
		binErr("input truncated", reader.offset)
	}
	value := math.Float64frombits(order.Uint64(reader.data[reader.offset:]))
	reader.offset += 8
	return value
}

func allNaN(values []float64) bool {
	for _, value := range values {
		if !math.IsNaN(value) {
			return false
		}
	}
	return true
}

func binErr(message string, offset int) {
	geoerrors.FormatError.Panic(
		message, map[string]interface{}{"offset": offset}, nil,
	)
}

// discardSink parses past collection members excluded by the item window.
type discardSink struct{}

func (discardSink) Point(coords.Position, *content.GeomOpts)                 {}
func (discardSink) LineString(coords.PositionSeries, *content.GeomOpts)      {}
func (discardSink) Polygon([]coords.PositionSeries, *content.GeomOpts)       {}
func (discardSink) MultiPoint(coords.PositionSeries, *content.GeomOpts)      {}
func (discardSink) MultiLineString([]coords.PositionSeries, *content.GeomOpts) {
}
func (discardSink) MultiPolygon([][]coords.PositionSeries, *content.GeomOpts) {
}
func (discardSink) EmptyGeometry(content.GeomKind, *content.GeomOpts) {}

func (discardSink) GeometryCollection(
	write func(content.GeometryContent), count int, opts *content.GeomOpts,
) {
	write(discardSink{})
}
