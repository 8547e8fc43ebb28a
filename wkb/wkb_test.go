package wkb_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
	"github.com/illuscio-dev/geotools-go/geoerrors"
	"github.com/illuscio-dev/geotools-go/geometry"
	"github.com/illuscio-dev/geotools-go/wkb"
)

// wkbBytes hand-assembles binary for expected-value checks.
func wkbBytes(order binary.ByteOrder, orderFlag byte, values ...interface{}) []byte {
	buffer := &bytes.Buffer{}
	buffer.WriteByte(orderFlag)
	for _, value := range values {
		_ = binary.Write(buffer, order, value)
	}
	return buffer.Bytes()
}

func roundTrip(test *testing.T, geom geometry.Geometry) []byte {
	encoder := wkb.NewEncoder(nil)
	geom.WriteTo(encoder)
	first := append([]byte(nil), encoder.Bytes()...)

	reEncoder := wkb.NewEncoder(nil)
	err := wkb.NewDecoder(nil).DecodeGeometry(first, reEncoder)
	if err != nil {
		test.Fatal(err)
	}

	assert.Equal(test, first, reEncoder.Bytes())
	return first
}

func TestPointBytes(test *testing.T) {
	assert := assert.New(test)

	encoder := wkb.NewEncoder(nil)
	encoder.Point(coords.NewPosition2D(1.0, 2.0), nil)

	expected := wkbBytes(binary.LittleEndian, 1, uint32(1), 1.0, 2.0)
	assert.Equal(expected, encoder.Bytes())
}

func TestBigEndianOption(test *testing.T) {
	assert := assert.New(test)

	encoder := wkb.NewEncoder(&wkb.Options{BigEndian: true})
	encoder.Point(coords.NewPosition2D(1.0, 2.0), nil)

	expected := wkbBytes(binary.BigEndian, 0, uint32(1), 1.0, 2.0)
	assert.Equal(expected, encoder.Bytes())

	// The decoder honors the order byte regardless of its own options.
	builder := geometry.NewGeomBuilder()
	err := wkb.NewDecoder(nil).DecodeGeometry(encoder.Bytes(), builder)
	assert.Nil(err)

	geom, _ := builder.Geometry()
	assert.Equal(1.0, geom.(geometry.Point).Position().X())
}

func TestDimensionalityCodes(test *testing.T) {
	assert := assert.New(test)

	encoder := wkb.NewEncoder(nil)
	encoder.Point(coords.NewPosition(coords.XYZ, 1.0, 2.0, 3.0), nil)
	assert.Equal(
		wkbBytes(binary.LittleEndian, 1, uint32(1001), 1.0, 2.0, 3.0),
		encoder.Bytes(),
	)

	encoder = wkb.NewEncoder(nil)
	encoder.Point(coords.NewPosition(coords.XYM, 1.0, 2.0, 3.0), nil)
	assert.Equal(
		wkbBytes(binary.LittleEndian, 1, uint32(2001), 1.0, 2.0, 3.0),
		encoder.Bytes(),
	)

	encoder = wkb.NewEncoder(nil)
	encoder.Point(coords.NewPosition(coords.XYZM, 1.0, 2.0, 3.0, 4.0), nil)
	assert.Equal(
		wkbBytes(binary.LittleEndian, 1, uint32(3001), 1.0, 2.0, 3.0, 4.0),
		encoder.Bytes(),
	)
}

func TestRoundTripAllKinds(test *testing.T) {
	line := coords.NewSeries(coords.XY, 0.0, 0.0, 1.0, 1.0, 2.0, 0.5)
	ring := coords.NewSeries(coords.XY, 0.0, 0.0, 4.0, 0.0, 4.0, 4.0, 0.0, 0.0)

	roundTrip(test, geometry.NewPoint(coords.NewPosition2D(30.0, 10.0)))
	roundTrip(test, geometry.NewLineString(line))
	roundTrip(test, geometry.NewPolygon(ring))
	roundTrip(test, geometry.NewMultiPoint(line))
	roundTrip(test, geometry.NewMultiLineString(line, ring))
	roundTrip(test, geometry.NewMultiPolygon([]coords.PositionSeries{ring}))
	roundTrip(test, geometry.NewCollection(
		geometry.NewPoint(coords.NewPosition2D(1.0, 2.0)),
		geometry.NewLineString(line),
	))
}

func TestEmptyPointIsNaN(test *testing.T) {
	assert := assert.New(test)

	encoder := wkb.NewEncoder(nil)
	encoder.EmptyGeometry(content.KindPoint, nil)

	data := encoder.Bytes()
	assert.Len(data, 1+4+16)
	assert.True(math.IsNaN(
		math.Float64frombits(binary.LittleEndian.Uint64(data[5:])),
	))

	builder := geometry.NewGeomBuilder()
	err := wkb.NewDecoder(nil).DecodeGeometry(data, builder)
	assert.Nil(err)

	geom, ok := builder.Geometry()
	assert.True(ok)
	assert.True(geom.IsEmpty())
	assert.Equal(content.KindPoint, geom.Kind())
}

func TestEmptyKindsRoundTrip(test *testing.T) {
	assert := assert.New(test)

	for _, kind := range []content.GeomKind{
		content.KindLineString,
		content.KindPolygon,
		content.KindMultiPoint,
		content.KindMultiLineString,
		content.KindMultiPolygon,
	} {
		encoder := wkb.NewEncoder(nil)
		encoder.EmptyGeometry(kind, nil)

		builder := geometry.NewGeomBuilder()
		err := wkb.NewDecoder(nil).DecodeGeometry(encoder.Bytes(), builder)
		assert.Nil(err)

		geom, ok := builder.Geometry()
		assert.True(ok)
		assert.True(geom.IsEmpty())
		assert.Equal(kind, geom.Kind())
	}
}

func TestEWKBFlagsAccepted(test *testing.T) {
	assert := assert.New(test)

	// EWKB: Z flag plus SRID flag, with an SRID word after the code.
	data := wkbBytes(
		binary.LittleEndian, 1,
		uint32(1|0x80000000|0x20000000), uint32(4326),
		1.0, 2.0, 3.0,
	)

	builder := geometry.NewGeomBuilder()
	err := wkb.NewDecoder(nil).DecodeGeometry(data, builder)

	assert.Nil(err)
	geom, _ := builder.Geometry()
	assert.Equal(coords.XYZ, geom.Type())
	assert.Equal(3.0, geom.(geometry.Point).Position().Z())
}

func TestSwapXY(test *testing.T) {
	assert := assert.New(test)

	data := wkbBytes(binary.LittleEndian, 1, uint32(1), 38.5, -76.6)

	builder := geometry.NewGeomBuilder()
	err := wkb.NewDecoder(&wkb.Options{SwapXY: true}).DecodeGeometry(data, builder)

	assert.Nil(err)
	point := mustPoint(test, builder)
	assert.Equal(-76.6, point.Position().X())
	assert.Equal(38.5, point.Position().Y())
}

func mustPoint(test *testing.T, builder *geometry.GeomBuilder) geometry.Point {
	geom, ok := builder.Geometry()
	if !ok {
		test.Fatal("no geometry built")
	}
	return geom.(geometry.Point)
}

func TestCollectionWindowing(test *testing.T) {
	assert := assert.New(test)

	source := geometry.NewCollection(
		geometry.NewPoint(coords.NewPosition2D(0.0, 0.0)),
		geometry.NewPoint(coords.NewPosition2D(1.0, 1.0)),
		geometry.NewPoint(coords.NewPosition2D(2.0, 2.0)),
		geometry.NewPoint(coords.NewPosition2D(3.0, 3.0)),
		geometry.NewPoint(coords.NewPosition2D(4.0, 4.0)),
		geometry.NewPoint(coords.NewPosition2D(5.0, 5.0)),
	)
	encoder := wkb.NewEncoder(nil)
	source.WriteTo(encoder)

	builder := geometry.NewGeomBuilder()
	err := wkb.NewDecoder(&wkb.Options{ItemOffset: 2, ItemLimit: 3}).DecodeGeometry(
		encoder.Bytes(), builder,
	)

	assert.Nil(err)
	geom, _ := builder.Geometry()
	collection := geom.(geometry.Collection)
	assert.Len(collection.Geometries(), 3)
	assert.Equal(
		2.0, collection.Geometries()[0].(geometry.Point).Position().X(),
	)
	assert.Equal(
		4.0, collection.Geometries()[2].(geometry.Point).Position().X(),
	)
}

func TestMalformedBinaryFails(test *testing.T) {
	assert := assert.New(test)

	pointBytes := wkbBytes(binary.LittleEndian, 1, uint32(1), 1.0, 2.0)

	cases := map[string][]byte{
		"empty input":     {},
		"bad order flag":  wkbBytes(binary.LittleEndian, 9, uint32(1), 1.0, 2.0),
		"bad type code":   wkbBytes(binary.LittleEndian, 1, uint32(99), 1.0, 2.0),
		"truncated point": pointBytes[:12],
		"oversized count": wkbBytes(binary.LittleEndian, 1, uint32(2), uint32(1000000), 1.0, 2.0),
		"trailing bytes":  append(append([]byte(nil), pointBytes...), 0xFF),
		"member kind mismatch": wkbBytes(
			binary.LittleEndian, 1, uint32(4), uint32(1),
			// Member of a MultiPoint must be a point, not a linestring.
			byte(1), uint32(2), uint32(1), 1.0, 2.0,
		),
	}

	for name, data := range cases {
		err := wkb.NewDecoder(nil).DecodeGeometry(data, geometry.NewGeomBuilder())

		assert.NotNil(err, "case should fail: %s", name)
		geoErr := err.(*geoerrors.GeoError)
		assert.True(geoErr.IsType(geoerrors.FormatError), name)
	}
}

func TestDepthGuard(test *testing.T) {
	assert := assert.New(test)

	inner := geometry.Geometry(geometry.NewPoint(coords.NewPosition2D(0.0, 0.0)))
	for index := 0; index < 5; index++ {
		inner = geometry.NewCollection(inner)
	}

	encoder := wkb.NewEncoder(nil)
	inner.WriteTo(encoder)

	err := wkb.NewDecoder(&wkb.Options{MaxDepth: 3}).DecodeGeometry(
		encoder.Bytes(), geometry.NewGeomBuilder(),
	)

	assert.NotNil(err)
}

/*
A producer reporting count -1 makes the encoder stage members in a side buffer
and splice the real count in afterwards. That count must tally whole members,
not the per-point headers a multi geometry writes internally.
*/
func TestUnknownCountCollection(test *testing.T) {
	assert := assert.New(test)

	encoder := wkb.NewEncoder(nil)
	encoder.GeometryCollection(
		func(child content.GeometryContent) {
			child.MultiPoint(
				coords.NewSeries(coords.XY, 1.0, 1.0, 2.0, 2.0, 3.0, 3.0), nil,
			)
			child.Point(coords.NewPosition2D(9.0, 9.0), nil)
		},
		-1,
		nil,
	)

	builder := geometry.NewGeomBuilder()
	err := wkb.NewDecoder(nil).DecodeGeometry(encoder.Bytes(), builder)

	assert.Nil(err)
	geom, ok := builder.Geometry()
	assert.True(ok)

	collection := geom.(geometry.Collection)
	assert.Len(collection.Geometries(), 2)

	multi := collection.Geometries()[0].(geometry.MultiPoint)
	assert.Equal(3, multi.Points().Count())
	assert.Equal(
		9.0, collection.Geometries()[1].(geometry.Point).Position().X(),
	)
}
