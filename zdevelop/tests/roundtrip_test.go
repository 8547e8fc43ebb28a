package tests

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
	"github.com/illuscio-dev/geotools-go/encoding"
	"github.com/illuscio-dev/geotools-go/geometry"
	"github.com/illuscio-dev/geotools-go/mimetype"
	"github.com/illuscio-dev/geotools-go/wkt"
)

// The geometry-capable formats of the conversion matrix.
var geometryFormats = []mimetype.MimeType{
	mimetype.GeoJSON,
	mimetype.WKT,
	mimetype.WKB,
}

// Fixtures expressible in every geometry format. Measured-only (xym) data is
// excluded here because GeoJSON reads 3 values as xyz; it gets its own
// WKT <-> WKB test below.
func matrixFixtures() map[string]geometry.Geometry {
	ring := coords.NewSeries(
		coords.XY, 35.0, 10.0, 45.0, 45.0, 15.0, 40.0, 35.0, 10.0,
	)
	hole := coords.NewSeries(coords.XY, 20.0, 30.0, 35.0, 35.0, 30.0, 20.0, 20.0, 30.0)

	return map[string]geometry.Geometry{
		"point":    geometry.NewPoint(coords.NewPosition2D(30.0, 10.0)),
		"point-3d": geometry.NewPoint(coords.NewPosition(coords.XYZ, 1.0, 2.0, 3.0)),
		"point-4d": geometry.NewPoint(
			coords.NewPosition(coords.XYZM, 10.123, 20.25, -30.95, -1.999),
		),
		"linestring": geometry.NewLineString(
			coords.NewSeries(coords.XY, 30.0, 10.0, 10.0, 30.0, 40.0, 40.0),
		),
		"polygon-with-hole": geometry.NewPolygon(ring, hole),
		"multipoint": geometry.NewMultiPoint(
			coords.NewSeries(coords.XY, 10.0, 40.0, 40.0, 30.0),
		),
		"multilinestring": geometry.NewMultiLineString(
			coords.NewSeries(coords.XY, 10.0, 10.0, 20.0, 20.0),
			coords.NewSeries(coords.XY, 40.0, 40.0, 30.0, 30.0),
		),
		"multipolygon": geometry.NewMultiPolygon(
			[]coords.PositionSeries{ring},
			[]coords.PositionSeries{hole},
		),
		"collection": geometry.NewCollection(
			geometry.NewPoint(coords.NewPosition2D(40.0, 10.0)),
			geometry.NewLineString(
				coords.NewSeries(coords.XY, 10.0, 10.0, 20.0, 20.0),
			),
		),
		"nested-collection": geometry.NewCollection(
			geometry.NewCollection(
				geometry.NewPoint(coords.NewPosition2D(1.0, 2.0)),
			),
		),
		"empty-point":        geometry.NewEmpty(content.KindPoint),
		"empty-linestring":   geometry.NewEmpty(content.KindLineString),
		"empty-multipolygon": geometry.NewEmpty(content.KindMultiPolygon),
	}
}

// canonical renders a geometry as WKT for comparison across format legs.
func canonical(test *testing.T, geom geometry.Geometry) string {
	encoder := wkt.NewEncoder(nil)
	geom.WriteTo(encoder)
	return encoder.String()
}

func TestConversionMatrix(test *testing.T) {
	engine := encoding.NewFormatEngine(false)

	for name, fixture := range matrixFixtures() {
		for _, from := range geometryFormats {
			for _, to := range geometryFormats {
				test.Run(name+"/"+string(from)+"->"+string(to), func(test *testing.T) {
					assert := assert.New(test)

					source := &bytes.Buffer{}
					err := engine.Encode(from, fixture, source, nil)
					assert.Nil(err)

					converted := &bytes.Buffer{}
					err = engine.Stream(
						from, to, bytes.NewReader(source.Bytes()), converted, nil,
					)
					assert.Nil(err)

					builder := geometry.NewGeomBuilder()
					_, err = engine.Decode(
						to, builder, bytes.NewReader(converted.Bytes()), nil,
					)
					assert.Nil(err)

					rebuilt, ok := builder.Geometry()
					assert.True(ok)
					assert.Equal(
						canonical(test, fixture), canonical(test, rebuilt),
					)
				})
			}
		}
	}
}

func TestMeasuredSurvivesWktWkb(test *testing.T) {
	assert := assert.New(test)

	engine := encoding.NewFormatEngine(false)
	fixture := geometry.NewLineString(
		coords.NewSeries(coords.XYM, 0.0, 0.0, 7.5, 1.0, 1.0, 8.5),
	)

	source := &bytes.Buffer{}
	err := engine.Encode(mimetype.WKT, fixture, source, nil)
	assert.Nil(err)
	assert.Equal("LINESTRING M(0 0 7.5,1 1 8.5)", source.String())

	converted := &bytes.Buffer{}
	err = engine.Stream(
		mimetype.WKT, mimetype.WKB, bytes.NewReader(source.Bytes()),
		converted, nil,
	)
	assert.Nil(err)

	back := &bytes.Buffer{}
	err = engine.Stream(
		mimetype.WKB, mimetype.WKT, bytes.NewReader(converted.Bytes()),
		back, nil,
	)
	assert.Nil(err)
	assert.Equal(source.String(), back.String())
}

func TestFeatureCollectionAcrossJsonFormats(test *testing.T) {
	assert := assert.New(test)

	collection := &geometry.FeatureCollection{
		Features: []*geometry.Feature{
			{
				ID:       "a",
				Geometry: geometry.NewPoint(coords.NewPosition2D(1.0, 2.0)),
				Properties: map[string]interface{}{
					"name": "first",
				},
			},
			{
				ID:       "b",
				Geometry: geometry.NewEmpty(content.KindPolygon),
			},
		},
	}

	engine := encoding.NewFormatEngine(false)

	// Collection -> seq -> collection preserves the features.
	seqOut := &bytes.Buffer{}
	err := engine.Encode(mimetype.GeoJSONSeq, collection, seqOut, nil)
	assert.Nil(err)

	builder := geometry.NewFeatureBuilder()
	itemRange, err := engine.Decode(
		mimetype.GeoJSONSeq, builder, bytes.NewReader(seqOut.Bytes()), nil,
	)
	assert.Nil(err)
	assert.Equal(2, itemRange.TotalItems)

	rebuilt, ok := builder.Collection()
	assert.True(ok)
	assert.Len(rebuilt.Features, 2)
	assert.Equal("a", rebuilt.Features[0].ID)
	assert.Equal("first", rebuilt.Features[0].Properties["name"])
	assert.True(rebuilt.Features[1].Geometry.IsEmpty())
}

func TestWindowingAcrossFormats(test *testing.T) {
	assert := assert.New(test)

	members := make([]geometry.Geometry, 6)
	for index := range members {
		members[index] = geometry.NewPoint(
			coords.NewPosition2D(float64(index), float64(index)),
		)
	}
	fixture := geometry.NewCollection(members...)

	engine := encoding.NewFormatEngine(false)
	opts := &encoding.Options{
		Range: encoding.ItemRange{Offset: 2, Limit: 3},
	}

	for _, format := range geometryFormats {
		source := &bytes.Buffer{}
		err := engine.Encode(format, fixture, source, nil)
		assert.Nil(err)

		builder := geometry.NewGeomBuilder()
		itemRange, err := engine.Decode(
			format, builder, bytes.NewReader(source.Bytes()), opts,
		)
		assert.Nil(err, string(format))
		assert.Equal(3, itemRange.TotalItems)

		geom, ok := builder.Geometry()
		assert.True(ok)

		collection := geom.(geometry.Collection)
		assert.Len(collection.Geometries(), 3)
		assert.Equal(
			2.0,
			collection.Geometries()[0].(geometry.Point).Position().X(),
			string(format),
		)
	}
}
