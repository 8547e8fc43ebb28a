package geometry_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
	"github.com/illuscio-dev/geotools-go/geometry"
)

func TestBuilderPoint(test *testing.T) {
	assert := assert.New(test)

	builder := geometry.NewGeomBuilder()
	builder.Point(coords.NewPosition2D(30.0, 10.0), nil)

	geom, ok := builder.Geometry()
	assert.True(ok)
	assert.Equal(content.KindPoint, geom.Kind())

	point := geom.(geometry.Point)
	assert.Equal(30.0, point.Position().X())
	assert.Equal(10.0, point.Position().Y())
}

func TestBuilderRoundTrip(test *testing.T) {
	assert := assert.New(test)

	source := geometry.NewMultiLineString(
		coords.NewSeries(coords.XY, 0.0, 0.0, 1.0, 1.0),
		coords.NewSeries(coords.XY, 2.0, 2.0, 3.0, 3.0),
	)

	builder := geometry.NewGeomBuilder()
	source.WriteTo(builder)

	rebuilt, ok := builder.Geometry()
	assert.True(ok)

	multi := rebuilt.(geometry.MultiLineString)
	assert.Len(multi.Lines(), 2)
	assert.Equal(source.Lines()[1].Values(), multi.Lines()[1].Values())
}

func TestBuilderCollection(test *testing.T) {
	assert := assert.New(test)

	source := geometry.NewCollection(
		geometry.NewPoint(coords.NewPosition2D(1.0, 2.0)),
		geometry.NewLineString(coords.NewSeries(coords.XY, 0.0, 0.0, 5.0, 5.0)),
	)

	builder := geometry.NewGeomBuilder()
	source.WriteTo(builder)

	rebuilt, ok := builder.Geometry()
	assert.True(ok)

	collection := rebuilt.(geometry.Collection)
	assert.Len(collection.Geometries(), 2)
	assert.Equal(content.KindPoint, collection.Geometries()[0].Kind())
	assert.Equal(content.KindLineString, collection.Geometries()[1].Kind())
}

func TestBuilderEmpty(test *testing.T) {
	assert := assert.New(test)

	builder := geometry.NewGeomBuilder()
	builder.EmptyGeometry(content.KindMultiPolygon, nil)

	geom, ok := builder.Geometry()
	assert.True(ok)
	assert.True(geom.IsEmpty())
	assert.Equal(content.KindMultiPolygon, geom.Kind())
}

func TestGeometryBounds(test *testing.T) {
	assert := assert.New(test)

	line := geometry.NewLineString(
		coords.NewSeries(coords.XY, 30.0, 10.0, 10.0, 30.0, 40.0, 40.0),
	)

	box, ok := line.Bounds()
	assert.True(ok)
	assert.Equal([]float64{10.0, 10.0, 40.0, 40.0}, box.Values())

	_, ok = geometry.NewEmpty(content.KindPolygon).Bounds()
	assert.False(ok)
}

func TestCollectionBoundsMergeMembers(test *testing.T) {
	assert := assert.New(test)

	collection := geometry.NewCollection(
		geometry.NewPoint(coords.NewPosition2D(-5.0, 0.0)),
		geometry.NewPoint(coords.NewPosition2D(5.0, 10.0)),
	)

	box, ok := collection.Bounds()
	assert.True(ok)
	assert.Equal([]float64{-5.0, 0.0, 5.0, 10.0}, box.Values())
}

func TestExplicitBoundsWin(test *testing.T) {
	assert := assert.New(test)

	declared := coords.NewBox(coords.XY, 0.0, 0.0, 100.0, 100.0)
	line := geometry.NewLineStringWithBounds(
		coords.NewSeries(coords.XY, 1.0, 1.0, 2.0, 2.0), declared,
	)

	box, ok := line.Bounds()
	assert.True(ok)
	assert.Equal(declared.Values(), box.Values())
}

func TestFeatureBuilderRoundTrip(test *testing.T) {
	assert := assert.New(test)

	source := &geometry.FeatureCollection{
		Features: []*geometry.Feature{
			{
				ID:       "alpha",
				Geometry: geometry.NewPoint(coords.NewPosition2D(1.0, 2.0)),
				Properties: map[string]interface{}{
					"name": "first",
				},
			},
			{
				ID:       float64(2),
				Geometry: geometry.NewEmpty(content.KindLineString),
			},
		},
	}

	builder := geometry.NewFeatureBuilder()
	source.WriteTo(builder)

	collection, ok := builder.Collection()
	assert.True(ok)
	assert.Len(collection.Features, 2)

	first := collection.Features[0]
	assert.Equal("alpha", first.ID)
	assert.Equal("first", first.Properties["name"])
	assert.Equal(content.KindPoint, first.Geometry.Kind())

	second := collection.Features[1]
	assert.Equal(float64(2), second.ID)
	assert.True(second.Geometry.IsEmpty())
}

func TestFeatureBuilderSingleFeature(test *testing.T) {
	assert := assert.New(test)

	source := &geometry.Feature{
		Geometry: geometry.NewPoint(coords.NewPosition2D(0.0, 0.0)),
	}

	builder := geometry.NewFeatureBuilder()
	source.WriteTo(builder)

	feature, ok := builder.FirstFeature()
	assert.True(ok)
	assert.Nil(feature.ID)

	// No collection call was made, so there is no collection.
	_, ok = builder.Collection()
	assert.False(ok)
}
