package geojson_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
	"github.com/illuscio-dev/geotools-go/geoerrors"
	"github.com/illuscio-dev/geotools-go/geojson"
	"github.com/illuscio-dev/geotools-go/geometry"
)

func roundTrip(test *testing.T, document string) string {
	encoder := geojson.NewEncoder(nil)
	err := geojson.NewDecoder(nil).Decode([]byte(document), encoder)
	if err != nil {
		test.Fatal(err)
	}
	return encoder.String()
}

func TestLineStringByteIdentical(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"LineString","coordinates":[[30,10],[10,30],[40,40]]}`
	assert.Equal(document, roundTrip(test, document))
}

func TestPointRoundTrip(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"Point","coordinates":[30.5,10.25]}`
	assert.Equal(document, roundTrip(test, document))
}

func TestThreeValuesDecodeAsXYZ(test *testing.T) {
	assert := assert.New(test)

	builder := geometry.NewGeomBuilder()
	err := geojson.NewDecoder(nil).Decode(
		[]byte(`{"type":"Point","coordinates":[1,2,3]}`), builder,
	)

	assert.Nil(err)
	geom, ok := builder.Geometry()
	assert.True(ok)
	assert.Equal(coords.XYZ, geom.Type())

	point := geom.(geometry.Point)
	assert.Equal(3.0, point.Position().Z())
}

func TestFourValuesDecodeAsXYZM(test *testing.T) {
	assert := assert.New(test)

	builder := geometry.NewGeomBuilder()
	err := geojson.NewDecoder(nil).Decode(
		[]byte(`{"type":"Point","coordinates":[1,2,3,4]}`), builder,
	)

	assert.Nil(err)
	geom, _ := builder.Geometry()
	assert.Equal(coords.XYZM, geom.Type())
}

func TestEmptyGeometryRoundTrip(test *testing.T) {
	assert := assert.New(test)

	for _, document := range []string{
		`{"type":"Point","coordinates":[]}`,
		`{"type":"MultiPolygon","coordinates":[]}`,
		`{"type":"GeometryCollection","geometries":[]}`,
	} {
		assert.Equal(document, roundTrip(test, document))
	}
}

func TestEmptyDecodesAsEmptyTerminal(test *testing.T) {
	assert := assert.New(test)

	builder := geometry.NewGeomBuilder()
	err := geojson.NewDecoder(nil).Decode(
		[]byte(`{"type":"LineString","coordinates":[]}`), builder,
	)

	assert.Nil(err)
	geom, ok := builder.Geometry()
	assert.True(ok)
	assert.True(geom.IsEmpty())
	assert.Equal(content.KindLineString, geom.Kind())
}

func TestPolygonRoundTrip(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"Polygon","coordinates":` +
		`[[[35,10],[45,45],[15,40],[10,20],[35,10]],` +
		`[[20,30],[35,35],[30,20],[20,30]]]}`
	assert.Equal(document, roundTrip(test, document))
}

func TestGeometryCollectionRoundTrip(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"GeometryCollection","geometries":[` +
		`{"type":"Point","coordinates":[40,10]},` +
		`{"type":"LineString","coordinates":[[10,10],[20,20]]}]}`
	assert.Equal(document, roundTrip(test, document))
}

func TestBboxArityDispatch(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"Point","bbox":[-10,-10,10,10],"coordinates":[0,0]}`
	assert.Equal(document, roundTrip(test, document))

	// 6 values resolve to an xyz box.
	document = `{"type":"Point","bbox":[0,0,0,1,1,1],"coordinates":[0.5,0.5,0.5]}`
	assert.Equal(document, roundTrip(test, document))
}

func TestBboxWrongArityFails(test *testing.T) {
	assert := assert.New(test)

	err := geojson.NewDecoder(nil).Decode(
		[]byte(`{"type":"Point","bbox":[0,0,1,1,2],"coordinates":[0,0]}`),
		geometry.NewGeomBuilder(),
	)

	assert.NotNil(err)
	geoErr := err.(*geoerrors.GeoError)
	assert.True(geoErr.IsType(geoerrors.FormatError))
}

func TestSwapXYAppliesToPositionsAndBbox(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"Point","bbox":[-77,38,-76,39],"coordinates":[-76.6,38.5]}`

	encoder := geojson.NewEncoder(&geojson.Options{SwapXY: true})
	err := geojson.NewDecoder(nil).Decode([]byte(document), encoder)

	assert.Nil(err)
	assert.Equal(
		`{"type":"Point","bbox":[38,-77,39,-76],"coordinates":[38.5,-76.6]}`,
		encoder.String(),
	)
}

func TestSwapXYRoundTripRestoresOrder(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"Point","coordinates":[-76.6,38.5]}`

	// Swap on decode, swap again on encode.
	encoder := geojson.NewEncoder(&geojson.Options{SwapXY: true})
	err := geojson.NewDecoder(&geojson.Options{SwapXY: true}).Decode(
		[]byte(document), encoder,
	)

	assert.Nil(err)
	assert.Equal(document, encoder.String())
}

func TestIgnoreMeasuredDropsM(test *testing.T) {
	assert := assert.New(test)

	encoder := geojson.NewEncoder(&geojson.Options{IgnoreMeasured: true})
	encoder.Point(coords.NewPosition(coords.XYZM, 1.0, 2.0, 3.0, 4.0), nil)

	assert.Equal(`{"type":"Point","coordinates":[1,2,3]}`, encoder.String())
}

func TestDecimalsTruncation(test *testing.T) {
	assert := assert.New(test)

	encoder := geojson.NewEncoder(&geojson.Options{Decimals: 2})
	encoder.Point(coords.NewPosition2D(10.123456, 20.999999), nil)

	assert.Equal(`{"type":"Point","coordinates":[10.12,21]}`, encoder.String())
}

func TestFeatureRoundTrip(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"Feature","id":"roads.1",` +
		`"geometry":{"type":"Point","coordinates":[1,2]},` +
		`"properties":{"name":"main"}}`
	assert.Equal(document, roundTrip(test, document))
}

func TestFeatureNullGeometry(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"Feature","geometry":null,"properties":{}}`
	assert.Equal(document, roundTrip(test, document))
}

func TestFeatureIDKinds(test *testing.T) {
	assert := assert.New(test)

	builder := geometry.NewFeatureBuilder()
	err := geojson.NewDecoder(nil).Decode(
		[]byte(`{"type":"Feature","id":7,"geometry":null,"properties":null}`),
		builder,
	)

	assert.Nil(err)
	feature, ok := builder.FirstFeature()
	assert.True(ok)
	assert.Equal(float64(7), feature.ID)

	// A boolean id is malformed.
	err = geojson.NewDecoder(nil).Decode(
		[]byte(`{"type":"Feature","id":true,"geometry":null,"properties":null}`),
		geometry.NewFeatureBuilder(),
	)
	assert.NotNil(err)
}

func TestForeignMembersCarried(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"Feature","geometry":null,"properties":{},` +
		`"style":{"stroke":"red"},"title":"zone"}`
	assert.Equal(document, roundTrip(test, document))
}

func TestForeignMembersIgnored(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"Feature","geometry":null,"properties":{},"title":"zone"}`

	encoder := geojson.NewEncoder(nil)
	err := geojson.NewDecoder(&geojson.Options{IgnoreForeignMembers: true}).Decode(
		[]byte(document), encoder,
	)

	assert.Nil(err)
	assert.Equal(
		`{"type":"Feature","geometry":null,"properties":{}}`, encoder.String(),
	)
}

func TestFeatureCollectionWindowing(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"FeatureCollection","features":[` +
		`{"type":"Feature","id":0,"geometry":null,"properties":{}},` +
		`{"type":"Feature","id":1,"geometry":null,"properties":{}},` +
		`{"type":"Feature","id":2,"geometry":null,"properties":{}},` +
		`{"type":"Feature","id":3,"geometry":null,"properties":{}},` +
		`{"type":"Feature","id":4,"geometry":null,"properties":{}},` +
		`{"type":"Feature","id":5,"geometry":null,"properties":{}}]}`

	builder := geometry.NewFeatureBuilder()
	err := geojson.NewDecoder(&geojson.Options{ItemOffset: 2, ItemLimit: 3}).Decode(
		[]byte(document), builder,
	)

	assert.Nil(err)
	features := builder.Features()
	assert.Len(features, 3)
	assert.Equal(float64(2), features[0].ID)
	assert.Equal(float64(4), features[2].ID)
}

func TestWindowingPastEndYieldsEmpty(test *testing.T) {
	assert := assert.New(test)

	document := `{"type":"FeatureCollection","features":[` +
		`{"type":"Feature","id":0,"geometry":null,"properties":{}}]}`

	builder := geometry.NewFeatureBuilder()
	err := geojson.NewDecoder(&geojson.Options{ItemOffset: 10}).Decode(
		[]byte(document), builder,
	)

	assert.Nil(err)
	collection, ok := builder.Collection()
	assert.True(ok)
	assert.Len(collection.Features, 0)
}

func TestNestedCollectionDepthGuard(test *testing.T) {
	assert := assert.New(test)

	inner := `{"type":"Point","coordinates":[0,0]}`
	for index := 0; index < 5; index++ {
		inner = `{"type":"GeometryCollection","geometries":[` + inner + `]}`
	}

	err := geojson.NewDecoder(&geojson.Options{MaxDepth: 3}).Decode(
		[]byte(inner), geometry.NewGeomBuilder(),
	)

	assert.NotNil(err)
	geoErr := err.(*geoerrors.GeoError)
	assert.True(geoErr.IsType(geoerrors.FormatError))
}

func TestMalformedDocumentsFail(test *testing.T) {
	assert := assert.New(test)

	for _, document := range []string{
		`{"type":"Point","coordinates":`,
		`{"coordinates":[0,0]}`,
		`{"type":"Pointy","coordinates":[0,0]}`,
		`{"type":"Point","coordinates":"0,0"}`,
		`{"type":"LineString","coordinates":[[0,0],[1,1,1]]}`,
		`{"type":"Point","coordinates":[0]}`,
		`[1,2,3]`,
		// Multi-document input belongs to DecodeSeq; Decode must not
		// silently drop everything after the first value.
		`{"type":"Point","coordinates":[0,0]}` + "\n" +
			`{"type":"Point","coordinates":[1,1]}`,
	} {
		err := geojson.NewDecoder(nil).Decode(
			[]byte(document), geometry.NewGeomBuilder(),
		)

		assert.NotNil(err, "document should fail: %s", document)
		geoErr := err.(*geoerrors.GeoError)
		assert.True(geoErr.IsType(geoerrors.FormatError))
	}
}

func TestGeometryDocNeedsGeometrySink(test *testing.T) {
	assert := assert.New(test)

	err := geojson.NewDecoder(nil).Decode(
		[]byte(`{"type":"Point","coordinates":[0,0]}`),
		geometry.NewFeatureBuilder(),
	)

	assert.NotNil(err)
}

func TestDecodeSeq(test *testing.T) {
	assert := assert.New(test)

	data := "\x1e{\"type\":\"Feature\",\"id\":1,\"geometry\":null,\"properties\":{}}\n" +
		"\n" +
		"{\"type\":\"Feature\",\"id\":2,\"geometry\":null,\"properties\":{}}\r\n"

	builder := geometry.NewFeatureBuilder()
	err := geojson.NewDecoder(nil).DecodeSeq([]byte(data), builder)

	assert.Nil(err)
	features := builder.Features()
	assert.Len(features, 2)
	assert.Equal(float64(1), features[0].ID)
	assert.Equal(float64(2), features[1].ID)
}

func TestSeqEncoder(test *testing.T) {
	assert := assert.New(test)

	encoder := geojson.NewSeqEncoder(nil)
	collection := &geometry.FeatureCollection{
		Features: []*geometry.Feature{
			{ID: float64(1)},
			{ID: float64(2)},
		},
	}
	collection.WriteTo(encoder)

	assert.Equal(
		`{"type":"Feature","id":1,"geometry":null,"properties":{}}`+"\n"+
			`{"type":"Feature","id":2,"geometry":null,"properties":{}}`+"\n",
		encoder.String(),
	)
}
