package encoding

import (
	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
	"github.com/illuscio-dev/geotools-go/geoerrors"
)

/*
tallySink wraps the caller's sink for one decode pass, recording the item count
delivered to the first top-level collection call so Decode can report it in the
returned ItemRange. Single-document decodes never hit a collection and leave the
total at -1.

The wrapper claims both content capabilities; a call landing on a capability the
wrapped sink lacks raises a TypeCastError, which the decode boundary rewraps
into the FormatError the caller sees.
*/
type tallySink struct {
	geoSink  content.GeometryContent
	featSink content.FeatureContent

	total   int
	topSeen bool
}

func newTallySink(sink interface{}) *tallySink {
	tallied := &tallySink{total: -1}
	tallied.geoSink, _ = sink.(content.GeometryContent)
	tallied.featSink, _ = sink.(content.FeatureContent)
	return tallied
}

func (tallied *tallySink) geometry() content.GeometryContent {
	if tallied.geoSink == nil {
		geoerrors.TypeCastError.Panic(
			"receiver does not accept geometry content", nil, nil,
		)
	}
	return tallied.geoSink
}

func (tallied *tallySink) features() content.FeatureContent {
	if tallied.featSink == nil {
		geoerrors.TypeCastError.Panic(
			"receiver does not accept feature content", nil, nil,
		)
	}
	return tallied.featSink
}

func (tallied *tallySink) record(count int) {
	if tallied.topSeen {
		return
	}
	tallied.topSeen = true
	tallied.total = count
}

func (tallied *tallySink) Point(pos coords.Position, opts *content.GeomOpts) {
	tallied.geometry().Point(pos, opts)
}

func (tallied *tallySink) LineString(
	chain coords.PositionSeries, opts *content.GeomOpts,
) {
	tallied.geometry().LineString(chain, opts)
}

func (tallied *tallySink) Polygon(
	rings []coords.PositionSeries, opts *content.GeomOpts,
) {
	tallied.geometry().Polygon(rings, opts)
}

func (tallied *tallySink) MultiPoint(
	points coords.PositionSeries, opts *content.GeomOpts,
) {
	tallied.geometry().MultiPoint(points, opts)
}

func (tallied *tallySink) MultiLineString(
	lines []coords.PositionSeries, opts *content.GeomOpts,
) {
	tallied.geometry().MultiLineString(lines, opts)
}

func (tallied *tallySink) MultiPolygon(
	polygons [][]coords.PositionSeries, opts *content.GeomOpts,
) {
	tallied.geometry().MultiPolygon(polygons, opts)
}

func (tallied *tallySink) EmptyGeometry(
	kind content.GeomKind, opts *content.GeomOpts,
) {
	tallied.geometry().EmptyGeometry(kind, opts)
}

func (tallied *tallySink) GeometryCollection(
	write func(content.GeometryContent), count int, opts *content.GeomOpts,
) {
	inner := tallied.geometry()
	tallied.record(count)
	inner.GeometryCollection(write, count, opts)
}

func (tallied *tallySink) Feature(
	id interface{},
	geometry func(content.GeometryContent),
	properties map[string]interface{},
	opts *content.FeatureOpts,
) {
	tallied.features().Feature(id, geometry, properties, opts)
}

func (tallied *tallySink) FeatureCollection(
	features func(content.FeatureContent), count int, opts *content.FeatureOpts,
) {
	inner := tallied.features()
	tallied.record(count)
	inner.FeatureCollection(features, count, opts)
}
