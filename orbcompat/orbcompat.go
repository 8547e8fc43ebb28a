// Adapters between the content protocol and paulmach/orb planar types.
/*
orb models strictly 2D planar geometry, so these adapters are lossy for
higher-dimensional data: z and m values are flattened away when building orb
values, and everything read from orb comes back as xy. orb also has no empty
point, so an empty point builds to the zero orb.Point.
*/
package orbcompat

import (
	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
)

/*
WriteGeometry replays an orb geometry into a content sink, so orb values
produced by any orb-based pipeline can stream straight into this module's
encoders. An orb.Bound is written as the polygon covering it.
*/
func WriteGeometry(geom orb.Geometry, sink content.GeometryContent) {
	switch value := geom.(type) {
	case orb.Point:
		sink.Point(position(value), nil)

	case orb.MultiPoint:
		if len(value) == 0 {
			sink.EmptyGeometry(content.KindMultiPoint, nil)
			return
		}
		sink.MultiPoint(series(value), nil)

	case orb.LineString:
		if len(value) == 0 {
			sink.EmptyGeometry(content.KindLineString, nil)
			return
		}
		sink.LineString(series(orb.MultiPoint(value)), nil)

	case orb.Ring:
		WriteGeometry(orb.Polygon{value}, sink)

	case orb.Polygon:
		if len(value) == 0 {
			sink.EmptyGeometry(content.KindPolygon, nil)
			return
		}
		sink.Polygon(rings(value), nil)

	case orb.MultiLineString:
		if len(value) == 0 {
			sink.EmptyGeometry(content.KindMultiLineString, nil)
			return
		}
		lines := make([]coords.PositionSeries, 0, len(value))
		for _, line := range value {
			lines = append(lines, series(orb.MultiPoint(line)))
		}
		sink.MultiLineString(lines, nil)

	case orb.MultiPolygon:
		if len(value) == 0 {
			sink.EmptyGeometry(content.KindMultiPolygon, nil)
			return
		}
		polygons := make([][]coords.PositionSeries, 0, len(value))
		for _, polygon := range value {
			polygons = append(polygons, rings(polygon))
		}
		sink.MultiPolygon(polygons, nil)

	case orb.Collection:
		sink.GeometryCollection(
			func(child content.GeometryContent) {
				for _, member := range value {
					WriteGeometry(member, child)
				}
			},
			len(value),
			nil,
		)

	case orb.Bound:
		WriteGeometry(value.ToPolygon(), sink)
	}
}

func position(point orb.Point) coords.Position {
	return coords.NewPosition2D(point[0], point[1])
}

func series(points orb.MultiPoint) coords.PositionSeries {
	flat := make([]float64, 0, len(points)*2)
	for _, point := range points {
		flat = append(flat, point[0], point[1])
	}
	return coords.ViewSeries(coords.XY, flat)
}

func rings(polygon orb.Polygon) []coords.PositionSeries {
	out := make([]coords.PositionSeries, 0, len(polygon))
	for _, ring := range polygon {
		out = append(out, series(orb.MultiPoint(ring)))
	}
	return out
}

/*
GeomBuilder is a content sink assembling orb geometries, the inverse of
WriteGeometry. Decoding any supported format into a GeomBuilder yields an
orb.Geometry ready for orb's planar operations.
*/
type GeomBuilder struct {
	geoms []orb.Geometry
}

func NewGeomBuilder() *GeomBuilder {
	return &GeomBuilder{}
}

// Geometry returns the first geometry written to the builder.
func (builder *GeomBuilder) Geometry() (geom orb.Geometry, ok bool) {
	if len(builder.geoms) == 0 {
		return nil, false
	}
	return builder.geoms[0], true
}

// Geometries returns everything written to the builder.
func (builder *GeomBuilder) Geometries() []orb.Geometry {
	return builder.geoms
}

func (builder *GeomBuilder) Point(pos coords.Position, opts *content.GeomOpts) {
	builder.geoms = append(builder.geoms, orbPoint(pos))
}

func (builder *GeomBuilder) LineString(
	chain coords.PositionSeries, opts *content.GeomOpts,
) {
	builder.geoms = append(builder.geoms, orb.LineString(orbPoints(chain)))
}

func (builder *GeomBuilder) Polygon(
	rings []coords.PositionSeries, opts *content.GeomOpts,
) {
	builder.geoms = append(builder.geoms, orbPolygon(rings))
}

func (builder *GeomBuilder) MultiPoint(
	points coords.PositionSeries, opts *content.GeomOpts,
) {
	builder.geoms = append(builder.geoms, orb.MultiPoint(orbPoints(points)))
}

func (builder *GeomBuilder) MultiLineString(
	lines []coords.PositionSeries, opts *content.GeomOpts,
) {
	multi := make(orb.MultiLineString, 0, len(lines))
	for _, line := range lines {
		multi = append(multi, orb.LineString(orbPoints(line)))
	}
	builder.geoms = append(builder.geoms, multi)
}

func (builder *GeomBuilder) MultiPolygon(
	polygons [][]coords.PositionSeries, opts *content.GeomOpts,
) {
	multi := make(orb.MultiPolygon, 0, len(polygons))
	for _, rings := range polygons {
		multi = append(multi, orbPolygon(rings))
	}
	builder.geoms = append(builder.geoms, multi)
}

// EmptyGeometry builds the zero value of the matching orb type.
func (builder *GeomBuilder) EmptyGeometry(
	kind content.GeomKind, opts *content.GeomOpts,
) {
	switch kind {
	case content.KindPoint:
		builder.geoms = append(builder.geoms, orb.Point{})
	case content.KindLineString:
		builder.geoms = append(builder.geoms, orb.LineString{})
	case content.KindPolygon:
		builder.geoms = append(builder.geoms, orb.Polygon{})
	case content.KindMultiPoint:
		builder.geoms = append(builder.geoms, orb.MultiPoint{})
	case content.KindMultiLineString:
		builder.geoms = append(builder.geoms, orb.MultiLineString{})
	case content.KindMultiPolygon:
		builder.geoms = append(builder.geoms, orb.MultiPolygon{})
	default:
		builder.geoms = append(builder.geoms, orb.Collection{})
	}
}

func (builder *GeomBuilder) GeometryCollection(
	write func(content.GeometryContent), count int, opts *content.GeomOpts,
) {
	child := NewGeomBuilder()
	if count > 0 {
		child.geoms = make([]orb.Geometry, 0, count)
	}
	write(child)
	builder.geoms = append(builder.geoms, orb.Collection(child.geoms))
}

func orbPoint(pos coords.Position) orb.Point {
	return orb.Point{pos.X(), pos.Y()}
}

func orbPoints(series coords.PositionSeries) []orb.Point {
	points := make([]orb.Point, 0, series.Count())
	for posIndex := 0; posIndex < series.Count(); posIndex++ {
		points = append(points, orbPoint(series.Position(posIndex)))
	}
	return points
}

func orbPolygon(rings []coords.PositionSeries) orb.Polygon {
	polygon := make(orb.Polygon, 0, len(rings))
	for _, ring := range rings {
		polygon = append(polygon, orb.Ring(orbPoints(ring)))
	}
	return polygon
}

/*
FeatureBuilder is a content sink assembling orb geojson features, so a decoded
feature document can land directly in orb's geojson types.
*/
type FeatureBuilder struct {
	features []*orbjson.Feature
}

func NewFeatureBuilder() *FeatureBuilder {
	return &FeatureBuilder{}
}

// FirstFeature returns the first feature written to the builder.
func (builder *FeatureBuilder) FirstFeature() (feature *orbjson.Feature, ok bool) {
	if len(builder.features) == 0 {
		return nil, false
	}
	return builder.features[0], true
}

// Collection returns everything written to the builder as an orb geojson
// feature collection.
func (builder *FeatureBuilder) Collection() *orbjson.FeatureCollection {
	collection := orbjson.NewFeatureCollection()
	for _, feature := range builder.features {
		collection.Append(feature)
	}
	return collection
}

func (builder *FeatureBuilder) Feature(
	id interface{},
	geometry func(content.GeometryContent),
	properties map[string]interface{},
	opts *content.FeatureOpts,
) {
	geomBuilder := NewGeomBuilder()
	if geometry != nil {
		geometry(geomBuilder)
	}

	geom, _ := geomBuilder.Geometry()
	feature := orbjson.NewFeature(geom)
	feature.ID = id
	if properties != nil {
		feature.Properties = orbjson.Properties(properties)
	}

	builder.features = append(builder.features, feature)
}

func (builder *FeatureBuilder) FeatureCollection(
	features func(content.FeatureContent), count int, opts *content.FeatureOpts,
) {
	if count > 0 && builder.features == nil {
		builder.features = make([]*orbjson.Feature, 0, count)
	}
	features(builder)
}
