package geometry

import (
	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
)

/*
GeomBuilder is a content sink that materializes model geometries. Point a decoder
at one to turn any supported wire format into Geometry values:

	builder := geometry.NewGeomBuilder()
	err := wkt.NewDecoder(nil).DecodeGeometry(text, builder)
	geom, ok := builder.Geometry()

A builder accumulates every geometry written to it; Geometry() returns the first,
Geometries() all of them.
*/
type GeomBuilder struct {
	geoms []Geometry
}

func NewGeomBuilder() *GeomBuilder {
	return &GeomBuilder{}
}

// Geometry returns the first geometry written to the builder.
func (builder *GeomBuilder) Geometry() (geom Geometry, ok bool) {
	if len(builder.geoms) == 0 {
		return nil, false
	}
	return builder.geoms[0], true
}

// Geometries returns every geometry written to the builder in order.
func (builder *GeomBuilder) Geometries() []Geometry {
	return builder.geoms
}

func (builder *GeomBuilder) Point(pos coords.Position, opts *content.GeomOpts) {
	builder.geoms = append(builder.geoms, NewPoint(pos))
}

func (builder *GeomBuilder) LineString(
	chain coords.PositionSeries, opts *content.GeomOpts,
) {
	if box, ok := optBounds(opts); ok {
		builder.geoms = append(builder.geoms, NewLineStringWithBounds(chain, box))
		return
	}
	builder.geoms = append(builder.geoms, NewLineString(chain))
}

func (builder *GeomBuilder) Polygon(
	rings []coords.PositionSeries, opts *content.GeomOpts,
) {
	if box, ok := optBounds(opts); ok {
		builder.geoms = append(builder.geoms, NewPolygonWithBounds(rings, box))
		return
	}
	builder.geoms = append(builder.geoms, NewPolygon(rings...))
}

func (builder *GeomBuilder) MultiPoint(
	points coords.PositionSeries, opts *content.GeomOpts,
) {
	if box, ok := optBounds(opts); ok {
		builder.geoms = append(builder.geoms, NewMultiPointWithBounds(points, box))
		return
	}
	builder.geoms = append(builder.geoms, NewMultiPoint(points))
}

func (builder *GeomBuilder) MultiLineString(
	lines []coords.PositionSeries, opts *content.GeomOpts,
) {
	if box, ok := optBounds(opts); ok {
		builder.geoms = append(
			builder.geoms, NewMultiLineStringWithBounds(lines, box),
		)
		return
	}
	builder.geoms = append(builder.geoms, NewMultiLineString(lines...))
}

func (builder *GeomBuilder) MultiPolygon(
	polygons [][]coords.PositionSeries, opts *content.GeomOpts,
) {
	if box, ok := optBounds(opts); ok {
		builder.geoms = append(builder.geoms, NewMultiPolygonWithBounds(polygons, box))
		return
	}
	builder.geoms = append(builder.geoms, NewMultiPolygon(polygons...))
}

func (builder *GeomBuilder) EmptyGeometry(
	kind content.GeomKind, opts *content.GeomOpts,
) {
	builder.geoms = append(builder.geoms, NewEmpty(kind))
}

func (builder *GeomBuilder) GeometryCollection(
	write func(content.GeometryContent), count int, opts *content.GeomOpts,
) {
	child := NewGeomBuilder()
	if count > 0 {
		child.geoms = make([]Geometry, 0, count)
	}
	write(child)

	if box, ok := optBounds(opts); ok {
		builder.geoms = append(
			builder.geoms, NewCollectionWithBounds(child.geoms, box),
		)
		return
	}
	builder.geoms = append(builder.geoms, NewCollection(child.geoms...))
}

func optBounds(opts *content.GeomOpts) (box coords.Box, ok bool) {
	if opts == nil || opts.Bounds == nil {
		return coords.Box{}, false
	}
	return *opts.Bounds, true
}

/*
FeatureBuilder is a content sink that materializes Feature and FeatureCollection
values, the feature-level counterpart of GeomBuilder.

A declared feature count on FeatureCollection pre-sizes the backing slice.
*/
type FeatureBuilder struct {
	features   []*Feature
	collection *FeatureCollection
}

func NewFeatureBuilder() *FeatureBuilder {
	return &FeatureBuilder{}
}

// FirstFeature returns the first standalone feature written to the builder.
func (builder *FeatureBuilder) FirstFeature() (feature *Feature, ok bool) {
	if len(builder.features) == 0 {
		return nil, false
	}
	return builder.features[0], true
}

// Features returns every standalone feature written to the builder.
func (builder *FeatureBuilder) Features() []*Feature {
	return builder.features
}

// Collection returns the feature collection written to the builder, if any.
func (builder *FeatureBuilder) Collection() (collection *FeatureCollection, ok bool) {
	if builder.collection == nil {
		return nil, false
	}
	return builder.collection, true
}

func (builder *FeatureBuilder) Feature(
	id interface{},
	geometry func(content.GeometryContent),
	properties map[string]interface{},
	opts *content.FeatureOpts,
) {
	feature := &Feature{ID: id, Properties: properties}

	if geometry != nil {
		geomBuilder := NewGeomBuilder()
		geometry(geomBuilder)
		if geom, ok := geomBuilder.Geometry(); ok {
			feature.Geometry = geom
		}
	}

	if opts != nil {
		feature.Bounds = opts.Bounds
		feature.Custom = opts.Custom
	}

	builder.features = append(builder.features, feature)
}

func (builder *FeatureBuilder) FeatureCollection(
	features func(content.FeatureContent), count int, opts *content.FeatureOpts,
) {
	child := NewFeatureBuilder()
	if count > 0 {
		child.features = make([]*Feature, 0, count)
	}
	features(child)

	collection := &FeatureCollection{Features: child.features}
	if opts != nil {
		collection.Bounds = opts.Bounds
		collection.Custom = opts.Custom
	}

	builder.collection = collection
}
