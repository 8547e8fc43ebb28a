package content

import (
	"github.com/illuscio-dev/geotools-go/coords"
)

/*
GeomOpts carries the optional arguments of a simple geometry call. A nil *GeomOpts
is valid everywhere one is accepted and means "all defaults".

Type is only honored when HasType is set; otherwise the layout is inferred from the
coordinate data itself (see coords.TypeForDim for the inference rules).
*/
type GeomOpts struct {
	// Name of the geometry when written as a named member (a feature's non-default
	// geometry, for instance). Empty means the format's default placement.
	Name string

	// Explicit coordinate layout of the data.
	Type    coords.CoordType
	HasType bool

	// Precomputed bounding box to write alongside the geometry.
	Bounds *coords.Box
}

// FeatureOpts carries the optional arguments of a feature or feature collection
// call. A nil *FeatureOpts means "all defaults".
type FeatureOpts struct {
	// Bounding box metadata for the feature or collection.
	Bounds *coords.Box

	// Foreign members: top level keys outside the core schema, passed through
	// untouched by formats that can carry them.
	Custom map[string]interface{}
}

/*
CoordinateContent is the capability to receive raw coordinate data.

A single Position call writes exactly one position's worth of values in coordinate
order. Positions writes N positions from one flat buffer without requiring N
separate calls; this is the bulk path every thoughput-sensitive producer should
prefer.
*/
type CoordinateContent interface {
	Position(pos coords.Position)
	Positions(series coords.PositionSeries)
	Bounds(box coords.Box)
}

// PropertyContent is the capability to receive named property values. Values are
// JSON-like: nil, bool, numbers, strings, []interface{} and
// map[string]interface{} nestings thereof.
type PropertyContent interface {
	Property(name string, value interface{})
	Properties(name string, attrs map[string]interface{})
}

/*
SimpleGeometryContent is the capability to receive non-recursive geometries.

Callers supply all coordinates of a geometry in a single call: a polygon ring is
one series, not an incremental position-by-position protocol. This lets a writer
flush one buffer per geometry without intermediate state machines.

EmptyGeometry writes the distinct empty terminal for the given kind; it is not the
same as a zero-length ring or line.
*/
type SimpleGeometryContent interface {
	Point(pos coords.Position, opts *GeomOpts)
	LineString(chain coords.PositionSeries, opts *GeomOpts)
	Polygon(rings []coords.PositionSeries, opts *GeomOpts)
	MultiPoint(points coords.PositionSeries, opts *GeomOpts)
	MultiLineString(lines []coords.PositionSeries, opts *GeomOpts)
	MultiPolygon(polygons [][]coords.PositionSeries, opts *GeomOpts)
	EmptyGeometry(kind GeomKind, opts *GeomOpts)
}

/*
GeometryContent adds recursive geometry collections to SimpleGeometryContent.

The write callback is invoked synchronously with a sink for the collection's
children; each child is emitted through that sink with the same protocol,
recursively. Count is the number of children the callback will write, or -1 when
unknown. A producer that passes a count differing from the children actually
written violates the caller contract; consumers are not required to detect it.
*/
type GeometryContent interface {
	SimpleGeometryContent
	GeometryCollection(write func(GeometryContent), count int, opts *GeomOpts)
}

/*
FeatureContent is the capability to receive features and feature collections, with
the same synchronous callback recursion as GeometryContent.

Feature id may be a string, an integer, or nil for no id. A nil geometry callback
means the feature has no geometry. Properties may be nil for an empty property map.

FeatureCollection's count is the number of features the callback will write, or -1
when unknown; decoders forward a declared count so builders can pre-size.
*/
type FeatureContent interface {
	Feature(
		id interface{},
		geometry func(GeometryContent),
		properties map[string]interface{},
		opts *FeatureOpts,
	)
	FeatureCollection(features func(FeatureContent), count int, opts *FeatureOpts)
}
