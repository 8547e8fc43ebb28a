// In-memory geometry and feature model materialized by decoders and replayed by
// encoders.
package geometry

import (
	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
)

/*
Geometry is the polymorphic interface over the supported geometry variants. Values
are immutable once constructed: decoders build them, encoders only read them.

Every variant can replay itself into any content sink through WriteTo, which is how
a model value is encoded to any format without the format knowing the model.
*/
type Geometry interface {
	Kind() content.GeomKind
	Type() coords.CoordType

	// Whether this is the distinct empty terminal.
	IsEmpty() bool

	// The stored bounding box if one was supplied, else a box computed from the
	// coordinate data. ok is false for empty geometries.
	Bounds() (box coords.Box, ok bool)

	WriteTo(sink content.GeometryContent)
}

// Point is a single position.
type Point struct {
	pos coords.Position
}

func NewPoint(pos coords.Position) Point {
	return Point{pos: pos}
}

func (point Point) Kind() content.GeomKind { return content.KindPoint }
func (point Point) Type() coords.CoordType { return point.pos.Type() }
func (point Point) IsEmpty() bool          { return false }

func (point Point) Position() coords.Position { return point.pos }

func (point Point) Bounds() (coords.Box, bool) {
	values := make([]float64, 0, len(point.pos.Values())*2)
	values = append(values, point.pos.Values()...)
	values = append(values, point.pos.Values()...)
	return coords.NewBox(point.pos.Type(), values...), true
}

func (point Point) WriteTo(sink content.GeometryContent) {
	sink.Point(point.pos, &content.GeomOpts{Type: point.pos.Type(), HasType: true})
}

// LineString is a chain of two or more positions.
type LineString struct {
	chain coords.PositionSeries
	box   *coords.Box
}

func NewLineString(chain coords.PositionSeries) LineString {
	return LineString{chain: chain}
}

// NewLineStringWithBounds attaches a precomputed bounding box.
func NewLineStringWithBounds(chain coords.PositionSeries, box coords.Box) LineString {
	return LineString{chain: chain, box: &box}
}

func (line LineString) Kind() content.GeomKind { return content.KindLineString }
func (line LineString) Type() coords.CoordType { return line.chain.Type() }
func (line LineString) IsEmpty() bool          { return false }

func (line LineString) Chain() coords.PositionSeries { return line.chain }

func (line LineString) Bounds() (coords.Box, bool) {
	if line.box != nil {
		return *line.box, true
	}
	return line.chain.Bounds()
}

func (line LineString) WriteTo(sink content.GeometryContent) {
	sink.LineString(line.chain, &content.GeomOpts{
		Type:    line.chain.Type(),
		HasType: true,
		Bounds:  line.box,
	})
}

// Polygon is an exterior ring followed by zero or more interior rings.
type Polygon struct {
	rings []coords.PositionSeries
	box   *coords.Box
}

func NewPolygon(rings ...coords.PositionSeries) Polygon {
	return Polygon{rings: rings}
}

func NewPolygonWithBounds(rings []coords.PositionSeries, box coords.Box) Polygon {
	return Polygon{rings: rings, box: &box}
}

func (polygon Polygon) Kind() content.GeomKind { return content.KindPolygon }
func (polygon Polygon) IsEmpty() bool          { return false }

func (polygon Polygon) Type() coords.CoordType {
	if len(polygon.rings) == 0 {
		return coords.XY
	}
	return polygon.rings[0].Type()
}

func (polygon Polygon) Rings() []coords.PositionSeries { return polygon.rings }

func (polygon Polygon) Bounds() (coords.Box, bool) {
	if polygon.box != nil {
		return *polygon.box, true
	}
	return seriesBounds(polygon.rings)
}

func (polygon Polygon) WriteTo(sink content.GeometryContent) {
	sink.Polygon(polygon.rings, &content.GeomOpts{
		Type:    polygon.Type(),
		HasType: true,
		Bounds:  polygon.box,
	})
}

// MultiPoint is a series of positions, each an independent point.
type MultiPoint struct {
	points coords.PositionSeries
	box    *coords.Box
}

func NewMultiPoint(points coords.PositionSeries) MultiPoint {
	return MultiPoint{points: points}
}

func NewMultiPointWithBounds(points coords.PositionSeries, box coords.Box) MultiPoint {
	return MultiPoint{points: points, box: &box}
}

func (multi MultiPoint) Kind() content.GeomKind { return content.KindMultiPoint }
func (multi MultiPoint) Type() coords.CoordType { return multi.points.Type() }
func (multi MultiPoint) IsEmpty() bool          { return false }

func (multi MultiPoint) Points() coords.PositionSeries { return multi.points }

func (multi MultiPoint) Bounds() (coords.Box, bool) {
	if multi.box != nil {
		return *multi.box, true
	}
	return multi.points.Bounds()
}

func (multi MultiPoint) WriteTo(sink content.GeometryContent) {
	sink.MultiPoint(multi.points, &content.GeomOpts{
		Type:    multi.points.Type(),
		HasType: true,
		Bounds:  multi.box,
	})
}

// MultiLineString is a list of position chains.
type MultiLineString struct {
	lines []coords.PositionSeries
	box   *coords.Box
}

func NewMultiLineString(lines ...coords.PositionSeries) MultiLineString {
	return MultiLineString{lines: lines}
}

func NewMultiLineStringWithBounds(
	lines []coords.PositionSeries, box coords.Box,
) MultiLineString {
	return MultiLineString{lines: lines, box: &box}
}

func (multi MultiLineString) Kind() content.GeomKind {
	return content.KindMultiLineString
}

func (multi MultiLineString) IsEmpty() bool { return false }

func (multi MultiLineString) Type() coords.CoordType {
	if len(multi.lines) == 0 {
		return coords.XY
	}
	return multi.lines[0].Type()
}

func (multi MultiLineString) Lines() []coords.PositionSeries { return multi.lines }

func (multi MultiLineString) Bounds() (coords.Box, bool) {
	if multi.box != nil {
		return *multi.box, true
	}
	return seriesBounds(multi.lines)
}

func (multi MultiLineString) WriteTo(sink content.GeometryContent) {
	sink.MultiLineString(multi.lines, &content.GeomOpts{
		Type:    multi.Type(),
		HasType: true,
		Bounds:  multi.box,
	})
}

// MultiPolygon is a list of polygons, each a list of rings.
type MultiPolygon struct {
	polygons [][]coords.PositionSeries
	box      *coords.Box
}

func NewMultiPolygon(polygons ...[]coords.PositionSeries) MultiPolygon {
	return MultiPolygon{polygons: polygons}
}

func NewMultiPolygonWithBounds(
	polygons [][]coords.PositionSeries, box coords.Box,
) MultiPolygon {
	return MultiPolygon{polygons: polygons, box: &box}
}

func (multi MultiPolygon) Kind() content.GeomKind { return content.KindMultiPolygon }
func (multi MultiPolygon) IsEmpty() bool          { return false }

func (multi MultiPolygon) Type() coords.CoordType {
	if len(multi.polygons) == 0 || len(multi.polygons[0]) == 0 {
		return coords.XY
	}
	return multi.polygons[0][0].Type()
}

func (multi MultiPolygon) Polygons() [][]coords.PositionSeries {
	return multi.polygons
}

func (multi MultiPolygon) Bounds() (coords.Box, bool) {
	if multi.box != nil {
		return *multi.box, true
	}

	var merged *coords.Box
	for _, rings := range multi.polygons {
		if box, ok := seriesBounds(rings); ok {
			merged = mergeBounds(merged, box)
		}
	}
	if merged == nil {
		return coords.Box{}, false
	}
	return *merged, true
}

func (multi MultiPolygon) WriteTo(sink content.GeometryContent) {
	sink.MultiPolygon(multi.polygons, &content.GeomOpts{
		Type:    multi.Type(),
		HasType: true,
		Bounds:  multi.box,
	})
}

// Collection is a recursive list of geometries.
type Collection struct {
	geoms []Geometry
	box   *coords.Box
}

func NewCollection(geoms ...Geometry) Collection {
	return Collection{geoms: geoms}
}

func NewCollectionWithBounds(geoms []Geometry, box coords.Box) Collection {
	return Collection{geoms: geoms, box: &box}
}

func (collection Collection) Kind() content.GeomKind {
	return content.KindGeometryCollection
}

func (collection Collection) IsEmpty() bool { return false }

func (collection Collection) Type() coords.CoordType {
	if len(collection.geoms) == 0 {
		return coords.XY
	}
	return collection.geoms[0].Type()
}

func (collection Collection) Geometries() []Geometry { return collection.geoms }

func (collection Collection) Bounds() (coords.Box, bool) {
	if collection.box != nil {
		return *collection.box, true
	}

	var merged *coords.Box
	for _, geom := range collection.geoms {
		if box, ok := geom.Bounds(); ok {
			merged = mergeBounds(merged, box)
		}
	}
	if merged == nil {
		return coords.Box{}, false
	}
	return *merged, true
}

func (collection Collection) WriteTo(sink content.GeometryContent) {
	sink.GeometryCollection(
		func(child content.GeometryContent) {
			for _, geom := range collection.geoms {
				geom.WriteTo(child)
			}
		},
		len(collection.geoms),
		&content.GeomOpts{Bounds: collection.box},
	)
}

/*
Empty is the distinct terminal state of a geometry with no coordinates, tagged with
the kind it stands in for. It round-trips through every format ("coordinates": [],
TYPE EMPTY, zero-count WKB) and is NOT the same as a zero-length line or ring.
*/
type Empty struct {
	kind content.GeomKind
}

func NewEmpty(kind content.GeomKind) Empty {
	return Empty{kind: kind}
}

func (empty Empty) Kind() content.GeomKind { return empty.kind }
func (empty Empty) Type() coords.CoordType { return coords.XY }
func (empty Empty) IsEmpty() bool          { return true }

func (empty Empty) Bounds() (coords.Box, bool) { return coords.Box{}, false }

func (empty Empty) WriteTo(sink content.GeometryContent) {
	sink.EmptyGeometry(empty.kind, nil)
}

func seriesBounds(group []coords.PositionSeries) (coords.Box, bool) {
	return coords.SeriesBounds(group)
}

func mergeBounds(merged *coords.Box, box coords.Box) *coords.Box {
	if merged == nil {
		return &box
	}
	extended := merged.Extend(box)
	return &extended
}
