// Capability interfaces decoupling geometry/feature producers from format
// specific encoders and decoders.
package content

/*
GeomKind enumerates the geometry variants every format understands. Kind tags
travel with empty geometries too, since an empty geometry still has a type on the
wire in every format.
*/
type GeomKind int

const (
	KindPoint GeomKind = iota
	KindLineString
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindGeometryCollection
)

// String returns the GeoJSON type tag for the kind.
func (kind GeomKind) String() string {
	switch kind {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindPolygon:
		return "Polygon"
	case KindMultiPoint:
		return "MultiPoint"
	case KindMultiLineString:
		return "MultiLineString"
	case KindMultiPolygon:
		return "MultiPolygon"
	case KindGeometryCollection:
		return "GeometryCollection"
	}
	return "Unknown"
}

// KindFromString resolves a GeoJSON type tag back to a kind.
func KindFromString(tag string) (kind GeomKind, ok bool) {
	switch tag {
	case "Point":
		return KindPoint, true
	case "LineString":
		return KindLineString, true
	case "Polygon":
		return KindPolygon, true
	case "MultiPoint":
		return KindMultiPoint, true
	case "MultiLineString":
		return KindMultiLineString, true
	case "MultiPolygon":
		return KindMultiPolygon, true
	case "GeometryCollection":
		return KindGeometryCollection, true
	}
	return KindPoint, false
}
