// Enumeration-like type for geospatial content mimetypes.
package mimetype

import (
	"strings"
)

/*
MimeType is used to enumerate the wire formats the codec engine speaks. Non
default MimeTypes can be used by wrapping a custom string:

	MimeType("application/gml+xml")
*/
type MimeType string

const (
	GeoJSON    = MimeType("application/geo+json")
	GeoJSONSeq = MimeType("application/geo+json-seq")
	WKT        = MimeType("text/wkt")
	WKB        = MimeType("application/wkb")
	// UNKNOWN is used when the incoming string is blank.
	UNKNOWN = MimeType("")
)

// Aliases seen in the wild for each default mimetype, matched after
// normalization. Longer aliases are listed first so "geo+json-seq" is never
// claimed by "geo+json".
var aliasTable = []struct {
	suffix   string
	mimeType MimeType
}{
	{"geo+json-seq", GeoJSONSeq},
	{"geojsonl", GeoJSONSeq},
	{"json-seq", GeoJSONSeq},
	{"ndjson", GeoJSONSeq},
	{"geo+json", GeoJSON},
	{"geojson", GeoJSON},
	{"json", GeoJSON},
	{"wkt", WKT},
	{"wkb", WKB},
}

// Interface for object used to read headers such as http.Request.Header or
// http.Response.Header.
type headerFetcher interface {
	Get(string) string
}

// Extract content type from a message / request header. Media-type parameters
// after a ";" (such as charset) are ignored.
func FromHeader(headers headerFetcher) MimeType {
	return FromString(headers.Get("Content-Type"))
}

/*
Convert MimeType from a string. Ignores case and tolerates the aliases each
format travels under. For instance, all of the following yield
"mimetype.GeoJSON":

• "application/geo+json"

• "application/vnd.geo+json"

• "application/json"

• "geojson"

• "json"
*/
func FromString(incoming string) MimeType {
	incoming = strings.ToLower(strings.TrimSpace(incoming))
	if semicolon := strings.IndexByte(incoming, ';'); semicolon >= 0 {
		incoming = strings.TrimSpace(incoming[:semicolon])
	}

	if incoming == "" {
		return UNKNOWN
	}

	for _, alias := range aliasTable {
		if strings.HasSuffix(incoming, alias.suffix) {
			return alias.mimeType
		}
	}

	return MimeType(incoming)
}
