package geojson

import (
	"reflect"

	"github.com/ugorji/go/codec"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
	"github.com/illuscio-dev/geotools-go/geoerrors"
)

/*
Decoder walks a parsed GeoJSON value tree and drives a content sink through the
content protocol. It carries no tokenizer of its own: the document is parsed into a
plain value tree first (maps, slices, numbers, strings), then dispatched on the
"type" member.

Dimension is inferred from coordinate array length: 2 values decode as xy, 3 as xyz
(never xym) and 4 as xyzm. This asymmetry with formats that tag measures explicitly
is documented wire behavior, preserved on purpose.

All failures surface as a single geoerrors.FormatError; value-shape failures inside
syntactically valid JSON (a string where an array belongs) are raised internally as
TypeCastError and rewrapped at the decode boundary, so callers need exactly one
catch site.
*/
type Decoder struct {
	opts   *Options
	handle *codec.JsonHandle
}

func NewDecoder(opts *Options) *Decoder {
	handle := &codec.JsonHandle{}
	handle.MapType = reflect.TypeOf(map[string]interface{}(nil))
	// JSON numbers are doubles; decode them uniformly instead of int64/uint64
	// for integral literals.
	handle.PreferFloat = true

	return &Decoder{opts: opts.orDefault(), handle: handle}
}

/*
Decode dispatches on the document's "type" member: geometry documents require sink
to implement content.GeometryContent, Feature and FeatureCollection documents
require content.FeatureContent. A sink lacking the needed capability is reported as
a FormatError.
*/
func (decoder *Decoder) Decode(data []byte, sink interface{}) (err error) {
	defer geoerrors.Capture(&err)

	node := decoder.parse(data)
	tag := stringField(node, "type")

	switch tag {
	case "Feature":
		decoder.decodeFeatureNode(node, featureSink(sink))
	case "FeatureCollection":
		decoder.decodeCollectionNode(node, featureSink(sink))
	default:
		geomSink, ok := sink.(content.GeometryContent)
		if !ok {
			geoerrors.FormatError.Panic(
				"sink does not accept geometry content",
				map[string]interface{}{"type": tag},
				nil,
			)
		}
		decoder.decodeGeometryNode(node, geomSink, 0)
	}

	return nil
}

// DecodeGeometry decodes a single GeoJSON geometry document into sink.
func (decoder *Decoder) DecodeGeometry(
	data []byte, sink content.GeometryContent,
) (err error) {
	defer geoerrors.Capture(&err)
	decoder.decodeGeometryNode(decoder.parse(data), sink, 0)
	return nil
}

// DecodeFeature decodes a single GeoJSON Feature document into sink.
func (decoder *Decoder) DecodeFeature(
	data []byte, sink content.FeatureContent,
) (err error) {
	defer geoerrors.Capture(&err)
	decoder.decodeFeatureNode(decoder.parse(data), sink)
	return nil
}

// DecodeCollection decodes a GeoJSON FeatureCollection document into sink,
// honoring the ItemOffset/ItemLimit window.
func (decoder *Decoder) DecodeCollection(
	data []byte, sink content.FeatureContent,
) (err error) {
	defer geoerrors.Capture(&err)
	decoder.decodeCollectionNode(decoder.parse(data), sink)
	return nil
}

func featureSink(sink interface{}) content.FeatureContent {
	featureContent, ok := sink.(content.FeatureContent)
	if !ok {
		geoerrors.FormatError.Panic(
			"sink does not accept feature content", nil, nil,
		)
	}
	return featureContent
}

// parse unmarshals the document into a value tree, rewrapping parser errors.
// Anything but whitespace after the first value is an error: a multi-document
// input (line-delimited features) must go through DecodeSeq, not be silently
// truncated to its first document.
func (decoder *Decoder) parse(data []byte) map[string]interface{} {
	var tree interface{}
	jsonDecoder := codec.NewDecoderBytes(data, decoder.handle)
	if err := jsonDecoder.Decode(&tree); err != nil {
		geoerrors.FormatError.Panic("malformed JSON document", nil, err)
	}

	for _, trailing := range data[jsonDecoder.NumBytesRead():] {
		switch trailing {
		case ' ', '\t', '\n', '\r':
		default:
			geoerrors.FormatError.Panic(
				"trailing data after JSON document", nil, nil,
			)
		}
	}

	return asMap(tree, "document")
}

// ---------------------------------------------------------------------------
// Geometry decoding

func (decoder *Decoder) decodeGeometryNode(
	node map[string]interface{}, sink content.GeometryContent, depth int,
) {
	tag := stringField(node, "type")
	kind, known := content.KindFromString(tag)
	if !known {
		geoerrors.FormatError.Panic(
			"unrecognized geometry type",
			map[string]interface{}{"type": tag},
			nil,
		)
	}

	opts := &content.GeomOpts{Bounds: decoder.boxField(node)}

	if kind == content.KindGeometryCollection {
		decoder.decodeCollectionGeometry(node, sink, depth, opts)
		return
	}

	elements := asArray(node["coordinates"], "coordinates")

	// The empty terminal must be recognized before dimension inference: an empty
	// array has no first element to infer from.
	if len(elements) == 0 {
		sink.EmptyGeometry(kind, opts)
		return
	}

	switch kind {
	case content.KindPoint:
		sink.Point(decoder.position(elements), opts)
	case content.KindLineString:
		sink.LineString(decoder.series(elements), opts)
	case content.KindMultiPoint:
		sink.MultiPoint(decoder.series(elements), opts)
	case content.KindPolygon:
		sink.Polygon(decoder.seriesGroup(elements), opts)
	case content.KindMultiLineString:
		sink.MultiLineString(decoder.seriesGroup(elements), opts)
	case content.KindMultiPolygon:
		polygons := make([][]coords.PositionSeries, 0, len(elements))
		for _, element := range elements {
			polygons = append(
				polygons,
				decoder.seriesGroup(asArray(element, "polygon")),
			)
		}
		sink.MultiPolygon(polygons, opts)
	}
}

func (decoder *Decoder) decodeCollectionGeometry(
	node map[string]interface{},
	sink content.GeometryContent,
	depth int,
	opts *content.GeomOpts,
) {
	if depth >= decoder.opts.maxDepth() {
		geoerrors.FormatError.Panic(
			"geometry collections nested too deeply",
			map[string]interface{}{"maxDepth": decoder.opts.maxDepth()},
			nil,
		)
	}

	elements := asArray(node["geometries"], "geometries")
	if len(elements) == 0 {
		sink.EmptyGeometry(content.KindGeometryCollection, opts)
		return
	}

	// Windowing applies to the document's own collection, never to nested
	// members.
	window := elements
	if depth == 0 {
		window = windowItems(elements, decoder.opts.ItemOffset, decoder.opts.ItemLimit)
	}
	sink.GeometryCollection(
		func(child content.GeometryContent) {
			for _, element := range window {
				decoder.decodeGeometryNode(
					asMap(element, "geometry"), child, depth+1,
				)
			}
		},
		len(window),
		opts,
	)
}

// position converts a bare value array into a Position, inferring layout from the
// value count.
func (decoder *Decoder) position(elements []interface{}) coords.Position {
	coordType, ok := coords.TypeForDim(len(elements))
	if !ok {
		geoerrors.FormatError.Panic(
			"coordinate position must hold 2 to 4 values",
			map[string]interface{}{"valueCount": len(elements)},
			nil,
		)
	}

	values := make([]float64, len(elements))
	for index, element := range elements {
		values[index] = asFloat(element, "coordinate value")
	}
	if decoder.opts.SwapXY {
		values[0], values[1] = values[1], values[0]
	}

	return coords.NewPosition(coordType, values...)
}

// series converts a one-dimensional array of position arrays into a flat series,
// inferring layout from the first position and requiring every other position to
// match it.
func (decoder *Decoder) series(elements []interface{}) coords.PositionSeries {
	first := asArray(elements[0], "coordinate position")
	coordType, ok := coords.TypeForDim(len(first))
	if !ok {
		geoerrors.FormatError.Panic(
			"coordinate position must hold 2 to 4 values",
			map[string]interface{}{"valueCount": len(first)},
			nil,
		)
	}

	dim := coordType.Dim()
	flat := make([]float64, 0, len(elements)*dim)

	for _, element := range elements {
		position := asArray(element, "coordinate position")
		if len(position) != dim {
			geoerrors.FormatError.Panic(
				"coordinate position value count does not match first position",
				map[string]interface{}{
					"expected": dim,
					"got":      len(position),
				},
				nil,
			)
		}
		for _, value := range position {
			flat = append(flat, asFloat(value, "coordinate value"))
		}
	}

	if decoder.opts.SwapXY {
		for start := 0; start < len(flat); start += dim {
			flat[start], flat[start+1] = flat[start+1], flat[start]
		}
	}

	if decoder.opts.SinglePrecision {
		return coords.NewSeries32(coordType, flat...)
	}
	// The slice was built here and never escapes, so the no-copy view is safe.
	return coords.ViewSeries(coordType, flat)
}

func (decoder *Decoder) seriesGroup(elements []interface{}) []coords.PositionSeries {
	group := make([]coords.PositionSeries, 0, len(elements))
	for _, element := range elements {
		ring := asArray(element, "coordinate ring")
		if len(ring) == 0 {
			group = append(group, coords.NewSeries(coords.XY))
			continue
		}
		group = append(group, decoder.series(ring))
	}
	return group
}

// boxField reads an optional "bbox" member, dispatching on arity (4, 6 or 8) and
// applying the axis swap to both corners.
func (decoder *Decoder) boxField(node map[string]interface{}) *coords.Box {
	raw, present := node["bbox"]
	if !present || raw == nil {
		return nil
	}

	elements := asArray(raw, "bbox")
	values := make([]float64, len(elements))
	for index, element := range elements {
		values[index] = asFloat(element, "bbox value")
	}

	box, ok := coords.BoxFromValues(values)
	if !ok {
		geoerrors.FormatError.Panic(
			"bbox array must hold 4, 6 or 8 values",
			map[string]interface{}{"valueCount": len(values)},
			nil,
		)
	}

	if decoder.opts.SwapXY {
		box = box.SwapXY()
	}
	return &box
}

// ---------------------------------------------------------------------------
// Feature decoding

var featureReserved = map[string]bool{
	"type":       true,
	"id":         true,
	"bbox":       true,
	"geometry":   true,
	"properties": true,
}

var collectionReserved = map[string]bool{
	"type":     true,
	"bbox":     true,
	"features": true,
}

func (decoder *Decoder) decodeFeatureNode(
	node map[string]interface{}, sink content.FeatureContent,
) {
	if tag := stringField(node, "type"); tag != "Feature" {
		geoerrors.FormatError.Panic(
			"expected a Feature document",
			map[string]interface{}{"type": tag},
			nil,
		)
	}

	id := decoder.featureID(node)

	var geometry func(content.GeometryContent)
	if geomRaw, present := node["geometry"]; present && geomRaw != nil {
		geomNode := asMap(geomRaw, "geometry")
		geometry = func(child content.GeometryContent) {
			decoder.decodeGeometryNode(geomNode, child, 0)
		}
	}

	var properties map[string]interface{}
	if propsRaw, present := node["properties"]; present && propsRaw != nil {
		// Properties pass through untouched; no coordinate handling applies.
		properties = asMap(propsRaw, "properties")
	}

	opts := decoder.featureOpts(node, featureReserved)
	sink.Feature(id, geometry, properties, opts)
}

func (decoder *Decoder) decodeCollectionNode(
	node map[string]interface{}, sink content.FeatureContent,
) {
	if tag := stringField(node, "type"); tag != "FeatureCollection" {
		geoerrors.FormatError.Panic(
			"expected a FeatureCollection document",
			map[string]interface{}{"type": tag},
			nil,
		)
	}

	elements := asArray(node["features"], "features")
	window := windowItems(elements, decoder.opts.ItemOffset, decoder.opts.ItemLimit)

	opts := decoder.featureOpts(node, collectionReserved)
	sink.FeatureCollection(
		func(child content.FeatureContent) {
			for _, element := range window {
				decoder.decodeFeatureNode(asMap(element, "feature"), child)
			}
		},
		len(window),
		opts,
	)
}

// featureID accepts a string or numeric id; any other JSON type is malformed.
func (decoder *Decoder) featureID(node map[string]interface{}) interface{} {
	id, present := node["id"]
	if !present || id == nil {
		return nil
	}

	switch id.(type) {
	case string, float64, float32, int, int32, int64, uint, uint32, uint64:
		return id
	}

	geoerrors.FormatError.Panic(
		"feature id must be a string or a number",
		map[string]interface{}{"id": id},
		nil,
	)
	return nil
}

func (decoder *Decoder) featureOpts(
	node map[string]interface{}, reserved map[string]bool,
) *content.FeatureOpts {
	box := decoder.boxField(node)

	var custom map[string]interface{}
	if !decoder.opts.IgnoreForeignMembers {
		for key, value := range node {
			if reserved[key] {
				continue
			}
			if custom == nil {
				custom = make(map[string]interface{})
			}
			custom[key] = value
		}
	}

	if box == nil && custom == nil {
		return nil
	}
	return &content.FeatureOpts{Bounds: box, Custom: custom}
}

// windowItems slices elements to the [offset, offset+limit) range. An offset past
// the end yields an empty window.
func windowItems(elements []interface{}, offset int, limit int) []interface{} {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(elements) {
		return nil
	}

	window := elements[offset:]
	if limit > 0 && limit < len(window) {
		window = window[:limit]
	}
	return window
}

// ---------------------------------------------------------------------------
// Value-shape helpers. These raise TypeCastError, which the decode boundary
// rewraps into FormatError.

func asMap(value interface{}, what string) map[string]interface{} {
	cast, ok := value.(map[string]interface{})
	if !ok {
		geoerrors.TypeCastError.Panic(
			what+" is not an object",
			map[string]interface{}{"field": what},
			nil,
		)
	}
	return cast
}

func asArray(value interface{}, what string) []interface{} {
	cast, ok := value.([]interface{})
	if !ok {
		geoerrors.TypeCastError.Panic(
			what+" is not an array",
			map[string]interface{}{"field": what},
			nil,
		)
	}
	return cast
}

func asFloat(value interface{}, what string) float64 {
	switch cast := value.(type) {
	case float64:
		return cast
	case float32:
		return float64(cast)
	case int:
		return float64(cast)
	case int32:
		return float64(cast)
	case int64:
		return float64(cast)
	case uint64:
		return float64(cast)
	}

	geoerrors.TypeCastError.Panic(
		what+" is not a number",
		map[string]interface{}{"field": what},
		nil,
	)
	return 0
}

func stringField(node map[string]interface{}, key string) string {
	value, ok := node[key].(string)
	if !ok {
		geoerrors.TypeCastError.Panic(
			key+" member is missing or not a string",
			map[string]interface{}{"field": key},
			nil,
		)
	}
	return value
}
