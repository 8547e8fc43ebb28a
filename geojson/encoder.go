package geojson

import (
	"bytes"
	"sort"

	"github.com/ugorji/go/codec"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
)

/*
Encoder is a content sink rendering RFC 7946 GeoJSON text incrementally: every
content call appends its complete JSON fragment to the output buffer, so encoding a
geometry collection never materializes an intermediate tree.

An Encoder implements content.GeometryContent, content.FeatureContent,
content.CoordinateContent and content.PropertyContent, so any producer -- a model
value's WriteTo, another format's decoder, application code -- can drive it
directly.

Member order is fixed: "type", then "id" for features, then "bbox" when a box was
supplied, then "geometry"/"properties"/"coordinates"/"geometries"/"features", then
foreign members. Property and foreign-member values are rendered with a canonical
(key-sorted) JSON handle, so identical input yields byte-identical output.
*/
type Encoder struct {
	opts       *Options
	out        *bytes.Buffer
	handle     *codec.JsonHandle
	needsComma bool
	scratch    []byte
}

func NewEncoder(opts *Options) *Encoder {
	handle := &codec.JsonHandle{}
	handle.Canonical = true

	return &Encoder{
		opts:   opts.orDefault(),
		out:    &bytes.Buffer{},
		handle: handle,
	}
}

// Bytes returns the text encoded so far.
func (encoder *Encoder) Bytes() []byte {
	return encoder.out.Bytes()
}

// String returns the text encoded so far.
func (encoder *Encoder) String() string {
	return encoder.out.String()
}

// child returns a sink sharing the output buffer with a fresh separator state, for
// callback recursion into collections.
func (encoder *Encoder) child() *Encoder {
	return &Encoder{
		opts:   encoder.opts,
		out:    encoder.out,
		handle: encoder.handle,
	}
}

// elemSep writes the separating comma between sibling values.
func (encoder *Encoder) elemSep() {
	if encoder.needsComma {
		encoder.out.WriteByte(',')
	}
	encoder.needsComma = true
}

func (encoder *Encoder) raw(text string) {
	encoder.out.WriteString(text)
}

// beginValue starts a new sibling value, emitting the member name when the
// geometry was written as a named member.
func (encoder *Encoder) beginValue(name string) {
	encoder.elemSep()
	if name != "" {
		encoder.encodeJSON(name)
		encoder.out.WriteByte(':')
	}
}

// encodeJSON renders an arbitrary JSON-like value through the canonical handle.
func (encoder *Encoder) encodeJSON(value interface{}) {
	var raw []byte
	jsonEncoder := codec.NewEncoderBytes(&raw, encoder.handle)
	if err := jsonEncoder.Encode(value); err != nil {
		// Writing to a byte slice cannot fail; an error here is a non-encodable
		// value, which is a caller contract violation.
		panic(err)
	}
	encoder.out.Write(raw)
}

func (encoder *Encoder) value(value float64) {
	encoder.scratch = coords.AppendValue(
		encoder.scratch[:0], value, encoder.opts.decimals(),
	)
	encoder.out.Write(encoder.scratch)
}

// positionValues writes the bare value list of one position, honoring SwapXY and
// IgnoreMeasured.
func (encoder *Encoder) positionValues(pos coords.Position) {
	values := pos.Values()
	coordType := pos.Type()

	dim := coordType.Dim()
	if encoder.opts.IgnoreMeasured && coordType.HasM() {
		dim--
	}

	for index := 0; index < dim; index++ {
		if index > 0 {
			encoder.out.WriteByte(',')
		}
		readIndex := index
		if encoder.opts.SwapXY && index < 2 {
			readIndex = 1 - index
		}
		encoder.value(values[readIndex])
	}
}

func (encoder *Encoder) positionArray(pos coords.Position) {
	encoder.out.WriteByte('[')
	encoder.positionValues(pos)
	encoder.out.WriteByte(']')
}

func (encoder *Encoder) seriesArray(series coords.PositionSeries) {
	encoder.out.WriteByte('[')
	for posIndex := 0; posIndex < series.Count(); posIndex++ {
		if posIndex > 0 {
			encoder.out.WriteByte(',')
		}
		encoder.positionArray(series.Position(posIndex))
	}
	encoder.out.WriteByte(']')
}

func (encoder *Encoder) ringsArray(rings []coords.PositionSeries) {
	encoder.out.WriteByte('[')
	for ringIndex, ring := range rings {
		if ringIndex > 0 {
			encoder.out.WriteByte(',')
		}
		encoder.seriesArray(ring)
	}
	encoder.out.WriteByte(']')
}

// boxValues writes the flattened bbox array value list: min values then max
// values, swapped and measure-stripped the same way positions are.
func (encoder *Encoder) boxValues(box coords.Box) {
	write := func(pos coords.Position) {
		encoder.positionValues(pos)
	}
	write(box.Min())
	encoder.out.WriteByte(',')
	write(box.Max())
}

func (encoder *Encoder) boxMember(box *coords.Box) {
	if box == nil {
		return
	}
	encoder.raw(`,"bbox":[`)
	encoder.boxValues(*box)
	encoder.out.WriteByte(']')
}

func optsName(opts *content.GeomOpts) string {
	if opts == nil {
		return ""
	}
	return opts.Name
}

func optsGeomBounds(opts *content.GeomOpts) *coords.Box {
	if opts == nil {
		return nil
	}
	return opts.Bounds
}

// ---------------------------------------------------------------------------
// content.CoordinateContent

func (encoder *Encoder) Position(pos coords.Position) {
	encoder.elemSep()
	encoder.positionArray(pos)
}

func (encoder *Encoder) Positions(series coords.PositionSeries) {
	encoder.elemSep()
	encoder.seriesArray(series)
}

func (encoder *Encoder) Bounds(box coords.Box) {
	encoder.elemSep()
	encoder.out.WriteByte('[')
	encoder.boxValues(box)
	encoder.out.WriteByte(']')
}

// ---------------------------------------------------------------------------
// content.PropertyContent

func (encoder *Encoder) Property(name string, value interface{}) {
	encoder.elemSep()
	encoder.encodeJSON(name)
	encoder.out.WriteByte(':')
	encoder.encodeJSON(value)
}

func (encoder *Encoder) Properties(name string, attrs map[string]interface{}) {
	encoder.elemSep()
	encoder.encodeJSON(name)
	encoder.out.WriteByte(':')
	encoder.encodeJSON(attrs)
}

// ---------------------------------------------------------------------------
// content.GeometryContent

func (encoder *Encoder) Point(pos coords.Position, opts *content.GeomOpts) {
	encoder.beginValue(optsName(opts))
	encoder.raw(`{"type":"Point"`)
	encoder.boxMember(optsGeomBounds(opts))
	encoder.raw(`,"coordinates":`)
	encoder.positionArray(pos)
	encoder.out.WriteByte('}')
}

func (encoder *Encoder) LineString(
	chain coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.beginValue(optsName(opts))
	encoder.raw(`{"type":"LineString"`)
	encoder.boxMember(optsGeomBounds(opts))
	encoder.raw(`,"coordinates":`)
	encoder.seriesArray(chain)
	encoder.out.WriteByte('}')
}

func (encoder *Encoder) Polygon(
	rings []coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.beginValue(optsName(opts))
	encoder.raw(`{"type":"Polygon"`)
	encoder.boxMember(optsGeomBounds(opts))
	encoder.raw(`,"coordinates":`)
	encoder.ringsArray(rings)
	encoder.out.WriteByte('}')
}

func (encoder *Encoder) MultiPoint(
	points coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.beginValue(optsName(opts))
	encoder.raw(`{"type":"MultiPoint"`)
	encoder.boxMember(optsGeomBounds(opts))
	encoder.raw(`,"coordinates":`)
	encoder.seriesArray(points)
	encoder.out.WriteByte('}')
}

func (encoder *Encoder) MultiLineString(
	lines []coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.beginValue(optsName(opts))
	encoder.raw(`{"type":"MultiLineString"`)
	encoder.boxMember(optsGeomBounds(opts))
	encoder.raw(`,"coordinates":`)
	encoder.ringsArray(lines)
	encoder.out.WriteByte('}')
}

func (encoder *Encoder) MultiPolygon(
	polygons [][]coords.PositionSeries, opts *content.GeomOpts,
) {
	encoder.beginValue(optsName(opts))
	encoder.raw(`{"type":"MultiPolygon"`)
	encoder.boxMember(optsGeomBounds(opts))
	encoder.raw(`,"coordinates":[`)
	for polyIndex, rings := range polygons {
		if polyIndex > 0 {
			encoder.out.WriteByte(',')
		}
		encoder.ringsArray(rings)
	}
	encoder.raw(`]}`)
}

// EmptyGeometry writes the type-appropriate empty representation: an empty
// coordinates array, or an empty geometries array for collections.
func (encoder *Encoder) EmptyGeometry(kind content.GeomKind, opts *content.GeomOpts) {
	encoder.beginValue(optsName(opts))
	encoder.raw(`{"type":"`)
	encoder.raw(kind.String())
	if kind == content.KindGeometryCollection {
		encoder.raw(`","geometries":[]}`)
	} else {
		encoder.raw(`","coordinates":[]}`)
	}
}

func (encoder *Encoder) GeometryCollection(
	write func(content.GeometryContent), count int, opts *content.GeomOpts,
) {
	encoder.beginValue(optsName(opts))
	encoder.raw(`{"type":"GeometryCollection"`)
	encoder.boxMember(optsGeomBounds(opts))
	encoder.raw(`,"geometries":[`)
	write(encoder.child())
	encoder.raw(`]}`)
}

// ---------------------------------------------------------------------------
// content.FeatureContent

func (encoder *Encoder) Feature(
	id interface{},
	geometry func(content.GeometryContent),
	properties map[string]interface{},
	opts *content.FeatureOpts,
) {
	encoder.beginValue("")
	encoder.raw(`{"type":"Feature"`)

	if id != nil {
		encoder.raw(`,"id":`)
		encoder.encodeJSON(id)
	}

	if opts != nil {
		encoder.boxMember(opts.Bounds)
	}

	encoder.raw(`,"geometry":`)
	if geometry == nil {
		encoder.raw("null")
	} else {
		geometry(encoder.child())
	}

	encoder.raw(`,"properties":`)
	if properties == nil {
		encoder.raw("{}")
	} else {
		encoder.encodeJSON(properties)
	}

	if opts != nil && !encoder.opts.IgnoreForeignMembers {
		encoder.customMembers(opts.Custom)
	}

	encoder.out.WriteByte('}')
}

func (encoder *Encoder) FeatureCollection(
	features func(content.FeatureContent), count int, opts *content.FeatureOpts,
) {
	encoder.beginValue("")
	encoder.raw(`{"type":"FeatureCollection"`)

	if opts != nil {
		encoder.boxMember(opts.Bounds)
	}

	encoder.raw(`,"features":[`)
	features(encoder.child())
	encoder.out.WriteByte(']')

	if opts != nil && !encoder.opts.IgnoreForeignMembers {
		encoder.customMembers(opts.Custom)
	}

	encoder.out.WriteByte('}')
}

// customMembers splices foreign members at the current object's top level, in
// sorted key order for reproducible output.
func (encoder *Encoder) customMembers(custom map[string]interface{}) {
	if len(custom) == 0 {
		return
	}

	keys := make([]string, 0, len(custom))
	for key := range custom {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		encoder.out.WriteByte(',')
		encoder.encodeJSON(key)
		encoder.out.WriteByte(':')
		encoder.encodeJSON(custom[key])
	}
}
