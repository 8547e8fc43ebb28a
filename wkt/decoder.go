package wkt

import (
	"strconv"
	"strings"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
	"github.com/illuscio-dev/geotools-go/geoerrors"
)

/*
Decoder is a hand-written linear scanner for Well-Known Text. It never builds a
grammar or recurses through a parser: paren groups are found by depth counting and
index scanning, which keeps decode linear-time and allocation-light. The only true
recursion is per GEOMETRYCOLLECTION child, bounded by Options.MaxDepth.

Layout resolution mirrors the documented inference asymmetry: explicit Z / M / ZM
tokens win when present; otherwise the first position's value count decides, with
3 values reading as xyz, never xym.
*/
type Decoder struct {
	opts *Options
}

func NewDecoder(opts *Options) *Decoder {
	return &Decoder{opts: opts.orDefault()}
}

// keywords are ordered so that no keyword is ever shadowed by one of its own
// prefixes: every multi-word keyword appears before the keyword it starts with.
var keywords = []struct {
	text string
	kind content.GeomKind
}{
	{"GEOMETRYCOLLECTION", content.KindGeometryCollection},
	{"MULTILINESTRING", content.KindMultiLineString},
	{"MULTIPOLYGON", content.KindMultiPolygon},
	{"MULTIPOINT", content.KindMultiPoint},
	{"LINESTRING", content.KindLineString},
	{"POLYGON", content.KindPolygon},
	{"POINT", content.KindPoint},
}

/*
DecodeGeometry scans a WKT document and drives sink through the content protocol.
Keywords are case-insensitive; an optional leading `SRID=<n>;` EWKT prefix is
stripped and discarded.
*/
func (decoder *Decoder) DecodeGeometry(
	text string, sink content.GeometryContent,
) (err error) {
	defer geoerrors.Capture(&err)

	work := strings.ToUpper(strings.TrimSpace(text))
	work = stripSRID(work)
	decoder.decodeText(work, sink, 0)
	return nil
}

func stripSRID(work string) string {
	if !strings.HasPrefix(work, "SRID=") {
		return work
	}

	semicolon := strings.IndexByte(work, ';')
	if semicolon < 0 {
		formatErr("EWKT SRID prefix is missing its semicolon", work)
	}
	return strings.TrimSpace(work[semicolon+1:])
}

func (decoder *Decoder) decodeText(
	work string, sink content.GeometryContent, depth int,
) {
	kind, rest := matchKeyword(work)

	parenIdx := strings.IndexByte(rest, '(')
	head := rest
	if parenIdx >= 0 {
		head = rest[:parenIdx]
	}

	expectZ, expectM, isEmpty := scanHead(head, work)

	if isEmpty {
		if parenIdx >= 0 {
			formatErr("EMPTY geometry cannot carry a coordinate payload", work)
		}
		sink.EmptyGeometry(kind, emptyOpts(expectZ, expectM))
		return
	}

	if parenIdx < 0 {
		formatErr("expected a coordinate payload or EMPTY", work)
	}

	// The payload is everything between the opening paren and the matching final
	// character of the whole remaining text, which must be the closing paren.
	tail := strings.TrimSpace(rest[parenIdx:])
	if tail[len(tail)-1] != ')' {
		formatErr("unbalanced parentheses", work)
	}
	payload := tail[1 : len(tail)-1]

	if kind == content.KindGeometryCollection {
		decoder.decodeCollection(payload, sink, depth, work)
		return
	}

	// Refine the layout from the data when no explicit Z/M token was seen: the
	// suffix may simply have been omitted while the values still carry 3 or 4
	// numbers.
	coordType := coords.TypeFor(expectZ, expectM)
	if !expectZ && !expectM {
		coordType = inferPayloadType(payload, work)
	}

	opts := &content.GeomOpts{Type: coordType, HasType: true}

	switch kind {
	case content.KindPoint:
		sink.Point(decoder.parsePosition(payload, coordType), opts)
	case content.KindLineString:
		sink.LineString(decoder.parseSeries(payload, coordType), opts)
	case content.KindMultiPoint:
		sink.MultiPoint(decoder.parseSeries(payload, coordType), opts)
	case content.KindPolygon:
		sink.Polygon(decoder.parseGroup(payload, coordType, work), opts)
	case content.KindMultiLineString:
		sink.MultiLineString(decoder.parseGroup(payload, coordType, work), opts)
	case content.KindMultiPolygon:
		spans := parenSpans(payload, work)
		polygons := make([][]coords.PositionSeries, 0, len(spans))
		for _, span := range spans {
			polygons = append(polygons, decoder.parseGroup(span, coordType, work))
		}
		sink.MultiPolygon(polygons, opts)
	}
}

func matchKeyword(work string) (kind content.GeomKind, rest string) {
	for _, keyword := range keywords {
		if strings.HasPrefix(work, keyword.text) {
			return keyword.kind, work[len(keyword.text):]
		}
	}

	formatErr("unrecognized geometry keyword", work)
	return 0, ""
}

// scanHead reads the standalone tokens between the keyword and the payload:
// dimensionality suffixes and the EMPTY literal.
func scanHead(head string, work string) (expectZ bool, expectM bool, isEmpty bool) {
	tokens := strings.Fields(head)
	for index, token := range tokens {
		switch token {
		case "Z":
			expectZ = true
		case "M":
			expectM = true
		case "ZM":
			expectZ = true
			expectM = true
		case "EMPTY":
			if index != len(tokens)-1 {
				formatErr("EMPTY must be the final token", work)
			}
			isEmpty = true
		default:
			formatErr("unexpected token "+strconv.Quote(token), work)
		}
	}
	return expectZ, expectM, isEmpty
}

func emptyOpts(expectZ bool, expectM bool) *content.GeomOpts {
	if !expectZ && !expectM {
		return nil
	}
	return &content.GeomOpts{Type: coords.TypeFor(expectZ, expectM), HasType: true}
}

// inferPayloadType re-parses the first position's token count to pick a layout.
func inferPayloadType(payload string, work string) coords.CoordType {
	start := 0
	for start < len(payload) &&
		(payload[start] == '(' || payload[start] == ' ') {
		start++
	}

	end := start
	for end < len(payload) && payload[end] != ',' && payload[end] != ')' {
		end++
	}

	coordType, ok := coords.TypeForDim(len(strings.Fields(payload[start:end])))
	if !ok {
		formatErr("cannot infer coordinate layout from first position", work)
	}
	return coordType
}

func (decoder *Decoder) decodeCollection(
	payload string, sink content.GeometryContent, depth int, work string,
) {
	if depth >= decoder.opts.maxDepth() {
		geoerrors.FormatError.Panic(
			"geometry collections nested too deeply",
			map[string]interface{}{"maxDepth": decoder.opts.maxDepth()},
			nil,
		)
	}

	children := splitTopLevel(payload, work)

	// Windowing applies to the document's own collection, never to nested
	// members.
	window := children
	if depth == 0 {
		window = windowChildren(children, decoder.opts.ItemOffset, decoder.opts.ItemLimit)
	}

	sink.GeometryCollection(
		func(child content.GeometryContent) {
			for _, childText := range window {
				decoder.decodeText(strings.TrimSpace(childText), child, depth+1)
			}
		},
		len(window),
		nil,
	)
}

func windowChildren(children []string, offset int, limit int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(children) {
		return nil
	}

	window := children[offset:]
	if limit > 0 && limit < len(window) {
		window = window[:limit]
	}
	return window
}

// parsePosition reads one whitespace-separated value tuple.
func (decoder *Decoder) parsePosition(
	text string, coordType coords.CoordType,
) coords.Position {
	fields := strings.Fields(text)
	if len(fields) != coordType.Dim() {
		formatErr("wrong value count for declared layout", text)
	}

	values := make([]float64, len(fields))
	for index, field := range fields {
		values[index] = parseValue(field)
	}
	if decoder.opts.SwapXY {
		values[0], values[1] = values[1], values[0]
	}

	return coords.NewPosition(coordType, values...)
}

// parseSeries reads comma-separated positions into one flat series. Positions may
// optionally be wrapped in their own parens (the MULTIPOINT ((x y),(x y)) form).
func (decoder *Decoder) parseSeries(
	text string, coordType coords.CoordType,
) coords.PositionSeries {
	parts := splitTopLevel(text, text)
	dim := coordType.Dim()
	flat := make([]float64, 0, len(parts)*dim)

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "(") && strings.HasSuffix(part, ")") {
			part = part[1 : len(part)-1]
		}

		fields := strings.Fields(part)
		if len(fields) != dim {
			formatErr("wrong value count for declared layout", part)
		}
		for _, field := range fields {
			flat = append(flat, parseValue(field))
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
	return coords.ViewSeries(coordType, flat)
}

// parseGroup reads depth-1 paren groups (polygon rings, multi-linestring lines).
func (decoder *Decoder) parseGroup(
	payload string, coordType coords.CoordType, work string,
) []coords.PositionSeries {
	spans := parenSpans(payload, work)
	group := make([]coords.PositionSeries, 0, len(spans))
	for _, span := range spans {
		group = append(group, decoder.parseSeries(span, coordType))
	}
	return group
}

func parseValue(field string) float64 {
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		geoerrors.FormatError.Panic(
			"malformed coordinate value",
			map[string]interface{}{"value": field},
			err,
		)
	}
	return value
}

/*
parenSpans returns the contents of every top-level (...) group in text, located by
depth counting: a transition from depth 0 to 1 opens a span, the matching return
to depth 0 closes it. Rings never nest within the level this is used at, so depth
tracking fully replaces recursive matching. Anything between spans other than
commas and spaces, or an unbalanced run, is malformed.
*/
func parenSpans(text string, work string) []string {
	var spans []string

	depth := 0
	start := 0
	for index := 0; index < len(text); index++ {
		switch text[index] {
		case '(':
			depth++
			if depth == 1 {
				start = index + 1
			}
		case ')':
			depth--
			if depth < 0 {
				formatErr("unbalanced parentheses", work)
			}
			if depth == 0 {
				spans = append(spans, text[start:index])
			}
		case ',', ' ':
			// Separators between groups.
		default:
			if depth == 0 {
				formatErr("unexpected text between coordinate groups", work)
			}
		}
	}

	if depth != 0 {
		formatErr("unbalanced parentheses", work)
	}
	return spans
}

// splitTopLevel splits text on commas at paren depth 0, so a comma inside a
// nested geometry's own parens is never mistaken for a separator.
func splitTopLevel(text string, work string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var parts []string

	depth := 0
	start := 0
	for index := 0; index < len(text); index++ {
		switch text[index] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				formatErr("unbalanced parentheses", work)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, text[start:index])
				start = index + 1
			}
		}
	}

	if depth != 0 {
		formatErr("unbalanced parentheses", work)
	}
	return append(parts, text[start:])
}

func formatErr(message string, input string) {
	geoerrors.FormatError.Panic(
		message,
		map[string]interface{}{"input": snippet(input)},
		nil,
	)
}

// snippet truncates the offending input for error data.
func snippet(text string) string {
	if len(text) > 48 {
		return text[:48] + "..."
	}
	return text
}
