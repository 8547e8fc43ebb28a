package geojson

import (
	"bytes"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/geoerrors"
)

// recordSeparator is the ASCII RS control character RFC 8142 uses to frame
// GeoJSON text sequences.
const recordSeparator = 0x1e

/*
DecodeSeq decodes line-delimited GeoJSON (GeoJSONSeq / GeoJSONL / NDJSON): each
line is one standalone Feature document with no enclosing FeatureCollection on the
wire. Line boundaries are LF, CR or the ASCII record separator (0x1E); blank lines
are skipped. The surviving lines are assembled into a single feature-collection
call on sink, with ItemOffset/ItemLimit windowing applied to the line sequence.
*/
func (decoder *Decoder) DecodeSeq(
	data []byte, sink content.FeatureContent,
) (err error) {
	defer geoerrors.Capture(&err)

	lines := splitSeqLines(data)
	window := windowLines(lines, decoder.opts.ItemOffset, decoder.opts.ItemLimit)

	sink.FeatureCollection(
		func(child content.FeatureContent) {
			for _, line := range window {
				decoder.decodeFeatureNode(decoder.parse(line), child)
			}
		},
		len(window),
		nil,
	)

	return nil
}

func splitSeqLines(data []byte) [][]byte {
	var lines [][]byte

	start := 0
	for index := 0; index <= len(data); index++ {
		atBoundary := index == len(data) ||
			data[index] == '\n' || data[index] == '\r' ||
			data[index] == recordSeparator
		if !atBoundary {
			continue
		}

		line := bytes.TrimSpace(data[start:index])
		if len(line) > 0 {
			lines = append(lines, line)
		}
		start = index + 1
	}

	return lines
}

func windowLines(lines [][]byte, offset int, limit int) [][]byte {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(lines) {
		return nil
	}

	window := lines[offset:]
	if limit > 0 && limit < len(window) {
		window = window[:limit]
	}
	return window
}

/*
SeqEncoder is a content sink rendering line-delimited GeoJSON: one Feature document
per line, each followed by Options.DelimAfter (default "\n") and optionally
preceded by Options.DelimBefore (set it to "\x1e" for RFC 8142 record-separator
framing).

A feature collection written to a SeqEncoder loses its wrapper: only the features
themselves reach the wire, which is the point of the format.
*/
type SeqEncoder struct {
	inner *Encoder
}

func NewSeqEncoder(opts *Options) *SeqEncoder {
	return &SeqEncoder{inner: NewEncoder(opts)}
}

// Bytes returns the text encoded so far.
func (encoder *SeqEncoder) Bytes() []byte {
	return encoder.inner.Bytes()
}

// String returns the text encoded so far.
func (encoder *SeqEncoder) String() string {
	return encoder.inner.String()
}

func (encoder *SeqEncoder) Feature(
	id interface{},
	geometry func(content.GeometryContent),
	properties map[string]interface{},
	opts *content.FeatureOpts,
) {
	encoder.inner.raw(encoder.inner.opts.DelimBefore)

	line := encoder.inner.child()
	line.Feature(id, geometry, properties, opts)

	delim := encoder.inner.opts.DelimAfter
	if delim == "" {
		delim = "\n"
	}
	encoder.inner.raw(delim)
}

func (encoder *SeqEncoder) FeatureCollection(
	features func(content.FeatureContent), count int, opts *content.FeatureOpts,
) {
	// No enclosing wrapper on the wire; bbox and foreign members of the
	// collection itself have nowhere to go and are dropped.
	features(encoder)
}
