package encoding

import (
	"bytes"
	"io"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/geoerrors"
	"github.com/illuscio-dev/geotools-go/mimetype"
)

// GeometrySource is anything that can replay itself into a geometry sink, such
// as the value types in the geometry package.
type GeometrySource interface {
	WriteTo(sink content.GeometryContent)
}

// FeatureSource is anything that can replay itself into a feature sink.
type FeatureSource interface {
	WriteTo(sink content.FeatureContent)
}

/*
FormatEngine details the contract for the codec engine. The goal of the engine is
a common decoding and encoding methodology for any supported geospatial mimetype,
so callers can serve client-requested formats without touching the individual
codec packages.
*/
type FormatEngine interface {
	// Registers a codec for a given mimetype.
	SetCodec(mimeType mimetype.MimeType, formatCodec FormatCodec)

	// Returns true if the engine has a registered codec for the mimetype.
	Handles(mimeType mimetype.MimeType) bool

	// Whether the engine will attempt to decode unknown mimetypes.
	SniffType() bool

	// Encode source as mimeType to writer.
	Encode(
		mimeType mimetype.MimeType,
		source interface{},
		writer io.Writer,
		opts *Options,
	) error

	// Decode mimeType content from reader into sink, a content sink or builder.
	// The returned ItemRange echoes the requested window plus the delivered
	// item count.
	Decode(
		mimeType mimetype.MimeType,
		sink interface{},
		reader io.Reader,
		opts *Options,
	) (*ItemRange, error)

	// Stream decodes the source format directly into the target format's
	// encoder with no intermediate object graph.
	Stream(
		from mimetype.MimeType,
		to mimetype.MimeType,
		reader io.Reader,
		writer io.Writer,
		opts *Options,
	) error
}

/*
GeoEngine is the default implementation of the FormatEngine interface.
Implementation is done through an interface so that the engine can be extended
through type wrapping.

Instantiation

Use NewFormatEngine() to create a new GeoEngine.

Default Mimetypes

• application/geo+json

• application/geo+json-seq

• text/wkt

• application/wkb

Type Sniffing

If created with "allowSniff" set to true, when decoding UNKNOWN content
GeoEngine will attempt each registered codec in registration order until one
succeeds. Every format self-identifies within its first few bytes, so a wrong
codec fails before delivering anything to the sink.

Panics

If a codec panics during execution, that panic is caught and returned as a
FormatError.
*/
type GeoEngine struct {
	// MimeType:FormatCodec mapping.
	codecs map[mimetype.MimeType]FormatCodec
	// Registration order. Used for sniffing, so sniff order is deterministic.
	codecOrder []mimetype.MimeType
	// Whether to attempt decoding when no explicit mimetype is known.
	sniffMimeType bool
}

func NewFormatEngine(allowSniff bool) *GeoEngine {
	engine := &GeoEngine{
		codecs:        make(map[mimetype.MimeType]FormatCodec),
		sniffMimeType: allowSniff,
	}

	engine.SetCodec(mimetype.GeoJSON, geoJSONCodec{})
	engine.SetCodec(mimetype.GeoJSONSeq, geoJSONSeqCodec{})
	engine.SetCodec(mimetype.WKT, wktCodec{})
	engine.SetCodec(mimetype.WKB, wkbCodec{})

	return engine
}

// Register a codec for a given mimeType.
func (engine *GeoEngine) SetCodec(
	mimeType mimetype.MimeType, formatCodec FormatCodec,
) {
	if _, exists := engine.codecs[mimeType]; !exists {
		engine.codecOrder = append(engine.codecOrder, mimeType)
	}
	engine.codecs[mimeType] = formatCodec
}

// Whether the GeoEngine has a registered codec for mimeType.
func (engine *GeoEngine) Handles(mimeType mimetype.MimeType) bool {
	_, ok := engine.codecs[mimeType]
	return ok
}

// Whether GeoEngine will attempt to decode UNKNOWN content.
func (engine *GeoEngine) SniffType() bool {
	return engine.sniffMimeType
}

func (engine *GeoEngine) Encode(
	mimeType mimetype.MimeType,
	source interface{},
	writer io.Writer,
	opts *Options,
) error {
	formatCodec, ok := engine.codecs[mimeType]
	if !ok {
		return xerrors.New("no codec for " + string(mimeType))
	}

	sink := formatCodec.NewSink(opts.orDefault())
	if err := safeEncode(sink, source); err != nil {
		return xerrors.Errorf("encode err: %w", err)
	}

	if _, err := writer.Write(sink.Bytes()); err != nil {
		return xerrors.Errorf("error writing encoded content: %w", err)
	}
	return nil
}

// Replays source into sink while catching panics to return as errors.
func safeEncode(sink Sink, source interface{}) (err error) {
	defer geoerrors.Capture(&err)

	switch src := source.(type) {
	case FeatureSource:
		featSink, ok := sink.(content.FeatureContent)
		if !ok {
			return geoerrors.FormatError.New(
				"target format does not accept feature content", nil, nil,
			)
		}
		src.WriteTo(featSink)
	case GeometrySource:
		geoSink, ok := sink.(content.GeometryContent)
		if !ok {
			return geoerrors.FormatError.New(
				"target format does not accept geometry content", nil, nil,
			)
		}
		src.WriteTo(geoSink)
	default:
		return geoerrors.FormatError.New(
			"source value cannot write content", nil, nil,
		)
	}
	return nil
}

func (engine *GeoEngine) Decode(
	mimeType mimetype.MimeType,
	sink interface{},
	reader io.Reader,
	opts *Options,
) (*ItemRange, error) {
	opts = opts.orDefault()

	// Close the reader if it's a closer.
	if readCloser, ok := reader.(io.ReadCloser); ok {
		defer func() {
			_ = readCloser.Close()
		}()
	}

	contentBuffer := &bytes.Buffer{}
	if _, err := contentBuffer.ReadFrom(reader); err != nil {
		return nil, xerrors.Errorf("error reading content: %w", err)
	}
	data := contentBuffer.Bytes()

	tallied := newTallySink(sink)

	var err error
	if mimeType == mimetype.UNKNOWN {
		if !engine.SniffType() {
			return nil, xerrors.New("mimetype is unknown and sniffing is disabled")
		}
		err = engine.sniffContent(data, tallied, opts)
	} else {
		formatCodec, ok := engine.codecs[mimeType]
		if !ok {
			return nil, xerrors.New("no codec for " + string(mimeType))
		}
		err = safeDecode(formatCodec, data, tallied, opts)
	}

	if err != nil {
		return nil, xerrors.Errorf("decode err: %w", err)
	}

	return &ItemRange{
		Offset:     opts.Range.Offset,
		Limit:      opts.Range.Limit,
		TotalItems: tallied.total,
	}, nil
}

func (engine *GeoEngine) Stream(
	from mimetype.MimeType,
	to mimetype.MimeType,
	reader io.Reader,
	writer io.Writer,
	opts *Options,
) error {
	opts = opts.orDefault()

	toCodec, ok := engine.codecs[to]
	if !ok {
		return xerrors.New("no codec for " + string(to))
	}

	sink := toCodec.NewSink(opts)
	if _, err := engine.Decode(from, sink, reader, opts); err != nil {
		return xerrors.Errorf("stream err: %w", err)
	}

	if _, err := writer.Write(sink.Bytes()); err != nil {
		return xerrors.Errorf("error writing encoded content: %w", err)
	}
	return nil
}

// Uses a codec while catching panics to return as errors.
func safeDecode(
	formatCodec FormatCodec, data []byte, sink interface{}, opts *Options,
) (err error) {
	defer geoerrors.Capture(&err)
	return formatCodec.Decode(data, sink, opts)
}

// Attempts to decode content with all registered codecs until one succeeds or
// all fail.
func (engine *GeoEngine) sniffContent(
	data []byte, sink interface{}, opts *Options,
) error {
	var decoderErr error

	for _, mimeType := range engine.codecOrder {
		thisErr := safeDecode(engine.codecs[mimeType], data, sink, opts)
		if thisErr == nil {
			return nil
		}

		if decoderErr == nil {
			decoderErr = thisErr
		} else {
			decoderErr = xerrors.Errorf(
				"decoding error: %w after: %w", thisErr, decoderErr,
			)
		}
	}

	return decoderErr
}
