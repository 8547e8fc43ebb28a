package encoding

import (
	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/geoerrors"
	"github.com/illuscio-dev/geotools-go/geojson"
	"github.com/illuscio-dev/geotools-go/wkb"
	"github.com/illuscio-dev/geotools-go/wkt"
)

/*
Sink is a format encoder viewed by the engine: a content sink accumulating
output bytes. The concrete value additionally implements whichever content
capability interfaces its format can express, and the engine dispatches on
those, so a feature source handed to a geometry-only format fails cleanly
rather than silently dropping data.
*/
type Sink interface {
	Bytes() []byte
}

/*
FormatCodec adapts one wire format to the engine: it builds encoding sinks and
decodes raw bytes into any content sink. Custom formats register through
FormatEngine.SetCodec.
*/
type FormatCodec interface {
	NewSink(opts *Options) Sink
	Decode(data []byte, sink interface{}, opts *Options) error
}

type geoJSONCodec struct{}

func (geoJSONCodec) NewSink(opts *Options) Sink {
	return geojson.NewEncoder(opts.geojsonOptions())
}

func (geoJSONCodec) Decode(data []byte, sink interface{}, opts *Options) error {
	return geojson.NewDecoder(opts.geojsonOptions()).Decode(data, sink)
}

type geoJSONSeqCodec struct{}

func (geoJSONSeqCodec) NewSink(opts *Options) Sink {
	return geojson.NewSeqEncoder(opts.geojsonOptions())
}

func (geoJSONSeqCodec) Decode(data []byte, sink interface{}, opts *Options) error {
	featSink, ok := sink.(content.FeatureContent)
	if !ok {
		return geoerrors.FormatError.New(
			"receiver does not accept feature content", nil, nil,
		)
	}
	return geojson.NewDecoder(opts.geojsonOptions()).DecodeSeq(data, featSink)
}

type wktCodec struct{}

func (wktCodec) NewSink(opts *Options) Sink {
	return wkt.NewEncoder(opts.wktOptions())
}

func (wktCodec) Decode(data []byte, sink interface{}, opts *Options) error {
	geoSink, ok := sink.(content.GeometryContent)
	if !ok {
		return geoerrors.FormatError.New(
			"receiver does not accept geometry content", nil, nil,
		)
	}
	return wkt.NewDecoder(opts.wktOptions()).DecodeGeometry(string(data), geoSink)
}

type wkbCodec struct{}

func (wkbCodec) NewSink(opts *Options) Sink {
	return wkb.NewEncoder(opts.wkbOptions())
}

func (wkbCodec) Decode(data []byte, sink interface{}, opts *Options) error {
	geoSink, ok := sink.(content.GeometryContent)
	if !ok {
		return geoerrors.FormatError.New(
			"receiver does not accept geometry content", nil, nil,
		)
	}
	return wkb.NewDecoder(opts.wkbOptions()).DecodeGeometry(data, geoSink)
}
