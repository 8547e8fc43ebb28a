package encoding

import (
	"github.com/illuscio-dev/geotools-go/geojson"
	"github.com/illuscio-dev/geotools-go/wkb"
	"github.com/illuscio-dev/geotools-go/wkt"
)

// DecimalsZero requests integral coordinate output (zero fraction digits), since
// a Decimals of 0 already means "unset".
const DecimalsZero = -1

/*
ItemRange is the windowing request handed to a decode, plus the paging-style
result the decode fills in. An Offset past the end of the source yields an empty
result, not an error; Limit <= 0 means no limit.

TotalItems is set by FormatEngine.Decode to the number of items delivered to the
top-level collection callback after windowing, or -1 when the source was a single
geometry or feature document with no collection.
*/
type ItemRange struct {
	Offset int
	Limit  int

	TotalItems int
}

/*
Options is the engine-level option bag covering every registered format. Each
codec picks out the fields its format understands; a nil *Options is valid
everywhere one is accepted and means all defaults.
*/
type Options struct {
	// Decimals truncates coordinate output to that many fraction digits when
	// positive; zero keeps the shortest round-trip representation and
	// DecimalsZero requests no fraction digits.
	Decimals int

	// SwapXY reorders (x, y) to (y, x) on both read and write.
	SwapXY bool

	// Drop M values on GeoJSON write, demoting xym to xy and xyzm to xyz.
	IgnoreMeasured bool

	// Drop foreign members instead of carrying them through GeoJSON decode.
	IgnoreForeignMembers bool

	// Store decoded coordinates in 32-bit floats.
	SinglePrecision bool

	// Byte order written by the WKB encoder.
	BigEndian bool

	// Maximum collection nesting depth accepted on decode. Zero means the
	// format's default.
	MaxDepth int

	// Windowing for top-level collection members.
	Range ItemRange

	// Delimiters around each record written by the GeoJSONSeq encoder.
	DelimBefore string
	DelimAfter  string
}

// DefaultOptions returns the options every engine entry point assumes when
// handed nil.
func DefaultOptions() *Options {
	return &Options{}
}

func (opts *Options) orDefault() *Options {
	if opts == nil {
		return DefaultOptions()
	}
	return opts
}

func (opts *Options) geojsonOptions() *geojson.Options {
	return &geojson.Options{
		Decimals:             opts.Decimals,
		SwapXY:               opts.SwapXY,
		IgnoreMeasured:       opts.IgnoreMeasured,
		IgnoreForeignMembers: opts.IgnoreForeignMembers,
		SinglePrecision:      opts.SinglePrecision,
		MaxDepth:             opts.MaxDepth,
		ItemOffset:           opts.Range.Offset,
		ItemLimit:            opts.Range.Limit,
		DelimBefore:          opts.DelimBefore,
		DelimAfter:           opts.DelimAfter,
	}
}

func (opts *Options) wktOptions() *wkt.Options {
	return &wkt.Options{
		Decimals:        opts.Decimals,
		SwapXY:          opts.SwapXY,
		SinglePrecision: opts.SinglePrecision,
		MaxDepth:        opts.MaxDepth,
		ItemOffset:      opts.Range.Offset,
		ItemLimit:       opts.Range.Limit,
	}
}

func (opts *Options) wkbOptions() *wkb.Options {
	return &wkb.Options{
		BigEndian:       opts.BigEndian,
		SwapXY:          opts.SwapXY,
		SinglePrecision: opts.SinglePrecision,
		MaxDepth:        opts.MaxDepth,
		ItemOffset:      opts.Range.Offset,
		ItemLimit:       opts.Range.Limit,
	}
}
