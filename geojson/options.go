package geojson

// DefaultMaxDepth bounds geometry-collection nesting during decode when the
// options do not say otherwise.
const DefaultMaxDepth = 64

/*
Options is the loosely-typed option bag shared by the GeoJSON encoder and decoder.
A nil *Options is valid everywhere one is accepted and means all defaults.

Decimals truncates coordinate output to that many fraction digits when positive.
Zero (the zero value) keeps the shortest representation that round-trips the exact
value; DecimalsZero requests truncation to no fraction digits at all.

SwapXY reorders (x, y) to (y, x) on both read and write, for coordinate reference
systems that declare y-first axis order. It applies uniformly to positions and to
every bbox encoding, and nowhere else.

IgnoreMeasured drops the m component on encode even when the source data carries
one; RFC 7946 calls extra position elements ambiguous, so compliance is opt-in.

ItemOffset/ItemLimit window a feature-collection decode: only features at indices
[ItemOffset, ItemOffset+ItemLimit) are decoded. ItemLimit <= 0 means no limit. An
offset past the end of the collection yields an empty result, not an error.
*/
type Options struct {
	Decimals             int
	SwapXY               bool
	IgnoreMeasured       bool
	IgnoreForeignMembers bool

	// Store decoded coordinates in 32-bit floats. Halves coordinate memory for
	// bulk ingestion at the cost of ~7 significant digits.
	SinglePrecision bool

	// Maximum geometry-collection nesting depth accepted on decode. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	ItemOffset int
	ItemLimit  int

	// Line-delimited encoding only: text written before and after each feature.
	// An empty DelimAfter means "\n"; DelimBefore supports RS-prefixed sequences
	// (RFC 8142).
	DelimBefore string
	DelimAfter  string
}

// DecimalsZero requests integral coordinate output (zero fraction digits), since
// a Decimals of 0 already means "unset".
const DecimalsZero = -1

// DefaultOptions returns the options every codec entry point assumes when handed
// nil.
func DefaultOptions() *Options {
	return &Options{}
}

func (opts *Options) orDefault() *Options {
	if opts == nil {
		return DefaultOptions()
	}
	return opts
}

// decimals maps the option field onto the coords.FormatValue convention, where
// negative means shortest round trip.
func (opts *Options) decimals() int {
	switch {
	case opts.Decimals == 0:
		return -1
	case opts.Decimals < 0:
		return 0
	default:
		return opts.Decimals
	}
}

func (opts *Options) maxDepth() int {
	if opts.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return opts.MaxDepth
}
