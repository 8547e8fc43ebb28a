package wkt

// DefaultMaxDepth bounds geometry-collection nesting during decode when the
// options do not say otherwise.
const DefaultMaxDepth = 64

// DecimalsZero requests integral coordinate output (zero fraction digits), since
// a Decimals of 0 already means "unset".
const DecimalsZero = -1

/*
Options is the option bag shared by the WKT encoder and decoder. A nil *Options is
valid everywhere one is accepted and means all defaults.

Decimals truncates coordinate output to that many fraction digits when positive;
zero keeps the shortest round-trip representation and DecimalsZero requests no
fraction digits.

SwapXY reorders (x, y) to (y, x) on both read and write.

ItemOffset/ItemLimit window the children of a decoded GEOMETRYCOLLECTION;
ItemLimit <= 0 means no limit, and an offset past the end yields an empty
collection, not an error.
*/
type Options struct {
	Decimals int
	SwapXY   bool

	// Store decoded coordinates in 32-bit floats.
	SinglePrecision bool

	// Maximum collection nesting depth accepted on decode. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	ItemOffset int
	ItemLimit  int
}

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
