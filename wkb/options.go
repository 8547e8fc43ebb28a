package wkb

import "encoding/binary"

// DefaultMaxDepth bounds geometry-collection nesting during decode when the
// options do not say otherwise.
const DefaultMaxDepth = 64

/*
Options is the option bag shared by the WKB encoder and decoder. A nil *Options is
valid everywhere one is accepted and means all defaults.

BigEndian selects the byte order written by the encoder; the decoder always honors
the order byte carried by the input itself.

SwapXY reorders (x, y) to (y, x) on both read and write.

ItemOffset/ItemLimit window the children of a decoded geometry collection;
ItemLimit <= 0 means no limit, and an offset past the end yields an empty
collection, not an error. Children outside the window are still scanned, since
WKB elements are only delimited by parsing them.
*/
type Options struct {
	BigEndian bool
	SwapXY    bool

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

func (opts *Options) byteOrder() binary.ByteOrder {
	if opts.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (opts *Options) maxDepth() int {
	if opts.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return opts.MaxDepth
}
