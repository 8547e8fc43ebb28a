package wkb

import (
	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
)

// Byte-order flags from the OGC simple features spec.
const (
	orderBig    byte = 0
	orderLittle byte = 1
)

// Base geometry type codes. Dimensionality is layered on top: ISO WKB adds 1000
// for Z, 2000 for M and 3000 for ZM.
const (
	codePoint              uint32 = 1
	codeLineString         uint32 = 2
	codePolygon            uint32 = 3
	codeMultiPoint         uint32 = 4
	codeMultiLineString    uint32 = 5
	codeMultiPolygon       uint32 = 6
	codeGeometryCollection uint32 = 7
)

// EWKB packs dimensionality and SRID presence into high bits instead of the ISO
// thousands offsets. The decoder accepts both dialects; the encoder writes ISO.
const (
	ewkbZFlag    uint32 = 0x80000000
	ewkbMFlag    uint32 = 0x40000000
	ewkbSRIDFlag uint32 = 0x20000000
)

// typeCode renders the ISO code for a kind and coordinate layout.
func typeCode(kind content.GeomKind, coordType coords.CoordType) uint32 {
	var base uint32
	switch kind {
	case content.KindPoint:
		base = codePoint
	case content.KindLineString:
		base = codeLineString
	case content.KindPolygon:
		base = codePolygon
	case content.KindMultiPoint:
		base = codeMultiPoint
	case content.KindMultiLineString:
		base = codeMultiLineString
	case content.KindMultiPolygon:
		base = codeMultiPolygon
	default:
		base = codeGeometryCollection
	}

	switch {
	case coordType.HasZ() && coordType.HasM():
		return base + 3000
	case coordType.HasZ():
		return base + 1000
	case coordType.HasM():
		return base + 2000
	default:
		return base
	}
}

// splitCode breaks a decoded type code into its base code, coordinate layout and
// whether an EWKB SRID value follows the header.
func splitCode(code uint32) (base uint32, coordType coords.CoordType, hasSRID bool, ok bool) {
	hasZ := code&ewkbZFlag != 0
	hasM := code&ewkbMFlag != 0
	hasSRID = code&ewkbSRIDFlag != 0
	code &^= ewkbZFlag | ewkbMFlag | ewkbSRIDFlag

	switch {
	case code >= 3000 && code < 4000:
		hasZ = true
		hasM = true
		code -= 3000
	case code >= 2000 && code < 3000:
		hasM = true
		code -= 2000
	case code >= 1000 && code < 2000:
		hasZ = true
		code -= 1000
	}

	if code < codePoint || code > codeGeometryCollection {
		return 0, coords.XY, false, false
	}
	return code, coords.TypeFor(hasZ, hasM), hasSRID, true
}

func kindForCode(base uint32) content.GeomKind {
	switch base {
	case codePoint:
		return content.KindPoint
	case codeLineString:
		return content.KindLineString
	case codePolygon:
		return content.KindPolygon
	case codeMultiPoint:
		return content.KindMultiPoint
	case codeMultiLineString:
		return content.KindMultiLineString
	case codeMultiPolygon:
		return content.KindMultiPolygon
	default:
		return content.KindGeometryCollection
	}
}
