package geoerrors

import (
	"fmt"
)

var (
	/*
		FormatError is the single error kind callers need to handle from decode:
		malformed document structure, an unrecognized geometry type tag, unbalanced
		WKT parens, a wrong WKB type code, a wrong element count in a bbox array, a
		feature id that is neither string nor number, and so on.
	*/
	FormatError = NewGeoErrorType("FormatError", 2001)

	/*
		TypeCastError covers value-shape failures inside syntactically valid input,
		such as a "coordinates" member holding a string instead of an array. Raised
		internally and rewrapped into FormatError at every decode boundary, so
		callers never need to catch it separately.
	*/
	TypeCastError = NewGeoErrorType("TypeCastError", 2002)
)

/*
AsFormatError normalizes any recovered value into a *GeoError of the FormatError
type. GeoErrors of other types are rewrapped with the original as source; arbitrary
errors and panic values are wrapped with their text preserved.
*/
func AsFormatError(recovered interface{}) *GeoError {
	switch value := recovered.(type) {
	case *GeoError:
		if value.IsType(FormatError) {
			return value
		}
		return FormatError.New(value.Message, value.ErrorData, value)
	case error:
		return FormatError.New(value.Error(), nil, value)
	default:
		return FormatError.New(fmt.Sprint(value), nil, nil)
	}
}

/*
Capture recovers a panic raised inside a codec and stores it in *err as a
FormatError. Every public decode / encode entry point defers it:

	func (decoder *Decoder) Decode(...) (err error) {
		defer geoerrors.Capture(&err)
		...
	}
*/
func Capture(err *error) {
	if recovered := recover(); recovered != nil {
		*err = AsFormatError(recovered)
	}
}
