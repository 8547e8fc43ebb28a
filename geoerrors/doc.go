/*
Geotools error model definition and default codec errors.

Every decode and encode entry point in this library reports failures through a
single error family so callers only ever need one catch site.

This package defines two main objects for handling errors:

• GeoErrorType defines an error type.

• GeoError is an instance of an error which contains a GeoErrorType.

Default GeoErrorType Variables

FormatError is the only type a caller should expect from decode; TypeCastError
exists for internal raising and is always rewrapped into FormatError before it
crosses a package boundary.
*/
package geoerrors
