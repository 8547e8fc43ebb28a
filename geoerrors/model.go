package geoerrors

import (
	"fmt"
	"runtime/debug"
	"strconv"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"
)

/*
GeoErrorType defines a TYPE of error the codec can return. Each type has a unique
Name and ApiCode for the library ecosystem.

Codes 2000-2999 are reserved for the geotools default error definitions.

Since types are declared as pointers, to protect against accidental mutation of the
error type by other packages, the underlying fields of this struct are private and
accessed through functions. Define new error types using NewGeoErrorType().
*/
type GeoErrorType struct {
	// Unique human-readable name of the error type.
	name string

	// Unique number to identify the error type.
	apiCode int
}

// Returns a geo error type definition. Each definition should only need to be
// declared once for any given ecosystem, ensuring consistent error codes and names
// across all services / libraries consuming the codec.
func NewGeoErrorType(name string, apiCode int) *GeoErrorType {
	return &GeoErrorType{name: name, apiCode: apiCode}
}

// Returns a new geo error to be returned by a codec entry point or panicked.
func (errorType *GeoErrorType) New(
	message string,
	errorData map[string]interface{},
	source error,
) *GeoError {
	geoError := GeoError{
		GeoErrorType: errorType,
		Message:      message,
		ID:           uuid.NewV4(),
		ErrorData:    errorData,
		sourceErr:    source,
		sourceStack:  debug.Stack(),
		frame:        xerrors.Caller(0),
	}
	return &geoError
}

/*
Creates a new error that is immediately passed to a panic. Expected to be recovered
at the codec's public decode / encode boundary. Allows errors to be raised from
anywhere inside a recursive decode without explicitly passing them up a chain of
nested function returns.
*/
func (errorType *GeoErrorType) Panic(
	message string,
	errorData map[string]interface{},
	source error,
) {
	panic(errorType.New(message, errorData, source))
}

// Unique human-readable name of the error type.
func (errorType *GeoErrorType) Name() string {
	return errorType.name
}

// Unique number identifying the error type.
func (errorType *GeoErrorType) ApiCode() int {
	return errorType.apiCode
}

// Allows the error type definition itself to also be a valid error for things like
// testing error equality.
func (errorType *GeoErrorType) Error() string {
	return errorType.name + " (" + strconv.Itoa(errorType.apiCode) + ")"
}

// Used to return a specific error instance.
type GeoError struct {
	// The type of error we are returning.
	*GeoErrorType

	// A message detailing what caused the error.
	Message string

	// An id for the error being returned.
	ID uuid.UUID

	// A string / any mapping of data related to the error: the offending substring
	// of a malformed document, the field name a cast failed on, and so on. Always
	// populated with enough context to diagnose without re-running in a debugger.
	ErrorData map[string]interface{}

	// If this error was returned because of another error, the original error is
	// stored here.
	sourceErr error

	// The debug.Stack() from where this error was instantiated.
	sourceStack []byte

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// Returns true if the underlying type of this error is the same as errorType.
func (geoError *GeoError) IsType(errorType *GeoErrorType) bool {
	return geoError.GeoErrorType.Error() == errorType.Error()
}

// Error string to conform to the builtin error interface.
func (geoError *GeoError) Error() string {
	return geoError.GeoErrorType.Error() + " - " + geoError.Message
}

// Implements xerrors.Wrapper, exposing the cause chain.
func (geoError *GeoError) Unwrap() error {
	return geoError.sourceErr
}

// More verbose error message that includes a debug.Stack() and source error
// information. Not part of Error() by default since a stack may contain more than a
// caller wants to report.
func (geoError *GeoError) LogMessage() string {
	return fmt.Sprint(
		"\nMESSAGE: ",
		geoError.Error(),
		"\nORIGINAL: ",
		geoError.sourceErr,
		"\nPANIC STACK:\n",
		string(geoError.sourceStack),
	)
}
