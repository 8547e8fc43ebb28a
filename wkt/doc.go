// Well-Known Text encoding and decoding over the content protocol.
/*
The encoder is a content sink producing `TYPE [Z|M|ZM](...)` text; the decoder is
a hand-written linear scanner driving any content sink. WKT has no feature or
foreign-member concept, so this package only speaks the geometry and coordinate
capabilities.

Dimensionality suffixes are authoritative on decode when present. When absent, the
first position's value count picks the layout, and 3 values always read as xyz.
*/
package wkt
