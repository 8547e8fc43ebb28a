// Well-Known Binary encoding and decoding over the content protocol.
/*
The encoder writes ISO WKB with a configurable byte order; the decoder accepts
both ISO thousands-offset type codes and EWKB flag bits, honoring the byte-order
flag each nested geometry carries. WKB has no feature concept, so this package
only speaks the geometry capability.
*/
package wkb
