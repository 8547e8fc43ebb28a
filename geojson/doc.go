// RFC 7946 GeoJSON encoding and decoding over the content protocol.
/*
The encoder is a content sink producing GeoJSON text; the decoder walks a parsed
JSON value tree and drives any content sink. Because both sides speak the content
protocol, a GeoJSON decode can stream straight into another format's encoder with
no intermediate object graph, and any producer can stream into GeoJSON text.

Line-delimited variants (GeoJSONSeq / GeoJSONL / NDJSON) are handled by DecodeSeq
and SeqEncoder. BSON documents holding GeoJSON (as MongoDB stores geometry) decode
through DecodeBSON.
*/
package geojson
