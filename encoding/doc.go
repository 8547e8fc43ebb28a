// Format-agnostic codec engine for geospatial content.
/*
The engine maps mimetypes to codecs and gives callers a single Encode / Decode /
Stream surface over every registered format. Because each codec speaks the
content protocol, Stream converts between formats by wiring the source decoder
straight into the target encoder, with no intermediate object graph.
*/
package encoding
