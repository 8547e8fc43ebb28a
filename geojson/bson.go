package geojson

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/illuscio-dev/geotools-go/geoerrors"
)

/*
DecodeBSON decodes a BSON document holding GeoJSON content. MongoDB stores
geospatial fields as GeoJSON-shaped subdocuments, so a raw document read off a
Mongo cursor can be fed here without a JSON round trip on the application side.

The document is rendered to relaxed extended JSON by the bson driver and then
walked by the ordinary decode path, so every option and error behavior of Decode
applies unchanged.
*/
func (decoder *Decoder) DecodeBSON(document []byte, sink interface{}) (err error) {
	defer geoerrors.Capture(&err)

	jsonBytes, marshalErr := bson.MarshalExtJSON(bson.Raw(document), false, false)
	if marshalErr != nil {
		geoerrors.FormatError.Panic(
			"malformed BSON document", nil, marshalErr,
		)
	}

	return decoder.Decode(jsonBytes, sink)
}
