package geometry

import (
	"github.com/illuscio-dev/geotools-go/content"
	"github.com/illuscio-dev/geotools-go/coords"
)

/*
Feature pairs an optional geometry with an optional identifier, a property map and
optional bounding-box / foreign-member metadata.

ID is nil, a string, or an integer-valued number, matching what the wire formats
can carry. Custom holds foreign members: top level keys outside the core schema.
*/
type Feature struct {
	ID         interface{}
	Geometry   Geometry
	Properties map[string]interface{}
	Bounds     *coords.Box
	Custom     map[string]interface{}
}

// WriteTo replays the feature into a content sink.
func (feature *Feature) WriteTo(sink content.FeatureContent) {
	var writeGeometry func(content.GeometryContent)
	if feature.Geometry != nil {
		geom := feature.Geometry
		writeGeometry = func(child content.GeometryContent) {
			geom.WriteTo(child)
		}
	}

	var opts *content.FeatureOpts
	if feature.Bounds != nil || len(feature.Custom) > 0 {
		opts = &content.FeatureOpts{Bounds: feature.Bounds, Custom: feature.Custom}
	}

	sink.Feature(feature.ID, writeGeometry, feature.Properties, opts)
}

// FeatureCollection is an ordered sequence of features with optional bounding-box
// and foreign-member metadata.
type FeatureCollection struct {
	Features []*Feature
	Bounds   *coords.Box
	Custom   map[string]interface{}
}

// WriteTo replays the collection into a content sink, forwarding an exact feature
// count.
func (collection *FeatureCollection) WriteTo(sink content.FeatureContent) {
	var opts *content.FeatureOpts
	if collection.Bounds != nil || len(collection.Custom) > 0 {
		opts = &content.FeatureOpts{
			Bounds: collection.Bounds,
			Custom: collection.Custom,
		}
	}

	sink.FeatureCollection(
		func(child content.FeatureContent) {
			for _, feature := range collection.Features {
				feature.WriteTo(child)
			}
		},
		len(collection.Features),
		opts,
	)
}
