// Package json encodes route bundles as JSON.
package json

import (
	"encoding/json"

	"github.com/RobertWHurst/signpost"
)

// ContentType is the media type of encoded bundles.
const ContentType = "application/json"

// Codec is a signpost.BundleCodec for JSON.
type Codec struct{}

var _ signpost.BundleCodec = Codec{}

// Marshal implements signpost.BundleCodec.
func (Codec) Marshal(descriptors []*signpost.RouteDescriptor) ([]byte, error) {
	return json.Marshal(descriptors)
}

// Unmarshal implements signpost.BundleCodec.
func (Codec) Unmarshal(data []byte) ([]*signpost.RouteDescriptor, error) {
	descriptors := []*signpost.RouteDescriptor{}
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, err
	}
	return descriptors, nil
}

// ContentType implements signpost.BundleCodec.
func (Codec) ContentType() string {
	return ContentType
}
