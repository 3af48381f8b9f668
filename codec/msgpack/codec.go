// Package msgpack encodes route bundles as MessagePack.
package msgpack

import (
	"github.com/RobertWHurst/signpost"
	"github.com/vmihailenco/msgpack/v5"
)

// ContentType is the media type of encoded bundles.
const ContentType = "application/msgpack"

// Codec is a signpost.BundleCodec for MessagePack. Descriptors are encoded
// with the same field names as the JSON codec.
type Codec struct{}

var _ signpost.BundleCodec = Codec{}

// Marshal implements signpost.BundleCodec.
func (Codec) Marshal(descriptors []*signpost.RouteDescriptor) ([]byte, error) {
	return msgpack.Marshal(descriptors)
}

// Unmarshal implements signpost.BundleCodec.
func (Codec) Unmarshal(data []byte) ([]*signpost.RouteDescriptor, error) {
	descriptors := []*signpost.RouteDescriptor{}
	if err := msgpack.Unmarshal(data, &descriptors); err != nil {
		return nil, err
	}
	return descriptors, nil
}

// ContentType implements signpost.BundleCodec.
func (Codec) ContentType() string {
	return ContentType
}
