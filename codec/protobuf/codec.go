// Package protobuf encodes route bundles as Protocol Buffers.
//
// Bundles are encoded as a google.protobuf.ListValue holding one
// google.protobuf.Struct per route, with the same field names as the JSON
// codec. Clients in any language can decode them with the well known types
// and no generated code.
package protobuf

import (
	"encoding/json"

	"github.com/RobertWHurst/signpost"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ContentType is the media type of encoded bundles.
const ContentType = "application/x-protobuf"

// Codec is a signpost.BundleCodec for Protocol Buffers.
type Codec struct{}

var _ signpost.BundleCodec = Codec{}

// Marshal implements signpost.BundleCodec.
func (Codec) Marshal(descriptors []*signpost.RouteDescriptor) ([]byte, error) {
	jsonBytes, err := json.Marshal(descriptors)
	if err != nil {
		return nil, err
	}

	var values []any
	if err := json.Unmarshal(jsonBytes, &values); err != nil {
		return nil, err
	}

	list, err := structpb.NewList(values)
	if err != nil {
		return nil, err
	}

	return proto.Marshal(list)
}

// Unmarshal implements signpost.BundleCodec.
func (Codec) Unmarshal(data []byte) ([]*signpost.RouteDescriptor, error) {
	list := &structpb.ListValue{}
	if err := proto.Unmarshal(data, list); err != nil {
		return nil, err
	}

	jsonBytes, err := json.Marshal(list.AsSlice())
	if err != nil {
		return nil, err
	}

	descriptors := []*signpost.RouteDescriptor{}
	if err := json.Unmarshal(jsonBytes, &descriptors); err != nil {
		return nil, err
	}
	return descriptors, nil
}

// ContentType implements signpost.BundleCodec.
func (Codec) ContentType() string {
	return ContentType
}
