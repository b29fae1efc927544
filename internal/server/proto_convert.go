package server

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Binary frames carry the same {type, payload} envelope as the JSON ones,
// encoded as a google.protobuf.Struct.

func envelopeToProto(msg outboundMessage) (*structpb.Struct, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Type, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode %s: %w", msg.Type, err)
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", msg.Type, err)
	}
	return s, nil
}

func marshalProtoEnvelope(msg outboundMessage) ([]byte, error) {
	s, err := envelopeToProto(msg)
	if err != nil {
		return nil, err
	}
	data, err := proto.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}
	return data, nil
}

func unmarshalProtoEnvelope(data []byte) (inboundMessage, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return inboundMessage{}, fmt.Errorf("protobuf unmarshal error: %w", err)
	}
	var in inboundMessage
	if v, ok := s.Fields["type"]; ok {
		in.Type = v.GetStringValue()
	}
	if v, ok := s.Fields["payload"]; ok {
		raw, err := v.MarshalJSON()
		if err != nil {
			return inboundMessage{}, fmt.Errorf("payload: %w", err)
		}
		in.Payload = raw
	}
	return in, nil
}
