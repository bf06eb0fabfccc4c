package hstring

import (
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// MarshalBinary encodes s as a protobuf BytesValue
func (s *String) MarshalBinary() ([]byte, error) {
	return proto.Marshal(wrapperspb.Bytes(s.Bytes()))
}

// UnmarshalBinary decodes a protobuf BytesValue into s
func (s *String) UnmarshalBinary(data []byte) error {
	var v wrapperspb.BytesValue
	if err := proto.Unmarshal(data, &v); err != nil {
		return err
	}
	s.Clear()
	s.AppendBytes(v.GetValue())
	return nil
}

// MarshalText returns the raw bytes, so JSON renders s as a plain string.
// Value receiver: encoding/json only finds pointer methods on addressable
// values, and String often sits unaddressable in a struct or interface.
func (s String) MarshalText() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalText replaces s with a copy of text
func (s *String) UnmarshalText(text []byte) error {
	s.Clear()
	s.AppendBytes(text)
	return nil
}

var (
	_ msgpack.CustomEncoder = String{}
	_ msgpack.CustomDecoder = (*String)(nil)
)

// EncodeMsgpack writes s as a msgpack bin value. Value receiver for the same
// reason as MarshalText.
func (s String) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeBytes(s.Bytes())
}

// DecodeMsgpack reads a msgpack bin or str value into s
func (s *String) DecodeMsgpack(dec *msgpack.Decoder) error {
	b, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	s.Clear()
	s.AppendBytes(b)
	return nil
}
