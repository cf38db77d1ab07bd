//
//  Copyright 2023 PayPal Inc.
//
//  Licensed to the Apache Software Foundation (ASF) under one or more
//  contributor license agreements.  See the NOTICE file distributed with
//  this work for additional information regarding copyright ownership.
//  The ASF licenses this file to You under the Apache License, Version 2.0
//  (the "License"); you may not use this file except in compliance with
//  the License.  You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

/*
Package serde maps record types onto fixed, positional, little-endian byte
layouts.

Layout rules:

  - bool: 1 byte, 0 is false, any other value is true
  - integers of 1, 2, 4, 8 and 16 bytes: that many bytes, little-endian
  - []byte and string: 1 length byte followed by the raw bytes; strings must be UTF-8
  - arrays and structs: their elements in declaration order, no prefix
  - other slices: 1 count byte followed by the elements
  - floating point values are rejected

Decoding is exact: input left over once the top-level value is complete is
ErrTrailingCharacters.

Types implementing Unmarshaler and Marshaler are coded through those methods
without reflection; this is how the protocol messages are handled. Other
types go through a reflection walk.
*/
package serde

import (
	"pitchmd/pkg/msg"
)

type Unmarshaler interface {
	UnmarshalWire(d *Decoder) error
}

type Marshaler interface {
	MarshalWire(e *Encoder) error
}

// Uint128 is a 16-byte unsigned integer, Lo holds the first 8 wire bytes.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Int128 is a 16-byte two's complement integer.
type Int128 Uint128

// Unmarshal decodes data into the value v points to and requires data to be
// fully consumed.
func Unmarshal(data []byte, v interface{}) error {
	d := Decoder{input: data}
	if u, ok := v.(Unmarshaler); ok {
		if err := u.UnmarshalWire(&d); err != nil {
			return err
		}
	} else if err := decodeReflect(&d, v); err != nil {
		return err
	}
	return d.Finish()
}

// UnmarshalRecord decodes the valid payload of r.
func UnmarshalRecord(r *msg.FixedRecord, v interface{}) error {
	return Unmarshal(r.Bytes(), v)
}

func Marshal(v interface{}) ([]byte, error) {
	var e Encoder
	if err := marshalTo(&e, v); err != nil {
		return nil, err
	}
	return e.buf, nil
}

// MarshalRecord encodes v into a FixedRecord. It fails when the encoding is
// longer than msg.MaxPayload.
func MarshalRecord(v interface{}) (rec msg.FixedRecord, err error) {
	var buf [msg.MaxPayload]byte
	e := Encoder{buf: buf[:0]}
	if err = marshalTo(&e, v); err != nil {
		return
	}
	if len(e.buf) > msg.MaxPayload {
		err = Errorf("serde: encoded size %d exceeds record payload %d", len(e.buf), msg.MaxPayload)
		return
	}
	rec = msg.New(e.buf)
	return
}

func marshalTo(e *Encoder, v interface{}) error {
	if m, ok := v.(Marshaler); ok {
		return m.MarshalWire(e)
	}
	return encodeReflect(e, v)
}

// Decode is the generic form of Unmarshal.
func Decode[T any](data []byte) (v T, err error) {
	err = Unmarshal(data, &v)
	return
}

func DecodeRecord[T any](r *msg.FixedRecord) (v T, err error) {
	err = Unmarshal(r.Bytes(), &v)
	return
}

func Encode[T any](v T) ([]byte, error) {
	return Marshal(&v)
}

func EncodeRecord[T any](v T) (msg.FixedRecord, error) {
	return MarshalRecord(&v)
}
