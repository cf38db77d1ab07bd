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

package serde

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchmd/pkg/msg"
)

type testStruct struct {
	B   bool
	Int uint32
	Seq []string
	Bb  []byte
}

var testStructBytes = []byte{
	0, 1, 0, 0, 0, 2, 1, 'a', 1, 'b', 4, 't', 'e', 's', 't',
}

func TestDecodeStruct(t *testing.T) {
	got, err := Decode[testStruct](testStructBytes)
	require.NoError(t, err)
	assert.False(t, got.B)
	assert.Equal(t, uint32(1), got.Int)
	assert.Equal(t, []string{"a", "b"}, got.Seq)
	assert.Equal(t, []byte("test"), got.Bb)

	rec := msg.New(testStructBytes)
	fromRec, err := DecodeRecord[testStruct](&rec)
	require.NoError(t, err)
	assert.Equal(t, got, fromRec)
}

func TestDecodeStringFromRecord(t *testing.T) {
	rec := msg.New([]byte{1, 'a'})
	s, err := DecodeRecord[string](&rec)
	require.NoError(t, err)
	assert.Equal(t, "a", s)
}

func TestDecodeTuple(t *testing.T) {
	var tuple struct {
		A bool
		B uint32
		C []string
		D []byte
	}
	require.NoError(t, Unmarshal(testStructBytes, &tuple))
	assert.Equal(t, []string{"a", "b"}, tuple.C)
}

func TestBytesBorrowInput(t *testing.T) {
	input := []byte{3, 'x', 'y', 'z'}
	b, err := Decode[[]byte](input)
	require.NoError(t, err)
	input[1] = 'X'
	assert.Equal(t, []byte("Xyz"), b)
}

func TestDecodeIntegers(t *testing.T) {
	type ints struct {
		I8  int8
		U16 uint16
		I32 int32
		U64 uint64
		I64 int64
		W   Uint128
	}
	input := []byte{
		0xff,
		0x34, 0x12,
		0xfe, 0xff, 0xff, 0xff,
		1, 0, 0, 0, 0, 0, 0, 0x80,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		1, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0,
	}
	got, err := Decode[ints](input)
	require.NoError(t, err)
	assert.Equal(t, int8(-1), got.I8)
	assert.Equal(t, uint16(0x1234), got.U16)
	assert.Equal(t, int32(-2), got.I32)
	assert.Equal(t, uint64(0x8000000000000001), got.U64)
	assert.Equal(t, int64(-1), got.I64)
	assert.Equal(t, Uint128{Lo: 1, Hi: 2}, got.W)

	out, err := Encode(got)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestBoolNonZeroIsTrue(t *testing.T) {
	for _, c := range []byte{1, 2, 0x80, 0xff} {
		v, err := Decode[bool]([]byte{c})
		require.NoError(t, err)
		assert.True(t, v)
	}
	v, err := Decode[bool]([]byte{0})
	require.NoError(t, err)
	assert.False(t, v)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
		fn    func([]byte) error
		want  *Error
	}{
		{"short u32", []byte{1, 2, 3}, func(b []byte) error { _, err := Decode[uint32](b); return err }, ErrEof},
		{"empty bool", nil, func(b []byte) error { _, err := Decode[bool](b); return err }, ErrEof},
		{"short bytes", []byte{4, 'a'}, func(b []byte) error { _, err := Decode[[]byte](b); return err }, ErrEof},
		{"trailing", []byte{1, 0, 0}, func(b []byte) error { _, err := Decode[uint16](b); return err }, ErrTrailingCharacters},
		{"bad utf8", []byte{2, 0xc3, 0x28}, func(b []byte) error { _, err := Decode[string](b); return err }, ErrExpectedString},
		{"seq count", []byte{3, 1, 'a'}, func(b []byte) error { _, err := Decode[[]string](b); return err }, ErrEof},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fn(tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestRawBytesSkipUTF8Check(t *testing.T) {
	b, err := Decode[[]byte]([]byte{2, 0xc3, 0x28})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc3, 0x28}, b)
}

func TestFloatUnsupported(t *testing.T) {
	_, err := Decode[float64](make([]byte, 8))
	require.Error(t, err)
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindMessage, kind)

	_, err = Encode(struct{ F float32 }{1})
	assert.Error(t, err)
}

func TestPlatformIntsRejected(t *testing.T) {
	_, err := Decode[int](make([]byte, 8))
	assert.Error(t, err)
}

func TestPaddingAndSkippedFields(t *testing.T) {
	type padded struct {
		A    uint16
		_    [3]byte
		B    uint8
		Note string `wire:"-"`
	}
	v := padded{A: 7, B: 9, Note: "not on the wire"}
	out, err := Encode(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 0, 0, 0, 9}, out)

	got, err := Decode[padded]([]byte{7, 0, 0xaa, 0xbb, 0xcc, 9})
	require.NoError(t, err)
	assert.Equal(t, uint16(7), got.A)
	assert.Equal(t, uint8(9), got.B)
	assert.Empty(t, got.Note)
}

func TestFixedArrays(t *testing.T) {
	type fixed struct {
		Code [4]byte
		Vals [2]uint16
	}
	input := []byte{'c', 'u', 0, 0, 1, 0, 2, 0}
	got, err := Decode[fixed](input)
	require.NoError(t, err)
	assert.Equal(t, [4]byte{'c', 'u'}, got.Code)
	assert.Equal(t, [2]uint16{1, 2}, got.Vals)
}

func TestEncodeLimits(t *testing.T) {
	_, err := Encode(make([]byte, 256))
	assert.Error(t, err)
	_, err = Encode(string([]byte{0xff}))
	assert.True(t, errors.Is(err, ErrExpectedString))
}

func TestRoundTripStruct(t *testing.T) {
	in := testStruct{B: true, Int: 0xdeadbeef, Seq: []string{"x", "", "yz"}, Bb: []byte{0, 1, 2}}
	out, err := Encode(in)
	require.NoError(t, err)
	got, err := Decode[testStruct](out)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestMarshalRecord(t *testing.T) {
	rec, err := MarshalRecord(&testStruct{Int: 1, Seq: []string{"a", "b"}, Bb: []byte("test")})
	require.NoError(t, err)
	assert.Equal(t, testStructBytes, rec.Bytes())

	_, err = MarshalRecord(make([]byte, 100))
	assert.Error(t, err)
}

type point struct {
	x, y int16
}

func (p *point) UnmarshalWire(d *Decoder) (err error) {
	if p.x, err = d.Int16(); err != nil {
		return
	}
	p.y, err = d.Int16()
	return
}

func (p *point) MarshalWire(e *Encoder) error {
	e.PutInt16(p.x)
	e.PutInt16(p.y)
	return nil
}

func TestCustomCoder(t *testing.T) {
	type path struct {
		Points []point
	}
	in := path{Points: []point{{1, -1}, {2, -2}}}
	out, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 1, 0, 0xff, 0xff, 2, 0, 0xfe, 0xff}, out)

	got, err := Decode[path](out)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestErrorKindMatching(t *testing.T) {
	err := SyntaxErrorf("unknown tag %#x", 0xff)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.False(t, errors.Is(err, ErrEof))
	assert.Equal(t, KindSyntax, err.Kind())
	assert.Contains(t, err.Error(), "unknown tag 0xff")
	assert.Equal(t, "TrailingCharacters", KindTrailingCharacters.String())
}
