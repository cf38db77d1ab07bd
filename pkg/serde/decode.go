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
	"encoding/binary"
	"unicode/utf8"
	"unsafe"
)

var byteOrder = binary.LittleEndian

// Decoder consumes a positional little-endian byte layout front to back.
//
// Byte and string values returned by a Decoder alias the input; they stay
// valid only as long as the caller keeps the input alive and unmodified.
// A Decoder never allocates.
type Decoder struct {
	input []byte
	off   int
}

func NewDecoder(b []byte) *Decoder {
	return &Decoder{input: b}
}

// Reset points d at a new input.
func (d *Decoder) Reset(b []byte) {
	d.input = b
	d.off = 0
}

func (d *Decoder) Offset() int {
	return d.off
}

func (d *Decoder) Remaining() int {
	return len(d.input) - d.off
}

// Finish reports ErrTrailingCharacters unless the whole input was consumed.
func (d *Decoder) Finish() error {
	if d.off != len(d.input) {
		return ErrTrailingCharacters
	}
	return nil
}

func (d *Decoder) next(n int) ([]byte, error) {
	if n < 0 || len(d.input)-d.off < n {
		return nil, ErrEof
	}
	b := d.input[d.off : d.off+n : d.off+n]
	d.off += n
	return b, nil
}

func (d *Decoder) Peek() (byte, error) {
	if d.off >= len(d.input) {
		return 0, ErrEof
	}
	return d.input[d.off], nil
}

// Bool reads one byte, zero is false and anything else is true.
func (d *Decoder) Bool() (bool, error) {
	c, err := d.Uint8()
	return c != 0, err
}

func (d *Decoder) Uint8() (uint8, error) {
	if d.off >= len(d.input) {
		return 0, ErrEof
	}
	c := d.input[d.off]
	d.off++
	return c, nil
}

func (d *Decoder) Int8() (int8, error) {
	c, err := d.Uint8()
	return int8(c), err
}

func (d *Decoder) Uint16() (uint16, error) {
	b, err := d.next(2)
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint16(b), nil
}

func (d *Decoder) Int16() (int16, error) {
	v, err := d.Uint16()
	return int16(v), err
}

func (d *Decoder) Uint32() (uint32, error) {
	b, err := d.next(4)
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint32(b), nil
}

func (d *Decoder) Int32() (int32, error) {
	v, err := d.Uint32()
	return int32(v), err
}

func (d *Decoder) Uint64() (uint64, error) {
	b, err := d.next(8)
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint64(b), nil
}

func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

func (d *Decoder) Uint128() (v Uint128, err error) {
	var b []byte
	if b, err = d.next(16); err != nil {
		return
	}
	v.Lo = byteOrder.Uint64(b[0:8])
	v.Hi = byteOrder.Uint64(b[8:16])
	return
}

func (d *Decoder) Int128() (Int128, error) {
	v, err := d.Uint128()
	return Int128(v), err
}

// Bytes reads a 1-byte length followed by that many raw bytes.
// The content is not checked.
func (d *Decoder) Bytes() ([]byte, error) {
	n, err := d.Uint8()
	if err != nil {
		return nil, err
	}
	return d.next(int(n))
}

// String reads a length-prefixed UTF-8 string without copying it.
func (d *Decoder) String() (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrExpectedString
	}
	return unsafeString(b), nil
}

// FixedBytes reads exactly n raw bytes with no length prefix.
func (d *Decoder) FixedBytes(n int) ([]byte, error) {
	return d.next(n)
}

// FixedString reads an n-byte NUL padded field, drops the trailing NULs and
// validates the rest as UTF-8.
func (d *Decoder) FixedString(n int) (string, error) {
	b, err := d.next(n)
	if err != nil {
		return "", err
	}
	b = TrimNul(b)
	if !utf8.Valid(b) {
		return "", ErrExpectedString
	}
	return unsafeString(b), nil
}

// SeqLen reads the 1-byte element count that prefixes a variable length sequence.
func (d *Decoder) SeqLen() (int, error) {
	n, err := d.Uint8()
	return int(n), err
}

// Skip discards n bytes.
func (d *Decoder) Skip(n int) error {
	_, err := d.next(n)
	return err
}

func TrimNul(b []byte) []byte {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return b[:n]
}

func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
