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
	"unicode/utf8"
)

// Encoder appends the positional layout read by Decoder.
type Encoder struct {
	buf []byte
}

func NewEncoder(capacity int) *Encoder {
	return &Encoder{buf: make([]byte, 0, capacity)}
}

// NewEncoderBuffer appends to buf, reusing its capacity.
func NewEncoderBuffer(buf []byte) *Encoder {
	return &Encoder{buf: buf}
}

func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Len() int {
	return len(e.buf)
}

func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

func (e *Encoder) PutBool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

func (e *Encoder) PutUint8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *Encoder) PutInt8(v int8) {
	e.buf = append(e.buf, uint8(v))
}

func (e *Encoder) PutUint16(v uint16) {
	e.buf = byteOrder.AppendUint16(e.buf, v)
}

func (e *Encoder) PutInt16(v int16) {
	e.PutUint16(uint16(v))
}

func (e *Encoder) PutUint32(v uint32) {
	e.buf = byteOrder.AppendUint32(e.buf, v)
}

func (e *Encoder) PutInt32(v int32) {
	e.PutUint32(uint32(v))
}

func (e *Encoder) PutUint64(v uint64) {
	e.buf = byteOrder.AppendUint64(e.buf, v)
}

func (e *Encoder) PutInt64(v int64) {
	e.PutUint64(uint64(v))
}

func (e *Encoder) PutUint128(v Uint128) {
	e.PutUint64(v.Lo)
	e.PutUint64(v.Hi)
}

func (e *Encoder) PutInt128(v Int128) {
	e.PutUint128(Uint128(v))
}

// PutBytes writes a 1-byte length and b. b may not exceed 255 bytes.
func (e *Encoder) PutBytes(b []byte) error {
	if len(b) > 0xff {
		return Errorf("serde: byte string of %d bytes exceeds the 255 byte limit", len(b))
	}
	e.buf = append(e.buf, uint8(len(b)))
	e.buf = append(e.buf, b...)
	return nil
}

func (e *Encoder) PutString(s string) error {
	if !utf8.ValidString(s) {
		return ErrExpectedString
	}
	if len(s) > 0xff {
		return Errorf("serde: string of %d bytes exceeds the 255 byte limit", len(s))
	}
	e.buf = append(e.buf, uint8(len(s)))
	e.buf = append(e.buf, s...)
	return nil
}

// PutFixed writes b into an n-byte field, padding with NUL.
func (e *Encoder) PutFixed(b []byte, n int) error {
	if len(b) > n {
		return Errorf("serde: %d bytes do not fit a %d byte field", len(b), n)
	}
	e.buf = append(e.buf, b...)
	for i := len(b); i < n; i++ {
		e.buf = append(e.buf, 0)
	}
	return nil
}

func (e *Encoder) PutFixedString(s string, n int) error {
	if !utf8.ValidString(s) {
		return ErrExpectedString
	}
	if len(s) > n {
		return Errorf("serde: %q does not fit a %d byte field", s, n)
	}
	e.buf = append(e.buf, s...)
	for i := len(s); i < n; i++ {
		e.buf = append(e.buf, 0)
	}
	return nil
}

func (e *Encoder) PutSeqLen(n int) error {
	if n < 0 || n > 0xff {
		return Errorf("serde: sequence of %d elements exceeds the 255 element limit", n)
	}
	e.buf = append(e.buf, uint8(n))
	return nil
}

// PutZero writes n zero bytes.
func (e *Encoder) PutZero(n int) {
	for i := 0; i < n; i++ {
		e.buf = append(e.buf, 0)
	}
}
