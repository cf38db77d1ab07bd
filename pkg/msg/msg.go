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

// Package msg defines the fixed-capacity record envelope shared by the
// recorder, the shared-memory cache and the decoders.
package msg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"
)

const (
	// RecordSize is the size of one FixedRecord as it is laid out in the
	// shared-memory segment.
	RecordSize = 64
	// MaxPayload is the number of payload bytes a FixedRecord can hold.
	MaxPayload = RecordSize - 2
)

var ErrRecordFull = errors.New("msg: record payload full")

// FixedRecord is a 2-byte length followed by up to 62 payload bytes.
// Only the first Len() bytes of the payload are meaningful.
//
// The layout must stay byte compatible with the recorder process, which
// writes the length little-endian in the first two bytes.
type FixedRecord struct {
	len  uint16
	data [MaxPayload]byte
}

var _ [RecordSize - unsafe.Sizeof(FixedRecord{})]struct{}
var _ [unsafe.Sizeof(FixedRecord{}) - RecordSize]struct{}

// New copies b into a new record. Input longer than MaxPayload is truncated.
func New(b []byte) FixedRecord {
	var r FixedRecord
	r.len = uint16(copy(r.data[:], b))
	return r
}

func (r *FixedRecord) Len() int {
	n := int(r.len)
	if n > MaxPayload {
		n = MaxPayload
	}
	return n
}

// Bytes returns the valid payload. The slice aliases the record.
func (r *FixedRecord) Bytes() []byte {
	return r.data[:r.Len()]
}

func (r *FixedRecord) Available() int {
	return MaxPayload - r.Len()
}

// Append adds b to the payload. Nothing is written if b does not fit.
func (r *FixedRecord) Append(b []byte) error {
	if len(b) > r.Available() {
		return ErrRecordFull
	}
	n := r.Len()
	copy(r.data[n:], b)
	r.len = uint16(n + len(b))
	return nil
}

func (r *FixedRecord) AppendByte(c byte) error {
	n := r.Len()
	if n >= MaxPayload {
		return ErrRecordFull
	}
	r.data[n] = c
	r.len++
	return nil
}

// Write implements io.Writer with the same all-or-nothing rule as Append.
func (r *FixedRecord) Write(p []byte) (int, error) {
	if err := r.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (r *FixedRecord) Reset() {
	r.len = 0
}

// Equal compares the length and the valid payload bytes only.
func (r *FixedRecord) Equal(o *FixedRecord) bool {
	return r.len == o.len && bytes.Equal(r.Bytes(), o.Bytes())
}

func (r FixedRecord) String() string {
	return fmt.Sprintf("len: %d, data: 0x%02x%02x%02x...", r.len, r.data[0], r.data[1], r.data[2])
}

// AppendRaw appends the RecordSize byte image of r, as laid out in a
// segment, to dst. Payload bytes past Len() are written as zero.
func (r *FixedRecord) AppendRaw(dst []byte) []byte {
	var raw [RecordSize]byte
	n := r.Len()
	binary.LittleEndian.PutUint16(raw[:2], uint16(n))
	copy(raw[2:], r.data[:n])
	return append(dst, raw[:]...)
}

// FromRaw reads a record from its RecordSize byte image.
func FromRaw(b []byte) (r FixedRecord, err error) {
	if len(b) != RecordSize {
		err = fmt.Errorf("msg: raw record of %d bytes, want %d", len(b), RecordSize)
		return
	}
	r.len = binary.LittleEndian.Uint16(b[:2])
	if int(r.len) > MaxPayload {
		err = fmt.Errorf("msg: record length %d exceeds %d", r.len, MaxPayload)
		return
	}
	copy(r.data[:], b[2:])
	return
}
