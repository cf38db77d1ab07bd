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

package mdcache

import (
	"fmt"

	"pitchmd/pkg/msg"
	"pitchmd/pkg/serde"
	"pitchmd/pkg/timeutil"
)

// HeaderSize is the size of the header at the start of a segment. Records
// follow it back to back.
const HeaderSize = 64

// Byte offsets of the header fields the writer keeps updating.
const (
	offShutTime    = 8
	offCntMessages = 24
)

// MdHeader is the 64 byte header the recorder writes ahead of its records.
type MdHeader struct {
	InitTime    int64
	ShutTime    int64
	MaxMessages uint64
	CntMessages uint64
	RecSize     int32
	SessionNo   int32
	MdLen       uint64
	_           [16]byte
}

// DecodeHeader reads a header from exactly HeaderSize bytes.
func DecodeHeader(b []byte) (h MdHeader, err error) {
	err = serde.Unmarshal(b, &h)
	return
}

func (h *MdHeader) Encode() ([]byte, error) {
	return serde.Marshal(h)
}

// MinMdLen is the smallest segment holding the header and max records.
func MinMdLen(max uint64) uint64 {
	return HeaderSize + max*msg.RecordSize
}

// Validate checks the header against a segment of fileSize bytes. A negative
// fileSize skips the size check.
func (h *MdHeader) Validate(fileSize int64) error {
	if h.RecSize != 0 && h.RecSize != msg.RecordSize {
		return fmt.Errorf("%w: record size %d, want %d", ErrInvalidHeader, h.RecSize, msg.RecordSize)
	}
	if h.CntMessages > h.MaxMessages {
		return fmt.Errorf("%w: %d messages exceed capacity %d", ErrInvalidHeader, h.CntMessages, h.MaxMessages)
	}
	if h.MaxMessages > (maxMapLen-HeaderSize)/msg.RecordSize {
		return fmt.Errorf("%w: capacity %d too large", ErrInvalidHeader, h.MaxMessages)
	}
	if need := MinMdLen(h.MaxMessages); h.MdLen < need {
		return fmt.Errorf("%w: md_len %d below %d needed for %d records", ErrInvalidHeader, h.MdLen, need, h.MaxMessages)
	}
	if h.MdLen > maxMapLen {
		return fmt.Errorf("%w: md_len %d too large", ErrInvalidHeader, h.MdLen)
	}
	if fileSize >= 0 && h.MdLen > uint64(fileSize) {
		return fmt.Errorf("%w: md_len %d beyond file size %d", ErrInvalidHeader, h.MdLen, fileSize)
	}
	return nil
}

func (h MdHeader) String() string {
	return fmt.Sprintf("init_time: %s, shut_time: %s\nsession: %d max_msg: %d, cnt_msgs: %d",
		timeutil.FormatUnix(h.InitTime), timeutil.FormatUnix(h.ShutTime),
		h.SessionNo, h.MaxMessages, h.CntMessages)
}
