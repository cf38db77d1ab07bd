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

package logging

import (
	"bytes"
	"flag"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// glog verbosity of each named level
const (
	Error   glog.Level = 1
	Warning glog.Level = 2
	Info    glog.Level = 3
	Debug   glog.Level = 4
	Verbose glog.Level = 5
)

var appName string

// ParseLevel maps a level name to its verbosity, defaulting to Info.
func ParseLevel(level string) glog.Level {
	switch {
	case strings.EqualFold("error", level):
		return Error
	case strings.EqualFold("warning", level):
		return Warning
	case strings.EqualFold("debug", level):
		return Debug
	case strings.EqualFold("verbose", level):
		return Verbose
	}
	return Info
}

// IsLevelName reports whether level is one of the names ParseLevel knows.
func IsLevelName(level string) bool {
	for _, n := range [...]string{"error", "warning", "info", "debug", "verbose"} {
		if strings.EqualFold(n, level) {
			return true
		}
	}
	return false
}

// Init sends logs to stderr at the given level.
func Init(level string, name string) {
	setFlag("logtostderr", "true")
	setFlag("v", strconv.Itoa(int(ParseLevel(level))))
	appName = name
}

// AppName returns the name given to Init.
func AppName() string {
	return appName
}

func setFlag(name, value string) {
	if f := flag.Lookup(name); f != nil {
		f.Value.Set(value)
	}
}

// KeyValueBuffer builds the "k=v,k=v" payload of a log line.
type KeyValueBuffer struct {
	bytes.Buffer
	delimiter     byte
	pairDelimiter byte
}

func NewKVBufferForLog() *KeyValueBuffer {
	return &KeyValueBuffer{
		delimiter:     '=',
		pairDelimiter: ',',
	}
}

func NewKVBuffer() *KeyValueBuffer {
	return &KeyValueBuffer{
		pairDelimiter: '&',
		delimiter:     '=',
	}
}

var (
	logDataKeyTag    = []byte("tag")
	logDataKeyIndex  = []byte("idx")
	logDataKeyRecord = []byte("rec")
	logDataKeyError  = []byte("err")
	logDataKeyLen    = []byte("len")
	logDataKeyPath   = []byte("path")
)

func (b *KeyValueBuffer) AddBytes(key []byte, value []byte) *KeyValueBuffer {
	if b.Len() > 0 {
		b.WriteByte(b.pairDelimiter)
	}
	b.Write(key)
	b.WriteByte(b.delimiter)
	b.Write(value)
	return b
}

func (b *KeyValueBuffer) Add(key []byte, value string) *KeyValueBuffer {
	if b.Len() > 0 {
		b.WriteByte(b.pairDelimiter)
	}
	b.Write(key)
	b.WriteByte(b.delimiter)
	b.WriteString(value)
	return b
}

func (b *KeyValueBuffer) AddInt(key []byte, value int) *KeyValueBuffer {
	return b.Add(key, strconv.Itoa(value))
}

func (b *KeyValueBuffer) AddUInt64(key []byte, value uint64) *KeyValueBuffer {
	return b.Add(key, strconv.FormatUint(value, 10))
}

// AddTag writes a message tag, printable tags as is and others in hex.
func (b *KeyValueBuffer) AddTag(tag byte) *KeyValueBuffer {
	if tag > 0x20 && tag < 0x7f {
		return b.Add(logDataKeyTag, string(rune(tag)))
	}
	return b.Add(logDataKeyTag, "0x"+strconv.FormatUint(uint64(tag), 16))
}

func (b *KeyValueBuffer) AddIndex(idx uint16) *KeyValueBuffer {
	return b.AddUInt64(logDataKeyIndex, uint64(idx))
}

func (b *KeyValueBuffer) AddRecordNo(n uint64) *KeyValueBuffer {
	return b.AddUInt64(logDataKeyRecord, n)
}

func (b *KeyValueBuffer) AddLen(n int) *KeyValueBuffer {
	return b.AddInt(logDataKeyLen, n)
}

func (b *KeyValueBuffer) AddPath(p string) *KeyValueBuffer {
	return b.Add(logDataKeyPath, p)
}

func (b *KeyValueBuffer) AddError(err error) *KeyValueBuffer {
	if err == nil {
		return b
	}
	return b.Add(logDataKeyError, err.Error())
}
