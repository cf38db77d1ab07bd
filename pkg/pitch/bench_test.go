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

package pitch

import (
	"testing"

	"pitchmd/pkg/msg"
)

var (
	gMessage Message
	gRecord  msg.FixedRecord
)

func BenchmarkDecode(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m, err := Decode(addOrderBytes)
		if err != nil {
			b.FailNow()
		}
		gMessage = m
	}
}

func BenchmarkDecodeRecord(b *testing.B) {
	rec := msg.New(addOrderBytes)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m, err := DecodeRecord(&rec)
		if err != nil {
			b.FailNow()
		}
		gMessage = m
	}
}

func BenchmarkAppendEncode(b *testing.B) {
	buf := make([]byte, 0, msg.MaxPayload)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var err error
		if buf, err = AppendEncode(buf[:0], &addOrderMsg); err != nil {
			b.FailNow()
		}
	}
}

func BenchmarkEncodeRecord(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rec, err := EncodeRecord(&addOrderMsg)
		if err != nil {
			b.FailNow()
		}
		gRecord = rec
	}
}
