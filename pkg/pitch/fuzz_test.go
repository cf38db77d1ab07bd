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
	"bytes"
	"testing"
)

// FuzzDecode feeds arbitrary bytes to Decode. Whatever decodes must encode
// back to the same bytes, apart from nonzero printable flags which decode to
// true and encode as 1.
func FuzzDecode(f *testing.F) {
	f.Add(addOrderBytes)
	for _, m := range sampleMessages() {
		out, err := Encode(&m)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(out)
	}
	f.Add([]byte{0xff, 0, 0, 0, 0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, b []byte) {
		m, err := Decode(b)
		if err != nil {
			return
		}
		if len(b) != WireLen(b[0]) {
			t.Fatalf("decoded %d bytes for tag %q, wire length is %d", len(b), b[0], WireLen(b[0]))
		}
		out, err := Encode(&m)
		if err != nil {
			t.Fatalf("encode of decoded %s failed: %v", m, err)
		}
		want := b
		if c := b[0]; (c == TagOrderExecuted || c == TagOrderExecutedWithPrice) && b[1] > 1 {
			want = append([]byte(nil), b...)
			want[1] = 1
		}
		if !bytes.Equal(out, want) {
			t.Fatalf("round trip mismatch\n got %x\nwant %x", out, want)
		}
	})
}
