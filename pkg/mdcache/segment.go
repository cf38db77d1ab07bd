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
	"bufio"
	"fmt"
	"os"

	"pitchmd/pkg/msg"
)

// WriteSegment writes a complete segment file holding recs, padded to MdLen.
// Zero RecSize, CntMessages and MdLen are filled in from recs.
func WriteSegment(path string, hdr MdHeader, recs []msg.FixedRecord) (err error) {
	if hdr.MaxMessages < uint64(len(recs)) {
		return fmt.Errorf("mdcache: %d records exceed capacity %d", len(recs), hdr.MaxMessages)
	}
	if hdr.RecSize == 0 {
		hdr.RecSize = msg.RecordSize
	}
	if hdr.CntMessages == 0 {
		hdr.CntMessages = uint64(len(recs))
	}
	if hdr.MdLen == 0 {
		hdr.MdLen = MinMdLen(hdr.MaxMessages)
	}
	if err = hdr.Validate(-1); err != nil {
		return
	}
	b, err := hdr.Encode()
	if err != nil {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if _, err = w.Write(b); err != nil {
		return
	}
	raw := make([]byte, 0, msg.RecordSize)
	for i := range recs {
		if _, err = w.Write(recs[i].AppendRaw(raw[:0])); err != nil {
			return
		}
	}
	if err = w.Flush(); err != nil {
		return
	}
	return f.Truncate(int64(hdr.MdLen))
}
