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

package util

import (
	"bytes"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationText(t *testing.T) {
	var cfg struct {
		Poll Duration
	}
	_, err := toml.Decode(`Poll = "250ms"`, &cfg)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Poll.Duration)

	text, err := cfg.Poll.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "250ms", string(text))

	var d Duration
	assert.Error(t, d.UnmarshalText([]byte("soon")))
}

func TestTimeFromUUIDv1(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := uuid.NewV1()
	tm, err := TimeFromUUIDv1(id)
	require.NoError(t, err)
	assert.True(t, tm.After(before))
	assert.WithinDuration(t, time.Now(), tm, time.Minute)

	_, err = TimeFromUUIDv1(uuid.NewV4())
	assert.Error(t, err)
}

func TestHexDump(t *testing.T) {
	var buf bytes.Buffer
	HexDump(&buf, 0x40, append([]byte("AB"), 0x00, 0xff))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "000000040 41 42 00 FF "))
	assert.True(t, strings.HasSuffix(lines[1], " AB.."))
	assert.Equal(t, "AB.. [4142007F]", ToPrintableAndHexString([]byte{'A', 'B', 0, 0x7f}))
}

func TestShareCounter(t *testing.T) {
	var shared uint64
	c := NewAtomicShareCounter(&shared)
	assert.Zero(t, c.Get())
	atomic.StoreUint64(&shared, 10)
	assert.Equal(t, uint64(10), c.Get())
}
