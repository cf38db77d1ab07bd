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

package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchmd/pkg/mdcache"
)

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	src := testRecords(t, 20)
	snap := filepath.Join(dir, "snap.bin")
	_, err := Export(snap, testHeader(32), src)
	require.NoError(t, err)

	r, err := Open(snap)
	require.NoError(t, err)
	require.NoError(t, r.Restore(filepath.Join(dir, "mdseries.bin")))

	cfg := mdcache.DefaultConfig
	cfg.Dir = dir
	cfg.HugePage = false
	c, err := mdcache.Open(cfg)
	require.NoError(t, err)
	defer c.Close()

	hdr := c.Header()
	assert.Equal(t, uint64(32), hdr.MaxMessages)
	assert.Equal(t, int32(7), hdr.SessionNo)
	require.Equal(t, len(src), c.Len())
	for i := range src {
		rec, err := c.Record(i)
		require.NoError(t, err)
		assert.True(t, rec.Equal(&src[i]))
	}
}
