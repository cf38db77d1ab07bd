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

//go:build linux

package snap

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchmd/pkg/initmgr"
	"pitchmd/pkg/mdcache"
	"pitchmd/pkg/msg"
	"pitchmd/pkg/pitch"
)

func TestExportRestore(t *testing.T) {
	t.Cleanup(initmgr.Finalize)
	dir := t.TempDir()
	var recs []msg.FixedRecord
	for i := 0; i < 10; i++ {
		m := pitch.Message{Index: uint16(i), Body: &pitch.ReplaceOrder{OldReference: uint64(i), NewReference: uint64(i + 1), Qty: 1, Price: 2}}
		rec, err := pitch.EncodeRecord(&m)
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	require.NoError(t, mdcache.WriteSegment(filepath.Join(dir, "mdseries.bin"), mdcache.MdHeader{MaxMessages: 10, SessionNo: 5}, recs))

	snapFile := filepath.Join(dir, "out.snap")
	var out bytes.Buffer
	export := &cmdExportT{}
	export.Init("export", "")
	export.Out = &out
	require.NoError(t, export.Parse([]string{"-d", dir, "-o", snapFile}))
	require.NoError(t, export.Exec(context.Background()))
	assert.Contains(t, out.String(), "records: 10")

	restoreDir := t.TempDir()
	out.Reset()
	restore := &cmdRestoreT{}
	restore.Init("restore", "")
	restore.Out = &out
	require.NoError(t, restore.Parse([]string{"-d", restoreDir, snapFile}))
	require.NoError(t, restore.Exec(context.Background()))
	assert.Contains(t, out.String(), "10 records")

	cfg := mdcache.DefaultConfig
	cfg.Dir = restoreDir
	cfg.HugePage = false
	c, err := mdcache.Open(cfg)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, int32(5), c.Header().SessionNo)
	require.Equal(t, 10, c.Len())
	for i := range recs {
		rec, err := c.Record(i)
		require.NoError(t, err)
		assert.True(t, rec.Equal(&recs[i]))
	}

	missing := &cmdRestoreT{}
	missing.Init("restore", "")
	assert.Error(t, missing.Parse(nil))
}
