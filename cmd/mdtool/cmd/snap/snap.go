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

// Package snap implements the mdtool snapshot commands.
package snap

import (
	"context"
	"fmt"
	"path/filepath"

	"pitchmd/cmd/mdtool/cmd/base"
	"pitchmd/pkg/cmd"
	"pitchmd/pkg/snapshot"
)

type cmdExportT struct {
	base.Command
	optOut string
}

func (c *cmdExportT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.StringOption(&c.optOut, "o|out", "", "snapshot file, default Snapshot.Dir/Snapshot.FileName")
	c.SetSynopsis("[-o <file>]")
	c.AddDetails("  Writes the records valid at the time of the call. Records the recorder\n" +
		"  publishes while the export runs are not included.\n")
}

func (c *cmdExportT) Exec(ctx context.Context) error {
	cache, err := c.OpenCache()
	if err != nil {
		return err
	}
	out := c.optOut
	if out == "" {
		out = c.Config.SnapshotPath()
	}
	info, err := snapshot.Export(out, cache.Header(), cache)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "%s\n%s\n", out, info)
	return nil
}

type cmdRestoreT struct {
	base.Command
	optOut string
	in     string
}

func (c *cmdRestoreT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.StringOption(&c.optOut, "o|out", "", "segment file to write, default <Cache.Dir>/<Cache.FileName>")
	c.SetSynopsis("[-o <segment>] <snapshot>")
	c.AddExample(name+" -o /dev/shm/mdseries.bin mdseries.snap", "rebuild a segment for offline replay")
}

func (c *cmdRestoreT) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	if c.NArg() < 1 {
		return fmt.Errorf("missing snapshot file")
	}
	c.in = c.Arg(0)
	if c.optOut == "" {
		if c.Config.Cache.Dir == "" {
			return fmt.Errorf("-o or a segment directory is required")
		}
		c.optOut = filepath.Join(c.Config.Cache.Dir, c.Config.Cache.FileName)
	}
	return
}

func (c *cmdRestoreT) Exec(ctx context.Context) error {
	r, err := snapshot.Open(c.in)
	if err != nil {
		return err
	}
	if err = r.Restore(c.optOut); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "%s: %d records from %s\n", c.optOut, r.Len(), r.Info)
	return nil
}

func init() {
	export := &cmdExportT{}
	export.Init("export", "save the valid records to a snapshot file")
	restore := &cmdRestoreT{}
	restore.Init("restore", "write a snapshot back as a segment file")
	cmd.RegisterNewGroup("snapshot", export, restore)
}
