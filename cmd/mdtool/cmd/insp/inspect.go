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

package insp

import (
	"context"
	"fmt"

	"pitchmd/cmd/mdtool/cmd/base"
	"pitchmd/pkg/cmd"
	"pitchmd/pkg/pitch"
	"pitchmd/pkg/replay"
	"pitchmd/pkg/snapshot"
	"pitchmd/pkg/stats"
)

type cmdInspectT struct {
	base.Command
	optSnapshot string
}

func (c *cmdInspectT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.StringOption(&c.optSnapshot, "s|snapshot", "", "inspect a snapshot file instead of the segment")
	c.SetSynopsis("[-s <snapshot>]")
	c.AddDetails("  Decodes every valid record and prints decode statistics per message type.\n")
}

func (c *cmdInspectT) Exec(ctx context.Context) error {
	var src replay.Source
	if c.optSnapshot != "" {
		r, err := snapshot.Open(c.optSnapshot)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "snapshot %s\n%s\n%s\n", c.optSnapshot, r.Info, r.Source)
		src = r
	} else {
		cache, err := c.OpenCache()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "segment %s\n%s\n", cache.Path(), cache.Header())
		src = cache
	}
	st := stats.NewStatistics()
	cfg := c.Config.Replay
	cfg.Follow = false
	cfg.From = 0
	res, err := replay.New(cfg, st).Run(ctx, src, replay.HandlerFunc(func(int, *pitch.Message) error {
		return nil
	}))
	if err != nil {
		return err
	}
	st.PrettyPrint(c.Out)
	fmt.Fprintf(c.Out, "\nrecords: %d, decoded: %d, failed: %d, elapsed: %s\n",
		res.Next, res.Decoded, res.Failed, st.Elapsed())
	return nil
}

func init() {
	c := &cmdInspectT{}
	c.Init("inspect", "decode all records and report statistics")
	cmd.Register(c)
}
