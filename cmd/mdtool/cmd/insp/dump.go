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
	"pitchmd/pkg/mdcache"
	"pitchmd/pkg/msg"
	"pitchmd/pkg/pitch"
	"pitchmd/pkg/util"
)

type cmdDumpT struct {
	base.Command
	optFrom   int
	optCount  int
	optHex    bool
	optPretty bool
}

func (c *cmdDumpT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.IntOption(&c.optFrom, "from", 0, "first record number")
	c.IntOption(&c.optCount, "n", 0, "number of records, 0 for all")
	c.BoolOption(&c.optHex, "x|hex", false, "hex dump each record")
	c.BoolOption(&c.optPretty, "p|pretty", false, "print one field per line")
	c.SetSynopsis("[-from <n>] [-n <count>] [-x] [-p]")
	c.AddExample(name+" -from 100 -n 10 -x", "dump records 100 to 109 with their bytes")
}

func (c *cmdDumpT) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	if c.optFrom < 0 || c.optCount < 0 {
		err = fmt.Errorf("negative -from or -n")
	}
	return
}

func (c *cmdDumpT) Exec(ctx context.Context) error {
	cache, err := c.OpenCache()
	if err != nil {
		return err
	}
	end := cache.Len()
	if c.optCount != 0 && c.optFrom+c.optCount < end {
		end = c.optFrom + c.optCount
	}
	for i := c.optFrom; i < end; i++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		var rec *msg.FixedRecord
		if rec, err = cache.Record(i); err != nil {
			return err
		}
		c.dumpOne(i, rec)
	}
	return nil
}

func (c *cmdDumpT) dumpOne(seq int, rec *msg.FixedRecord) {
	m, err := pitch.DecodeRecord(rec)
	switch {
	case err != nil:
		fmt.Fprintf(c.Out, "%8d  error: %s %s\n", seq, err, util.ToPrintableAndHexString(rec.Bytes()))
	case c.optPretty:
		fmt.Fprintf(c.Out, "Record        : %d\n", seq)
		m.PrettyPrint(c.Out)
	default:
		fmt.Fprintf(c.Out, "%8d  %s\n", seq, m)
	}
	if c.optHex {
		util.HexDump(c.Out, mdcache.HeaderSize+seq*msg.RecordSize, rec.Bytes())
	}
}

func init() {
	c := &cmdDumpT{}
	c.Init("dump", "decode and print segment records")
	cmd.Register(c)
}
