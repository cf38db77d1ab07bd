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
	"pitchmd/pkg/util"
)

type cmdHeaderT struct {
	base.Command
	optRaw bool
}

func (c *cmdHeaderT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.BoolOption(&c.optRaw, "raw", false, "also hex dump the header bytes")
	c.SetSynopsis("[-c <config>] [-d <dir>] [-raw]")
	c.AddExample(name+" -d /mnt/huge", "print the header of /mnt/huge/mdseries.bin")
}

func (c *cmdHeaderT) Exec(ctx context.Context) error {
	cache, err := c.OpenCache()
	if err != nil {
		return err
	}
	hdr := cache.Header()
	fmt.Fprintf(c.Out, "path: %s\n%s\n", cache.Path(), hdr)
	fmt.Fprintf(c.Out, "rec_size: %d, md_len: %d, valid: %d, finished: %t\n",
		hdr.RecSize, hdr.MdLen, cache.Len(), cache.Finished())
	if c.optRaw {
		b, err := hdr.Encode()
		if err != nil {
			return err
		}
		util.HexDump(c.Out, 0, b[:mdcache.HeaderSize])
	}
	return nil
}

func init() {
	c := &cmdHeaderT{}
	c.Init("header", "print the segment header")
	cmd.Register(c)
}
