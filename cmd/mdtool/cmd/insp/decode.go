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
	"encoding/hex"
	"fmt"
	"strings"

	"pitchmd/cmd/mdtool/cmd/base"
	"pitchmd/pkg/cmd"
	"pitchmd/pkg/pitch"
	"pitchmd/pkg/util"
)

type cmdDecodeT struct {
	base.Command
	msg []byte
}

func (c *cmdDecodeT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.SetSynopsis("<hex-string>")
	c.AddExample(name+" 4142010002007bca5b07ee977a142f000000640000006ac70000", "decode an AddOrder")
}

func (c *cmdDecodeT) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	if c.NArg() < 1 {
		return fmt.Errorf("missing hex message")
	}
	s := strings.TrimPrefix(strings.Join(c.Args(), ""), "0x")
	c.msg, err = hex.DecodeString(s)
	return
}

func (c *cmdDecodeT) Exec(ctx context.Context) error {
	util.HexDump(c.Out, 0, c.msg)
	m, err := pitch.Decode(c.msg)
	if err != nil {
		return err
	}
	m.PrettyPrint(c.Out)
	return nil
}

func init() {
	c := &cmdDecodeT{}
	c.Init("decode", "decode one hex encoded pitch message")
	cmd.Register(c)
}
