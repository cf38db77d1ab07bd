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

// Package base holds the options and setup shared by the mdtool commands.
package base

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"pitchmd/cmd/mdtool/config"
	"pitchmd/pkg/cmd"
	"pitchmd/pkg/initmgr"
	"pitchmd/pkg/logging"
	"pitchmd/pkg/mdcache"
)

type Command struct {
	cmd.Command
	Config *config.Config
	Out    io.Writer

	optCfgFile  string
	optLogLevel string
	optDir      string
	optFileName string
}

func (c *Command) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.StringOption(&c.optCfgFile, "c|config", "", "configuration file")
	c.StringOption(&c.optLogLevel, "log-level", "", "error|warning|info|debug|verbose, overrides LogLevel")
	c.StringOption(&c.optDir, "d|dir", "", "segment directory, skips the mount search")
	c.StringOption(&c.optFileName, "f|file", "", "segment file name")
}

// Parse parses args, loads the configuration and initializes logging.
func (c *Command) Parse(args []string) (err error) {
	if err = c.Command.Parse(args); err != nil {
		return
	}
	var conf *config.Config
	if conf, err = config.LoadConfig(c.optCfgFile); err != nil {
		return
	}
	if c.optLogLevel != "" {
		if !logging.IsLevelName(c.optLogLevel) {
			return fmt.Errorf("unknown log level %q", c.optLogLevel)
		}
		conf.LogLevel = c.optLogLevel
	}
	if c.optDir != "" {
		conf.Cache.Dir = c.optDir
	}
	if c.optFileName != "" {
		conf.Cache.FileName = c.optFileName
	}
	c.Config = conf
	if c.Out == nil {
		c.Out = os.Stdout
	}
	initmgr.RegisterWithFuncs(c.initialize, glog.Flush)
	return initmgr.Init()
}

func (c *Command) initialize(args ...interface{}) error {
	logging.Init(c.Config.LogLevel, c.GetName())
	return nil
}

// OpenCache opens the configured segment. It is closed by initmgr.Finalize.
func (c *Command) OpenCache() (*mdcache.Cache, error) {
	cache, err := mdcache.Open(c.Config.Cache)
	if err != nil {
		return nil, err
	}
	initmgr.RegisterWithFuncs(nil, func() { cache.Close() })
	if err = initmgr.Init(); err != nil {
		cache.Close()
		return nil, err
	}
	return cache, nil
}
