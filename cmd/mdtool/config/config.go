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

package config

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"pitchmd/pkg/logging"
	"pitchmd/pkg/mdcache"
	"pitchmd/pkg/replay"
)

type Config struct {
	LogLevel string
	Cache    mdcache.Config
	Replay   replay.Config
	Snapshot SnapshotConfig
}

type SnapshotConfig struct {
	Dir      string
	FileName string
}

var defaultConfig = Config{
	LogLevel: "warning",
	Cache:    mdcache.DefaultConfig,
	Replay:   replay.DefaultConfig,
	Snapshot: SnapshotConfig{
		Dir:      ".",
		FileName: "mdseries.snap",
	},
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	c := defaultConfig
	c.Cache.MountTypes = append([]string(nil), defaultConfig.Cache.MountTypes...)
	c.Cache.FallbackDirs = append([]string(nil), defaultConfig.Cache.FallbackDirs...)
	return &c
}

// LoadConfig decodes file over the defaults. An empty file name yields the
// defaults.
func LoadConfig(file string) (c *Config, err error) {
	c = Default()
	if file != "" {
		if _, err = toml.DecodeFile(file, c); err != nil {
			return nil, err
		}
	}
	c.Cache.SetDefaultIfNotDefined()
	if c.Snapshot.FileName == "" {
		c.Snapshot.FileName = defaultConfig.Snapshot.FileName
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return
}

func (c *Config) Validate() error {
	if !logging.IsLevelName(c.LogLevel) {
		return fmt.Errorf("config: unknown LogLevel %q", c.LogLevel)
	}
	if c.Replay.From < 0 {
		return fmt.Errorf("config: negative Replay.From %d", c.Replay.From)
	}
	if c.Replay.PollInterval.Duration < 0 {
		return fmt.Errorf("config: negative Replay.PollInterval %s", c.Replay.PollInterval.Duration)
	}
	return nil
}

// SnapshotPath is the default export target.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.Snapshot.Dir, c.Snapshot.FileName)
}

func (c *Config) Dump(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
