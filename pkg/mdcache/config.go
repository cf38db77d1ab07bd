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

package mdcache

import (
	"github.com/BurntSushi/toml"

	"pitchmd/pkg/shm"
)

type Config struct {
	// FileName is the segment file published by the recorder.
	FileName string
	// Dir, when set, is used as is instead of searching the mounts.
	Dir          string
	MountTypes   []string
	FallbackDirs []string
	MountsFile   string
	// Writable maps the segment read-write, growing the file to md_len.
	// Readers leave it false.
	Writable bool
	// HugePage prefaults the mapping.
	HugePage bool
}

var DefaultConfig = Config{
	FileName:     "mdseries.bin",
	MountTypes:   []string{"hugetlbfs"},
	FallbackDirs: []string{shm.DefaultDir},
	MountsFile:   shm.DefaultMountsFile,
	HugePage:     true,
}

func (c *Config) SetDefaultIfNotDefined() {
	if c.FileName == "" {
		c.FileName = DefaultConfig.FileName
	}
	if c.MountTypes == nil {
		c.MountTypes = DefaultConfig.MountTypes
	}
	if c.FallbackDirs == nil {
		c.FallbackDirs = DefaultConfig.FallbackDirs
	}
	if c.MountsFile == "" {
		c.MountsFile = DefaultConfig.MountsFile
	}
}

// LoadConfig decodes a TOML file over DefaultConfig.
func LoadConfig(file string) (cfg Config, err error) {
	cfg = DefaultConfig
	if _, err = toml.DecodeFile(file, &cfg); err != nil {
		return
	}
	cfg.SetDefaultIfNotDefined()
	return
}
