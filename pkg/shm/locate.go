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

package shm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"

	"pitchmd/pkg/logging"
)

type Mount struct {
	Device  string
	Dir     string
	Type    string
	Options string
}

// IsOverlayRoot reports whether m is the root overlay of a container.
func (m *Mount) IsOverlayRoot() bool {
	return m.Type == "overlay" && m.Dir == "/"
}

// ParseMounts reads fstab formatted lines. Lines with fewer than four fields
// are ignored.
func ParseMounts(r io.Reader) (mounts []Mount, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		f := strings.Fields(sc.Text())
		if len(f) < 4 {
			continue
		}
		mounts = append(mounts, Mount{
			Device:  f[0],
			Dir:     unescapeMountPath(f[1]),
			Type:    f[2],
			Options: f[3],
		})
	}
	err = sc.Err()
	return
}

// /proc/mounts octal escapes blanks in paths.
var mountPathReplacer = strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)

func unescapeMountPath(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return mountPathReplacer.Replace(s)
}

type Candidate struct {
	Path     string
	Type     string
	Capacity uint64
}

// Locator finds the shared memory file published under one of the mounts
// of the configured types, or under one of the fallback directories.
type Locator struct {
	MountsFile   string
	MountTypes   []string
	FallbackDirs []string

	// capacity is replaced in tests
	capacity func(path string) (uint64, error)
}

func NewLocator(mountsFile string, types []string, fallback []string) *Locator {
	if mountsFile == "" {
		mountsFile = DefaultMountsFile
	}
	return &Locator{
		MountsFile:   mountsFile,
		MountTypes:   types,
		FallbackDirs: fallback,
		capacity:     Capacity,
	}
}

func (l *Locator) wantType(t string) bool {
	for _, w := range l.MountTypes {
		if w == t {
			return true
		}
	}
	return false
}

// Candidates returns every readable copy of name, largest filesystem first.
// Fallback directories only count when no mount of a wanted type has name.
func (l *Locator) Candidates(name string) ([]Candidate, error) {
	var mounts []Mount
	if f, err := os.Open(l.MountsFile); err == nil {
		mounts, err = ParseMounts(f)
		f.Close()
		if err != nil {
			return nil, err
		}
	} else {
		glog.Warningf("shm: cannot read %s: %s", l.MountsFile, err)
	}

	var found []Candidate
	for i := range mounts {
		m := &mounts[i]
		if m.IsOverlayRoot() {
			glog.V(logging.Debug).Infof("shm: skip overlay root, running in a container")
			continue
		}
		if !l.wantType(m.Type) {
			continue
		}
		if c, ok := l.probe(filepath.Join(m.Dir, name), m.Type); ok {
			found = append(found, c)
		}
	}
	if len(found) == 0 {
		for _, dir := range l.FallbackDirs {
			if c, ok := l.probe(filepath.Join(dir, name), "fallback"); ok {
				found = append(found, c)
			}
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Capacity > found[j].Capacity
	})
	return found, nil
}

func (l *Locator) probe(path string, typ string) (c Candidate, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	f.Close()
	capacity := l.capacity
	if capacity == nil {
		capacity = Capacity
	}
	size, err := capacity(filepath.Dir(path))
	if err != nil {
		glog.Warningf("shm: statfs %s: %s", filepath.Dir(path), err)
		return
	}
	return Candidate{Path: path, Type: typ, Capacity: size}, true
}

// Locate returns the path of the largest capacity candidate for name.
func (l *Locator) Locate(name string) (string, error) {
	cands, err := l.Candidates(name)
	if err != nil {
		return "", err
	}
	if len(cands) == 0 {
		return "", fmt.Errorf("shm: %s not found under %v mounts or %v: %w",
			name, l.MountTypes, l.FallbackDirs, os.ErrNotExist)
	}
	if len(cands) > 1 {
		glog.V(logging.Debug).Infof("shm: %d candidates for %s, using %s", len(cands), name, cands[0].Path)
	}
	return cands[0].Path, nil
}
