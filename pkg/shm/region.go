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
	"fmt"
	"os"
	"sync"
)

// Region owns one shared mapping. Views into it are produced only after the
// requested range is checked against the mapping size.
type Region struct {
	mu   sync.Mutex
	data []byte
	path string
}

type MapOptions struct {
	ReadOnly bool
	// Populate prefaults the mapping.
	Populate bool
}

// MapFile maps length bytes of path. With a writable mapping the file is
// grown to length first.
func MapFile(path string, length int, opts MapOptions) (*Region, error) {
	if length <= 0 {
		return nil, fmt.Errorf("shm: invalid map length %d", length)
	}
	flag := os.O_RDONLY
	if !opts.ReadOnly {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data []byte
	if opts.ReadOnly {
		data, err = MmapForRead(f, 0, length, opts.Populate)
	} else {
		var st os.FileInfo
		if st, err = f.Stat(); err != nil {
			return nil, err
		}
		if st.Size() < int64(length) {
			if err = Ftruncate(f, int64(length)); err != nil {
				return nil, err
			}
		}
		data, err = MmapForReadWrite(f, 0, length, opts.Populate)
	}
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: err}
	}
	return &Region{data: data, path: path}, nil
}

func (r *Region) Path() string {
	return r.path
}

// Len returns the mapping size, 0 after Close.
func (r *Region) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

// Slice returns the n bytes at off.
func (r *Region) Slice(off, n int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return nil, fmt.Errorf("shm: %s is unmapped", r.path)
	}
	if off < 0 || n < 0 || off > len(r.data)-n {
		return nil, fmt.Errorf("shm: range [%d, %d) outside mapping of %d bytes", off, off+n, len(r.data))
	}
	return r.data[off : off+n : off+n], nil
}

// Close unmaps the region. Calling it again is a no-op.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return nil
	}
	err := Munmap(r.data)
	r.data = nil
	return err
}
