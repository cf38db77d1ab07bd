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
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

var errNilFile = errors.New("shm: nil file")

func Ftruncate(file *os.File, size int64) error {
	if file == nil {
		return errNilFile
	}
	return unix.Ftruncate(int(file.Fd()), size)
}

// MmapForReadWrite maps the file shared and writable. populate prefaults the
// whole range, which is what hugetlbfs backed segments want.
func MmapForReadWrite(file *os.File, offset int64, length int, populate bool) ([]byte, error) {
	return Mmap(file, offset, length, unix.PROT_READ|unix.PROT_WRITE, mapFlags(populate))
}

// MmapForRead maps the file shared and read only, so stores by the writer
// process stay visible.
func MmapForRead(file *os.File, offset int64, length int, populate bool) ([]byte, error) {
	return Mmap(file, offset, length, unix.PROT_READ, mapFlags(populate))
}

func mapFlags(populate bool) int {
	if populate {
		return unix.MAP_SHARED | unix.MAP_POPULATE
	}
	return unix.MAP_SHARED
}

func Mmap(file *os.File, offset int64, length int, prot int, flags int) ([]byte, error) {
	if file == nil {
		return nil, errNilFile
	}
	return unix.Mmap(int(file.Fd()), offset, length, prot, flags)
}

func Munmap(data []byte) error {
	return unix.Munmap(data)
}

// Capacity returns the total size in bytes of the filesystem holding path.
func Capacity(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return st.Blocks * uint64(st.Bsize), nil
}
