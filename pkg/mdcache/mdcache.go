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

// Package mdcache maps the market data segment a recorder process publishes
// in shared memory: a 64 byte MdHeader followed by max_messages FixedRecords.
//
// The recorder is the only writer. A Cache only reads, and re-reads the live
// message count from the mapping on every Records().Len().
package mdcache

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/golang/glog"

	"pitchmd/pkg/msg"
	"pitchmd/pkg/shm"
	"pitchmd/pkg/util"
)

type Cache struct {
	path    string
	region  *shm.Region
	hdr     []byte
	records Records
	once    sync.Once
	err     error
}

// Records is the record array of a mapped segment. Once the segment is
// unmapped it is empty and every lookup fails with ErrClosed.
type Records struct {
	region *shm.Region
	data   []msg.FixedRecord
	cnt    *util.AtomicShareCounter
}

// Open locates the segment, validates its header and maps it. No Cache is
// returned unless every step succeeds.
func Open(cfg Config) (*Cache, error) {
	cfg.SetDefaultIfNotDefined()
	path, err := resolvePath(&cfg)
	if err != nil {
		return nil, err
	}
	hdr, size, err := readHeader(path)
	if err != nil {
		return nil, err
	}
	fileSize := size
	if cfg.Writable {
		// a writable mapping grows the file
		fileSize = -1
	}
	if err = hdr.Validate(fileSize); err != nil {
		return nil, &IoError{Op: "validate", Path: path, Err: err}
	}

	region, err := shm.MapFile(path, int(hdr.MdLen), shm.MapOptions{ReadOnly: !cfg.Writable, Populate: cfg.HugePage})
	if err != nil {
		return nil, &IoError{Op: "mmap", Path: path, Err: err}
	}
	c, err := bind(path, region, hdr.MaxMessages)
	if err != nil {
		region.Close()
		return nil, &IoError{Op: "mmap", Path: path, Err: err}
	}
	glog.Infof("mdcache: mapped %s, %d bytes, %d/%d records", path, hdr.MdLen, c.records.Len(), hdr.MaxMessages)
	return c, nil
}

func resolvePath(cfg *Config) (string, error) {
	if cfg.Dir != "" {
		return filepath.Join(cfg.Dir, cfg.FileName), nil
	}
	path, err := shm.NewLocator(cfg.MountsFile, cfg.MountTypes, cfg.FallbackDirs).Locate(cfg.FileName)
	if err != nil {
		return "", &IoError{Op: "locate", Err: err}
	}
	return path, nil
}

func readHeader(path string) (hdr MdHeader, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		err = &IoError{Op: "open", Path: path, Err: err}
		return
	}
	defer f.Close()
	var st os.FileInfo
	if st, err = f.Stat(); err != nil {
		err = &IoError{Op: "stat", Path: path, Err: err}
		return
	}
	size = st.Size()
	var buf [HeaderSize]byte
	if _, err = io.ReadFull(f, buf[:]); err != nil {
		err = &IoError{Op: "read header", Path: path, Err: err}
		return
	}
	if hdr, err = DecodeHeader(buf[:]); err != nil {
		err = &IoError{Op: "read header", Path: path, Err: err}
	}
	return
}

func bind(path string, region *shm.Region, max uint64) (*Cache, error) {
	hdr, err := region.Slice(0, HeaderSize)
	if err != nil {
		return nil, err
	}
	body, err := region.Slice(HeaderSize, int(max)*msg.RecordSize)
	if err != nil {
		return nil, err
	}
	var data []msg.FixedRecord
	if max > 0 {
		data = unsafe.Slice((*msg.FixedRecord)(unsafe.Pointer(&body[0])), max)
	}
	return &Cache{
		path:   path,
		region: region,
		hdr:    hdr,
		records: Records{
			region: region,
			data:   data,
			cnt:    util.NewAtomicShareCounter((*uint64)(unsafe.Pointer(&hdr[offCntMessages]))),
		},
	}, nil
}

func (c *Cache) Path() string {
	return c.path
}

// Header returns a snapshot of the mapped header, the zero header once
// closed.
func (c *Cache) Header() (h MdHeader) {
	if c.region.Len() == 0 {
		return
	}
	h, _ = DecodeHeader(c.hdr)
	h.CntMessages = c.records.cnt.Get()
	h.ShutTime = c.shutTime()
	return
}

func (c *Cache) shutTime() int64 {
	return atomic.LoadInt64((*int64)(unsafe.Pointer(&c.hdr[offShutTime])))
}

// Finished reports whether the recorder has stamped a shutdown time. A
// closed cache is finished.
func (c *Cache) Finished() bool {
	if c.region.Len() == 0 {
		return true
	}
	return c.shutTime() != 0
}

func (c *Cache) Records() Records {
	return c.records
}

// Len and Record let a Cache serve as a replay source.
func (c *Cache) Len() int {
	return c.records.Len()
}

func (c *Cache) Record(i int) (*msg.FixedRecord, error) {
	return c.records.Record(i)
}

// CntAddr exposes the mapped live message counter for sampling. It is nil
// once closed.
func (c *Cache) CntAddr() *uint64 {
	if c.region.Len() == 0 {
		return nil
	}
	return (*uint64)(unsafe.Pointer(&c.hdr[offCntMessages]))
}

// Close unmaps the segment. Records views report empty afterwards, but
// record pointers obtained earlier must not be used. Calling Close again is
// a no-op.
func (c *Cache) Close() error {
	c.once.Do(func() {
		c.err = c.region.Close()
		glog.Infof("mdcache: unmapped %s", c.path)
	})
	return c.err
}

func (r Records) closed() bool {
	return r.region == nil || r.region.Len() == 0
}

// Len returns the number of valid records, never more than Cap.
func (r Records) Len() int {
	if r.closed() {
		return 0
	}
	n := r.cnt.Get()
	if m := uint64(len(r.data)); n > m {
		return int(m)
	}
	return int(n)
}

func (r Records) Cap() int {
	if r.closed() {
		return 0
	}
	return len(r.data)
}

// At returns record i of the array. Records at or above Len may still be
// in the process of being written.
func (r Records) At(i int) (*msg.FixedRecord, error) {
	if r.closed() {
		return nil, ErrClosed
	}
	if i < 0 || i >= len(r.data) {
		return nil, errOutOfRange(i, len(r.data))
	}
	return &r.data[i], nil
}

// Record returns valid record i.
func (r Records) Record(i int) (*msg.FixedRecord, error) {
	if r.closed() {
		return nil, ErrClosed
	}
	if n := r.Len(); i < 0 || i >= n {
		return nil, errOutOfRange(i, n)
	}
	return &r.data[i], nil
}

// Valid returns the records below Len, nil once closed.
func (r Records) Valid() []msg.FixedRecord {
	n := r.Len()
	if n == 0 {
		return nil
	}
	return r.data[:n]
}
