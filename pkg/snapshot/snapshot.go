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

// Package snapshot saves the valid records of a cache segment to a
// compressed file and reads them back.
//
// A snapshot is a fixed header followed by a snappy framed stream of raw
// RecordSize byte record images. The header carries a v1 uuid naming the
// export, the record count, the murmur3 checksum of the uncompressed stream
// and the segment header the records were taken from.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/golang/snappy"
	uuid "github.com/satori/go.uuid"
	"github.com/spaolacci/murmur3"

	"pitchmd/pkg/logging"
	"pitchmd/pkg/mdcache"
	"pitchmd/pkg/msg"
	"pitchmd/pkg/replay"
	"pitchmd/pkg/serde"
	"pitchmd/pkg/util"
)

const (
	Version    = 1
	HeaderSize = 112

	offChecksum = 40

	// records preallocated on Open before the stream proves the count
	maxPrealloc = 1 << 16
)

var magic = [8]byte{'P', 'M', 'D', 'S', 'N', 'A', 'P', 0}

var (
	ErrBadMagic  = errors.New("snapshot: bad magic")
	ErrChecksum  = errors.New("snapshot: checksum mismatch")
	ErrShortFile = errors.New("snapshot: file is truncated")
)

type fileHeader struct {
	Magic    [8]byte
	Version  uint32
	RecSize  uint32
	ExportID uuid.UUID
	Count    uint64
	Checksum uint64
	Source   mdcache.MdHeader
}

// Info describes one snapshot.
type Info struct {
	ID       uuid.UUID
	Count    uint64
	Checksum uint64
	Source   mdcache.MdHeader
}

// ExportTime is the time the export id was generated.
func (i *Info) ExportTime() (time.Time, error) {
	return util.TimeFromUUIDv1(i.ID)
}

func (i Info) String() string {
	tm, _ := i.ExportTime()
	return fmt.Sprintf("id: %s, exported: %s, records: %d, checksum: %016x",
		i.ID, tm.Format(time.RFC3339), i.Count, i.Checksum)
}

// Export writes the first src.Len() records of src to path. The length is
// sampled once so a live source yields a consistent prefix.
func Export(path string, hdr mdcache.MdHeader, src replay.Source) (info Info, err error) {
	n := src.Len()
	if err = hdr.Validate(-1); err != nil {
		return
	}
	if uint64(n) > hdr.MaxMessages {
		err = fmt.Errorf("snapshot: %d records exceed capacity %d", n, hdr.MaxMessages)
		return
	}
	info = Info{ID: uuid.NewV1(), Count: uint64(n), Source: hdr}
	fh := fileHeader{
		Magic:    magic,
		Version:  Version,
		RecSize:  msg.RecordSize,
		ExportID: info.ID,
		Count:    info.Count,
		Source:   hdr,
	}
	b, err := serde.Marshal(&fh)
	if err != nil {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err = f.Write(b); err != nil {
		return
	}

	h := murmur3.New64()
	w := snappy.NewBufferedWriter(f)
	out := io.MultiWriter(w, h)
	raw := make([]byte, 0, msg.RecordSize)
	for i := 0; i < n; i++ {
		var rec *msg.FixedRecord
		if rec, err = src.Record(i); err != nil {
			return
		}
		if _, err = out.Write(rec.AppendRaw(raw[:0])); err != nil {
			return
		}
	}
	if err = w.Close(); err != nil {
		return
	}

	info.Checksum = h.Sum64()
	e := serde.NewEncoder(8)
	e.PutUint64(info.Checksum)
	if _, err = f.WriteAt(e.Bytes(), offChecksum); err != nil {
		return
	}
	if glog.V(logging.Info) {
		glog.Infof("snapshot: exported %s", logging.NewKVBufferForLog().
			AddPath(path).AddUInt64([]byte("records"), info.Count).Add([]byte("id"), info.ID.String()).String())
	}
	return
}

// Reader holds the records of a snapshot in memory. It is a finished
// replay source.
type Reader struct {
	Info
	recs []msg.FixedRecord
}

// Open reads and verifies the snapshot at path.
func Open(path string) (r *Reader, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	br := bufio.NewReader(f)

	var hb [HeaderSize]byte
	if _, err = io.ReadFull(br, hb[:]); err != nil {
		return nil, shortRead(err)
	}
	var fh fileHeader
	if err = serde.Unmarshal(hb[:], &fh); err != nil {
		return
	}
	if fh.Magic != magic {
		return nil, ErrBadMagic
	}
	if fh.Version != Version || fh.RecSize != msg.RecordSize {
		return nil, fmt.Errorf("snapshot: unsupported version %d record size %d", fh.Version, fh.RecSize)
	}
	if err = fh.Source.Validate(-1); err != nil {
		return
	}
	if fh.Count > fh.Source.MaxMessages {
		return nil, fmt.Errorf("snapshot: %d records exceed source capacity %d", fh.Count, fh.Source.MaxMessages)
	}

	prealloc := fh.Count
	if prealloc > maxPrealloc {
		prealloc = maxPrealloc
	}
	r = &Reader{
		Info: Info{ID: fh.ExportID, Count: fh.Count, Checksum: fh.Checksum, Source: fh.Source},
		recs: make([]msg.FixedRecord, 0, prealloc),
	}
	h := murmur3.New64()
	in := io.TeeReader(snappy.NewReader(br), h)
	var raw [msg.RecordSize]byte
	for i := uint64(0); i < fh.Count; i++ {
		if _, err = io.ReadFull(in, raw[:]); err != nil {
			return nil, shortRead(err)
		}
		var rec msg.FixedRecord
		if rec, err = msg.FromRaw(raw[:]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %s", ErrChecksum, i, err)
		}
		r.recs = append(r.recs, rec)
	}
	if h.Sum64() != fh.Checksum {
		return nil, ErrChecksum
	}
	return
}

func shortRead(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrShortFile
	}
	return err
}

func (r *Reader) Len() int {
	return len(r.recs)
}

func (r *Reader) Record(i int) (*msg.FixedRecord, error) {
	if i < 0 || i >= len(r.recs) {
		return nil, fmt.Errorf("snapshot: record %d out of range [0, %d)", i, len(r.recs))
	}
	return &r.recs[i], nil
}

func (r *Reader) Finished() bool {
	return true
}

// Restore writes the records back as a segment file at path, sized for the
// capacity of the segment they were exported from.
func (r *Reader) Restore(path string) error {
	hdr := r.Source
	hdr.CntMessages = 0
	hdr.MdLen = 0
	return mdcache.WriteSegment(path, hdr, r.recs)
}
