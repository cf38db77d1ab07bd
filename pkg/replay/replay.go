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

// Package replay walks the records of a source, decoding each into a
// pitch.Message. A record that fails to decode is reported and skipped; it
// never stops the walk.
package replay

import (
	"context"
	"time"

	"github.com/golang/glog"

	"pitchmd/pkg/logging"
	"pitchmd/pkg/msg"
	"pitchmd/pkg/pitch"
	"pitchmd/pkg/stats"
	"pitchmd/pkg/util"
)

// Source is an indexed run of records whose valid length may grow.
type Source interface {
	Len() int
	Record(i int) (*msg.FixedRecord, error)
}

// Finisher is implemented by sources that know when no more records will
// be appended.
type Finisher interface {
	Finished() bool
}

// Handler receives each decoded message with its record number.
type Handler interface {
	OnMessage(seq int, m *pitch.Message) error
}

// ErrorHandler is notified of records that failed to decode.
type ErrorHandler interface {
	OnDecodeError(seq int, rec *msg.FixedRecord, err error)
}

type HandlerFunc func(seq int, m *pitch.Message) error

func (f HandlerFunc) OnMessage(seq int, m *pitch.Message) error {
	return f(seq, m)
}

type Config struct {
	// Follow keeps polling for new records until the source finishes or the
	// context is done.
	Follow       bool
	PollInterval util.Duration
	// From is the first record number to decode.
	From int
}

var DefaultConfig = Config{
	PollInterval: util.Duration{Duration: 10 * time.Millisecond},
}

type Result struct {
	Decoded int
	Failed  int
	// Next is the record number the walk stopped at.
	Next int
}

type Replayer struct {
	cfg   Config
	stats *stats.Statistics
}

func New(cfg Config, st *stats.Statistics) *Replayer {
	if cfg.PollInterval.Duration <= 0 {
		cfg.PollInterval = DefaultConfig.PollInterval
	}
	return &Replayer{cfg: cfg, stats: st}
}

// Run decodes the records [From, Len()) of src. In follow mode it then
// waits for more until src is finished or ctx is done. An error from the
// handler stops the walk and is returned.
func (p *Replayer) Run(ctx context.Context, src Source, h Handler) (res Result, err error) {
	res.Next = p.cfg.From
	if res.Next < 0 {
		res.Next = 0
	}
	var ticker *time.Ticker
	for {
		n := src.Len()
		for ; res.Next < n; res.Next++ {
			if err = p.one(src, res.Next, h, &res); err != nil {
				return
			}
		}
		if !p.cfg.Follow {
			return
		}
		if f, ok := src.(Finisher); ok && f.Finished() {
			// records published before the shutdown stamp
			if src.Len() > res.Next {
				continue
			}
			return
		}
		if ticker == nil {
			ticker = time.NewTicker(p.cfg.PollInterval.Duration)
			defer ticker.Stop()
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-ticker.C:
		}
	}
}

func (p *Replayer) one(src Source, seq int, h Handler, res *Result) error {
	rec, err := src.Record(seq)
	if err != nil {
		return err
	}
	b := rec.Bytes()
	var tag byte
	if len(b) > 0 {
		tag = b[0]
	}
	start := time.Now()
	m, err := pitch.Decode(b)
	if p.stats != nil {
		p.stats.Put(tag, time.Since(start), err)
	}
	if err != nil {
		res.Failed++
		if eh, ok := h.(ErrorHandler); ok {
			eh.OnDecodeError(seq, rec, err)
		} else if glog.V(logging.Warning) {
			glog.Warningf("replay: skip %s", logging.NewKVBufferForLog().
				AddRecordNo(uint64(seq)).AddTag(tag).AddLen(len(b)).AddError(err).String())
		}
		return nil
	}
	res.Decoded++
	return h.OnMessage(seq, &m)
}

// Run is a one-off Replayer.Run without statistics.
func Run(ctx context.Context, cfg Config, src Source, h Handler) (Result, error) {
	return New(cfg, nil).Run(ctx, src, h)
}
