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

package stats

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"pitchmd/pkg/pitch"
	"pitchmd/pkg/serde"
)

type (
	// DecodeStat tracks decode latency and failures of one message type.
	DecodeStat struct {
		mtx       sync.Mutex
		hist      *hdrhistogram.Histogram
		total     time.Duration
		numErrors int64
	}

	// Statistics groups DecodeStat by tag, plus failures by error kind.
	Statistics struct {
		all     DecodeStat
		tags    [256]DecodeStat
		kinds   [serde.KindTrailingCharacters + 1]int64
		mtx     sync.Mutex
		tmStart time.Time
	}

	StatsData struct {
		Throughput   float32
		AvgLatency   time.Duration
		MinLatency   time.Duration
		MaxLatency   time.Duration
		P50Latency   time.Duration
		P95Latency   time.Duration
		P99Latency   time.Duration
		P9999Latency time.Duration
		NumDecoded   int64
		NumErrors    int64
	}
)

func (s *DecodeStat) init() {
	if s.hist == nil {
		s.hist = hdrhistogram.New(1, int64(time.Second), 3)
	}
}

func (s *DecodeStat) Put(tm time.Duration, err error) {
	s.mtx.Lock()
	s.init()
	if err != nil {
		s.numErrors++
	} else {
		s.hist.RecordValue(int64(tm))
		s.total += tm
	}
	s.mtx.Unlock()
}

func (s *DecodeStat) GetStats() (stat StatsData) {
	s.mtx.Lock()
	s.init()
	stat.NumDecoded = s.hist.TotalCount()
	stat.NumErrors = s.numErrors
	stat.MinLatency = time.Duration(s.hist.Min())
	stat.MaxLatency = time.Duration(s.hist.Max())
	stat.P50Latency = time.Duration(s.hist.ValueAtQuantile(50.))
	stat.P95Latency = time.Duration(s.hist.ValueAtQuantile(95.))
	stat.P99Latency = time.Duration(s.hist.ValueAtQuantile(99.))
	stat.P9999Latency = time.Duration(s.hist.ValueAtQuantile(99.99))
	total := s.total
	s.mtx.Unlock()

	if stat.NumDecoded != 0 && total > 0 {
		v := float32(total) / float32(stat.NumDecoded)
		stat.AvgLatency = time.Duration(v)
		stat.Throughput = 1.0e9 / v
	}
	return
}

func (s *DecodeStat) Reset() {
	s.mtx.Lock()
	s.init()
	s.hist.Reset()
	s.numErrors = 0
	s.total = 0
	s.mtx.Unlock()
}

func NewStatistics() *Statistics {
	return &Statistics{tmStart: time.Now()}
}

// Put records one decode of a message whose first byte is tag. Latency is
// only sampled for successful decodes.
func (s *Statistics) Put(tag byte, tm time.Duration, err error) {
	s.all.Put(tm, err)
	s.tags[tag].Put(tm, err)
	if err != nil {
		kind, ok := serde.KindOf(err)
		if !ok {
			kind = serde.KindMessage
		}
		s.mtx.Lock()
		s.kinds[kind]++
		s.mtx.Unlock()
	}
}

func (s *Statistics) Reset() {
	s.all.Reset()
	for i := range s.tags {
		s.tags[i].Reset()
	}
	s.mtx.Lock()
	s.kinds = [len(s.kinds)]int64{}
	s.tmStart = time.Now()
	s.mtx.Unlock()
}

func (s *Statistics) All() StatsData {
	return s.all.GetStats()
}

func (s *Statistics) Tag(tag byte) StatsData {
	return s.tags[tag].GetStats()
}

// Errors returns the number of failures of the given kind.
func (s *Statistics) Errors(kind serde.Kind) int64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if int(kind) >= len(s.kinds) {
		return 0
	}
	return s.kinds[kind]
}

func (s *Statistics) Elapsed() time.Duration {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return time.Since(s.tmStart)
}

const statsSeparator = "------------+------------+------------+------------+------------+------------+------------+------------+------------+------------+------------------------+-----------"

func (s *Statistics) PrettyPrint(w io.Writer) {
	msfunc := func(d time.Duration) time.Duration {
		return d.Round(10 * time.Nanosecond)
	}

	fmt.Fprintln(w,
		`
 decodes/s  |                                 decode latency                                           |  number of |            |                        | number of
  average   | average    | min        | max        |        50% |      95%   |      99%   |     99.99% |  messages  | percentage | message type           |  errors`)
	fmt.Fprintln(w, statsSeparator)
	wstatFunc := func(stat *StatsData, percentage float32, typ string) {
		fmt.Fprintf(w, "%12.2f %12s %12s %12s %12s %12s %12s %12s %12d %12.2f %24s %12d\n",
			stat.Throughput, msfunc(stat.AvgLatency), msfunc(stat.MinLatency), msfunc(stat.MaxLatency), msfunc(stat.P50Latency), msfunc(stat.P95Latency),
			msfunc(stat.P99Latency), msfunc(stat.P9999Latency),
			stat.NumDecoded,
			percentage, typ, stat.NumErrors)
	}
	stat4all := s.all.GetStats()

	for i := range s.tags {
		stat := s.tags[i].GetStats()
		if stat.NumDecoded == 0 && stat.NumErrors == 0 {
			continue
		}
		var pct float32
		if stat4all.NumDecoded != 0 {
			pct = 100.0 * float32(stat.NumDecoded) / float32(stat4all.NumDecoded)
		}
		wstatFunc(&stat, pct, pitch.TagName(byte(i)))
	}
	fmt.Fprintln(w, statsSeparator)
	wstatFunc(&stat4all, 100.0, "All")

	if stat4all.NumErrors != 0 {
		fmt.Fprintln(w)
		for k := serde.KindMessage; k <= serde.KindTrailingCharacters; k++ {
			if n := s.Errors(k); n != 0 {
				fmt.Fprintf(w, "%-20s %d\n", k.String(), n)
			}
		}
	}
}
