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

// Package play implements the mdtool replay command.
package play

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"pitchmd/cmd/mdtool/cmd/base"
	"pitchmd/pkg/cmd"
	"pitchmd/pkg/logging"
	"pitchmd/pkg/msg"
	"pitchmd/pkg/pitch"
	"pitchmd/pkg/replay"
	"pitchmd/pkg/stats"
	"pitchmd/pkg/timeutil"
)

type cmdReplayT struct {
	base.Command
	optFollow   bool
	optFrom     int
	optQuiet    bool
	optStats    bool
	optInterval time.Duration
	optPoll     time.Duration
	optSimClock bool

	clock   *timeutil.SysClock
	decoded uint64
	failed  uint64
}

func (c *cmdReplayT) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.BoolOption(&c.optFollow, "F|follow", false, "keep reading records until the recorder shuts down")
	c.IntOption(&c.optFrom, "from", -1, "first record number, overrides Replay.From")
	c.BoolOption(&c.optQuiet, "q|quiet", false, "do not print messages")
	c.BoolOption(&c.optStats, "stats", false, "print decode statistics at the end")
	c.DurationOption(&c.optInterval, "state-interval", 0, "write a state line to stderr at this interval, 0 disables")
	c.DurationOption(&c.optPoll, "poll", 0, "poll interval in follow mode, overrides Replay.PollInterval")
	c.BoolOption(&c.optSimClock, "sim-clock", false, "drive the state log clock from system event times")
	c.SetSynopsis("[-F] [-from <n>] [-q] [-stats] [-state-interval <d>]")
	c.AddDetails("  Decodes the valid records in order. Records that fail to decode are\n" +
		"  reported and skipped. With -F the command waits for new records until the\n" +
		"  recorder stamps its shutdown time or the command is interrupted.\n")
	c.AddExample(name+" -F -q -state-interval 1s", "follow a live segment printing throughput")
}

func (c *cmdReplayT) OnMessage(seq int, m *pitch.Message) error {
	atomic.AddUint64(&c.decoded, 1)
	if ev, ok := m.Body.(*pitch.SystemEvent); ok && c.clock.Simulated() {
		c.clock.Set(timeutil.FromHours(ev.TimeHours))
	}
	if !c.optQuiet {
		_, err := fmt.Fprintf(c.Out, "%8d %s\n", seq, m)
		return err
	}
	return nil
}

func (c *cmdReplayT) OnDecodeError(seq int, rec *msg.FixedRecord, err error) {
	atomic.AddUint64(&c.failed, 1)
	if glog.V(logging.Warning) {
		glog.Warningf("replay: skip %s", logging.NewKVBufferForLog().
			AddRecordNo(uint64(seq)).AddLen(rec.Len()).AddError(err).String())
	}
}

func (c *cmdReplayT) Exec(ctx context.Context) error {
	cache, err := c.OpenCache()
	if err != nil {
		return err
	}
	cfg := c.Config.Replay
	if c.optFollow {
		cfg.Follow = true
	}
	if c.optFrom >= 0 {
		cfg.From = c.optFrom
	}
	if c.optPoll > 0 {
		cfg.PollInterval.Duration = c.optPoll
	}
	st := stats.NewStatistics()
	c.clock = timeutil.NewSysClock(c.optSimClock)

	var wg sync.WaitGroup
	logCtx, stopLog := context.WithCancel(ctx)
	if c.optInterval > 0 {
		slog := stats.NewStateLog(os.Stderr, c.optInterval,
			stats.NewUint64State(cache.CntAddr(), "count", "records published by the recorder"),
			stats.NewUint64DeltaState(&c.decoded, "dec", "records decoded in the interval"),
			stats.NewUint64State(&c.decoded, "decoded", "records decoded"),
			stats.NewUint64State(&c.failed, "failed", "records that failed to decode"),
			stats.NewGenState("clock", "market clock, simulated with -sim-clock", func() string {
				return c.clock.Now().In(timeutil.Location()).Format(timeutil.DateTimeLayout)
			}, 19),
			stats.NewGenState("done", "recorder has shut down", func() string {
				return strconv.FormatBool(cache.Finished())
			}, 5),
		)
		slog.Legend()
		wg.Add(1)
		go func() {
			defer wg.Done()
			slog.Run(logCtx)
		}()
	}

	res, err := replay.New(cfg, st).Run(ctx, cache, c)
	stopLog()
	wg.Wait()

	if c.optStats {
		st.PrettyPrint(c.Out)
	}
	fmt.Fprintf(os.Stderr, "next: %d, decoded: %d, failed: %d\n", res.Next, res.Decoded, res.Failed)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	c := &cmdReplayT{}
	c.Init("replay", "decode records in order, optionally following a live segment")
	cmd.Register(c)
}
