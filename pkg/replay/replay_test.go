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

package replay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchmd/pkg/msg"
	"pitchmd/pkg/pitch"
	"pitchmd/pkg/serde"
	"pitchmd/pkg/stats"
	"pitchmd/pkg/util"
)

type memSource struct {
	mu       sync.Mutex
	recs     []msg.FixedRecord
	finished bool
}

func (s *memSource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

func (s *memSource) Record(i int) (*msg.FixedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.recs) {
		return nil, errors.New("out of range")
	}
	r := s.recs[i]
	return &r, nil
}

func (s *memSource) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *memSource) append(t *testing.T, m pitch.Message) {
	rec, err := pitch.EncodeRecord(&m)
	require.NoError(t, err)
	s.mu.Lock()
	s.recs = append(s.recs, rec)
	s.mu.Unlock()
}

func (s *memSource) appendRaw(b []byte) {
	s.mu.Lock()
	s.recs = append(s.recs, msg.New(b))
	s.mu.Unlock()
}

func (s *memSource) finish() {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
}

type collector struct {
	seqs   []int
	msgs   []pitch.Message
	failed []int
	errs   []error
}

func (c *collector) OnMessage(seq int, m *pitch.Message) error {
	c.seqs = append(c.seqs, seq)
	c.msgs = append(c.msgs, *m)
	return nil
}

func (c *collector) OnDecodeError(seq int, rec *msg.FixedRecord, err error) {
	c.failed = append(c.failed, seq)
	c.errs = append(c.errs, err)
}

func order(ref uint64) pitch.Message {
	return pitch.Message{Index: uint16(ref), Body: &pitch.AddOrder{Reference: ref, Side: pitch.SideBuy, Qty: 1, Price: 2}}
}

func TestSkipAndContinue(t *testing.T) {
	src := &memSource{}
	src.append(t, order(1))
	src.appendRaw([]byte{0xff, 0, 0, 0, 0, 0, 0, 0})
	src.appendRaw([]byte{'A', 'B', 0})
	src.append(t, order(2))

	st := stats.NewStatistics()
	var c collector
	res, err := New(Config{}, st).Run(context.Background(), src, &c)
	require.NoError(t, err)
	assert.Equal(t, Result{Decoded: 2, Failed: 2, Next: 4}, res)
	assert.Equal(t, []int{0, 3}, c.seqs)
	assert.Equal(t, uint64(2), c.msgs[1].Body.(*pitch.AddOrder).Reference)
	assert.Equal(t, []int{1, 2}, c.failed)
	assert.True(t, errors.Is(c.errs[0], serde.ErrSyntax))
	assert.True(t, errors.Is(c.errs[1], serde.ErrEof))

	assert.Equal(t, int64(2), st.Tag(pitch.TagAddOrder).NumDecoded)
	assert.Equal(t, int64(1), st.Errors(serde.KindSyntax))
}

func TestFrom(t *testing.T) {
	src := &memSource{}
	for i := 0; i < 5; i++ {
		src.append(t, order(uint64(i)))
	}
	var seqs []int
	res, err := Run(context.Background(), Config{From: 3}, src, HandlerFunc(func(seq int, m *pitch.Message) error {
		seqs = append(seqs, seq)
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, seqs)
	assert.Equal(t, 5, res.Next)
}

func TestHandlerErrorStops(t *testing.T) {
	src := &memSource{}
	src.append(t, order(1))
	src.append(t, order(2))
	stop := errors.New("stop")
	res, err := Run(context.Background(), Config{}, src, HandlerFunc(func(seq int, m *pitch.Message) error {
		return stop
	}))
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 0, res.Next)
}

func TestFollowUntilFinished(t *testing.T) {
	src := &memSource{}
	src.append(t, order(1))

	cfg := Config{Follow: true, PollInterval: util.Duration{Duration: time.Millisecond}}
	got := make(chan int, 16)
	done := make(chan Result, 1)
	go func() {
		res, err := Run(context.Background(), cfg, src, HandlerFunc(func(seq int, m *pitch.Message) error {
			got <- seq
			return nil
		}))
		assert.NoError(t, err)
		done <- res
	}()

	assert.Equal(t, 0, <-got)
	src.append(t, order(2))
	assert.Equal(t, 1, <-got)
	src.append(t, order(3))
	src.finish()

	select {
	case res := <-done:
		assert.Equal(t, 3, res.Decoded)
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not stop after the source finished")
	}
}

func TestFollowCancelled(t *testing.T) {
	src := &memSource{}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	cfg := Config{Follow: true, PollInterval: util.Duration{Duration: time.Millisecond}}
	_, err := Run(ctx, cfg, src, HandlerFunc(func(int, *pitch.Message) error { return nil }))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
