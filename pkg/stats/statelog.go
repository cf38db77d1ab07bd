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
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"
)

type (
	IState interface {
		Header() string
		FullHeader() string
		State() string
		CollectData()
		Width() int
	}

	StateBase struct {
		header     string
		fullHeader string
	}

	// Uint64State samples a counter it does not own, e.g. the live message
	// count in a mapped header.
	Uint64State struct {
		StateBase
		addr  *uint64
		value uint64
	}

	// Uint64DeltaState reports the change of a counter since the previous
	// sample.
	Uint64DeltaState struct {
		Uint64State
		lastValue uint64
	}

	GenState struct {
		StateBase
		Value func() string
		width int
	}

	// StateLog writes one line of states per interval, and a header line
	// every headerEvery lines.
	StateLog struct {
		w           io.Writer
		states      []IState
		interval    time.Duration
		headerEvery int
	}
)

func (s *StateBase) FullHeader() string {
	return s.fullHeader
}

func (s *StateBase) Header() string {
	return s.header
}

func NewUint64State(addr *uint64, header string, fullHeader string) *Uint64State {
	return &Uint64State{
		StateBase: StateBase{
			header:     header,
			fullHeader: fullHeader,
		},
		addr: addr,
	}
}

func (s *Uint64State) State() string {
	return fmt.Sprintf("%v", s.value)
}

func (s *Uint64State) CollectData() {
	s.value = atomic.LoadUint64(s.addr)
}

func (s *Uint64State) Width() int {
	if len(s.header) > 8 {
		return len(s.header)
	}
	return 8
}

func NewUint64DeltaState(addr *uint64, header string, fullHeader string) *Uint64DeltaState {
	st := &Uint64DeltaState{
		Uint64State: Uint64State{
			StateBase: StateBase{
				header:     header,
				fullHeader: fullHeader,
			},
			addr: addr,
		},
	}
	st.lastValue = atomic.LoadUint64(addr)
	st.value = st.lastValue
	return st
}

func (s *Uint64DeltaState) State() string {
	delta := s.value - s.lastValue
	s.lastValue = s.value
	return fmt.Sprintf("%v", delta)
}

func (s *Uint64DeltaState) Width() int {
	if len(s.header) > 5 {
		return len(s.header)
	}
	return 5
}

func NewGenState(header string, fullHeader string, v func() string, width int) *GenState {
	st := &GenState{
		StateBase: StateBase{
			header:     header,
			fullHeader: fullHeader,
		},
		Value: v,
		width: width,
	}

	if len(st.header) > st.width {
		st.width = len(st.header)
	}

	return st
}

func (s *GenState) State() string {
	return s.Value()
}

func (s *GenState) CollectData() {
	// do nothing
}

func (s *GenState) Width() int {
	return s.width
}

func NewStateLog(w io.Writer, interval time.Duration, states ...IState) *StateLog {
	if interval <= 0 {
		interval = time.Second
	}
	return &StateLog{w: w, states: states, interval: interval, headerEvery: 20}
}

func (l *StateLog) AddState(st IState) {
	l.states = append(l.states, st)
}

func (l *StateLog) GetStates() []IState {
	return l.states
}

func (l *StateLog) WriteHeader() {
	var b strings.Builder
	for _, st := range l.states {
		fmt.Fprintf(&b, "%*s ", st.Width(), st.Header())
	}
	fmt.Fprintln(l.w, strings.TrimRight(b.String(), " "))
}

// WriteStates samples every state and writes one line.
func (l *StateLog) WriteStates() {
	var b strings.Builder
	for _, st := range l.states {
		st.CollectData()
		fmt.Fprintf(&b, "%*s ", st.Width(), st.State())
	}
	fmt.Fprintln(l.w, strings.TrimRight(b.String(), " "))
}

// Legend writes the full header of every state.
func (l *StateLog) Legend() {
	for _, st := range l.states {
		fmt.Fprintf(l.w, "%-10s %s\n", st.Header(), st.FullHeader())
	}
}

// Run writes states every interval until ctx is done.
func (l *StateLog) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	cnt := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if cnt%l.headerEvery == 0 {
				l.WriteHeader()
			}
			l.WriteStates()
			cnt++
		}
	}
}
