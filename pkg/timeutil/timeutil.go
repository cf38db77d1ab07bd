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

// Package timeutil holds the clock and the calendar formatting used for
// header and message timestamps.
package timeutil

import (
	"errors"
	"sync"
	"time"
)

const (
	DateTimeLayout      = "2006-01-02 15:04:05"
	DateTimeMicroLayout = "2006-01-02 15:04:05.000000"
)

var (
	zoneOnce sync.Once
	zone     *time.Location
)

// SetLocation fixes the zone used by Format* helpers. It only has an effect
// before the first formatting call.
func SetLocation(loc *time.Location) {
	zoneOnce.Do(func() {
		zone = loc
	})
}

// Location returns the formatting zone, time.Local unless SetLocation ran
// first.
func Location() *time.Location {
	zoneOnce.Do(func() {
		zone = time.Local
	})
	return zone
}

// FormatUnix renders seconds since the epoch as a local calendar time.
func FormatUnix(sec int64) string {
	return time.Unix(sec, 0).In(Location()).Format(DateTimeLayout)
}

// FormatUnixMicro renders microseconds since the epoch.
func FormatUnixMicro(us int64) string {
	return time.UnixMicro(us).In(Location()).Format(DateTimeMicroLayout)
}

// FromHours converts hours since the epoch, as carried by system events.
func FromHours(h uint32) time.Time {
	return time.Unix(int64(h)*3600, 0).UTC()
}

// ToHours is the inverse of FromHours, truncating to the hour.
func ToHours(t time.Time) uint32 {
	return uint32(t.Unix() / 3600)
}

type Clock interface {
	Now() time.Time
}

var ErrNotSimulated = errors.New("timeutil: clock is not simulated")

// SysClock reads the system clock. A simulated SysClock runs at wall speed
// from a settable point in time and never moves backwards.
type SysClock struct {
	sim bool
	mu  sync.Mutex
	adj time.Duration
	now func() time.Time
}

func NewSysClock(sim bool) *SysClock {
	return &SysClock{sim: sim, now: time.Now}
}

func (c *SysClock) Simulated() bool {
	return c.sim
}

func (c *SysClock) Now() time.Time {
	t := c.now()
	if !c.sim {
		return t
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return t.Add(c.adj)
}

// Set moves a simulated clock to t. Moves into the past are ignored.
func (c *SysClock) Set(t time.Time) error {
	if !c.sim {
		return ErrNotSimulated
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if adj := t.Sub(c.now()); adj > c.adj {
		c.adj = adj
	}
	return nil
}
