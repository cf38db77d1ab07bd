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

package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetLocation(time.FixedZone("CST", 8*3600))
	m.Run()
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "CST", Location().String())
	assert.Equal(t, "1970-01-01 08:00:00", FormatUnix(0))
	assert.Equal(t, "2022-07-04 15:18:00", FormatUnix(time.Date(2022, 7, 4, 7, 18, 0, 0, time.UTC).Unix()))
	assert.Equal(t, "1970-01-01 08:00:01.000002", FormatUnixMicro(1000002))

	// SetLocation after first use has no effect
	SetLocation(time.UTC)
	assert.Equal(t, "CST", Location().String())
}

func TestHours(t *testing.T) {
	ts := time.Date(2022, 1, 1, 8, 30, 0, 0, time.UTC)
	h := ToHours(ts)
	assert.Equal(t, time.Date(2022, 1, 1, 8, 0, 0, 0, time.UTC), FromHours(h))
	assert.Equal(t, uint32(0), ToHours(time.Unix(3599, 0)))
}

func TestSysClock(t *testing.T) {
	wall := NewSysClock(false)
	assert.False(t, wall.Simulated())
	assert.ErrorIs(t, wall.Set(time.Now()), ErrNotSimulated)
	assert.WithinDuration(t, time.Now(), wall.Now(), time.Second)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sim := NewSysClock(true)
	sim.now = func() time.Time { return base }

	target := base.Add(48 * time.Hour)
	require.NoError(t, sim.Set(target))
	assert.Equal(t, target, sim.Now())

	require.NoError(t, sim.Set(base.Add(time.Hour)))
	assert.Equal(t, target, sim.Now(), "a simulated clock never rolls back")

	var _ Clock = sim
}
