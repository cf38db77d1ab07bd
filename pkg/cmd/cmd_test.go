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

package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCmd struct {
	Command
	count   int
	wait    time.Duration
	name    string
	execErr error
	ran     bool
}

func (c *testCmd) Init(name string, desc string) {
	c.Command.Init(name, desc)
	c.IntOption(&c.count, "n|count", 1, "number of things")
	c.DurationOption(&c.wait, "wait", time.Second, "how long")
	c.StringOption(&c.name, "name", "x", "a name")
	c.SetSynopsis("[options]")
	c.AddDetails("  details\n")
	c.AddExample("test-cmd -n 3", "run three times")
}

func (c *testCmd) Exec(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.ran = true
	return c.execErr
}

func TestOptions(t *testing.T) {
	c := &testCmd{}
	c.Init("opt-test", "option test")
	require.NoError(t, c.Parse([]string{"-count", "3", "-wait", "5ms", "-name", "y"}))
	assert.Equal(t, 3, c.count)
	assert.Equal(t, 5*time.Millisecond, c.wait)
	assert.Equal(t, "y", c.name)

	d := &testCmd{}
	d.Init("opt-test2", "")
	require.NoError(t, d.Parse([]string{"-n", "4"}))
	assert.Equal(t, 4, d.count)
	assert.Contains(t, d.GetOptionDesc(), "-n, -count int")
}

func TestUsage(t *testing.T) {
	c := &testCmd{}
	c.Init("usage-test", "prints usage")
	var buf bytes.Buffer
	c.Write(&buf)
	out := buf.String()
	assert.Contains(t, out, "usage-test - prints usage")
	assert.Contains(t, out, "SYNOPSIS")
	assert.Contains(t, out, "run three times")
}

func TestDispatch(t *testing.T) {
	c := &testCmd{}
	c.Init("main-test", "dispatch")
	require.True(t, Register(c))
	assert.False(t, Register(c))
	assert.Equal(t, ICommand(c), GetCommand("main-test"))

	cmd, args := ParseCommandLine([]string{"-v", "main-test", "-n", "2"})
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"-v", "-n", "2"}, args)

	assert.Equal(t, 0, Main(context.Background(), []string{"main-test", "-n", "2"}))
	assert.True(t, c.ran)
	assert.Equal(t, 2, c.count)

	e := &testCmd{execErr: errors.New("boom")}
	e.Init("fail-test", "fails")
	RegisterNewGroup("tests", e)
	assert.Equal(t, 1, Main(context.Background(), []string{"fail-test"}))
	assert.Equal(t, 2, Main(context.Background(), []string{"fail-test", "-bogus"}))

	var buf bytes.Buffer
	WriteCommand(&buf)
	assert.Contains(t, buf.String(), "tests")
	assert.Contains(t, buf.String(), "fail-test")
	assert.Contains(t, buf.String(), "others")
}
