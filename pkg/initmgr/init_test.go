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

package initmgr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFinalize(t *testing.T) {
	reset()
	defer reset()

	var order []string
	mk := func(name string, fail bool) IInitializer {
		return &Initializer{
			name: name,
			InitializeFunc: func(args ...interface{}) error {
				if fail {
					return errors.New("failed")
				}
				order = append(order, "init "+name)
				return nil
			},
			FinalizeFunc: func() { order = append(order, "fini "+name) },
		}
	}
	RegisterWithWeight(mk("b", false), 2)
	RegisterWithWeight(mk("a", false), 1)
	require.NoError(t, Init())
	require.NoError(t, Init())
	assert.Equal(t, []string{"init a", "init b"}, order)

	order = nil
	Register(mk("c", true))
	err := Init()
	assert.ErrorContains(t, err, "initialize c")
	assert.Equal(t, []string{"fini b", "fini a"}, order)

	order = nil
	Finalize()
	assert.Empty(t, order)
}

func TestNewInitializerName(t *testing.T) {
	i := NewInitializer(func(...interface{}) error { return nil }, nil)
	assert.Equal(t, "pitchmd/pkg/initmgr", i.Name())

	var closed bool
	i = NewInitializer(nil, func() { closed = true })
	assert.NoError(t, i.Initialize())
	i.Finalize()
	assert.True(t, closed)
}
