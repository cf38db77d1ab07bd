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

package mdcache

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidHeader reports header values that cannot describe a segment.
var ErrInvalidHeader = errors.New("mdcache: invalid header")

// ErrClosed is returned by record lookups on an unmapped segment.
var ErrClosed = errors.New("mdcache: segment closed")

// a mapping must be indexable by int
const maxMapLen uint64 = math.MaxInt

// IoError is returned when the segment cannot be found, read or mapped.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	if e.Path == "" {
		return "mdcache: " + e.Op + ": " + e.Err.Error()
	}
	return "mdcache: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IoError) Unwrap() error {
	return e.Err
}

func errOutOfRange(i, n int) error {
	return fmt.Errorf("mdcache: record %d out of range [0, %d)", i, n)
}
