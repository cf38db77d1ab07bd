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

/*
Package util implements some utility functions.
*/
package util

import (
	"errors"
	"time"

	uuid "github.com/satori/go.uuid"
)

// Duration is a time.Duration written as text, "250ms", in configuration
// files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

var ErrNotUUIDv1 = errors.New("util: not a v1 uuid")

// 100ns intervals between the uuid epoch, 1582-10-15, and the unix epoch
const uuidEpochOffset = 122192928000000000

// TimeFromUUIDv1 returns the generation time carried by a v1 uuid.
func TimeFromUUIDv1(id uuid.UUID) (time.Time, error) {
	if id.Version() != uuid.V1 {
		return time.Time{}, ErrNotUUIDv1
	}
	ts := uint64(id[6]&0x0f)<<56 | uint64(id[7])<<48 |
		uint64(id[4])<<40 | uint64(id[5])<<32 |
		uint64(id[0])<<24 | uint64(id[1])<<16 | uint64(id[2])<<8 | uint64(id[3])
	return time.Unix(0, int64(ts-uuidEpochOffset)*100), nil
}
