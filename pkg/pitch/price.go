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

package pitch

import (
	"math"
	"strconv"
)

const (
	minPriceDigits = -2
	maxPriceDigits = 6
)

var (
	priceDiv   = [...]float64{100, 10, 1, 0.1, 0.01, 0.001, 0.0001, 0.00001, 0.000001}
	priceMulti = [...]float64{0.01, 0.1, 1, 10, 100, 1000, 10000, 100000, 1000000}
)

// PriceType is the number of decimal digits carried by a scaled integer
// price. Negative values scale up: with -2 the wire value 5 is 500.
type PriceType int8

// NewPriceType clamps digits to the supported range [-2, 6].
func NewPriceType(digits int8) PriceType {
	if digits < minPriceDigits {
		return minPriceDigits
	}
	if digits > maxPriceDigits {
		return maxPriceDigits
	}
	return PriceType(digits)
}

func (p PriceType) Digits() int8 {
	return int8(p)
}

func (p PriceType) index() int {
	if p < minPriceDigits || p > maxPriceDigits {
		return -minPriceDigits
	}
	return int(p) - minPriceDigits
}

func (p PriceType) ToFloat(v int32) float64 {
	return float64(v) * priceDiv[p.index()]
}

func (p PriceType) FromFloat(f float64) int32 {
	return int32(math.Round(f * priceMulti[p.index()]))
}

// Format renders v with the type's decimal digits.
func (p PriceType) Format(v int32) string {
	prec := int(p)
	if prec < 0 {
		prec = 0
	}
	return strconv.FormatFloat(p.ToFloat(v), 'f', prec, 64)
}
