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

package serde

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindMessage Kind = iota
	KindEof
	KindSyntax
	KindExpectedString
	KindTrailingCharacters
)

var kindNames = [...]string{
	KindMessage:            "Message",
	KindEof:                "Eof",
	KindSyntax:             "Syntax",
	KindExpectedString:     "ExpectedString",
	KindTrailingCharacters: "TrailingCharacters",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is returned by every decode and encode operation of this package.
// Two errors match under errors.Is when their kinds are the same, so a
// descriptive Syntax error still satisfies errors.Is(err, ErrSyntax).
type Error struct {
	kind Kind
	what string
}

var (
	ErrEof                = &Error{kind: KindEof, what: "serde: unexpected end of input"}
	ErrSyntax             = &Error{kind: KindSyntax, what: "serde: syntax error"}
	ErrExpectedString     = &Error{kind: KindExpectedString, what: "serde: expect string input"}
	ErrTrailingCharacters = &Error{kind: KindTrailingCharacters, what: "serde: trailing chars"}
)

// Errorf returns a Message error, used for caller and schema validation failures.
// The text is used as is, callers add their own package prefix.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{kind: KindMessage, what: fmt.Sprintf(format, args...)}
}

// SyntaxErrorf returns a Syntax error carrying detail about the offending input.
func SyntaxErrorf(format string, args ...interface{}) *Error {
	return &Error{kind: KindSyntax, what: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.what
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.kind == KindMessage {
		return e == t
	}
	return e.kind == t.kind
}

// KindOf reports the kind of err, and false when err did not come from serde.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return KindMessage, false
}
