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

// Package pitch implements the PITCH market data messages carried in the
// shared memory cache: their wire layouts, tag dispatch, and conversion to
// and from the semantic Message form.
package pitch

import (
	"pitchmd/pkg/msg"
	"pitchmd/pkg/serde"
)

type wireMessage[T any] interface {
	*T
	serde.Unmarshaler
	message() (Message, error)
}

type decodeFunc func(d *serde.Decoder) (Message, error)

func decodeWire[T any, P wireMessage[T]](d *serde.Decoder) (Message, error) {
	var w T
	if err := P(&w).UnmarshalWire(d); err != nil {
		return Message{}, err
	}
	return P(&w).message()
}

var decoders = [256]decodeFunc{
	TagSystemEvent:            decodeWire[SystemEventWire],
	TagSymbolDirectory:        decodeWire[SymbolDirectoryWire],
	TagTradingAction:          decodeWire[TradingActionWire],
	TagAddOrder:               decodeWire[AddOrderWire],
	TagOrderExecuted:          decodeWire[OrderExecutedWire],
	TagOrderExecutedWithPrice: decodeWire[OrderExecutedWithPriceWire],
	TagOrderCancelled:         decodeWire[OrderCancelledWire],
	TagOrderDelete:            decodeWire[OrderDeleteWire],
	TagReplaceOrder:           decodeWire[ReplaceOrderWire],
	TagTrade:                  decodeWire[TradeWire],
	TagCrossTrade:             decodeWire[CrossTradeWire],
}

// Decode converts exactly one wire message into a Message.
//
//	less than MinMessageLen bytes  serde.ErrEof
//	unknown tag                    Syntax kind error
//	enum byte outside its set      Syntax kind error
//	bytes left after the message   serde.ErrTrailingCharacters
func Decode(b []byte) (m Message, err error) {
	if len(b) < MinMessageLen {
		err = serde.ErrEof
		return
	}
	fn := decoders[b[0]]
	if fn == nil {
		err = serde.SyntaxErrorf("pitch: unknown message tag %#02x", b[0])
		return
	}
	var d serde.Decoder
	d.Reset(b)
	if m, err = fn(&d); err != nil {
		return
	}
	err = d.Finish()
	return
}

// DecodeRecord decodes the valid payload of r.
func DecodeRecord(r *msg.FixedRecord) (Message, error) {
	return Decode(r.Bytes())
}

// Tag returns the tag byte that Decode would dispatch b on.
func Tag(b []byte) (byte, bool) {
	if len(b) == 0 {
		return 0, false
	}
	return b[0], decoders[b[0]] != nil
}

// Encode returns the wire form of m.
func Encode(m *Message) ([]byte, error) {
	return AppendEncode(make([]byte, 0, WireLen(m.Tag())), m)
}

// AppendEncode appends the wire form of m to dst.
func AppendEncode(dst []byte, m *Message) ([]byte, error) {
	e := serde.NewEncoderBuffer(dst)
	if err := marshalBody(e, m); err != nil {
		return dst, err
	}
	return e.Bytes(), nil
}

// EncodeRecord encodes m into a FixedRecord. Every message fits.
func EncodeRecord(m *Message) (rec msg.FixedRecord, err error) {
	var buf [msg.MaxPayload]byte
	var b []byte
	if b, err = AppendEncode(buf[:0], m); err != nil {
		return
	}
	rec = msg.New(b)
	return
}
