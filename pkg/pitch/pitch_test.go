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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchmd/pkg/msg"
	"pitchmd/pkg/serde"
)

var addOrderBytes = []byte{
	0x41, 0x42, 0x01, 0x00, 0x02, 0x00, 0x7B, 0xCA, 0x5B, 0x07, 0xEE, 0x97, 0x7A,
	0x14, 0x2F, 0x00, 0x00, 0x00, 0x64, 0x00, 0x00, 0x00, 0x6A, 0xC7, 0x00, 0x00,
}

var addOrderMsg = Message{
	Index:     1,
	Tracking:  2,
	Timestamp: 123456123,
	Body: &AddOrder{
		Reference: 202207041518,
		Side:      SideBuy,
		Qty:       100,
		Price:     51050,
	},
}

func sampleMessages() []Message {
	return []Message{
		{1, 2, 3, &SystemEvent{Event: EventStartOfMarketHours, TimeHours: 459000}},
		{4, 5, 6, &SymbolDirectory{
			Symbol:         "cu1908",
			MarketCategory: MarketShfe,
			Classification: IssueFutures,
			Precision:      2,
			RoundLotSize:   5,
			TurnoverMulti:  10,
			LowerLimit:     -100,
			UpperLimit:     99999,
		}},
		{7, 8, 9, &TradingAction{State: Trading, Reason: 0x4142}},
		addOrderMsg,
		{1, 1, 1, &OrderExecuted{Printable: true, Reference: 11, Executed: 12, MatchNumber: 13}},
		{2, 2, 2, &OrderExecutedWithPrice{Reference: 21, Executed: 22, MatchNumber: 23, Price: -24}},
		{3, 3, 3, &OrderCancelled{Reason: CancelSelfTrade, Reference: 31, Cancelled: 32}},
		{4, 4, 4, &OrderDelete{Reason: CancelExpired, Reference: 41}},
		{5, 5, 5, &ReplaceOrder{OldReference: 51, NewReference: 52, Qty: 53, Price: 54}},
		{6, 6, 6, &Trade{Reference: 61, Side: SideSellClose, Qty: 62, Price: 63, MatchNumber: 64}},
		{7, 7, 7, &CrossTrade{CrossType: CrossClosing, Qty: 71, Price: 72, PClose: 73, OpenInterest: 74, MatchNumber: 75}},
	}
}

func TestAddOrderVector(t *testing.T) {
	out, err := Encode(&addOrderMsg)
	require.NoError(t, err)
	assert.Equal(t, addOrderBytes, out)

	m, err := Decode(addOrderBytes)
	require.NoError(t, err)
	assert.Equal(t, addOrderMsg, m)
}

func TestRoundTrip(t *testing.T) {
	for _, m := range sampleMessages() {
		m := m
		t.Run(TagName(m.Tag()), func(t *testing.T) {
			out, err := Encode(&m)
			require.NoError(t, err)
			assert.Len(t, out, WireLen(m.Tag()))
			assert.Equal(t, m.Tag(), out[0])

			got, err := Decode(out)
			require.NoError(t, err)
			assert.Equal(t, m, got)

			rec, err := EncodeRecord(&m)
			require.NoError(t, err)
			fromRec, err := DecodeRecord(&rec)
			require.NoError(t, err)
			assert.Equal(t, m, fromRec)
		})
	}
}

func TestTrailingBytes(t *testing.T) {
	for _, m := range sampleMessages() {
		out, err := Encode(&m)
		require.NoError(t, err)
		_, err = Decode(append(out, 0))
		assert.True(t, errors.Is(err, serde.ErrTrailingCharacters), "%s: %v", TagName(m.Tag()), err)
	}
}

func TestTruncated(t *testing.T) {
	for _, m := range sampleMessages() {
		out, err := Encode(&m)
		require.NoError(t, err)
		_, err = Decode(out[:len(out)-1])
		assert.True(t, errors.Is(err, serde.ErrEof), "%s: %v", TagName(m.Tag()), err)
	}
}

func TestShortInput(t *testing.T) {
	_, err := Decode(addOrderBytes[:7])
	assert.True(t, errors.Is(err, serde.ErrEof))

	for n := 0; n < MinMessageLen; n++ {
		_, err = Decode(bytes.Repeat([]byte{0xff}, n))
		assert.True(t, errors.Is(err, serde.ErrEof), "len %d", n)
	}
}

func TestUnknownTag(t *testing.T) {
	b := append([]byte{0xff}, addOrderBytes[1:]...)
	_, err := Decode(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, serde.ErrSyntax))
	assert.Contains(t, err.Error(), "0xff")

	tag, ok := Tag(b)
	assert.Equal(t, byte(0xff), tag)
	assert.False(t, ok)
}

func TestUnknownEnumByte(t *testing.T) {
	testCases := []struct {
		name string
		msg  Message
	}{
		{"event", sampleMessages()[0]},
		{"trading state", sampleMessages()[2]},
		{"side", addOrderMsg},
		{"cancel reason", sampleMessages()[6]},
		{"delete reason", sampleMessages()[7]},
		{"trade side", sampleMessages()[9]},
		{"cross type", sampleMessages()[10]},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Encode(&tc.msg)
			require.NoError(t, err)
			out[1] = '#'
			_, err = Decode(out)
			require.Error(t, err)
			kind, ok := serde.KindOf(err)
			assert.True(t, ok)
			assert.Equal(t, serde.KindSyntax, kind)
		})
	}
}

func TestEncodeRejectsInvalidEnum(t *testing.T) {
	m := Message{Body: &AddOrder{Side: 'x'}}
	_, err := Encode(&m)
	assert.Error(t, err)

	m = Message{Body: &CrossTrade{CrossType: 0}}
	_, err = Encode(&m)
	assert.Error(t, err)

	_, err = Encode(&Message{})
	assert.Error(t, err)
}

func TestSymbolNulTrimmed(t *testing.T) {
	w := SymbolDirectoryWire{
		Tag:            TagSymbolDirectory,
		MarketCategory: uint8(MarketShfe),
		Classification: uint8(IssueFutures),
		Precision:      1,
	}
	copy(w.Symbol[:], "cu1908")
	e := serde.NewEncoder(SymbolDirectoryLen)
	require.NoError(t, w.MarshalWire(e))
	assert.Equal(t, []byte{'c', 'u', '1', '9', '0', '8', 0, 0}, e.Bytes()[2:2+SymbolLen])

	m, err := Decode(e.Bytes())
	require.NoError(t, err)
	sd, ok := m.Body.(*SymbolDirectory)
	require.True(t, ok)
	assert.Equal(t, "cu1908", sd.Symbol)
	assert.False(t, strings.ContainsRune(sd.Symbol, 0))
	assert.Equal(t, NewPriceType(1), sd.PriceType())
}

func TestSymbolInvalidUTF8(t *testing.T) {
	w := SymbolDirectoryWire{Tag: TagSymbolDirectory}
	copy(w.Symbol[:], []byte{0xc3, 0x28})
	e := serde.NewEncoder(SymbolDirectoryLen)
	require.NoError(t, w.MarshalWire(e))
	_, err := Decode(e.Bytes())
	assert.True(t, errors.Is(err, serde.ErrExpectedString))
}

func TestSymbolTooLong(t *testing.T) {
	m := Message{Body: &SymbolDirectory{Symbol: "abcdefghi"}}
	_, err := Encode(&m)
	assert.Error(t, err)
}

func TestSymbolTrailingNul(t *testing.T) {
	m := Message{Body: &SymbolDirectory{Symbol: "cu\x00"}}
	_, err := Encode(&m)
	require.Error(t, err)
	kind, ok := serde.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, serde.KindMessage, kind)

	// an inner NUL survives a round trip
	m = Message{Body: &SymbolDirectory{Symbol: "cu\x00a", MarketCategory: MarketShfe, Classification: IssueFutures}}
	out, err := Encode(&m)
	require.NoError(t, err)
	got, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestUnvalidatedDirectoryCodes(t *testing.T) {
	m := Message{Body: &SymbolDirectory{Symbol: "IF2001", MarketCategory: '?', Classification: '!'}}
	out, err := Encode(&m)
	require.NoError(t, err)
	got, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, m, got)
	assert.Equal(t, "MarketCategory('?')", MarketCategory('?').String())
}

func TestWireMatchesReflection(t *testing.T) {
	type plainAddOrder struct {
		Tag       byte
		BuySell   uint8
		Index     uint16
		Tracking  uint16
		Timestamp uint32
		RefNo     uint64
		Qty       uint32
		Price     int32
	}
	got, err := serde.Decode[plainAddOrder](addOrderBytes)
	require.NoError(t, err)
	assert.Equal(t, uint64(202207041518), got.RefNo)

	var w AddOrderWire
	require.NoError(t, serde.Unmarshal(addOrderBytes, &w))
	assert.Equal(t, plainAddOrder(w), got)
}

func TestAppendEncode(t *testing.T) {
	var buf []byte
	var err error
	msgs := sampleMessages()
	for i := range msgs {
		buf, err = AppendEncode(buf, &msgs[i])
		require.NoError(t, err)
	}
	off := 0
	for _, m := range msgs {
		n := WireLen(buf[off])
		got, err := Decode(buf[off : off+n])
		require.NoError(t, err)
		assert.Equal(t, m, got)
		off += n
	}
	assert.Equal(t, len(buf), off)
}

func TestRecordsFit(t *testing.T) {
	for tag := 0; tag < 256; tag++ {
		assert.LessOrEqual(t, WireLen(byte(tag)), msg.MaxPayload)
	}
}

func TestEnumNames(t *testing.T) {
	assert.Equal(t, "Buy", SideBuy.String())
	assert.Equal(t, "SellClose", SideSellClose.String())
	assert.Equal(t, "EmergencyResumption", EventEmergencyResumption.String())
	assert.Equal(t, "Side('x')", Side('x').String())
	assert.True(t, CancelSupervisory.Valid())
	assert.False(t, TradingState('Z').Valid())
	assert.Equal(t, "CrossTrade", TagName(TagCrossTrade))
}

func TestPriceType(t *testing.T) {
	var pt PriceType
	assert.Equal(t, 123.0, pt.ToFloat(123))
	assert.Equal(t, int32(123), pt.FromFloat(123.0))

	pt = NewPriceType(2)
	assert.InDelta(t, 1.23, pt.ToFloat(123), 1e-9)
	assert.Equal(t, int32(123), pt.FromFloat(1.23))
	assert.Equal(t, "510.50", pt.Format(51050))

	assert.Equal(t, int8(6), NewPriceType(9).Digits())
	assert.Equal(t, int8(-2), NewPriceType(-5).Digits())
	assert.Equal(t, 500.0, NewPriceType(-2).ToFloat(5))
}

func TestPrint(t *testing.T) {
	s := addOrderMsg.String()
	assert.Contains(t, s, "AddOrder")
	assert.Contains(t, s, "side=Buy")

	var buf bytes.Buffer
	addOrderMsg.PrettyPrint(&buf)
	assert.Contains(t, buf.String(), "123456123")
}
