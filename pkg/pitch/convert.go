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
	"strings"
	"unicode/utf8"

	"pitchmd/pkg/serde"
)

func header(index, tracking uint16, timestamp uint32, body Body) Message {
	return Message{Index: index, Tracking: tracking, Timestamp: timestamp, Body: body}
}

func (w *SystemEventWire) message() (m Message, err error) {
	ev, err := parseEnum[EventCode](&eventNames, "event code", w.EventCode)
	if err != nil {
		return
	}
	m = header(w.Index, w.Tracking, w.Timestamp, &SystemEvent{Event: ev, TimeHours: w.TimeHours})
	return
}

func (w *SymbolDirectoryWire) message() (m Message, err error) {
	sym := serde.TrimNul(w.Symbol[:])
	if !utf8.Valid(sym) {
		err = serde.ErrExpectedString
		return
	}
	m = header(w.Index, w.Tracking, w.Timestamp, &SymbolDirectory{
		Symbol:         string(sym),
		MarketCategory: MarketCategory(w.MarketCategory),
		Classification: IssueClassification(w.Classification),
		Precision:      w.Precision,
		RoundLotSize:   w.LotSize,
		TurnoverMulti:  w.TurnoverMulti,
		LowerLimit:     w.LowerLimit,
		UpperLimit:     w.UpperLimit,
	})
	return
}

func (w *TradingActionWire) message() (m Message, err error) {
	st, err := parseEnum[TradingState](&tradingStateNames, "trading state", w.TradingState)
	if err != nil {
		return
	}
	m = header(w.Index, w.Tracking, w.Timestamp, &TradingAction{State: st, Reason: w.Reason})
	return
}

func (w *AddOrderWire) message() (m Message, err error) {
	side, err := parseEnum[Side](&sideNames, "side", w.BuySell)
	if err != nil {
		return
	}
	m = header(w.Index, w.Tracking, w.Timestamp, &AddOrder{
		Reference: w.RefNo,
		Side:      side,
		Qty:       w.Qty,
		Price:     w.Price,
	})
	return
}

func (w *OrderExecutedWire) message() (Message, error) {
	return header(w.Index, w.Tracking, w.Timestamp, &OrderExecuted{
		Printable:   w.Printable,
		Reference:   w.RefNo,
		Executed:    w.Qty,
		MatchNumber: w.MatchNo,
	}), nil
}

func (w *OrderExecutedWithPriceWire) message() (Message, error) {
	return header(w.Index, w.Tracking, w.Timestamp, &OrderExecutedWithPrice{
		Printable:   w.Printable,
		Reference:   w.RefNo,
		Executed:    w.Qty,
		MatchNumber: w.MatchNo,
		Price:       w.Price,
	}), nil
}

func (w *OrderCancelledWire) message() (m Message, err error) {
	reason, err := parseEnum[CancelReason](&cancelReasonNames, "cancel reason", w.CancelReason)
	if err != nil {
		return
	}
	m = header(w.Index, w.Tracking, w.Timestamp, &OrderCancelled{
		Reason:    reason,
		Reference: w.RefNo,
		Cancelled: w.Qty,
	})
	return
}

func (w *OrderDeleteWire) message() (m Message, err error) {
	reason, err := parseEnum[CancelReason](&cancelReasonNames, "cancel reason", w.CancelReason)
	if err != nil {
		return
	}
	m = header(w.Index, w.Tracking, w.Timestamp, &OrderDelete{Reason: reason, Reference: w.RefNo})
	return
}

func (w *ReplaceOrderWire) message() (Message, error) {
	return header(w.Index, w.Tracking, w.Timestamp, &ReplaceOrder{
		OldReference: w.RefNo,
		NewReference: w.NewRefNo,
		Qty:          w.Qty,
		Price:        w.Price,
	}), nil
}

func (w *TradeWire) message() (m Message, err error) {
	side, err := parseEnum[Side](&sideNames, "side", w.BuySell)
	if err != nil {
		return
	}
	m = header(w.Index, w.Tracking, w.Timestamp, &Trade{
		Reference:   w.RefNo,
		Side:        side,
		Qty:         w.Qty,
		Price:       w.Price,
		MatchNumber: w.MatchNo,
	})
	return
}

func (w *CrossTradeWire) message() (m Message, err error) {
	ct, err := parseEnum[CrossType](&crossTypeNames, "cross type", w.CrossType)
	if err != nil {
		return
	}
	m = header(w.Index, w.Tracking, w.Timestamp, &CrossTrade{
		CrossType:    ct,
		Qty:          w.Qty,
		Price:        w.Price,
		PClose:       w.PClose,
		OpenInterest: w.OpenInterest,
		MatchNumber:  w.MatchNo,
	})
	return
}

// marshalBody writes the wire form of m. The enum checks make Encode refuse
// anything Decode would reject.
func marshalBody(e *serde.Encoder, m *Message) error {
	switch b := m.Body.(type) {
	case *SystemEvent:
		if err := checkEnum(&eventNames, "event code", uint8(b.Event)); err != nil {
			return err
		}
		w := SystemEventWire{TagSystemEvent, uint8(b.Event), m.Index, m.Tracking, b.TimeHours, m.Timestamp}
		return w.MarshalWire(e)
	case *SymbolDirectory:
		if len(b.Symbol) > SymbolLen {
			return serde.Errorf("pitch: symbol %q is longer than %d bytes", b.Symbol, SymbolLen)
		}
		if strings.HasSuffix(b.Symbol, "\x00") {
			return serde.Errorf("pitch: symbol %q ends in NUL", b.Symbol)
		}
		if !utf8.ValidString(b.Symbol) {
			return serde.ErrExpectedString
		}
		w := SymbolDirectoryWire{
			Tag:            TagSymbolDirectory,
			MarketCategory: uint8(b.MarketCategory),
			Classification: uint8(b.Classification),
			Precision:      b.Precision,
			Index:          m.Index,
			Tracking:       m.Tracking,
			Timestamp:      m.Timestamp,
			LotSize:        b.RoundLotSize,
			TurnoverMulti:  b.TurnoverMulti,
			LowerLimit:     b.LowerLimit,
			UpperLimit:     b.UpperLimit,
		}
		copy(w.Symbol[:], b.Symbol)
		return w.MarshalWire(e)
	case *TradingAction:
		if err := checkEnum(&tradingStateNames, "trading state", uint8(b.State)); err != nil {
			return err
		}
		w := TradingActionWire{TagTradingAction, uint8(b.State), b.Reason, m.Index, m.Tracking, m.Timestamp}
		return w.MarshalWire(e)
	case *AddOrder:
		if err := checkEnum(&sideNames, "side", uint8(b.Side)); err != nil {
			return err
		}
		w := AddOrderWire{TagAddOrder, uint8(b.Side), m.Index, m.Tracking, m.Timestamp, b.Reference, b.Qty, b.Price}
		return w.MarshalWire(e)
	case *OrderExecuted:
		w := OrderExecutedWire{TagOrderExecuted, b.Printable, m.Index, m.Tracking, m.Timestamp, b.Reference, b.Executed, b.MatchNumber}
		return w.MarshalWire(e)
	case *OrderExecutedWithPrice:
		w := OrderExecutedWithPriceWire{
			OrderExecutedWire{TagOrderExecutedWithPrice, b.Printable, m.Index, m.Tracking, m.Timestamp, b.Reference, b.Executed, b.MatchNumber},
			b.Price,
		}
		return w.MarshalWire(e)
	case *OrderCancelled:
		if err := checkEnum(&cancelReasonNames, "cancel reason", uint8(b.Reason)); err != nil {
			return err
		}
		w := OrderCancelledWire{TagOrderCancelled, uint8(b.Reason), m.Index, m.Tracking, m.Timestamp, b.Reference, b.Cancelled}
		return w.MarshalWire(e)
	case *OrderDelete:
		if err := checkEnum(&cancelReasonNames, "cancel reason", uint8(b.Reason)); err != nil {
			return err
		}
		w := OrderDeleteWire{TagOrderDelete, uint8(b.Reason), m.Index, m.Tracking, m.Timestamp, b.Reference}
		return w.MarshalWire(e)
	case *ReplaceOrder:
		w := ReplaceOrderWire{TagReplaceOrder, m.Index, m.Tracking, m.Timestamp, b.OldReference, b.NewReference, b.Qty, b.Price}
		return w.MarshalWire(e)
	case *Trade:
		if err := checkEnum(&sideNames, "side", uint8(b.Side)); err != nil {
			return err
		}
		w := TradeWire{TagTrade, uint8(b.Side), m.Index, m.Tracking, m.Timestamp, b.Reference, b.Qty, b.Price, b.MatchNumber}
		return w.MarshalWire(e)
	case *CrossTrade:
		if err := checkEnum(&crossTypeNames, "cross type", uint8(b.CrossType)); err != nil {
			return err
		}
		w := CrossTradeWire{TagCrossTrade, uint8(b.CrossType), m.Index, m.Tracking, m.Timestamp, b.Qty, b.Price, b.PClose, b.OpenInterest, b.MatchNumber}
		return w.MarshalWire(e)
	case nil:
		return serde.Errorf("pitch: message has no body")
	}
	return serde.Errorf("pitch: unsupported body %T", m.Body)
}
