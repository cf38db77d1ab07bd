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
	"encoding/binary"

	"pitchmd/pkg/serde"
)

var le = binary.LittleEndian

// The wire structs below mirror the exchange layouts byte for byte. Each one
// reads its whole fixed length from the decoder in a single step and then
// picks fields out by offset.

type (
	SystemEventWire struct {
		Tag       byte
		EventCode uint8
		Index     uint16
		Tracking  uint16
		TimeHours uint32
		Timestamp uint32
	}

	SymbolDirectoryWire struct {
		Tag            byte
		MarketCategory uint8
		Symbol         [SymbolLen]byte
		Classification uint8
		Precision      int8
		Index          uint16
		Tracking       uint16
		Timestamp      uint32
		LotSize        uint32
		TurnoverMulti  uint32
		LowerLimit     int32
		UpperLimit     int32
	}

	TradingActionWire struct {
		Tag          byte
		TradingState uint8
		Reason       uint16
		Index        uint16
		Tracking     uint16
		Timestamp    uint32
	}

	AddOrderWire struct {
		Tag       byte
		BuySell   uint8
		Index     uint16
		Tracking  uint16
		Timestamp uint32
		RefNo     uint64
		Qty       uint32
		Price     int32
	}

	OrderExecutedWire struct {
		Tag       byte
		Printable bool
		Index     uint16
		Tracking  uint16
		Timestamp uint32
		RefNo     uint64
		Qty       uint32
		MatchNo   uint64
	}

	OrderExecutedWithPriceWire struct {
		OrderExecutedWire
		Price int32
	}

	OrderCancelledWire struct {
		Tag          byte
		CancelReason uint8
		Index        uint16
		Tracking     uint16
		Timestamp    uint32
		RefNo        uint64
		Qty          uint32
	}

	OrderDeleteWire struct {
		Tag          byte
		CancelReason uint8
		Index        uint16
		Tracking     uint16
		Timestamp    uint32
		RefNo        uint64
	}

	ReplaceOrderWire struct {
		Tag       byte
		Index     uint16
		Tracking  uint16
		Timestamp uint32
		RefNo     uint64
		NewRefNo  uint64
		Qty       uint32
		Price     int32
	}

	TradeWire struct {
		Tag       byte
		BuySell   uint8
		Index     uint16
		Tracking  uint16
		Timestamp uint32
		RefNo     uint64
		Qty       uint32
		Price     int32
		MatchNo   uint64
	}

	CrossTradeWire struct {
		Tag          byte
		CrossType    uint8
		Index        uint16
		Tracking     uint16
		Timestamp    uint32
		Qty          uint32
		Price        int32
		PClose       int32
		OpenInterest uint32
		MatchNo      uint64
	}
)

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (w *SystemEventWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(SystemEventLen)
	if err != nil {
		return err
	}
	w.Tag = raw[0]
	w.EventCode = raw[1]
	w.Index = le.Uint16(raw[2:4])
	w.Tracking = le.Uint16(raw[4:6])
	w.TimeHours = le.Uint32(raw[6:10])
	w.Timestamp = le.Uint32(raw[10:14])
	return nil
}

func (w *SystemEventWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint8(w.EventCode)
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.TimeHours)
	e.PutUint32(w.Timestamp)
	return nil
}

func (w *SymbolDirectoryWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(SymbolDirectoryLen)
	if err != nil {
		return err
	}
	w.Tag = raw[0]
	w.MarketCategory = raw[1]
	copy(w.Symbol[:], raw[2:2+SymbolLen])
	off := 2 + SymbolLen
	w.Classification = raw[off]
	w.Precision = int8(raw[off+1])
	w.Index = le.Uint16(raw[off+2 : off+4])
	w.Tracking = le.Uint16(raw[off+4 : off+6])
	w.Timestamp = le.Uint32(raw[off+6 : off+10])
	w.LotSize = le.Uint32(raw[off+10 : off+14])
	w.TurnoverMulti = le.Uint32(raw[off+14 : off+18])
	w.LowerLimit = int32(le.Uint32(raw[off+18 : off+22]))
	w.UpperLimit = int32(le.Uint32(raw[off+22 : off+26]))
	return nil
}

func (w *SymbolDirectoryWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint8(w.MarketCategory)
	if err := e.PutFixed(w.Symbol[:], SymbolLen); err != nil {
		return err
	}
	e.PutUint8(w.Classification)
	e.PutInt8(w.Precision)
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.Timestamp)
	e.PutUint32(w.LotSize)
	e.PutUint32(w.TurnoverMulti)
	e.PutInt32(w.LowerLimit)
	e.PutInt32(w.UpperLimit)
	return nil
}

func (w *TradingActionWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(TradingActionLen)
	if err != nil {
		return err
	}
	w.Tag = raw[0]
	w.TradingState = raw[1]
	w.Reason = le.Uint16(raw[2:4])
	w.Index = le.Uint16(raw[4:6])
	w.Tracking = le.Uint16(raw[6:8])
	w.Timestamp = le.Uint32(raw[8:12])
	return nil
}

func (w *TradingActionWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint8(w.TradingState)
	e.PutUint16(w.Reason)
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.Timestamp)
	return nil
}

func (w *AddOrderWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(AddOrderLen)
	if err != nil {
		return err
	}
	w.Tag = raw[0]
	w.BuySell = raw[1]
	w.Index = le.Uint16(raw[2:4])
	w.Tracking = le.Uint16(raw[4:6])
	w.Timestamp = le.Uint32(raw[6:10])
	w.RefNo = le.Uint64(raw[10:18])
	w.Qty = le.Uint32(raw[18:22])
	w.Price = int32(le.Uint32(raw[22:26]))
	return nil
}

func (w *AddOrderWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint8(w.BuySell)
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.Timestamp)
	e.PutUint64(w.RefNo)
	e.PutUint32(w.Qty)
	e.PutInt32(w.Price)
	return nil
}

func (w *OrderExecutedWire) decodeFrom(raw []byte) {
	w.Tag = raw[0]
	w.Printable = raw[1] != 0
	w.Index = le.Uint16(raw[2:4])
	w.Tracking = le.Uint16(raw[4:6])
	w.Timestamp = le.Uint32(raw[6:10])
	w.RefNo = le.Uint64(raw[10:18])
	w.Qty = le.Uint32(raw[18:22])
	w.MatchNo = le.Uint64(raw[22:30])
}

func (w *OrderExecutedWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(OrderExecutedLen)
	if err != nil {
		return err
	}
	w.decodeFrom(raw)
	return nil
}

func (w *OrderExecutedWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint8(boolByte(w.Printable))
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.Timestamp)
	e.PutUint64(w.RefNo)
	e.PutUint32(w.Qty)
	e.PutUint64(w.MatchNo)
	return nil
}

func (w *OrderExecutedWithPriceWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(OrderExecutedWithPriceLen)
	if err != nil {
		return err
	}
	w.decodeFrom(raw)
	w.Price = int32(le.Uint32(raw[30:34]))
	return nil
}

func (w *OrderExecutedWithPriceWire) MarshalWire(e *serde.Encoder) error {
	w.OrderExecutedWire.MarshalWire(e)
	e.PutInt32(w.Price)
	return nil
}

func (w *OrderCancelledWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(OrderCancelledLen)
	if err != nil {
		return err
	}
	w.Tag = raw[0]
	w.CancelReason = raw[1]
	w.Index = le.Uint16(raw[2:4])
	w.Tracking = le.Uint16(raw[4:6])
	w.Timestamp = le.Uint32(raw[6:10])
	w.RefNo = le.Uint64(raw[10:18])
	w.Qty = le.Uint32(raw[18:22])
	return nil
}

func (w *OrderCancelledWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint8(w.CancelReason)
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.Timestamp)
	e.PutUint64(w.RefNo)
	e.PutUint32(w.Qty)
	return nil
}

func (w *OrderDeleteWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(OrderDeleteLen)
	if err != nil {
		return err
	}
	w.Tag = raw[0]
	w.CancelReason = raw[1]
	w.Index = le.Uint16(raw[2:4])
	w.Tracking = le.Uint16(raw[4:6])
	w.Timestamp = le.Uint32(raw[6:10])
	w.RefNo = le.Uint64(raw[10:18])
	return nil
}

func (w *OrderDeleteWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint8(w.CancelReason)
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.Timestamp)
	e.PutUint64(w.RefNo)
	return nil
}

func (w *ReplaceOrderWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(ReplaceOrderLen)
	if err != nil {
		return err
	}
	w.Tag = raw[0]
	w.Index = le.Uint16(raw[1:3])
	w.Tracking = le.Uint16(raw[3:5])
	w.Timestamp = le.Uint32(raw[5:9])
	w.RefNo = le.Uint64(raw[9:17])
	w.NewRefNo = le.Uint64(raw[17:25])
	w.Qty = le.Uint32(raw[25:29])
	w.Price = int32(le.Uint32(raw[29:33]))
	return nil
}

func (w *ReplaceOrderWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.Timestamp)
	e.PutUint64(w.RefNo)
	e.PutUint64(w.NewRefNo)
	e.PutUint32(w.Qty)
	e.PutInt32(w.Price)
	return nil
}

func (w *TradeWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(TradeLen)
	if err != nil {
		return err
	}
	w.Tag = raw[0]
	w.BuySell = raw[1]
	w.Index = le.Uint16(raw[2:4])
	w.Tracking = le.Uint16(raw[4:6])
	w.Timestamp = le.Uint32(raw[6:10])
	w.RefNo = le.Uint64(raw[10:18])
	w.Qty = le.Uint32(raw[18:22])
	w.Price = int32(le.Uint32(raw[22:26]))
	w.MatchNo = le.Uint64(raw[26:34])
	return nil
}

func (w *TradeWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint8(w.BuySell)
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.Timestamp)
	e.PutUint64(w.RefNo)
	e.PutUint32(w.Qty)
	e.PutInt32(w.Price)
	e.PutUint64(w.MatchNo)
	return nil
}

func (w *CrossTradeWire) UnmarshalWire(d *serde.Decoder) error {
	raw, err := d.FixedBytes(CrossTradeLen)
	if err != nil {
		return err
	}
	w.Tag = raw[0]
	w.CrossType = raw[1]
	w.Index = le.Uint16(raw[2:4])
	w.Tracking = le.Uint16(raw[4:6])
	w.Timestamp = le.Uint32(raw[6:10])
	w.Qty = le.Uint32(raw[10:14])
	w.Price = int32(le.Uint32(raw[14:18]))
	w.PClose = int32(le.Uint32(raw[18:22]))
	w.OpenInterest = le.Uint32(raw[22:26])
	w.MatchNo = le.Uint64(raw[26:34])
	return nil
}

func (w *CrossTradeWire) MarshalWire(e *serde.Encoder) error {
	e.PutUint8(w.Tag)
	e.PutUint8(w.CrossType)
	e.PutUint16(w.Index)
	e.PutUint16(w.Tracking)
	e.PutUint32(w.Timestamp)
	e.PutUint32(w.Qty)
	e.PutInt32(w.Price)
	e.PutInt32(w.PClose)
	e.PutUint32(w.OpenInterest)
	e.PutUint64(w.MatchNo)
	return nil
}
