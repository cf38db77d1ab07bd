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

// Message is the decoded, enum normalized form of one wire message.
type Message struct {
	Index     uint16
	Tracking  uint16
	Timestamp uint32
	Body      Body
}

// Body is implemented by the message variants of this package only.
type Body interface {
	Tag() byte
	isBody()
}

// Tag returns the tag byte of m's body, or 0 if m has no body.
func (m *Message) Tag() byte {
	if m.Body == nil {
		return 0
	}
	return m.Body.Tag()
}

type (
	SystemEvent struct {
		Event EventCode
		// hours since the Unix epoch
		TimeHours uint32
	}

	SymbolDirectory struct {
		Symbol         string
		MarketCategory MarketCategory
		Classification IssueClassification
		// decimal digits of the contract's prices
		Precision     int8
		RoundLotSize  uint32
		TurnoverMulti uint32
		LowerLimit    int32
		UpperLimit    int32
	}

	TradingAction struct {
		State  TradingState
		Reason uint16
	}

	AddOrder struct {
		Reference uint64
		Side      Side
		Qty       uint32
		Price     int32
	}

	OrderExecuted struct {
		Printable   bool
		Reference   uint64
		Executed    uint32
		MatchNumber uint64
	}

	OrderExecutedWithPrice struct {
		Printable   bool
		Reference   uint64
		Executed    uint32
		MatchNumber uint64
		Price       int32
	}

	OrderCancelled struct {
		Reason    CancelReason
		Reference uint64
		Cancelled uint32
	}

	OrderDelete struct {
		Reason    CancelReason
		Reference uint64
	}

	ReplaceOrder struct {
		OldReference uint64
		NewReference uint64
		Qty          uint32
		Price        int32
	}

	Trade struct {
		Reference   uint64
		Side        Side
		Qty         uint32
		Price       int32
		MatchNumber uint64
	}

	CrossTrade struct {
		CrossType    CrossType
		Qty          uint32
		Price        int32
		PClose       int32
		OpenInterest uint32
		MatchNumber  uint64
	}
)

func (*SystemEvent) Tag() byte            { return TagSystemEvent }
func (*SymbolDirectory) Tag() byte        { return TagSymbolDirectory }
func (*TradingAction) Tag() byte          { return TagTradingAction }
func (*AddOrder) Tag() byte               { return TagAddOrder }
func (*OrderExecuted) Tag() byte          { return TagOrderExecuted }
func (*OrderExecutedWithPrice) Tag() byte { return TagOrderExecutedWithPrice }
func (*OrderCancelled) Tag() byte         { return TagOrderCancelled }
func (*OrderDelete) Tag() byte            { return TagOrderDelete }
func (*ReplaceOrder) Tag() byte           { return TagReplaceOrder }
func (*Trade) Tag() byte                  { return TagTrade }
func (*CrossTrade) Tag() byte             { return TagCrossTrade }

func (*SystemEvent) isBody()            {}
func (*SymbolDirectory) isBody()        {}
func (*TradingAction) isBody()          {}
func (*AddOrder) isBody()               {}
func (*OrderExecuted) isBody()          {}
func (*OrderExecutedWithPrice) isBody() {}
func (*OrderCancelled) isBody()         {}
func (*OrderDelete) isBody()            {}
func (*ReplaceOrder) isBody()           {}
func (*Trade) isBody()                  {}
func (*CrossTrade) isBody()             {}

// PriceType returns the scale of the contract's prices.
func (s *SymbolDirectory) PriceType() PriceType {
	return NewPriceType(s.Precision)
}
