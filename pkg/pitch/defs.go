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

// Message tags
const (
	TagSystemEvent            byte = 'S'
	TagSymbolDirectory        byte = 'R'
	TagTradingAction          byte = 'H'
	TagAddOrder               byte = 'A'
	TagOrderExecuted          byte = 'E'
	TagOrderExecutedWithPrice byte = 'C'
	TagOrderCancelled         byte = 'X'
	TagOrderDelete            byte = 'D'
	TagReplaceOrder           byte = 'U'
	TagTrade                  byte = 'P'
	TagCrossTrade             byte = 'Q'
)

const (
	// MinMessageLen is the shortest input Decode looks at.
	MinMessageLen = 8
	// SymbolLen is the width of the NUL padded symbol field.
	SymbolLen = 8
)

// Wire sizes, tag byte included.
const (
	SystemEventLen            = 14
	SymbolDirectoryLen        = 28 + SymbolLen
	TradingActionLen          = 12
	AddOrderLen               = 26
	OrderExecutedLen          = 30
	OrderExecutedWithPriceLen = 34
	OrderCancelledLen         = 22
	OrderDeleteLen            = 18
	ReplaceOrderLen           = 33
	TradeLen                  = 34
	CrossTradeLen             = 34
)

var wireLen = [256]uint8{
	TagSystemEvent:            SystemEventLen,
	TagSymbolDirectory:        SymbolDirectoryLen,
	TagTradingAction:          TradingActionLen,
	TagAddOrder:               AddOrderLen,
	TagOrderExecuted:          OrderExecutedLen,
	TagOrderExecutedWithPrice: OrderExecutedWithPriceLen,
	TagOrderCancelled:         OrderCancelledLen,
	TagOrderDelete:            OrderDeleteLen,
	TagReplaceOrder:           ReplaceOrderLen,
	TagTrade:                  TradeLen,
	TagCrossTrade:             CrossTradeLen,
}

// WireLen returns the encoded size of a message with the given tag, or 0 for
// an unknown tag.
func WireLen(tag byte) int {
	return int(wireLen[tag])
}

var tagNames = nameTable{
	TagSystemEvent:            "SystemEvent",
	TagSymbolDirectory:        "SymbolDirectory",
	TagTradingAction:          "TradingAction",
	TagAddOrder:               "AddOrder",
	TagOrderExecuted:          "OrderExecuted",
	TagOrderExecutedWithPrice: "OrderExecutedWithPrice",
	TagOrderCancelled:         "OrderCancelled",
	TagOrderDelete:            "OrderDelete",
	TagReplaceOrder:           "ReplaceOrder",
	TagTrade:                  "Trade",
	TagCrossTrade:             "CrossTrade",
}

// TagName returns the message type name for tag.
func TagName(tag byte) string {
	return tagNames.name("Tag", tag)
}
