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
	"fmt"

	"pitchmd/pkg/serde"
)

// Every enumeration is carried as its ASCII wire code. A name table indexed by
// the code doubles as the membership test: an empty name is not in the alphabet.

type (
	EventCode           uint8
	Side                uint8
	TradingState        uint8
	CancelReason        uint8
	CrossType           uint8
	MarketCategory      uint8
	IssueClassification uint8
)

const (
	EventStartOfMessages     EventCode = 'O'
	EventStartOfSystemHours  EventCode = 'S'
	EventStartOfMarketHours  EventCode = 'Q'
	EventEndOfMarketHours    EventCode = 'M'
	EventEndOfSystemHours    EventCode = 'E'
	EventEndOfMessages       EventCode = 'C'
	EventEmergencyHalt       EventCode = 'A'
	EventEmergencyQuoteOnly  EventCode = 'R'
	EventEmergencyResumption EventCode = 'B'
)

const (
	SideBuy       Side = 'B'
	SideSell      Side = 'S'
	SideBuyCover  Side = 'C'
	SideSellClose Side = 'O'
)

const (
	TradingHalted        TradingState = 'H'
	TradingPaused        TradingState = 'P'
	TradingQuotationOnly TradingState = 'Q'
	Trading              TradingState = 'T'
)

const (
	CancelByUser      CancelReason = 'U'
	CancelExpired     CancelReason = 'E'
	CancelSupervisory CancelReason = 'S'
	CancelSelfTrade   CancelReason = 'T'
)

const (
	CrossOpening  CrossType = 'O'
	CrossClosing  CrossType = 'C'
	CrossHalted   CrossType = 'H'
	CrossIntraday CrossType = 'I'
)

const (
	MarketShfe        MarketCategory = 'F'
	MarketDce         MarketCategory = 'D'
	MarketCzce        MarketCategory = 'Z'
	MarketCffex       MarketCategory = 'C'
	MarketGce         MarketCategory = 'G'
	MarketSse         MarketCategory = 'S'
	MarketSzse        MarketCategory = 'E'
	MarketUnavailable MarketCategory = ' '
)

const (
	IssueAmericanDepositaryShare IssueClassification = 'A'
	IssueBond                    IssueClassification = 'B'
	IssueCommonStock             IssueClassification = 'C'
	IssueDepositoryReceipt       IssueClassification = 'F'
	IssueOrdinaryShare           IssueClassification = 'O'
	IssuePreferredStock          IssueClassification = 'P'
	IssueOtherSecurities         IssueClassification = 'Q'
	IssueRight                   IssueClassification = 'R'
	IssueConvertibleDebenture    IssueClassification = 'T'
	IssueUnit                    IssueClassification = 'U'
	IssueUnitsPerBenifInt        IssueClassification = 'V'
	IssueWarrant                 IssueClassification = 'W'
	IssueFutures                 IssueClassification = 'X'
	IssueOptions                 IssueClassification = 'Y'
)

type nameTable [256]string

var (
	eventNames = nameTable{
		'O': "StartOfMessages",
		'S': "StartOfSystemHours",
		'Q': "StartOfMarketHours",
		'M': "EndOfMarketHours",
		'E': "EndOfSystemHours",
		'C': "EndOfMessages",
		'A': "EmergencyHalt",
		'R': "EmergencyQuoteOnly",
		'B': "EmergencyResumption",
	}
	sideNames = nameTable{
		'B': "Buy",
		'S': "Sell",
		'C': "BuyCover",
		'O': "SellClose",
	}
	tradingStateNames = nameTable{
		'H': "Halted",
		'P': "Paused",
		'Q': "QuotationOnly",
		'T': "Trading",
	}
	cancelReasonNames = nameTable{
		'U': "User",
		'E': "Expired",
		'S': "Supervisory",
		'T': "SelfTrade",
	}
	crossTypeNames = nameTable{
		'O': "Opening",
		'C': "Closing",
		'H': "Halted",
		'I': "Intraday",
	}
	marketCategoryNames = nameTable{
		'F': "SHFE",
		'D': "DCE",
		'Z': "CZCE",
		'C': "CFFEX",
		'G': "GCE",
		'S': "SSE",
		'E': "SZSE",
		' ': "Unavailable",
	}
	issueClassificationNames = nameTable{
		'A': "AmericanDepositaryShare",
		'B': "Bond",
		'C': "CommonStock",
		'F': "DepositoryReceipt",
		'O': "OrdinaryShare",
		'P': "PreferredStock",
		'Q': "OtherSecurities",
		'R': "Right",
		'T': "ConvertibleDebenture",
		'U': "Unit",
		'V': "UnitsPerBenifInt",
		'W': "Warrant",
		'X': "Futures",
		'Y': "Options",
	}
)

func (t *nameTable) name(kind string, c uint8) string {
	if s := t[c]; s != "" {
		return s
	}
	return fmt.Sprintf("%s(%q)", kind, c)
}

func parseEnum[E ~uint8](t *nameTable, kind string, c uint8) (E, error) {
	if t[c] == "" {
		return 0, serde.SyntaxErrorf("pitch: unknown %s %q", kind, c)
	}
	return E(c), nil
}

func checkEnum(t *nameTable, kind string, c uint8) error {
	if t[c] == "" {
		return serde.Errorf("pitch: cannot encode %s %q", kind, c)
	}
	return nil
}

func (c EventCode) Valid() bool    { return eventNames[c] != "" }
func (s Side) Valid() bool         { return sideNames[s] != "" }
func (s TradingState) Valid() bool { return tradingStateNames[s] != "" }
func (r CancelReason) Valid() bool { return cancelReasonNames[r] != "" }
func (c CrossType) Valid() bool    { return crossTypeNames[c] != "" }

func (c EventCode) String() string           { return eventNames.name("EventCode", uint8(c)) }
func (s Side) String() string                { return sideNames.name("Side", uint8(s)) }
func (s TradingState) String() string        { return tradingStateNames.name("TradingState", uint8(s)) }
func (r CancelReason) String() string        { return cancelReasonNames.name("CancelReason", uint8(r)) }
func (c CrossType) String() string           { return crossTypeNames.name("CrossType", uint8(c)) }
func (m MarketCategory) String() string      { return marketCategoryNames.name("MarketCategory", uint8(m)) }
func (c IssueClassification) String() string { return issueClassificationNames.name("IssueClassification", uint8(c)) }
