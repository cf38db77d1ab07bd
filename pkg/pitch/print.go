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
	"io"
	"time"

	"pitchmd/pkg/timeutil"
)

// String renders m on one line, for dump output.
func (m Message) String() string {
	return fmt.Sprintf("%s idx=%d trk=%d ts=%d %s", TagName(m.Tag()), m.Index, m.Tracking, m.Timestamp, bodyString(m.Body))
}

func bodyString(b Body) string {
	switch v := b.(type) {
	case *SystemEvent:
		return fmt.Sprintf("event=%s hours=%d (%s)", v.Event, v.TimeHours,
			timeutil.FromHours(v.TimeHours).Format(time.RFC3339))
	case *SymbolDirectory:
		return fmt.Sprintf("symbol=%s market=%s class=%s prec=%d lot=%d multi=%d limits=[%d,%d]",
			v.Symbol, v.MarketCategory, v.Classification, v.Precision, v.RoundLotSize, v.TurnoverMulti,
			v.LowerLimit, v.UpperLimit)
	case *TradingAction:
		return fmt.Sprintf("state=%s reason=%d", v.State, v.Reason)
	case *AddOrder:
		return fmt.Sprintf("ref=%d side=%s qty=%d price=%d", v.Reference, v.Side, v.Qty, v.Price)
	case *OrderExecuted:
		return fmt.Sprintf("ref=%d executed=%d match=%d printable=%t", v.Reference, v.Executed, v.MatchNumber, v.Printable)
	case *OrderExecutedWithPrice:
		return fmt.Sprintf("ref=%d executed=%d price=%d match=%d printable=%t",
			v.Reference, v.Executed, v.Price, v.MatchNumber, v.Printable)
	case *OrderCancelled:
		return fmt.Sprintf("ref=%d cancelled=%d reason=%s", v.Reference, v.Cancelled, v.Reason)
	case *OrderDelete:
		return fmt.Sprintf("ref=%d reason=%s", v.Reference, v.Reason)
	case *ReplaceOrder:
		return fmt.Sprintf("ref=%d new_ref=%d qty=%d price=%d", v.OldReference, v.NewReference, v.Qty, v.Price)
	case *Trade:
		return fmt.Sprintf("ref=%d side=%s qty=%d price=%d match=%d", v.Reference, v.Side, v.Qty, v.Price, v.MatchNumber)
	case *CrossTrade:
		return fmt.Sprintf("type=%s qty=%d price=%d pclose=%d oi=%d match=%d",
			v.CrossType, v.Qty, v.Price, v.PClose, v.OpenInterest, v.MatchNumber)
	case nil:
		return "<no body>"
	}
	return fmt.Sprintf("%+v", b)
}

func (m *Message) PrettyPrint(w io.Writer) {
	fmt.Fprintf(w, "Type          : %c\t%s\n", m.Tag(), TagName(m.Tag()))
	fmt.Fprintf(w, "Index         : %d\n", m.Index)
	fmt.Fprintf(w, "Tracking      : %d\n", m.Tracking)
	fmt.Fprintf(w, "Timestamp     : %d\n", m.Timestamp)
	fmt.Fprintf(w, "Body          : %s\n", bodyString(m.Body))
}
