// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package ledger

import (
	"strconv"
	"strings"

	"github.com/dinikifo/VB6.tiny.clone/internal/interp"
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// Dispatcher exposes the accounting builtins to scripts: NewJournal as a
// call expression and PostEntry as a statement. Both operate on the tree
// bound to AppData in the Context.
type Dispatcher struct{}

func (Dispatcher) CallFunc(in *interp.Interp, name string, args []value.Value) (value.Value, bool) {
	if strings.ToUpper(name) != "NEWJOURNAL" {
		return nil, false
	}
	appData := in.Context().Get("AppData")
	date := ""
	if len(args) > 0 {
		date = value.Format(args[0])
	}
	desc := ""
	if len(args) > 1 {
		desc = value.Format(args[1])
	}
	period := ""
	if len(args) > 2 && args[2] != nil {
		period = value.Format(args[2])
	}
	return CreateJournal(appData, date, desc, period), true
}

func (Dispatcher) CallStmt(in *interp.Interp, name string, args []value.Value) bool {
	if strings.ToUpper(name) != "POSTENTRY" {
		return false
	}
	if len(args) < 5 {
		in.Reportf("PostEntry requires 5 args: accountCode, assetTypeCode, period, journalId, amount")
		return true
	}
	appData := in.Context().Get("AppData")
	accountCode := value.Format(args[0])
	assetTypeCode := value.Format(args[1])
	period := value.Format(args[2])
	journalID := toJournalID(args[3])
	amount := value.ToFloat(args[4])
	PostEntry(appData, accountCode, assetTypeCode, period, journalID, amount)
	return true
}

func toJournalID(v value.Value) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case float64:
		return int64(t)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
