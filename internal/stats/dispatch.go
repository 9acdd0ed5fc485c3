// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package stats

import (
	"strings"

	"github.com/dinikifo/VB6.tiny.clone/internal/interp"
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// Dispatcher exposes StatsPrepare and StatsGet to scripts. Both read the
// tree bound to AppData in the Context.
type Dispatcher struct{}

func (Dispatcher) CallFunc(in *interp.Interp, name string, args []value.Value) (value.Value, bool) {
	switch strings.ToUpper(name) {
	case "STATSPREPARE":
		appData := in.Context().Get("AppData")
		account := ""
		if len(args) > 0 {
			account = value.Format(args[0])
		}
		from := ""
		if len(args) > 1 {
			from = value.Format(args[1])
		}
		to := ""
		if len(args) > 2 {
			to = value.Format(args[2])
		}
		if account == "" {
			return "", true
		}
		return RunAnalysis(appData, account, from, to), true

	case "STATSGET":
		appData := in.Context().Get("AppData")
		id := ""
		if len(args) > 0 {
			id = value.Format(args[0])
		}
		key := ""
		if len(args) > 1 {
			key = value.Format(args[1])
		}
		return GetStatsValue(appData, id, key), true
	}
	return nil, false
}

func (Dispatcher) CallStmt(in *interp.Interp, name string, args []value.Value) bool {
	return false
}
