// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package interp

import (
	"strings"

	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// baseDispatcher is the fixed builtin table at the end of the dispatch
// chain. Extension dispatchers run first; whatever they decline lands here.
type baseDispatcher struct{}

func (baseDispatcher) CallFunc(in *Interp, name string, args []value.Value) (value.Value, bool) {
	switch strings.ToUpper(name) {
	case "JSONNEW":
		schema := ""
		if len(args) > 0 {
			schema = value.Format(args[0])
		}
		return value.NewBySchema(schema), true

	case "JSONPARSE":
		text := ""
		if len(args) > 0 {
			text = value.Format(args[0])
		}
		v, err := value.Parse(text)
		if err != nil {
			in.Reportf("JsonParse: %v", err)
			return nil, true
		}
		return v, true

	case "JSONSTRINGIFY":
		var v value.Value
		if len(args) > 0 {
			v = args[0]
		}
		text, err := value.Stringify(v)
		if err != nil {
			in.Reportf("JsonStringify: %v", err)
			return nil, true
		}
		return text, true

	case "JSONGET":
		if len(args) < 2 {
			in.Reportf("JsonGet requires object and path")
			return nil, true
		}
		v, err := value.Get(args[0], value.Format(args[1]))
		if err != nil {
			in.Reportf("JsonGet: %v", err)
			return nil, true
		}
		return v, true
	}
	return nil, false
}

func (baseDispatcher) CallStmt(in *Interp, name string, args []value.Value) bool {
	switch strings.ToUpper(name) {
	case "MSGBOX":
		text := ""
		if len(args) > 0 {
			text = value.Format(args[0])
		}
		in.Notify(text)
		return true

	case "JSONSET":
		if len(args) < 3 {
			in.Reportf("JsonSet requires 3 args")
			return true
		}
		if err := value.Set(args[0], value.Format(args[1]), args[2]); err != nil {
			in.Reportf("JsonSet: %v", err)
		}
		return true

	case "BROWSEREVALJS":
		if len(args) < 2 {
			in.Reportf("BrowserEvalJs requires browser and script")
			return true
		}
		browser, ok := args[0].(HostObject)
		if !ok {
			in.Reportf("First argument to BrowserEvalJs is not a browser object")
			return true
		}
		script := value.Format(args[1])
		if _, ok := browser.CallMethod("EvalJs", []value.Value{script}); !ok {
			in.Reportf("First argument to BrowserEvalJs is not a browser object")
		}
		return true
	}
	return false
}
