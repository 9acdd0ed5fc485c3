// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

// Package ledger keeps a small accounting model inside the dynamic tree:
// accounts, asset types, batches, journals and postings live as arrays
// under ledger.*, with id counters under meta.*. The layout mirrors the
// relational ACCOUNT/JOURNAL/POSTING design but stays plain JSON.
package ledger

import (
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// SchemaName is the schema key the Root template registers under.
const SchemaName = "Root"

var tableKeys = []string{"accounts", "assetTypes", "batches", "journals", "postings"}

var counterKeys = []string{
	"nextAccountId", "nextAssetTypeId", "nextBatchId",
	"nextJournalId", "nextPostingSeq",
}

// RootSchema builds a fresh Root template: empty ledger tables plus meta
// counters starting at 1.
func RootSchema() *value.Object {
	led := value.NewObject()
	for _, k := range tableKeys {
		led.Set(k, value.NewList())
	}
	led.Set("postingsText", "")

	meta := value.NewObject()
	for _, k := range counterKeys {
		meta.Set(k, int64(1))
	}

	root := value.NewObject()
	root.Set("ledger", led)
	root.Set("meta", meta)
	return root
}

// EnsureDefaults heals a loaded tree into the expected ledger/meta shape.
// Non-mapping roots are replaced; missing or mistyped tables and counters
// are reset while everything else is left alone.
func EnsureDefaults(root value.Value) *value.Object {
	obj, ok := root.(*value.Object)
	if !ok {
		obj = value.NewObject()
	}

	led, ok := getObject(obj, "ledger")
	if !ok {
		led = value.NewObject()
	}
	for _, k := range tableKeys {
		if _, ok := getList(led, k); !ok {
			led.Set(k, value.NewList())
		}
	}
	if v, ok := led.Get("postingsText"); !ok || !isString(v) {
		led.Set("postingsText", "")
	}
	obj.Set("ledger", led)

	meta, ok := getObject(obj, "meta")
	if !ok {
		meta = value.NewObject()
	}
	for _, k := range counterKeys {
		if v, ok := meta.Get(k); !ok || !isInt(v) {
			meta.Set(k, int64(1))
		}
	}
	obj.Set("meta", meta)

	return obj
}

// GetOrCreateAssetType looks an asset type up by code, creating it when
// missing. An empty code falls back to the default currency code.
func GetOrCreateAssetType(root value.Value, code, description string) *value.Object {
	obj := EnsureDefaults(root)
	led, _ := getObject(obj, "ledger")
	meta, _ := getObject(obj, "meta")

	if code == "" {
		code = "CUR"
	}

	types, _ := getList(led, "assetTypes")
	if existing := findByCode(types, code); existing != nil {
		return existing
	}

	id := nextID(meta, "nextAssetTypeId")
	if description == "" {
		description = code
	}
	at := value.NewObject()
	at.Set("id", id)
	at.Set("code", code)
	at.Set("description", description)
	types.Append(at)
	return at
}

// GetOrCreateAccount looks an account up by code, creating it when missing.
// New accounts get a default asset type resolved from assetTypeCode.
func GetOrCreateAccount(root value.Value, code, name, accountType, assetTypeCode string) *value.Object {
	obj := EnsureDefaults(root)
	led, _ := getObject(obj, "ledger")
	meta, _ := getObject(obj, "meta")

	if code == "" {
		code = "UNSPEC"
	}

	accounts, _ := getList(led, "accounts")
	if existing := findByCode(accounts, code); existing != nil {
		return existing
	}

	if assetTypeCode == "" {
		assetTypeCode = "CUR"
	}
	at := GetOrCreateAssetType(obj, assetTypeCode, "")

	if name == "" {
		name = code
	}
	if accountType == "" {
		accountType = "generic"
	}
	id := nextID(meta, "nextAccountId")
	acc := value.NewObject()
	acc.Set("id", id)
	acc.Set("code", code)
	acc.Set("name", name)
	acc.Set("type", accountType)
	atID, _ := at.Get("id")
	acc.Set("assetTypeId", atID)
	accounts.Append(acc)
	return acc
}

// CreateJournal appends a journal row and returns its id. When period is
// empty it is derived as YYYY-MM from an ISO date, or "0000-00" when the
// date does not look like one.
func CreateJournal(root value.Value, date, description, period string) int64 {
	obj := EnsureDefaults(root)
	led, _ := getObject(obj, "ledger")
	meta, _ := getObject(obj, "meta")

	if period == "" {
		if len(date) >= 8 && date[4] == '-' && date[7] == '-' {
			period = date[:7]
		} else {
			period = "0000-00"
		}
	}

	id := nextID(meta, "nextJournalId")
	j := value.NewObject()
	j.Set("id", id)
	j.Set("date", date)
	j.Set("description", description)
	j.Set("period", period)

	journals, _ := getList(led, "journals")
	journals.Append(j)
	return id
}

// PostEntry appends a posting row for the given journal, creating the
// account and asset type on first use, and returns the posting sequence
// number.
func PostEntry(root value.Value, accountCode, assetTypeCode, period string, journalID int64, amount float64) int64 {
	obj := EnsureDefaults(root)
	led, _ := getObject(obj, "ledger")
	meta, _ := getObject(obj, "meta")

	acc := GetOrCreateAccount(obj, accountCode, "", "", assetTypeCode)
	at := GetOrCreateAssetType(obj, assetTypeCode, "")

	if period == "" {
		period = "0000-00"
	}

	seq := nextID(meta, "nextPostingSeq")
	p := value.NewObject()
	p.Set("id", seq)
	p.Set("journalId", journalID)
	accID, _ := acc.Get("id")
	p.Set("accountId", accID)
	atID, _ := at.Get("id")
	p.Set("assetTypeId", atID)
	p.Set("period", period)
	p.Set("amount", amount)

	postings, _ := getList(led, "postings")
	postings.Append(p)
	return seq
}

// FindAccountID resolves an account code to its id; false when absent.
func FindAccountID(root value.Value, code string) (int64, bool) {
	obj, ok := root.(*value.Object)
	if !ok {
		return 0, false
	}
	led, ok := getObject(obj, "ledger")
	if !ok {
		return 0, false
	}
	accounts, ok := getList(led, "accounts")
	if !ok {
		return 0, false
	}
	acc := findByCode(accounts, code)
	if acc == nil {
		return 0, false
	}
	id, _ := acc.Get("id")
	n, ok := id.(int64)
	return n, ok
}

func findByCode(list *value.List, code string) *value.Object {
	for _, item := range list.Items {
		obj, ok := item.(*value.Object)
		if !ok {
			continue
		}
		if c, ok := obj.Get("code"); ok {
			if s, ok := c.(string); ok && s == code {
				return obj
			}
		}
	}
	return nil
}

func nextID(meta *value.Object, key string) int64 {
	id := int64(1)
	if v, ok := meta.Get(key); ok {
		if n, ok := v.(int64); ok {
			id = n
		}
	}
	meta.Set(key, id+1)
	return id
}

func getObject(o *value.Object, key string) (*value.Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*value.Object)
	return obj, ok
}

func getList(o *value.Object, key string) (*value.List, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	l, ok := v.(*value.List)
	return l, ok
}

func isString(v value.Value) bool { _, ok := v.(string); return ok }
func isInt(v value.Value) bool    { _, ok := v.(int64); return ok }
