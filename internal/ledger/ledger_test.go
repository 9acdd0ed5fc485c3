// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package ledger

import (
	"testing"

	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

func TestRootSchemaShape(t *testing.T) {
	root := RootSchema()

	led, ok := getObject(root, "ledger")
	if !ok {
		t.Fatal("missing ledger mapping")
	}
	for _, k := range tableKeys {
		l, ok := getList(led, k)
		if !ok {
			t.Fatalf("missing table %s", k)
		}
		if l.Len() != 0 {
			t.Errorf("table %s not empty", k)
		}
	}
	if v, _ := led.Get("postingsText"); v != "" {
		t.Errorf("postingsText must start empty, got %#v", v)
	}

	meta, ok := getObject(root, "meta")
	if !ok {
		t.Fatal("missing meta mapping")
	}
	for _, k := range counterKeys {
		if v, _ := meta.Get(k); v != int64(1) {
			t.Errorf("counter %s must start at 1, got %#v", k, v)
		}
	}
}

func TestEnsureDefaultsHeals(t *testing.T) {
	// Non-mapping root is replaced outright.
	obj := EnsureDefaults("garbage")
	if _, ok := getObject(obj, "ledger"); !ok {
		t.Fatal("healed root missing ledger")
	}

	// Mistyped tables and counters are reset; sound data survives.
	root := RootSchema()
	led, _ := getObject(root, "ledger")
	led.Set("accounts", "not a list")
	acc := value.NewObject()
	acc.Set("id", int64(1))
	acc.Set("code", "CASH")
	journals, _ := getList(led, "journals")
	journals.Append(acc)
	meta, _ := getObject(root, "meta")
	meta.Set("nextJournalId", "seven")
	meta.Set("nextAccountId", int64(9))

	healed := EnsureDefaults(root)
	hled, _ := getObject(healed, "ledger")
	if accounts, _ := getList(hled, "accounts"); accounts == nil || accounts.Len() != 0 {
		t.Error("mistyped accounts table must be reset to an empty list")
	}
	if js, _ := getList(hled, "journals"); js.Len() != 1 {
		t.Error("sound journals table must survive healing")
	}
	hmeta, _ := getObject(healed, "meta")
	if v, _ := hmeta.Get("nextJournalId"); v != int64(1) {
		t.Errorf("mistyped counter must reset to 1, got %#v", v)
	}
	if v, _ := hmeta.Get("nextAccountId"); v != int64(9) {
		t.Errorf("sound counter must survive, got %#v", v)
	}
}

func TestGetOrCreateAssetType(t *testing.T) {
	root := RootSchema()

	at := GetOrCreateAssetType(root, "USD", "US dollars")
	if id, _ := at.Get("id"); id != int64(1) {
		t.Errorf("first asset type id must be 1, got %#v", id)
	}
	if d, _ := at.Get("description"); d != "US dollars" {
		t.Errorf("unexpected description %#v", d)
	}

	again := GetOrCreateAssetType(root, "USD", "ignored")
	if again != at {
		t.Error("existing code must return the same row")
	}

	// Empty code falls back to the default currency; empty description
	// falls back to the code.
	def := GetOrCreateAssetType(root, "", "")
	if c, _ := def.Get("code"); c != "CUR" {
		t.Errorf("expected CUR fallback, got %#v", c)
	}
	if d, _ := def.Get("description"); d != "CUR" {
		t.Errorf("expected description fallback, got %#v", d)
	}
	if id, _ := def.Get("id"); id != int64(2) {
		t.Errorf("expected id 2, got %#v", id)
	}
}

func TestGetOrCreateAccount(t *testing.T) {
	root := RootSchema()

	acc := GetOrCreateAccount(root, "CASH", "Cash on hand", "asset", "EUR")
	if id, _ := acc.Get("id"); id != int64(1) {
		t.Errorf("first account id must be 1, got %#v", id)
	}
	if atID, _ := acc.Get("assetTypeId"); atID != int64(1) {
		t.Errorf("account must reference the created asset type, got %#v", atID)
	}

	if again := GetOrCreateAccount(root, "CASH", "other", "other", "USD"); again != acc {
		t.Error("existing code must return the same row")
	}

	def := GetOrCreateAccount(root, "", "", "", "")
	if c, _ := def.Get("code"); c != "UNSPEC" {
		t.Errorf("expected UNSPEC fallback, got %#v", c)
	}
	if n, _ := def.Get("name"); n != "UNSPEC" {
		t.Errorf("name must fall back to the code, got %#v", n)
	}
	if ty, _ := def.Get("type"); ty != "generic" {
		t.Errorf("expected generic type, got %#v", ty)
	}
}

func TestCreateJournalPeriods(t *testing.T) {
	root := RootSchema()

	if id := CreateJournal(root, "2025-03-14", "march", ""); id != int64(1) {
		t.Errorf("first journal id must be 1, got %d", id)
	}
	if id := CreateJournal(root, "not a date", "odd", ""); id != int64(2) {
		t.Errorf("second journal id must be 2, got %d", id)
	}
	if id := CreateJournal(root, "2025-04-01", "april", "2099-12"); id != int64(3) {
		t.Errorf("third journal id must be 3, got %d", id)
	}

	led, _ := getObject(root, "ledger")
	journals, _ := getList(led, "journals")
	wantPeriods := []string{"2025-03", "0000-00", "2099-12"}
	for i, want := range wantPeriods {
		row := journals.Items[i].(*value.Object)
		if p, _ := row.Get("period"); p != want {
			t.Errorf("journal %d period = %#v, want %q", i+1, p, want)
		}
	}
}

func TestPostEntry(t *testing.T) {
	root := RootSchema()
	jid := CreateJournal(root, "2025-03-14", "opening", "")

	seq := PostEntry(root, "CASH", "USD", "2025-03", jid, 100.5)
	if seq != int64(1) {
		t.Errorf("first posting seq must be 1, got %d", seq)
	}
	seq = PostEntry(root, "CASH", "USD", "", jid, -40)
	if seq != int64(2) {
		t.Errorf("second posting seq must be 2, got %d", seq)
	}

	id, ok := FindAccountID(root, "CASH")
	if !ok || id != 1 {
		t.Fatalf("expected account id 1, got %d %v", id, ok)
	}

	led, _ := getObject(root, "ledger")
	postings, _ := getList(led, "postings")
	if postings.Len() != 2 {
		t.Fatalf("expected 2 postings, got %d", postings.Len())
	}
	first := postings.Items[0].(*value.Object)
	if v, _ := first.Get("journalId"); v != jid {
		t.Errorf("posting journalId = %#v, want %d", v, jid)
	}
	if v, _ := first.Get("amount"); v != 100.5 {
		t.Errorf("posting amount = %#v", v)
	}
	second := postings.Items[1].(*value.Object)
	if p, _ := second.Get("period"); p != "0000-00" {
		t.Errorf("empty period must default, got %#v", p)
	}

	if _, ok := FindAccountID(root, "NOPE"); ok {
		t.Error("unknown code must not resolve")
	}
}

func TestToJournalID(t *testing.T) {
	cases := []struct {
		in   value.Value
		want int64
	}{
		{int64(4), 4},
		{float64(4.9), 4},
		{" 12 ", 12},
		{"nope", 0},
		{nil, 0},
		{true, 0},
	}
	for _, c := range cases {
		if got := toJournalID(c.in); got != c.want {
			t.Errorf("toJournalID(%#v) = %d, want %d", c.in, got, c.want)
		}
	}
}
