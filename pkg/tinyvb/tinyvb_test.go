package tinyvb

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dinikifo/VB6.tiny.clone/internal/interp"
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

const bookkeepingScript = `
Sub RecordMonth()
    Dim j
    j = NewJournal(d, "monthly entries")
    PostEntry "CASH", "CUR", p, j, 120.5
    PostEntry "CASH", "CUR", p, j, 30
End Sub

Function CashMax()
    Dim id
    id = StatsPrepare("CASH")
    CashMax = StatsGet(id, "max")
End Function
`

func newRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	r, err := New(append(opts, WithDiagnostics(func(string) {}))...)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRuntimeBookkeepingFlow(t *testing.T) {
	r := newRuntime(t)
	r.LoadSource(bookkeepingScript)

	r.Context().Set("d", "2025-03-14")
	r.Context().Set("p", "2025-03")
	r.CallSub("RecordMonth")

	root := r.AppData().(*value.Object)
	ledNode, _ := root.Get("ledger")
	postings, _ := ledNode.(*value.Object).Get("postings")
	if postings.(*value.List).Len() != 2 {
		t.Fatalf("expected 2 postings, got %d", postings.(*value.List).Len())
	}

	if got := r.CallFunction("CashMax"); got != 150.5 {
		t.Errorf("CashMax = %#v, want 150.5", got)
	}
}

func TestRuntimeExecAndEval(t *testing.T) {
	r := newRuntime(t)

	r.Exec(`
Dim c
c = JsonNew("Customer")
JsonSet c, "name", "Ada"
`)
	if got := r.Eval(`JsonGet(c, "name")`); got != "Ada" {
		t.Errorf("JsonGet = %#v", got)
	}
	if got := r.Eval("2 * 21"); got != int64(42) {
		t.Errorf("Eval = %#v", got)
	}
}

func TestRuntimeNotify(t *testing.T) {
	var shown []string
	r := newRuntime(t, WithNotify(func(text string) { shown = append(shown, text) }))

	r.Exec(`MsgBox "saved"`)
	if len(shown) != 1 || shown[0] != "saved" {
		t.Errorf("unexpected notify output %v", shown)
	}
}

func TestRuntimeOutputWriter(t *testing.T) {
	var sb strings.Builder
	r, err := New(WithOutput(&sb))
	if err != nil {
		t.Fatal(err)
	}

	r.Exec(`Frobnicate 1`)
	if !strings.Contains(sb.String(), "Unknown statement") {
		t.Errorf("diagnostics must reach the writer, got %q", sb.String())
	}
}

func TestRuntimeFileStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	r := newRuntime(t, WithFileStore(path))
	r.LoadSource(bookkeepingScript)
	r.Context().Set("d", "2025-03-14")
	r.Context().Set("p", "2025-03")
	r.CallSub("RecordMonth")
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	// A fresh runtime sees the persisted tree.
	r2 := newRuntime(t, WithFileStore(path))
	defer r2.Close()
	root := r2.AppData().(*value.Object)
	ledNode, _ := root.Get("ledger")
	journals, _ := ledNode.(*value.Object).Get("journals")
	if journals.(*value.List).Len() != 1 {
		t.Error("journal did not survive the round trip")
	}
}

func TestRuntimeMemoryStoreHealsOnLoad(t *testing.T) {
	r := newRuntime(t, WithMemoryStore())

	root, ok := r.AppData().(*value.Object)
	if !ok {
		t.Fatalf("AppData must be a mapping, got %#v", r.AppData())
	}
	if !root.Has("ledger") || !root.Has("meta") {
		t.Error("loaded tree must be healed to the ledger shape")
	}
}

// overrideDispatcher claims StatsPrepare to shadow the bundled builtin.
type overrideDispatcher struct{}

func (overrideDispatcher) CallFunc(in *interp.Interp, name string, args []value.Value) (value.Value, bool) {
	if strings.EqualFold(name, "StatsPrepare") {
		return "overridden", true
	}
	return nil, false
}

func (overrideDispatcher) CallStmt(in *interp.Interp, name string, args []value.Value) bool {
	return false
}

func TestRuntimeDispatcherOverride(t *testing.T) {
	r := newRuntime(t, WithDispatcher(overrideDispatcher{}))

	if got := r.Eval("StatsPrepare()"); got != "overridden" {
		t.Errorf("embedder dispatcher must outrank the bundled ones, got %#v", got)
	}
}

func TestRuntimeOpenForm(t *testing.T) {
	r := newRuntime(t)
	r.LoadSource(`
Sub Main_Load()
    opened = 1
End Sub
`)

	f, err := r.OpenForm(`{"name": "Main", "controls": [
		{"name": "txtOut", "type": "textbox"}
	]}`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Widget("txtOut"); !ok {
		t.Error("widget missing")
	}
	if got := r.Context().Get("opened"); got != int64(1) {
		t.Error("Load handler must run")
	}
}
