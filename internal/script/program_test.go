package script

import "testing"

const sample = `
Sub Form_Load()
    a = 1
End Sub

Sub btnOk_Click()
    MsgBox "ok"
End Sub

Function GetGreeting()
    GetGreeting = "Hello"
End Function
`

func TestParseFindsProcedures(t *testing.T) {
	p := Parse(sample)

	if len(p.Subs()) != 2 {
		t.Errorf("expected 2 subs, got %v", p.Subs())
	}
	if len(p.Functions()) != 1 {
		t.Errorf("expected 1 function, got %v", p.Functions())
	}

	lines, ok := p.Sub("Form_Load")
	if !ok {
		t.Fatal("Form_Load not found")
	}
	if len(lines) != 1 || lines[0] != "a = 1" {
		t.Errorf("unexpected body: %v", lines)
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	p := Parse(sample)

	if _, ok := p.Sub("FORM_LOAD"); !ok {
		t.Error("uppercase lookup failed")
	}
	if _, ok := p.Sub("form_load"); !ok {
		t.Error("lowercase lookup failed")
	}

	decl, _, ok := p.Function("getgreeting")
	if !ok {
		t.Fatal("function lookup failed")
	}
	if decl != "GetGreeting" {
		t.Errorf("declared name must keep its casing, got %q", decl)
	}
}

func TestMergeOverwrites(t *testing.T) {
	p := Parse("Sub A()\nx = 1\nEnd Sub")
	p.Merge(Parse("Sub A()\nx = 2\nEnd Sub\nSub B()\ny = 1\nEnd Sub"))

	lines, _ := p.Sub("A")
	if len(lines) != 1 || lines[0] != "x = 2" {
		t.Errorf("merge must overwrite, got %v", lines)
	}
	if _, ok := p.Sub("B"); !ok {
		t.Error("merged sub missing")
	}
}

func TestUnknownProcedure(t *testing.T) {
	p := Parse(sample)
	if _, ok := p.Sub("Nope"); ok {
		t.Error("unknown sub must not resolve")
	}
	if _, _, ok := p.Function("Nope"); ok {
		t.Error("unknown function must not resolve")
	}
}
