package interp

import (
	"strings"
	"testing"

	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

func runSub(t *testing.T, source, sub string) (*Interp, *[]string) {
	t.Helper()
	in, diags := newTestInterp()
	in.LoadSource(source)
	in.CallSub(sub)
	return in, diags
}

func hasDiag(diags []string, substr string) bool {
	for _, d := range diags {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

func TestIfThenElse(t *testing.T) {
	src := `
Sub Check()
    If x = 1 Then
        r = "then"
    Else
        r = "else"
    End If
End Sub
`
	in, _ := newTestInterp()
	in.LoadSource(src)

	in.Context().Set("x", int64(1))
	in.CallSub("Check")
	if got := in.Context().Get("r"); got != "then" {
		t.Errorf("expected then-branch, got %#v", got)
	}

	in.Context().Set("x", int64(2))
	in.CallSub("Check")
	if got := in.Context().Get("r"); got != "else" {
		t.Errorf("expected else-branch, got %#v", got)
	}

	// Null is not equal to 1.
	in.Context().Delete("x")
	in.CallSub("Check")
	if got := in.Context().Get("r"); got != "else" {
		t.Errorf("null = 1 must take the else-branch, got %#v", got)
	}
}

func TestIfWithoutElse(t *testing.T) {
	src := `
Sub Check()
    r = "before"
    If 0 = 1 Then
        r = "wrong"
    End If
End Sub
`
	in, _ := runSub(t, src, "Check")
	if got := in.Context().Get("r"); got != "before" {
		t.Errorf("false condition must skip body, got %#v", got)
	}
}

func TestNestedIf(t *testing.T) {
	src := `
Sub Check()
    If 1 = 1 Then
        If 2 = 3 Then
            r = "inner-then"
        Else
            r = "inner-else"
        End If
        done = 1
    End If
End Sub
`
	in, _ := runSub(t, src, "Check")
	if got := in.Context().Get("r"); got != "inner-else" {
		t.Errorf("expected inner-else, got %#v", got)
	}
	if got := in.Context().Get("done"); got != int64(1) {
		t.Errorf("line after nested block must run, got %#v", got)
	}
}

func TestUnmatchedIfReports(t *testing.T) {
	src := `
Sub Broken()
    If 1 = 1 Then
        r = "ran"
End Sub
`
	in, diags := runSub(t, src, "Broken")
	if !hasDiag(*diags, "Warning: unmatched If/End If") {
		t.Errorf("expected unmatched-If diagnostic, got %v", *diags)
	}
	if got := in.Context().Get("r"); got != nil {
		t.Errorf("malformed block must not execute, got %#v", got)
	}
}

func TestWhileLoop(t *testing.T) {
	src := `
Sub Count()
    i = 0
    While i < 3
        i = i + 1
    Wend
End Sub
`
	in, _ := runSub(t, src, "Count")
	if got := in.Context().Get("i"); got != int64(3) {
		t.Errorf("expected 3, got %#v", got)
	}
}

func TestWhileZeroIterations(t *testing.T) {
	src := `
Sub Count()
    n = 0
    While 1 = 2
        n = n + 1
    Wend
End Sub
`
	in, _ := runSub(t, src, "Count")
	if got := in.Context().Get("n"); got != int64(0) {
		t.Errorf("false pre-test must run zero times, got %#v", got)
	}
}

func TestDoWhilePreTest(t *testing.T) {
	src := `
Sub Count()
    n = 0
    Do While n < 2
        n = n + 1
    Loop
End Sub
`
	in, _ := runSub(t, src, "Count")
	if got := in.Context().Get("n"); got != int64(2) {
		t.Errorf("expected 2, got %#v", got)
	}
}

func TestDoWhileFalseRunsZeroTimes(t *testing.T) {
	src := `
Sub Count()
    n = 0
    Do While 1 = 2
        n = n + 1
    Loop
End Sub
`
	in, _ := runSub(t, src, "Count")
	if got := in.Context().Get("n"); got != int64(0) {
		t.Errorf("expected 0, got %#v", got)
	}
}

func TestDoLoopWhilePostTest(t *testing.T) {
	src := `
Sub Count()
    n = 0
    Do
        n = n + 1
    Loop While n < 3
End Sub
`
	in, _ := runSub(t, src, "Count")
	if got := in.Context().Get("n"); got != int64(3) {
		t.Errorf("expected 3, got %#v", got)
	}
}

func TestDoLoopWhileFalseRunsOnce(t *testing.T) {
	src := `
Sub Count()
    n = 0
    Do
        n = n + 1
    Loop While 1 = 2
End Sub
`
	in, _ := runSub(t, src, "Count")
	if got := in.Context().Get("n"); got != int64(1) {
		t.Errorf("post-test body must run exactly once, got %#v", got)
	}
}

func TestLoopUntilDegrades(t *testing.T) {
	src := `
Sub Count()
    n = 0
    Do
        n = n + 1
    Loop Until n = 5
End Sub
`
	in, diags := runSub(t, src, "Count")
	if !hasDiag(*diags, "Only 'Loop While <cond>' supported (post-test)") {
		t.Errorf("expected unsupported-variant diagnostic, got %v", *diags)
	}
	if got := in.Context().Get("n"); got != int64(1) {
		t.Errorf("degraded loop must run exactly once, got %#v", got)
	}
}

func TestDimDoesNotReset(t *testing.T) {
	in, _ := newTestInterp()

	in.ExecLine("Dim a, b")
	if !in.Context().Has("a") || !in.Context().Has("b") {
		t.Fatal("Dim must bind names")
	}
	if in.Context().Get("a") != nil {
		t.Error("fresh Dim must bind null")
	}

	in.Context().Set("a", int64(7))
	in.ExecLine("Dim a")
	if got := in.Context().Get("a"); got != int64(7) {
		t.Errorf("re-declaration must not reset, got %#v", got)
	}
}

func TestAssignDottedAutoCreates(t *testing.T) {
	in, _ := newTestInterp()

	in.ExecLine(`cust.name = "Ada"`)
	obj, ok := in.Context().Get("cust").(*value.Object)
	if !ok {
		t.Fatalf("expected auto-created mapping, got %#v", in.Context().Get("cust"))
	}
	if v, _ := obj.Get("name"); v != "Ada" {
		t.Errorf("expected \"Ada\", got %#v", v)
	}
}

func TestAssignEqualsInsideString(t *testing.T) {
	in, diags := newTestInterp()

	// The '=' inside the literal must not turn this into an assignment.
	in.ExecLine(`MsgBox "ID=" & 4`)
	if !hasDiag(*diags, "[MsgBox] ID=4") {
		t.Errorf("expected MsgBox output, got %v", *diags)
	}
}

func TestUnknownStatementReports(t *testing.T) {
	in, diags := newTestInterp()

	in.ExecLine("Frobnicate 1, 2")
	if !hasDiag(*diags, "Unknown statement: Frobnicate 1, 2") {
		t.Errorf("expected unknown-statement diagnostic, got %v", *diags)
	}
}
