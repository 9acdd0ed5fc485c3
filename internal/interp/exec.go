package interp

import (
	"regexp"
	"strings"

	"github.com/dinikifo/VB6.tiny.clone/internal/script"
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// Run executes a sequence of normalized logical lines as one block.
func (in *Interp) Run(lines []string) {
	in.runRange(lines, 0, len(lines))
}

// runRange executes lines[start:end] with an explicit cursor. Block headers
// hand off to the matching exec helper, which returns the index to resume
// at; everything else is a plain statement.
func (in *Interp) runRange(lines []string, start, end int) {
	i := start
	for i < end {
		switch script.Classify(lines[i]).Kind {
		case script.IfHeader:
			i = in.execIf(lines, i, end)
		case script.WhileHeader:
			i = in.execWhile(lines, i, end)
		case script.DoWhileHeader, script.DoHeader:
			i = in.execDo(lines, i, end)
		default:
			// Stray Else/End If/Wend/Loop lines fall through here and end
			// up as unknown statements.
			in.ExecLine(lines[i])
			i++
		}
	}
}

// execIf runs an If/Then/Else/End If block headed at lines[i]. Nested If
// headers and End If footers are matched by depth counting; only the first
// Else at depth 1 splits the branches (ElseIf is not supported).
func (in *Interp) execIf(lines []string, i, end int) int {
	cond := script.Classify(lines[i]).Cond

	thenStart := i + 1
	depth := 1
	elseIndex := -1
	j := i + 1

	for j < end && depth > 0 {
		switch cur := script.Classify(lines[j]); cur.Kind {
		case script.IfHeader:
			depth++
		case script.EndIf:
			depth--
		case script.Else:
			if depth == 1 && elseIndex < 0 {
				elseIndex = j
			}
		}
		j++
	}

	endIf := j - 1
	if depth != 0 {
		in.Reportf("Warning: unmatched If/End If")
		return j
	}

	thenEnd := endIf
	if elseIndex >= 0 {
		thenEnd = elseIndex
	}

	if in.evalCondition(cond) {
		in.runRange(lines, thenStart, thenEnd)
	} else if elseIndex >= 0 {
		in.runRange(lines, elseIndex+1, endIf)
	}

	return endIf + 1
}

// execWhile runs a While/Wend block: pre-test, re-evaluated every pass.
func (in *Interp) execWhile(lines []string, i, end int) int {
	cond := script.Classify(lines[i]).Cond

	depth := 1
	j := i + 1
	for j < end && depth > 0 {
		switch script.Classify(lines[j]).Kind {
		case script.WhileHeader:
			depth++
		case script.Wend:
			depth--
		}
		j++
	}

	if depth != 0 {
		in.Reportf("Warning: unmatched While/Wend")
		return j
	}

	blockStart := i + 1
	blockEnd := j - 1

	for in.evalCondition(cond) {
		in.runRange(lines, blockStart, blockEnd)
	}

	return j
}

// execDo runs a Do block. "Do While <cond>" is pre-test; "Do ... Loop While
// <cond>" is post-test. Any other Loop variant is reported and degrades to
// a False condition, so the body runs exactly once.
func (in *Interp) execDo(lines []string, i, end int) int {
	header := script.Classify(lines[i])

	if header.Kind == script.DoWhileHeader {
		depth := 1
		j := i + 1
		for j < end && depth > 0 {
			switch script.Classify(lines[j]).Kind {
			case script.DoWhileHeader, script.DoHeader:
				depth++
			case script.LoopFooter, script.LoopWhileFooter:
				depth--
			}
			j++
		}

		if depth != 0 {
			in.Reportf("Warning: unmatched Do/Loop")
			return j
		}

		blockStart := i + 1
		blockEnd := j - 1

		for in.evalCondition(header.Cond) {
			in.runRange(lines, blockStart, blockEnd)
		}

		return j
	}

	depth := 1
	j := i + 1
	loopIndex := -1

	for j < end && depth > 0 {
		switch script.Classify(lines[j]).Kind {
		case script.DoWhileHeader, script.DoHeader:
			depth++
		case script.LoopFooter, script.LoopWhileFooter:
			depth--
			if depth == 0 {
				loopIndex = j
			}
		}
		if loopIndex >= 0 {
			break
		}
		j++
	}

	if loopIndex < 0 {
		in.Reportf("Warning: unmatched Do/Loop")
		return j
	}

	footer := script.Classify(lines[loopIndex])
	cond := "False"
	if footer.Kind == script.LoopWhileFooter {
		cond = footer.Cond
	} else {
		in.Reportf("Only 'Loop While <cond>' supported (post-test)")
	}

	for {
		in.runRange(lines, i+1, loopIndex)
		if !in.evalCondition(cond) {
			break
		}
	}

	return loopIndex + 1
}

var (
	methodCallRe = regexp.MustCompile(`^(\w+)\.(\w+)\s*(.*)$`)
	bareCallRe   = regexp.MustCompile(`^(\w+)\s*(.*)$`)
)

// ExecLine executes one plain statement: Dim, assignment, or a call.
func (in *Interp) ExecLine(line string) {
	upper := strings.ToUpper(line)
	if strings.HasPrefix(upper, "DIM ") {
		in.execDim(strings.TrimSpace(line[3:]))
		return
	}

	eq := -1
	if strings.Contains(line, "=") {
		eq = findAssignEquals(line)
	}
	if eq >= 0 && !strings.HasPrefix(upper, "IF ") {
		left := strings.TrimSpace(line[:eq])
		right := strings.TrimSpace(line[eq+1:])
		in.assign(left, in.EvalExpr(right))
		return
	}

	in.execCall(line)
}

// findAssignEquals returns the index of the first '=' that is outside a
// string literal, or -1. Keeps statements like
//
//	lstPostings.Add "created: ID=" & x
//
// from being misread as assignments.
func findAssignEquals(line string) int {
	inString := false
	prev := byte(0)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch == '"' && prev != '\\' {
			inString = !inString
		}
		if ch == '=' && !inString {
			return i
		}
		prev = ch
	}
	return -1
}

// execDim introduces names with a null value. Re-declaration never resets
// an existing binding.
func (in *Interp) execDim(decl string) {
	for _, name := range strings.Split(decl, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		base := strings.Fields(name)[0]
		if !in.ctx.Has(base) {
			in.ctx.Set(base, nil)
		}
	}
}

// assign writes lhs = v. A dotted lhs resolves one level: the root is
// auto-created as an empty mapping when unbound, then the attribute is set
// on a host object if it has the property, else as a mapping key. Deeper
// dotted paths are not traversed here; that is what JsonSet is for.
func (in *Interp) assign(left string, v value.Value) {
	if strings.Contains(left, ".") {
		parts := strings.SplitN(left, ".", 2)
		name := strings.TrimSpace(parts[0])
		attr := strings.TrimSpace(parts[1])

		obj := in.ctx.Get(name)
		if obj == nil {
			o := value.NewObject()
			in.ctx.Set(name, o)
			obj = o
		}

		if ho, ok := obj.(HostObject); ok {
			if !ho.SetProp(attr, v) {
				in.Reportf("Cannot assign %s on %s", attr, value.Format(obj))
			}
			return
		}
		if o, ok := obj.(*value.Object); ok {
			o.Set(attr, v)
			return
		}
		in.Reportf("Cannot assign %s on %s", attr, value.Format(obj))
		return
	}

	in.ctx.Set(left, v)
}

// execCall executes a method-call or bare-call statement.
func (in *Interp) execCall(line string) {
	if m := methodCallRe.FindStringSubmatch(line); m != nil {
		objName, methName := m[1], m[2]
		args := in.evalArgList(strings.TrimSpace(m[3]))

		obj := in.ctx.Get(objName)
		if obj == nil {
			in.Reportf("Method call on unknown object: %s", objName)
			return
		}
		ho, ok := obj.(HostObject)
		if !ok {
			in.Reportf("Object %s has no method %s", objName, methName)
			return
		}
		if _, ok := ho.CallMethod(methName, args); !ok {
			in.Reportf("Object %s has no method %s", objName, methName)
		}
		return
	}

	m := bareCallRe.FindStringSubmatch(line)
	if m == nil {
		in.Reportf("Cannot parse line: %s", line)
		return
	}
	name := m[1]
	args := in.evalArgList(strings.TrimSpace(m[2]))

	for _, d := range in.ext {
		if d.CallStmt(in, name, args) {
			return
		}
	}
	if (baseDispatcher{}).CallStmt(in, name, args) {
		return
	}
	in.Reportf("Unknown statement: %s", line)
}

// evalArgList strips an optional outer parenthesis pair, splits the
// argument text, and evaluates each argument as an expression.
func (in *Interp) evalArgList(argStr string) []value.Value {
	if argStr == "" {
		return nil
	}
	if strings.HasPrefix(argStr, "(") && strings.HasSuffix(argStr, ")") {
		argStr = argStr[1 : len(argStr)-1]
	}
	var args []value.Value
	for _, a := range splitArgs(argStr) {
		args = append(args, in.EvalExpr(a))
	}
	return args
}

// splitArgs splits on commas at parenthesis depth zero, outside string
// literals. Empty middle segments are dropped; a trailing segment is kept.
func splitArgs(argStr string) []string {
	var args []string
	var buf strings.Builder
	inString := false
	depth := 0
	prev := byte(0)

	for i := 0; i < len(argStr); i++ {
		ch := argStr[i]
		if ch == '"' && prev != '\\' {
			inString = !inString
		}
		if !inString {
			switch ch {
			case '(':
				depth++
			case ')':
				depth--
			case ',':
				if depth == 0 {
					if arg := strings.TrimSpace(buf.String()); arg != "" {
						args = append(args, arg)
					}
					buf.Reset()
					prev = ch
					continue
				}
			}
		}
		buf.WriteByte(ch)
		prev = ch
	}
	if buf.Len() > 0 {
		args = append(args, strings.TrimSpace(buf.String()))
	}
	return args
}
