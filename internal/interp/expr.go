package interp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

var (
	numberRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	callRe   = regexp.MustCompile(`^(\w+)\s*\((.*)\)$`)
)

// EvalExpr evaluates the restricted expression grammar:
//
//  1. a fully-quoted literal is decoded as-is, so operators inside a
//     string are never misparsed;
//  2. text containing & concatenates its segments (the split is not
//     quote-aware, a known limitation kept for compatibility);
//  3. exactly one binary arithmetic operator with non-empty operands on
//     both sides; operands are atoms, not sub-expressions, so a+b+c does
//     not chain;
//  4. otherwise a single atom.
func (in *Interp) EvalExpr(expr string) value.Value {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ""
	}

	if strings.HasPrefix(expr, `"`) && strings.HasSuffix(expr, `"`) {
		return in.evalAtom(expr)
	}

	if strings.Contains(expr, "&") {
		var sb strings.Builder
		for _, part := range strings.Split(expr, "&") {
			sb.WriteString(value.Format(in.evalAtom(strings.TrimSpace(part))))
		}
		return sb.String()
	}

	if idx := strings.IndexAny(expr, "+-*/"); idx >= 0 {
		left := strings.TrimSpace(expr[:idx])
		right := strings.TrimSpace(expr[idx+1:])
		if left != "" && right != "" {
			a := value.ToFloat(in.evalAtom(left))
			b := value.ToFloat(in.evalAtom(right))

			var res float64
			switch expr[idx] {
			case '+':
				res = a + b
			case '-':
				res = a - b
			case '*':
				res = a * b
			case '/':
				if b != 0 {
					res = a / b
				} else {
					res = 0.0
				}
			}
			return value.NormalizeFloat(res)
		}
	}

	return in.evalAtom(expr)
}

// evalAtom evaluates a single atom: string literal, numeric literal, call
// expression, object.property access, or bare identifier.
func (in *Interp) evalAtom(atom string) value.Value {
	atom = strings.TrimSpace(atom)
	if atom == "" {
		return ""
	}

	if atom[0] == '"' && atom[len(atom)-1] == '"' {
		if len(atom) == 1 {
			return ""
		}
		inner := atom[1 : len(atom)-1]
		return strings.ReplaceAll(inner, `""`, `"`)
	}

	if numberRe.MatchString(atom) {
		if strings.Contains(atom, ".") {
			f, _ := strconv.ParseFloat(atom, 64)
			return f
		}
		n, _ := strconv.ParseInt(atom, 10, 64)
		return n
	}

	if m := callRe.FindStringSubmatch(atom); m != nil {
		name := m[1]
		var args []value.Value
		if argStr := strings.TrimSpace(m[2]); argStr != "" {
			for _, a := range splitArgs(argStr) {
				args = append(args, in.EvalExpr(a))
			}
		}
		return in.callFunc(name, args)
	}

	if strings.Contains(atom, ".") {
		parts := strings.SplitN(atom, ".", 2)
		name := strings.TrimSpace(parts[0])
		attr := strings.TrimSpace(parts[1])

		obj := in.ctx.Get(name)
		if obj == nil {
			return nil
		}
		if ho, ok := obj.(HostObject); ok {
			if v, ok := ho.GetProp(attr); ok {
				return v
			}
			return nil
		}
		if o, ok := obj.(*value.Object); ok {
			if v, ok := o.Get(attr); ok {
				return v
			}
		}
		return nil
	}

	return in.ctx.Get(atom)
}

// callFunc resolves a call expression: extension dispatchers, then the base
// builtin table, then user-defined zero-argument Functions. Unknown names
// report and yield null.
func (in *Interp) callFunc(name string, args []value.Value) value.Value {
	for _, d := range in.ext {
		if v, ok := d.CallFunc(in, name, args); ok {
			return v
		}
	}
	if v, ok := (baseDispatcher{}).CallFunc(in, name, args); ok {
		return v
	}
	if _, lines, ok := in.prog.Function(name); ok && len(lines) > 0 {
		return in.CallFunction(name)
	}
	in.Reportf("Unknown function in expression: %s", name)
	return nil
}

// relationalOps in detection order: two-character operators first so <= and
// >= and <> are read as units.
var relationalOps = []string{"<>", "<=", ">=", "=", "<", ">"}

// splitRelational finds the first relational operator scanning left to
// right. The scan is not quote-aware, like the rest of the condition
// grammar.
func splitRelational(cond string) (left, op, right string, found bool) {
	for i := 0; i < len(cond); i++ {
		for _, candidate := range relationalOps {
			if strings.HasPrefix(cond[i:], candidate) {
				return cond[:i], candidate, cond[i+len(candidate):], true
			}
		}
	}
	return "", "", "", false
}

// evalCondition evaluates an If/While/Do condition. With a relational
// operator both sides are full expressions and compare numerically when
// both parse as numbers; a comparison type error reports and yields false.
// Without one, the whole text evaluates for truthiness.
func (in *Interp) evalCondition(cond string) bool {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return false
	}

	if l, op, r, ok := splitRelational(cond); ok {
		lv := in.EvalExpr(strings.TrimSpace(l))
		rv := in.EvalExpr(strings.TrimSpace(r))
		res, err := compareValues(lv, rv, op)
		if err != nil {
			in.Reportf("Error comparing values in If: %v", err)
			return false
		}
		return res
	}

	return value.Truthy(in.EvalExpr(cond))
}

// condNumber coerces a comparison operand to a number: native numbers pass
// through, strings parse as int (no dot) or float (with dot). Everything
// else stays non-numeric.
func condNumber(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(t)
		if strings.Contains(s, ".") {
			f, err := strconv.ParseFloat(s, 64)
			return f, err == nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		return float64(n), err == nil
	default:
		return 0, false
	}
}

// compareValues applies a relational operator. Numeric comparison wins when
// both sides coerce; otherwise equality is loose (null equals only null)
// and ordering requires two strings.
func compareValues(l, r value.Value, op string) (bool, error) {
	lf, lok := condNumber(l)
	rf, rok := condNumber(r)
	if lok && rok {
		switch op {
		case "=":
			return lf == rf, nil
		case "<>":
			return lf != rf, nil
		case "<":
			return lf < rf, nil
		case ">":
			return lf > rf, nil
		case "<=":
			return lf <= rf, nil
		case ">=":
			return lf >= rf, nil
		}
		return false, nil
	}

	switch op {
	case "=":
		return looseEqual(l, r), nil
	case "<>":
		return !looseEqual(l, r), nil
	}

	ls, lIsStr := l.(string)
	rs, rIsStr := r.(string)
	if lIsStr && rIsStr {
		switch op {
		case "<":
			return ls < rs, nil
		case ">":
			return ls > rs, nil
		case "<=":
			return ls <= rs, nil
		case ">=":
			return ls >= rs, nil
		}
		return false, nil
	}

	return false, fmt.Errorf("'%s' not supported between %s and %s",
		op, value.TypeName(l), value.TypeName(r))
}

// looseEqual is equality across the dynamic value set: null equals only
// null, scalars compare by value, structured nodes compare structurally.
func looseEqual(l, r value.Value) bool {
	if l == nil || r == nil {
		return l == nil && r == nil
	}
	if lf, lok := condNumber(l); lok {
		if rf, rok := condNumber(r); rok {
			return lf == rf
		}
	}
	switch lt := l.(type) {
	case string:
		rs, ok := r.(string)
		return ok && lt == rs
	case *value.Object:
		ro, ok := r.(*value.Object)
		return ok && structurallyEqual(lt, ro)
	case *value.List:
		rl, ok := r.(*value.List)
		return ok && structurallyEqual(lt, rl)
	default:
		return l == r
	}
}

func structurallyEqual(l, r value.Value) bool {
	switch lt := l.(type) {
	case *value.Object:
		ro, ok := r.(*value.Object)
		if !ok || lt.Len() != ro.Len() {
			return false
		}
		for _, k := range lt.Keys() {
			lv, _ := lt.Get(k)
			rv, ok := ro.Get(k)
			if !ok || !looseEqual(lv, rv) {
				return false
			}
		}
		return true
	case *value.List:
		rl, ok := r.(*value.List)
		if !ok || lt.Len() != rl.Len() {
			return false
		}
		for i, item := range lt.Items {
			if !looseEqual(item, rl.Items[i]) {
				return false
			}
		}
		return true
	default:
		return looseEqual(l, r)
	}
}
