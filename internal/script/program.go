package script

import (
	"regexp"
	"strings"
)

// Program holds parsed Sub and Function bodies keyed by name. It is
// populated once by Parse and read-only afterwards. Declared casing is
// preserved; lookups are case-insensitive.
type Program struct {
	subs  map[string]proc
	funcs map[string]proc
}

type proc struct {
	Name  string // as declared
	Lines []string
}

var (
	subPattern  = regexp.MustCompile(`(?is)Sub\s+(\w+)\s*\(\)\s*(.*?)End Sub`)
	funcPattern = regexp.MustCompile(`(?is)Function\s+(\w+)\s*\(\)\s*(.*?)End Function`)
)

// Parse scans source text for zero-argument Sub and Function definitions
// and returns their normalized bodies.
func Parse(source string) *Program {
	p := &Program{
		subs:  make(map[string]proc),
		funcs: make(map[string]proc),
	}
	for _, m := range subPattern.FindAllStringSubmatch(source, -1) {
		name, body := m[1], m[2]
		p.subs[strings.ToLower(name)] = proc{Name: name, Lines: Normalize(body)}
	}
	for _, m := range funcPattern.FindAllStringSubmatch(source, -1) {
		name, body := m[1], m[2]
		p.funcs[strings.ToLower(name)] = proc{Name: name, Lines: Normalize(body)}
	}
	return p
}

// Merge adds definitions from another program, overwriting same-named ones.
func (p *Program) Merge(other *Program) {
	for k, v := range other.subs {
		p.subs[k] = v
	}
	for k, v := range other.funcs {
		p.funcs[k] = v
	}
}

// Sub returns the body of a Sub by case-insensitive name.
func (p *Program) Sub(name string) ([]string, bool) {
	pr, ok := p.subs[strings.ToLower(name)]
	return pr.Lines, ok
}

// Function returns the declared name and body of a Function by
// case-insensitive name. The declared name matters because the function's
// Context slot (its return value) is created under it.
func (p *Program) Function(name string) (string, []string, bool) {
	pr, ok := p.funcs[strings.ToLower(name)]
	return pr.Name, pr.Lines, ok
}

// Subs lists the declared names of all Subs.
func (p *Program) Subs() []string {
	names := make([]string, 0, len(p.subs))
	for _, pr := range p.subs {
		names = append(names, pr.Name)
	}
	return names
}

// Functions lists the declared names of all Functions.
func (p *Program) Functions() []string {
	names := make([]string, 0, len(p.funcs))
	for _, pr := range p.funcs {
		names = append(names, pr.Name)
	}
	return names
}
