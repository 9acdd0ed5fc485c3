// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

package script

import "strings"

// Kind classifies a logical line for the block executor.
type Kind int

const (
	Statement Kind = iota
	IfHeader
	Else
	EndIf
	WhileHeader
	Wend
	DoWhileHeader
	DoHeader
	LoopWhileFooter
	LoopFooter
)

// String returns the name of a Kind.
func (k Kind) String() string {
	switch k {
	case Statement:
		return "Statement"
	case IfHeader:
		return "IfHeader"
	case Else:
		return "Else"
	case EndIf:
		return "EndIf"
	case WhileHeader:
		return "WhileHeader"
	case Wend:
		return "Wend"
	case DoWhileHeader:
		return "DoWhileHeader"
	case DoHeader:
		return "DoHeader"
	case LoopWhileFooter:
		return "LoopWhileFooter"
	case LoopFooter:
		return "LoopFooter"
	}
	return "Unknown"
}

// Line is a classified logical line. Cond holds the condition text for
// If/While/Do While headers and Loop While footers; it is empty otherwise.
type Line struct {
	Kind Kind
	Cond string
	Text string
}

// hasWordPrefix reports whether upper starts with the keyword followed by a
// word boundary (end of line or a space).
func hasWordPrefix(upper, kw string) bool {
	if upper == kw {
		return true
	}
	return strings.HasPrefix(upper, kw+" ")
}

// Classify maps a logical line onto the block-structure keyword set.
// Keywords are matched case-insensitively. An If line only counts as a
// block header when it also carries a Then; the condition is everything
// between the If and the last Then on the line.
func Classify(line string) Line {
	trimmed := strings.TrimSpace(line)
	upper := strings.ToUpper(trimmed)

	switch {
	case upper == "ELSE":
		return Line{Kind: Else, Text: trimmed}
	case upper == "END IF":
		return Line{Kind: EndIf, Text: trimmed}
	case upper == "WEND":
		return Line{Kind: Wend, Text: trimmed}
	}

	if strings.HasPrefix(upper, "IF ") && strings.Contains(upper, " THEN") {
		thenPos := strings.LastIndex(upper, "THEN")
		cond := strings.TrimSpace(trimmed[2:thenPos])
		return Line{Kind: IfHeader, Cond: cond, Text: trimmed}
	}

	if strings.HasPrefix(upper, "WHILE ") {
		return Line{Kind: WhileHeader, Cond: strings.TrimSpace(trimmed[5:]), Text: trimmed}
	}

	if hasWordPrefix(upper, "DO WHILE") {
		return Line{Kind: DoWhileHeader, Cond: strings.TrimSpace(trimmed[8:]), Text: trimmed}
	}
	if hasWordPrefix(upper, "DO") {
		return Line{Kind: DoHeader, Text: trimmed}
	}

	if hasWordPrefix(upper, "LOOP WHILE") {
		return Line{Kind: LoopWhileFooter, Cond: strings.TrimSpace(trimmed[10:]), Text: trimmed}
	}
	if hasWordPrefix(upper, "LOOP") {
		return Line{Kind: LoopFooter, Text: trimmed}
	}

	return Line{Kind: Statement, Text: trimmed}
}

// OpensBlock reports whether the line begins a nestable block.
func (l Line) OpensBlock() bool {
	switch l.Kind {
	case IfHeader, WhileHeader, DoWhileHeader, DoHeader:
		return true
	}
	return false
}
