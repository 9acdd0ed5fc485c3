// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

// Package script turns raw VB-flavored source text into logical statement
// lines and parsed Sub/Function bodies.
package script

import "strings"

// Normalize splits body text into logical lines. A trailing underscore joins
// a physical line with the next one (separated by a single space). Blank
// lines and full-line comments (leading apostrophe) are dropped, but only
// outside a continuation: lines being joined are taken as-is, so a comment
// line in the middle of a continuation becomes part of the logical line,
// and a blank line there terminates the continuation. Trailing inline
// comments on code lines are not stripped.
func Normalize(body string) []string {
	var logical []string
	acc := ""

	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimRight(raw, " \t\r")

		if acc == "" && strings.TrimSpace(line) == "" {
			continue
		}
		if acc == "" && strings.HasPrefix(strings.TrimLeft(line, " \t"), "'") {
			continue
		}

		if strings.HasSuffix(line, "_") {
			part := strings.TrimRight(line[:len(line)-1], " \t")
			if acc != "" {
				acc += " " + part
			} else {
				acc = part
			}
			continue
		}

		var full string
		if acc != "" {
			acc += " " + line
			full = strings.TrimSpace(acc)
			acc = ""
		} else {
			full = strings.TrimSpace(line)
		}

		if full != "" && !strings.HasPrefix(full, "'") {
			logical = append(logical, full)
		}
	}

	if acc != "" {
		full := strings.TrimSpace(acc)
		if full != "" && !strings.HasPrefix(full, "'") {
			logical = append(logical, full)
		}
	}

	return logical
}
