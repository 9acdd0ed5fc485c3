package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dinikifo/VB6.tiny.clone/internal/script"
	"github.com/dinikifo/VB6.tiny.clone/pkg/tinyvb"
)

func printBanner() {
	fmt.Println("tinyvb REPL (Ctrl+D to exit)")
	fmt.Println()
	fmt.Println("Statements run as typed; blocks are buffered until End If,")
	fmt.Println("Wend or Loop closes them. Sub/Function definitions load into")
	fmt.Println("the program. Prefix a line with ? to print an expression.")
	fmt.Println()
}

func runREPL(runtime *tinyvb.Runtime) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		printBanner()
	}

	reader := bufio.NewReader(os.Stdin)
	var buf []string
	depth := 0
	inDef := false

	for {
		if depth > 0 || inDef {
			fmt.Print("... ")
		} else {
			fmt.Print(">>> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" && depth == 0 && !inDef {
			continue
		}

		if depth == 0 && !inDef && strings.HasPrefix(trimmed, "?") {
			expr := strings.TrimSpace(trimmed[1:])
			fmt.Println(tinyvb.Format(runtime.Eval(expr)))
			continue
		}

		upper := strings.ToUpper(trimmed)
		if !inDef && depth == 0 && (strings.HasPrefix(upper, "SUB ") || strings.HasPrefix(upper, "FUNCTION ")) {
			inDef = true
		}

		buf = append(buf, line)

		if inDef {
			if upper == "END SUB" || upper == "END FUNCTION" {
				runtime.LoadSource(strings.Join(buf, "\n"))
				buf = nil
				inDef = false
			}
			continue
		}

		depth += depthDelta(trimmed)
		if depth > 0 {
			continue
		}
		depth = 0

		runtime.Exec(strings.Join(buf, "\n"))
		buf = nil
	}
}

// depthDelta tracks block nesting from one logical line.
func depthDelta(line string) int {
	cl := script.Classify(line)
	if cl.OpensBlock() {
		return 1
	}
	switch cl.Kind {
	case script.EndIf, script.Wend, script.LoopFooter, script.LoopWhileFooter:
		return -1
	}
	return 0
}
