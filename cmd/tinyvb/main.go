// Command tinyvb runs VB-flavored scripts against a persistent JSON ledger.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dinikifo/VB6.tiny.clone/pkg/tinyvb"
)

func main() {
	var (
		evalStr  = flag.String("e", "", "Execute statements")
		file     = flag.String("f", "", "Load a script file (Sub/Function definitions)")
		callName = flag.String("call", "", "Call a Sub after loading")
		fnName   = flag.String("fn", "", "Call a Function after loading and print its result")
		dataPath = flag.String("data", "ledger.json", "JSON data file path")
		dbPath   = flag.String("db", "", "SQLite database path (overrides -data)")
		formPath = flag.String("form", "", "Open a form definition file")
	)

	flag.Parse()

	opts := []tinyvb.Option{}
	if *dbPath != "" {
		opts = append(opts, tinyvb.WithSQLiteStore(*dbPath))
	} else {
		opts = append(opts, tinyvb.WithFileStore(*dataPath))
	}

	runtime, err := tinyvb.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer runtime.Close()

	if *file != "" {
		if err := runtime.LoadFile(*file); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading file: %v\n", err)
			os.Exit(1)
		}
	}

	if *formPath != "" {
		data, err := os.ReadFile(*formPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading form: %v\n", err)
			os.Exit(1)
		}
		if _, err := runtime.OpenForm(string(data), nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening form: %v\n", err)
			os.Exit(1)
		}
	}

	if *evalStr != "" {
		runtime.Exec(*evalStr)
	}

	if *callName != "" {
		runtime.CallSub(*callName)
	}

	if *fnName != "" {
		fmt.Println(tinyvb.Format(runtime.CallFunction(*fnName)))
	}

	// Anything above counts as a requested action; otherwise fall through
	// to piped input or the REPL.
	if *evalStr != "" || *callName != "" || *fnName != "" || *formPath != "" {
		return
	}

	if !isTerminal(os.Stdin) {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		runtime.LoadSource(string(input))
		runtime.CallSub("Main")
		return
	}

	if *file != "" {
		runtime.CallSub("Main")
		return
	}

	runREPL(runtime)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
