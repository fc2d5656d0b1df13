package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"minic/pkg/driver"
	"minic/pkg/source"
)

const (
	historyFile = ".minic_history"
	prompt      = "> "
)

func main() {
	// Define flags
	exprFlag := flag.String("e", "", "Run the given code and exit")
	tokensFlag := flag.Bool("tokens", false, "Show the token stream before parsing")
	astFlag := flag.Bool("ast", false, "Show the AST dump before evaluation")

	flag.Parse()

	options := driver.RunOptions{ShowTokens: *tokensFlag, ShowAST: *astFlag}

	if *exprFlag != "" {
		// Run the code provided via the -e flag
		runExpression(*exprFlag, options)
		return
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Usage: minic [script.mc] or minic -e \"code\"\n")
		os.Exit(64) // Exit code 64: command line usage error
	} else if flag.NArg() == 1 {
		// Execute the script file provided as an argument
		if !driver.RunFile(flag.Arg(0), options) {
			os.Exit(70) // Exit code 70: internal software error
		}
	} else {
		// No file provided, start the REPL
		runRepl(options)
	}
}

// runExpression executes a single fragment provided via the -e flag.
func runExpression(code string, options driver.RunOptions) {
	session := driver.NewSession()
	results, errs := session.RunCode(code, options)
	if !session.DisplayResult(code, results, errs) {
		os.Exit(70)
	}
}

// runRepl starts the Read-Eval-Print loop. Variables persist across lines
// because the session keeps one environment for its whole lifetime.
func runRepl(options driver.RunOptions) {
	fmt.Println("Minic REPL")
	fmt.Println("Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	session := driver.NewSession()

	for {
		line, err := ln.Prompt(prompt)
		if stderrors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if stderrors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			return
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		results, errs := session.RunSource(source.NewReplSource(line), options)
		_ = session.DisplayResult(line, results, errs) // Ignore the bool return in REPL
		ln.AppendHistory(line)
	}
}
