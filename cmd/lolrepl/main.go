package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"lolhtml/pkg/compiler"
)

const (
	historyFile = ".lolhtml_history"
	promptMain  = "lol> "
	promptCont  = "...  "
)

var banner = "lolhtml REPL\nEnter a document from #hai to #kthxbye. Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit."

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

func main() {
	os.Exit(repl())
}

func repl() int {
	fmt.Println(banner)

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
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
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

	for {
		src, ok := readDocument(ln)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(src)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		html, err := compiler.Compile(src)
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(green(html))
	}
	return 0
}

// readDocument keeps prompting while the accumulated input is a valid prefix
// of a document, i.e. validation fails only because input ended early.
func readDocument(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C: drop the partial document.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if needsMore(src) {
			continue
		}
		return src, true
	}
}

// needsMore reports whether src is an unfinished document. REPL commands and
// blank input never wait for more lines.
func needsMore(src string) bool {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" || strings.HasPrefix(trimmed, ":") {
		return false
	}
	return compiler.IsIncomplete(compiler.Check(compiler.Lex(src)))
}
