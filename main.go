package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"lolhtml/pkg/compiler"
	"lolhtml/pkg/htmlcheck"
	"lolhtml/pkg/utils"
)

// options mirrors the command-line flags.
type options struct {
	inPath     string
	outPath    string
	showTokens bool
	check      bool
	open       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.inPath, "in", "", "input markup file path")
	flag.StringVar(&opts.outPath, "out", "", "output HTML file path (default: input with .html extension)")
	flag.BoolVar(&opts.showTokens, "tokens", false, "print the token stream before compiling")
	flag.BoolVar(&opts.check, "check", false, "inspect the generated HTML and print its outline")
	flag.BoolVar(&opts.open, "open", false, "open the generated HTML in the default browser")
	flag.Parse()

	if opts.inPath == "" && flag.NArg() > 0 {
		opts.inPath = flag.Arg(0)
	}
	if opts.inPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in <file.lol>")
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(opts, os.Stdout, os.Stderr))
}

// run compiles one file and returns the process exit status. No output file
// is written unless compilation succeeds.
func run(opts options, stdout, stderr io.Writer) int {
	src, err := utils.ReadSource(opts.inPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read input file %q: %v\n", opts.inPath, err)
		return 1
	}

	if opts.showTokens {
		lines := compiler.Tokens(src)
		fmt.Fprintf(stdout, "Tokens (%d)\n", len(lines))
		for _, line := range lines {
			fmt.Fprintln(stdout, " ", line)
		}
		fmt.Fprintln(stdout)
	}

	html, err := compiler.Compile(src)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", opts.inPath, err)
		return 1
	}

	if opts.check {
		report, err := htmlcheck.Inspect(html)
		if err != nil {
			fmt.Fprintf(stderr, "generated HTML failed inspection: %v\n", err)
			return 1
		}
		fmt.Fprint(stdout, report)
	}

	output := opts.outPath
	if output == "" {
		output = utils.DefaultOutputPath(opts.inPath)
	}
	if err := utils.WriteHTML(output, html); err != nil {
		fmt.Fprintf(stderr, "failed to write HTML file %q: %v\n", output, err)
		return 1
	}
	fmt.Fprintf(stdout, "compiled %s -> %s (%d bytes)\n", opts.inPath, output, len(html))

	if opts.open {
		if err := utils.OpenBrowser(output); err != nil {
			fmt.Fprintf(stderr, "could not open browser: %v\n", err)
			return 1
		}
	}
	return 0
}
