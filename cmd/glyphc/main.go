// glyphc - emoji-keyword language compiler front end
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/glyphlang/glyphc/internal/astdump"
	"github.com/glyphlang/glyphc/pkg/app"
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/lexer"
	"github.com/glyphlang/glyphc/pkg/parser"
	"github.com/glyphlang/glyphc/pkg/types"
)

var (
	output   = flag.String("o", "", "output path (default: stdout)")
	pkgDir   = flag.String("pkgdir", ".", "package search directory for import resolution")
	jsonDiag = flag.Bool("json", false, "emit diagnostics as JSON instead of human-readable text")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyphc - emoji-keyword language compiler front end\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  glyphc lex <file>     print the token stream\n")
		fmt.Fprintf(os.Stderr, "  glyphc parse <file>   print the parsed document as JSON\n")
		fmt.Fprintf(os.Stderr, "  glyphc check <file>   run semantic analysis, report diagnostics\n")
		fmt.Fprintf(os.Stderr, "  glyphc dump <file>    check, then dump the analysed AST\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}
	mode := os.Args[1]
	flag.CommandLine.Parse(os.Args[2:])

	file := flag.Arg(0)
	if file == "" {
		fmt.Fprintln(os.Stderr, "glyphc: missing source file")
		os.Exit(1)
	}

	switch mode {
	case "lex":
		runLex(file)
	case "parse":
		runParse(file)
	case "check":
		runCheck(file)
	case "dump":
		runDump(file)
	default:
		fmt.Fprintf(os.Stderr, "glyphc: unknown subcommand %q\n", mode)
		flag.Usage()
		os.Exit(1)
	}
}

func readSource(path string) string {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphc: %v\n", err)
		os.Exit(1)
	}
	return string(src)
}

// runLex drains the token stream and prints one token per line,
// mirroring trashtalk-parser's one-shot stdin-to-stdout shape but
// reading a named file, since glyphc addresses package imports by path.
func runLex(path string) {
	l := lexer.New(path, readSource(path))
	ts, err := lexer.NewTokenStream(l)
	if err != nil {
		reportFatal(err)
	}
	w := openOutput()
	defer w.Close()
	for ts.HasMore() {
		tok := ts.Peek()
		fmt.Fprintln(w, tok.String())
		if _, err := ts.Consume(); err != nil {
			reportFatal(err)
		}
	}
}

func runParse(path string) {
	doc, err := parseDocument(path)
	if err != nil {
		reportFatal(err)
	}
	w := openOutput()
	defer w.Close()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintf(os.Stderr, "glyphc: %v\n", err)
		os.Exit(1)
	}
}

func parseDocument(path string) (*ast.Document, error) {
	l := lexer.New(path, readSource(path))
	ts, err := lexer.NewTokenStream(l)
	if err != nil {
		return nil, err
	}
	return parser.New(ts).ParseDocument()
}

func runCheck(path string) {
	application := app.New(*pkgDir)
	err := application.CompileFile(path)
	reportDiagnostics(application.Sink)
	if err != nil || application.Sink.HasErrors() {
		os.Exit(1)
	}
}

// runDump runs the full pipeline through boxing insertion, then dumps
// every definition declared in the main file via internal/astdump —
// glyphc's only output format beyond diagnostics, since code
// generation is out of scope.
func runDump(path string) {
	application := app.New(*pkgDir)
	err := application.CompileFile(path)
	reportDiagnostics(application.Sink)
	if err != nil || application.Sink.HasErrors() {
		os.Exit(1)
	}

	w := openOutput()
	defer w.Close()
	pkg := application.MainPackage()
	for _, id := range pkg.DefIDs {
		def := application.Defs.Get(types.DefId(id))
		out, derr := astdump.Dump(def)
		if derr != nil {
			fmt.Fprintf(os.Stderr, "glyphc: %v\n", derr)
			os.Exit(1)
		}
		fmt.Fprint(w, out)
	}
}

func reportFatal(err error) {
	if de, ok := err.(*diag.Error); ok {
		reportDiagnostics(&diag.Sink{Errors: []*diag.Error{de}})
	} else {
		fmt.Fprintf(os.Stderr, "glyphc: %v\n", err)
	}
	os.Exit(1)
}

func reportDiagnostics(sink *diag.Sink) {
	if *jsonDiag {
		enc := json.NewEncoder(os.Stderr)
		for _, e := range sink.Errors {
			enc.Encode(e.ToJSON())
		}
		for _, w := range sink.Warnings {
			enc.Encode(w.ToJSON())
		}
		return
	}
	for _, e := range sink.Errors {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	for _, w := range sink.Warnings {
		fmt.Fprintf(os.Stderr, "⚠️ %s\n", w)
	}
}

func openOutput() io.WriteCloser {
	if *output == "" {
		return nopCloser{os.Stdout}
	}
	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphc: %v\n", err)
		os.Exit(1)
	}
	return f
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
