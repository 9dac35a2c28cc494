/*
Taulc loads a .taul grammar file, compiles it, and starts an interactive
session for parsing lines of input against it.

Usage:

	taulc parse <grammar-file> [flags]

The flags are:

	-v, --version
		Give the current version of taulc and then exit.

	-c, --config FILE
		Load cache and lexer defaults from the given TOML config file.

	--cache-dir DIR
		Cache compiled grammars under DIR, overriding any directory named
		in the config file. A blank value (the default when no config
		file sets one either) disables caching.

	-d, --direct
		Force reading session input directly from stdin instead of using
		GNU readline based routines, even when launched in a tty.

	-V, --verbose
		Tag the initial grammar compile and each REPL parse with a
		correlation id, printed alongside its result.

Once a grammar is loaded, the session repeatedly reads a line of input,
parses it with the grammar's start rule, and prints the resulting parse
tree, until the special command "exit" is entered or input ends.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/dekarrin/taul/internal/replio"
	"github.com/dekarrin/taul/internal/source"
	"github.com/dekarrin/taul/internal/taul/bootstrap"
	"github.com/dekarrin/taul/internal/taul/compile"
	"github.com/dekarrin/taul/internal/taul/grammar"
	"github.com/dekarrin/taul/internal/taul/lex"
	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/parse"
	"github.com/dekarrin/taul/internal/taul/symbol"
	"github.com/dekarrin/taul/internal/taulcache"
	"github.com/dekarrin/taul/internal/taulcfg"
	"github.com/dekarrin/taul/internal/taulver"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad CLI arguments.
	ExitUsageError

	// ExitLoadError indicates the grammar file could not be read or
	// compiled.
	ExitLoadError

	// ExitSessionError indicates the interactive session ended due to an
	// I/O error rather than the user exiting normally.
	ExitSessionError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	configFile  *string = pflag.StringP("config", "c", "", "Load settings from the given TOML config file")
	cacheDir    *string = pflag.String("cache-dir", "", "Cache compiled grammars under this directory")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	verbose     *bool   = pflag.BoolP("verbose", "V", false, "Tag each compile/parse with a correlation id")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", taulver.Current)
		return
	}

	args := pflag.Args()
	if len(args) != 2 || args[0] != "parse" {
		fmt.Fprintln(os.Stderr, "usage: taulc parse <grammar-file>")
		returnCode = ExitUsageError
		return
	}
	grammarFile := args[1]

	cfg := taulcfg.Default()
	if *configFile != "" {
		loaded, err := taulcfg.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitLoadError
			return
		}
		cfg = loaded
	}
	if *cacheDir != "" {
		cfg.Cache.Dir = *cacheDir
	}

	g, err := loadGrammar(grammarFile, cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitLoadError
		return
	}

	if err := runSession(g, cfg, *forceDirect, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}

// loadGrammar reads grammarFile, serving a cached compiled spec when its
// content hash is already known, and compiles it into a ready-to-use
// Grammar.
func loadGrammar(grammarFile string, cfg taulcfg.Config, verbose bool) (*grammar.Grammar, error) {
	data, err := os.ReadFile(grammarFile)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", grammarFile, err)
	}
	text := string(data)

	var cache *taulcache.Cache
	if cfg.Cache.Dir != "" {
		cache, err = taulcache.Open(cfg.Cache.Dir)
		if err != nil {
			return nil, err
		}
	}

	var spec llspec.Spec
	if cache != nil {
		if cached, ok, err := cache.Get(text); err != nil {
			return nil, err
		} else if ok {
			spec = cached
		}
	}
	if spec.Records == nil {
		spec, err = bootstrap.ParseSource(text)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", grammarFile, err)
		}
		if cache != nil {
			if err := cache.Put(text, spec); err != nil {
				return nil, err
			}
		}
	}

	g, diags := compile.Compile(spec)
	if verbose {
		fmt.Fprintf(os.Stderr, "[%s] compiled %q\n", uuid.New(), grammarFile)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("compiling %q:\n%s", grammarFile, diags.Error())
	}
	return g, nil
}

func runSession(g *grammar.Grammar, cfg taulcfg.Config, forceDirect, verbose bool) error {
	useReadline := !forceDirect
	var in replio.LineReader
	var err error
	if useReadline {
		in, err = replio.NewInteractive("> ")
		if err != nil {
			// no usable tty; fall back to direct stdin reads.
			in = replio.NewDirect(os.Stdin)
		}
	} else {
		in = replio.NewDirect(os.Stdin)
	}
	defer in.Close()

	lexer := lex.New(g, g.LPROrder())
	lexer.CutSkipTokens = cfg.Lex.CutSkipTokens
	parser := parse.New(g)

	for {
		line, err := in.ReadLine()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		buf := source.New()
		buf.AddStr(line)
		tokens, err := lexer.Tokenize(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lex error: %s\n", err.Error())
			continue
		}

		reqID := uuid.New()
		tree, err := parser.Parse(startRule(g), tokens, nil)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "[%s] parse error: %s\n", reqID, err.Error())
			} else {
				fmt.Fprintf(os.Stderr, "parse error: %s\n", err.Error())
			}
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "[%s] ok\n", reqID)
		}
		fmt.Print(tree.String())
	}
}

// startRule picks the entry PPR to drive a session with: the main PPR named
// "Start" if the grammar declares one, otherwise the first main PPR in
// declaration order.
func startRule(g *grammar.Grammar) symbol.ID {
	for _, id := range g.PPROrder() {
		if g.PPRName(id) == "Start" {
			return id
		}
	}
	return g.PPROrder()[0]
}
