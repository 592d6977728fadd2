// Command strcheck runs every uniqueness or permutation strategy on its
// input from the command line and prints each verdict.
//
// Usage:
//
//	strcheck unique [-alphabet name] [-input text]
//	strcheck perm [-alphabet name] [-nfc] [a b]
//	strcheck -version
//
// unique reads one line from stdin when -input is not given. perm compares
// "dog          " and "gOd" when no arguments are given.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/garyellow/strcheck/internal/analyzer"
	"github.com/garyellow/strcheck/internal/buildinfo"
	"github.com/garyellow/strcheck/internal/config"
	"github.com/garyellow/strcheck/internal/logger"
)

// Default pair for perm.
const (
	defaultPermA = "dog          "
	defaultPermB = "gOd"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("strcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	version := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: strcheck [-version] <unique|perm> [flags] [args]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *version {
		_, _ = fmt.Fprintln(stdout, "strcheck", buildinfo.String())
		return exitOK
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.LoadForMode(config.CLIMode)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitError
	}
	svc, err := analyzer.New(cfg.Check, nil, logger.NewWithWriter(cfg.LogLevel, stderr))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Failed to create analyzer: %v\n", err)
		return exitError
	}

	ctx := context.Background()
	switch cmd, rest := fs.Arg(0), fs.Args()[1:]; cmd {
	case "unique":
		return runUnique(ctx, svc, rest, stdin, stdout, stderr)
	case "perm", "permutation":
		return runPermutation(ctx, svc, rest, stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}
}

func runUnique(ctx context.Context, svc *analyzer.Service, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("unique", flag.ContinueOnError)
	fs.SetOutput(stderr)
	alphabet := fs.String("alphabet", "", "Alphabet name (default from config)")
	input := fs.String("input", "", "String to check (default: read one line from stdin)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	text := *input
	if !isFlagSet(fs, "input") {
		_, _ = fmt.Fprintln(stdout, "Enter the string:")
		line, err := readLine(stdin)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Failed to read input: %v\n", err)
			return exitError
		}
		text = line
	}

	cmp, err := svc.CompareUnique(ctx, text, *alphabet)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return printComparison(cmp, stdout, stderr)
}

func runPermutation(ctx context.Context, svc *analyzer.Service, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("perm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	alphabet := fs.String("alphabet", "", "Alphabet name (default from config)")
	nfc := fs.Bool("nfc", false, "Compose both strings to NFC before comparing")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	a, b := defaultPermA, defaultPermB
	switch fs.NArg() {
	case 0:
	case 2:
		a, b = fs.Arg(0), fs.Arg(1)
	default:
		_, _ = fmt.Fprintln(stderr, "perm takes exactly two strings")
		return exitUsage
	}

	cmp, err := svc.ComparePermutation(ctx, a, b, *alphabet, *nfc)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return printComparison(cmp, stdout, stderr)
}

func printComparison(cmp *analyzer.Comparison, stdout, stderr io.Writer) int {
	for _, r := range cmp.Results {
		_, _ = fmt.Fprintf(stdout, "%s: %t\n", r.Strategy, r.Result)
	}
	if !cmp.Consistent {
		_, _ = fmt.Fprintln(stderr, "Strategies disagree")
		return exitError
	}
	return exitOK
}

// readLine returns the first line of r without its line terminator.
// An empty input is an empty line.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
