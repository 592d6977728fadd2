// Command verify cross-checks every uniqueness and permutation strategy on a
// generated corpus for each configured alphabet. It exits non-zero if any two
// strategies disagree or a check fails.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garyellow/strcheck/internal/analyzer"
	"github.com/garyellow/strcheck/internal/charset"
	"github.com/garyellow/strcheck/internal/config"
	"github.com/garyellow/strcheck/internal/logger"
	"github.com/garyellow/strcheck/internal/sliceutil"
)

// maxShown caps how many disagreements are printed per alphabet.
const maxShown = 5

type options struct {
	cases     int
	maxLen    int
	seed      uint64
	alphabets string
	timeout   time.Duration
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.cases, "cases", 1000, "Cases per alphabet")
	fs.IntVar(&opts.maxLen, "max-len", 64, "Maximum runes per generated string (capped by the input limit)")
	fs.Uint64Var(&opts.seed, "seed", 1, "Corpus seed")
	fs.StringVar(&opts.alphabets, "alphabets", "", "Comma-separated alphabets (default from config)")
	fs.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Overall timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if opts.cases < 1 || opts.maxLen < 0 {
		_, _ = fmt.Fprintln(stderr, "-cases must be positive and -max-len non-negative")
		return 2
	}

	cfg, err := config.LoadForMode(config.CLIMode)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	names := cfg.Check.VerifyAlphabets
	if opts.alphabets != "" {
		names = nil
		for name := range strings.SplitSeq(opts.alphabets, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		names = sliceutil.Deduplicate(names, strings.ToLower)
	}
	alphabets := make([]charset.Alphabet, 0, len(names))
	for _, name := range names {
		a, err := charset.Lookup(name)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		alphabets = append(alphabets, a)
	}

	svc, err := analyzer.New(cfg.Check, nil, logger.NewWithWriter(cfg.LogLevel, stderr))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Failed to create analyzer: %v\n", err)
		return 1
	}

	_, _ = fmt.Fprintln(stdout, "🔍 strcheck - Strategy Consistency Verification")
	_, _ = fmt.Fprintln(stdout, "==============================================")

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	reports, err := verifyAll(ctx, svc, alphabets, opts, min(opts.maxLen, cfg.Check.MaxInputRunes))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Verification failed: %v\n", err)
		return 1
	}

	return printReports(stdout, reports)
}

// verifyAll runs one Verify per alphabet concurrently. Reports keep the order
// of alphabets.
func verifyAll(ctx context.Context, svc *analyzer.Service, alphabets []charset.Alphabet, opts options, maxLen int) ([]*analyzer.VerifyReport, error) {
	reports := make([]*analyzer.VerifyReport, len(alphabets))
	g, gctx := errgroup.WithContext(ctx)

	for i, a := range alphabets {
		g.Go(func() error {
			cases := analyzer.GenerateCorpus(a, opts.cases, maxLen, opts.seed)
			report, err := svc.Verify(gctx, a.Name, cases)
			if err != nil {
				return fmt.Errorf("%s: %w", a.Name, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func printReports(w io.Writer, reports []*analyzer.VerifyReport) int {
	_, _ = fmt.Fprintln(w, "\n📊 Verification Results:")
	_, _ = fmt.Fprintln(w, "========================")

	passed, failed := 0, 0
	for _, r := range reports {
		if r.OK() {
			passed++
			_, _ = fmt.Fprintf(w, "✅ %s: %d cases, all strategies agree\n", r.Alphabet, r.Checked)
			continue
		}

		failed++
		_, _ = fmt.Fprintf(w, "❌ %s: %d of %d cases disagree\n", r.Alphabet, len(r.Disagreements), r.Checked)
		for _, d := range r.Disagreements[:min(len(r.Disagreements), maxShown)] {
			verdicts := make([]string, 0, len(d.Results))
			for _, res := range d.Results {
				verdicts = append(verdicts, fmt.Sprintf("%s=%t", res.Strategy, res.Result))
			}
			_, _ = fmt.Fprintf(w, "   %s %q %q: %s\n", d.Case.Operation, d.Case.A, d.Case.B, strings.Join(verdicts, " "))
		}
	}

	_, _ = fmt.Fprintf(w, "\n📈 Summary: %d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return 1
	}
	return 0
}
