package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"pkg.jsn.cam/bipgen/pkg/bipgen"
	"pkg.jsn.cam/bipgen/pkg/ledger"
	"pkg.jsn.cam/bipgen/pkg/storage"
)

/*generates random bipartite consumer/product graphs as .dot test cases*/

const usageText = `Usage:
  bipgen [flags]                        one case with 10 consumers and 10 products
  bipgen [flags] <quantity>             <quantity> cases with random counts in [1,100]
  bipgen [flags] <consumers> <products> one case with the given counts

Flags:
`

// errUsage marks command-line syntax errors, which exit with status 2.
var errUsage = errors.New("usage error")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		log.Fatalf("[BIPGEN] %v", err)
	}
}

type options struct {
	dir      string
	seed     uint64
	ledger   string
	list     bool
	show     string
	progress bool
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var opts options

	fs := flag.NewFlagSet("bipgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.dir, "dir", ".", "Directory the .dot files are written to")
	fs.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	fs.StringVar(&opts.ledger, "ledger", "", "Path of a bbolt file recording runs (disabled when empty)")
	fs.BoolVar(&opts.list, "list", false, "List the runs recorded in -ledger and exit")
	fs.StringVar(&opts.show, "show", "", "Print one run recorded in -ledger, with its files, and exit")
	fs.BoolVar(&opts.progress, "progress", false, "Show a progress bar")
	fs.BoolVar(&opts.verbose, "v", false, "Log every written file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, nil, err
		}
		return opts, nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	return opts, fs.Args(), nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, tokens, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := log.New(stderr, "", log.LstdFlags)

	if opts.list || opts.show != "" {
		if opts.ledger == "" {
			return fmt.Errorf("%w: -list and -show require -ledger", bipgen.ErrInvalidArgument)
		}
		if opts.show != "" {
			return showRun(opts.ledger, opts.show, stdout)
		}
		return listRuns(opts.ledger, stdout)
	}

	mode, err := bipgen.ParseMode(tokens)
	if err != nil {
		return err
	}

	r, seed := bipgen.NewRand(opts.seed)
	params := bipgen.Plan(mode, r)
	if opts.verbose {
		logger.Printf("[BIPGEN] Mode %s, seed %d, %d file(s) into %s", mode, seed, params.Quantity, opts.dir)
	}

	runner := &bipgen.Runner{Dir: opts.dir, Rand: r}

	var session *ledger.Session
	if opts.ledger != "" {
		l, err := openLedger(opts.ledger)
		if err != nil {
			return err
		}
		defer l.Close()

		session, err = l.Start(ledger.Run{
			Mode:     mode.String(),
			Seed:     seed,
			Dir:      opts.dir,
			Quantity: params.Quantity,
		})
		if err != nil {
			return err
		}
		runner.Recorder = session
	}

	var bar *progressbar.ProgressBar
	if opts.progress {
		bar = progressbar.NewOptions(params.Quantity,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionShowCount(),
		)
	}

	runner.OnCase = func(c bipgen.Case) {
		if opts.verbose {
			logger.Printf("[BIPGEN] Wrote %s (%d consumers, %d products, %d edges, %s)",
				c.Path, c.Consumers, c.Products, c.Edges, humanize.Bytes(uint64(c.Bytes)))
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	totals, runErr := runner.Run(params)
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(stderr)
	}

	if session != nil {
		if err := session.Finish(runErr); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}

	if opts.verbose {
		logger.Printf("[BIPGEN] Generated %d file(s), %d edges, %s total",
			totals.Files, totals.Edges, humanize.Bytes(uint64(totals.Bytes)))
	}
	return nil
}

func openLedger(path string) (*ledger.Ledger, error) {
	backend, err := storage.NewBboltBackend(path)
	if err != nil {
		return nil, err
	}

	l, err := ledger.Open(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return l, nil
}
