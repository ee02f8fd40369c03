package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"pkg.jsn.cam/bipgen/pkg/recommend"
)

/*reads a bipgen purchase graph and writes its weighted recommendation graph*/

var errUsage = errors.New("usage error")

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		log.Fatalf("[RECOMMEND] %v", err)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "Input .dot file (default stdin)")
	out := fs.String("out", "", "Output .dot file (default stdout)")
	verbose := fs.Bool("v", false, "Log graph sizes")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", errUsage, fs.Args())
	}
	logger := log.New(stderr, "", log.LstdFlags)

	src := stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	g, err := recommend.Read(src)
	if err != nil {
		return err
	}
	h := recommend.Recommend(g)

	if *verbose {
		logger.Printf("[RECOMMEND] Read %s nodes and %s edges, produced %s recommendations",
			humanize.Comma(int64(len(g.Nodes()))), humanize.Comma(int64(len(g.Edges()))),
			humanize.Comma(int64(len(h.Edges()))))
	}

	if *out == "" {
		return recommend.Write(stdout, h)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := recommend.Write(f, h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
