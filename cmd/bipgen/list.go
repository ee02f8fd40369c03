package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

func listRuns(ledgerPath string, w io.Writer) error {
	l, err := openLedger(ledgerPath)
	if err != nil {
		return err
	}
	defer l.Close()

	runs, err := l.Runs()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(w, "%s  %-9s  %-14s  seed=%-20d  %d/%d files  %d edges  %s  %s\n",
			run.ID, run.Status, run.Mode, run.Seed, run.Files, run.Quantity,
			run.Edges, humanize.Bytes(uint64(run.Bytes)), humanize.Time(run.StartedAt))
		if run.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", run.Error)
		}
	}
	return nil
}

func showRun(ledgerPath, runID string, w io.Writer) error {
	l, err := openLedger(ledgerPath)
	if err != nil {
		return err
	}
	defer l.Close()

	run, err := l.Run(runID)
	if err != nil {
		return err
	}
	cases, err := l.Cases(runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run Details:\n")
	fmt.Fprintf(w, "  ID:        %s\n", run.ID)
	fmt.Fprintf(w, "  Status:    %s\n", run.Status)
	fmt.Fprintf(w, "  Mode:      %s\n", run.Mode)
	fmt.Fprintf(w, "  Seed:      %d\n", run.Seed)
	fmt.Fprintf(w, "  Directory: %s\n", run.Dir)
	fmt.Fprintf(w, "  Started:   %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if !run.FinishedAt.IsZero() {
		fmt.Fprintf(w, "  Finished:  %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "  Duration:  %v\n", run.FinishedAt.Sub(run.StartedAt))
	}
	fmt.Fprintf(w, "  Files:     %d/%d\n", run.Files, run.Quantity)
	fmt.Fprintf(w, "  Edges:     %d\n", run.Edges)
	fmt.Fprintf(w, "  Size:      %s\n", humanize.Bytes(uint64(run.Bytes)))
	if run.Error != "" {
		fmt.Fprintf(w, "  Error:     %s\n", run.Error)
	}

	if len(cases) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\nFiles:\n")
	for _, c := range cases {
		fmt.Fprintf(w, "  %4d  %-14s  %3d consumers  %3d products  %5d edges  %s\n",
			c.Index, c.FileName, c.Consumers, c.Products, c.Edges, humanize.Bytes(uint64(c.Bytes)))
	}
	return nil
}
