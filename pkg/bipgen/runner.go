package bipgen

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
)

// Case is one generated file.
type Case struct {
	Index     int    `json:"index"` // 0-based position within the run
	FileName  string `json:"file_name"`
	Path      string `json:"path"`
	Consumers int    `json:"consumers"`
	Products  int    `json:"products"`
	Attempts  int    `json:"attempts"`
	Edges     int    `json:"edges"`
	Bytes     int64  `json:"bytes"`
}

// Recorder receives every case after its file has been closed.
type Recorder interface {
	Record(c Case) error
}

// Runner drives the file generation loop.
type Runner struct {
	// Dir is where case files are created. Empty means the working directory.
	Dir string

	// Rand supplies every random draw of the run.
	Rand *rand.Rand

	// Recorder, if set, is called once per written file. An error aborts the run.
	Recorder Recorder

	// OnCase, if set, is called after each file is written and recorded.
	OnCase func(c Case)
}

// Totals sums what a run wrote.
type Totals struct {
	Files int
	Edges int
	Bytes int64
}

func (t *Totals) add(c Case) {
	t.Files++
	t.Edges += c.Edges
	t.Bytes += c.Bytes
}

// Run writes params.Quantity case files. After each file the consumer and
// product counts are redrawn from [1, MaxRandomCount] for the next one.
// Cases are handed to Recorder and OnCase and then dropped; callers that need
// them collect them there. On failure the totals cover the files written
// before it.
func (r *Runner) Run(params Params) (Totals, error) {
	var totals Totals
	if r.Rand == nil {
		return totals, fmt.Errorf("%w: runner has no random source", ErrInvalidArgument)
	}

	consumers, products := params.Consumers, params.Products

	for i := range params.Quantity {
		c, err := r.writeCase(i, consumers, products)
		if err != nil {
			return totals, err
		}
		if r.Recorder != nil {
			if err := r.Recorder.Record(c); err != nil {
				return totals, fmt.Errorf("record %s: %w", c.FileName, err)
			}
		}
		totals.add(c)
		if r.OnCase != nil {
			r.OnCase(c)
		}

		consumers = randomCount(r.Rand)
		products = randomCount(r.Rand)
	}

	return totals, nil
}

func (r *Runner) writeCase(index, consumers, products int) (Case, error) {
	name := FileName(consumers, products)
	path := name
	if r.Dir != "" {
		path = filepath.Join(r.Dir, name)
	}

	c := Case{
		Index:     index,
		FileName:  name,
		Path:      path,
		Consumers: consumers,
		Products:  products,
	}

	file, err := os.Create(path)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrOutput, err)
	}

	w := bufio.NewWriter(file)
	stats, err := NewGraph(consumers, products, r.Rand).Emit(w)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		file.Close()
		return c, fmt.Errorf("%w: write %s: %w", ErrOutput, path, err)
	}

	info, err := file.Stat()
	if err == nil {
		c.Bytes = info.Size()
	}
	if err := file.Close(); err != nil {
		return c, fmt.Errorf("%w: close %s: %w", ErrOutput, path, err)
	}

	c.Attempts = stats.Attempts
	c.Edges = stats.Edges
	return c, nil
}
