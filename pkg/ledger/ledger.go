// Package ledger keeps an optional record of generator runs and the case
// files each run wrote, on top of a storage.Backend.
package ledger

import (
	"cmp"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"pkg.jsn.cam/bipgen/pkg/bipgen"
	"pkg.jsn.cam/bipgen/pkg/storage"
)

var (
	ErrIncompatibleSchema = errors.New("incompatible ledger schema")
	ErrRunNotFound        = errors.New("run not found")
)

var (
	bucketMeta  = []byte("meta")
	bucketRuns  = []byte("runs")
	bucketCases = []byte("cases")

	keySchema = []byte("schema_version")
)

// Status of a recorded run
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is one invocation of the generator.
type Run struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Seed       uint64    `json:"seed"`
	Dir        string    `json:"dir"`
	Quantity   int       `json:"quantity"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`

	Files int   `json:"files"`
	Edges int   `json:"edges"`
	Bytes int64 `json:"bytes"`
}

// Ledger stores runs and cases
type Ledger struct {
	backend storage.Backend
	now     func() time.Time
}

// Open prepares the ledger's buckets and checks the stored schema version.
// A fresh backend is stamped with SchemaVersion.
func Open(backend storage.Backend) (*Ledger, error) {
	for _, name := range [][]byte{bucketMeta, bucketRuns, bucketCases} {
		if err := backend.CreateBucket(name); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", name, err)
		}
	}

	stored, err := backend.Get(bucketMeta, keySchema)
	if err != nil {
		return nil, err
	}

	if stored == nil {
		if err := backend.Put(bucketMeta, keySchema, []byte(SchemaVersion)); err != nil {
			return nil, fmt.Errorf("write schema version: %w", err)
		}
		log.Printf("[LEDGER] Initialized ledger at schema %s", SchemaVersion)
	} else {
		ok, err := IsCompatibleSchema(string(stored), SchemaVersion)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIncompatibleSchema, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrIncompatibleSchema, schemaMismatch(string(stored), SchemaVersion))
		}
	}

	return &Ledger{backend: backend, now: time.Now}, nil
}

// Close closes the underlying backend
func (l *Ledger) Close() error {
	return l.backend.Close()
}

// Start records a new run in the running state and returns a session that
// records its cases. An empty ID is replaced with a random UUID.
func (l *Ledger) Start(run Run) (*Session, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.Status = StatusRunning
	run.StartedAt = l.now().UTC()

	if err := l.putRun(run); err != nil {
		return nil, err
	}
	return &Session{ledger: l, run: run}, nil
}

// Run returns the run with the given ID
func (l *Ledger) Run(id string) (Run, error) {
	var run Run
	found, err := storage.GetJSON(l.backend, bucketRuns, []byte(id), &run)
	if err != nil {
		return Run{}, err
	}
	if !found {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, nil
}

// Runs returns every recorded run, oldest first
func (l *Ledger) Runs() ([]Run, error) {
	var runs []Run
	err := l.backend.ForEach(bucketRuns, func(k, v []byte) error {
		var run Run
		if err := storage.DecodeJSON(v, &run); err != nil {
			log.Printf("[LEDGER] Warning: Failed to decode run %s: %v", k, err)
			return nil
		}
		runs = append(runs, run)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(runs, func(a, b Run) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	return runs, nil
}

// Cases returns the cases recorded for a run, in the order they were written
func (l *Ledger) Cases(runID string) ([]bipgen.Case, error) {
	if _, err := l.Run(runID); err != nil {
		return nil, err
	}

	prefix := runID + "/"
	var cases []bipgen.Case
	err := l.backend.ForEach(bucketCases, func(k, v []byte) error {
		if !strings.HasPrefix(string(k), prefix) {
			return nil
		}
		var c bipgen.Case
		if err := storage.DecodeJSON(v, &c); err != nil {
			return fmt.Errorf("decode case %s: %w", k, err)
		}
		cases = append(cases, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(cases, func(a, b bipgen.Case) int { return cmp.Compare(a.Index, b.Index) })
	return cases, nil
}

func (l *Ledger) putRun(run Run) error {
	if err := storage.PutJSON(l.backend, bucketRuns, []byte(run.ID), run); err != nil {
		return fmt.Errorf("store run %s: %w", run.ID, err)
	}
	return nil
}

// Session records the cases of one run. It implements bipgen.Recorder.
type Session struct {
	ledger *Ledger
	run    Run
}

var _ bipgen.Recorder = (*Session)(nil)

// Run returns the run as recorded so far
func (s *Session) Run() Run {
	return s.run
}

// Record stores a written case and updates the run's totals
func (s *Session) Record(c bipgen.Case) error {
	key := fmt.Sprintf("%s/%08d", s.run.ID, c.Index)
	if err := storage.PutJSON(s.ledger.backend, bucketCases, []byte(key), c); err != nil {
		return fmt.Errorf("store case %s: %w", key, err)
	}

	s.run.Files++
	s.run.Edges += c.Edges
	s.run.Bytes += c.Bytes
	return s.ledger.putRun(s.run)
}

// Finish marks the run completed, or failed with runErr
func (s *Session) Finish(runErr error) error {
	s.run.FinishedAt = s.ledger.now().UTC()
	s.run.Status = StatusCompleted
	if runErr != nil {
		s.run.Status = StatusFailed
		s.run.Error = runErr.Error()
	}
	return s.ledger.putRun(s.run)
}
