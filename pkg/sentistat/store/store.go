package store

import (
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrNotFound is returned when a run ID is unknown.
var ErrNotFound = errors.New("store: run not found")

// Kind names the job that produced a run.
type Kind string

const (
	KindKappa        Kind = "kappa"
	KindOverview     Kind = "overview"
	KindDistribution Kind = "distribution"
)

// Store records the results of past runs.
type Store interface {
	Close() error

	Save(ctx context.Context, r Run) error
	Get(ctx context.Context, id string) (Run, error)
	List(ctx context.Context, kind Kind, limit int) ([]Run, error)
}

// Run is one recorded job execution.
type Run struct {
	ID        string
	Kind      Kind
	Input     string
	CreatedAt time.Time
	Result    []byte // JSON-encoded job result
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRun stamps a run with a fresh ULID and the current time.
func NewRun(kind Kind, input string, result []byte) Run {
	now := time.Now().UTC()
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), entropy)
	entropyMu.Unlock()
	return Run{
		ID:        id.String(),
		Kind:      kind,
		Input:     input,
		CreatedAt: now,
		Result:    result,
	}
}
