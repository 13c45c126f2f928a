package core

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/recruitd/adminctl/internal/db"
)

var testDBSeq atomic.Int64

// newTestService builds a Service over a fresh in-memory sqlite store.
func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:core_test_%s_%d?mode=memory&cache=shared", t.Name(), testDBSeq.Add(1))
	store, err := db.NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("NewStoreFromDSN failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store, nil)
}

// recordingSender captures sent mail in memory.
type recordingSender struct {
	sent []string // recipient addresses
	body map[string]string
	fail bool
}

func newRecordingSender() *recordingSender {
	return &recordingSender{body: map[string]string{}}
}

func (r *recordingSender) Send(to, subject, body string) error {
	if r.fail {
		return fmt.Errorf("smtp unreachable")
	}
	r.sent = append(r.sent, to)
	r.body[to] = body
	return nil
}
