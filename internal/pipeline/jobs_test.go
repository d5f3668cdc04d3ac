package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"shotfold/internal/config"
	"shotfold/internal/fold"
)

func TestNewJob(t *testing.T) {
	job := NewJob("shots.tsv", "My Title", []byte("data"))

	if len(job.ID) != 20 {
		t.Errorf("expected 20-char id, got %q", job.ID)
	}
	if job.Status != StatusQueued {
		t.Errorf("expected queued, got %s", job.Status)
	}
	if string(job.FileData()) != "data" {
		t.Error("file data not retained")
	}
	if job.Result() != nil {
		t.Error("expected nil result before completion")
	}

	other := NewJob("shots.tsv", "My Title", []byte("data"))
	if other.ID == job.ID {
		t.Error("expected distinct ids for separate jobs")
	}
}

func TestJobLifecycle(t *testing.T) {
	job := NewJob("shots.tsv", "", nil)

	job.SetStatus(StatusFolding, "")
	job.SetStats(fold.Stats{RowsRead: 3, RowsConsidered: 2, ShotsAttached: 2})
	job.SetResult([]byte("project:\n"))
	job.SetStatus(StatusCompleted, "")

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", snap.Status)
	}
	if snap.RowsRead != 3 || snap.RowsConsidered != 2 || snap.ShotsAttached != 2 {
		t.Errorf("unexpected snapshot counts %+v", snap)
	}
	if snap.RowsDropped != nil {
		t.Error("expected no drop map without drops")
	}
	if string(job.Result()) != "project:\n" {
		t.Error("result not retained")
	}
}

func TestJobSnapshotDropReasons(t *testing.T) {
	stats := fold.Stats{}
	stats.Drops = map[fold.DropReason]int{
		fold.DropMissingShotNumber: 2,
		fold.DropUnresolvedScene:   1,
	}

	job := NewJob("shots.tsv", "", nil)
	job.SetStats(stats)

	snap := job.Snapshot()
	if snap.RowsDropped[string(fold.DropMissingShotNumber)] != 2 {
		t.Errorf("unexpected drop map %v", snap.RowsDropped)
	}
	if snap.RowsDropped[string(fold.DropUnresolvedScene)] != 1 {
		t.Errorf("unexpected drop map %v", snap.RowsDropped)
	}
}

func TestJobStoreTTL(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	fresh := NewJob("fresh.tsv", "", nil)
	stale := NewJob("stale.tsv", "", nil)
	store.Put(fresh)
	store.Put(stale)

	stale.mu.Lock()
	stale.UpdatedAt = time.Now().Add(-time.Second)
	stale.mu.Unlock()

	store.Cleanup()

	if store.Get(stale.ID) != nil {
		t.Error("expected stale job evicted")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job retained")
	}
	if store.Get("unknown") != nil {
		t.Error("expected nil for unknown id")
	}
}

func testOrchestrator(queueSize int) *Orchestrator {
	srv := config.Server{
		WorkerCount:  2,
		MaxQueueSize: queueSize,
		JobTTL:       time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(srv, testConverter(), log)
}

func waitForStatus(t *testing.T, o *Orchestrator, id string, want JobStatus) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap := o.GetJob(id).Snapshot()
		if snap.Status == want {
			return snap
		}
		if snap.Status == StatusFailed && want != StatusFailed {
			t.Fatalf("job failed: %s", snap.Reason)
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached %s", id, want)
	return JobSnapshot{}
}

func TestOrchestratorProcessesJob(t *testing.T) {
	o := testOrchestrator(4)
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("studio_shots.tsv", "", []byte(sampleTSV))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap := waitForStatus(t, o, job.ID, StatusCompleted)
	if snap.ShotsAttached != 2 {
		t.Errorf("expected 2 shots attached, got %d", snap.ShotsAttached)
	}
	if !strings.Contains(string(job.Result()), "title: Studio Shots") {
		t.Errorf("unexpected result:\n%s", job.Result())
	}
}

func TestOrchestratorFailedJobKeepsReason(t *testing.T) {
	o := testOrchestrator(4)
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("bad.tsv", "", []byte("PHASE_NUM\tSCENE_NUM\tSHOT_NUM\nabc\t1\t1\n"))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap := waitForStatus(t, o, job.ID, StatusFailed)
	if !strings.Contains(snap.Reason, "bad.tsv") {
		t.Errorf("reason does not name the source: %s", snap.Reason)
	}
}

func TestSubmitQueueFull(t *testing.T) {
	// Never started, so nothing drains the queue.
	o := testOrchestrator(1)

	if err := o.Submit(NewJob("a.tsv", "", nil)); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	job := NewJob("b.tsv", "", nil)
	if err := o.Submit(job); err == nil {
		t.Fatal("expected queue-full error")
	}
	if job.Snapshot().Status != StatusFailed {
		t.Error("expected rejected job marked failed")
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}

func TestContentHashHex(t *testing.T) {
	a := ContentHashHex([]byte("abc"))
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a != ContentHashHex([]byte("abc")) {
		t.Error("expected stable hash")
	}
	if a == ContentHashHex([]byte("abd")) {
		t.Error("expected distinct hashes for distinct content")
	}
}
