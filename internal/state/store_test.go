package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_PublishAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Publish(Counts{Dirty: 2, Total: 3, InFlight: 1, DirtyLabels: []string{"a", "b"}})

	snap := s.Snapshot()
	if snap.Dirty != 2 || snap.Total != 3 || snap.InFlight != 1 {
		t.Fatalf("snapshot counts = %+v, want 2/3/1", snap.Counts)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if s.CountDirty() != 2 {
		t.Fatalf("CountDirty() = %d, want 2", s.CountDirty())
	}

	snap.DirtyLabels[0] = "changed"
	if got := s.Snapshot().DirtyLabels[0]; got != "a" {
		t.Fatalf("Snapshot should clone labels; got %q want %q", got, "a")
	}
}

func TestStore_PublishKeepsRequestHistory(t *testing.T) {
	var s Store

	origErr := errors.New("boom")
	s.RecordResult(origErr)
	s.Publish(Counts{Dirty: 1, Total: 1})

	snap := s.Snapshot()
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.RecordResult(errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: %d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.RecordResult(errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: %d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.RecordResult(nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() || snap.LastError != nil {
		t.Fatalf("after success: %+v", snap)
	}
}
