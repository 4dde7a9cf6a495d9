package screen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/examdraft/internal/draft"
)

// gatedSaver blocks inside Save until release is closed, then touches and
// encodes the draft it was handed the way the store does.
type gatedSaver struct {
	started chan *draft.Draft
	release chan struct{}
	err     error
}

func newGatedSaver() *gatedSaver {
	return &gatedSaver{started: make(chan *draft.Draft, 1), release: make(chan struct{})}
}

func (g *gatedSaver) Save(_ context.Context, d *draft.Draft) (int, error) {
	g.started <- d
	<-g.release
	if g.err != nil {
		return 0, g.err
	}
	d.Touch()
	if _, err := draft.Encode(d); err != nil {
		return 0, err
	}
	return 1, nil
}

func runSave(t *testing.T, e *Env) (<-chan SavedMsg, *gatedSaver) {
	t.Helper()
	saver := e.Repo.(*gatedSaver)
	cmd := e.SaveCmd()
	if cmd == nil {
		t.Fatal("SaveCmd returned nil with a store configured")
	}
	done := make(chan SavedMsg, 1)
	go func() { done <- cmd().(SavedMsg) }()
	return done, saver
}

func TestEnv_EditDuringSaveStaysDirty(t *testing.T) {
	d := draft.New("MOCK-1", "first")
	e := NewEnv(d, newGatedSaver(), nil)
	d.Description = "second"
	d.Touch()

	done, saver := runSave(t, e)
	written := <-saver.started
	if written == d {
		t.Fatal("save was handed the live draft")
	}

	d.Description = "third"
	d.Touch()
	close(saver.release)

	msg := <-done
	if msg.Err != nil {
		t.Fatalf("save: %v", msg.Err)
	}
	e.MarkSaved(msg)

	if written.Description != "second" {
		t.Errorf("saved description = %q, want %q", written.Description, "second")
	}
	if !e.Dirty() {
		t.Error("edit made during the save was marked as saved")
	}
}

func TestEnv_SaveClearsDirty(t *testing.T) {
	d := draft.New("MOCK-1", "")
	e := NewEnv(d, newGatedSaver(), nil)
	if e.Dirty() {
		t.Fatal("fresh draft is dirty")
	}
	d.Description = "edited"
	d.UpdatedAt = d.UpdatedAt.Add(time.Second)
	if !e.Dirty() {
		t.Fatal("edited draft is clean")
	}

	done, saver := runSave(t, e)
	<-saver.started
	close(saver.release)
	e.MarkSaved(<-done)

	if e.Dirty() {
		t.Error("draft still dirty after save")
	}
}

func TestEnv_FailedSaveKeepsDirty(t *testing.T) {
	d := draft.New("MOCK-1", "")
	saver := newGatedSaver()
	saver.err = errors.New("disk full")
	e := NewEnv(d, saver, nil)
	d.Description = "edited"

	done, _ := runSave(t, e)
	<-saver.started
	close(saver.release)
	msg := <-done
	if msg.Err == nil {
		t.Fatal("expected the save error")
	}
	e.MarkSaved(msg)

	if !e.Dirty() {
		t.Error("failed save cleared the dirty state")
	}
}

func TestEnv_NoStoreIsNeverDirty(t *testing.T) {
	d := draft.New("MOCK-1", "")
	e := NewEnv(d, nil, nil)
	d.Description = "edited"
	if e.Dirty() {
		t.Error("draft without a store reported dirty")
	}
	if e.SaveCmd() != nil {
		t.Error("SaveCmd without a store should be nil")
	}
}
