package screen

import (
	"bytes"
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/abhisek/examdraft/internal/quota"
)

// Saver persists a draft. store.DraftRepo satisfies it.
type Saver interface {
	Save(ctx context.Context, d *draft.Draft) (int, error)
}

// Env is the state shared by every screen of one editing session.
type Env struct {
	Draft *draft.Draft
	Repo  Saver
	Gen   *quota.Generator

	// saved is the encoded draft as of the last successful save.
	saved []byte
}

// NewEnv wraps a draft freshly loaded from repo, so it starts clean.
func NewEnv(d *draft.Draft, repo Saver, gen *quota.Generator) *Env {
	e := &Env{Draft: d, Repo: repo, Gen: gen}
	e.saved, _ = draft.Encode(d)
	return e
}

// SavedMsg reports the outcome of a save.
type SavedMsg struct {
	Revision int
	Err      error

	// state is the encoded draft that was written.
	state []byte
}

// SaveCmd writes a copy of the draft through Repo. The copy is taken before
// the command is returned, so edits made while the save runs stay unsaved.
// It returns nil when no store is configured.
func (e *Env) SaveCmd() tea.Cmd {
	if e.Repo == nil {
		return nil
	}
	data, err := draft.Encode(e.Draft)
	if err != nil {
		return func() tea.Msg { return SavedMsg{Err: err} }
	}
	snap, err := draft.Decode(data)
	if err != nil {
		return func() tea.Msg { return SavedMsg{Err: err} }
	}
	repo := e.Repo
	return func() tea.Msg {
		rev, err := repo.Save(context.Background(), snap)
		return SavedMsg{Revision: rev, Err: err, state: data}
	}
}

// MarkSaved records a successful save.
func (e *Env) MarkSaved(msg SavedMsg) {
	if msg.Err == nil && msg.state != nil {
		e.saved = msg.state
	}
}

// Dirty reports whether the draft differs from what was last loaded or saved.
// Without a store there is nothing to lose.
func (e *Env) Dirty() bool {
	if e.Repo == nil {
		return false
	}
	data, err := draft.Encode(e.Draft)
	if err != nil {
		return true
	}
	return !bytes.Equal(data, e.saved)
}
