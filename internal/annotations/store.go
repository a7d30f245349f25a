// Package annotations keeps per-exercise, per-page stroke collections
// with linear undo/redo history and session-scoped persistence.
package annotations

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

// StorageKeyPrefix namespaces persisted annotation state by session so
// concurrent lessons never collide.
const StorageKeyPrefix = "lesson-annotations-"

// StorageKey is the persistence key for one session.
func StorageKey(sessionID string) string {
	return StorageKeyPrefix + sessionID
}

type pageHistory struct {
	undo [][]types.Stroke
	redo [][]types.Stroke
}

type exerciseState struct {
	pages      types.PageAnnotations
	history    map[int]*pageHistory
	lastUndone int // page index of the most recent undo, -1 if none
}

func newExerciseState() *exerciseState {
	return &exerciseState{
		pages:      types.PageAnnotations{},
		history:    map[int]*pageHistory{},
		lastUndone: -1,
	}
}

func (e *exerciseState) page(idx int) *pageHistory {
	h, ok := e.history[idx]
	if !ok {
		h = &pageHistory{}
		e.history[idx] = h
	}
	return h
}

// Store holds all annotation state for one lesson session. History
// stacks live in memory; the current page→strokes mapping is persisted
// after every mutation so it survives reloads within the session.
type Store struct {
	mu        sync.Mutex
	log       *logger.Logger
	sessionID string
	persist   Persistence
	exercises map[string]*exerciseState
}

// NewStore creates a session store, loading any state previously
// persisted under the session's storage key.
func NewStore(ctx context.Context, log *logger.Logger, persist Persistence, sessionID string) (*Store, error) {
	s := &Store{
		log:       log.With("service", "AnnotationStore", "session_id", sessionID),
		sessionID: sessionID,
		persist:   persist,
		exercises: map[string]*exerciseState{},
	}
	raw, err := persist.Load(ctx, StorageKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("load annotation storage: %w", err)
	}
	if len(raw) > 0 {
		var snapshot map[string]types.PageAnnotations
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			// Corrupt persisted state is dropped, not fatal.
			s.log.Warn("Discarding unreadable annotation snapshot", "error", err)
		} else {
			for id, pages := range snapshot {
				st := newExerciseState()
				st.pages = pages.Clone()
				s.exercises[id] = st
			}
		}
	}
	return s, nil
}

// GetAnnotations returns the page→strokes mapping for one exercise;
// empty mapping if none exist yet.
func (s *Store) GetAnnotations(exerciseID string) types.PageAnnotations {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.exercises[exerciseID]
	if !ok {
		return types.PageAnnotations{}
	}
	return st.pages.Clone()
}

// GetAllAnnotations snapshots every exercise touched in the session.
func (s *Store) GetAllAnnotations() map[string]types.PageAnnotations {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]types.PageAnnotations, len(s.exercises))
	for id, st := range s.exercises {
		out[id] = st.pages.Clone()
	}
	return out
}

// SetPageStrokes replaces one page's stroke list, pushing the previous
// state onto the page's undo stack and clearing its redo stack.
func (s *Store) SetPageStrokes(ctx context.Context, exerciseID string, pageIndex int, strokes []types.Stroke) error {
	s.mu.Lock()
	st, ok := s.exercises[exerciseID]
	if !ok {
		st = newExerciseState()
		s.exercises[exerciseID] = st
	}
	h := st.page(pageIndex)
	h.undo = append(h.undo, types.CloneStrokes(st.pages[pageIndex]))
	h.redo = nil
	st.lastUndone = -1
	st.pages[pageIndex] = types.CloneStrokes(strokes)
	s.mu.Unlock()

	return s.save(ctx)
}

// UndoLastStroke restores the page state recorded before the most
// recent SetPageStrokes on that page and returns it. With an empty undo
// stack it is a no-op returning the unchanged current state.
func (s *Store) UndoLastStroke(ctx context.Context, exerciseID string, pageIndex int) ([]types.Stroke, error) {
	s.mu.Lock()
	st, ok := s.exercises[exerciseID]
	if !ok {
		s.mu.Unlock()
		return nil, nil
	}
	h := st.page(pageIndex)
	if len(h.undo) == 0 {
		cur := types.CloneStrokes(st.pages[pageIndex])
		s.mu.Unlock()
		return cur, nil
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, types.CloneStrokes(st.pages[pageIndex]))
	st.pages[pageIndex] = prev
	st.lastUndone = pageIndex
	restored := types.CloneStrokes(prev)
	s.mu.Unlock()

	if err := s.save(ctx); err != nil {
		return restored, err
	}
	return restored, nil
}

// RedoLastStroke re-applies the state removed by the last undo on the
// page. ok is false when there is nothing to redo; callers treat that
// as "try the next candidate page", not as an error.
func (s *Store) RedoLastStroke(ctx context.Context, exerciseID string, pageIndex int) ([]types.Stroke, bool, error) {
	s.mu.Lock()
	st, ok := s.exercises[exerciseID]
	if !ok {
		s.mu.Unlock()
		return nil, false, nil
	}
	h := st.page(pageIndex)
	if len(h.redo) == 0 {
		s.mu.Unlock()
		return nil, false, nil
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, types.CloneStrokes(st.pages[pageIndex]))
	st.pages[pageIndex] = next
	applied := types.CloneStrokes(next)
	s.mu.Unlock()

	if err := s.save(ctx); err != nil {
		return applied, true, err
	}
	return applied, true, nil
}

// LastUndonePage is the page of the most recent undo for the exercise,
// or -1. It lets callers redo without guessing which page to try first.
func (s *Store) LastUndonePage(exerciseID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.exercises[exerciseID]; ok {
		return st.lastUndone
	}
	return -1
}

// PageIndexes returns the page indexes known for an exercise, for redo
// candidate scans.
func (s *Store) PageIndexes(exerciseID string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.exercises[exerciseID]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(st.history))
	for idx := range st.history {
		out = append(out, idx)
	}
	return out
}

// ClearAnnotations discards all pages and both history stacks for one
// exercise only.
func (s *Store) ClearAnnotations(ctx context.Context, exerciseID string) error {
	s.mu.Lock()
	delete(s.exercises, exerciseID)
	s.mu.Unlock()
	return s.save(ctx)
}

// HasAnnotations reports whether the exercise has any stroke on any
// page.
func (s *Store) HasAnnotations(exerciseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.exercises[exerciseID]
	return ok && st.pages.HasInk()
}

// HasAnyAnnotations reports whether any exercise in the session has
// ink. Gates save/export UI and exit-confirmation prompts.
func (s *Store) HasAnyAnnotations() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.exercises {
		if st.pages.HasInk() {
			return true
		}
	}
	return false
}

// ClearStorage wipes all in-memory and persisted state for the session.
// Called on lesson-session exit whether or not the user saved.
func (s *Store) ClearStorage(ctx context.Context) error {
	s.mu.Lock()
	s.exercises = map[string]*exerciseState{}
	s.mu.Unlock()
	if err := s.persist.Delete(ctx, StorageKey(s.sessionID)); err != nil {
		return fmt.Errorf("clear annotation storage: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context) error {
	s.mu.Lock()
	snapshot := make(map[string]types.PageAnnotations, len(s.exercises))
	for id, st := range s.exercises {
		snapshot[id] = st.pages.Clone()
	}
	s.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode annotation snapshot: %w", err)
	}
	if err := s.persist.Save(ctx, StorageKey(s.sessionID), raw); err != nil {
		return fmt.Errorf("persist annotation snapshot: %w", err)
	}
	return nil
}
