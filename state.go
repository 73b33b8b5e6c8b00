package linkctx

import (
	"context"
	"strings"
	"sync"
)

// GenerationState is what a view shows for the current analysis.
// At most one of IsLoading, Error and Result is set.
type GenerationState struct {
	IsLoading bool
	Error     string
	Result    *Result
}

// Session holds the GenerationState of a single view and allows one
// analysis in flight at a time. A Session is safe for concurrent use.
type Session struct {
	contextualizer Contextualizer
	config         Config

	mu    sync.Mutex
	state GenerationState
}

// NewSession returns a Session that analyzes URLs with c using cfg.
func NewSession(c Contextualizer, cfg Config) *Session {
	return &Session{contextualizer: c, config: cfg}
}

// State returns a snapshot of the current state.
func (s *Session) State() GenerationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit analyzes the user's input and replaces the session state with the
// outcome. Blank input is rejected with EINVALID and a submission while
// another is loading with ECONFLICT; neither touches the state.
//
// Any failure of the analysis is stored as a display message and also
// returned.
func (s *Session) Submit(ctx context.Context, input string) (*Result, error) {
	if strings.TrimSpace(input) == "" {
		return nil, Errorf(EINVALID, "URL required")
	}

	s.mu.Lock()
	if s.state.IsLoading {
		s.mu.Unlock()
		return nil, Errorf(ECONFLICT, "an analysis is already in progress")
	}
	s.state = GenerationState{IsLoading: true}
	s.mu.Unlock()

	result, err := s.contextualizer.Contextualize(ctx, s.config, NormalizeURL(input))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = GenerationState{Error: DisplayMessage(err)}
		return nil, err
	}
	s.state = GenerationState{Result: result}
	return result, nil
}
