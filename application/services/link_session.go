package services

import (
	"sync"

	pkgerrors "nexus-backend/pkg/errors"
)

// LinkState is the two-phase linking state.
type LinkState string

const (
	LinkIdle    LinkState = "idle"
	LinkLinking LinkState = "linking"
)

// LinkSession is the two-phase linking state machine. Entering the linking
// state records a source node and edge type; the only ways out are
// completing the link against a target or cancelling. While linking, a node
// click means "complete the link here" instead of selection.
type LinkSession struct {
	mu       sync.Mutex
	state    LinkState
	sourceID string
	edgeType string
}

// NewLinkSession creates an idle session
func NewLinkSession() *LinkSession {
	return &LinkSession{state: LinkIdle}
}

// State returns the current state
func (s *LinkSession) State() LinkState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsLinking reports whether a link is in progress
func (s *LinkSession) IsLinking() bool {
	return s.State() == LinkLinking
}

// Start enters the linking state from idle
func (s *LinkSession) Start(sourceID, edgeType string) error {
	if sourceID == "" || edgeType == "" {
		return pkgerrors.NewValidationError("linking requires a source node and edge type")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != LinkIdle {
		return pkgerrors.NewConflictError("a link is already in progress")
	}
	s.state = LinkLinking
	s.sourceID = sourceID
	s.edgeType = edgeType
	return nil
}

// Take returns the pending source and edge type and resets the session to
// idle. The reset happens before the link is attempted, so a failed
// completion does not leave the session stuck.
func (s *LinkSession) Take() (sourceID, edgeType string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != LinkLinking {
		return "", "", pkgerrors.NewValidationError("no link in progress")
	}
	sourceID, edgeType = s.sourceID, s.edgeType
	s.reset()
	return sourceID, edgeType, nil
}

// Cancel returns to idle without side effects
func (s *LinkSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Source returns the pending source id, or "" when idle
func (s *LinkSession) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != LinkLinking {
		return ""
	}
	return s.sourceID
}

func (s *LinkSession) reset() {
	s.state = LinkIdle
	s.sourceID = ""
	s.edgeType = ""
}
