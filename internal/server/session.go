package server

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ironsheep/lattice-grouper/internal/grouper"
)

// session is one grouper with its installed segmentation, addressed by a
// UUID across tool calls.
type session struct {
	id      string
	grouper grouper.Grouper
	// pagePath is the grayscale page image used for extraction and OCR.
	pagePath string
	hasGT    bool
}

// addSession registers g and returns its session. The caller holds s.mu.
func (s *Server) addSession(g grouper.Grouper, pagePath string, hasGT bool) *session {
	sess := &session{
		id:       uuid.NewString(),
		grouper:  g,
		pagePath: pagePath,
		hasGT:    hasGT,
	}
	s.sessions[sess.id] = sess
	return sess
}

// lookupSession finds a session by id. The caller holds s.mu.
func (s *Server) lookupSession(id string) (*session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid session id %q: %w", id, err)
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session %s", id)
	}
	return sess, nil
}

// removeSession drops a session. The caller holds s.mu.
func (s *Server) removeSession(id string) error {
	if _, err := s.lookupSession(id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}
