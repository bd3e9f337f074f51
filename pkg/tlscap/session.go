// Package tlscap implements TLS handshake capture analysis for TLSRaven
// File: pkg/tlscap/session.go
package tlscap

// SessionMap accumulates TLS sessions keyed by their direction-independent
// connection identity. Insertion order is preserved so reports list sessions
// in first-sighted order, not map iteration order.
type SessionMap struct {
	sessions map[SessionKey]*Session
	order    []SessionKey
}

// NewSessionMap creates an empty session map.
func NewSessionMap() *SessionMap {
	return &SessionMap{
		sessions: make(map[SessionKey]*Session),
	}
}

// Observe folds one frame's handshake facts into the session identified by
// the frame's connection tuple, creating the session on first sighting. The
// key is computed before the message type is inspected, so a ServerHello
// arriving ahead of its ClientHello still attaches to the same session.
func (sm *SessionMap) Observe(frame Frame, facts HandshakeFacts) {
	key := NewSessionKey(
		Endpoint{Addr: frame.SrcIP, Port: frame.SrcPort},
		Endpoint{Addr: frame.DstIP, Port: frame.DstPort},
	)

	session, exists := sm.sessions[key]
	if !exists {
		session = &Session{
			Key:       key,
			Timestamp: frame.Timestamp,
		}
		sm.sessions[key] = session
		sm.order = append(sm.order, key)
	}

	switch facts.Type {
	case MsgClientHello:
		session.OfferedCiphers = facts.OfferedCiphers
		session.SupportedGroups = facts.SupportedGroups
		// The ClientHello is the session's canonical start time.
		session.Timestamp = frame.Timestamp
	case MsgServerHello:
		selected := facts.SelectedCipher
		session.SelectedCipher = &selected
	case MsgServerKeyExchange:
		bits := facts.DHPrimeBits
		session.DHPrimeBits = &bits
	}
}

// Len returns the number of reconstructed sessions.
func (sm *SessionMap) Len() int {
	return len(sm.sessions)
}

// Sessions returns the sessions in first-sighted order.
func (sm *SessionMap) Sessions() []*Session {
	out := make([]*Session, 0, len(sm.order))
	for _, key := range sm.order {
		out = append(out, sm.sessions[key])
	}
	return out
}

// Get returns the session for a connection tuple, if one exists.
func (sm *SessionMap) Get(src, dst Endpoint) (*Session, bool) {
	session, exists := sm.sessions[NewSessionKey(src, dst)]
	return session, exists
}
