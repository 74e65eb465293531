package domain

// SessionStore keeps per-conversation message history, keyed by the
// resolved profile URL. All mutation for a given key is serialized;
// distinct keys are fully independent.
type SessionStore interface {
	// Update runs fn with exclusive access to the session for key.
	// fn receives a copy of the committed history (empty for a new
	// session) and returns the full history to commit. Nothing is
	// committed when fn returns an error, so a failed turn leaves the
	// session exactly as it was.
	Update(key string, fn func(history []ChatMessage) ([]ChatMessage, error)) error

	// History returns a copy of the committed history for key and
	// whether a session exists.
	History(key string) ([]ChatMessage, bool)
}
