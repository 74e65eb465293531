package domain

import (
	"context"
	"encoding/json"
)

// ProfileFetcher retrieves an instructor profile document from the
// profile service. The document is treated as an opaque JSON object.
type ProfileFetcher interface {
	Fetch(ctx context.Context, url string) (json.RawMessage, error)
}
