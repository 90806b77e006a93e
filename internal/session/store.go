// Package session keeps per-visitor page state between requests and ties
// it to a browser through a signed cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wolfman30/tennis-booking/internal/frontend"
)

// ErrNotFound is returned by Load when no live session exists for an id.
var ErrNotFound = errors.New("session: not found")

// Store persists sessions by id. Implementations expire entries after
// their configured TTL; every Save restarts it.
type Store interface {
	Load(ctx context.Context, id string) (*frontend.Session, error)
	Save(ctx context.Context, id string, s *frontend.Session) error
	Delete(ctx context.Context, id string) error
}

// LoadOrNew returns the stored session for id, or a fresh one when none
// exists.
func LoadOrNew(ctx context.Context, store Store, id string) (*frontend.Session, error) {
	s, err := store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return frontend.NewSession(), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func encode(s *frontend.Session) ([]byte, error) {
	if s == nil {
		return nil, errors.New("session: nil session")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("session: encode: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*frontend.Session, error) {
	var s frontend.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	if !s.View.Valid() {
		s.View = frontend.ViewCoaches
	}
	return &s, nil
}
