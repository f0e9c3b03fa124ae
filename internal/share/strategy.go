package share

import (
	"context"
	"encoding/json"
	"net/url"
)

// Saver is the slice of the link resolution service the share flow needs:
// exchange a payload for a short identifier.
type Saver interface {
	Save(ctx context.Context, payload json.RawMessage) (string, error)
}

// Strategy builds the final share URL for a token.
type Strategy interface {
	ShareURL(ctx context.Context, base *url.URL, token string) (string, error)
}

// EmbeddedTokenStrategy carries the full token in the "data" query
// parameter. It needs no backend and cannot fail, which is what makes it
// the degraded-mode fallback.
type EmbeddedTokenStrategy struct{}

func (EmbeddedTokenStrategy) ShareURL(_ context.Context, base *url.URL, token string) (string, error) {
	u := *base
	q := u.Query()
	q.Set("data", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ShortLinkStrategy persists the token through a Saver and references it by
// its short identifier in the "id" query parameter.
type ShortLinkStrategy struct {
	Saver Saver
}

func (s ShortLinkStrategy) ShareURL(ctx context.Context, base *url.URL, token string) (string, error) {
	payload, err := json.Marshal(token)
	if err != nil {
		return "", err
	}
	id, err := s.Saver.Save(ctx, payload)
	if err != nil {
		return "", err
	}
	u := *base
	q := u.Query()
	q.Set("id", id)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Share builds a share URL for token, preferring a short link when a saver
// is available and falling back to embedding the full token when the save
// fails. The share action itself never fails: the fallback always produces
// a URL.
func Share(ctx context.Context, saver Saver, base *url.URL, token string) string {
	if saver != nil {
		if u, err := (ShortLinkStrategy{Saver: saver}).ShareURL(ctx, base, token); err == nil {
			return u
		}
	}
	u, _ := EmbeddedTokenStrategy{}.ShareURL(ctx, base, token)
	return u
}
