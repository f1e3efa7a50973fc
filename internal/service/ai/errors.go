package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider failures are surfaced as distinct kinds so the UI can report
// them precisely. None of them is retried automatically.
var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderAuth        = errors.New("provider rejected credentials")
	ErrProviderRateLimited = errors.New("provider rate limited")
	ErrMalformedResponse   = errors.New("malformed provider response")
)

// classifyProviderError maps a raw provider/client error onto one of the
// sentinel kinds, preserving the original message. The Ark client reports
// HTTP status through the error text, so matching is textual.
func classifyProviderError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "401", "403", "unauthorized", "forbidden", "invalid api key", "authentication"):
		return fmt.Errorf("%w: %v", ErrProviderAuth, err)
	case containsAny(msg, "429", "rate limit", "too many requests", "quota"):
		return fmt.Errorf("%w: %v", ErrProviderRateLimited, err)
	case containsAny(msg, "unmarshal", "decode", "unexpected end", "invalid character", "malformed"):
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	default:
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
