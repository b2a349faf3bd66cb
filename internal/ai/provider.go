// Package ai abstracts the hosted text generation service used for
// insight and brief generation.
package ai

import "context"

// Provider generates free-form text from a system instruction and a user
// prompt. Replies are expected to be JSON but must be parsed defensively.
type Provider interface {
	Name() string
	Generate(ctx context.Context, system, user string) (string, error)
}
