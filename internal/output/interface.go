// Package output writes the transcript and summary artifacts of a run.
package output

import "context"

// Artifacts is everything one run writes.
type Artifacts struct {
	Prefix     string
	TestMode   bool
	Transcript string
	Summary    string
}

// Writer persists artifacts and returns the paths it wrote, in write order.
type Writer interface {
	Write(ctx context.Context, a Artifacts) ([]string, error)
}
