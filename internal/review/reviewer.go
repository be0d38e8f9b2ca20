// Package review defines the post-edit review extension point: a hook the
// pipeline checks after selecting a best candidate, for forwarding
// low-scoring translations to a human reviewer. The OSS build ships only a
// disabled stub.
package review

import (
	"context"
	"fmt"
)

// PostEditReviewer is the seam a human-in-the-loop post-editing workflow
// plugs into. The pipeline calls Enabled() before Review(); a disabled
// reviewer is never invoked.
type PostEditReviewer interface {
	Enabled() bool
	Review(ctx context.Context, segmentID, src, best string) error
}

// NoopReviewer is the OSS build's only implementation: always disabled.
// Review always errors if called directly, so a caller that forgets the
// Enabled() check fails loudly rather than silently dropping the request.
type NoopReviewer struct{}

// New returns the disabled OSS stub reviewer.
func New() *NoopReviewer {
	return &NoopReviewer{}
}

// Enabled always returns false in this build.
func (r *NoopReviewer) Enabled() bool { return false }

// Review always errors: post-edit review is not available in this build.
func (r *NoopReviewer) Review(_ context.Context, segmentID, _, _ string) error {
	return fmt.Errorf("review: post-edit reviewer not available for segment %q (disabled build)", segmentID)
}
