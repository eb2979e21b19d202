package chunk

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/audio-digest/internal/sequence"
)

// Plan decides WHOLE, SPLIT or TRUNCATED_SAMPLE for file.
// A file exactly at the ceiling is within limits.
func (p *implPlanner) Plan(ctx context.Context, file sequence.File, policy Policy) (Plan, error) {
	policy = policy.withDefaults()
	plan := Plan{
		File:         file,
		Window:       policy.Window,
		SampleLength: policy.SampleLength,
	}

	if policy.TestMode {
		plan.Mode = ModeTruncatedSample
		plan.SegmentCount = 1
		return plan, nil
	}

	info, err := p.stat(file.Path)
	if err != nil {
		return Plan{}, fmt.Errorf("stat %s: %w", file.Path, err)
	}
	plan.Size = info.Size()

	if plan.Size <= policy.Ceiling {
		plan.Mode = ModeWhole
		plan.SegmentCount = 1
		return plan, nil
	}

	duration, err := p.codec.Duration(ctx, file.Path)
	if err != nil {
		return Plan{}, err
	}

	plan.Mode = ModeSplit
	plan.Duration = duration
	plan.SegmentCount = segmentCount(duration, policy.Window)
	return plan, nil
}

// segmentCount is ceil(duration / window), never less than one.
func segmentCount(duration, window time.Duration) int {
	n := int((duration + window - 1) / window)
	if n < 1 {
		return 1
	}
	return n
}
