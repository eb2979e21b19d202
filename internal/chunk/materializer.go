package chunk

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/audio-digest/internal/audio"
)

// Materialize writes the artifacts a plan calls for. Whole plans reuse the
// source path; everything else is written under workspace.
func (m *implMaterializer) Materialize(ctx context.Context, plan Plan, workspace string) ([]Segment, error) {
	switch plan.Mode {
	case ModeWhole:
		return []Segment{{
			Ordinal: 1,
			Path:    plan.File.Path,
			Source:  plan.File,
			Length:  plan.Duration,
		}}, nil

	case ModeTruncatedSample:
		return m.truncate(ctx, plan, workspace)

	case ModeSplit:
		return m.split(ctx, plan, workspace)

	default:
		return nil, fmt.Errorf("materialize %s: unknown plan mode %s", plan.File.Name(), plan.Mode)
	}
}

func (m *implMaterializer) truncate(ctx context.Context, plan Plan, workspace string) ([]Segment, error) {
	name := stem(plan.File.Path) + "_test_1min" + m.codec.Extension(plan.File.Path)
	seg := Segment{
		Ordinal: 1,
		Path:    filepath.Join(workspace, name),
		Source:  plan.File,
		Start:   0,
		Length:  plan.SampleLength,
	}

	m.logger.Info(ctx, "Test mode: keeping first %s of %s", plan.SampleLength, plan.File.Name())

	if err := m.codec.Export(ctx, plan.File.Path, []audio.Cut{toCut(seg)}); err != nil {
		return nil, err
	}
	return []Segment{seg}, nil
}

func (m *implMaterializer) split(ctx context.Context, plan Plan, workspace string) ([]Segment, error) {
	base := stem(plan.File.Path)
	ext := m.codec.Extension(plan.File.Path)

	segments := make([]Segment, 0, plan.SegmentCount)
	cuts := make([]audio.Cut, 0, plan.SegmentCount)

	for i := 0; i < plan.SegmentCount; i++ {
		start := plan.Window * time.Duration(i)
		length := plan.Window
		if rest := plan.Duration - start; rest < length && rest > 0 {
			length = rest
		}

		seg := Segment{
			Ordinal: i + 1,
			Path:    filepath.Join(workspace, fmt.Sprintf("%s_chunk_%03d%s", base, i+1, ext)),
			Source:  plan.File,
			Start:   start,
			Length:  length,
		}
		segments = append(segments, seg)
		cuts = append(cuts, toCut(seg))
	}

	m.logger.Info(ctx, "File %s (%.1fMB) exceeds limit. Creating %d chunks...",
		plan.File.Name(), float64(plan.Size)/(1024*1024), len(segments))

	if err := m.codec.Export(ctx, plan.File.Path, cuts); err != nil {
		return nil, err
	}
	return segments, nil
}

func toCut(s Segment) audio.Cut {
	return audio.Cut{Start: s.Start, Length: s.Length, Path: s.Path}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
