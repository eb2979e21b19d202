package audio

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

type implRouter struct {
	routes   map[string]Codec
	fallback Codec
}

// NewRouter dispatches to a Codec by the source file's extension
// (case-insensitive, dot included), using fallback for anything unrouted.
func NewRouter(routes map[string]Codec, fallback Codec) Codec {
	normalized := make(map[string]Codec, len(routes))
	for ext, c := range routes {
		normalized[strings.ToLower(ext)] = c
	}
	return &implRouter{routes: normalized, fallback: fallback}
}

func (r *implRouter) pick(path string) Codec {
	if c, ok := r.routes[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return r.fallback
}

func (r *implRouter) Duration(ctx context.Context, path string) (time.Duration, error) {
	return r.pick(path).Duration(ctx, path)
}

func (r *implRouter) Export(ctx context.Context, src string, cuts []Cut) error {
	return r.pick(src).Export(ctx, src, cuts)
}

func (r *implRouter) Extension(src string) string {
	return r.pick(src).Extension(src)
}
