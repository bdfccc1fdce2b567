package dataset

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	classKey contextKey = "class"
	stageKey contextKey = "stage"
)

// WithRunID annotates context with the run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithClass annotates context with the dataset class being assembled.
func WithClass(ctx context.Context, class Class) context.Context {
	if class == "" {
		return ctx
	}
	return context.WithValue(ctx, classKey, class)
}

// ClassFromContext returns the dataset class if present.
func ClassFromContext(ctx context.Context) (Class, bool) {
	if v, ok := ctx.Value(classKey).(Class); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
