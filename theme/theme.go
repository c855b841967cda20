// Package theme carries the reader's colour theme through a request or
// terminal session as a context value.
package theme

import "context"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
	Sepia Theme = "sepia"
)

const Default = Light

// Next cycles light → dark → sepia → light.
func (t Theme) Next() Theme {
	switch t {
	case Light:
		return Dark
	case Dark:
		return Sepia
	default:
		return Light
	}
}

func (t Theme) Valid() bool {
	return t == Light || t == Dark || t == Sepia
}

// Parse returns the named theme, or Default for anything unknown.
func Parse(s string) Theme {
	t := Theme(s)
	if !t.Valid() {
		return Default
	}
	return t
}

type ctxKey struct{}

func WithTheme(ctx context.Context, t Theme) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the theme stored in ctx, or Default.
func FromContext(ctx context.Context) Theme {
	if t, ok := ctx.Value(ctxKey{}).(Theme); ok && t.Valid() {
		return t
	}
	return Default
}
