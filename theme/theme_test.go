package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTheme_NextCycles(t *testing.T) {
	assert.Equal(t, Dark, Light.Next())
	assert.Equal(t, Sepia, Dark.Next())
	assert.Equal(t, Light, Sepia.Next())
	assert.Equal(t, Light, Theme("neon").Next())
}

func TestParse(t *testing.T) {
	assert.Equal(t, Sepia, Parse("sepia"))
	assert.Equal(t, Default, Parse(""))
	assert.Equal(t, Default, Parse("neon"))
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Light, FromContext(ctx))

	ctx = WithTheme(ctx, Dark)
	assert.Equal(t, Dark, FromContext(ctx))
}
