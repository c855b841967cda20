package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"paragraphs", "<p>One</p><p>Two</p>", "One\n\nTwo"},
		{"heading and image", `<h1>Title</h1><p>Text<img src="x.png"></p>`, "Title\n\nText"},
		{"line break", "<p>a<br>b</p>", "a\nb"},
		{"entities", "<p>Fish &amp; chips</p>", "Fish & chips"},
		{"markdown passthrough", "# Heading\n\nSome *text*.", "# Heading\n\nSome *text*."},
		{"script dropped", "<p>Hi</p><script>alert(1)</script>", "Hi"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlainText(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
