package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNovelMetadata_IndexOf(t *testing.T) {
	meta := &NovelMetadata{Chapters: []ChapterRef{{Id: "c1", Order: 1}, {Id: "c2", Order: 2}}}

	assert.Equal(t, 0, meta.IndexOf("c1"))
	assert.Equal(t, 1, meta.IndexOf("c2"))
	assert.Equal(t, -1, meta.IndexOf("c3"))
}

func TestNovelMetadata_OrderMismatches(t *testing.T) {
	meta := &NovelMetadata{Chapters: []ChapterRef{
		{Id: "chapter-1", Order: 1},
		{Id: "chapter-3", Order: 3},
		{Id: "chapter-4", Order: 4},
	}}

	mismatches := meta.OrderMismatches()
	require.Len(t, mismatches, 2)
	assert.Equal(t, OrderMismatch{Position: 1, ChapterId: "chapter-3", Order: 3}, mismatches[0])
	assert.Equal(t, `chapter "chapter-4" at position 2 has order 4, expected 3`, mismatches[1].String())

	meta.Chapters = meta.Chapters[:1]
	assert.Empty(t, meta.OrderMismatches())
}

func TestNovelMetadata_LenientParse(t *testing.T) {
	doc := `{
		"novel": {"id": "n1", "title": "T", "author": "A", "description": "", "tags": ["x"],
			"createdAt": "2024-01-01T00:00:00.000Z", "updatedAt": "2024-01-01T00:00:00.000Z",
			"chapterCount": 2, "rating": 5},
		"chapters": [{"id": "c1", "title": "One", "order": 1}, {"id": "c2", "title": "Two", "order": 2, "words": 10}],
		"version": 3
	}`

	var meta NovelMetadata
	require.NoError(t, json.Unmarshal([]byte(doc), &meta))
	assert.Equal(t, "n1", meta.Novel.Id)
	assert.Equal(t, []string{"x"}, meta.Novel.Tags)
	assert.Empty(t, meta.Novel.CoverUrl)
	assert.Equal(t, []ChapterRef{{Id: "c1", Title: "One", Order: 1}, {Id: "c2", Title: "Two", Order: 2}}, meta.Chapters)
}
