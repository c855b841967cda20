package publisher

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"novel-reader/fetch"
	"novel-reader/model"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleDraft() *Draft {
	d := New()
	d.SetClock(fixedClock(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)))
	d.UpdateNovelField("id", "my-novel")
	d.UpdateNovelField("title", "My Novel")
	d.UpdateNovelField("author", "Jane Doe")
	d.UpdateNovelField("description", "A story.")
	d.UpdateNovelField("tags", "fantasy, adventure")
	d.UpdateChapterField(0, "content", "<p>Once upon a time & more</p>")
	d.AddChapter()
	d.UpdateChapterField(1, "title", "The Road")
	return d
}

func TestNew_Defaults(t *testing.T) {
	d := New()
	require.Len(t, d.Chapters, 1)
	assert.Equal(t, model.Chapter{Id: "chapter-1", Title: "Chapter 1", Order: 1}, d.Chapters[0])
	assert.Equal(t, []string{}, d.Novel.Tags)
}

func TestDraft_AddChapter(t *testing.T) {
	d := New()
	d.AddChapter()
	d.AddChapter()

	require.Len(t, d.Chapters, 3)
	assert.Equal(t, model.Chapter{Id: "chapter-3", Title: "Chapter 3", Order: 3}, d.Chapters[2])
}

func TestDraft_RemoveChapterKeepsNumbering(t *testing.T) {
	d := New()
	d.AddChapter()
	d.AddChapter()

	require.NoError(t, d.RemoveChapter(0))
	require.Len(t, d.Chapters, 2)
	assert.Equal(t, "chapter-2", d.Chapters[0].Id)
	assert.Equal(t, 2, d.Chapters[0].Order)
	assert.Equal(t, 3, d.Chapters[1].Order)
	assert.Len(t, d.OrderMismatches(), 2)

	d.AddChapter()
	assert.Equal(t, "chapter-3", d.Chapters[2].Id, "new ids derive from the count, so they can collide")

	err := d.RemoveChapter(7)
	assert.True(t, errors.Is(err, ErrNoChapter))
}

func TestDraft_Renumber(t *testing.T) {
	d := New()
	d.AddChapter()
	d.AddChapter()
	require.NoError(t, d.RemoveChapter(1))

	d.Renumber()
	assert.Empty(t, d.OrderMismatches())
	assert.Equal(t, "chapter-3", d.Chapters[1].Id)
	assert.Equal(t, 2, d.Chapters[1].Order)
}

func TestDraft_UpdateFields(t *testing.T) {
	d := New()
	require.NoError(t, d.UpdateNovelField("coverUrl", "https://img/cover.png"))
	require.NoError(t, d.UpdateNovelField("tags", " a, ,b "))
	assert.Equal(t, []string{"a", "b"}, d.Novel.Tags)
	assert.Equal(t, "https://img/cover.png", d.Novel.CoverUrl)

	require.NoError(t, d.UpdateChapterField(0, "order", " 7 "))
	assert.Equal(t, 7, d.Chapters[0].Order)

	assert.True(t, errors.Is(d.UpdateNovelField("rating", "5"), ErrUnknownField))
	assert.True(t, errors.Is(d.UpdateChapterField(0, "novelId", "x"), ErrUnknownField))
	assert.True(t, errors.Is(d.UpdateChapterField(3, "title", "x"), ErrNoChapter))
	assert.Error(t, d.UpdateChapterField(0, "order", "seven"))
}

func TestDraft_SerializeNovelEntry(t *testing.T) {
	d := sampleDraft()

	data, err := d.SerializeNovelEntry()
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "my-novel", fields["id"])
	assert.Equal(t, "2024-05-01T12:30:00.000Z", fields["createdAt"])
	assert.Equal(t, "2024-05-01T12:30:00.000Z", fields["updatedAt"])
	assert.Equal(t, float64(2), fields["chapterCount"])
	assert.Equal(t, []any{"fantasy", "adventure"}, fields["tags"])
	assert.Contains(t, string(data), "\n  \"title\": \"My Novel\"")
}

func TestDraft_SerializeNovelEntryOnlyTimestampsChange(t *testing.T) {
	d := sampleDraft()
	first, err := d.SerializeNovelEntry()
	require.NoError(t, err)

	d.SetClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	second, err := d.SerializeNovelEntry()
	require.NoError(t, err)
	assert.NotEqual(t, string(first), string(second))

	var a, b model.Novel
	require.NoError(t, json.Unmarshal(first, &a))
	require.NoError(t, json.Unmarshal(second, &b))
	assert.Equal(t, "2025-01-01T00:00:00.000Z", b.UpdatedAt)
	a.CreatedAt, a.UpdatedAt = "", ""
	b.CreatedAt, b.UpdatedAt = "", ""
	assert.Equal(t, a, b)
}

func TestDraft_EmptyDraftSerializesWithoutValidation(t *testing.T) {
	d := &Draft{}
	data, err := d.SerializeMetadata()
	require.NoError(t, err)

	var meta model.NovelMetadata
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "", meta.Novel.Id)
	assert.Equal(t, 0, meta.Novel.ChapterCount)
	assert.Empty(t, meta.Chapters)
}

func TestDraft_SerializeChapter(t *testing.T) {
	d := sampleDraft()

	data, err := d.SerializeChapter(d.Chapters[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "<p>Once upon a time & more</p>", "markup is not escaped")

	var chapter model.Chapter
	require.NoError(t, json.Unmarshal(data, &chapter))
	assert.Equal(t, model.Chapter{
		Id:        "chapter-1",
		NovelId:   "my-novel",
		Title:     "Chapter 1",
		Content:   "<p>Once upon a time & more</p>",
		Order:     1,
		CreatedAt: "2024-05-01T12:30:00.000Z",
	}, chapter)
	assert.Empty(t, d.Chapters[0].NovelId, "the draft itself is not modified")
}

func TestDraft_MetadataRoundTripsThroughFetchClient(t *testing.T) {
	d := sampleDraft()
	data, err := d.SerializeMetadata()
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/novels/my-novel/meta.json" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer server.Close()

	meta, err := fetch.New(server.URL, nil).FetchNovelMetadata(context.Background(), "my-novel")
	require.NoError(t, err)

	expected := d.Metadata()
	assert.Equal(t, expected.Novel, meta.Novel)
	assert.Equal(t, expected.Chapters, meta.Chapters)
	assert.Equal(t, []model.ChapterRef{
		{Id: "chapter-1", Title: "Chapter 1", Order: 1},
		{Id: "chapter-2", Title: "The Road", Order: 2},
	}, meta.Chapters)
}

func TestDraft_Export(t *testing.T) {
	d := sampleDraft()
	dir := t.TempDir()

	written, err := d.Export(dir)
	require.NoError(t, err)
	assert.Len(t, written, 4)

	for _, rel := range []string{"novel-entry.json", "novels/my-novel/meta.json", "novels/my-novel/chapter-1.json", "novels/my-novel/chapter-2.json"} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}

	data, err := os.ReadFile(filepath.Join(dir, "novels", "my-novel", "chapter-2.json"))
	require.NoError(t, err)
	var chapter model.Chapter
	require.NoError(t, json.Unmarshal(data, &chapter))
	assert.Equal(t, "The Road", chapter.Title)
}

func TestDraft_ExportNeedsNovelId(t *testing.T) {
	d := New()
	_, err := d.Export(t.TempDir())
	assert.True(t, errors.Is(err, ErrMissingNovelId))
}

func TestDraft_ExportRejectsEscapingIds(t *testing.T) {
	d := sampleDraft()
	require.NoError(t, d.UpdateChapterField(0, "id", "../../etc/passwd"))
	_, err := d.Files()
	assert.Error(t, err)
}

func TestDraft_DuplicateChapterIdsWarn(t *testing.T) {
	d := sampleDraft()
	require.NoError(t, d.RemoveChapter(0))
	d.AddChapter()
	require.Equal(t, "chapter-2", d.Chapters[0].Id)
	require.Equal(t, "chapter-2", d.Chapters[1].Id)
	assert.Equal(t, []string{"chapter-2"}, d.DuplicateChapterIds())
	assert.Empty(t, sampleDraft().DuplicateChapterIds())

	logs := &bytes.Buffer{}
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	files, err := d.Files()
	require.NoError(t, err)
	assert.Len(t, files, 4)
	assert.Contains(t, logs.String(), "duplicate chapter id")
	assert.Contains(t, logs.String(), "chapter=chapter-2")
}

func TestDraft_BundleTo(t *testing.T) {
	d := sampleDraft()
	buf := &bytes.Buffer{}
	require.NoError(t, d.BundleTo(buf))

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	names := make([]string, 0)
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"novel-entry.json", "novels/my-novel/meta.json", "novels/my-novel/chapter-1.json", "novels/my-novel/chapter-2.json"}, names)
	assert.Equal(t, "my-novel.zip", d.BundleName())
	assert.Equal(t, "novel.zip", New().BundleName())
}

func TestDraft_SaveAndLoad(t *testing.T) {
	d := sampleDraft()
	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, d.SaveDraft(path))

	loaded, err := LoadDraft(path)
	require.NoError(t, err)
	assert.Equal(t, d.Novel, loaded.Novel)
	assert.Equal(t, d.Chapters, loaded.Chapters)
}

func TestReadDraft_EmptyInput(t *testing.T) {
	d, err := ReadDraft(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Len(t, d.Chapters, 1)
}

func TestReadDraft_HandWritten(t *testing.T) {
	doc := `
novel:
  id: hand
  title: Hand Written
  tags: [a, b]
chapters:
  - id: prologue
    title: Prologue
    order: 1
    content: |
      <p>First line</p>
`
	d, err := ReadDraft(bytes.NewReader([]byte(doc)))
	require.NoError(t, err)
	assert.Equal(t, "hand", d.Novel.Id)
	assert.Equal(t, []string{"a", "b"}, d.Novel.Tags)
	require.Len(t, d.Chapters, 1)
	assert.Equal(t, "<p>First line</p>\n", d.Chapters[0].Content)
}
