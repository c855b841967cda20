package publisher

import (
	"bytes"
	"encoding/json"
	"novel-reader/model"
)

// NovelEntry is the novel as it appears in the library index, freshly
// stamped and with chapterCount taken from the draft.
func (d *Draft) NovelEntry() model.Novel {
	novel := d.Novel
	if novel.Tags == nil {
		novel.Tags = []string{}
	} else {
		novel.Tags = append([]string(nil), novel.Tags...)
	}
	now := d.stamp()
	novel.CreatedAt = now
	novel.UpdatedAt = now
	novel.ChapterCount = len(d.Chapters)
	return novel
}

// Metadata is the manifest document for the draft.
func (d *Draft) Metadata() model.NovelMetadata {
	return model.NovelMetadata{
		Novel:    d.NovelEntry(),
		Chapters: d.chapterRefs(),
	}
}

// ChapterDocument is chapter with the draft's novel id and a fresh createdAt.
func (d *Draft) ChapterDocument(chapter model.Chapter) model.Chapter {
	chapter.NovelId = d.Novel.Id
	chapter.CreatedAt = d.stamp()
	return chapter
}

// SerializeNovelEntry renders the entry to append by hand to novels/novels.json.
func (d *Draft) SerializeNovelEntry() ([]byte, error) {
	return marshal(d.NovelEntry())
}

// SerializeMetadata renders novels/{id}/meta.json.
func (d *Draft) SerializeMetadata() ([]byte, error) {
	return marshal(d.Metadata())
}

// SerializeChapter renders novels/{novelId}/{chapterId}.json.
func (d *Draft) SerializeChapter(chapter model.Chapter) ([]byte, error) {
	return marshal(d.ChapterDocument(chapter))
}

// marshal indents with two spaces and leaves markup unescaped, so chapter
// content stays readable in the published file.
func marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
