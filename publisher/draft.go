// Package publisher is the authoring side: an editable draft of one novel
// and its chapters, serialized into the exact documents the reader fetches.
//
// Nothing is validated before serialization. A draft with empty fields is
// exported as-is.
package publisher

import (
	"errors"
	"fmt"
	"novel-reader/model"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrNoChapter    = errors.New("no chapter at index")
)

// Draft is an in-memory, possibly incomplete novel and its chapters.
type Draft struct {
	Novel    model.Novel     `yaml:"novel"`
	Chapters []model.Chapter `yaml:"chapters"`

	now func() time.Time
}

// New returns a draft with an empty novel and a single first chapter.
func New() *Draft {
	d := &Draft{
		Novel: model.Novel{Tags: []string{}},
	}
	d.AddChapter()
	return d
}

// SetClock replaces the time source used to stamp serialized documents.
func (d *Draft) SetClock(now func() time.Time) {
	d.now = now
}

func (d *Draft) stamp() string {
	now := time.Now
	if d.now != nil {
		now = d.now
	}
	return now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// AddChapter appends chapter-{n+1} with order n+1. Existing chapters are
// not renumbered.
func (d *Draft) AddChapter() {
	n := len(d.Chapters) + 1
	d.Chapters = append(d.Chapters, model.Chapter{
		Id:    fmt.Sprintf("chapter-%d", n),
		Title: fmt.Sprintf("Chapter %d", n),
		Order: n,
	})
}

// RemoveChapter deletes the chapter at index. Later chapters keep their
// ids and order values, so gaps can appear; see Renumber.
func (d *Draft) RemoveChapter(index int) error {
	if index < 0 || index >= len(d.Chapters) {
		return fmt.Errorf("%w %d", ErrNoChapter, index)
	}
	d.Chapters = append(d.Chapters[:index], d.Chapters[index+1:]...)
	return nil
}

// Renumber sets every chapter's order to its position+1. Ids are kept.
// It only runs when the author asks for it.
func (d *Draft) Renumber() {
	for i := range d.Chapters {
		d.Chapters[i].Order = i + 1
	}
}

// OrderMismatches reports chapters whose order disagrees with their position.
func (d *Draft) OrderMismatches() []model.OrderMismatch {
	return model.CheckOrder(d.chapterRefs())
}

// DuplicateChapterIds lists each chapter id used by more than one chapter,
// in first-seen order. Exporting such a draft keeps only the last chapter
// for each of them.
func (d *Draft) DuplicateChapterIds() []string {
	seen := make(map[string]int, len(d.Chapters))
	var dups []string
	for _, chapter := range d.Chapters {
		seen[chapter.Id]++
		if seen[chapter.Id] == 2 {
			dups = append(dups, chapter.Id)
		}
	}
	return dups
}

// UpdateNovelField sets one editable novel field by its JSON name. Tags
// take a comma-separated list.
func (d *Draft) UpdateNovelField(field string, value string) error {
	switch field {
	case "id":
		d.Novel.Id = value
	case "title":
		d.Novel.Title = value
	case "author":
		d.Novel.Author = value
	case "description":
		d.Novel.Description = value
	case "coverUrl":
		d.Novel.CoverUrl = value
	case "tags":
		d.Novel.Tags = splitTags(value)
	default:
		return fmt.Errorf("%w %q for novel", ErrUnknownField, field)
	}
	return nil
}

// UpdateChapterField sets one chapter field by its JSON name.
func (d *Draft) UpdateChapterField(index int, field string, value string) error {
	if index < 0 || index >= len(d.Chapters) {
		return fmt.Errorf("%w %d", ErrNoChapter, index)
	}
	chapter := &d.Chapters[index]
	switch field {
	case "id":
		chapter.Id = value
	case "title":
		chapter.Title = value
	case "content":
		chapter.Content = value
	case "order":
		order, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("failed to parse order: %w", err)
		}
		chapter.Order = order
	default:
		return fmt.Errorf("%w %q for chapter", ErrUnknownField, field)
	}
	return nil
}

func splitTags(value string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(value, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (d *Draft) chapterRefs() []model.ChapterRef {
	refs := make([]model.ChapterRef, 0, len(d.Chapters))
	for _, c := range d.Chapters {
		refs = append(refs, model.ChapterRef{Id: c.Id, Title: c.Title, Order: c.Order})
	}
	return refs
}
