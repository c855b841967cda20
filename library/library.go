// Package library lists every published novel from the library index.
package library

import (
	"context"
	"fmt"
	"net/url"
	"novel-reader/model"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Card is the summary shown for one novel.
type Card struct {
	Id       string
	Title    string
	Author   string
	Tags     []string
	CoverUrl string
}

func (c Card) HasCover() bool {
	return c.CoverUrl != ""
}

// Link is the reader route for the novel; the reader redirects it to the
// first chapter.
func (c Card) Link() string {
	return "/read/" + url.PathEscape(c.Id)
}

func cardFrom(novel model.Novel) Card {
	return Card{
		Id:       novel.Id,
		Title:    novel.Title,
		Author:   novel.Author,
		Tags:     novel.Tags,
		CoverUrl: novel.CoverUrl,
	}
}

// View holds the state of one library page.
type View struct {
	source   model.Source
	state    State
	cards    []Card
	err      error
	onChange func(State)
}

func New(source model.Source) *View {
	return &View{source: source}
}

// OnChange registers fn to be called after every state transition.
func (v *View) OnChange(fn func(State)) {
	v.onChange = fn
}

// Load fetches the index once and renders one card per novel in index
// order. The returned error is also kept for ErrorMessage.
func (v *View) Load(ctx context.Context) error {
	v.cards = nil
	v.err = nil
	v.set(Loading)

	novels, err := v.source.Library(ctx)
	if err != nil {
		v.err = err
		v.set(Errored)
		return err
	}

	cards := make([]Card, 0, len(novels))
	for _, novel := range novels {
		cards = append(cards, cardFrom(novel))
	}
	v.cards = cards
	v.set(Ready)
	return nil
}

func (v *View) set(state State) {
	v.state = state
	if v.onChange != nil {
		v.onChange(state)
	}
}

func (v *View) State() State {
	return v.state
}

func (v *View) Cards() []Card {
	return v.cards
}

func (v *View) Err() error {
	return v.err
}

// ErrorMessage is the raw error text shown in place of the cards.
func (v *View) ErrorMessage() string {
	if v.err == nil {
		return ""
	}
	return v.err.Error()
}
