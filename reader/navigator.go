// Package reader resolves a (novel, chapter) navigation target into the
// documents needed to show one chapter, and derives the links around it.
package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"novel-reader/model"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound reports well-formed documents that still do not resolve to a
// readable chapter: an empty chapter list, or a chapter the manifest does
// not list.
var ErrNotFound = errors.New("chapter not found")

type State int

const (
	Idle State = iota
	Loading
	Redirecting
	Ready
	NotFound
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Redirecting:
		return "redirecting"
	case Ready:
		return "ready"
	case NotFound:
		return "not found"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Target is a reader route. An empty ChapterId means "start of the novel".
type Target struct {
	NovelId   string
	ChapterId string
}

// Path is the route for the target, e.g. /read/my-novel/chapter-1.
func (t Target) Path() string {
	if t.ChapterId == "" {
		return "/read/" + url.PathEscape(t.NovelId)
	}
	return "/read/" + url.PathEscape(t.NovelId) + "/" + url.PathEscape(t.ChapterId)
}

// Snapshot is the outcome of one navigation attempt.
type Snapshot struct {
	Target   Target
	State    State
	Metadata *model.NovelMetadata
	Chapter  *model.Chapter
	// Redirect is set in the Redirecting state.
	Redirect *Target
	Err      error
	// Stale is set when the result arrived after a newer navigation began;
	// such snapshots were never applied.
	Stale bool
}

// Prev returns the chapter before the current one, or nil.
func (s Snapshot) Prev() *model.ChapterRef {
	if s.State != Ready {
		return nil
	}
	prev, _ := Links(s.Metadata, s.Chapter.Id)
	return prev
}

// Next returns the chapter after the current one, or nil.
func (s Snapshot) Next() *model.ChapterRef {
	if s.State != Ready {
		return nil
	}
	_, next := Links(s.Metadata, s.Chapter.Id)
	return next
}

const (
	LoadingMessage  = "Loading chapter..."
	NotFoundMessage = "Chapter not found."
)

// Message is the terminal text shown instead of content, if any.
func (s Snapshot) Message() string {
	switch s.State {
	case Loading, Redirecting:
		return LoadingMessage
	case NotFound, Errored:
		return NotFoundMessage
	default:
		return ""
	}
}

// Navigator owns the state of one reading session. Navigate may be called
// from several goroutines; only the most recent call's result is applied.
type Navigator struct {
	id       uuid.UUID
	source   model.Source
	logger   *slog.Logger
	onChange func(Snapshot)

	mu      sync.Mutex
	gen     uint64
	current Snapshot
}

func NewNavigator(source model.Source, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Navigator{
		id:     id,
		source: source,
		logger: logger.With(slog.String("session", id.String())),
	}
}

func (n *Navigator) Id() uuid.UUID {
	return n.id
}

// OnChange registers fn to be called with every applied snapshot.
func (n *Navigator) OnChange(fn func(Snapshot)) {
	n.onChange = fn
}

// Current returns the last applied snapshot.
func (n *Navigator) Current() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate runs one attempt: metadata first, then the chapter. Without a
// chapter id it stops at Redirecting and leaves replacing the route to the
// caller. Failures are terminal for the attempt and never retried.
func (n *Navigator) Navigate(ctx context.Context, target Target) Snapshot {
	gen := n.begin(target)

	meta, err := n.source.NovelMetadata(ctx, target.NovelId)
	if err != nil {
		n.logger.Error("failed to load novel metadata", slog.String("novel", target.NovelId), slog.Any("error", err))
		return n.finish(gen, Snapshot{Target: target, State: Errored, Err: err})
	}
	for _, mismatch := range meta.OrderMismatches() {
		n.logger.Warn("chapter order disagrees with position", slog.String("novel", target.NovelId), slog.String("detail", mismatch.String()))
	}

	if target.ChapterId == "" {
		if len(meta.Chapters) == 0 {
			err := fmt.Errorf("%w: novel %q has no chapters", ErrNotFound, target.NovelId)
			return n.finish(gen, Snapshot{Target: target, State: NotFound, Metadata: meta, Err: err})
		}
		if meta.Chapters[0].Id == "" {
			// Redirecting to an empty id would land on this same route again.
			err := fmt.Errorf("%w: first chapter of novel %q has no id", ErrNotFound, target.NovelId)
			return n.finish(gen, Snapshot{Target: target, State: NotFound, Metadata: meta, Err: err})
		}
		redirect := Target{NovelId: target.NovelId, ChapterId: meta.Chapters[0].Id}
		return n.finish(gen, Snapshot{Target: target, State: Redirecting, Metadata: meta, Redirect: &redirect})
	}

	if n.stale(gen) {
		return n.discard(gen, Snapshot{Target: target, State: Loading, Metadata: meta})
	}

	chapter, err := n.source.Chapter(ctx, target.NovelId, target.ChapterId)
	if err != nil {
		n.logger.Error("failed to load chapter",
			slog.String("novel", target.NovelId),
			slog.String("chapter", target.ChapterId),
			slog.Any("error", err),
		)
		return n.finish(gen, Snapshot{Target: target, State: Errored, Metadata: meta, Err: err})
	}
	if meta.IndexOf(chapter.Id) < 0 {
		err := fmt.Errorf("%w: %q is not listed in novel %q", ErrNotFound, chapter.Id, target.NovelId)
		return n.finish(gen, Snapshot{Target: target, State: NotFound, Metadata: meta, Chapter: chapter, Err: err})
	}

	return n.finish(gen, Snapshot{Target: target, State: Ready, Metadata: meta, Chapter: chapter})
}

func (n *Navigator) begin(target Target) uint64 {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.current = Snapshot{Target: target, State: Loading}
	snap := n.current
	n.mu.Unlock()

	n.logger.Debug("navigating", slog.String("path", target.Path()))
	n.notify(snap)
	return gen
}

func (n *Navigator) stale(gen uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return gen != n.gen
}

func (n *Navigator) finish(gen uint64, snap Snapshot) Snapshot {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return n.discard(gen, snap)
	}
	n.current = snap
	n.mu.Unlock()

	n.logger.Debug("navigation settled", slog.String("path", snap.Target.Path()), slog.String("state", snap.State.String()))
	n.notify(snap)
	return snap
}

func (n *Navigator) discard(gen uint64, snap Snapshot) Snapshot {
	n.logger.Debug("discarding stale response", slog.String("path", snap.Target.Path()), slog.Uint64("generation", gen))
	snap.Stale = true
	return snap
}

func (n *Navigator) notify(snap Snapshot) {
	if n.onChange != nil {
		n.onChange(snap)
	}
}
