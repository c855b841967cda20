package reader

import "context"

// Session couples a Navigator with a History, the way a router does: a
// redirect replaces the current entry instead of pushing one, so back and
// forward never land on the chapter-less route.
type Session struct {
	navigator *Navigator
	history   *History
}

func NewSession(navigator *Navigator, history *History) *Session {
	if history == nil {
		history = NewHistory()
	}
	return &Session{navigator: navigator, history: history}
}

func (s *Session) History() *History {
	return s.history
}

func (s *Session) Navigator() *Navigator {
	return s.navigator
}

// Open pushes target and resolves it.
func (s *Session) Open(ctx context.Context, target Target) Snapshot {
	s.history.Push(target)
	return s.resolve(ctx, target)
}

func (s *Session) Back(ctx context.Context) (Snapshot, bool) {
	target, ok := s.history.Back()
	if !ok {
		return s.navigator.Current(), false
	}
	return s.resolve(ctx, target), true
}

func (s *Session) Forward(ctx context.Context) (Snapshot, bool) {
	target, ok := s.history.Forward()
	if !ok {
		return s.navigator.Current(), false
	}
	return s.resolve(ctx, target), true
}

// Next opens the chapter after the current one, if there is one.
func (s *Session) Next(ctx context.Context) (Snapshot, bool) {
	current := s.navigator.Current()
	next := current.Next()
	if next == nil {
		return current, false
	}
	return s.Open(ctx, Target{NovelId: current.Target.NovelId, ChapterId: next.Id}), true
}

// Prev opens the chapter before the current one, if there is one.
func (s *Session) Prev(ctx context.Context) (Snapshot, bool) {
	current := s.navigator.Current()
	prev := current.Prev()
	if prev == nil {
		return current, false
	}
	return s.Open(ctx, Target{NovelId: current.Target.NovelId, ChapterId: prev.Id}), true
}

func (s *Session) resolve(ctx context.Context, target Target) Snapshot {
	snap := s.navigator.Navigate(ctx, target)
	if snap.State != Redirecting || snap.Stale {
		return snap
	}
	s.history.Replace(*snap.Redirect)
	return s.navigator.Navigate(ctx, *snap.Redirect)
}
