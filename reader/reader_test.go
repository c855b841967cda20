package reader

import (
	"context"
	"errors"
	"fmt"
	"novel-reader/fetch"
	"novel-reader/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu           sync.Mutex
	metadata     map[string]*model.NovelMetadata
	chapters     map[string]*model.Chapter
	metaCalls    int
	chapterCalls int
	// gate, when set for a chapter id, blocks that chapter fetch until closed.
	gate map[string]chan struct{}
	// metaGate does the same for a novel's metadata fetch.
	metaGate map[string]chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		metadata: make(map[string]*model.NovelMetadata),
		chapters: make(map[string]*model.Chapter),
		gate:     make(map[string]chan struct{}),
		metaGate: make(map[string]chan struct{}),
	}
}

func (f *fakeSource) addNovel(novelId string, chapterIds ...string) {
	meta := &model.NovelMetadata{Novel: model.Novel{Id: novelId}}
	for i, id := range chapterIds {
		meta.Chapters = append(meta.Chapters, model.ChapterRef{Id: id, Title: "Title " + id, Order: i + 1})
		f.chapters[novelId+"/"+id] = &model.Chapter{Id: id, NovelId: novelId, Title: "Title " + id, Content: "<p>" + id + "</p>", Order: i + 1}
	}
	f.metadata[novelId] = meta
}

func (f *fakeSource) Library(ctx context.Context) ([]model.Novel, error) {
	return nil, errors.New("unexpected call")
}

func (f *fakeSource) NovelMetadata(ctx context.Context, novelId string) (*model.NovelMetadata, error) {
	f.mu.Lock()
	f.metaCalls++
	gate := f.metaGate[novelId]
	meta, ok := f.metadata[novelId]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if !ok {
		return nil, &fetch.FetchError{Kind: fetch.NovelMetadata, StatusCode: 404, Status: "404 Not Found"}
	}
	return meta, nil
}

func (f *fakeSource) Chapter(ctx context.Context, novelId string, chapterId string) (*model.Chapter, error) {
	f.mu.Lock()
	f.chapterCalls++
	gate := f.gate[chapterId]
	chapter, ok := f.chapters[novelId+"/"+chapterId]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if !ok {
		return nil, &fetch.FetchError{Kind: fetch.Chapter, StatusCode: 404, Status: "404 Not Found"}
	}
	return chapter, nil
}

func TestSession_RedirectsToFirstChapterOnce(t *testing.T) {
	source := newFakeSource()
	source.addNovel("n1", "c1", "c2", "c3")
	session := NewSession(NewNavigator(source, nil), nil)

	var states []State
	session.Navigator().OnChange(func(s Snapshot) { states = append(states, s.State) })

	snap := session.Open(context.Background(), Target{NovelId: "n1"})
	require.Equal(t, Ready, snap.State)
	assert.Equal(t, "c1", snap.Chapter.Id)
	assert.Equal(t, Target{NovelId: "n1", ChapterId: "c1"}, snap.Target)
	assert.Equal(t, []State{Loading, Redirecting, Loading, Ready}, states)

	assert.Equal(t, 1, session.History().Len(), "redirect must not push a history entry")
	current, ok := session.History().Current()
	require.True(t, ok)
	assert.Equal(t, Target{NovelId: "n1", ChapterId: "c1"}, current)
	assert.Equal(t, 2, source.metaCalls)
	assert.Equal(t, 1, source.chapterCalls)
}

func TestNavigator_RedirectSnapshot(t *testing.T) {
	source := newFakeSource()
	source.addNovel("n1", "first", "second")
	navigator := NewNavigator(source, nil)

	snap := navigator.Navigate(context.Background(), Target{NovelId: "n1"})
	assert.Equal(t, Redirecting, snap.State)
	require.NotNil(t, snap.Redirect)
	assert.Equal(t, "/read/n1/first", snap.Redirect.Path())
	assert.Equal(t, 0, source.chapterCalls)
	assert.Equal(t, LoadingMessage, snap.Message())
}

func TestNavigator_EmptyChapterListIsNotFound(t *testing.T) {
	source := newFakeSource()
	source.addNovel("empty")
	session := NewSession(NewNavigator(source, nil), nil)

	snap := session.Open(context.Background(), Target{NovelId: "empty"})
	assert.Equal(t, NotFound, snap.State)
	assert.Nil(t, snap.Redirect)
	assert.True(t, errors.Is(snap.Err, ErrNotFound))
	assert.Equal(t, NotFoundMessage, snap.Message())
	assert.Equal(t, 1, source.metaCalls)
	assert.Equal(t, 0, source.chapterCalls)
}

func TestNavigator_MetadataFailureIsErrored(t *testing.T) {
	source := newFakeSource()
	navigator := NewNavigator(source, nil)

	snap := navigator.Navigate(context.Background(), Target{NovelId: "missing", ChapterId: "c1"})
	assert.Equal(t, Errored, snap.State)
	assert.True(t, errors.Is(snap.Err, fetch.ErrUnavailable))
	assert.Equal(t, NotFoundMessage, snap.Message())
	assert.Equal(t, 0, source.chapterCalls)
}

func TestNavigator_ChapterNotFoundDoesNotRetry(t *testing.T) {
	source := newFakeSource()
	source.addNovel("n1", "c1")
	navigator := NewNavigator(source, nil)

	snap := navigator.Navigate(context.Background(), Target{NovelId: "n1", ChapterId: "gone"})
	assert.Equal(t, Errored, snap.State)

	var fetchErr *fetch.FetchError
	require.True(t, errors.As(snap.Err, &fetchErr))
	assert.Equal(t, 404, fetchErr.StatusCode)
	assert.Equal(t, 1, source.chapterCalls)
	assert.Equal(t, Errored, navigator.Current().State)
}

func TestNavigator_UnlistedChapterIsNotFound(t *testing.T) {
	source := newFakeSource()
	source.addNovel("n1", "c1")
	source.chapters["n1/extra"] = &model.Chapter{Id: "extra", NovelId: "n1"}
	navigator := NewNavigator(source, nil)

	snap := navigator.Navigate(context.Background(), Target{NovelId: "n1", ChapterId: "extra"})
	assert.Equal(t, NotFound, snap.State)
	assert.True(t, errors.Is(snap.Err, ErrNotFound))
	assert.Nil(t, snap.Prev())
	assert.Nil(t, snap.Next())
}

func TestNavigator_LastChapterLinks(t *testing.T) {
	source := newFakeSource()
	source.addNovel("n1", "c1", "c2")
	navigator := NewNavigator(source, nil)

	snap := navigator.Navigate(context.Background(), Target{NovelId: "n1", ChapterId: "c2"})
	require.Equal(t, Ready, snap.State)
	require.NotNil(t, snap.Prev())
	assert.Equal(t, "c1", snap.Prev().Id)
	assert.Nil(t, snap.Next())
}

func TestLinks_EveryPosition(t *testing.T) {
	for n := 1; n <= 5; n++ {
		meta := &model.NovelMetadata{}
		for i := 0; i < n; i++ {
			meta.Chapters = append(meta.Chapters, model.ChapterRef{Id: fmt.Sprintf("c%d", i), Order: i + 1})
		}
		for i := 0; i < n; i++ {
			prev, next := Links(meta, fmt.Sprintf("c%d", i))
			if i > 0 {
				require.NotNil(t, prev, "n=%d i=%d", n, i)
				assert.Equal(t, fmt.Sprintf("c%d", i-1), prev.Id)
			} else {
				assert.Nil(t, prev, "n=%d i=%d", n, i)
			}
			if i < n-1 {
				require.NotNil(t, next, "n=%d i=%d", n, i)
				assert.Equal(t, fmt.Sprintf("c%d", i+1), next.Id)
			} else {
				assert.Nil(t, next, "n=%d i=%d", n, i)
			}
		}
	}
}

func TestLinks_PositionWinsOverOrder(t *testing.T) {
	meta := &model.NovelMetadata{Chapters: []model.ChapterRef{
		{Id: "a", Order: 3},
		{Id: "b", Order: 1},
		{Id: "c", Order: 2},
	}}

	prev, next := Links(meta, "b")
	assert.Equal(t, "a", prev.Id)
	assert.Equal(t, "c", next.Id)

	prev, next = Links(meta, "missing")
	assert.Nil(t, prev)
	assert.Nil(t, next)
	prev, next = Links(nil, "a")
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestNavigator_DiscardsStaleResponse(t *testing.T) {
	source := newFakeSource()
	source.addNovel("n1", "slow", "fast")
	gate := make(chan struct{})
	source.gate["slow"] = gate
	navigator := NewNavigator(source, nil)

	slowDone := make(chan Snapshot)
	go func() {
		slowDone <- navigator.Navigate(context.Background(), Target{NovelId: "n1", ChapterId: "slow"})
	}()

	// Wait until the slow chapter fetch is in flight.
	require.Eventually(t, func() bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.chapterCalls == 1
	}, time.Second, time.Millisecond)

	fast := navigator.Navigate(context.Background(), Target{NovelId: "n1", ChapterId: "fast"})
	require.Equal(t, Ready, fast.State)
	assert.False(t, fast.Stale)

	close(gate)
	slow := <-slowDone
	assert.True(t, slow.Stale)
	assert.Equal(t, "slow", slow.Chapter.Id)

	current := navigator.Current()
	assert.Equal(t, Ready, current.State)
	assert.Equal(t, "fast", current.Chapter.Id)
}

func TestNavigator_FirstChapterWithoutIdIsNotFound(t *testing.T) {
	source := newFakeSource()
	source.metadata["n1"] = &model.NovelMetadata{
		Novel:    model.Novel{Id: "n1"},
		Chapters: []model.ChapterRef{{Id: "", Title: "Untitled", Order: 1}},
	}
	session := NewSession(NewNavigator(source, nil), nil)

	snap := session.Open(context.Background(), Target{NovelId: "n1"})
	assert.Equal(t, NotFound, snap.State)
	assert.Nil(t, snap.Redirect)
	assert.True(t, errors.Is(snap.Err, ErrNotFound))
	assert.Equal(t, 1, source.metaCalls)
	assert.Equal(t, 0, source.chapterCalls)
}

func TestNavigator_DiscardsStaleRedirect(t *testing.T) {
	source := newFakeSource()
	source.addNovel("n1", "c1")
	source.addNovel("n2", "c1")
	gate := make(chan struct{})
	source.metaGate["n1"] = gate
	navigator := NewNavigator(source, nil)

	slowDone := make(chan Snapshot)
	go func() {
		slowDone <- navigator.Navigate(context.Background(), Target{NovelId: "n1"})
	}()

	require.Eventually(t, func() bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.metaCalls == 1
	}, time.Second, time.Millisecond)

	fast := navigator.Navigate(context.Background(), Target{NovelId: "n2", ChapterId: "c1"})
	require.Equal(t, Ready, fast.State)

	close(gate)
	slow := <-slowDone
	assert.True(t, slow.Stale)
	assert.Equal(t, Redirecting, slow.State)

	current := navigator.Current()
	assert.Equal(t, Ready, current.State)
	assert.Equal(t, "n2", current.Target.NovelId)
}

func TestNavigator_StaleMetadataSkipsChapterFetch(t *testing.T) {
	source := newFakeSource()
	source.addNovel("n1", "c1")
	source.addNovel("n2", "c1")
	gate := make(chan struct{})
	source.metaGate["n1"] = gate
	navigator := NewNavigator(source, nil)

	var mu sync.Mutex
	var notified []Snapshot
	navigator.OnChange(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		notified = append(notified, snap)
	})

	slowDone := make(chan Snapshot)
	go func() {
		slowDone <- navigator.Navigate(context.Background(), Target{NovelId: "n1", ChapterId: "c1"})
	}()

	require.Eventually(t, func() bool {
		source.mu.Lock()
		defer source.mu.Unlock()
		return source.metaCalls == 1
	}, time.Second, time.Millisecond)

	fast := navigator.Navigate(context.Background(), Target{NovelId: "n2", ChapterId: "c1"})
	require.Equal(t, Ready, fast.State)

	close(gate)
	slow := <-slowDone
	assert.True(t, slow.Stale)
	assert.Nil(t, slow.Chapter)
	assert.Equal(t, 1, source.chapterCalls, "only the current navigation fetches its chapter")

	mu.Lock()
	defer mu.Unlock()
	last := notified[len(notified)-1]
	assert.Equal(t, "n2", last.Target.NovelId)
	assert.Equal(t, Ready, last.State)
}

func TestSession_NextPrevAndHistory(t *testing.T) {
	source := newFakeSource()
	source.addNovel("n1", "c1", "c2", "c3")
	session := NewSession(NewNavigator(source, nil), nil)
	ctx := context.Background()

	session.Open(ctx, Target{NovelId: "n1"})
	snap, ok := session.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, "c2", snap.Chapter.Id)
	snap, ok = session.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, "c3", snap.Chapter.Id)
	_, ok = session.Next(ctx)
	assert.False(t, ok, "no wrap-around at the end")

	snap, ok = session.Back(ctx)
	require.True(t, ok)
	assert.Equal(t, "c2", snap.Chapter.Id)
	snap, ok = session.Back(ctx)
	require.True(t, ok)
	assert.Equal(t, "c1", snap.Chapter.Id)
	_, ok = session.Back(ctx)
	assert.False(t, ok, "the redirected entry is the first one")

	snap, ok = session.Forward(ctx)
	require.True(t, ok)
	assert.Equal(t, "c2", snap.Chapter.Id)

	snap, ok = session.Prev(ctx)
	require.True(t, ok)
	assert.Equal(t, "c1", snap.Chapter.Id)
	_, ok = session.Prev(ctx)
	assert.False(t, ok)
	_, ok = session.Forward(ctx)
	assert.False(t, ok, "opening a chapter drops forward entries")
}

func TestHistory_ReplaceOnEmpty(t *testing.T) {
	history := NewHistory()
	_, ok := history.Current()
	assert.False(t, ok)

	history.Replace(Target{NovelId: "n"})
	assert.Equal(t, 1, history.Len())
	history.Replace(Target{NovelId: "n", ChapterId: "c"})
	assert.Equal(t, 1, history.Len())
	current, _ := history.Current()
	assert.Equal(t, "c", current.ChapterId)
}

func TestTarget_Path(t *testing.T) {
	assert.Equal(t, "/read/n1", Target{NovelId: "n1"}.Path())
	assert.Equal(t, "/read/n1/c%201", Target{NovelId: "n1", ChapterId: "c 1"}.Path())
}

func TestPreferences_FontSizeClamped(t *testing.T) {
	prefs := DefaultPreferences()
	assert.Equal(t, 18, prefs.FontSize)

	for i := 0; i < 20; i++ {
		prefs.DecreaseFont()
	}
	assert.Equal(t, MinFontSize, prefs.FontSize)

	for i := 0; i < 20; i++ {
		prefs.IncreaseFont()
	}
	assert.Equal(t, MaxFontSize, prefs.FontSize)

	assert.Equal(t, 14, ClampFontSize(3))
	assert.Equal(t, 32, ClampFontSize(99))
	assert.Equal(t, 20, ClampFontSize(20))

	assert.False(t, prefs.ShowSettings)
	prefs.ToggleSettings()
	assert.True(t, prefs.ShowSettings)
}
