package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"novel-reader/library"
	"novel-reader/publisher"
	"novel-reader/reader"
	"novel-reader/template"
	"novel-reader/theme"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

const maxDraftBytes = 10 << 20

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	view := library.New(s.source)
	status := http.StatusOK
	if err := view.Load(r.Context()); err != nil {
		s.logger.Error("failed to load library", slog.Any("error", err))
		status = http.StatusBadGateway
	}
	s.render(w, r, status, template.LibraryPage(view))
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	target := reader.Target{
		NovelId:   pathParam(r, "novelId"),
		ChapterId: pathParam(r, "chapterId"),
	}
	prefs := preferencesFrom(r.URL.Query())

	navigator := reader.NewNavigator(s.source, s.logger)
	snap := navigator.Navigate(r.Context(), target)

	switch snap.State {
	case reader.Redirecting:
		location := snap.Redirect.Path()
		if r.URL.RawQuery != "" {
			location += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, location, http.StatusFound)
	case reader.Ready:
		content := snap.Chapter.Content
		if s.sanitizer != nil {
			content = s.sanitizer.Sanitize(content)
		}
		s.render(w, r, http.StatusOK, template.ReaderPage(snap, prefs, content))
	default:
		s.render(w, r, http.StatusNotFound, template.ReaderPage(snap, prefs, ""))
	}
}

func (s *Server) handlePublisher(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, template.PublisherPage())
}

// handleBundle turns a YAML draft, sent either as the "draft" form field or
// as the raw body, into a zip of the files to publish.
func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDraftBytes)

	var source io.Reader
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") || strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		source = strings.NewReader(r.FormValue("draft"))
	} else {
		source = r.Body
	}

	draft, err := publisher.ReadDraft(source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	buf := &bytes.Buffer{}
	if err := draft.BundleTo(buf); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, publisher.ErrMissingNovelId) || errors.Is(err, publisher.ErrInvalidId) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", draft.BundleName()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleTheme advances the theme cookie and sends the browser back.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	next := theme.FromContext(r.Context()).Next()
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    string(next),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	back := r.FormValue("back")
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	buf := &bytes.Buffer{}
	if err := c.Render(r.Context(), buf); err != nil {
		s.logger.Error("failed to render page", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// pathParam returns a decoded route segment. chi matches on RawPath when the
// request carries one, so only then is the segment still escaped.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

func preferencesFrom(query url.Values) reader.Preferences {
	prefs := reader.DefaultPreferences()
	if fs, err := strconv.Atoi(query.Get("fs")); err == nil {
		prefs.FontSize = reader.ClampFontSize(fs)
	}
	prefs.ShowSettings = query.Get("settings") == "1"
	return prefs
}
