package publisher

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"novel-reader/utils"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NovelEntryFile is where the library entry is written next to the tree.
// The operator appends its contents to novels/novels.json.
const NovelEntryFile = "novel-entry.json"

var (
	ErrMissingNovelId = errors.New("novel id is required to place files")
	ErrInvalidId      = errors.New("id cannot be used as a file name")
)

// File is one serialized document and its path relative to the site root.
type File struct {
	Path    string
	Content []byte
}

// Files serializes the whole draft into the paths the reader fetches from.
func (d *Draft) Files() ([]File, error) {
	if d.Novel.Id == "" {
		return nil, ErrMissingNovelId
	}
	if err := checkSegment(d.Novel.Id); err != nil {
		return nil, err
	}
	for _, chapter := range d.Chapters {
		if err := checkSegment(chapter.Id); err != nil {
			return nil, err
		}
	}
	for _, id := range d.DuplicateChapterIds() {
		slog.Warn("duplicate chapter id, later chapter overwrites earlier", slog.String("novel", d.Novel.Id), slog.String("chapter", id))
	}
	for _, mismatch := range d.OrderMismatches() {
		slog.Warn("chapter order disagrees with position", slog.String("novel", d.Novel.Id), slog.String("detail", mismatch.String()))
	}

	files := make([]File, 0, len(d.Chapters)+2)

	entry, err := d.SerializeNovelEntry()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize novel entry: %w", err)
	}
	files = append(files, File{Path: NovelEntryFile, Content: entry})

	meta, err := d.SerializeMetadata()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize metadata: %w", err)
	}
	files = append(files, File{Path: path.Join("novels", d.Novel.Id, "meta.json"), Content: meta})

	for _, chapter := range d.Chapters {
		content, err := d.SerializeChapter(chapter)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize chapter %v: %w", chapter.Id, err)
		}
		files = append(files, File{Path: path.Join("novels", d.Novel.Id, chapter.Id+".json"), Content: content})
	}

	return files, nil
}

// checkSegment rejects ids that would not land in their own file under
// novels/{novelId}/.
func checkSegment(id string) error {
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidId, id)
	}
	return nil
}

// Export writes every file under dir and returns the written paths.
func (d *Draft) Export(dir string) ([]string, error) {
	files, err := d.Files()
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		fullPath := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(fullPath, f.Content, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %v: %w", f.Path, err)
		}
		written = append(written, fullPath)
	}
	return written, nil
}

// Bundle writes every file into a zip archive at savePath.
func (d *Draft) Bundle(savePath string) error {
	entries, err := d.zipEntries()
	if err != nil {
		return err
	}
	return utils.WriteZip(savePath, entries)
}

// BundleTo streams the zip archive into w.
func (d *Draft) BundleTo(w io.Writer) error {
	entries, err := d.zipEntries()
	if err != nil {
		return err
	}
	return utils.WriteZipTo(w, entries)
}

// BundleName is the default archive file name for the draft.
func (d *Draft) BundleName() string {
	name := utils.CleanFileName(d.Novel.Id)
	if name == "" {
		name = "novel"
	}
	return name + ".zip"
}

func (d *Draft) zipEntries() ([]utils.ZipEntry, error) {
	files, err := d.Files()
	if err != nil {
		return nil, err
	}
	entries := make([]utils.ZipEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, utils.ZipEntry{Path: f.Path, Content: f.Content})
	}
	return entries, nil
}
