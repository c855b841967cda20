package reader

import "novel-reader/model"

// Links returns the manifest entries adjacent to chapterId by array
// position. The order field is ignored. Either result is nil at the ends of
// the list, and both are nil when chapterId is not listed.
func Links(meta *model.NovelMetadata, chapterId string) (prev *model.ChapterRef, next *model.ChapterRef) {
	if meta == nil {
		return nil, nil
	}
	i := meta.IndexOf(chapterId)
	if i < 0 {
		return nil, nil
	}
	if i > 0 {
		prev = &meta.Chapters[i-1]
	}
	if i < len(meta.Chapters)-1 {
		next = &meta.Chapters[i+1]
	}
	return prev, next
}
