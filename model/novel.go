package model

// Novel is one entry of the library index and the head of a novel's
// metadata manifest.
type Novel struct {
	Id           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Author       string   `json:"author" yaml:"author"`
	Description  string   `json:"description" yaml:"description"`
	CoverUrl     string   `json:"coverUrl,omitempty" yaml:"coverUrl,omitempty"`
	Tags         []string `json:"tags" yaml:"tags"`
	CreatedAt    string   `json:"createdAt" yaml:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt" yaml:"updatedAt,omitempty"`
	ChapterCount int      `json:"chapterCount" yaml:"chapterCount,omitempty"`
}

// ChapterRef is a chapter's entry in the metadata manifest. Its position in
// NovelMetadata.Chapters is the reading order; Order is informational.
type ChapterRef struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

type NovelMetadata struct {
	Novel    Novel        `json:"novel"`
	Chapters []ChapterRef `json:"chapters"`
}

type Chapter struct {
	Id        string `json:"id" yaml:"id"`
	NovelId   string `json:"novelId" yaml:"novelId,omitempty"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	Order     int    `json:"order" yaml:"order"`
	CreatedAt string `json:"createdAt" yaml:"createdAt,omitempty"`
}
