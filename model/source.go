package model

import "context"

// Source retrieves the three published document kinds.
type Source interface {
	Library(ctx context.Context) ([]Novel, error)
	NovelMetadata(ctx context.Context, novelId string) (*NovelMetadata, error)
	Chapter(ctx context.Context, novelId string, chapterId string) (*Chapter, error)
}
