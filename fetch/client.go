package fetch

import (
	"context"
	"encoding/json"
	"log/slog"
	"novel-reader/model"
	"novel-reader/utils"

	"github.com/go-resty/resty/v2"
)

const (
	libraryIndexPath  = "/novels/novels.json"
	novelMetadataPath = "/novels/{novelId}/meta.json"
	chapterPath       = "/novels/{novelId}/{chapterId}.json"
)

// Client fetches published documents from a static file tree rooted at a
// base URL. It implements model.Source.
type Client struct {
	restyClient *resty.Client
	logger      *slog.Logger
}

var _ model.Source = (*Client)(nil)

func New(baseUrl string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		restyClient: utils.NewRestyClient(baseUrl, logger),
		logger:      logger,
	}
}

// BaseURL returns the root every document path is resolved against.
func (c *Client) BaseURL() string {
	return c.restyClient.BaseURL
}

func (c *Client) FetchLibraryIndex(ctx context.Context) ([]model.Novel, error) {
	novels := make([]model.Novel, 0)
	if err := c.get(ctx, LibraryIndex, libraryIndexPath, nil, &novels); err != nil {
		return nil, err
	}
	return novels, nil
}

func (c *Client) FetchNovelMetadata(ctx context.Context, novelId string) (*model.NovelMetadata, error) {
	meta := &model.NovelMetadata{}
	params := map[string]string{"novelId": novelId}
	if err := c.get(ctx, NovelMetadata, novelMetadataPath, params, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (c *Client) FetchChapter(ctx context.Context, novelId string, chapterId string) (*model.Chapter, error) {
	chapter := &model.Chapter{}
	params := map[string]string{"novelId": novelId, "chapterId": chapterId}
	if err := c.get(ctx, Chapter, chapterPath, params, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (c *Client) Library(ctx context.Context) ([]model.Novel, error) {
	return c.FetchLibraryIndex(ctx)
}

func (c *Client) NovelMetadata(ctx context.Context, novelId string) (*model.NovelMetadata, error) {
	return c.FetchNovelMetadata(ctx, novelId)
}

func (c *Client) Chapter(ctx context.Context, novelId string, chapterId string) (*model.Chapter, error) {
	return c.FetchChapter(ctx, novelId, chapterId)
}

func (c *Client) get(ctx context.Context, kind ResourceKind, path string, params map[string]string, out any) error {
	req := c.restyClient.R().SetContext(ctx)
	if params != nil {
		req.SetPathParams(params)
	}
	resp, err := req.Get(path)
	if err != nil {
		c.logger.Warn("fetch failed", slog.String("resource", kind.String()), slog.Any("error", err))
		return &FetchError{Kind: kind, Err: err}
	}
	if !resp.IsSuccess() {
		c.logger.Warn("fetch failed",
			slog.String("resource", kind.String()),
			slog.String("url", resp.Request.URL),
			slog.Int("status", resp.StatusCode()),
		)
		return &FetchError{Kind: kind, StatusCode: resp.StatusCode(), Status: resp.Status()}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		c.logger.Warn("malformed document", slog.String("resource", kind.String()), slog.Any("error", err))
		return &ParseError{Kind: kind, Err: err}
	}
	return nil
}
