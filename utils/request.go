package utils

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
)

const UserAgent = "novel-reader/1.0 (+https://github.com/novel-reader)"

// NewRestyClient builds the client every document fetch goes through.
// Retries and timeouts are left at resty's defaults (none); callers bound
// requests with their context.
func NewRestyClient(baseUrl string, logger *slog.Logger) *resty.Client {
	if logger == nil {
		logger = slog.Default()
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseUrl, "/"))
	client.SetLogger(slogLogger{logger: logger})
	client.SetHeader("Accept", "application/json")
	client.SetHeader("Accept-Charset", "utf-8")
	client.SetHeader("User-Agent", UserAgent)
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("fetched document",
			slog.String("url", resp.Request.URL),
			slog.Int("status", resp.StatusCode()),
			slog.Duration("took", resp.Time()),
		)
		return nil
	})
	return client
}

// slogLogger routes resty's internal messages into slog.
type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l slogLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l slogLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
