// Package capture는 소셜 포스트 URL에서 콘텐츠를 추출한다.
// 우선 syndication API를 시도하고, 실패하면 페이지를 직접 받아
// 본문 텍스트를 추출하는 폴백을 사용한다.
package capture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"glana/internal/httpclient"
	"glana/internal/logger"
)

const (
	defaultSyndicationBaseURL = "https://cdn.syndication.twimg.com"
	captureUserAgent          = "Mozilla/5.0 (compatible; Glana/1.0)"

	// syndication 폴백 시 페이지 응답 바디의 최대 크기 (4MB)
	maxPageBodySize = 4 << 20
)

var (
	ErrInvalidPostURL = errors.New("capture: URL does not contain a post id")
	ErrEmptyContent   = errors.New("capture: no content could be extracted")
)

var statusIDPattern = regexp.MustCompile(`status/(\d+)`)

// ExternalIDFromURL는 포스트 상태 URL에서 숫자 ID를 추출한다.
// 예: https://x.com/user/status/1234567890 -> "1234567890"
func ExternalIDFromURL(postURL string) (string, error) {
	m := statusIDPattern.FindStringSubmatch(postURL)
	if m == nil {
		return "", ErrInvalidPostURL
	}
	return m[1], nil
}

// Post는 URL 캡처로 얻은 포스트 데이터다.
type Post struct {
	ExternalID        string
	SourceURL         string
	AuthorHandle      string
	AuthorDisplayName string
	Content           string
}

// syndicationResponse는 syndication API 응답에서 필요한 필드만 매핑한다.
type syndicationResponse struct {
	Text string `json:"text"`
	User struct {
		ScreenName string `json:"screen_name"`
		Name       string `json:"name"`
	} `json:"user"`
}

// Client는 syndication API 클라이언트와 폴백용 페이지 클라이언트를 묶는다.
type Client struct {
	syndication *httpclient.BaseClient
	page        *http.Client
}

// NewClient는 기본 syndication 엔드포인트를 사용하는 Client를 생성한다.
func NewClient() *Client {
	return NewClientWith(nil, defaultSyndicationBaseURL)
}

// NewClientWith는 주어진 http.Client와 syndication base URL을 사용하는 Client를 생성한다.
// httpClient가 nil이면 기본 클라이언트를 사용한다. 테스트에서 base URL 교체용.
func NewClientWith(httpClient *http.Client, syndicationBaseURL string) *Client {
	if httpClient == nil {
		httpClient = httpclient.NewDefault()
	}
	return &Client{
		syndication: httpclient.NewBaseClientWithClient(httpClient, syndicationBaseURL),
		page:        httpClient,
	}
}

// FromURL는 포스트 URL에서 ID를 추출하고 콘텐츠를 가져온다.
// syndication API가 실패하거나 빈 텍스트를 반환하면 페이지를 직접 받아
// readability/trafilatura로 본문을 추출한다.
func (c *Client) FromURL(ctx context.Context, postURL string) (Post, error) {
	externalID, err := ExternalIDFromURL(postURL)
	if err != nil {
		return Post{}, err
	}

	post, synErr := c.fetchSyndication(ctx, externalID, postURL)
	if synErr == nil {
		return post, nil
	}
	logger.DebugWithFields("syndication fetch failed, falling back to page extraction", logger.Fields{
		"external_id": externalID,
		"error":       synErr.Error(),
	})

	post, pageErr := c.fetchPage(ctx, externalID, postURL)
	if pageErr != nil {
		return Post{}, fmt.Errorf("capture: syndication failed (%v), page fallback failed: %w", synErr, pageErr)
	}
	return post, nil
}

func (c *Client) fetchSyndication(ctx context.Context, externalID, postURL string) (Post, error) {
	query := url.Values{}
	query.Set("id", externalID)
	query.Set("token", "0")

	req, err := c.syndication.NewRequest(ctx, http.MethodGet, "/tweet-result", query, nil)
	if err != nil {
		return Post{}, err
	}
	req.Header.Set("User-Agent", captureUserAgent)

	resp, err := c.syndication.Do(req)
	if err != nil {
		return Post{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Post{}, fmt.Errorf("syndication API returned status %d", resp.StatusCode)
	}

	var data syndicationResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Post{}, fmt.Errorf("decode syndication response: %w", err)
	}
	if strings.TrimSpace(data.Text) == "" {
		return Post{}, ErrEmptyContent
	}

	handle := data.User.ScreenName
	if handle == "" {
		handle = "unknown"
	}
	return Post{
		ExternalID:        externalID,
		SourceURL:         postURL,
		AuthorHandle:      handle,
		AuthorDisplayName: data.User.Name,
		Content:           data.Text,
	}, nil
}

func (c *Client) fetchPage(ctx context.Context, externalID, postURL string) (Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, postURL, nil)
	if err != nil {
		return Post{}, err
	}
	req.Header.Set("User-Agent", captureUserAgent)

	resp, err := c.page.Do(req)
	if err != nil {
		return Post{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Post{}, fmt.Errorf("page fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBodySize))
	if err != nil {
		return Post{}, err
	}

	text, err := ExtractText(string(body))
	if err != nil {
		return Post{}, ErrEmptyContent
	}
	return Post{
		ExternalID:   externalID,
		SourceURL:    postURL,
		AuthorHandle: "unknown",
		Content:      text,
	}, nil
}
