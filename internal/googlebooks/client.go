package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/bookshelf-service/internal/config"
)

const maxResults = 40

var yearPrefix = regexp.MustCompile(`^\d{4}`)

// SearchResult is the normalized shape for an external volume hit,
// independent of the upstream response layout.
type SearchResult struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Synopsis string `json:"synopsis,omitempty"`
	Year     int    `json:"year,omitempty"`
	Pages    int    `json:"pages,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
	Language string `json:"language,omitempty"`
}

// Client queries the Google Books volumes API.
type Client struct {
	httpClient        *http.Client
	apiKey            string
	baseURL           string
	preferredLanguage string
	logger            *zap.Logger
}

// NewClient builds a client from config.
func NewClient(cfg config.GoogleBooksConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:        &http.Client{Timeout: cfg.RequestTimeout()},
		apiKey:            cfg.APIKey,
		baseURL:           cfg.BaseURL,
		preferredLanguage: cfg.PreferredLanguage,
		logger:            logger,
	}
}

// Search queries volumes matching title and/or author and returns normalized
// results ranked by preferred language, then exact title match.
func (c *Client) Search(ctx context.Context, title, author string) ([]SearchResult, error) {
	query := buildQuery(title, author)
	if query == "" {
		return []SearchResult{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("printType", "books")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books responded with status %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode google books response: %w", err)
	}

	results := make([]SearchResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.VolumeInfo == nil {
			continue
		}
		results = append(results, normalizeVolume(item.VolumeInfo))
	}

	c.rank(results, title)
	c.logger.Debug("external search completed",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)
	return results, nil
}

func buildQuery(title, author string) string {
	var parts []string
	if strings.TrimSpace(title) != "" {
		parts = append(parts, strings.TrimSpace(title))
	}
	if strings.TrimSpace(author) != "" {
		parts = append(parts, "inauthor:"+strings.TrimSpace(author))
	}
	return strings.Join(parts, " ")
}

// rank orders preferred-language hits first, exact title matches next.
func (c *Client) rank(results []SearchResult, title string) {
	sort.SliceStable(results, func(i, j int) bool {
		return c.score(results[i], title) < c.score(results[j], title)
	})
}

func (c *Client) score(result SearchResult, title string) int {
	score := 0
	if !strings.EqualFold(result.Language, c.preferredLanguage) {
		score += 2
	}
	if title == "" || !strings.EqualFold(result.Title, title) {
		score++
	}
	return score
}

func normalizeVolume(info *volumeInfo) SearchResult {
	result := SearchResult{
		Title:    info.Title,
		Synopsis: info.Description,
		Pages:    info.PageCount,
		Language: info.Language,
	}
	if result.Title == "" {
		result.Title = "Untitled"
	}
	if len(info.Authors) > 0 {
		result.Author = strings.Join(info.Authors, ", ")
	} else {
		result.Author = "Unknown author"
	}
	if match := yearPrefix.FindString(info.PublishedDate); match != "" {
		if year, err := strconv.Atoi(match); err == nil {
			result.Year = year
		}
	}
	if info.ImageLinks != nil && info.ImageLinks.Thumbnail != "" {
		result.CoverURL = cleanThumbnailURL(info.ImageLinks.Thumbnail)
	}
	return result
}

// cleanThumbnailURL upgrades the zoom level and drops the page-curl effect.
func cleanThumbnailURL(raw string) string {
	cleaned := strings.ReplaceAll(raw, "&zoom=1", "&zoom=0")
	return strings.ReplaceAll(cleaned, "&edge=curl", "")
}

// Upstream response shapes; unknown fields are ignored by the decoder.
type volumesResponse struct {
	Items []volumeItem `json:"items"`
}

type volumeItem struct {
	VolumeInfo *volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         string      `json:"title"`
	Authors       []string    `json:"authors"`
	Description   string      `json:"description"`
	PublishedDate string      `json:"publishedDate"`
	PageCount     int         `json:"pageCount"`
	Language      string      `json:"language"`
	ImageLinks    *imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	Thumbnail string `json:"thumbnail"`
}
