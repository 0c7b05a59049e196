package workshop

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const detailsPath = "/ISteamRemoteStorage/GetPublishedFileDetails/v1/"

// Fetcher 是 service 依赖的接口, 方便测试替换
type Fetcher interface {
	GetDetails(ctx context.Context, ids []string) ([]Details, error)
}

type Client struct {
	client *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("User-Agent", "pokerjest/workshopTitleTool/1.0 (https://github.com/pokerjest/workshopTitleTool)"),
	}
}

func (c *Client) SetProxy(proxyURL string) {
	if proxyURL != "" {
		c.client.SetProxy(proxyURL)
	}
}

// GetDetails 批量查询条目详情, 查不到的条目直接跳过
func (c *Client) GetDetails(ctx context.Context, ids []string) ([]Details, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	form := map[string]string{
		"itemcount": strconv.Itoa(len(ids)),
	}
	for i, id := range ids {
		form[fmt.Sprintf("publishedfileids[%d]", i)] = id
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(form).
		Post(detailsPath)
	if err != nil {
		return nil, fmt.Errorf("workshop request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("workshop request failed: %s", resp.Status())
	}

	var body publishedFileDetailsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode workshop response: %w", err)
	}

	result := make([]Details, 0, len(body.Response.PublishedFileDetails))
	for _, d := range body.Response.PublishedFileDetails {
		if d.Result != resultOK {
			continue
		}
		var updated time.Time
		if d.TimeUpdated > 0 {
			updated = time.Unix(d.TimeUpdated, 0).UTC()
		}
		result = append(result, Details{
			WorkshopID:  d.PublishedFileID,
			Title:       d.Title,
			TimeUpdated: updated,
		})
	}
	return result, nil
}
