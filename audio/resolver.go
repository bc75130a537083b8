package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DiskResolver turns a public share link into a direct download URL using the
// cloud disk "public resources" API.
type DiskResolver struct {
	baseURL string
	client  *http.Client
}

// NewDiskResolver creates a resolver for the Yandex Disk public API at baseURL.
func NewDiskResolver(baseURL string, client *http.Client) *DiskResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &DiskResolver{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type downloadLink struct {
	Href   string `json:"href"`
	Method string `json:"method"`
}

// Resolve turns a public link into a direct download href.
func (r *DiskResolver) Resolve(ctx context.Context, link string) (string, error) {
	u := r.baseURL + "/v1/disk/public/resources/download?" + url.Values{"public_key": {link}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("resolve link: http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var dl downloadLink
	if err := json.NewDecoder(resp.Body).Decode(&dl); err != nil {
		return "", fmt.Errorf("decode resolve response: %w", err)
	}
	if dl.Href == "" {
		return "", fmt.Errorf("resolve link: response has no href")
	}
	return dl.Href, nil
}
