package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/deemkeen/crownconsole/util"
)

// AvatarFetcher downloads player heads and renders them as half-block art.
// Rendered heads are cached per id and size for the life of the process.
type AvatarFetcher struct {
	base       string
	httpClient HTTPClient
	timeout    time.Duration

	mu    sync.Mutex
	cache map[string]string
}

func NewAvatarFetcher(base string, httpClient HTTPClient) *AvatarFetcher {
	if httpClient == nil {
		httpClient = NewDefaultHTTPClient()
	}
	return &AvatarFetcher{
		base:       base,
		httpClient: httpClient,
		timeout:    5 * time.Second,
		cache:      make(map[string]string),
	}
}

// Avatar returns the head for id drawn in cols x rows cells.
func (f *AvatarFetcher) Avatar(ctx context.Context, id string, cols, rows int) (string, error) {
	if id == "" {
		id = util.DefaultSkin
	}
	key := fmt.Sprintf("%s/%dx%d", id, cols, rows)

	f.mu.Lock()
	art, ok := f.cache[key]
	f.mu.Unlock()
	if ok {
		return art, nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, util.AvatarURL(f.base, id, 64), nil)
	if err != nil {
		return "", err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: avatar %s: %w", ErrTransport, id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{StatusCode: resp.StatusCode, Method: http.MethodGet, Path: "/avatar/" + id}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: avatar %s: %w", ErrTransport, id, err)
	}
	img, err := util.DecodeAvatar(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	art = util.RenderHalfBlocks(img, cols, rows)

	f.mu.Lock()
	f.cache[key] = art
	f.mu.Unlock()
	return art, nil
}
