// Package netx contains plain-HTTP helpers for working with signed
// object URLs outside the SDK.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DownloadFromSignedURL fetches the object behind a signed GET URL and
// streams the body into w. It returns the number of bytes written.
func DownloadFromSignedURL(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	return io.Copy(w, resp.Body)
}
