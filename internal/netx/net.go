// Package netx holds small HTTP helpers that sit outside the directory API
// client, such as fetching avatar images.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTooLarge is returned when a download exceeds its size limit.
var ErrTooLarge = errors.New("response body too large")

// Download GETs url and copies at most limit bytes of a 200 body into w.
// It returns the response Content-Type. A limit <= 0 means no limit.
func Download(ctx context.Context, client *http.Client, url string, w io.Writer, limit int64) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body := io.Reader(resp.Body)
	if limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	n, err := io.Copy(w, body)
	if err != nil {
		return "", err
	}
	if limit > 0 && n > limit {
		return "", ErrTooLarge
	}
	return resp.Header.Get("Content-Type"), nil
}
