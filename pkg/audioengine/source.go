package audioengine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"playbar/pkg/spec"
)

var httpClient = &http.Client{Timeout: spec.FetchTimeout}

// IsRemote true jika sumber berupa URL http(s).
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch membaca resource audio utuh ke memori, baik dari URL maupun file lokal.
// Satu kali fetch dipakai bersama oleh element playback dan analisa offline.
func Fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("sumber audio kosong")
	}

	if !IsRemote(src) {
		return os.ReadFile(src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http error: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
