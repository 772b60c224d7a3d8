package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const defaultLogoTimeout = 5 * time.Second

// loadLogo fetches and scales the restaurant logo to fit the header box.
// It never fails: an empty reference, a dead URL, a timeout, or an
// undecodable payload all degrade to a transparent 1x1 placeholder so
// the receipt still renders.
func loadLogo(ctx context.Context, ref string, client *http.Client, timeout time.Duration) image.Image {
	if ref == "" {
		return placeholderLogo()
	}

	img, err := fetchLogo(ctx, ref, client, timeout)
	if err != nil {
		return placeholderLogo()
	}
	return imaging.Fit(img, int(logoBox), int(logoBox), imaging.Lanczos)
}

func fetchLogo(ctx context.Context, ref string, client *http.Client, timeout time.Duration) (image.Image, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		if timeout <= 0 {
			timeout = defaultLogoTimeout
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch logo: HTTP %d", resp.StatusCode)
		}

		img, _, err := image.Decode(resp.Body)
		return img, err
	}

	// Local path.
	f, err := os.Open(ref)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

func placeholderLogo() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.Transparent)
	return img
}
