package renderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const dataURLPrefix = "data:image/png;base64,"

// DecodeDataURL decodes a rendered data URL back into an image, for
// callers that feed the result into the print pipeline.
func DecodeDataURL(dataURL string) (image.Image, error) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return nil, fmt.Errorf("unexpected data URL format")
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, dataURLPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}
	return img, nil
}
