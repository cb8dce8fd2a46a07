package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp"
)

// DecodePayload accepts an inline image payload in either raw-binary or
// base64-encoded form and returns the raw bytes. Generation responses are not
// consistent about which form they use, so both are accepted transparently.
// Data-URL prefixes ("data:image/png;base64,") are stripped before decoding.
func DecodePayload(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("imaging: empty payload")
	}
	if looksLikeImage(data) {
		return data, nil
	}
	text := strings.TrimSpace(string(data))
	if idx := strings.IndexByte(text, ','); idx >= 0 && strings.HasPrefix(text, "data:") {
		text = text[idx+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("imaging: payload is neither a known image format nor base64: %w", err)
	}
	if !looksLikeImage(decoded) {
		return nil, fmt.Errorf("imaging: decoded payload is not a known image format")
	}
	return decoded, nil
}

// ToPNG decodes the raw image bytes (png, jpeg, gif, or webp) and re-encodes
// them as PNG. PNG input is returned unchanged.
func ToPNG(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, pngMagic) {
		return data, nil
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode image: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imaging: encode png (from %s): %w", format, err)
	}
	return buf.Bytes(), nil
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func looksLikeImage(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return true
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}): // jpeg
		return true
	case bytes.HasPrefix(data, []byte("GIF8")):
		return true
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return true
	}
	return false
}
