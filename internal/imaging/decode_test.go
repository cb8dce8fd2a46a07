package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePayloadRawAndBase64AreIdentical(t *testing.T) {
	raw := encodePNG(t)

	fromRaw, err := DecodePayload(raw)
	if err != nil {
		t.Fatalf("DecodePayload(raw) returned error: %v", err)
	}
	fromB64, err := DecodePayload([]byte(base64.StdEncoding.EncodeToString(raw)))
	if err != nil {
		t.Fatalf("DecodePayload(base64) returned error: %v", err)
	}
	if !bytes.Equal(fromRaw, fromB64) {
		t.Fatal("raw and base64 forms decoded to different bytes")
	}
	if !bytes.Equal(fromRaw, raw) {
		t.Fatal("decoded bytes differ from the original payload")
	}
}

func TestDecodePayloadStripsDataURLPrefix(t *testing.T) {
	raw := encodePNG(t)
	payload := []byte("data:image/png;base64," + base64.StdEncoding.EncodeToString(raw))
	decoded, err := DecodePayload(payload)
	if err != nil {
		t.Fatalf("DecodePayload returned error: %v", err)
	}
	if !bytes.Equal(decoded, raw) {
		t.Fatal("data-URL payload did not decode to the original bytes")
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	if _, err := DecodePayload([]byte("definitely not an image ###")); err == nil {
		t.Fatal("DecodePayload accepted garbage input")
	}
	if _, err := DecodePayload(nil); err == nil {
		t.Fatal("DecodePayload accepted empty input")
	}
}

func TestToPNGPassesThroughPNG(t *testing.T) {
	raw := encodePNG(t)
	out, err := ToPNG(raw)
	if err != nil {
		t.Fatalf("ToPNG returned error: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Fatal("PNG input was re-encoded")
	}
}

func TestToPNGConvertsJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	out, err := ToPNG(buf.Bytes())
	if err != nil {
		t.Fatalf("ToPNG returned error: %v", err)
	}
	if !bytes.HasPrefix(out, pngMagic) {
		t.Fatal("converted output is not PNG")
	}
}
