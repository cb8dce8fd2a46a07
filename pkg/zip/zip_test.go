package zip

import (
	stdzip "archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssetsRoundTrip(t *testing.T) {
	archive := ArchiveAssets([]Asset{
		{Filename: "shoot_001_apparel.png", MIME: "image/png", Data: []byte("one")},
		{Filename: "shoot_002_accessory.png", MIME: "image/png", Data: []byte("two")},
	})
	if len(archive) == 0 {
		t.Fatal("ArchiveAssets returned empty archive")
	}

	reader, err := stdzip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("archive has %d entries, want 2", len(reader.File))
	}
	rc, err := reader.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if string(data) != "one" {
		t.Fatalf("entry content = %q, want %q", data, "one")
	}
}

func TestArchiveAssetsEmptyInput(t *testing.T) {
	archive := ArchiveAssets(nil)
	reader, err := stdzip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open empty archive: %v", err)
	}
	if len(reader.File) != 0 {
		t.Fatalf("empty archive has %d entries", len(reader.File))
	}
}
