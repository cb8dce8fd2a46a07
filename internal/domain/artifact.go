package domain

import "time"

// GeneratedArtifact is a finished shot: the prompt that produced it and the
// normalized PNG bytes. Ownership passes to the gallery store on save.
type GeneratedArtifact struct {
	Prompt    string
	Image     Image
	CreatedAt time.Time
}

// AssetCategory partitions reusable reference assets.
type AssetCategory string

const (
	AssetCategoryCloset   AssetCategory = "closet"
	AssetCategoryLocation AssetCategory = "location"
)

// GalleryCategory partitions generated results.
type GalleryCategory string

const (
	GalleryCategoryApparel   GalleryCategory = "apparel"
	GalleryCategoryAccessory GalleryCategory = "accessory"
)

// ModelProfile is a reusable model with split face/body references. ImageKey
// holds the legacy single photo for profiles created before the split.
type ModelProfile struct {
	ID        string
	UserID    string
	Name      string
	FaceKey   string
	BodyKey   string
	ImageKey  string
	CreatedAt time.Time
}

// StoredAsset is a named apparel or location reference image.
type StoredAsset struct {
	ID        string
	UserID    string
	Category  AssetCategory
	Name      string
	ImageKey  string
	CreatedAt time.Time
}

// GalleryItem is a persisted generation result.
type GalleryItem struct {
	ID        string
	UserID    string
	Category  GalleryCategory
	Prompt    string
	ImageKey  string
	CreatedAt time.Time
}
