package extract

import "github.com/RiverChu0/TikTokDownloader/internal/tree"

// Shape is the structural classification of a content item. It decides
// which download/cover extraction rules apply.
type Shape uint8

const (
	// ShapeVideo is the exhaustive fallback: a single playable video.
	ShapeVideo Shape = iota
	// ShapeImageSetA is an image gallery carrying a top-level "images"
	// sequence (Douyin layout).
	ShapeImageSetA
	// ShapeImageSetB is an image gallery carrying an "image_post_info"
	// structure (TikTok layout).
	ShapeImageSetB
)

// String returns the shape name for logging.
func (s Shape) String() string {
	switch s {
	case ShapeImageSetA:
		return "image-set-a"
	case ShapeImageSetB:
		return "image-set-b"
	default:
		return "video"
	}
}

// classify decides the shape of one item. Priority is fixed: a
// non-empty "images" sequence wins over "image_post_info", which wins
// over the video fallback. Some records structurally satisfy both
// gallery triggers; the A-before-B order is a behavioral contract.
func classify(item tree.Node) Shape {
	if !tree.Resolve(item, "images").IsAbsent() {
		return ShapeImageSetA
	}
	if !tree.Resolve(item, "image_post_info").IsAbsent() {
		return ShapeImageSetB
	}
	return ShapeVideo
}
