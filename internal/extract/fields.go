package extract

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RiverChu0/TikTokDownloader/internal/tree"
)

const (
	// shortDescLimit is the platform truncation boundary: desc fields
	// at or past this length are cut off server-side, so the shareable
	// long description is used instead.
	shortDescLimit = 107

	// deactivatedNickname stands in for authors whose account is gone.
	deactivatedNickname = "deactivated account"

	// invalidNickname stands in for nicknames the cleaner rejects.
	invalidNickname = "invalid nickname"
)

// Output values for the record "type" field.
const (
	typeVideo    = "video"
	typeImageSet = "image-set"
)

// extractWorksInfo fills identity, description, creation time, and the
// shape-specific download/cover fields.
func (e *Extractor) extractWorksInfo(rec Record, data tree.Node) {
	id := tree.ResolveString(data, "aweme_id", "")
	rec["id"] = id

	desc := e.cleanDescription(e.description(data))
	if desc == "" {
		desc = id
	}
	rec["desc"] = desc

	rec["create_time"] = e.formatDate(data)
	rec["create_timestamp"] = resolveRaw(data, "create_time")

	e.classifyWorks(rec, data)
}

// description picks the short desc when it fits under the platform
// truncation boundary, otherwise reconstructs it from the shareable
// long description: drop the leading two-space-delimited prefix,
// truncate at the "  %s" template marker, and normalize "# " to "#".
func (e *Extractor) description(data tree.Node) string {
	desc := tree.ResolveString(data, "desc", "")
	if desc != "" && utf8.RuneCountInString(desc) < shortDescLimit {
		return desc
	}

	long := tree.ResolveString(data, "share_info.share_link_desc", "")
	if _, after, found := strings.Cut(long, "  "); found {
		long = after
	}
	long, _, _ = strings.Cut(long, "  %s")
	return strings.ReplaceAll(long, "# ", "#")
}

// cleanDescription passes a description through the text cleaner.
func (e *Extractor) cleanDescription(desc string) string {
	return e.clean.ClearSpaces(e.clean.Filter(desc))
}

// formatDate renders the item's creation epoch with the configured
// layout. A missing or zero epoch falls back to the current time.
func (e *Extractor) formatDate(data tree.Node) string {
	ts := tree.ResolveInt(data, "create_time", 0)
	t := e.now()
	if ts != 0 {
		t = time.Unix(ts, 0)
	}
	return t.Format(e.dateLayout)
}

// classifyWorks dispatches on the item's shape and fills type,
// downloads, and the cover pair.
func (e *Extractor) classifyWorks(rec Record, data tree.Node) {
	switch classify(data) {
	case ShapeImageSetA:
		e.extractImageSetA(rec, tree.Resolve(data, "images"))
	case ShapeImageSetB:
		e.extractImageSetB(rec, tree.Resolve(data, "image_post_info"))
	default:
		e.extractVideo(rec, data)
	}
}

// extractImageSetA handles galleries with a top-level images sequence:
// the last URL of each image's url_list, space-joined.
func (e *Extractor) extractImageSetA(rec Record, images tree.Node) {
	rec["type"] = typeImageSet
	urls := make([]string, 0, images.Len())
	for _, img := range images.Items() {
		urls = append(urls, tree.ResolveString(img, "url_list[-1]", ""))
	}
	rec["downloads"] = strings.Join(urls, " ")
	setCovers(rec, "", "")
}

// extractImageSetB handles galleries nested under image_post_info.
func (e *Extractor) extractImageSetB(rec Record, info tree.Node) {
	rec["type"] = typeImageSet
	images := info.Field("images")
	urls := make([]string, 0, images.Len())
	for _, img := range images.Items() {
		urls = append(urls, tree.ResolveString(img, "display_image.url_list[-1]", ""))
	}
	rec["downloads"] = strings.Join(urls, " ")
	setCovers(rec, "", "")
}

// extractVideo handles the single-video fallback shape. Only videos
// carry cover images; galleries have none.
func (e *Extractor) extractVideo(rec Record, data tree.Node) {
	rec["type"] = typeVideo
	rec["downloads"] = tree.ResolveString(data, "video.play_addr.url_list[-1]", "")
	setCovers(rec,
		tree.ResolveString(data, "video.dynamic_cover.url_list[-1]", ""),
		tree.ResolveString(data, "video.origin_cover.url_list[-1]", ""),
	)
}

func setCovers(rec Record, dynamic, origin string) {
	rec["dynamic_cover"] = dynamic
	rec["origin_cover"] = origin
}

// extractDimensions fills the video dimensions. Absence is expected and
// harmless for gallery items.
func (e *Extractor) extractDimensions(rec Record, data tree.Node) {
	rec["height"] = resolveRaw(data, "video.height")
	rec["width"] = resolveRaw(data, "video.width")
	rec["ratio"] = resolveRaw(data, "video.ratio")
}

// extractMusic fills the music metadata when a music structure exists.
// The playback URL is the last list entry and is known to be
// non-downloadable for some works.
func (e *Extractor) extractMusic(rec Record, data tree.Node) {
	var author, title, url string
	if music := tree.Resolve(data, "music"); !music.IsAbsent() {
		author = tree.ResolveString(music, "author", "")
		title = tree.ResolveString(music, "title", "")
		url = tree.ResolveString(music, "play_url.url_list[-1]", "")
	}
	rec["music_author"] = author
	rec["music_title"] = title
	rec["music_url"] = url
}

// statisticKeys are the engagement counters, stringified for uniform
// downstream handling.
var statisticKeys = [...]string{
	"digg_count",
	"comment_count",
	"collect_count",
	"share_count",
}

// extractStatistics stringifies the engagement counters. Counts bypass
// the falsy-as-missing policy so that a present zero stays "0" while an
// absent statistics structure yields "".
func (e *Extractor) extractStatistics(rec Record, data tree.Node) {
	stats := tree.Resolve(data, "statistics")
	for _, key := range statisticKeys {
		rec[key] = stats.Field(key).Format()
	}
}

// extractTags fills exactly three tag slots from video_tag, padded with
// empty strings.
func (e *Extractor) extractTags(rec Record, data tree.Node) {
	var names [3]string
	for i, tag := range tree.Resolve(data, "video_tag").Items() {
		if i >= len(names) {
			break
		}
		names[i] = tree.ResolveString(tag, "tag_name", "")
	}
	rec["tag_1"] = names[0]
	rec["tag_2"] = names[1]
	rec["tag_3"] = names[2]
}

// extractAccountInfo fills author identity. Nickname and mark branch on
// the context mode: post mode trusts the caller-supplied identity,
// inspect mode derives it from the author structure through the
// cleaner.
func (e *Extractor) extractAccountInfo(ctx *Context, rec Record, data tree.Node) {
	author := tree.Resolve(data, "author")
	rec["uid"] = tree.ResolveString(author, "uid", "")
	rec["sec_uid"] = tree.ResolveString(author, "sec_uid", "")
	rec["short_id"] = tree.ResolveString(author, "short_id", "")
	rec["unique_id"] = tree.ResolveString(author, "unique_id", "")
	rec["signature"] = tree.ResolveString(author, "signature", "")

	if ctx.Post {
		rec["nickname"] = ctx.Nickname
		mark := ctx.Mark
		if mark == "" {
			mark = ctx.Nickname
		}
		rec["mark"] = mark
		return
	}

	nickname := e.clean.CleanName(
		tree.ResolveString(author, "nickname", deactivatedNickname),
		false, invalidNickname,
	)
	rec["nickname"] = nickname
	rec["mark"] = nickname
}

// resolveRaw resolves a path to its raw scalar value, normalizing
// integral floats to int64, with "" as the missing sentinel.
func resolveRaw(data tree.Node, path string) any {
	n := tree.Resolve(data, path)
	if n.IsAbsent() {
		return ""
	}
	switch v := n.Value().(type) {
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
		return v
	case nil:
		return ""
	default:
		return v
	}
}
