// Package extract normalizes heterogeneous nested platform records into
// flat, schema-stable output records. Extraction never fails on missing
// or malformed data: every anomaly resolves locally to a default value,
// so one broken item cannot poison a batch.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RiverChu0/TikTokDownloader/internal/tree"
)

// ErrUnknownContentType is returned when Run is given a content-type
// tag outside the supported set. This is the one extraction error that
// surfaces to the caller; it indicates a programming mistake, not a
// data-quality issue.
var ErrUnknownContentType = errors.New("unknown content type")

// ContentType tags the kind of batch being extracted.
type ContentType string

const (
	TypeUserTimeline  ContentType = "user-timeline"
	TypeSingleWork    ContentType = "single-work"
	TypeComment       ContentType = "comment"
	TypeLive          ContentType = "live"
	TypeSearchGeneral ContentType = "general-search"
	TypeSearchUser    ContentType = "user-search"
	TypeTrending      ContentType = "trending"
)

// contentTypes is the closed dispatch set.
var contentTypes = map[ContentType]bool{
	TypeUserTimeline:  true,
	TypeSingleWork:    true,
	TypeComment:       true,
	TypeLive:          true,
	TypeSearchGeneral: true,
	TypeSearchUser:    true,
	TypeTrending:      true,
}

// ParseContentType validates a content-type tag.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(s)
	if !contentTypes[ct] {
		return "", fmt.Errorf("%w: %q", ErrUnknownContentType, s)
	}
	return ct, nil
}

// Record is one flat output record: field name to scalar value (string,
// int64, or "" as the missing sentinel). Every field key is always
// present once extraction completes.
type Record map[string]any

// TextCleaner sanitizes free-form platform text. Satisfied by
// cleaner.Cleaner.
type TextCleaner interface {
	Filter(text string) string
	ClearSpaces(text string) string
	CleanName(raw string, inquire bool, def string) string
}

// Recorder receives one ordered value row per extracted record.
// FieldKeys defines both the projection and the value order.
// Satisfied by the recorder package backends.
type Recorder interface {
	FieldKeys() []string
	Save(values []any) error
}

// Options carries the per-run parameters for a batch.
type Options struct {
	// Nickname and Mark are the post-mode identity overrides.
	Nickname string
	Mark     string

	// Earliest and Latest bound the inclusive calendar-date window
	// for user-timeline runs.
	Earliest time.Time
	Latest   time.Time

	// Post selects post-mode naming rules.
	Post bool
}

// Extractor turns batches of raw platform items into flat records.
type Extractor struct {
	log        *slog.Logger
	dateLayout string
	clean      TextCleaner
	now        func() time.Time
}

// New creates an Extractor. dateLayout is the Go time layout used for
// create_time and collection_time stamps.
func New(log *slog.Logger, dateLayout string, clean TextCleaner) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{
		log:        log,
		dateLayout: dateLayout,
		clean:      clean,
		now:        time.Now,
	}
}

// Run dispatches a batch to the handler for its content type. The
// returned records are also handed row-by-row to rec (which may be nil
// to skip persistence). Declared-but-unimplemented content types return
// empty output; an unknown tag returns ErrUnknownContentType.
func (e *Extractor) Run(items []map[string]any, rec Recorder, typ ContentType, opts Options) ([]Record, error) {
	switch typ {
	case TypeUserTimeline:
		return e.userTimeline(items, rec, opts), nil
	case TypeSingleWork:
		return e.singleWork(items, rec), nil
	case TypeComment, TypeLive, TypeSearchGeneral, TypeSearchUser, TypeTrending:
		e.log.Warn("content type not yet supported", "type", string(typ))
		return []Record{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, typ)
	}
}

// userTimeline extracts an account's posted works, applies the date
// window, and records the survivors.
func (e *Extractor) userTimeline(items []map[string]any, rec Recorder, opts Options) []Record {
	ctx := &Context{
		CollectionTime: e.now().Format(e.dateLayout),
		Nickname:       opts.Nickname,
		Mark:           opts.Mark,
		Post:           opts.Post,
		Earliest:       opts.Earliest,
		Latest:         opts.Latest,
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, e.extractItem(ctx, tree.Wrap(item)))
	}

	records = filterByDate(records, ctx.Earliest, ctx.Latest)
	e.log.Info("account works selected", "count", len(records))

	e.recordData(rec, records)
	return records
}

// singleWork extracts standalone works with inspect-mode naming and no
// date window.
func (e *Extractor) singleWork(items []map[string]any, rec Recorder) []Record {
	ctx := &Context{
		CollectionTime: e.now().Format(e.dateLayout),
		Post:           false,
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, e.extractItem(ctx, tree.Wrap(item)))
	}

	e.recordData(rec, records)
	return records
}

// extractItem runs the fixed field pipeline for one item.
func (e *Extractor) extractItem(ctx *Context, data tree.Node) Record {
	rec := Record{"collection_time": ctx.CollectionTime}
	e.extractWorksInfo(rec, data)
	e.extractAccountInfo(ctx, rec, data)
	e.extractMusic(rec, data)
	e.extractStatistics(rec, data)
	e.extractTags(rec, data)
	e.extractDimensions(rec, data)
	return rec
}

// recordData hands each record to the recorder, projected and ordered
// by the recorder's field keys. Save failures are logged per record and
// never abort the batch.
func (e *Extractor) recordData(rec Recorder, records []Record) {
	if rec == nil {
		return
	}
	keys := rec.FieldKeys()
	for _, r := range records {
		values := make([]any, len(keys))
		for i, k := range keys {
			values[i] = r[k]
		}
		if err := rec.Save(values); err != nil {
			e.log.Error("failed to save record", "id", r["id"], "error", err)
		}
	}
}

// SecUID returns the author sec_uid of a raw item, or "" when absent.
func SecUID(item map[string]any) string {
	return tree.ResolveString(tree.Wrap(item), "author.sec_uid", "")
}

// Preprocess derives account identity from a user-timeline page before
// extraction: uid and nickname come from the final item, mark is
// cleaned with the nickname as fallback, and the final item (the
// account's pinned profile entry) is dropped when not in post mode.
func (e *Extractor) Preprocess(items []map[string]any, mark string, post bool) (uid, nickname, cleanedMark string, rest []map[string]any) {
	if len(items) == 0 {
		return "", "", "", nil
	}

	last := tree.Wrap(items[len(items)-1])
	uid = tree.ResolveString(last, "author.uid", "")
	nickname = e.clean.CleanName(
		tree.ResolveString(last, "author.nickname", deactivatedNickname),
		true, invalidNickname,
	)
	cleanedMark = e.clean.CleanName(mark, true, nickname)

	rest = items
	if !post {
		rest = items[:len(items)-1]
	}
	return uid, nickname, cleanedMark, rest
}
