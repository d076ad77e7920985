// Package recorder persists extracted records. A Recorder receives one
// ordered value row per record; FieldKeys defines both the projection
// and the value order for every row.
package recorder

import "fmt"

// FieldKeys is the canonical field order shared by every backend. It
// matches the order in which the extraction pipeline populates records.
var FieldKeys = []string{
	"collection_time",
	"id",
	"desc",
	"create_time",
	"create_timestamp",
	"type",
	"downloads",
	"dynamic_cover",
	"origin_cover",
	"uid",
	"sec_uid",
	"short_id",
	"unique_id",
	"signature",
	"nickname",
	"mark",
	"music_author",
	"music_title",
	"music_url",
	"digg_count",
	"comment_count",
	"collect_count",
	"share_count",
	"tag_1",
	"tag_2",
	"tag_3",
	"height",
	"width",
	"ratio",
}

// Recorder is the sink extracted records are handed to.
type Recorder interface {
	// FieldKeys returns the ordered field names this recorder expects.
	FieldKeys() []string

	// Save persists one row of values, ordered per FieldKeys.
	Save(values []any) error

	// Close flushes and releases the underlying sink.
	Close() error
}

// Discard is a Recorder that drops every row. Useful when the caller
// only wants the returned records.
type Discard struct{}

// FieldKeys returns the canonical field order.
func (Discard) FieldKeys() []string { return FieldKeys }

// Save drops the row.
func (Discard) Save([]any) error { return nil }

// Close is a no-op.
func (Discard) Close() error { return nil }

// stringify renders a row value for text-based sinks.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
