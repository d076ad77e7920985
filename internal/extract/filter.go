package extract

import (
	"strconv"
	"time"
)

// filterByDate keeps records whose creation calendar date falls inside
// the inclusive [earliest, latest] window, preserving input order.
// Records without a usable create_timestamp are dropped; that is fatal
// to the record, never to the batch.
func filterByDate(records []Record, earliest, latest time.Time) []Record {
	lo := dateOf(earliest)
	hi := dateOf(latest)

	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		ts, ok := timestampOf(rec)
		if !ok {
			continue
		}
		day := dateOf(time.Unix(ts, 0))
		if day.Before(lo) || day.After(hi) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// timestampOf reads a record's create_timestamp as an epoch value.
func timestampOf(rec Record) (int64, bool) {
	switch v := rec["create_timestamp"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil || v == "" {
			return 0, false
		}
		return ts, true
	default:
		return 0, false
	}
}

// dateOf truncates a time to its local calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
