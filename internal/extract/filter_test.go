package extract

import (
	"testing"
	"time"
)

func dayRecord(id string, year int, month time.Month, day int) Record {
	return Record{
		"id":               id,
		"create_timestamp": time.Date(year, month, day, 10, 0, 0, 0, time.Local).Unix(),
	}
}

func TestFilterByDate(t *testing.T) {
	earliest := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)
	latest := time.Date(2023, 1, 31, 0, 0, 0, 0, time.Local)

	records := []Record{
		dayRecord("before", 2022, 12, 31),
		dayRecord("on_earliest", 2023, 1, 1),
		dayRecord("inside", 2023, 1, 15),
		dayRecord("on_latest", 2023, 1, 31),
		dayRecord("after", 2023, 2, 1),
	}

	kept := filterByDate(records, earliest, latest)

	want := []string{"on_earliest", "inside", "on_latest"}
	if len(kept) != len(want) {
		t.Fatalf("kept %d records, want %d", len(kept), len(want))
	}
	for i, id := range want {
		if kept[i]["id"] != id {
			t.Errorf("kept[%d] = %v, want %s", i, kept[i]["id"], id)
		}
	}
}

func TestFilterByDateUnusableTimestamp(t *testing.T) {
	earliest := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)
	latest := time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local)

	records := []Record{
		{"id": "missing_sentinel", "create_timestamp": ""},
		{"id": "no_field"},
		{"id": "garbage", "create_timestamp": "soon"},
		dayRecord("good", 2023, 6, 1),
	}

	kept := filterByDate(records, earliest, latest)
	if len(kept) != 1 {
		t.Fatalf("kept %d records, want 1", len(kept))
	}
	if kept[0]["id"] != "good" {
		t.Errorf("kept[0] = %v, want good", kept[0]["id"])
	}
}

func TestFilterByDatePreservesOrder(t *testing.T) {
	earliest := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)
	latest := time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local)

	var records []Record
	for day := 10; day >= 1; day-- {
		records = append(records, dayRecord(string(rune('a'+day)), 2023, 3, day))
	}

	kept := filterByDate(records, earliest, latest)
	if len(kept) != len(records) {
		t.Fatalf("kept %d records, want %d", len(kept), len(records))
	}
	for i := range kept {
		if kept[i]["id"] != records[i]["id"] {
			t.Errorf("order changed at %d: %v != %v", i, kept[i]["id"], records[i]["id"])
		}
	}
}

func TestRunUserTimelineFilters(t *testing.T) {
	e := newTestExtractor()

	var items []map[string]any
	// Ten items, three of which fall inside January 2023.
	months := []time.Month{3, 1, 7, 1, 9, 11, 1, 5, 4, 12}
	for i, m := range months {
		item := videoItem()
		item["aweme_id"] = string(rune('0' + i))
		item["create_time"] = epoch(2023, m, 10)
		items = append(items, item)
	}

	records, err := e.Run(items, nil, TypeUserTimeline, Options{
		Nickname: "n", Post: true,
		Earliest: time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local),
		Latest:   time.Date(2023, 1, 31, 0, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("record count = %d, want 3", len(records))
	}
	// Relative input order survives filtering.
	want := []string{"1", "3", "6"}
	for i, id := range want {
		if records[i]["id"] != id {
			t.Errorf("records[%d].id = %v, want %s", i, records[i]["id"], id)
		}
	}
}

func TestRunSingleWorkSkipsFilter(t *testing.T) {
	e := newTestExtractor()

	item := videoItem()
	item["create_time"] = epoch(1999, 1, 1)

	records, err := e.Run([]map[string]any{item}, nil, TypeSingleWork, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1 (no date window)", len(records))
	}
	// single-work uses inspect-mode naming.
	if records[0]["nickname"] != "original name" {
		t.Errorf("nickname = %v, want author nickname", records[0]["nickname"])
	}
}

type captureRecorder struct {
	rows [][]any
}

func (c *captureRecorder) FieldKeys() []string { return []string{"id", "type", "tag_1"} }
func (c *captureRecorder) Save(values []any) error {
	c.rows = append(c.rows, values)
	return nil
}

func TestRecorderProjection(t *testing.T) {
	e := newTestExtractor()
	sink := &captureRecorder{}

	_, err := e.Run([]map[string]any{videoItem()}, sink, TypeSingleWork, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(sink.rows) != 1 {
		t.Fatalf("saved rows = %d, want 1", len(sink.rows))
	}
	want := []any{"7001", "video", "travel"}
	for i, v := range want {
		if sink.rows[0][i] != v {
			t.Errorf("row[%d] = %#v, want %#v", i, sink.rows[0][i], v)
		}
	}
}
