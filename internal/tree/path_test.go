package tree

import "testing"

func testTree() Node {
	return Wrap(map[string]any{
		"aweme_id": "7001",
		"author": map[string]any{
			"nickname": "traveler",
			"uid":      "100",
		},
		"video": map[string]any{
			"height": float64(1080),
			"width":  float64(0),
			"play_addr": map[string]any{
				"url_list": []any{"a", "b"},
			},
		},
		"empty_str": "",
		"zero":      float64(0),
		"tags":      []any{},
	})
}

func TestResolve(t *testing.T) {
	root := testTree()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "top_level", path: "aweme_id", want: "7001"},
		{name: "nested", path: "author.nickname", want: "traveler"},
		{name: "indexed_first", path: "video.play_addr.url_list[0]", want: "a"},
		{name: "indexed_last", path: "video.play_addr.url_list[-1]", want: "b"},
		{name: "missing_key", path: "nope", want: "dflt"},
		{name: "missing_nested", path: "author.missing", want: "dflt"},
		{name: "through_scalar", path: "aweme_id.deeper", want: "dflt"},
		{name: "out_of_range", path: "video.play_addr.url_list[5]", want: "dflt"},
		{name: "negative_out_of_range", path: "video.play_addr.url_list[-3]", want: "dflt"},
		{name: "bad_index_literal", path: "video.play_addr.url_list[x]", want: "dflt"},
		{name: "unclosed_bracket", path: "video.play_addr.url_list[1", want: "dflt"},
		{name: "index_on_object", path: "author[0]", want: "dflt"},
		{name: "index_on_missing", path: "nope[0]", want: "dflt"},
		{name: "falsy_empty_string", path: "empty_str", want: "dflt"},
		{name: "falsy_zero", path: "zero", want: "dflt"},
		{name: "falsy_empty_list", path: "tags", want: "dflt"},
		// The zero-discarding falsy policy applies to legitimate zero
		// dimensions as well; callers needing present-zero use Field.
		{name: "falsy_zero_dimension", path: "video.width", want: "dflt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveString(root, tt.path, "dflt"); got != tt.want {
				t.Errorf("ResolveString(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveNode(t *testing.T) {
	root := testTree()

	if n := Resolve(root, "author"); n.Kind() != Object {
		t.Errorf("Resolve(author).Kind() = %v, want Object", n.Kind())
	}
	if n := Resolve(root, "video.play_addr.url_list"); n.Len() != 2 {
		t.Errorf("Resolve(url_list).Len() = %d, want 2", n.Len())
	}
	if n := Resolve(root, "tags"); !n.IsAbsent() {
		t.Error("empty array should resolve to Absent")
	}
}

func TestResolveInt(t *testing.T) {
	root := testTree()

	if got := ResolveInt(root, "video.height", 0); got != 1080 {
		t.Errorf("ResolveInt(height) = %d, want 1080", got)
	}
	if got := ResolveInt(root, "video.missing", -1); got != -1 {
		t.Errorf("ResolveInt(missing) = %d, want -1", got)
	}
	// Zero is falsy and resolves to the default, not 0.
	if got := ResolveInt(root, "video.width", -1); got != -1 {
		t.Errorf("ResolveInt(width=0) = %d, want -1", got)
	}
}

func TestResolveFirstFailureWins(t *testing.T) {
	root := Wrap(map[string]any{
		"a": map[string]any{
			"b": "",
		},
	})

	// The chain fails at the falsy "b"; nothing past it is consulted.
	if got := ResolveString(root, "a.b.c", "d"); got != "d" {
		t.Errorf("ResolveString(a.b.c) = %q, want %q", got, "d")
	}
}
