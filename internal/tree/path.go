package tree

import (
	"strconv"
	"strings"
)

// Resolve walks a dotted path from root and returns the terminal node.
// A segment is either a plain key ("author") or a key with a bracketed
// integer index ("url_list[-1]"); negative indices count from the end.
//
// The first failure anywhere in the chain wins and yields Absent: a
// missing key, a non-navigable intermediate, a malformed or out-of-range
// index, or a falsy intermediate. Falsy values (empty string, zero,
// empty container) are deliberately treated the same as missing ones —
// callers that need to distinguish a present zero must use Field
// directly. Indexed lookups defer the falsy check to the next plain
// segment or to the final result.
func Resolve(root Node, path string) Node {
	cur := root
	for _, seg := range strings.Split(path, ".") {
		if open := strings.IndexByte(seg, '['); open >= 0 {
			key := seg[:open]
			rest := seg[open+1:]
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Node{}
			}
			idx, err := strconv.Atoi(rest[:end])
			if err != nil {
				return Node{}
			}
			cur = cur.Field(key).Index(idx)
			if cur.IsAbsent() {
				return Node{}
			}
		} else {
			cur = cur.Field(seg)
			if !cur.Truthy() {
				return Node{}
			}
		}
	}
	if !cur.Truthy() {
		return Node{}
	}
	return cur
}

// ResolveString resolves path and returns the terminal string scalar,
// or def on any failure.
func ResolveString(root Node, path, def string) string {
	n := Resolve(root, path)
	if n.IsAbsent() {
		return def
	}
	return n.Str(def)
}

// ResolveInt resolves path and returns the terminal numeric scalar,
// or def on any failure.
func ResolveInt(root Node, path string, def int64) int64 {
	n := Resolve(root, path)
	if n.IsAbsent() {
		return def
	}
	return n.Int(def)
}
