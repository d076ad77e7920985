// Package tree converts untyped nested structures (as produced by
// encoding/json) into an immutable, uniformly navigable node tree.
// This package has no dependencies on other packages to avoid import cycles.
package tree

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies the variant a Node holds.
type Kind uint8

const (
	// Absent marks a node that does not exist; every failed navigation
	// step yields it.
	Absent Kind = iota
	// Scalar holds a leaf value: string, number, bool, or nil.
	Scalar
	// Object holds string-keyed children.
	Object
	// Array holds ordered children.
	Array
)

// Node is a read-only view over one subtree of a raw nested structure.
// The zero value is an Absent node.
type Node struct {
	kind   Kind
	value  any
	fields map[string]Node
	items  []Node
}

// Wrap converts a raw nested structure into a Node tree. Maps become
// Objects, slices become Arrays, and everything else (including nil)
// becomes a Scalar leaf. Wrap never fails; cyclic input is the caller's
// responsibility and will recurse without bound.
func Wrap(raw any) Node {
	switch v := raw.(type) {
	case map[string]any:
		fields := make(map[string]Node, len(v))
		for k, child := range v {
			fields[k] = Wrap(child)
		}
		return Node{kind: Object, fields: fields}
	case []any:
		items := make([]Node, len(v))
		for i, child := range v {
			items[i] = Wrap(child)
		}
		return Node{kind: Array, items: items}
	default:
		return Node{kind: Scalar, value: v}
	}
}

// Kind returns the variant this node holds.
func (n Node) Kind() Kind { return n.kind }

// IsAbsent reports whether the node marks a failed navigation.
func (n Node) IsAbsent() bool { return n.kind == Absent }

// Field returns the named child of an Object node, or an Absent node if
// the key is missing or the node is not an Object.
func (n Node) Field(key string) Node {
	if n.kind != Object {
		return Node{}
	}
	return n.fields[key]
}

// Index returns the i-th child of an Array node. Negative indices count
// from the end. Out-of-range indices and non-Array nodes yield Absent.
func (n Node) Index(i int) Node {
	if n.kind != Array {
		return Node{}
	}
	if i < 0 {
		i += len(n.items)
	}
	if i < 0 || i >= len(n.items) {
		return Node{}
	}
	return n.items[i]
}

// Items returns the children of an Array node, or nil otherwise.
func (n Node) Items() []Node {
	if n.kind != Array {
		return nil
	}
	return n.items
}

// Len returns the child count of an Object or Array node.
func (n Node) Len() int {
	switch n.kind {
	case Object:
		return len(n.fields)
	case Array:
		return len(n.items)
	default:
		return 0
	}
}

// Value returns the raw scalar payload, or nil for non-Scalar nodes.
func (n Node) Value() any {
	if n.kind != Scalar {
		return nil
	}
	return n.value
}

// Truthy reports whether the node carries a usable value. Absent nodes,
// empty Objects/Arrays, and zero-valued scalars ("", 0, false, nil) are
// all falsy. This mirrors the falsy-as-missing policy of the resolver:
// an empty or zero intermediate is treated the same as a missing one.
func (n Node) Truthy() bool {
	switch n.kind {
	case Absent:
		return false
	case Object:
		return len(n.fields) > 0
	case Array:
		return len(n.items) > 0
	}
	switch v := n.value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	case float32:
		return v != 0
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case json.Number:
		return v != "0" && v != ""
	default:
		return true
	}
}

// Str returns the scalar as a string, or def for non-string scalars and
// non-Scalar nodes.
func (n Node) Str(def string) string {
	if n.kind != Scalar {
		return def
	}
	if s, ok := n.value.(string); ok {
		return s
	}
	return def
}

// Int returns the scalar as an int64, accepting the numeric types
// encoding/json produces plus numeric strings. Returns def otherwise.
func (n Node) Int(def int64) int64 {
	if n.kind != Scalar {
		return def
	}
	switch v := n.value.(type) {
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint64:
		return int64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		return def
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
		return def
	default:
		return def
	}
}

// Format renders a scalar the way it should appear in a flat output
// record: strings verbatim, numbers without an exponent, nil as "".
// Non-Scalar and Absent nodes render as "".
func (n Node) Format() string {
	if n.kind != Scalar || n.value == nil {
		return ""
	}
	switch v := n.value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
