package extract

import "time"

// Context carries the per-batch configuration shared by every item in
// one extraction run. It is built once by the dispatching handler and
// treated as read-only afterwards; the accumulating record slice is the
// only mutable batch state and stays with the orchestrating loop.
type Context struct {
	// CollectionTime is stamped into every record of the batch.
	CollectionTime string

	// Nickname and Mark override author naming in post mode.
	Nickname string
	Mark     string

	// Post selects the naming rules: true uses the caller-supplied
	// nickname/mark, false derives them from the author structure.
	Post bool

	// Earliest and Latest bound the inclusive date window applied to
	// user-timeline batches.
	Earliest time.Time
	Latest   time.Time
}
