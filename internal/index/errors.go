package index

import "errors"

// ErrIndexUnavailable reports that the embedder or the vector index could not
// be reached or failed mid-operation. A note whose reindex fails with it stays
// fully usable relationally; it just won't surface in semantic search until a
// later content mutation retriggers indexing.
var ErrIndexUnavailable = errors.New("index unavailable")
