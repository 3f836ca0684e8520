package defaults

import "time"

// Pod source defaults.
const (
	// SourceTimeout bounds a complete pod listing, kubectl or API.
	SourceTimeout = 30 * time.Second

	// PodListPageSize is the page size for API server pod lists.
	PodListPageSize = 500
)
