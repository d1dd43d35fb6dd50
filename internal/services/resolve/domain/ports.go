package domain

import "context"

// RegistryPort abstracts the external registry's search strategies.
// Each call returns (record, matched, err); a structurally empty response
// is (zero, false, nil), which is the normal cascade-continuation signal
type RegistryPort interface {
	// SearchCombined requires both identifiers to match exactly
	SearchCombined(ctx context.Context, primaryID, name string) (Record, bool, error)

	// SearchAdvanced tries exact primary id, then exact name, then partial name
	SearchAdvanced(ctx context.Context, primaryID, name string) (Record, bool, error)

	// SearchBasic issues free-text queries: primary id first, then name
	SearchBasic(ctx context.Context, primaryID, name string) (Record, bool, error)
}

// CachePort abstracts the persistent identity cache
type CachePort interface {
	Lookup(primaryID string) (Record, bool)
	Store(primaryID string, rec Record) error
}

// ResolverPort is the resolution entry point consumed by screening
type ResolverPort interface {
	Resolve(ctx context.Context, primaryID, name string) (Record, error)
}
