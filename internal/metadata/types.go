package metadata

// GameMetadata is enrichment data from a secondary provider.
type GameMetadata struct {
	ID          string  // Provider specific ID (e.g. "igdb:12345")
	Name        string  // Title as the provider knows it
	Description string  // Game summary
	ReleaseDate string  // ISO 8601 date string (approximate)
	Rating      float64 // Rating out of 100
}

// Provider defines the interface for fetching game metadata.
type Provider interface {
	// Name returns the provider name (e.g., "igdb").
	Name() string
	// Search finds games matching the query.
	Search(query string) ([]GameMetadata, error)
}
