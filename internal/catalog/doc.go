package catalog

// Package catalog holds the user-curated repository catalog: a nested
// category -> project -> component -> URL mapping persisted as a JSON
// document. The Store loads, creates, and saves the catalog file; the
// Catalog type provides sorted accessors and additive mutation.
