package nav

// Package nav tracks the current category/project/component selection and
// the destination root. It is fully derived from the catalog at time of
// query and never persisted; selecting a higher level cascades the lower
// selections to the first available entry.
