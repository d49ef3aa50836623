// Package category defines the fixed extension-to-category table and the
// rules deciding which top-level directory entries are subjects of sorting.
//
// Classification is pure: a file name maps to the first category whose
// extension set contains the name's lowercased extension, or to the
// uncategorized bucket when nothing matches. The package also knows which
// directory names are reserved (category directories plus the uncategorized
// and quarantine buckets) so the engine never sorts its own output.
//
// The category table is deliberately not user-configurable; only the
// quarantine ignore list comes from configuration.
package category
