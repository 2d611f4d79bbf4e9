// Package nav models the browsable structure of the documentation site: the
// top navigation bar and the sidebar tree keyed by route prefix.
//
// Entries are built through validating constructors so malformed links or
// empty groups are rejected when the configuration is assembled rather than
// when the external renderer consumes it. Declaration order is meaningful
// (reading order) and is preserved by every operation in this package,
// including YAML and JSON encoding.
package nav
