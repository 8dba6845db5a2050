// Package filmcard looks up a film or series by free-text query, extracts a
// flat record of fields from its title page using ordered fallback rules,
// and renders that record into per-destination output lines.
//
// This package contains domain types, interfaces and the pure extraction,
// assembly and rendering logic, following Ben Johnson's Standard Package
// Layout. Implementations of external collaborators live in subdirectories
// named after their primary dependency (e.g., goquery/, sqlite/, rod/).
package filmcard
