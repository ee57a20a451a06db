// Package scheduler searches for meeting times shared by a set of required
// participants. It intersects per-participant availability, enumerates
// fixed-duration candidate slots under deadline and lead-time constraints,
// and ranks them by a configurable preference score.
package scheduler
