// Package reencrypt rewrites every object in a bucket onto itself with a
// server-side encryption attribute set.
//
// A run has two sequential phases. The Lister enumerates the bucket page by
// page until the listing carries no continuation token. The Applier then
// issues one copy-in-place request per listed object, stopping at the first
// failure. Runner composes the two from a validated config.Config.
package reencrypt
