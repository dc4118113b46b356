// Package registry fetches, validates and queries MicroPython package
// indexes. An Aggregator downloads every configured index document and merges
// the packages in source order; an Index answers exact-name lookups and
// case-insensitive searches over the merged list; a ReferencePolicy decides
// whether an install argument names a registry package at all or points
// straight at an installable source.
package registry
