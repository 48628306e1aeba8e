// Package authz provides authorization building blocks.
//
// It defines a Checker interface that projects implement according to their
// needs — whether that's a simple in-memory map, a database-backed system, or
// any other authorization engine. The package also provides pattern matching
// utilities for wildcard-based permission schemes (e.g., "pipeline:*" matches
// "pipeline:read") and role membership helpers with configurable role
// prefixing.
//
// The expr package builds its hasRole/hasPermission predicates on these
// primitives; nothing here depends on the resolution engine.
//
// Usage:
//
//	checker := authz.NewMapChecker(map[string][]string{
//	    "admin":  {"*:*"},
//	    "editor": {"article:*", "media:read"},
//	    "viewer": {"*:read"},
//	})
//
//	allowed := checker.HasPermission("admin", "article:delete") // true
package authz
