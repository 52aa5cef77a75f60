// Package docindex implements the classification mapping engine and the
// query engine of arch-mcp-server.
//
// A RuleSet is loaded from a declarative mapping file and turns relative
// file paths into structured metadata. The Scanner walks a docs root,
// classifies every supported file through the rule set, and assembles an
// immutable DocumentIndex: the full record set keyed by docs:// URI plus
// precomputed groupings and the numerically ordered ADR list.
//
// All query operations are pure reads against one DocumentIndex snapshot.
// A Store holds the currently published snapshot behind an atomic pointer
// so that a future rescan can replace it wholesale without readers ever
// observing a partially built index.
package docindex
