// Package folding keeps collapsible text regions ("foldings") in sync with a
// mutable document.
//
// A Strategy scans a document snapshot and proposes Candidates. The Store owns
// the live Regions: it moves their offsets as the document is edited, records
// which ones the user collapsed, and answers point queries for the renderer.
// Store.Reconcile merges a fresh candidate list into the live set:
//
//   - live regions and candidates are walked forward in start order; a live
//     region whose start equals the candidate's start is kept, its collapsed
//     flag untouched. So is a lone unvisited region that the candidate's
//     start drifted into, as happens after typing at a region's opener;
//   - candidates without a counterpart become new regions collapsed according
//     to Candidate.DefaultCollapsed;
//   - live regions nobody claimed are evicted, except those starting at or
//     after the strategy's first error offset, which are left exactly as they
//     were.
//
// Offsets are byte offsets into UTF-8 text; End is exclusive.
//
// A Store has a single owner. It does no locking and must not be used from
// more than one goroutine at a time.
package folding
