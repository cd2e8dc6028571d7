// Package artifact names and resolves the dated files chief keeps in the
// control directory.
//
// Two kinds of artifact exist:
//
//	plans/YYYY-MM-DD-<slug>.md
//	tasks/YYYY-MM-DD-<slug>.tasks.json
//
// Users refer to artifacts by a short fragment: the full filename, the
// filename without its suffix, or just the slug. [Resolve] maps a fragment
// to a filename, preferring the most recent date when several artifacts
// share a slug. Resolution is pure; [List] is the only function that touches
// the filesystem.
package artifact
