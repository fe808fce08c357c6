// Package catalog holds the item list shared between paging collaborators,
// the refresh watcher and the UI.
//
// Store follows a single-owner-per-write model: paging collaborators prepend
// or append, refreshers replace, and the UI reads immutable snapshots once per
// update. Every successful write bumps Snapshot.Version so the viewer can tell
// that its item list changed underneath it.
//
// DirPager and ManifestSource are the two local sources. DirPager windows a
// large directory and grows the window through Previous/Next; ManifestSource
// republishes a TOML manifest when it changes on disk.
package catalog
