// Package app is the composition root of lightbox.
//
// Run loads the configuration and preferences, redirects the standard
// logger to the log file (the terminal belongs to the UI), opens the item
// source and starts the UI. When the UI exits, the theme and the last
// active index are saved back to the preferences.
//
// # Sources
//
//   - http(s):// URL: a remote gallery, paged in both directions
//   - *.toml: a manifest; a manifest with a remote key pages further items
//     from that gallery
//   - directory: the media files in it, paged in windows
//   - a single media file: its directory, starting at that file
//   - anything else: a one-item list
//
// With no source argument the configured remote gallery is used.
//
// # Refresh
//
// Manifests, directories and galleries are re-read in the background by
// StartPoller. Consecutive failures back off exponentially (doubling the
// interval, capped at 30s) and are logged; the viewer keeps showing the
// last good list.
package app
