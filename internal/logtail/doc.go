// Package logtail reads the tail of the lightbox log for the diagnostics
// overlay.
//
// Read extracts the last N lines with a ring buffer in a single pass, so
// memory stays O(N) regardless of file size. A missing file is not an
// error: Read returns nil, nil.
//
// Parse splits a line written by the standard log package
// ("2006/01/02 15:04:05 load a.jpg: reason") into its timestamp, the
// component before the first colon and the message. Lines that do not
// carry a timestamp come back as a bare message. Styling is the UI's job.
package logtail
