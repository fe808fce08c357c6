// Package media defines the items shown by the lightbox and loads them from
// TOML manifests.
//
// An Item carries a thumbnail source, a primary source and a kind. Kinds
// decide how the viewer treats the item:
//
//   - image: probed for natural dimensions and fitted into the canvas
//   - pdf: paged; rendered page by page by the document controller
//   - spreadsheet, document: not rasterizable; shown with a placeholder
//
// Manifests look like:
//
//	remote = "http://127.0.0.1:7700"  # optional gallery for lazy paging
//
//	[[items]]
//	src = "photos/a.jpg"
//	thumbnail = "photos/thumbs/a.jpg"
//	alt = "Harbour at dawn"
//	fixed_size = { width = 800, height = 600 }
//
// Relative sources are resolved against the manifest directory.
package media
