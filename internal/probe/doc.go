// Package probe reads image sources for the viewer: it resolves natural
// dimensions (with EXIF orientation applied), caches them per source, and
// implements the download and transformed-export actions.
//
// Sources are local paths or http(s) URLs. JPEG, PNG, GIF, BMP and TIFF are
// decoded through imaging; WebP through golang.org/x/image/webp.
package probe
