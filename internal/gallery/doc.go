// Package gallery provides an HTTP client for a remote gallery API and a
// paging collaborator that grows the local catalog from it.
//
// # API Endpoints
//
// The client reads a single endpoint:
//
//	GET /api/items?around=<id>&limit=N   initial window
//	GET /api/items?before=<id>&limit=N   page preceding an item
//	GET /api/items?after=<id>&limit=N    page following an item
//
// Responses are JSON:
//
//	{"items": [{"id": "42", "src": "/media/42.jpg", "thumbnail": "/thumbs/42.jpg"}], "more": true}
//
// Relative sources are resolved against the gallery base URL.
//
// # Paging
//
// Pager.Previous prepends the page before the first known item and Pager.Next
// appends the page after the last one. Both return the new item count, which
// the thumbnail strip uses to re-base the navigation target. An empty page is
// reported as ErrNoMore; callers treat that (and any other error) as "no more
// data" and continue with the original index.
package gallery
