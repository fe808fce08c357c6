package gallery

import "github.com/five82/lightbox/internal/media"

// ItemPage mirrors the payload returned by /api/items.
type ItemPage struct {
	Items []media.Item `json:"items"`
	Total int          `json:"total"`
	More  bool         `json:"more"`
}
