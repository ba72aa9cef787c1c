package models

type WishlistMutation struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Data    []string `json:"data"`
}

type WishlistResponse struct {
	Status string    `json:"status"`
	Count  int       `json:"count"`
	Data   []Product `json:"data"`
}

// IDs returns the ids of the wishlisted products.
func (w *WishlistResponse) IDs() []string {
	if w == nil {
		return nil
	}
	ids := make([]string, 0, len(w.Data))
	for _, p := range w.Data {
		ids = append(ids, p.ID)
	}
	return ids
}
