package domain

// Category groups topics. Slug is derived from Name client-side before
// create/update (see util.Slugify); the server stores it verbatim.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
