// Package models defines data structures for the mortydex client.
package models

// Sentinel values substituted when a field is missing from the API document.
const (
	Unknown        = "unknown"
	UnknownSpecies = "unknown species"
)

// Character represents one character result from the API.
type Character struct {
	Name    string `json:"name"`
	Origin  string `json:"origin"`
	Species string `json:"species"`
	Status  string `json:"status"`

	// Episodes holds episode resource URLs after parsing, or episode
	// titles after resolution. Order always matches the API order.
	Episodes []string `json:"episodes"`
}

// NewCharacter returns a Character with every field set to its sentinel.
func NewCharacter() Character {
	return Character{
		Name:     Unknown,
		Origin:   Unknown,
		Species:  UnknownSpecies,
		Status:   Unknown,
		Episodes: []string{},
	}
}

// WithEpisodes returns a copy of c whose episode list is replaced by titles.
// The receiver's slice is left untouched.
func (c Character) WithEpisodes(titles []string) Character {
	out := c
	out.Episodes = append([]string(nil), titles...)
	return out
}

// HasEpisodes reports whether the character appeared in any episode.
func (c Character) HasEpisodes() bool {
	return len(c.Episodes) > 0
}
