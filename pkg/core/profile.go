package core

// Profile is a read-only record from the scraped user dataset.
// Assets maps a catalog item id to the owned-copy markers; the length of
// the list is the owned quantity.
type Profile struct {
	Username     string              `json:"username"`
	ID           int64               `json:"id"`
	Age          string              `json:"age"`
	Private      bool                `json:"private"`
	Terminated   bool                `json:"terminated"`
	Verified     bool                `json:"verified"`
	Collectibles []string            `json:"collectibles"`
	Assets       map[string][]string `json:"assets"`
}
