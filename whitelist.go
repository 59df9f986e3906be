package warden

import (
	"encoding/json"
	"fmt"
	"os"
)

// Whitelist maps caller ids to the display names recorded as note
// creators. Membership enforcement is the command layer's concern; the
// data layer only consumes the resolved attribution.
type Whitelist map[string]string

// LoadWhitelist reads the whitelist document. A missing file yields an
// empty whitelist rather than an error.
func LoadWhitelist(path string) (Whitelist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Whitelist{}, nil
		}
		return nil, fmt.Errorf("failed to read whitelist: %w", err)
	}

	w := Whitelist{}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse whitelist: %w", err)
	}
	return w, nil
}

// Allowed reports whether the caller is on the whitelist.
func (w Whitelist) Allowed(callerID string) bool {
	_, ok := w[callerID]
	return ok
}

// Resolve returns the display name for a caller, falling back to the raw
// caller id for callers without an entry.
func (w Whitelist) Resolve(callerID string) string {
	if name, ok := w[callerID]; ok && name != "" {
		return name
	}
	return callerID
}
