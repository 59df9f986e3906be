package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// unavailableSentinel marks a catalog item that cannot be bought through
// the primary channel; its resale (secondary) price is used instead.
const unavailableSentinel = -1

// catalogEntry mirrors one 4-element catalog array:
// [primaryName, secondaryName, secondaryPrice, primaryPrice].
type catalogEntry struct {
	names     [2]string
	secondary int64
	primary   int64
}

// effectiveValue resolves the price of an entry, preferring the primary
// price unless it carries the unavailable sentinel.
func (e catalogEntry) effectiveValue() int64 {
	if e.primary != unavailableSentinel {
		return e.primary
	}
	return e.secondary
}

// loadCatalog parses the catalog document's "items" mapping into effective
// values and a lowercase name -> item id index. Items are visited in
// document order; the first item claiming an alias keeps it, later
// duplicates are ignored for that name.
func (s *Snapshot) loadCatalog(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var doc struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return err
	}
	if doc.Items == nil {
		return fmt.Errorf("catalog document has no items mapping")
	}

	s.itemValue = map[string]int64{}
	s.nameToID = map[string]string{}

	dec := json.NewDecoder(bytes.NewReader(doc.Items))
	return decodeOrderedObject(dec, func(itemID string, raw json.RawMessage) error {
		entry, err := decodeCatalogEntry(raw)
		if err != nil {
			return fmt.Errorf("catalog item %s: %w", itemID, err)
		}

		s.itemValue[itemID] = entry.effectiveValue()
		for _, name := range entry.names {
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if _, taken := s.nameToID[key]; !taken {
				s.nameToID[key] = itemID
			}
		}
		return nil
	})
}

func decodeCatalogEntry(raw json.RawMessage) (catalogEntry, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return catalogEntry{}, err
	}
	if len(fields) < 4 {
		return catalogEntry{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	var e catalogEntry
	for i := 0; i < 2; i++ {
		// A display name slot may be null; leave it empty.
		if string(fields[i]) == "null" {
			continue
		}
		if err := json.Unmarshal(fields[i], &e.names[i]); err != nil {
			return catalogEntry{}, fmt.Errorf("name %d: %w", i, err)
		}
	}
	if err := json.Unmarshal(fields[2], &e.secondary); err != nil {
		return catalogEntry{}, fmt.Errorf("secondary price: %w", err)
	}
	if err := json.Unmarshal(fields[3], &e.primary); err != nil {
		return catalogEntry{}, fmt.Errorf("primary price: %w", err)
	}
	return e, nil
}
