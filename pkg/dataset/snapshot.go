// Package dataset answers ownership and identity queries over the scraped
// user and catalog documents.
//
// The index is an explicit Snapshot value built fresh by every Load call:
// there is no hidden process-wide state, no cache and no invalidation. The
// backing documents are replaced wholesale between scrape runs, so staleness
// within one snapshot is accepted by design.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/wardenbot/warden/pkg/core"
)

// Snapshot is a read-only index over one parse of the user and catalog
// documents. Query results preserve the document order of the user dataset.
type Snapshot struct {
	users map[string]*core.Profile
	raw   map[string]json.RawMessage
	order []string

	usernameToIDs map[string][]string
	itemValue     map[string]int64
	nameToID      map[string]string
}

// Load parses both documents and builds a fresh snapshot. The catalog must
// parse before any value computation; an unreadable document is a fault,
// not an empty result.
func Load(usersPath, catalogPath string) (*Snapshot, error) {
	s := &Snapshot{
		users:         map[string]*core.Profile{},
		raw:           map[string]json.RawMessage{},
		usernameToIDs: map[string][]string{},
	}

	if err := s.loadUsers(usersPath); err != nil {
		return nil, fmt.Errorf("failed to load user dataset: %w", err)
	}
	if err := s.loadCatalog(catalogPath); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return s, nil
}

func (s *Snapshot) loadUsers(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	return decodeOrderedObject(dec, func(userid string, raw json.RawMessage) error {
		var p core.Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("profile %s: %w", userid, err)
		}

		s.users[userid] = &p
		s.raw[userid] = raw
		s.order = append(s.order, userid)

		key := strings.ToLower(p.Username)
		s.usernameToIDs[key] = append(s.usernameToIDs[key], userid)
		return nil
	})
}

// decodeOrderedObject walks the key/value pairs of a JSON object in
// document order. Go maps would randomize iteration, and both the query
// ordering and the first-alias-wins catalog rule depend on file order.
func decodeOrderedObject(dec *json.Decoder, fn func(key string, raw json.RawMessage) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	_, err = dec.Token() // closing brace
	return err
}

// FindByAsset returns every non-terminated user owning the catalog item
// named (or aliased) assetName, optionally filtered by verification.
// An unresolvable name yields an empty result, not an error.
func (s *Snapshot) FindByAsset(assetName string, verified *bool) []string {
	itemID, ok := s.nameToID[strings.ToLower(assetName)]
	if !ok {
		return nil
	}

	var users []string
	for _, userid := range s.order {
		p := s.users[userid]
		if p.Terminated {
			continue
		}
		if _, owned := p.Assets[itemID]; !owned {
			continue
		}
		if verified != nil && p.Verified != *verified {
			continue
		}
		users = append(users, userid)
	}
	return users
}

// FindByCollectiblePrefix returns every non-terminated user having at least
// one collectible whose name starts with prefix (case-insensitive). A user
// matching on several collectibles appears once.
func (s *Snapshot) FindByCollectiblePrefix(prefix string, verified *bool) []string {
	prefix = strings.ToLower(prefix)

	var users []string
	for _, userid := range s.order {
		p := s.users[userid]
		if p.Terminated {
			continue
		}
		if verified != nil && p.Verified != *verified {
			continue
		}
		for _, c := range p.Collectibles {
			if strings.HasPrefix(strings.ToLower(c), prefix) {
				users = append(users, userid)
				break
			}
		}
	}
	return users
}

// FindByUsername returns every userid whose profile carries the username
// (case-insensitive exact match), in first-occurrence order. The second
// return value distinguishes "no such username" from an empty result.
func (s *Snapshot) FindByUsername(username string) ([]string, bool) {
	ids, ok := s.usernameToIDs[strings.ToLower(username)]
	return ids, ok
}

// RawRecord returns the unprocessed source record for a user id, for
// diagnostic full-dump display.
func (s *Snapshot) RawRecord(userid string) (json.RawMessage, bool) {
	raw, ok := s.raw[userid]
	return raw, ok
}

// ItemValue returns the effective value of a catalog item.
func (s *Snapshot) ItemValue(itemID string) (int64, bool) {
	v, ok := s.itemValue[itemID]
	return v, ok
}

// SummaryHeader names the columns produced by SummaryLines.
const SummaryHeader = "username, userid, age, value, private, terminated, verified"

// SummaryLines renders one line per given userid with the user's total
// holdings value (effective item value times owned copies, summed). Ids
// without a matching non-terminated profile are skipped. Items missing
// from the catalog contribute zero.
func (s *Snapshot) SummaryLines(userids []string) string {
	lines := []string{SummaryHeader}

	for _, userid := range userids {
		p, ok := s.users[userid]
		if !ok || p.Terminated {
			continue
		}

		var value int64
		for itemID, copies := range p.Assets {
			value += s.itemValue[itemID] * int64(len(copies))
		}

		lines = append(lines, fmt.Sprintf("%s, %d, %s, %d, %t, %t, %t",
			p.Username, p.ID, p.Age, value, p.Private, p.Terminated, p.Verified))
	}

	return strings.Join(lines, "\n")
}
