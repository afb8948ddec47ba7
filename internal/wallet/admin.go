package wallet

import "strings"

// Authorizer decides who may run administrative operations.
type Authorizer interface {
	IsAdmin(playerID string) bool
}

// AdminSet is a fixed list of administrator ids.
type AdminSet map[string]struct{}

// NewAdminSet builds the set, ignoring blanks.
func NewAdminSet(ids []string) AdminSet {
	set := AdminSet{}
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func (s AdminSet) IsAdmin(playerID string) bool {
	_, ok := s[playerID]
	return ok
}
