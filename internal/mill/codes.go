package mill

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PigFarmBot_Go/internal/domain"
)

// newCode returns a fresh public mill code: the first CodeLength hex digits
// of a random UUID, upper-cased.
func newCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:CodeLength])
}

// normalizeCode makes user-typed codes comparable with stored ones.
func normalizeCode(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}

// codeCache maps public mill codes to owner ids. It is only a shortcut:
// every hit is confirmed against the loaded document.
type codeCache struct {
	lru *expirable.LRU[string, string]
}

func newCodeCache() *codeCache {
	return &codeCache{lru: expirable.NewLRU[string, string](CodeCacheSize, nil, CodeCacheTTL)}
}

func (c *codeCache) Set(code, ownerID string) {
	if code == "" {
		return
	}
	c.lru.Add(code, ownerID)
}

// Resolve finds the owner id behind ref, which may be a mill code or the
// owner id itself.
func (c *codeCache) Resolve(doc *domain.MillDocument, ref string) (string, *domain.Mill, bool) {
	code := normalizeCode(ref)
	if owner, ok := c.lru.Get(code); ok {
		if m, found := doc.Mills[owner]; found && m.Code == code {
			return owner, m, true
		}
		c.lru.Remove(code)
	}
	if owner, m, ok := doc.MillByCode(code); ok {
		c.Set(code, owner)
		return owner, m, true
	}
	if m, ok := doc.Mills[strings.TrimSpace(ref)]; ok {
		return strings.TrimSpace(ref), m, true
	}
	return "", nil, false
}

// uniqueCode draws codes until one is unused in doc.
func uniqueCode(doc *domain.MillDocument) string {
	code := newCode()
	for i := 0; i < maxCodeAttempts; i++ {
		if _, _, taken := doc.MillByCode(code); !taken {
			break
		}
		code = newCode()
	}
	return code
}
