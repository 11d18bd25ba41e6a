package domain

import (
	"fmt"
	"strings"
)

// RepositoryRef identifies one repository on GitHub.
type RepositoryRef struct {
	// Owner is the user or organisation login owning the repository.
	Owner string `json:"owner"`

	// Name is the repository name.
	Name string `json:"name"`
}

// ParseRepositoryRef parses an "owner/name" identifier.
// Surrounding whitespace and a trailing ".git" are ignored.
func ParseRepositoryRef(s string) (RepositoryRef, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".git")
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepositoryRef{}, fmt.Errorf("%w: %q", ErrInvalidRepository, s)
	}
	return RepositoryRef{Owner: owner, Name: name}, nil
}

// ParseRepositoryRefs parses a list of identifiers, failing on the first invalid one.
func ParseRepositoryRefs(ids []string) ([]RepositoryRef, error) {
	refs := make([]RepositoryRef, 0, len(ids))
	for _, id := range ids {
		ref, err := ParseRepositoryRef(id)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// String returns the "owner/name" form.
func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// CacheKey returns the cache key of a per-repository query. Owner and name
// are joined by "/", which neither may contain, so distinct repositories
// never share a key.
func (r RepositoryRef) CacheKey(prefix string) string {
	return prefix + "-" + r.String()
}

// FileStem returns the "owner-name" form used for per-repository export files.
func (r RepositoryRef) FileStem() string {
	return r.Owner + "-" + r.Name
}
