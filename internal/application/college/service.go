// Package college exposes the static directory over the API: typeahead
// search and exact lookup of a college's canonical name and email domain.
package college

import (
	"fmt"
	"strings"

	"github.com/canopy-api/internal/domain"
	"github.com/canopy-api/internal/infrastructure/directory"
)

const (
	minQueryLen  = 2
	defaultLimit = 10
	maxLimit     = 50
)

type Service interface {
	// Search returns up to limit college names matching query. Queries shorter
	// than two characters yield no results rather than the whole dataset.
	Search(query string, limit int) []string
	// Lookup resolves a college by canonical name, case-insensitively.
	Lookup(name string) (directory.Entry, error)
}

type service struct {
	dir *directory.Directory
}

func NewService(dir *directory.Directory) Service {
	return &service{dir: dir}
}

func (s *service) Search(query string, limit int) []string {
	if len(strings.TrimSpace(query)) < minQueryLen {
		return []string{}
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.dir.Search(query, limit)
}

func (s *service) Lookup(name string) (directory.Entry, error) {
	e, ok := s.dir.Lookup(name)
	if !ok {
		return directory.Entry{}, fmt.Errorf("college %q: %w", name, domain.ErrCollegeNotFound)
	}
	return e, nil
}
