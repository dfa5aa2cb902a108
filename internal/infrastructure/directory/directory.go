// Package directory resolves college names against the static name->domain
// CSV dataset that gates which email domains may register for a college.
package directory

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Entry is one resolved college: canonical name plus the permitted email
// domain (lower-cased, no leading "@"). An empty domain means open enrollment.
type Entry struct {
	Name   string
	Domain string
}

// Directory is an in-memory index over the CSV dataset, loaded once at
// startup. Lookups are case-insensitive on the canonical name.
type Directory struct {
	entries []Entry
	byName  map[string]Entry // key: lower-cased name
}

// Load reads and parses the CSV dataset at path. The header row is used to
// locate the name and domain columns; headers merely need to contain "name"
// and "domain" so differently exported datasets keep working.
func Load(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open college csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse college csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("college csv %s is empty", path)
	}

	nameIdx, domainIdx := headerIndexes(rows[0])
	if nameIdx < 0 || domainIdx < 0 {
		return nil, fmt.Errorf("college csv %s: name/domain columns not found", path)
	}

	d := &Directory{byName: make(map[string]Entry)}
	for _, row := range rows[1:] {
		if nameIdx >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			continue
		}
		domain := ""
		if domainIdx < len(row) {
			domain = normalizeDomain(row[domainIdx])
		}
		e := Entry{Name: name, Domain: domain}
		d.entries = append(d.entries, e)
		d.byName[strings.ToLower(name)] = e
	}
	return d, nil
}

// Lookup resolves a college by canonical name, case-insensitively.
func (d *Directory) Lookup(name string) (Entry, bool) {
	e, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Search returns up to limit distinct college names containing query,
// case-insensitively, in dataset order.
func (d *Directory) Search(query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	results := []string{}
	seen := make(map[string]bool)
	for _, e := range d.entries {
		if !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		results = append(results, e.Name)
		if len(results) >= limit {
			break
		}
	}
	return results
}

// Len reports the number of loaded entries.
func (d *Directory) Len() int { return len(d.entries) }

func headerIndexes(header []string) (nameIdx, domainIdx int) {
	nameIdx, domainIdx = -1, -1
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case nameIdx < 0 && strings.Contains(h, "name"):
			nameIdx = i
		case domainIdx < 0 && strings.Contains(h, "domain"):
			domainIdx = i
		}
	}
	return nameIdx, domainIdx
}

func normalizeDomain(raw string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "@"))
}
