package ledger

import (
	"maps"
	"slices"

	"go.trai.ch/schemagen/internal/core/domain"
)

// Lines renders a snapshot as sorted "domain name fingerprint" lines for display and diffing.
func Lines(s *domain.LedgerSnapshot) []string {
	if s == nil {
		return nil
	}
	var lines []string
	for _, d := range slices.Sorted(maps.Keys(s.Domains)) {
		entries := s.Domains[d]
		for _, name := range slices.Sorted(maps.Keys(entries)) {
			lines = append(lines, string(d)+" "+name+" "+entries[name].String()+"\n")
		}
	}
	return lines
}
