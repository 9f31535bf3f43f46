// Package ledger implements the modification ledger that decides whether schema generation must re-run.
package ledger

import (
	"io"
	"maps"
	"slices"

	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// trackedDomains are the domains this version reads, tracks and compares.
var trackedDomains = []domain.Domain{domain.DomainProperties, domain.DomainArtifacts}

// Ledger records the fingerprint of every input seen in a run and compares it with the persisted
// state of the last successful run.
//
// A Ledger belongs to a single run and is not safe for concurrent use.
type Ledger struct {
	store    ports.LedgerStore
	digester ports.Digester
	logger   ports.Logger
	path     string

	persisted map[domain.Domain]map[string]domain.Fingerprint
	current   map[domain.Domain]map[string]domain.Fingerprint
	// foreign holds domains written by newer versions; they are written back untouched.
	foreign map[domain.Domain]map[string]domain.Fingerprint

	dirty     bool
	recovered bool
}

// New creates an empty ledger persisted at path.
func New(store ports.LedgerStore, digester ports.Digester, logger ports.Logger, path string) *Ledger {
	l := &Ledger{
		store:    store,
		digester: digester,
		logger:   logger,
		path:     path,
	}
	l.reset()
	return l
}

func (l *Ledger) reset() {
	l.persisted = make(map[domain.Domain]map[string]domain.Fingerprint, len(trackedDomains))
	l.current = make(map[domain.Domain]map[string]domain.Fingerprint, len(trackedDomains))
	l.foreign = make(map[domain.Domain]map[string]domain.Fingerprint)
	for _, d := range trackedDomains {
		l.persisted[d] = make(map[string]domain.Fingerprint)
		l.current[d] = make(map[string]domain.Fingerprint)
	}
	l.dirty = false
	l.recovered = false
}

// Path returns the location of the persisted snapshot.
func (l *Ledger) Path() string {
	return l.path
}

// Load reads the persisted snapshot. A missing snapshot starts an empty ledger.
// An unreadable or invalid snapshot is logged and treated as missing, and the run is marked dirty.
func (l *Ledger) Load() {
	l.reset()

	snapshot, err := l.store.Load(l.path)
	if err != nil {
		l.logger.Warn("ignoring unusable ledger, all mapping sources will be regenerated: " + err.Error())
		l.recovered = true
		l.dirty = true
		return
	}
	if snapshot == nil {
		return
	}

	for d, entries := range snapshot.Domains {
		if entries == nil {
			entries = make(map[string]domain.Fingerprint)
		}
		if slices.Contains(trackedDomains, d) {
			l.persisted[d] = maps.Clone(entries)
			continue
		}
		l.foreign[d] = maps.Clone(entries)
	}
}

// Recovered reports whether Load discarded an unusable snapshot.
func (l *Ledger) Recovered() bool {
	return l.recovered
}

// TrackProperty records a configuration value and reports whether it differs from the persisted one.
func (l *Ledger) TrackProperty(name, value string) bool {
	changed := l.record(domain.DomainProperties, name, l.digester.DigestString(value))
	if changed {
		l.dirty = true
	}
	return changed
}

// TrackArtifact fingerprints r and reports whether it differs from the persisted fingerprint of name.
// The stream is consumed but not closed.
func (l *Ledger) TrackArtifact(name string, r io.Reader) (bool, error) {
	fp, err := l.digester.Digest(r)
	if err != nil {
		return false, zerr.With(err, "artifact", name)
	}
	changed := l.record(domain.DomainArtifacts, name, fp)
	if changed {
		l.dirty = true
	}
	return changed, nil
}

// ObserveProperty records a configuration value without letting a change force regeneration.
// It reports whether the value differs from the persisted one.
func (l *Ledger) ObserveProperty(name, value string) bool {
	return l.record(domain.DomainProperties, name, l.digester.DigestString(value))
}

// Touch forces regeneration.
func (l *Ledger) Touch() {
	l.dirty = true
}

// record stores fp for name and compares it with the persisted value, never with an
// earlier value of this run.
func (l *Ledger) record(d domain.Domain, name string, fp domain.Fingerprint) bool {
	prev, ok := l.persisted[d][name]
	l.current[d][name] = fp
	return !ok || prev != fp
}

// FinalizeRun marks the ledger dirty when the set of names seen this run differs from the
// persisted set in any domain, and returns whether regeneration is required.
func (l *Ledger) FinalizeRun() bool {
	for _, d := range trackedDomains {
		if !sameKeys(l.persisted[d], l.current[d]) {
			l.dirty = true
		}
	}
	return l.dirty
}

// Save persists the names seen this run if the ledger is dirty. It reports whether a write happened.
func (l *Ledger) Save() (bool, error) {
	if !l.FinalizeRun() {
		return false, nil
	}

	if err := l.store.Save(l.path, l.Current()); err != nil {
		return false, err
	}
	return true, nil
}

// Persisted returns a copy of the state loaded from disk.
func (l *Ledger) Persisted() *domain.LedgerSnapshot {
	return l.snapshot(l.persisted)
}

// Current returns a copy of the state that Save would persist.
func (l *Ledger) Current() *domain.LedgerSnapshot {
	return l.snapshot(l.current)
}

func (l *Ledger) snapshot(tracked map[domain.Domain]map[string]domain.Fingerprint) *domain.LedgerSnapshot {
	s := domain.NewLedgerSnapshot()
	for d, entries := range l.foreign {
		s.Domains[d] = maps.Clone(entries)
	}
	for _, d := range trackedDomains {
		s.Domains[d] = maps.Clone(tracked[d])
	}
	return s
}

// Diff lists the differences between the persisted state and this run, sorted by domain and name.
func (l *Ledger) Diff() []domain.LedgerChange {
	var changes []domain.LedgerChange
	for _, d := range trackedDomains {
		before, after := l.persisted[d], l.current[d]

		names := slices.Sorted(maps.Keys(before))
		for name := range after {
			if _, ok := before[name]; !ok {
				names = append(names, name)
			}
		}
		slices.Sort(names)

		for _, name := range names {
			prev, hadPrev := before[name]
			next, hasNext := after[name]
			change := domain.LedgerChange{Domain: d, Name: name, Before: prev, After: next}
			switch {
			case !hadPrev:
				change.Kind = domain.ChangeAdded
			case !hasNext:
				change.Kind = domain.ChangeRemoved
			case prev != next:
				change.Kind = domain.ChangeModified
			default:
				continue
			}
			changes = append(changes, change)
		}
	}
	return changes
}

func sameKeys(a, b map[string]domain.Fingerprint) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
