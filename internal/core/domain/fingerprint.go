package domain

// Fingerprint is a fixed-length lowercase hexadecimal content digest.
type Fingerprint string

// String returns the hexadecimal representation.
func (f Fingerprint) String() string {
	return string(f)
}

// Domain names one of the ledger's tracking domains.
type Domain string

const (
	// DomainProperties tracks configuration key/value pairs.
	DomainProperties Domain = "properties"
	// DomainArtifacts tracks classes, packages and mapping files.
	DomainArtifacts Domain = "artifacts"
)

// LedgerFormatVersion is the version written into persisted snapshots.
const LedgerFormatVersion = 1

// LedgerSnapshot is the persisted form of the ledger.
// Domains unknown to this version are carried through untouched.
type LedgerSnapshot struct {
	Version int                                `json:"version"`
	Domains map[Domain]map[string]Fingerprint `json:"domains"`
}

// NewLedgerSnapshot returns an empty snapshot of the current format version.
func NewLedgerSnapshot() *LedgerSnapshot {
	return &LedgerSnapshot{
		Version: LedgerFormatVersion,
		Domains: make(map[Domain]map[string]Fingerprint),
	}
}

// ChangeKind classifies a ledger difference.
type ChangeKind string

const (
	// ChangeAdded marks a name tracked this run but absent from the persisted ledger.
	ChangeAdded ChangeKind = "added"
	// ChangeRemoved marks a persisted name not seen this run.
	ChangeRemoved ChangeKind = "removed"
	// ChangeModified marks a name whose fingerprint differs.
	ChangeModified ChangeKind = "modified"
)

// LedgerChange describes one difference between the persisted and the current ledger.
type LedgerChange struct {
	Domain Domain
	Name   string
	Kind   ChangeKind
	Before Fingerprint
	After  Fingerprint
}
