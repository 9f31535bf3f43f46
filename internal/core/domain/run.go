package domain

// RunState is a state of the orchestrator state machine.
type RunState uint8

const (
	StateIdle RunState = iota
	StateLedgerLoaded
	StateClasspathAssembled
	StateScanned
	StateUnitsAssembled
	StateDecided
	StateSkipped
	StateDelegated
	StatePersisted
)

var runStateNames = [...]string{
	StateIdle:               "Idle",
	StateLedgerLoaded:       "LedgerLoaded",
	StateClasspathAssembled: "ClasspathAssembled",
	StateScanned:            "Scanned",
	StateUnitsAssembled:     "UnitsAssembled",
	StateDecided:            "Decided",
	StateSkipped:            "Skipped",
	StateDelegated:          "Delegated",
	StatePersisted:          "Persisted",
}

func (s RunState) String() string {
	if int(s) < len(runStateNames) {
		return runStateNames[s]
	}
	return "RunState(unknown)"
}

// Skip reasons reported in an Outcome.
const (
	ReasonSkipRequested = "skip requested"
	ReasonUnchanged     = "mapping and configuration unchanged"
	ReasonChanged       = "mapping or configuration changed"
	ReasonForced        = "regeneration forced"
)

// SchemaException is a non-fatal problem reported by the schema engine.
type SchemaException struct {
	Message   string `json:"message"`
	Statement string `json:"statement,omitempty"`
}

// SchemaReport is the result of a schema engine invocation.
type SchemaReport struct {
	Exceptions []SchemaException `json:"exceptions"`
}

// Outcome summarizes a run for the host.
type Outcome struct {
	Goal          Goal              `json:"goal"`
	Skipped       bool              `json:"skipped"`
	Reason        string            `json:"reason"`
	Units         []MappingUnit     `json:"units,omitempty"`
	Exceptions    []SchemaException `json:"exceptions,omitempty"`
	LedgerWritten bool              `json:"ledgerWritten"`
	RunID         string            `json:"runId"`
}

// Properties renders the outcome as the host-visible property set.
func (o *Outcome) Properties() map[string]string {
	skipped := "false"
	if o.Skipped {
		skipped = "true"
	}
	return map[string]string{PropSkipped: skipped}
}
