package vm

// Status is the execution state of a Machine.
type Status int

//go:generate go tool stringer -linecomment -type=Status,Outcome
const (
	STATUS_RUNNING = Status(0) // running
	STATUS_BLOCKED = Status(1) // blocked
	STATUS_HALTED  = Status(2) // halted
)

// MarshalText encodes the status by name.
func (st Status) MarshalText() ([]byte, error) {
	return []byte(st.String()), nil
}

// Outcome is the result of Step or Run.
type Outcome int

const (
	OUTCOME_OK      = Outcome(0) // ok
	OUTCOME_BLOCKED = Outcome(1) // blocked on input
	OUTCOME_HALTED  = Outcome(2) // halted
	OUTCOME_FAULT   = Outcome(3) // fault
	OUTCOME_LIMIT   = Outcome(4) // step limit exceeded
)
