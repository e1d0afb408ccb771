package vm

// Snapshot is a read-only copy of the machine state.
type Snapshot struct {
	Pc              int     `json:"pc"`
	Stack           []int64 `json:"stack"`
	Memory          []Cell  `json:"memory"`
	Output          []int64 `json:"output"`
	Input           []int64 `json:"input"`
	Status          Status  `json:"status"`
	LastFault       string  `json:"last_fault,omitempty"`
	NextInstruction *string `json:"next_instruction"`
	Ticks           int     `json:"ticks"`
}

// Halted returns true if the snapshot was taken from a halted machine.
func (snap *Snapshot) Halted() bool {
	return snap.Status == STATUS_HALTED
}

// Snapshot returns a copy of the current state. It has no side effects.
func (m *Machine) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		Pc:     m.Pc,
		Stack:  m.Memory.Stack(),
		Memory: m.Memory.Cells(),
		Output: m.Output(),
		Input:  m.Input(),
		Status: m.status,
		Ticks:  m.Ticks,
	}

	if m.output == nil {
		snap.Output = []int64{}
	}
	if m.input == nil {
		snap.Input = []int64{}
	}

	if m.fault != nil {
		snap.LastFault = m.fault.Error()
	}

	ins, ok := m.Program.Fetch(m.Pc)
	if ok {
		text := ins.String()
		snap.NextInstruction = &text
	}

	return
}
