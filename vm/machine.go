package vm

import (
	"log"
	"math"
	"slices"
	"strings"
)

const (
	RUN_LIMIT   = 1000000 // Default step limit for Run.
	ALLOC_LIMIT = 1 << 16 // Maximum cell count of one ALLOC or DALLOC.
)

// Machine is the execution context for an assembled Program.
//
// A Machine has no internal locking. Callers sharing one Machine between
// goroutines must serialize access to it.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Currently loaded program.
	Memory  Memory   // Memory and operand stack.
	Pc      int      // Index of the next instruction.
	Ticks   int      // Instructions executed since load or reset.

	status Status
	output []int64
	input  []int64
	fault  error
}

// NewMachine creates a machine with an empty program.
func NewMachine() (m *Machine) {
	m = &Machine{
		Program: &Program{},
	}
	m.Reset()

	return
}

// Load assembles source text and loads it. On error the machine is unchanged.
func (m *Machine) Load(source string) (err error) {
	asm := &Assembler{Verbose: m.Verbose}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	m.LoadProgram(prog)

	return
}

// LoadProgram replaces the program and resets the execution state.
func (m *Machine) LoadProgram(prog *Program) {
	m.Program = prog
	m.Reset()
}

// Reset the execution state. The program is kept.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("vm: reset")
	}

	m.Memory.Reset()
	m.Pc = 0
	m.Ticks = 0
	m.status = STATUS_RUNNING
	m.output = nil
	m.input = nil
	m.fault = nil
}

// Status returns the execution status.
func (m *Machine) Status() Status {
	return m.status
}

// LastFault returns the most recent fault, or nil.
func (m *Machine) LastFault() error {
	return m.fault
}

// Output returns a copy of the values printed so far.
func (m *Machine) Output() []int64 {
	return slices.Clone(m.output)
}

// Input returns a copy of the pending input queue.
func (m *Machine) Input() []int64 {
	return slices.Clone(m.input)
}

// EnqueueInput appends a value to the input queue, and wakes a machine
// blocked on RD. The RD is retried by the next Step.
func (m *Machine) EnqueueInput(value int64) {
	m.input = append(m.input, value)

	if m.status == STATUS_BLOCKED {
		m.status = STATUS_RUNNING
		m.fault = nil
	}
}

// Disassemble returns the listing of the loaded program.
func (m *Machine) Disassemble() []Listing {
	return m.Program.Disassemble()
}

// Step executes a single instruction.
//
// A fault halts the machine and is returned as an *ErrFault.
func (m *Machine) Step() (outcome Outcome, err error) {
	switch m.status {
	case STATUS_HALTED:
		outcome = OUTCOME_HALTED
		return
	case STATUS_BLOCKED:
		if len(m.input) == 0 {
			outcome = OUTCOME_BLOCKED
			return
		}
		m.status = STATUS_RUNNING
	}

	ins, ok := m.Program.Fetch(m.Pc)
	if !ok {
		if m.Verbose {
			log.Printf("%03d: outside program, halting", m.Pc)
		}
		m.status = STATUS_HALTED
		outcome = OUTCOME_HALTED
		return
	}

	if m.Verbose {
		log.Printf("%03d: %v", m.Pc, ins)
	}

	next, err := m.Execute(ins)
	if err != nil {
		err = &ErrFault{Pc: m.Pc, Instruction: ins.String(), Err: err}
		if m.Verbose {
			log.Printf("%03d: %v", m.Pc, err)
		}
		m.fault = err
		m.status = STATUS_HALTED
		outcome = OUTCOME_FAULT
		return
	}

	if m.status == STATUS_BLOCKED {
		outcome = OUTCOME_BLOCKED
		return
	}

	m.Pc = next
	m.Ticks += 1
	outcome = OUTCOME_OK

	return
}

// Run steps the machine until it halts, faults, blocks on input, or
// executes limit instructions. OUTCOME_LIMIT leaves the machine resumable.
func (m *Machine) Run(limit int) (outcome Outcome, err error) {
	for range limit {
		outcome, err = m.Step()
		switch outcome {
		case OUTCOME_FAULT, OUTCOME_BLOCKED, OUTCOME_HALTED:
			return
		}
		if m.status == STATUS_HALTED {
			outcome = OUTCOME_HALTED
			return
		}
	}

	switch m.status {
	case STATUS_HALTED:
		outcome = OUTCOME_HALTED
	case STATUS_BLOCKED:
		outcome = OUTCOME_BLOCKED
	default:
		outcome = OUTCOME_LIMIT
	}

	return
}

// address returns the n'th operand as a memory address.
func (m *Machine) address(ins *Instruction, n int) (addr int64, err error) {
	addr, err = ins.Operand(n)
	if err == nil && addr < 0 {
		err = ErrAddressInvalid
	}
	return
}

// Execute executes a single instruction against the machine state,
// returning the index of the next instruction.
//
// An RD on an empty queue sets STATUS_BLOCKED and leaves the state untouched.
func (m *Machine) Execute(ins *Instruction) (next int, err error) {
	mem := &m.Memory
	op := ins.Opcode
	next = m.Pc + 1

	if op == OP_INVALID {
		err = ErrInstructionInvalid
		return
	}

	arity := op.Arity()
	if len(ins.Operands) < arity {
		err = ErrOperandMissing
		return
	}
	if len(ins.Operands) > arity {
		err = ErrOpcodeExtraArgs
		return
	}

	switch op {
	case OP_START:
		mem.Sp = -1
	case OP_LDC:
		mem.Push(ins.Operands[0])
	case OP_LDV:
		var addr int64
		addr, err = m.address(ins, 0)
		if err != nil {
			return
		}
		mem.Push(mem.Read(addr))
	case OP_ADD, OP_SUB, OP_MULT, OP_DIVI, OP_AND, OP_OR,
		OP_CME, OP_CMA, OP_CEQ, OP_CDIF, OP_CMEQ, OP_CMAQ:
		err = mem.Require(2)
		if err != nil {
			return
		}
		b, _ := mem.Peek(0)
		a, _ := mem.Peek(1)
		var value int64
		value, err = doBinary(op, a, b)
		if err != nil {
			return
		}
		mem.Pop()
		mem.Write(mem.Sp, value)
	case OP_INV, OP_NEG:
		var value int64
		value, err = mem.Peek(0)
		if err != nil {
			return
		}
		if op == OP_INV {
			value = -value
		} else {
			value = 1 - value
		}
		mem.Write(mem.Sp, value)
	case OP_STR:
		var addr int64
		addr, err = m.address(ins, 0)
		if err != nil {
			return
		}
		var value int64
		value, err = mem.Pop()
		if err != nil {
			return
		}
		mem.Write(addr, value)
	case OP_JMP:
		next = int(ins.Operands[0])
	case OP_JMPF:
		var cond int64
		cond, err = mem.Pop()
		if err != nil {
			return
		}
		if cond == 0 {
			next = int(ins.Operands[0])
		}
	case OP_NULL:
		// pass
	case OP_RD:
		if len(m.input) == 0 {
			m.status = STATUS_BLOCKED
			next = m.Pc
			return
		}
		mem.Push(m.input[0])
		m.input = m.input[1:]
	case OP_PRN:
		var value int64
		value, err = mem.Pop()
		if err != nil {
			return
		}
		m.output = append(m.output, value)
	case OP_ALLOC, OP_DALLOC:
		var base int64
		base, err = m.address(ins, 0)
		if err != nil {
			return
		}
		count := ins.Operands[1]
		if count < 0 || count > ALLOC_LIMIT {
			err = ErrCountInvalid
			return
		}
		if base > math.MaxInt64-count {
			err = ErrAddressInvalid
			return
		}
		if op == OP_ALLOC {
			for k := range count {
				mem.Push(mem.Read(base + k))
			}
			return
		}
		err = mem.Require(count)
		if err != nil {
			return
		}
		for k := count - 1; k >= 0; k-- {
			value, _ := mem.Pop()
			mem.Write(base+k, value)
		}
	case OP_CALL:
		mem.Push(int64(m.Pc + 1))
		next = int(ins.Operands[0])
	case OP_RETURN:
		var target int64
		target, err = mem.Peek(0)
		if err != nil {
			return
		}
		if target < 0 || target > int64(m.Program.Len()) {
			err = ErrReturnInvalid
			return
		}
		mem.Pop()
		next = int(target)
	case OP_HLT:
		m.status = STATUS_HALTED
	default:
		err = ErrInstructionInvalid
	}

	return
}

// doBinary combines the two top stack values, a below b.
func doBinary(op Opcode, a, b int64) (value int64, err error) {
	truth := func(cond bool) int64 {
		if cond {
			return 1
		}
		return 0
	}

	switch op {
	case OP_ADD:
		value = a + b
	case OP_SUB:
		value = a - b
	case OP_MULT:
		value = a * b
	case OP_DIVI:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		// Floor division, rounding toward negative infinity.
		value = a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			value--
		}
	case OP_AND:
		value = truth(a == 1 && b == 1)
	case OP_OR:
		value = truth(a != 0 || b != 0)
	case OP_CME:
		value = truth(a < b)
	case OP_CMA:
		value = truth(a > b)
	case OP_CEQ:
		value = truth(a == b)
	case OP_CDIF:
		value = truth(a != b)
	case OP_CMEQ:
		value = truth(a <= b)
	case OP_CMAQ:
		value = truth(a >= b)
	default:
		err = ErrInstructionInvalid
	}

	return
}
