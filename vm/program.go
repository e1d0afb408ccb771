package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// Instruction is a single assembled instruction.
type Instruction struct {
	LineNo   int      // Source line number, 0 for synthesized instructions.
	Words    []string // Source tokens, label removed.
	Mnemonic string   // Upper-cased opcode token.
	Opcode   Opcode   // Decoded opcode, OP_INVALID if unknown.
	Operands []int64  // Resolved operands.
}

// Operand returns the n'th operand.
func (ins *Instruction) Operand(n int) (value int64, err error) {
	if n >= len(ins.Operands) {
		err = ErrOperandMissing
		return
	}

	value = ins.Operands[n]
	return
}

// String returns the instruction with its resolved operands.
func (ins Instruction) String() string {
	name := ins.Mnemonic
	if len(name) == 0 {
		name = ins.Opcode.String()
	}

	words := []string{name}
	for _, operand := range ins.Operands {
		words = append(words, strconv.FormatInt(operand, 10))
	}

	return strings.Join(words, " ")
}

// Program is an assembled instruction sequence with its label table.
type Program struct {
	Instructions []Instruction
	Labels       map[string]int // Map of labels to instruction indexes.

	order []string // Labels, in order of definition.
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Instructions)
}

// Fetch returns the instruction at an index.
func (prog *Program) Fetch(pc int) (ins *Instruction, ok bool) {
	if pc < 0 || pc >= prog.Len() {
		return
	}

	return &prog.Instructions[pc], true
}

// LabelAt returns the first label defined at an index.
func (prog *Program) LabelAt(pc int) (label string, ok bool) {
	if prog == nil {
		return
	}

	for _, name := range prog.order {
		if prog.Labels[name] == pc {
			return name, true
		}
	}

	return
}

// LineNo returns the source line number of an index.
func (prog *Program) LineNo(pc int) int {
	ins, ok := prog.Fetch(pc)
	if !ok {
		return 0
	}
	return ins.LineNo
}

// Listing is one line of a program disassembly.
type Listing struct {
	Index int    `json:"index"`
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
}

// Disassemble returns the program listing.
func (prog *Program) Disassemble() (listing []Listing) {
	for n := range prog.Len() {
		label, _ := prog.LabelAt(n)
		listing = append(listing, Listing{
			Index: n,
			Label: label,
			Text:  prog.Instructions[n].String(),
		})
	}

	return
}

// String renders the listing, one instruction per line.
func (prog *Program) String() string {
	var lines []string
	for _, line := range prog.Disassemble() {
		label := line.Label
		if len(label) != 0 {
			label += ":"
		}
		lines = append(lines, fmt.Sprintf("%03d %v\t%v", line.Index, label, line.Text))
	}

	return strings.Join(lines, "\n")
}
