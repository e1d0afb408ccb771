package vm

import (
	"strings"
)

// Opcode is an instruction mnemonic.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_INVALID = Opcode(iota) // ?
	OP_START                  // START
	OP_LDC                    // LDC
	OP_LDV                    // LDV
	OP_ADD                    // ADD
	OP_SUB                    // SUB
	OP_MULT                   // MULT
	OP_DIVI                   // DIVI
	OP_INV                    // INV
	OP_AND                    // AND
	OP_OR                     // OR
	OP_NEG                    // NEG
	OP_CME                    // CME
	OP_CMA                    // CMA
	OP_CEQ                    // CEQ
	OP_CDIF                   // CDIF
	OP_CMEQ                   // CMEQ
	OP_CMAQ                   // CMAQ
	OP_STR                    // STR
	OP_JMP                    // JMP
	OP_JMPF                   // JMPF
	OP_NULL                   // NULL
	OP_RD                     // RD
	OP_PRN                    // PRN
	OP_ALLOC                  // ALLOC
	OP_DALLOC                 // DALLOC
	OP_CALL                   // CALL
	OP_RETURN                 // RETURN
	OP_HLT                    // HLT
)

// opcodeMap maps upper-case mnemonics to opcodes.
var opcodeMap = func() map[string]Opcode {
	m := map[string]Opcode{}
	for _, op := range Opcodes() {
		m[op.String()] = op
	}
	return m
}()

// LookupOpcode returns the opcode for a mnemonic, ignoring case.
func LookupOpcode(word string) (op Opcode, ok bool) {
	op, ok = opcodeMap[strings.ToUpper(word)]
	return
}

// Transfer returns true for opcodes whose operand is a program index.
func (op Opcode) Transfer() bool {
	switch op {
	case OP_JMP, OP_JMPF, OP_CALL:
		return true
	}
	return false
}

// Binary returns true for opcodes that combine the two top stack slots.
func (op Opcode) Binary() bool {
	switch op {
	case OP_ADD, OP_SUB, OP_MULT, OP_DIVI, OP_AND, OP_OR,
		OP_CME, OP_CMA, OP_CEQ, OP_CDIF, OP_CMEQ, OP_CMAQ:
		return true
	}
	return false
}

// Opcodes returns all valid opcodes in declaration order.
func Opcodes() (ops []Opcode) {
	for op := OP_START; op <= OP_HLT; op++ {
		ops = append(ops, op)
	}
	return
}

// Arity returns the number of operands an opcode takes.
func (op Opcode) Arity() int {
	switch op {
	case OP_LDC, OP_LDV, OP_STR, OP_JMP, OP_JMPF, OP_CALL:
		return 1
	case OP_ALLOC, OP_DALLOC:
		return 2
	}
	return 0
}
