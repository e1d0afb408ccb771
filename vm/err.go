package vm

import (
	"errors"

	"github.com/ezrec/mvd/translate"
)

var f = translate.From

var (
	// Runtime faults
	ErrStackUnderflow     = errors.New(f("stack underflow"))
	ErrDivisionByZero     = errors.New(f("division by zero"))
	ErrInstructionInvalid = errors.New(f("invalid instruction"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrAddressInvalid     = errors.New(f("address invalid"))
	ErrCountInvalid       = errors.New(f("count invalid"))
	ErrReturnInvalid      = errors.New(f("return address invalid"))

	// Assembler errors
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))
	ErrOperandInvalid  = errors.New(f("operand invalid"))
)

// ErrSyntax locates an assembly error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number or label", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrFault is a runtime fault. Faults halt the machine.
type ErrFault struct {
	Pc          int
	Instruction string
	Err         error
}

func (err *ErrFault) Error() string {
	return f("pc %v '%v' %v", err.Pc, err.Instruction, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
