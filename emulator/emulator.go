// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs a vm.Machine against an input and an output tape.
package emulator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/ezrec/mvd/vm"
)

// Emulator state. Machine + input and output tapes.
type Emulator struct {
	Verbose     bool // If set, enables verbose logging.
	*vm.Machine      // Reference to the machine.

	Output io.Writer // One line per PRN value.
	Prompt string    // Written to Output before each read, if set.
	Limit  int       // Maximum instructions for Run, 0 for no limit.

	tape    *bufio.Scanner // Input tape, set by SetInput.
	printed int
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: vm.NewMachine(),
		Limit:   vm.RUN_LIMIT,
	}

	return
}

// Load assembles and loads a program.
func (emu *Emulator) Load(source string) (err error) {
	emu.Machine.Verbose = emu.Verbose

	err = emu.Machine.Load(source)
	if err != nil {
		return
	}

	emu.printed = 0

	return
}

// SetInput replaces the input tape with whitespace separated integers
// from r, which are consumed by RD. A nil reader leaves no input.
func (emu *Emulator) SetInput(r io.Reader) {
	emu.tape = nil
	if r != nil {
		emu.tape = bufio.NewScanner(r)
		emu.tape.Split(bufio.ScanWords)
	}
}

// Reset the machine state. The input tape is not rewound.
func (emu *Emulator) Reset() {
	emu.Machine.Reset()
	emu.printed = 0
}

// LineNo returns the source line number for the next instruction.
func (emu *Emulator) LineNo() int {
	return emu.Machine.Program.LineNo(emu.Machine.Pc)
}

// readInput reads the next integer from the input tape.
func (emu *Emulator) readInput() (value int64, err error) {
	if emu.tape == nil {
		err = ErrInputExhausted
		return
	}

	if len(emu.Prompt) != 0 && emu.Output != nil {
		fmt.Fprint(emu.Output, emu.Prompt)
	}

	if !emu.tape.Scan() {
		err = emu.tape.Err()
		if err == nil {
			err = ErrInputExhausted
		}
		return
	}

	word := emu.tape.Text()
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = errors.Join(ErrInputInvalid, err)
		return
	}

	if emu.Verbose {
		log.Printf("emulator: input %v", value)
	}

	return
}

// flush writes any new machine output to the output tape.
func (emu *Emulator) flush() (err error) {
	output := emu.Machine.Output()
	if emu.Output == nil {
		emu.printed = len(output)
		return
	}

	for _, value := range output[emu.printed:] {
		_, err = fmt.Fprintln(emu.Output, value)
		if err != nil {
			return
		}
		emu.printed++
	}

	return
}

// Tick performs a single step of the emulator, feeding the input tape
// to a machine blocked on RD.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Machine.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	outcome, err := emu.Machine.Step()
	if err != nil {
		return
	}

	switch outcome {
	case vm.OUTCOME_BLOCKED:
		var value int64
		value, err = emu.readInput()
		if err != nil {
			return
		}
		emu.Machine.EnqueueInput(value)
	case vm.OUTCOME_HALTED:
		done = true
	}

	err = emu.flush()
	if err != nil {
		return
	}

	if emu.Machine.Status() == vm.STATUS_HALTED {
		done = true
	}

	return
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	start := emu.Machine.Ticks
	for {
		if emu.Limit > 0 && emu.Machine.Ticks-start >= emu.Limit {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
