package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/chzyer/readline"

	"github.com/ezrec/mvd/emulator"
	"github.com/ezrec/mvd/vm"
)

// REPL is an interactive step debugger for a loaded program.
type REPL struct {
	emu  *emulator.Emulator
	name string
	rl   *readline.Instance
	out  io.Writer
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("step"),
	readline.PcItem("run"),
	readline.PcItem("input"),
	readline.PcItem("stack"),
	readline.PcItem("mem"),
	readline.PcItem("out"),
	readline.PcItem("list"),
	readline.PcItem("pc"),
	readline.PcItem("reset"),
	readline.PcItem("snap"),
	readline.PcItem("help"),
	readline.PcItem("quit"),
)

// NewREPL creates a debugger around an emulator with a loaded program.
func NewREPL(emu *emulator.Emulator, name string) (r *REPL, err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mmvd⟩\033[0m ",
		HistoryLimit:    1000,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return
	}

	r = &REPL{
		emu:  emu,
		name: name,
		rl:   rl,
		out:  rl.Stdout(),
	}

	return
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `
Available Commands:
  step, s [n]      Execute n instructions (default 1)
  run, c [limit]   Run until halt, fault, input or limit
  input, i <v>...  Queue values for RD
  stack            Show the operand stack
  mem              Show all written memory cells
  out              Show the output sequence
  list, l          Show the program listing
  pc               Show the program counter and next instruction
  reset, r         Reset execution state, keep the program
  snap             Dump the full snapshot
  help, h          Show this help message
  quit, q          Exit debugger
`)
}

// printOutcome reports the result of a step or run.
func (r *REPL) printOutcome(outcome vm.Outcome, err error) {
	switch outcome {
	case vm.OUTCOME_FAULT:
		fmt.Fprintf(r.out, "\033[31mfault: %v\033[0m\n", err)
	case vm.OUTCOME_BLOCKED:
		fmt.Fprintln(r.out, "\033[33mblocked on input, use 'input <value>'\033[0m")
	case vm.OUTCOME_HALTED:
		fmt.Fprintln(r.out, "\033[36mhalted\033[0m")
	case vm.OUTCOME_LIMIT:
		fmt.Fprintln(r.out, "\033[33mstep limit exceeded\033[0m")
	}
	r.printPc()
}

func (r *REPL) printPc() {
	snap := r.emu.Snapshot()
	next := "-"
	if snap.NextInstruction != nil {
		next = *snap.NextInstruction
	}
	fmt.Fprintf(r.out, "pc %03d [%v] %v\n", snap.Pc, snap.Status, next)
}

// count parses an optional positive count argument.
func count(args []string, fallback int) (n int, err error) {
	n = fallback
	if len(args) < 2 {
		return
	}
	n, err = strconv.Atoi(args[1])
	if err == nil && n < 0 {
		err = fmt.Errorf("%v: must not be negative", args[1])
	}
	return
}

// Execute runs a single debugger command. It returns false to quit.
func (r *REPL) Execute(line string) bool {
	m := r.emu.Machine

	args := strings.Fields(line)
	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "help", "h":
		r.printHelp()
	case "step", "s", "n":
		n, err := count(args, 1)
		if err != nil {
			fmt.Fprintf(r.out, "Invalid count: %v\n", err)
			return true
		}
		outcome := vm.OUTCOME_OK
		for range n {
			outcome, err = m.Step()
			if outcome != vm.OUTCOME_OK {
				break
			}
		}
		r.printOutcome(outcome, err)
		r.printOutput()
	case "run", "c":
		limit, err := count(args, r.emu.Limit)
		if err != nil {
			fmt.Fprintf(r.out, "Invalid limit: %v\n", err)
			return true
		}
		outcome, err := m.Run(limit)
		r.printOutcome(outcome, err)
		r.printOutput()
	case "input", "i":
		if len(args) < 2 {
			fmt.Fprintln(r.out, "Usage: input <value>...")
			return true
		}
		for _, word := range args[1:] {
			value, err := strconv.ParseInt(word, 10, 64)
			if err != nil {
				fmt.Fprintf(r.out, "Invalid value: %s\n", word)
				return true
			}
			m.EnqueueInput(value)
		}
		fmt.Fprintf(r.out, "input queue: %v\n", m.Input())
	case "stack":
		fmt.Fprintf(r.out, "stack: %v (sp %d)\n", m.Memory.Stack(), m.Memory.Sp)
	case "mem":
		for _, cell := range m.Memory.Cells() {
			fmt.Fprintf(r.out, "%6d: %d\n", cell.Address, cell.Value)
		}
	case "out":
		r.printOutput()
	case "list", "l":
		for _, entry := range m.Disassemble() {
			marker := "  "
			if entry.Index == m.Pc {
				marker = "=>"
			}
			label := entry.Label
			if len(label) != 0 {
				label += ":"
			}
			fmt.Fprintf(r.out, "%v %03d %-8s %v\n", marker, entry.Index, label, entry.Text)
		}
	case "pc":
		r.printPc()
	case "reset", "r":
		r.emu.Reset()
		fmt.Fprintln(r.out, "Program reset")
		r.printPc()
	case "snap":
		fmt.Fprintln(r.out, repr.String(m.Snapshot(), repr.Indent("  ")))
	case "quit", "q":
		return false
	default:
		fmt.Fprintf(r.out, "\033[31mUnknown command: %s\033[0m\n", args[0])
	}

	return true
}

func (r *REPL) printOutput() {
	fmt.Fprintf(r.out, "output: %v\n", r.emu.Machine.Output())
}

// Start reads and executes commands until quit or end of input.
func (r *REPL) Start() {
	defer r.rl.Close()

	fmt.Fprintf(r.out, "\033[1;36mMVD debugger\033[0m: %v, %d instructions\n", r.name, r.emu.Program.Len())
	fmt.Fprintln(r.out, "Type 'help' or 'h' for available commands")
	r.printPc()

	for {
		line, err := r.rl.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt
			break
		}

		if !r.Execute(line) {
			break
		}
	}
}
