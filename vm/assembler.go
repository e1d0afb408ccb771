// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"bufio"
	"errors"
	"io"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a two pass assembler for the MVD instruction set.
//
// The first pass splits lines into labels and instructions, the second
// pass resolves every operand to an integer.
type Assembler struct {
	Verbose bool           // If set, verbosely logs the assembler actions.
	Label   map[string]int // Map of labels to instruction indexes.

	order []string
}

const (
	EVAL_LIMIT = 100000 // Maximum Starlark steps for one $(...) expression.
)

// parsed is an instruction from the first pass, operands still textual.
type parsed struct {
	lineNo   int
	line     string
	words    []string
	operands []string
}

// Assemble parses a source text into a Program.
func Assemble(source string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(source))
}

// valueOf parses an integer literal.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = errors.Join(ErrOperandInvalid, ErrParseNumber(word))
	}
	return
}

// parenEval does compile-time $(...) evaluations, with labels as ints.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	thread.SetMaxExecutionSteps(EVAL_LIMIT)
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for label, index := range asm.Label {
		pred[label] = starlark.MakeInt(index)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrOperandInvalid, ErrParseExpression(expr), err)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = errors.Join(ErrOperandInvalid, ErrParseExpression(expr))
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = errors.Join(ErrOperandInvalid, ErrParseExpression(expr))
		return
	}

	return
}

// resolve converts an operand word to its value.
//
// Labels take precedence over literals for control transfers, and
// are a fallback everywhere else.
func (asm *Assembler) resolve(op Opcode, word string) (value int64, err error) {
	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2 : len(word)-1])
	}

	index, is_label := asm.Label[word]
	if is_label && op.Transfer() {
		value = int64(index)
		return
	}

	value, err = asm.valueOf(word)
	if err != nil && is_label {
		value = int64(index)
		err = nil
	}

	return
}

// splitLine splits a line into words, keeping each $(...) in one word.
func splitLine(text string) (words []string) {
	line, _, _ := strings.Cut(text, ";")

	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	depth := 0
	for n, r := range line {
		switch {
		case depth == 0 && strings.HasPrefix(line[n:], "$("):
			depth = -1
		case depth == -1:
			// The '(' of the "$(" prefix.
			depth = 1
		case depth > 0 && r == '(':
			depth++
		case depth > 0 && r == ')':
			depth--
		case depth == 0 && unicode.IsSpace(r):
			flush()
			continue
		}
		word.WriteRune(r)
	}
	flush()

	return
}

// defineLabel binds a label to the current instruction index.
func (asm *Assembler) defineLabel(word string, index int) (err error) {
	label := strings.TrimSuffix(word, ":")
	if len(label) == 0 {
		err = errors.Join(ErrOperandInvalid, ErrParseNumber(word))
		return
	}

	_, ok := asm.Label[label]
	if ok {
		err = ErrLabelDuplicate
		return
	}

	asm.Label[label] = index
	asm.order = append(asm.order, label)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	clear(asm.Label)
	asm.order = asm.order[:0]

	var pending []parsed

	// First pass: labels and instruction structure.
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1
		line = strings.TrimSpace(text)

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		words := splitLine(line)
		if len(words) == 0 {
			continue
		}

		_, is_op := LookupOpcode(words[0])
		if !is_op {
			err = asm.defineLabel(words[0], len(pending))
			if err != nil {
				return
			}
			words = words[1:]
			if len(words) == 0 {
				words = []string{OP_NULL.String()}
			}
		}

		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}

		pending = append(pending, parsed{
			lineNo:   lineno,
			line:     line,
			words:    words,
			operands: words[1:],
		})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Second pass: operand resolution.
	instructions := make([]Instruction, 0, len(pending))
	for _, entry := range pending {
		lineno = entry.lineNo
		line = entry.line

		mnemonic := strings.ToUpper(entry.words[0])
		op, _ := LookupOpcode(mnemonic)

		ins := Instruction{
			LineNo:   entry.lineNo,
			Words:    entry.words,
			Mnemonic: mnemonic,
			Opcode:   op,
		}
		for _, word := range entry.operands {
			var value int64
			value, err = asm.resolve(op, word)
			if err != nil {
				return
			}
			ins.Operands = append(ins.Operands, value)
		}

		if asm.Verbose {
			log.Printf("%03d: %v", len(instructions), ins)
		}

		instructions = append(instructions, ins)
	}

	prog = &Program{
		Instructions: instructions,
		Labels:       maps.Clone(asm.Label),
		order:        slices.Clone(asm.order),
	}

	return
}
