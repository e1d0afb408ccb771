package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mvd/emulator"
	"github.com/ezrec/mvd/vm"
)

func newTestREPL(t *testing.T, source string) (r *REPL, out *bytes.Buffer) {
	emu := emulator.NewEmulator()
	err := emu.Load(source)
	if err != nil {
		t.Fatal(err)
	}

	out = &bytes.Buffer{}
	r = &REPL{emu: emu, name: "test", out: out}
	return
}

func TestREPL_Step(t *testing.T) {
	assert := assert.New(t)

	r, out := newTestREPL(t, "START\nLDC 5\nLDC 3\nADD\nPRN\nHLT")

	assert.True(r.Execute("step 2"))
	assert.Equal(2, r.emu.Pc)
	assert.Contains(out.String(), "pc 002 [running] LDC 3")

	assert.True(r.Execute("run"))
	assert.Contains(out.String(), "halted")
	assert.Contains(out.String(), "output: [8]")
	assert.Equal(vm.STATUS_HALTED, r.emu.Status())
}

func TestREPL_Input(t *testing.T) {
	assert := assert.New(t)

	r, out := newTestREPL(t, "RD\nPRN\nHLT")

	assert.True(r.Execute("run"))
	assert.Contains(out.String(), "blocked on input")
	assert.Equal(vm.STATUS_BLOCKED, r.emu.Status())

	assert.True(r.Execute("input 9"))
	assert.Contains(out.String(), "input queue: [9]")

	assert.True(r.Execute("c"))
	assert.Equal([]int64{9}, r.emu.Machine.Output())

	out.Reset()
	assert.True(r.Execute("input nine"))
	assert.Contains(out.String(), "Invalid value: nine")
}

func TestREPL_Commands(t *testing.T) {
	assert := assert.New(t)

	r, out := newTestREPL(t, "START\nLDC 4\nSTR 7\nend: HLT")

	assert.True(r.Execute(""))
	assert.True(r.Execute("s 3"))

	out.Reset()
	assert.True(r.Execute("mem"))
	assert.Contains(out.String(), "7: 4")

	out.Reset()
	assert.True(r.Execute("list"))
	assert.Contains(out.String(), "=> 003 end:")

	out.Reset()
	assert.True(r.Execute("snap"))
	assert.Contains(out.String(), "Pc: 3")

	out.Reset()
	assert.True(r.Execute("reset"))
	assert.Equal(0, r.emu.Pc)
	assert.Contains(out.String(), "Program reset")

	out.Reset()
	assert.True(r.Execute("bogus"))
	assert.Contains(out.String(), "Unknown command: bogus")

	assert.True(r.Execute("step -1"))
	assert.False(r.Execute("quit"))
}
