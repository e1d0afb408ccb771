package vm

import (
	"maps"
	"slices"
)

// Cell is a single memory location.
type Cell struct {
	Address int64 `json:"address"`
	Value   int64 `json:"value"`
}

// Memory is a sparse integer store. The cells at or below Sp form the
// operand stack; the rest of the address space is shared with variables.
type Memory struct {
	Data map[int64]int64
	Sp   int64 // Top of stack, -1 when empty.
}

// NewMemory returns an empty memory.
func NewMemory() (mem *Memory) {
	mem = &Memory{}
	mem.Reset()
	return
}

// Reset clears all cells and empties the stack.
func (mem *Memory) Reset() {
	if mem.Data == nil {
		mem.Data = make(map[int64]int64)
	}
	clear(mem.Data)
	mem.Sp = -1
}

// Read returns the value at addr. Unset cells read as zero.
func (mem *Memory) Read(addr int64) int64 {
	return mem.Data[addr]
}

// Write sets the value at addr.
func (mem *Memory) Write(addr int64, value int64) {
	if mem.Data == nil {
		mem.Data = make(map[int64]int64)
	}
	mem.Data[addr] = value
}

// Depth returns the number of stack elements.
func (mem *Memory) Depth() int64 {
	return mem.Sp + 1
}

// Empty returns true if the stack has no elements.
func (mem *Memory) Empty() bool {
	return mem.Sp < 0
}

// Require checks that the stack holds at least n elements.
func (mem *Memory) Require(n int64) (err error) {
	if mem.Depth() < n {
		err = ErrStackUnderflow
	}
	return
}

// Push a value on top of the stack.
func (mem *Memory) Push(value int64) {
	mem.Sp++
	mem.Write(mem.Sp, value)
}

// Pop the top of the stack.
func (mem *Memory) Pop() (value int64, err error) {
	value, err = mem.Peek(0)
	if err == nil {
		mem.Sp--
	}
	return
}

// Peek returns the element offset slots below the top of the stack.
func (mem *Memory) Peek(offset int64) (value int64, err error) {
	if offset < 0 || mem.Depth() <= offset {
		err = ErrStackUnderflow
		return
	}

	value = mem.Read(mem.Sp - offset)
	return
}

// Stack returns the stack contents, bottom first.
func (mem *Memory) Stack() (stack []int64) {
	stack = make([]int64, 0, mem.Depth())
	for addr := int64(0); addr <= mem.Sp; addr++ {
		stack = append(stack, mem.Read(addr))
	}
	return
}

// Cells returns every written cell, in address order.
func (mem *Memory) Cells() (cells []Cell) {
	cells = make([]Cell, 0, len(mem.Data))
	for _, addr := range slices.Sorted(maps.Keys(mem.Data)) {
		cells = append(cells, Cell{Address: addr, Value: mem.Data[addr]})
	}
	return
}
