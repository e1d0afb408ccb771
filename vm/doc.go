// Package vm implements the assembler and interpreter for the MVD, a small
// didactic stack machine.
//
// The machine has a program counter (Pc), a sparse integer memory whose low
// cells double as the operand stack (Sp is the top of stack, -1 when empty),
// an input queue consumed by RD and an output sequence produced by PRN.
// Execution advances one instruction per Step. An RD on an empty input queue
// does not fail: the machine enters STATUS_BLOCKED until EnqueueInput is called,
// and the RD is retried by the next Step.
//
// The assembler accepts one instruction per line:
//
//	[label[:]] [OPCODE [operand [operand]]]
//
// where an operand is a decimal integer, a label name, or a compile-time
// $(expression) evaluated with every label bound to its instruction index.
// Text after ';' is a comment.
package vm
