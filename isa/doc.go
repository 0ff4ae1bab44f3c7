// Package isa implements the LVM instruction set and its codec.
//
// Every instruction has three interchangeable representations: decimal
// assembly text (LOAD $10 #500), hexadecimal assembly text (LOAD 0A 01F4)
// and a fixed 4 byte binary record (01 0A 01 F4). Primitive operands
// (RegisterIndex, Operand8, Operand16) carry the parse and render rules for
// each representation; opcodes (Load, Add) compose them and register
// themselves with the dispatcher, and Program strings records together.
//
// All decode operations return the unconsumed remainder of their input
// alongside the decoded value, and all values are immutable, so the codec
// is safe for concurrent use without coordination.
package isa
