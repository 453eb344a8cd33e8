// Package um implements the Universal Machine described by the ICFP
// 2006 programming contest: an interpreter for scrolls of big-endian
// 32-bit platters executing against an eight-register state and a
// dynamically allocated array heap.
package um

// Platter is the UM's 32-bit unit of data and of instructions. All
// arithmetic on a Platter wraps modulo 2^32 by virtue of Go's unsigned
// overflow semantics.
type Platter = uint32

// RegId identifies one of the eight general-purpose registers.
type RegId uint8

// NumRegisters is the fixed register file size the UM specification
// mandates.
const NumRegisters = 8

// Opcode is the 4-bit instruction tag extracted from bits 28-31 of a
// platter.
type Opcode uint8

const (
	OpCondMove Opcode = iota
	OpArrayIndex
	OpArrayAmend
	OpAdd
	OpMul
	OpDiv
	OpNotAnd
	OpHalt
	OpAlloc
	OpFree
	OpOutput
	OpInput
	OpLoadProg
	OpOrthography
)

func (op Opcode) String() string {
	switch op {
	case OpCondMove:
		return "cmov"
	case OpArrayIndex:
		return "aidx"
	case OpArrayAmend:
		return "aamd"
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpNotAnd:
		return "nand"
	case OpHalt:
		return "halt"
	case OpAlloc:
		return "alloc"
	case OpFree:
		return "free"
	case OpOutput:
		return "output"
	case OpInput:
		return "input"
	case OpLoadProg:
		return "loadprog"
	case OpOrthography:
		return "ortho"
	default:
		return "undefined"
	}
}
