package um

// Instruction is a decoded platter: an opcode plus the register
// operands or immediate it carries. Not every field is meaningful for
// every opcode: standard-form instructions use A/B/C, Orthography uses
// only A and Imm.
type Instruction struct {
	Op  Opcode
	A   RegId
	B   RegId
	C   RegId
	Imm Platter // valid only when Op == OpOrthography
}

const immMask = 0x01FFFFFF

// Decode extracts an Instruction from a raw platter. Opcodes 0-12 pack
// three register indices into the low 9 bits ("standard form");
// opcode 13 packs a register and a 25-bit immediate ("orthography
// form"). Opcodes 14 and 15 decode to an Instruction whose Op value is
// out of the Opcode enum's defined range; the dispatch loop is
// responsible for treating that as a fault.
func Decode(p Platter) Instruction {
	op := Opcode((p >> 28) & 0xF)
	if op == OpOrthography {
		return Instruction{
			Op:  op,
			A:   RegId((p >> 25) & 7),
			Imm: p & immMask,
		}
	}
	return Instruction{
		Op: op,
		A:  RegId((p >> 6) & 7),
		B:  RegId((p >> 3) & 7),
		C:  RegId(p & 7),
	}
}

// Encode is the inverse of Decode, used by tests to round-trip all
// fourteen opcode shapes and by nothing in the dispatch path itself —
// the UM format is write-only from the host's perspective except when
// a scroll constructs its own platters via Orthography and arithmetic.
func Encode(i Instruction) Platter {
	if i.Op == OpOrthography {
		return (Platter(i.Op) << 28) | (Platter(i.A&7) << 25) | (i.Imm & immMask)
	}
	return (Platter(i.Op) << 28) | (Platter(i.A&7) << 6) | (Platter(i.B&7) << 3) | Platter(i.C&7)
}
