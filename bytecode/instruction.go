// Package bytecode implements the tagged binary instruction grammar the
// lowering pipeline emits: Nop, Primitive (Alloc/Reset/Measure),
// StandardGateOp, and CustomGateOp, all little-endian throughout.
//
// The reference this system was distilled from writes parameters
// little-endian on encode but reads them big-endian on decode — a real
// defect, not an intentional format switch. Per the spec's resolved open
// question, this port uses binary.LittleEndian on both sides, pinned by
// a round-trip test.
package bytecode

import "math"

// Tag identifies which of the four instruction shapes follows.
type Tag byte

const (
	TagNop           Tag = 0x00
	TagPrimitive     Tag = 0x01
	TagStandardGate  Tag = 0x02
	TagCustomGate    Tag = 0x03
)

// PrimitiveOpCode enumerates the Primitive instruction's opcode byte.
type PrimitiveOpCode byte

const (
	OpAlloc   PrimitiveOpCode = 0x00
	OpReset   PrimitiveOpCode = 0x01
	OpMeasure PrimitiveOpCode = 0x02
)

// StandardOpCode enumerates the Standard-gate opcode byte. The
// assignment is part of the ABI: contiguous small integers in this
// fixed order, matching the original runtime's StandardOpCode enum.
type StandardOpCode byte

const (
	OpI StandardOpCode = iota
	OpH
	OpX
	OpY
	OpZ
	OpXPOW
	OpYPOW
	OpZPOW
	OpS
	OpSD
	OpT
	OpTD
	OpV
	OpVD
	OpP
	OpRX
	OpRY
	OpRZ
	OpRN
	OpU
	OpCX
	OpCY
	OpCZ
	OpCH
	OpCP
	OpSWP
	OpSSWP
	OpSSWPD
	OpISWP
	OpISWPD
	OpSISWP
	OpSISWPD
	OpCAN
	OpCCX
	OpCSWP
)

var nameByOpcode = map[StandardOpCode]string{
	OpI: "I", OpH: "H", OpX: "X", OpY: "Y", OpZ: "Z",
	OpXPOW: "XPOW", OpYPOW: "YPOW", OpZPOW: "ZPOW",
	OpS: "S", OpSD: "SD", OpT: "T", OpTD: "TD", OpV: "V", OpVD: "VD", OpP: "P",
	OpRX: "RX", OpRY: "RY", OpRZ: "RZ", OpRN: "RN", OpU: "U",
	OpCX: "CX", OpCY: "CY", OpCZ: "CZ", OpCH: "CH", OpCP: "CP",
	OpSWP: "SWP", OpSSWP: "SSWP", OpSSWPD: "SSWPD",
	OpISWP: "ISWP", OpISWPD: "ISWPD", OpSISWP: "SISWP", OpSISWPD: "SISWPD",
	OpCAN: "CAN", OpCCX: "CCX", OpCSWP: "CSWP",
}

var opcodeByName = func() map[string]StandardOpCode {
	m := make(map[string]StandardOpCode, len(nameByOpcode))
	for op, name := range nameByOpcode {
		m[name] = op
	}
	return m
}()

// OpcodeForName returns the Standard opcode for a gate identifier.
func OpcodeForName(name string) (StandardOpCode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}

// NameForOpcode returns the gate identifier for a Standard opcode.
func NameForOpcode(op StandardOpCode) (string, bool) {
	name, ok := nameByOpcode[op]
	return name, ok
}

// Param is a 64-bit instruction parameter, interpreted as Float, Int, or
// UInt depending on the opcode the caller knows about — the grammar
// itself carries no type tag per parameter, matching the reference.
type Param uint64

// FloatParam packs a float64 parameter by IEEE-754 bit reinterpretation.
func FloatParam(f float64) Param { return Param(math.Float64bits(f)) }

// AsFloat unpacks a parameter previously packed with FloatParam.
func (p Param) AsFloat() float64 { return math.Float64frombits(uint64(p)) }

// IntParam packs a signed integer parameter, sign-extended into 64 bits.
func IntParam(i int64) Param { return Param(uint64(i)) }

// AsInt unpacks a parameter previously packed with IntParam.
func (p Param) AsInt() int64 { return int64(p) }

// UIntParam packs an unsigned integer parameter.
func UIntParam(u uint64) Param { return Param(u) }

// AsUInt unpacks a parameter previously packed with UIntParam.
func (p Param) AsUInt() uint64 { return uint64(p) }

// Instruction is the tagged union of the four instruction shapes. Tag
// selects which of the per-shape fields below (PrimitiveOp, StandardOp,
// CustomName) is meaningful; Params and Targets are shared.
type Instruction struct {
	Tag Tag

	// Primitive body.
	PrimitiveOp PrimitiveOpCode

	// StandardGateOp body.
	StandardOp StandardOpCode

	// CustomGateOp body.
	CustomName string // at most 16 bytes, zero-padded on encode

	Params  []Param
	Targets []uint32
}

// Nop returns the empty instruction.
func Nop() Instruction { return Instruction{Tag: TagNop} }

// Alloc returns a Primitive(Alloc) instruction reserving n qubits.
func Alloc(n uint32) Instruction {
	return Instruction{Tag: TagPrimitive, PrimitiveOp: OpAlloc, Params: []Param{UIntParam(uint64(n))}}
}

// Reset returns a Primitive(Reset) instruction over [lo, hi).
func Reset(lo, hi uint32) Instruction {
	return Instruction{Tag: TagPrimitive, PrimitiveOp: OpReset, Params: []Param{UIntParam(uint64(lo)), UIntParam(uint64(hi))}}
}

// Measure returns a Primitive(Measure) instruction over the given targets.
func Measure(targets []uint32) Instruction {
	return Instruction{Tag: TagPrimitive, PrimitiveOp: OpMeasure, Targets: targets}
}

// StandardGate returns a StandardGateOp instruction.
func StandardGate(op StandardOpCode, params []Param, targets []uint32) Instruction {
	return Instruction{Tag: TagStandardGate, StandardOp: op, Params: params, Targets: targets}
}

// CustomGate returns a CustomGateOp instruction.
func CustomGate(name string, params []Param, targets []uint32) Instruction {
	return Instruction{Tag: TagCustomGate, CustomName: name, Params: params, Targets: targets}
}
