package bytecode

import (
	"encoding/binary"
	"fmt"
)

// ByteCode is a length-prefix-free concatenation of encoded instructions
// (each instruction is self-delimiting via its n_params/n_targets counts).
type ByteCode []byte

// Encode concatenates the wire encoding of every instruction in seq.
func Encode(seq []Instruction) ByteCode {
	var out ByteCode
	for _, ins := range seq {
		out = append(out, encodeOne(ins)...)
	}
	return out
}

func encodeOne(ins Instruction) []byte {
	switch ins.Tag {
	case TagNop:
		return []byte{byte(TagNop)}
	case TagPrimitive:
		// Measure carries its target addresses as its params.
		params := ins.Params
		if ins.PrimitiveOp == OpMeasure {
			params = make([]Param, len(ins.Targets))
			for i, t := range ins.Targets {
				params[i] = UIntParam(uint64(t))
			}
		}
		buf := []byte{byte(TagPrimitive), byte(ins.PrimitiveOp), byte(len(params))}
		for _, p := range params {
			buf = appendU64(buf, uint64(p))
		}
		return buf
	case TagStandardGate:
		buf := []byte{byte(TagStandardGate), byte(ins.StandardOp), byte(len(ins.Params))}
		for _, p := range ins.Params {
			buf = appendU64(buf, uint64(p))
		}
		buf = append(buf, byte(len(ins.Targets)))
		for _, t := range ins.Targets {
			buf = appendU32(buf, t)
		}
		return buf
	case TagCustomGate:
		buf := []byte{byte(TagCustomGate)}
		buf = append(buf, nameBytes16(ins.CustomName)...)
		buf = append(buf, byte(len(ins.Params)))
		for _, p := range ins.Params {
			buf = appendU64(buf, uint64(p))
		}
		buf = append(buf, byte(len(ins.Targets)))
		for _, t := range ins.Targets {
			buf = appendU32(buf, t)
		}
		return buf
	default:
		panic(fmt.Sprintf("bytecode: unknown tag %d", ins.Tag))
	}
}

func appendU64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func nameBytes16(name string) []byte {
	buf := make([]byte, 16)
	copy(buf, []byte(name))
	return buf
}

// Decode parses every instruction in code, in order. An error aborts
// decoding at the first malformed instruction (a truncated stream).
func Decode(code ByteCode) ([]Instruction, error) {
	var out []Instruction
	b := []byte(code)
	for len(b) > 0 {
		ins, rest, err := decodeOne(b)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
		b = rest
	}
	return out, nil
}

func decodeOne(b []byte) (Instruction, []byte, error) {
	if len(b) < 1 {
		return Instruction{}, nil, fmt.Errorf("bytecode: truncated stream: missing tag byte")
	}
	tag := Tag(b[0])
	b = b[1:]
	switch tag {
	case TagNop:
		return Instruction{Tag: TagNop}, b, nil
	case TagPrimitive:
		if len(b) < 2 {
			return Instruction{}, nil, fmt.Errorf("bytecode: truncated Primitive header")
		}
		op := PrimitiveOpCode(b[0])
		nParams := int(b[1])
		b = b[2:]
		params, rest, err := readParams(b, nParams)
		if err != nil {
			return Instruction{}, nil, err
		}
		if op == OpMeasure {
			var targets []uint32
			for _, p := range params {
				targets = append(targets, uint32(p))
			}
			return Instruction{Tag: TagPrimitive, PrimitiveOp: op, Targets: targets}, rest, nil
		}
		return Instruction{Tag: TagPrimitive, PrimitiveOp: op, Params: params}, rest, nil
	case TagStandardGate:
		if len(b) < 2 {
			return Instruction{}, nil, fmt.Errorf("bytecode: truncated StandardGateOp header")
		}
		op := StandardOpCode(b[0])
		nParams := int(b[1])
		b = b[2:]
		params, rest, err := readParams(b, nParams)
		if err != nil {
			return Instruction{}, nil, err
		}
		targets, rest2, err := readTargets(rest)
		if err != nil {
			return Instruction{}, nil, err
		}
		return Instruction{Tag: TagStandardGate, StandardOp: op, Params: params, Targets: targets}, rest2, nil
	case TagCustomGate:
		if len(b) < 17 {
			return Instruction{}, nil, fmt.Errorf("bytecode: truncated CustomGateOp header")
		}
		name := trimName(b[:16])
		nParams := int(b[16])
		b = b[17:]
		params, rest, err := readParams(b, nParams)
		if err != nil {
			return Instruction{}, nil, err
		}
		targets, rest2, err := readTargets(rest)
		if err != nil {
			return Instruction{}, nil, err
		}
		return Instruction{Tag: TagCustomGate, CustomName: name, Params: params, Targets: targets}, rest2, nil
	default:
		return Instruction{}, nil, fmt.Errorf("bytecode: unknown tag byte 0x%02x", tag)
	}
}

func readParams(b []byte, n int) ([]Param, []byte, error) {
	if n == 0 {
		return nil, b, nil
	}
	if len(b) < n*8 {
		return nil, nil, fmt.Errorf("bytecode: truncated parameter block: want %d params, have %d bytes", n, len(b))
	}
	params := make([]Param, n)
	for i := 0; i < n; i++ {
		params[i] = Param(binary.LittleEndian.Uint64(b[i*8 : i*8+8]))
	}
	return params, b[n*8:], nil
}

func readTargets(b []byte) ([]uint32, []byte, error) {
	if len(b) < 1 {
		return nil, nil, fmt.Errorf("bytecode: truncated stream: missing n_targets byte")
	}
	n := int(b[0])
	b = b[1:]
	if n == 0 {
		return nil, b, nil
	}
	if len(b) < n*4 {
		return nil, nil, fmt.Errorf("bytecode: truncated target block: want %d targets, have %d bytes", n, len(b))
	}
	targets := make([]uint32, n)
	for i := 0; i < n; i++ {
		targets[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return targets, b[n*4:], nil
}

func trimName(b []byte) string {
	i := 0
	for i < len(b) && b[i] != 0 {
		i++
	}
	return string(b[:i])
}
