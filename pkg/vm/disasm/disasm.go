// Package disasm decodes NEO VM scripts back into instruction sequences
// and renders them in a human-readable form.
package disasm

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/R3E-Network/neo3-sdk/pkg/vm/interopnames"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/opcode"
)

// Instruction is a single decoded VM instruction.
type Instruction struct {
	// Offset is the instruction's position in the script.
	Offset int
	// Opcode is the instruction itself.
	Opcode opcode.Opcode
	// Operand holds the raw operand bytes, without the length prefix for
	// PUSHDATA instructions.
	Operand []byte
}

// Decode decodes the whole script into a sequence of instructions. It
// stops at the first invalid opcode or truncated operand returning an
// error that includes the offending offset.
func Decode(script []byte) ([]Instruction, error) {
	var res []Instruction

	for pos := 0; pos < len(script); {
		instr, next, err := DecodeOne(script, pos)
		if err != nil {
			return nil, err
		}
		res = append(res, instr)
		pos = next
	}
	return res, nil
}

// DecodeOne decodes a single instruction at the given offset and returns
// it along with the offset of the next instruction.
func DecodeOne(script []byte, pos int) (Instruction, int, error) {
	if pos < 0 || pos >= len(script) {
		return Instruction{}, 0, fmt.Errorf("offset %d is out of script bounds", pos)
	}
	op := opcode.Opcode(script[pos])
	info, ok := opcode.Operand(op)
	if !ok {
		return Instruction{}, 0, fmt.Errorf("invalid opcode 0x%02x at offset %d", byte(op), pos)
	}

	next := pos + 1
	size := info.Size
	if info.PrefixSize > 0 {
		if next+info.PrefixSize > len(script) {
			return Instruction{}, 0, fmt.Errorf("%s at offset %d: truncated operand length", op, pos)
		}
		switch info.PrefixSize {
		case 1:
			size = int(script[next])
		case 2:
			size = int(binary.LittleEndian.Uint16(script[next:]))
		case 4:
			n := binary.LittleEndian.Uint32(script[next:])
			if n > uint32(len(script)) {
				return Instruction{}, 0, fmt.Errorf("%s at offset %d: operand is too big", op, pos)
			}
			size = int(n)
		}
		next += info.PrefixSize
	}
	if next+size > len(script) {
		return Instruction{}, 0, fmt.Errorf("%s at offset %d: truncated operand", op, pos)
	}
	instr := Instruction{
		Offset: pos,
		Opcode: op,
		Operand: script[next : next+size],
	}
	return instr, next + size, nil
}

// String renders a single instruction the way the CLI shows it: opcode
// name followed by the operand. SYSCALL operands are resolved to interop
// names when known, the rest are shown as hex.
func (i Instruction) String() string {
	if len(i.Operand) == 0 {
		return i.Opcode.String()
	}
	if i.Opcode == opcode.SYSCALL && len(i.Operand) == 4 {
		id := binary.LittleEndian.Uint32(i.Operand)
		if name, err := interopnames.FromID(id); err == nil {
			return fmt.Sprintf("%s %s", i.Opcode, name)
		}
	}
	return fmt.Sprintf("%s %s", i.Opcode, hex.EncodeToString(i.Operand))
}

// Disasm decodes the script and returns its full listing, one instruction
// per line prefixed with the offset.
func Disasm(script []byte) (string, error) {
	instrs, err := Decode(script)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, in := range instrs {
		fmt.Fprintf(&sb, "%-8d %s\n", in.Offset, in)
	}
	return sb.String(), nil
}
