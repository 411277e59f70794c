// Package emit provides a convenient way to emit instructions for the NEO
// virtual machine into a binary writer. It never validates the resulting
// script, only individual instruction encodings.
package emit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/R3E-Network/neo3-sdk/pkg/encoding/bigint"
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/smartcontract/callflag"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/interopnames"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/opcode"
	"github.com/holiman/uint256"
)

// Instruction emits a VM Instruction with data to the given buffer.
func Instruction(w *io.BinWriter, op opcode.Opcode, b []byte) {
	w.WriteB(byte(op))
	w.WriteBytes(b)
}

// Opcodes emits a single VM Instruction without arguments to the given
// buffer.
func Opcodes(w *io.BinWriter, ops ...opcode.Opcode) {
	for _, op := range ops {
		w.WriteB(byte(op))
	}
}

// Bool emits a bool type to the given buffer.
func Bool(w *io.BinWriter, ok bool) {
	if ok {
		Opcodes(w, opcode.PUSHT)
		return
	}
	Opcodes(w, opcode.PUSHF)
}

func padRight(s int, buf []byte) []byte {
	l := len(buf)
	buf = buf[:s]
	if buf[l-1]&0x80 != 0 {
		for i := l; i < s; i++ {
			buf[i] = 0xFF
		}
	}
	return buf
}

// Int emits an int type to the given buffer.
func Int(w *io.BinWriter, i int64) {
	if smallInt(w, i) {
		return
	}
	bigInt(w, big.NewInt(i))
}

// BigInt emits a big-integer type to the given buffer. The value must fit
// into 256 bits.
func BigInt(w *io.BinWriter, n *big.Int) {
	if n.IsInt64() && smallInt(w, n.Int64()) {
		return
	}
	bigInt(w, n)
}

// smallInt emits the integer if it fits into a single dedicated push
// opcode and reports whether it did so.
func smallInt(w *io.BinWriter, i int64) bool {
	switch {
	case i == -1:
		Opcodes(w, opcode.PUSHM1)
	case i >= 0 && i <= 16:
		val := opcode.Opcode(int(opcode.PUSH0) + int(i))
		Opcodes(w, val)
	default:
		return false
	}
	return true
}

func bigInt(w *io.BinWriter, n *big.Int) {
	if w.Err != nil {
		return
	}
	buf := bigint.ToPreallocatedBytes(n, make([]byte, 0, 32))
	if len(buf) == 0 || len(buf) > bigint.MaxBytesLen {
		w.Err = errors.New("wrong big.Int size")
		return
	}
	// Pad the minimal encoding up to the nearest power-of-two operand
	// size of the PUSHINT* family.
	padSize := paddedLen(len(buf))
	var op opcode.Opcode
	switch padSize {
	case 1:
		op = opcode.PUSHINT8
	case 2:
		op = opcode.PUSHINT16
	case 4:
		op = opcode.PUSHINT32
	case 8:
		op = opcode.PUSHINT64
	case 16:
		op = opcode.PUSHINT128
	case 32:
		op = opcode.PUSHINT256
	}
	Opcodes(w, op)
	w.WriteBytes(padRight(padSize, buf[:len(buf):32]))
}

func paddedLen(n int) int {
	for _, p := range []int{1, 2, 4, 8, 16, 32} {
		if n <= p {
			return p
		}
	}
	return 0
}

// Array emits an array of elements to the given buffer. They're pushed in
// the reverse order and then packed, so the resulting VM array keeps the
// original ordering.
func Array(w *io.BinWriter, es ...any) {
	if len(es) == 0 {
		Opcodes(w, opcode.NEWARRAY0)
		return
	}
	for i := len(es) - 1; i >= 0; i-- {
		element(w, es[i])
		if w.Err != nil {
			return
		}
	}
	Int(w, int64(len(es)))
	Opcodes(w, opcode.PACK)
}

// element emits a single stack item of any supported type.
func element(w *io.BinWriter, e any) {
	switch e := e.(type) {
	case []any:
		Array(w, e...)
	case int64:
		Int(w, e)
	case uint64:
		BigInt(w, new(big.Int).SetUint64(e))
	case int32:
		Int(w, int64(e))
	case uint32:
		Int(w, int64(e))
	case int16:
		Int(w, int64(e))
	case uint16:
		Int(w, int64(e))
	case int8:
		Int(w, int64(e))
	case uint8:
		Int(w, int64(e))
	case int:
		Int(w, int64(e))
	case *big.Int:
		BigInt(w, e)
	case *uint256.Int:
		BigInt(w, e.ToBig())
	case string:
		String(w, e)
	case util.Uint160:
		Bytes(w, e.BytesBE())
	case util.Uint256:
		Bytes(w, e.BytesBE())
	case []byte:
		Bytes(w, e)
	case bool:
		Bool(w, e)
	default:
		if e != nil {
			w.Err = fmt.Errorf("unsupported type: %T", e)
			return
		}
		Opcodes(w, opcode.PUSHNULL)
	}
}

// Map emits a map from a flat key/value sequence. Pairs are pushed in the
// reverse order and then packed, so the resulting VM map keeps the
// original ordering.
func Map(w *io.BinWriter, pairs ...any) {
	if len(pairs)%2 != 0 {
		w.Err = fmt.Errorf("invalid map length %d", len(pairs))
		return
	}
	if len(pairs) == 0 {
		Opcodes(w, opcode.NEWMAP)
		return
	}
	for i := len(pairs) - 2; i >= 0; i -= 2 {
		element(w, pairs[i+1])
		element(w, pairs[i])
		if w.Err != nil {
			return
		}
	}
	Int(w, int64(len(pairs)/2))
	Opcodes(w, opcode.PACKMAP)
}

// String emits a string to the given buffer.
func String(w *io.BinWriter, s string) {
	Bytes(w, []byte(s))
}

// Bytes emits a byte array to the given buffer using the shortest
// applicable PUSHDATA opcode.
func Bytes(w *io.BinWriter, b []byte) {
	var n = len(b)

	switch {
	case n < 0x100:
		Instruction(w, opcode.PUSHDATA1, []byte{byte(n)})
	case n < 0x10000:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(n))
		Instruction(w, opcode.PUSHDATA2, buf)
	default:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(n))
		Instruction(w, opcode.PUSHDATA4, buf)
	}
	w.WriteBytes(b)
}

// Syscall emits the syscall API to the given buffer.
// Syscall API string cannot be 0.
func Syscall(w *io.BinWriter, api string) {
	if w.Err != nil {
		return
	} else if len(api) == 0 {
		w.Err = errors.New("syscall api cannot be of length 0")
		return
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, interopnames.ToID([]byte(api)))
	Instruction(w, opcode.SYSCALL, buf)
}

// Call emits a call Instruction with the label to the given buffer.
func Call(w *io.BinWriter, op opcode.Opcode, label uint16) {
	Jmp(w, op, label)
}

// Jmp emits a jump Instruction along with the label to the given buffer.
func Jmp(w *io.BinWriter, op opcode.Opcode, label uint16) {
	if w.Err != nil {
		return
	} else if !isInstructionJmp(op) {
		w.Err = fmt.Errorf("opcode %s is not a jump or call type", op.String())
		return
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint16(buf, label)
	Instruction(w, op, buf)
}

// AppCallNoArgs emits a call to the provided contract's method with
// the given call flags, assuming the arguments are already on the stack.
func AppCallNoArgs(w *io.BinWriter, scriptHash util.Uint160, operation string, f callflag.CallFlag) {
	Int(w, int64(f))
	String(w, operation)
	Bytes(w, scriptHash.BytesBE())
	Syscall(w, interopnames.SystemContractCall)
}

// AppCall emits an APPCALL with the given operation, call flags and
// arguments.
func AppCall(w *io.BinWriter, scriptHash util.Uint160, operation string, f callflag.CallFlag, args ...any) {
	Array(w, args...)
	AppCallNoArgs(w, scriptHash, operation, f)
}

func isInstructionJmp(op opcode.Opcode) bool {
	return opcode.JMP <= op && op <= opcode.CALLL || op == opcode.ENDTRYL
}
