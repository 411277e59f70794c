package opcode

import "strconv"

// OperandInfo describes the operand layout of an instruction: either no
// operand (both fields zero), a fixed-width operand (Size > 0) or a
// variable-length operand preceded by a little-endian length prefix of
// PrefixSize bytes.
type OperandInfo struct {
	Size       int
	PrefixSize int
}

type attribute struct {
	name    string
	operand OperandInfo
}

var attrs = map[Opcode]attribute{
	PUSHINT8:   {"PUSHINT8", OperandInfo{Size: 1}},
	PUSHINT16:  {"PUSHINT16", OperandInfo{Size: 2}},
	PUSHINT32:  {"PUSHINT32", OperandInfo{Size: 4}},
	PUSHINT64:  {"PUSHINT64", OperandInfo{Size: 8}},
	PUSHINT128: {"PUSHINT128", OperandInfo{Size: 16}},
	PUSHINT256: {"PUSHINT256", OperandInfo{Size: 32}},

	PUSHT: {"PUSHT", OperandInfo{}},
	PUSHF: {"PUSHF", OperandInfo{}},

	PUSHA:    {"PUSHA", OperandInfo{Size: 4}},
	PUSHNULL: {"PUSHNULL", OperandInfo{}},

	PUSHDATA1: {"PUSHDATA1", OperandInfo{PrefixSize: 1}},
	PUSHDATA2: {"PUSHDATA2", OperandInfo{PrefixSize: 2}},
	PUSHDATA4: {"PUSHDATA4", OperandInfo{PrefixSize: 4}},

	PUSHM1: {"PUSHM1", OperandInfo{}},
	PUSH0:  {"PUSH0", OperandInfo{}},
	PUSH1:  {"PUSH1", OperandInfo{}},
	PUSH2:  {"PUSH2", OperandInfo{}},
	PUSH3:  {"PUSH3", OperandInfo{}},
	PUSH4:  {"PUSH4", OperandInfo{}},
	PUSH5:  {"PUSH5", OperandInfo{}},
	PUSH6:  {"PUSH6", OperandInfo{}},
	PUSH7:  {"PUSH7", OperandInfo{}},
	PUSH8:  {"PUSH8", OperandInfo{}},
	PUSH9:  {"PUSH9", OperandInfo{}},
	PUSH10: {"PUSH10", OperandInfo{}},
	PUSH11: {"PUSH11", OperandInfo{}},
	PUSH12: {"PUSH12", OperandInfo{}},
	PUSH13: {"PUSH13", OperandInfo{}},
	PUSH14: {"PUSH14", OperandInfo{}},
	PUSH15: {"PUSH15", OperandInfo{}},
	PUSH16: {"PUSH16", OperandInfo{}},

	NOP:       {"NOP", OperandInfo{}},
	JMP:       {"JMP", OperandInfo{Size: 1}},
	JMPL:      {"JMP_L", OperandInfo{Size: 4}},
	JMPIF:     {"JMPIF", OperandInfo{Size: 1}},
	JMPIFL:    {"JMPIF_L", OperandInfo{Size: 4}},
	JMPIFNOT:  {"JMPIFNOT", OperandInfo{Size: 1}},
	JMPIFNOTL: {"JMPIFNOT_L", OperandInfo{Size: 4}},
	JMPEQ:     {"JMPEQ", OperandInfo{Size: 1}},
	JMPEQL:    {"JMPEQ_L", OperandInfo{Size: 4}},
	JMPNE:     {"JMPNE", OperandInfo{Size: 1}},
	JMPNEL:    {"JMPNE_L", OperandInfo{Size: 4}},
	JMPGT:     {"JMPGT", OperandInfo{Size: 1}},
	JMPGTL:    {"JMPGT_L", OperandInfo{Size: 4}},
	JMPGE:     {"JMPGE", OperandInfo{Size: 1}},
	JMPGEL:    {"JMPGE_L", OperandInfo{Size: 4}},
	JMPLT:     {"JMPLT", OperandInfo{Size: 1}},
	JMPLTL:    {"JMPLT_L", OperandInfo{Size: 4}},
	JMPLE:     {"JMPLE", OperandInfo{Size: 1}},
	JMPLEL:    {"JMPLE_L", OperandInfo{Size: 4}},
	CALL:      {"CALL", OperandInfo{Size: 1}},
	CALLL:     {"CALL_L", OperandInfo{Size: 4}},
	CALLA:     {"CALLA", OperandInfo{}},
	CALLT:     {"CALLT", OperandInfo{Size: 2}},

	ABORT:      {"ABORT", OperandInfo{}},
	ASSERT:     {"ASSERT", OperandInfo{}},
	THROW:      {"THROW", OperandInfo{}},
	TRY:        {"TRY", OperandInfo{Size: 2}},
	TRYL:       {"TRY_L", OperandInfo{Size: 8}},
	ENDTRY:     {"ENDTRY", OperandInfo{Size: 1}},
	ENDTRYL:    {"ENDTRY_L", OperandInfo{Size: 4}},
	ENDFINALLY: {"ENDFINALLY", OperandInfo{}},

	RET:     {"RET", OperandInfo{}},
	SYSCALL: {"SYSCALL", OperandInfo{Size: 4}},

	DEPTH:    {"DEPTH", OperandInfo{}},
	DROP:     {"DROP", OperandInfo{}},
	NIP:      {"NIP", OperandInfo{}},
	XDROP:    {"XDROP", OperandInfo{}},
	CLEAR:    {"CLEAR", OperandInfo{}},
	DUP:      {"DUP", OperandInfo{}},
	OVER:     {"OVER", OperandInfo{}},
	PICK:     {"PICK", OperandInfo{}},
	TUCK:     {"TUCK", OperandInfo{}},
	SWAP:     {"SWAP", OperandInfo{}},
	ROT:      {"ROT", OperandInfo{}},
	ROLL:     {"ROLL", OperandInfo{}},
	REVERSE3: {"REVERSE3", OperandInfo{}},
	REVERSE4: {"REVERSE4", OperandInfo{}},
	REVERSEN: {"REVERSEN", OperandInfo{}},

	INITSSLOT: {"INITSSLOT", OperandInfo{Size: 1}},
	INITSLOT:  {"INITSLOT", OperandInfo{Size: 2}},
	LDSFLD0:   {"LDSFLD0", OperandInfo{}},
	LDSFLD1:   {"LDSFLD1", OperandInfo{}},
	LDSFLD2:   {"LDSFLD2", OperandInfo{}},
	LDSFLD3:   {"LDSFLD3", OperandInfo{}},
	LDSFLD4:   {"LDSFLD4", OperandInfo{}},
	LDSFLD5:   {"LDSFLD5", OperandInfo{}},
	LDSFLD6:   {"LDSFLD6", OperandInfo{}},
	LDSFLD:    {"LDSFLD", OperandInfo{Size: 1}},
	STSFLD0:   {"STSFLD0", OperandInfo{}},
	STSFLD1:   {"STSFLD1", OperandInfo{}},
	STSFLD2:   {"STSFLD2", OperandInfo{}},
	STSFLD3:   {"STSFLD3", OperandInfo{}},
	STSFLD4:   {"STSFLD4", OperandInfo{}},
	STSFLD5:   {"STSFLD5", OperandInfo{}},
	STSFLD6:   {"STSFLD6", OperandInfo{}},
	STSFLD:    {"STSFLD", OperandInfo{Size: 1}},
	LDLOC0:    {"LDLOC0", OperandInfo{}},
	LDLOC1:    {"LDLOC1", OperandInfo{}},
	LDLOC2:    {"LDLOC2", OperandInfo{}},
	LDLOC3:    {"LDLOC3", OperandInfo{}},
	LDLOC4:    {"LDLOC4", OperandInfo{}},
	LDLOC5:    {"LDLOC5", OperandInfo{}},
	LDLOC6:    {"LDLOC6", OperandInfo{}},
	LDLOC:     {"LDLOC", OperandInfo{Size: 1}},
	STLOC0:    {"STLOC0", OperandInfo{}},
	STLOC1:    {"STLOC1", OperandInfo{}},
	STLOC2:    {"STLOC2", OperandInfo{}},
	STLOC3:    {"STLOC3", OperandInfo{}},
	STLOC4:    {"STLOC4", OperandInfo{}},
	STLOC5:    {"STLOC5", OperandInfo{}},
	STLOC6:    {"STLOC6", OperandInfo{}},
	STLOC:     {"STLOC", OperandInfo{Size: 1}},
	LDARG0:    {"LDARG0", OperandInfo{}},
	LDARG1:    {"LDARG1", OperandInfo{}},
	LDARG2:    {"LDARG2", OperandInfo{}},
	LDARG3:    {"LDARG3", OperandInfo{}},
	LDARG4:    {"LDARG4", OperandInfo{}},
	LDARG5:    {"LDARG5", OperandInfo{}},
	LDARG6:    {"LDARG6", OperandInfo{}},
	LDARG:     {"LDARG", OperandInfo{Size: 1}},
	STARG0:    {"STARG0", OperandInfo{}},
	STARG1:    {"STARG1", OperandInfo{}},
	STARG2:    {"STARG2", OperandInfo{}},
	STARG3:    {"STARG3", OperandInfo{}},
	STARG4:    {"STARG4", OperandInfo{}},
	STARG5:    {"STARG5", OperandInfo{}},
	STARG6:    {"STARG6", OperandInfo{}},
	STARG:     {"STARG", OperandInfo{Size: 1}},

	NEWBUFFER: {"NEWBUFFER", OperandInfo{}},
	MEMCPY:    {"MEMCPY", OperandInfo{}},
	CAT:       {"CAT", OperandInfo{}},
	SUBSTR:    {"SUBSTR", OperandInfo{}},
	LEFT:      {"LEFT", OperandInfo{}},
	RIGHT:     {"RIGHT", OperandInfo{}},

	INVERT:   {"INVERT", OperandInfo{}},
	AND:      {"AND", OperandInfo{}},
	OR:       {"OR", OperandInfo{}},
	XOR:      {"XOR", OperandInfo{}},
	EQUAL:    {"EQUAL", OperandInfo{}},
	NOTEQUAL: {"NOTEQUAL", OperandInfo{}},

	SIGN:        {"SIGN", OperandInfo{}},
	ABS:         {"ABS", OperandInfo{}},
	NEGATE:      {"NEGATE", OperandInfo{}},
	INC:         {"INC", OperandInfo{}},
	DEC:         {"DEC", OperandInfo{}},
	ADD:         {"ADD", OperandInfo{}},
	SUB:         {"SUB", OperandInfo{}},
	MUL:         {"MUL", OperandInfo{}},
	DIV:         {"DIV", OperandInfo{}},
	MOD:         {"MOD", OperandInfo{}},
	POW:         {"POW", OperandInfo{}},
	SQRT:        {"SQRT", OperandInfo{}},
	MODMUL:      {"MODMUL", OperandInfo{}},
	MODPOW:      {"MODPOW", OperandInfo{}},
	SHL:         {"SHL", OperandInfo{}},
	SHR:         {"SHR", OperandInfo{}},
	NOT:         {"NOT", OperandInfo{}},
	BOOLAND:     {"BOOLAND", OperandInfo{}},
	BOOLOR:      {"BOOLOR", OperandInfo{}},
	NZ:          {"NZ", OperandInfo{}},
	NUMEQUAL:    {"NUMEQUAL", OperandInfo{}},
	NUMNOTEQUAL: {"NUMNOTEQUAL", OperandInfo{}},
	LT:          {"LT", OperandInfo{}},
	LE:          {"LE", OperandInfo{}},
	GT:          {"GT", OperandInfo{}},
	GE:          {"GE", OperandInfo{}},
	MIN:         {"MIN", OperandInfo{}},
	MAX:         {"MAX", OperandInfo{}},
	WITHIN:      {"WITHIN", OperandInfo{}},

	PACKMAP:      {"PACKMAP", OperandInfo{}},
	PACKSTRUCT:   {"PACKSTRUCT", OperandInfo{}},
	PACK:         {"PACK", OperandInfo{}},
	UNPACK:       {"UNPACK", OperandInfo{}},
	NEWARRAY0:    {"NEWARRAY0", OperandInfo{}},
	NEWARRAY:     {"NEWARRAY", OperandInfo{}},
	NEWARRAYT:    {"NEWARRAY_T", OperandInfo{Size: 1}},
	NEWSTRUCT0:   {"NEWSTRUCT0", OperandInfo{}},
	NEWSTRUCT:    {"NEWSTRUCT", OperandInfo{}},
	NEWMAP:       {"NEWMAP", OperandInfo{}},
	SIZE:         {"SIZE", OperandInfo{}},
	HASKEY:       {"HASKEY", OperandInfo{}},
	KEYS:         {"KEYS", OperandInfo{}},
	VALUES:       {"VALUES", OperandInfo{}},
	PICKITEM:     {"PICKITEM", OperandInfo{}},
	APPEND:       {"APPEND", OperandInfo{}},
	SETITEM:      {"SETITEM", OperandInfo{}},
	REVERSEITEMS: {"REVERSEITEMS", OperandInfo{}},
	REMOVE:       {"REMOVE", OperandInfo{}},
	CLEARITEMS:   {"CLEARITEMS", OperandInfo{}},
	POPITEM:      {"POPITEM", OperandInfo{}},

	ISNULL:  {"ISNULL", OperandInfo{}},
	ISTYPE:  {"ISTYPE", OperandInfo{Size: 1}},
	CONVERT: {"CONVERT", OperandInfo{Size: 1}},

	ABORTMSG:  {"ABORTMSG", OperandInfo{}},
	ASSERTMSG: {"ASSERTMSG", OperandInfo{}},
}

// IsValid returns true if the opcode passed is valid (defined in the VM).
func IsValid(op Opcode) bool {
	_, ok := attrs[op]
	return ok
}

// Operand returns the operand layout for the given opcode, with ok being
// false for undefined opcodes.
func Operand(op Opcode) (OperandInfo, bool) {
	a, ok := attrs[op]
	return a.operand, ok
}

// String implements the fmt.Stringer interface.
func (op Opcode) String() string {
	if a, ok := attrs[op]; ok {
		return a.name
	}
	return "Opcode(" + strconv.Itoa(int(op)) + ")"
}
