package smartcontract

import (
	"github.com/R3E-Network/neo3-sdk/pkg/io"
	"github.com/R3E-Network/neo3-sdk/pkg/smartcontract/callflag"
	"github.com/R3E-Network/neo3-sdk/pkg/util"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/emit"
	"github.com/R3E-Network/neo3-sdk/pkg/vm/opcode"
)

// Builder is used to create arbitrary scripts from the set of methods it
// provides. Each method emits some set of opcodes performing an action and
// (in most cases) returning a result. These chunks of code can be composed
// together to perform several actions in the same script (and therefore in
// the same transaction), but the end result (in terms of state changes
// and/or resulting items) of the script totally depends on what it contains
// and that's the responsibility of the Builder user.
type Builder struct {
	bw *io.BufBinWriter
}

// NewBuilder creates a new Builder instance.
func NewBuilder() *Builder {
	return &Builder{bw: io.NewBufBinWriter()}
}

// InvokeMethod is the most generic contract method invoker, the code it
// produces packs all of the arguments given into an array and calls some
// method of the contract. It does not limit the call flags in any way
// (always uses callflag.All). The correctness of this invocation (number
// and type of parameters) is out of scope of this method, as well as the
// return value, if the contract's method returns something this value just
// remains on the execution stack.
func (b *Builder) InvokeMethod(contract util.Uint160, method string, params ...any) {
	b.InvokeWithFlags(contract, method, callflag.All, params...)
}

// InvokeWithFlags is similar to InvokeMethod but allows to specify the
// flags the call is made with.
func (b *Builder) InvokeWithFlags(contract util.Uint160, method string, f callflag.CallFlag, params ...any) {
	emit.AppCall(b.bw.BinWriter, contract, method, f, params...)
}

// Assert emits an ASSERT opcode that expects a Boolean value to be on the
// stack, checks if it's true and aborts the transaction if it's not.
func (b *Builder) Assert() {
	emit.Opcodes(b.bw.BinWriter, opcode.ASSERT)
}

// InvokeWithAssert emits an invocation of the method (see InvokeMethod)
// with an ASSERT after the invocation. The presumption is that the method
// called returns a Boolean value signalling the success or failure of the
// operation. This pattern is pretty common, NEP-11 or NEP-17 "transfer"
// methods do exactly that as well as NEO's "vote". The ASSERT then allows
// to simplify transaction status checking, if the action fails so does the
// whole transaction.
func (b *Builder) InvokeWithAssert(contract util.Uint160, method string, params ...any) {
	b.InvokeMethod(contract, method, params...)
	b.Assert()
}

// Len returns the current length of the script.
func (b *Builder) Len() int {
	return b.bw.Len()
}

// Script returns the current script, you can't use Builder after invoking
// this method unless you Reset it.
func (b *Builder) Script() ([]byte, error) {
	err := b.bw.Err
	if err != nil {
		return nil, err
	}
	return b.bw.Bytes(), nil
}

// Reset resets the Builder, allowing to reuse the same script buffer (but
// the previous script will be overwritten there).
func (b *Builder) Reset() {
	b.bw.Reset()
}

// CreateCallScript returns a script that calls the given method of the
// given contract with the given parameters.
func CreateCallScript(contract util.Uint160, method string, params ...any) ([]byte, error) {
	b := NewBuilder()
	b.InvokeMethod(contract, method, params...)
	return b.Script()
}

// CreateCallWithAssertScript is similar to CreateCallScript, but the
// produced script asserts the Boolean returned by the call to be true.
func CreateCallWithAssertScript(contract util.Uint160, method string, params ...any) ([]byte, error) {
	b := NewBuilder()
	b.InvokeWithAssert(contract, method, params...)
	return b.Script()
}
