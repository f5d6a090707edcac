// Package opcode holds the static mnemonic→operation table for the target
// instruction set. The table is a literal map built at compile time; there is
// no runtime discovery step.
package opcode

// Op is a bytecode operation value.
type Op uint16

const (
	Nop      Op = 0x00
	Break    Op = 0x01
	LdArg    Op = 0x02
	LdLoc    Op = 0x03
	StLoc    Op = 0x04
	LdNull   Op = 0x05
	LdcI4    Op = 0x06
	LdcR8    Op = 0x07
	LdStr    Op = 0x08
	Dup      Op = 0x09
	Pop      Op = 0x0a
	Call     Op = 0x0b
	CallVirt Op = 0x0c
	NewObj   Op = 0x0d
	Ret      Op = 0x0e
	Br       Op = 0x0f
	BrTrue   Op = 0x10
	BrFalse  Op = 0x11
	Add      Op = 0x12
	Sub      Op = 0x13
	Mul      Op = 0x14
	Div      Op = 0x15
	Rem      Op = 0x16
	Neg      Op = 0x17
	Not      Op = 0x18
	Ceq      Op = 0x19
	Cgt      Op = 0x1a
	Clt      Op = 0x1b
	LdFld    Op = 0x1c
	StFld    Op = 0x1d
	LdSFld   Op = 0x1e
	StSFld   Op = 0x1f
	Box      Op = 0x20
	Unbox    Op = 0x21
	CastCls  Op = 0x22
	IsInst   Op = 0x23
	Throw    Op = 0x24
	Leave    Op = 0x25
	EndFin   Op = 0x26
	Switch   Op = 0x27
)

// byName is the authoritative mnemonic table.
var byName = map[string]Op{
	"nop":        Nop,
	"break":      Break,
	"ldarg":      LdArg,
	"ldloc":      LdLoc,
	"stloc":      StLoc,
	"ldnull":     LdNull,
	"ldc.i4":     LdcI4,
	"ldc.r8":     LdcR8,
	"ldstr":      LdStr,
	"dup":        Dup,
	"pop":        Pop,
	"call":       Call,
	"callvirt":   CallVirt,
	"newobj":     NewObj,
	"ret":        Ret,
	"br":         Br,
	"brtrue":     BrTrue,
	"brfalse":    BrFalse,
	"add":        Add,
	"sub":        Sub,
	"mul":        Mul,
	"div":        Div,
	"rem":        Rem,
	"neg":        Neg,
	"not":        Not,
	"ceq":        Ceq,
	"cgt":        Cgt,
	"clt":        Clt,
	"ldfld":      LdFld,
	"stfld":      StFld,
	"ldsfld":     LdSFld,
	"stsfld":     StSFld,
	"box":        Box,
	"unbox":      Unbox,
	"castclass":  CastCls,
	"isinst":     IsInst,
	"throw":      Throw,
	"leave":      Leave,
	"endfinally": EndFin,
	"switch":     Switch,
}

var byValue map[Op]string

func init() {
	byValue = make(map[Op]string, len(byName))
	for name, op := range byName {
		byValue[op] = name
	}
}

// Lookup resolves a mnemonic to its operation value.
func Lookup(name string) (Op, bool) {
	op, ok := byName[name]
	return op, ok
}

// String returns the mnemonic, or "op(NN)" for values outside the table.
func (o Op) String() string {
	if name, ok := byValue[o]; ok {
		return name
	}
	return "op(" + itoa(uint16(o)) + ")"
}

// OperandWidth is the encoded operand size in bytes; the instruction size is
// one byte of opcode plus this.
func (o Op) OperandWidth() uint32 {
	switch o {
	case LdArg, LdLoc, StLoc:
		return 2
	case LdcI4, Br, BrTrue, BrFalse, Leave, Switch,
		Call, CallVirt, NewObj, LdStr,
		LdFld, StFld, LdSFld, StSFld,
		Box, Unbox, CastCls, IsInst:
		return 4
	case LdcR8:
		return 8
	default:
		return 0
	}
}

func itoa(v uint16) string {
	if v == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
