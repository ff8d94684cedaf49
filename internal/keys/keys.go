// Package keys defines the key-code enumeration shared with the calculator
// engine on the far side of the FIFO. The numeric values are part of the wire
// contract: the engine is compiled against the same numbering and there is no
// version negotiation, so codes are append-only and never renumbered.
package keys

import "encoding/binary"

// Code identifies one logical calculator key. The zero value KeyNone is
// reserved and never produced by a registry lookup.
type Code uint32

const (
	KeyNone Code = 0

	// Digits
	Key0 Code = 1
	Key1 Code = 2
	Key2 Code = 3
	Key3 Code = 4
	Key4 Code = 5
	Key5 Code = 6
	Key6 Code = 7
	Key7 Code = 8
	Key8 Code = 9
	Key9 Code = 10

	// Basic operations
	KeyPlus      Code = 11
	KeyMinus     Code = 12
	KeyMultiply  Code = 13
	KeyDivide    Code = 14
	KeyEqual     Code = 15
	KeyClear     Code = 16
	KeyDot       Code = 17
	KeyBackspace Code = 18

	// Scientific functions
	KeySin        Code = 19
	KeyCos        Code = 20
	KeyTan        Code = 21
	KeyLog        Code = 22
	KeyLn         Code = 23
	KeySqrt       Code = 24
	KeyPower      Code = 25
	KeyFactorial  Code = 26
	KeyPi         Code = 27
	KeyE          Code = 28
	KeyParenLeft  Code = 29
	KeyParenRight Code = 30

	// Mode, shift and fx-991 function shortcuts
	KeyShift     Code = 31
	KeyAlpha     Code = 32
	KeyMode      Code = 33
	KeyOnAC      Code = 34
	KeyXPowY     Code = 35
	KeyXPowMinus Code = 36
	KeyLog10     Code = 37
	KeyExp       Code = 38
	KeyPercent   Code = 39
	KeyAns       Code = 40
	KeyEng       Code = 41
	KeySetup     Code = 42
	KeyStat      Code = 43
	KeyMatrix    Code = 44
	KeyVector    Code = 45
	KeyCmplx     Code = 46
	KeyBaseN     Code = 47
	KeyEquation  Code = 48
	KeyCalc      Code = 49
	KeySolve     Code = 50
	KeyIntegrate Code = 51
	KeyDiff      Code = 52
	KeyTable     Code = 53
	KeyReset     Code = 54
	KeyRanHash   Code = 55
	KeyDRG       Code = 56
	KeyHyp       Code = 57
	KeySto       Code = 58
	KeyRcl       Code = 59
	KeyConst     Code = 60
	KeyConv      Code = 61
	KeyFunc      Code = 62
	KeyOptn      Code = 63
)

// Family groups keys for documentation and UI purposes only; the transport
// treats all codes uniformly.
type Family string

const (
	FamilyDigit      Family = "digit"
	FamilyOperator   Family = "operator"
	FamilyScientific Family = "scientific"
	FamilyMode       Family = "mode"
)

// Info describes one registry entry.
type Info struct {
	Name   string `json:"name" yaml:"name"`
	Code   Code   `json:"code" yaml:"code"`
	Family Family `json:"family" yaml:"family"`
}

// table is the canonical symbolic-name enumeration. Order matches the numeric
// codes; names match the engine's header symbols exactly (case-sensitive).
var table = []Info{
	{"KEY0", Key0, FamilyDigit},
	{"KEY1", Key1, FamilyDigit},
	{"KEY2", Key2, FamilyDigit},
	{"KEY3", Key3, FamilyDigit},
	{"KEY4", Key4, FamilyDigit},
	{"KEY5", Key5, FamilyDigit},
	{"KEY6", Key6, FamilyDigit},
	{"KEY7", Key7, FamilyDigit},
	{"KEY8", Key8, FamilyDigit},
	{"KEY9", Key9, FamilyDigit},
	{"KEY_PLUS", KeyPlus, FamilyOperator},
	{"KEY_MINUS", KeyMinus, FamilyOperator},
	{"KEY_MULTIPLY", KeyMultiply, FamilyOperator},
	{"KEY_DIVIDE", KeyDivide, FamilyOperator},
	{"KEY_EQUAL", KeyEqual, FamilyOperator},
	{"KEY_CLEAR", KeyClear, FamilyOperator},
	{"KEY_DOT", KeyDot, FamilyOperator},
	{"KEY_BACKSPACE", KeyBackspace, FamilyOperator},
	{"KEY_SIN", KeySin, FamilyScientific},
	{"KEY_COS", KeyCos, FamilyScientific},
	{"KEY_TAN", KeyTan, FamilyScientific},
	{"KEY_LOG", KeyLog, FamilyScientific},
	{"KEY_LN", KeyLn, FamilyScientific},
	{"KEY_SQRT", KeySqrt, FamilyScientific},
	{"KEY_POWER", KeyPower, FamilyScientific},
	{"KEY_FACTORIAL", KeyFactorial, FamilyScientific},
	{"KEY_PI", KeyPi, FamilyScientific},
	{"KEY_E", KeyE, FamilyScientific},
	{"KEY_PAREN_LEFT", KeyParenLeft, FamilyScientific},
	{"KEY_PAREN_RIGHT", KeyParenRight, FamilyScientific},
	{"KEY_SHIFT", KeyShift, FamilyMode},
	{"KEY_ALPHA", KeyAlpha, FamilyMode},
	{"KEY_MODE", KeyMode, FamilyMode},
	{"KEY_ON_AC", KeyOnAC, FamilyMode},
	{"KEY_X_POW_Y", KeyXPowY, FamilyScientific},
	{"KEY_X_POW_MINUS1", KeyXPowMinus, FamilyScientific},
	{"KEY_LOG10", KeyLog10, FamilyScientific},
	{"KEY_EXP", KeyExp, FamilyScientific},
	{"KEY_PERCENT", KeyPercent, FamilyScientific},
	{"KEY_ANS", KeyAns, FamilyMode},
	{"KEY_ENG", KeyEng, FamilyMode},
	{"KEY_SETUP", KeySetup, FamilyMode},
	{"KEY_STAT", KeyStat, FamilyMode},
	{"KEY_MATRIX", KeyMatrix, FamilyMode},
	{"KEY_VECTOR", KeyVector, FamilyMode},
	{"KEY_CMPLX", KeyCmplx, FamilyMode},
	{"KEY_BASE_N", KeyBaseN, FamilyMode},
	{"KEY_EQUATION", KeyEquation, FamilyMode},
	{"KEY_CALC", KeyCalc, FamilyMode},
	{"KEY_SOLVE", KeySolve, FamilyMode},
	{"KEY_INTEGRATE", KeyIntegrate, FamilyScientific},
	{"KEY_DIFF", KeyDiff, FamilyScientific},
	{"KEY_TABLE", KeyTable, FamilyMode},
	{"KEY_RESET", KeyReset, FamilyMode},
	{"KEY_RAN_HASH", KeyRanHash, FamilyScientific},
	{"KEY_DRG", KeyDRG, FamilyMode},
	{"KEY_HYP", KeyHyp, FamilyScientific},
	{"KEY_STO", KeySto, FamilyMode},
	{"KEY_RCL", KeyRcl, FamilyMode},
	{"KEY_CONST", KeyConst, FamilyMode},
	{"KEY_CONV", KeyConv, FamilyMode},
	{"KEY_FUNC", KeyFunc, FamilyMode},
	{"KEY_OPTN", KeyOptn, FamilyMode},
}

var (
	byName map[string]Code
	byCode map[Code]string
)

func init() {
	byName = make(map[string]Code, len(table))
	byCode = make(map[Code]string, len(table))
	for _, e := range table {
		byName[e.Name] = e.Code
		byCode[e.Code] = e.Name
	}
}

// Lookup resolves a symbolic key name to its code. Matching is exact and
// case-sensitive. The second return is false for unknown names.
func Lookup(name string) (Code, bool) {
	c, ok := byName[name]
	return c, ok
}

// Name returns the canonical symbolic name for a code, or "" if the code is
// not part of the enumeration (including KeyNone).
func (c Code) Name() string {
	return byCode[c]
}

// Valid reports whether c is an assigned key code. KeyNone is reserved and
// not considered valid.
func (c Code) Valid() bool {
	_, ok := byCode[c]
	return ok
}

// FrameSize is the fixed width of one wire frame.
const FrameSize = 4

// Frame encodes the code as the 4-byte little-endian frame written to the
// pipe. There is no header, length prefix or checksum; the reader consumes
// the stream in FrameSize units.
func (c Code) Frame() [FrameSize]byte {
	var b [FrameSize]byte
	binary.LittleEndian.PutUint32(b[:], uint32(c))
	return b
}

// DecodeFrame reverses Frame.
func DecodeFrame(b [FrameSize]byte) Code {
	return Code(binary.LittleEndian.Uint32(b[:]))
}

// All returns the registry entries in code order. The returned slice is a
// copy; the registry itself is immutable after init.
func All() []Info {
	out := make([]Info, len(table))
	copy(out, table)
	return out
}

// Count is the number of assigned keys (KeyNone excluded).
func Count() int {
	return len(table)
}
