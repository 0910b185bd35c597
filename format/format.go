// Package format is a bounded printf interpreter. It never writes past the end of the destination,
// always terminates the output with a NUL byte when there is room for one, and reports how long the
// output would have been had the destination been large enough.
//
// The supported grammar is a small subset of C's:
//
//	%[0][width][l|ll|z](d|i|u|x|X|p|s|c|%)
//
// Any other conversion character is echoed back as '%' followed by that character.
package format

// Formatter holds the hooks that tie the interpreter to an address space. The zero value is usable.
type Formatter struct {
	// ResolveString is consulted when a %s directive receives an integer argument instead of a
	// string. It returns the bytes of the string at addr, which may run past the terminator, and
	// false if addr cannot be read. When nil, integer arguments to %s render as "(null)".
	ResolveString func(addr uint64) ([]byte, bool)
}

type lengthModifier int

const (
	lengthDefault lengthModifier = iota
	lengthLong
	lengthLongLong
	lengthSize
)

type directive struct {
	pad    byte
	width  int
	length lengthModifier
}

// wide reports whether integer arguments keep all 64 bits rather than being truncated to a C int
func (d directive) wide() bool {
	return d.length != lengthDefault
}

var nullText = []byte("(null)")

// Snprintf formats args according to format into dst. See Vsnprintf.
func Snprintf(dst []byte, format string, args ...any) int {
	var f Formatter
	return f.Vsnprintf(dst, format, args)
}

// Vsnprintf formats args according to format into dst, writing at most len(dst)-1 bytes of text
// followed by a NUL. It returns the length of the untruncated output: a return value of len(dst)
// or more means the output was truncated. An empty dst receives nothing.
func Vsnprintf(dst []byte, format string, args []any) int {
	var f Formatter
	return f.Vsnprintf(dst, format, args)
}

// Snprintf is Vsnprintf with variadic arguments
func (f *Formatter) Snprintf(dst []byte, format string, args ...any) int {
	return f.Vsnprintf(dst, format, args)
}

// Vsnprintf behaves as the package-level Vsnprintf, resolving %s addresses through f
func (f *Formatter) Vsnprintf(dst []byte, format string, args []any) int {
	out := output{buf: dst}
	argIndex := 0
	nextArg := func() (any, bool) {
		if argIndex >= len(args) {
			return nil, false
		}
		arg := args[argIndex]
		argIndex++
		return arg, true
	}

	for i := 0; i < len(format); {
		if format[i] != '%' {
			out.putChar(format[i])
			i++
			continue
		}
		i++

		d := directive{pad: ' '}
		if i < len(format) && format[i] == '0' {
			d.pad = '0'
			i++
		}

		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			d.width = d.width*10 + int(format[i]-'0')
			i++
		}

		if i < len(format) {
			switch format[i] {
			case 'l':
				d.length = lengthLong
				i++
				if i < len(format) && format[i] == 'l' {
					d.length = lengthLongLong
					i++
				}
			case 'z':
				d.length = lengthSize
				i++
			}
		}

		if i >= len(format) {
			// Dangling directive at the end of the format
			out.putChar('%')
			break
		}

		conversion := format[i]
		i++

		switch conversion {
		case 'd', 'i':
			arg, _ := nextArg()
			value := int64(integerBits(arg))
			if !d.wide() {
				value = int64(int32(value))
			}
			out.putInt(value, d.width, d.pad)
		case 'u':
			arg, _ := nextArg()
			out.putUint(d.unsigned(arg), 10, d.width, d.pad, false)
		case 'x':
			arg, _ := nextArg()
			out.putUint(d.unsigned(arg), 16, d.width, d.pad, false)
		case 'X':
			arg, _ := nextArg()
			out.putUint(d.unsigned(arg), 16, d.width, d.pad, true)
		case 'p':
			arg, _ := nextArg()
			out.putString([]byte("0x"))
			out.putUint(integerBits(arg), 16, d.width, '0', false)
		case 's':
			arg, _ := nextArg()
			text := f.stringArg(arg)
			out.padTo(len(text), d.width, d.pad)
			out.putString(text)
		case 'c':
			arg, ok := nextArg()
			out.padTo(1, d.width, d.pad)
			if ok {
				out.putChar(byte(integerBits(arg)))
			}
		case '%':
			out.putChar('%')
		default:
			out.putChar('%')
			out.putChar(conversion)
		}
	}

	out.terminate()
	return out.pos
}

func (d directive) unsigned(arg any) uint64 {
	value := integerBits(arg)
	if !d.wide() {
		value = uint64(uint32(value))
	}
	return value
}

// stringArg returns the text of a %s argument up to, but not including, its terminator
func (f *Formatter) stringArg(arg any) []byte {
	switch v := arg.(type) {
	case nil:
		return nullText
	case string:
		return cString([]byte(v))
	case []byte:
		if v == nil {
			return nullText
		}
		return cString(v)
	}

	addr, ok := integerArg(arg)
	if !ok || addr == 0 || f.ResolveString == nil {
		return nullText
	}

	data, ok := f.ResolveString(addr)
	if !ok {
		return nullText
	}
	return cString(data)
}

func cString(data []byte) []byte {
	for i, c := range data {
		if c == 0 {
			return data[:i]
		}
	}
	return data
}
