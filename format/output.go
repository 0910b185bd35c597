package format

import "reflect"

// output tracks the write position in a bounded destination. pos keeps counting after the
// destination is full so the caller learns the untruncated length.
type output struct {
	buf []byte
	pos int
}

func (o *output) putChar(c byte) {
	if o.pos < len(o.buf)-1 {
		o.buf[o.pos] = c
	}
	o.pos++
}

func (o *output) putString(s []byte) {
	for _, c := range s {
		o.putChar(c)
	}
}

// padTo emits enough pad characters for a field of length characters to fill width
func (o *output) padTo(length, width int, pad byte) {
	for w := length; w < width; w++ {
		o.putChar(pad)
	}
}

// putUint renders value in base 10 or 16. Digits are collected least significant first into a
// scratch buffer, then the padding is emitted, then the digits most significant first.
func (o *output) putUint(value uint64, base uint64, width int, pad byte, upper bool) {
	o.putNumber(false, value, base, width, pad, upper)
}

// putInt renders a signed decimal. The minus sign is always emitted first and counts toward width,
// so any padding sits between the sign and the digits.
func (o *output) putInt(value int64, width int, pad byte) {
	if value < 0 {
		o.putNumber(true, uint64(-value), 10, width, pad, false)
		return
	}
	o.putNumber(false, uint64(value), 10, width, pad, false)
}

func (o *output) putNumber(negative bool, value uint64, base uint64, width int, pad byte, upper bool) {
	letters := byte('a')
	if upper {
		letters = 'A'
	}

	var scratch [24]byte
	i := 0
	if value == 0 {
		scratch[i] = '0'
		i++
	}
	for value > 0 {
		digit := byte(value % base)
		if digit < 10 {
			scratch[i] = '0' + digit
		} else {
			scratch[i] = letters + digit - 10
		}
		i++
		value /= base
	}

	length := i
	if negative {
		length++
	}

	if negative {
		o.putChar('-')
	}
	o.padTo(length, width, pad)

	for i > 0 {
		i--
		o.putChar(scratch[i])
	}
}

func (o *output) terminate() {
	if len(o.buf) == 0 {
		return
	}
	if o.pos < len(o.buf) {
		o.buf[o.pos] = 0
	} else {
		o.buf[len(o.buf)-1] = 0
	}
}

// integerBits returns the two's complement bits of an integer argument, sign extended to 64 bits.
// Anything that is not an integer reads as 0, the way a missing vararg would.
func integerBits(arg any) uint64 {
	value, _ := integerArg(arg)
	return value
}

func integerArg(arg any) (uint64, bool) {
	switch v := arg.(type) {
	case nil:
		return 0, false
	case int:
		return uint64(v), true
	case int8:
		return uint64(v), true
	case int16:
		return uint64(v), true
	case int32:
		return uint64(v), true
	case int64:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case uintptr:
		return uint64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}

	// Named integer types such as heap.Ptr
	value := reflect.ValueOf(arg)
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(value.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return value.Uint(), true
	}

	return 0, false
}
