package core

// utoa converts an unsigned integer to a string without the fmt package
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// boolToU32 maps a flag onto an event value
func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
