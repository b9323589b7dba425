package hexconv

// Halfbyte maps a character to the value of the hexadecimal digit it stands
// for. Any entry above 0x0f marks a character that isn't a hexadecimal digit,
// so validity of a pair can be checked as a|b > 0x0f.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 0x0a
	}

	for c := byte('A'); c <= 'F'; c++ {
		table[c] = c - 'A' + 0x0A
	}

	return table
}()
