package headers

// foldChar maps uppercase ASCII letters to their lowercase equivalent and
// leaves every other byte untouched. Header names are ASCII per HTTP
// conventions, so no Unicode case folding is attempted: non-ASCII bytes
// pass through verbatim.
func foldChar(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// hashName computes the case-insensitive hash of a header name. The name
// is scanned from the last byte to the first, accumulating 31*h plus the
// folded byte. The reverse scan is a compatibility contract with the
// reference hash scheme: the produced values must match it bit for bit,
// so the direction must not be flipped even though a forward scan would
// hash just as well.
func hashName(name string) uint32 {
	var h uint32
	for i := len(name) - 1; i >= 0; i-- {
		h = 31*h + uint32(foldChar(name[i]))
	}
	return h
}

// namesEqual reports whether two header names are equal under ASCII case
// folding: equal lengths and every byte pair equal either exactly or after
// folding both sides. Names equal under namesEqual always produce equal
// hashName values, which keeps the table consistent.
func namesEqual(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] && foldChar(a[i]) != foldChar(b[i]) {
			return false
		}
	}
	return true
}
