package rig

import "unicode/utf16"

// String16 is a UTF-16 code unit sequence. Hosts whose text stack is
// UTF-16 native (Windows APIs, some script engines) exchange strings
// with the core in this form; everything else uses plain Go strings.
type String16 []uint16

// NewString16 encodes a UTF-8 string as UTF-16.
func NewString16(s string) String16 {
	return String16(utf16.Encode([]rune(s)))
}

// String decodes the UTF-16 sequence back to a UTF-8 string. Invalid
// surrogate pairs decode to the Unicode replacement character.
func (s String16) String() string {
	return string(utf16.Decode(s))
}

// Len returns the number of UTF-16 code units, not runes; characters
// outside the basic multilingual plane count as two.
func (s String16) Len() int {
	return len(s)
}
