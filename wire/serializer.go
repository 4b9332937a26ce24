// Package wire is the text encoding spoken between a game host and a remote
// seat: one command per line, numbers in unsigned hexadecimal and names in
// base64.
package wire

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed wraps every decoding failure.
var ErrMalformed = errors.New("wire: malformed payload")

const base = 16

// SerializeInt writes v as its unsigned 32-bit pattern, so -1 is "ffffffff".
func SerializeInt(v int32) string {
	return strconv.FormatUint(uint64(uint32(v)), base)
}

func DeserializeInt(s string) (int32, error) {
	u, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: int %q: %v", ErrMalformed, s, err)
	}
	return int32(uint32(u)), nil
}

// SerializeLong is the lowercase hex form of v.
func SerializeLong(v uint64) string {
	return strconv.FormatUint(v, base)
}

func DeserializeLong(s string) (uint64, error) {
	u, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: long %q: %v", ErrMalformed, s, err)
	}
	return u, nil
}

// SerializeString encodes s as standard base64, so it never contains a space
// or a comma.
func SerializeString(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func DeserializeString(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: string %q: %v", ErrMalformed, s, err)
	}
	return string(b), nil
}

// Combine joins parts with delim.
func Combine(delim rune, parts ...string) string {
	return strings.Join(parts, string(delim))
}

// Split is the inverse of Combine.
func Split(delim rune, s string) []string {
	return strings.Split(s, string(delim))
}
