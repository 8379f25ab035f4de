// Package requestid generates identifiers for websocket connections and
// request envelopes: UUIDv7 encoded as a 26-character Crockford base32
// string, so IDs sort by creation time.
package requestid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32 alphabet
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail of an ID; tests inject a
// deterministic one.
type RandSource interface {
	Intn(n int) int
}

// New returns a fresh ID using crypto/rand for the random bits
func New() string {
	return NewWithRand(nil)
}

// NewWithRand returns a fresh ID drawing random bytes from src; a nil
// src falls back to crypto/rand.
func NewWithRand(src RandSource) string {
	return encode(uuidv7(src))
}

// uuidv7 builds a 128-bit UUIDv7: 48-bit millisecond timestamp, version
// and variant bits, and 74 random bits.
func uuidv7(src RandSource) [16]byte {
	var id [16]byte

	now := time.Now().UnixMilli()
	id[0] = byte(now >> 40)
	id[1] = byte(now >> 32)
	id[2] = byte(now >> 24)
	id[3] = byte(now >> 16)
	id[4] = byte(now >> 8)
	id[5] = byte(now)

	if src != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(src.Intn(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("requestid: crypto/rand failed: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return id
}

// encode writes 128 bits as 26 base32 characters, MSB first, with the
// final character right-padded by two zero bits.
func encode(id [16]byte) string {
	var out [26]byte

	acc := uint32(0)
	bits := 0
	n := 0
	for _, b := range id {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			out[n] = alphabet[(acc>>(bits-5))&0x1f]
			bits -= 5
			n++
		}
	}
	out[n] = alphabet[(acc&(1<<bits-1))<<(5-bits)]

	return string(out[:])
}

// Validate checks the length, alphabet and leading character of an ID
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("id must be 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("id first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
