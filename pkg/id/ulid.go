// Package id generates lexicographically sortable identifiers.
// Request ids and SMTP Message-ID headers are built from them.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"strings"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID returns a 26-character ULID: 48 bits of milliseconds followed by 80 random bits.
func NewULID() string {
	return newULID(time.Now())
}

func newULID(now time.Time) string {
	var raw [16]byte
	ms := uint64(now.UnixMilli())
	for i := 5; i >= 0; i-- {
		raw[i] = byte(ms)
		ms >>= 8
	}
	if _, err := rand.Read(raw[6:]); err != nil {
		binary.BigEndian.PutUint64(raw[6:14], uint64(now.UnixNano()))
	}

	// 128 bits encode into 26 base32 chars; the first char carries the top 3 bits.
	var out [26]byte
	var acc uint
	var bits uint
	pos := 25
	for i := 15; i >= 0; i-- {
		acc |= uint(raw[i]) << bits
		bits += 8
		for bits >= 5 {
			out[pos] = crockfordBase32[acc&0x1F]
			pos--
			acc >>= 5
			bits -= 5
		}
	}
	out[0] = crockfordBase32[acc&0x1F]
	return string(out[:])
}

// MessageID builds an RFC 5322 Message-ID value for the given sender domain.
//
// Example:
//
//	id.MessageID("gmail.com") // "<01HXY...@gmail.com>"
func MessageID(domain string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		domain = "mailblaster.local"
	}
	return "<" + NewULID() + "@" + domain + ">"
}
