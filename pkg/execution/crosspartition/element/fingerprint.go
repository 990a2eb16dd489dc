package element

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/spaolacci/murmur3"
)

func f64bits(f float64) uint64 { return math.Float64bits(f) }

// UInt128 is a 128-bit value, stored as (Hi, Lo) 64-bit halves. It is the
// fingerprint type produced by Fingerprint and the hash type used as keys
// in the distinct map and grouping table.
type UInt128 struct {
	Hi uint64
	Lo uint64
}

// Zero is the zero-valued fingerprint. Nothing in this package produces or
// checks it; an Ordered DistinctMap tracks "no previous element" with its
// own flag rather than a sentinel fingerprint.
var Zero = UInt128{}

func (u UInt128) Equal(o UInt128) bool { return u.Hi == o.Hi && u.Lo == o.Lo }

// String renders the value as decimal text, the wire format spec.md §6
// mandates for GroupingTable cursor keys ("decimal textual form of
// UInt128").
func (u UInt128) String() string {
	n := new(big.Int).Lsh(new(big.Int).SetUint64(u.Hi), 64)
	n.Or(n, new(big.Int).SetUint64(u.Lo))
	return n.String()
}

// ParseUInt128 is the inverse of String. It returns an error (the caller
// is expected to surface it as a BadRequest) on malformed input.
func ParseUInt128(s string) (UInt128, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UInt128{}, fmt.Errorf("empty UInt128 token")
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return UInt128{}, fmt.Errorf("malformed UInt128 token: %q", s)
	}
	if n.BitLen() > 128 {
		return UInt128{}, fmt.Errorf("UInt128 token out of range: %q", s)
	}
	mask64 := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(n, mask64).Uint64()
	hi := new(big.Int).Rsh(n, 64).Uint64()
	return UInt128{Hi: hi, Lo: lo}, nil
}

// fingerprintSeed is pinned so fingerprints are stable across process
// restarts (spec.md §4.2). Any fixed value works; this one has no special
// meaning beyond being fixed and documented.
const fingerprintSeed uint32 = 0x9747b28c

// Type tag bytes, one per Kind, prefixed onto every hashed value so that a
// 1 (int), 1.0 (float), "1" (string), and true never collide (spec §3/§4.2).
const (
	tagUndefined byte = 0x00
	tagNull      byte = 0x01
	tagBool      byte = 0x02
	tagInt64     byte = 0x03
	tagFloat64   byte = 0x04
	tagString    byte = 0x05
	tagArray     byte = 0x06
	tagObject    byte = 0x07
)

// Fingerprint computes the 128-bit MurmurHash3 content hash of e's
// canonical serialization, per spec.md §4.2: a type tag prefixes every
// value, numbers hash their raw little-endian IEEE-754 bits, strings hash
// their raw UTF-8 bytes, arrays are order-sensitive, and object keys are
// visited in sorted-by-codepoint order so key reordering does not change
// the fingerprint.
func Fingerprint(e Element) UInt128 {
	var buf []byte
	buf = appendCanonical(buf, e)
	h1, h2 := murmur3.Sum128WithSeed(buf, fingerprintSeed)
	return UInt128{Hi: h1, Lo: h2}
}

// FingerprintTuple hashes an ordered sequence of elements as a single unit
// (used for the GROUP BY grouping-key tuple, spec.md §4.5) the same way an
// Array element would be hashed, without allocating an intermediate Array.
func FingerprintTuple(items []Element) UInt128 {
	var buf []byte
	buf = append(buf, tagArray)
	buf = appendVarint(buf, uint64(len(items)))
	for _, it := range items {
		buf = appendCanonical(buf, it)
	}
	h1, h2 := murmur3.Sum128WithSeed(buf, fingerprintSeed)
	return UInt128{Hi: h1, Lo: h2}
}

func appendCanonical(buf []byte, e Element) []byte {
	switch e.kind {
	case KindUndefined:
		return append(buf, tagUndefined)
	case KindNull:
		return append(buf, tagNull)
	case KindBool:
		b := byte(0x00)
		if e.b {
			b = 0x01
		}
		return append(buf, tagBool, b)
	case KindInt64:
		buf = append(buf, tagInt64)
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], uint64(e.i))
		return append(buf, tmp[:]...)
	case KindFloat64:
		buf = append(buf, tagFloat64)
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], f64bits(e.f))
		return append(buf, tmp[:]...)
	case KindString:
		buf = append(buf, tagString)
		return append(buf, []byte(e.s)...)
	case KindArray:
		buf = append(buf, tagArray)
		buf = appendVarint(buf, uint64(len(e.arr)))
		for _, child := range e.arr {
			buf = appendCanonical(buf, child)
		}
		return buf
	case KindObject:
		buf = append(buf, tagObject)
		sorted := e.sortedObject()
		buf = appendVarint(buf, uint64(len(sorted)))
		for _, f := range sorted {
			buf = appendCanonical(buf, NewString(f.Key))
			buf = appendCanonical(buf, f.Value)
		}
		return buf
	default:
		return append(buf, tagUndefined)
	}
}

func appendVarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}
