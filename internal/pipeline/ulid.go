package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are 26-character Crockford Base32 ULIDs: 48 bits of millisecond
// timestamp followed by 80 bits of randomness, so IDs sort by creation time.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	idMu    sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

func newJobID() string {
	idMu.Lock()
	defer idMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ts<<16)
	rand.Read(b[6:])
	// Sequence in the first random bytes keeps IDs unique within one ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeCrockford(b)
}

// encodeCrockford renders 128 bits as 26 base32 digits, most significant
// first; the leading digit carries the two spare bits.
func encodeCrockford(b [16]byte) string {
	var out [26]byte
	pos := 25
	acc := uint32(0)
	nbits := 0
	for i := 15; i >= 0; i-- {
		acc |= uint32(b[i]) << nbits
		nbits += 8
		for nbits >= 5 && pos > 0 {
			out[pos] = crockford[acc&31]
			acc >>= 5
			nbits -= 5
			pos--
		}
	}
	out[0] = crockford[acc&31]
	return string(out[:])
}
