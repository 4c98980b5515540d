package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job ids are ULIDs: 26-character Crockford Base32 strings with a
// millisecond timestamp prefix, so ids sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewJobID returns a fresh ULID.
func NewJobID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in the first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in the remaining 10 bytes, with the sequence embedded in
	// bytes 6-7 to keep ids unique within one millisecond.
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeULID(b)
}

// encodeULID writes the 128 bits as 26 Crockford Base32 characters. The
// first character carries only the top 3 bits; every later character takes
// the next 5 bits down.
func encodeULID(b [16]byte) string {
	var out [26]byte
	out[0] = crockford[b[0]>>5]
	shift := 125
	for i := 1; i < 26; i++ {
		shift -= 5
		idx := 0
		for bit := 4; bit >= 0; bit-- {
			pos := shift + bit
			byteIdx := 15 - pos/8
			if b[byteIdx]&(1<<(pos%8)) != 0 {
				idx |= 1 << bit
			}
		}
		out[i] = crockford[idx]
	}
	return string(out[:])
}
