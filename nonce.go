package saltbox

import "github.com/sec51/convert/bigendian"

// noncePrefixPreimagePrefix is the fixed preamble hashed together with the
// ephemeral public key to derive a message's 16-byte nonce prefix.
var noncePrefixPreimagePrefix = []byte("SaltPack\x00encryption nonce prefix\x00")

const (
	// headerNonceCounter is the counter used for every per-recipient
	// wrapped-keys box in the header.
	headerNonceCounter = uint64(0)
	// payloadCounterBase is the first payload-packet counter; counter 1 is
	// reserved and must never be used by this mode.
	payloadCounterBase = uint64(2)
)

// noncePrefix derives the 16-byte nonce prefix for a message from its
// ephemeral public key. It is a pure function: the same ephemeral key
// always yields the same prefix.
func noncePrefix(ephemeralPublic [keySize]byte) [16]byte {
	preimage := make([]byte, 0, len(noncePrefixPreimagePrefix)+keySize)
	preimage = append(preimage, noncePrefixPreimagePrefix...)
	preimage = append(preimage, ephemeralPublic[:]...)
	digest := sha512Sum(preimage)
	var prefix [16]byte
	copy(prefix[:], digest[:16])
	return prefix
}

// nonceAt composes a 24-byte nonce from a message's prefix and a packet
// counter, big-endian as required by spec.
func nonceAt(prefix [16]byte, counter uint64) [nonceSize]byte {
	var n [nonceSize]byte
	copy(n[:16], prefix[:])
	ctr := bigendian.ToUint64(counter)
	copy(n[16:], ctr[:])
	return n
}

// payloadNonceCounter maps a zero-based packet index to its nonce counter,
// skipping the reserved counter 1.
func payloadNonceCounter(packetIndex uint64) uint64 {
	return packetIndex + payloadCounterBase
}
