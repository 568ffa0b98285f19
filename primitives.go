package saltbox

import (
	"crypto/rand"
	"crypto/sha512"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
	tagSize   = 16 // secretbox.Overhead and the Poly1305 tag/authenticator size
)

// KeyPair is a curve25519 private scalar and its derived public point.
// Public is always a pure function of Private; the two are only carried
// together for convenience.
type KeyPair struct {
	Public  [keySize]byte
	Private [keySize]byte
}

// GenerateKeyPair draws a fresh key pair from randSource, which may be nil
// to use crypto/rand.Reader. It is used both for long-term keys (by an
// external caller) and, internally, for the per-message ephemeral key.
func GenerateKeyPair(randSource io.Reader) (KeyPair, error) {
	if randSource == nil {
		randSource = rand.Reader
	}
	pub, priv, err := box.GenerateKey(randSource)
	if err != nil {
		return KeyPair{}, newError(KindRngFailure, err)
	}
	return KeyPair{Public: *pub, Private: *priv}, nil
}

// Zero overwrites the private half of the key pair. Best-effort only: Go
// offers no guarantee the compiler won't have copied the bytes elsewhere.
func (kp *KeyPair) Zero() {
	zeroBytes(kp.Private[:])
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func scalarBaseMult(sk [keySize]byte) [keySize]byte {
	var pk [keySize]byte
	curve25519.ScalarBaseMult(&pk, &sk)
	return pk
}

// precompute is crypto_box_beforenm: the X25519 shared secret between
// ownPrivate and peerPublic, suitable for repeated sealAfterNM/openAfterNM
// calls without redoing the scalar multiplication.
func precompute(peerPublic, ownPrivate [keySize]byte) [keySize]byte {
	var shared [keySize]byte
	box.Precompute(&shared, &peerPublic, &ownPrivate)
	return shared
}

func sealAfterNM(msg []byte, nonce [nonceSize]byte, shared [keySize]byte) []byte {
	return box.SealAfterPrecomputation(nil, msg, &nonce, &shared)
}

func openAfterNM(ct []byte, nonce [nonceSize]byte, shared [keySize]byte) ([]byte, bool) {
	return box.OpenAfterPrecomputation(nil, ct, &nonce, &shared)
}

// sealBox is the non-precomputed public-key box. It is only ever used once
// per recipient, to build the header's wrapped-keys box, so there is no
// benefit to precomputing it.
func sealBox(msg []byte, nonce [nonceSize]byte, peerPublic, ownPrivate [keySize]byte) []byte {
	return box.Seal(nil, msg, &nonce, &peerPublic, &ownPrivate)
}

func sealSecret(msg []byte, nonce [nonceSize]byte, key [keySize]byte) []byte {
	return secretbox.Seal(nil, msg, &nonce, &key)
}

func openSecret(ct []byte, nonce [nonceSize]byte, key [keySize]byte) ([]byte, bool) {
	return secretbox.Open(nil, ct, &nonce, &key)
}

func sha512Sum(data []byte) [64]byte {
	return sha512.Sum512(data)
}

func randomBytes(randSource io.Reader, n int) ([]byte, error) {
	if randSource == nil {
		randSource = rand.Reader
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(randSource, buf); err != nil {
		return nil, newError(KindRngFailure, err)
	}
	return buf, nil
}
