package saltbox

import (
	"bytes"
	"errors"
	"io"
)

// EncryptOptions tunes optional, non-wire-affecting behavior of Encrypt.
// The zero value is spec-compliant: crypto/rand for all randomness, and
// sequential (non-parallel) tag-box wrapping.
type EncryptOptions struct {
	// Rand overrides crypto/rand.Reader for ephemeral-key and
	// encryption-key generation. Exists so tests can make a message's
	// randomness deterministic; callers outside this package's own tests
	// should leave it nil.
	Rand io.Reader

	// Parallel fans the per-chunk, per-recipient tag-box wrap out across
	// one goroutine per recipient. Safe because every recipient's shared
	// secret is precomputed up front and independent; tag-box order within
	// each emitted packet is preserved regardless.
	Parallel bool
}

// Encrypt seals plaintext for every key in recipients, returning the
// complete framed ciphertext: header followed by the payload packet
// sequence. A fresh ephemeral key pair and a fresh symmetric encryption key
// are drawn for this call only.
//
// recipients must be non-empty; a caller that wants to address only
// themselves should pass their own public key explicitly, or call
// EncryptSelf.
func Encrypt(senderSK [keySize]byte, recipients [][keySize]byte, plaintext []byte, chunkSize int, opts *EncryptOptions) ([]byte, error) {
	if chunkSize < 1 {
		return nil, newError(KindInvalidArgument, errors.New("chunk_size must be at least 1"))
	}
	if len(recipients) == 0 {
		return nil, newError(KindInvalidArgument, errors.New("recipients must be non-empty; use EncryptSelf to self-address"))
	}

	var randSource io.Reader
	parallel := false
	if opts != nil {
		randSource = opts.Rand
		parallel = opts.Parallel
	}

	senderPublic := scalarBaseMult(senderSK)

	ephemeral, err := GenerateKeyPair(randSource)
	if err != nil {
		return nil, err
	}
	defer ephemeral.Zero()

	encryptionKeyBytes, err := randomBytes(randSource, keySize)
	if err != nil {
		return nil, err
	}
	var encryptionKey [keySize]byte
	copy(encryptionKey[:], encryptionKeyBytes)
	defer zeroBytes(encryptionKey[:])

	slots, err := buildRecipientSlots(ephemeral, senderPublic, encryptionKey, recipients)
	if err != nil {
		return nil, err
	}
	headerBytes, err := encodeHeader(buildHeader(ephemeral.Public, slots))
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Write(headerBytes)

	prefix := noncePrefix(ephemeral.Public)
	if err := encodePayload(&out, prefix, encryptionKey, senderSK, recipients, plaintext, chunkSize, parallel); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// EncryptSelf encrypts plaintext to the sender's own public key. Useful when
// a caller wants to address only themselves without building a one-element
// recipient slice by hand.
func EncryptSelf(senderSK [keySize]byte, plaintext []byte, chunkSize int, opts *EncryptOptions) ([]byte, error) {
	senderPublic := scalarBaseMult(senderSK)
	return Encrypt(senderSK, [][keySize]byte{senderPublic}, plaintext, chunkSize, opts)
}

// Decrypt parses ciphertext, locates the recipient slot wrapped for
// recipientSK, and verifies and reassembles the plaintext.
func Decrypt(ciphertext []byte, recipientSK [keySize]byte) ([]byte, error) {
	pr := newPacketReader(bytes.NewReader(ciphertext))

	header, err := decodeHeader(pr)
	if err != nil {
		return nil, err
	}

	senderPublic, encryptionKey, index, err := resolveRecipient(header.EphemeralPublic, recipientSK, header.Recipients)
	if err != nil {
		return nil, err
	}

	prefix := noncePrefix(header.EphemeralPublic)
	return decodePayload(pr, prefix, encryptionKey, senderPublic, recipientSK, len(header.Recipients), index)
}

// ParsedHeader is a read-only view of a decoded header, meant for inspection
// by an external caller. It carries no secrets and performs no recipient
// resolution.
type ParsedHeader struct {
	FormatName      string
	Version         [2]int
	Mode            int
	EphemeralPublic [keySize]byte
	RecipientCount  int
}

// Inspect parses and validates only the header of ciphertext (format tag,
// version, mode, ephemeral key, and recipient count), without attempting
// recipient resolution or payload decryption. Intended for an external
// pretty-printer to call; this package does not format output itself.
func Inspect(ciphertext []byte) (ParsedHeader, error) {
	pr := newPacketReader(bytes.NewReader(ciphertext))
	header, err := decodeHeader(pr)
	if err != nil {
		return ParsedHeader{}, err
	}
	return ParsedHeader{
		FormatName:      header.FormatName,
		Version:         header.Version,
		Mode:            header.Mode,
		EphemeralPublic: header.EphemeralPublic,
		RecipientCount:  len(header.Recipients),
	}, nil
}
