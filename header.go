package saltbox

import (
	"errors"
	"fmt"
)

const (
	formatName     = "SaltBox"
	formatMajor    = 1
	formatMinor    = 0
	modeEncryption = 0
)

// RecipientSlot is one entry of the header's recipient array: an (ignored)
// identifier and the wrapped-keys box sealed to that recipient.
type RecipientSlot struct {
	// Identifier is always nil on encode. On decode it is carried through
	// opaquely and never interpreted: a non-null value here names no
	// mechanism this format defines.
	Identifier  interface{}
	WrappedKeys []byte
}

// Header is the validated, Go-shaped view of the wire header's 5-tuple:
// format name, version, mode, ephemeral public key, and recipient slots.
type Header struct {
	FormatName      string
	Version         [2]int
	Mode            int
	EphemeralPublic [keySize]byte
	Recipients      []RecipientSlot
}

func buildHeader(ephemeralPublic [keySize]byte, slots []RecipientSlot) Header {
	return Header{
		FormatName:      formatName,
		Version:         [2]int{formatMajor, formatMinor},
		Mode:            modeEncryption,
		EphemeralPublic: ephemeralPublic,
		Recipients:      slots,
	}
}

// buildRecipientSlots wraps [sender_public, encryption_key] for every
// recipient under the header nonce, sealed with the ephemeral private key.
func buildRecipientSlots(ephemeral KeyPair, senderPublic, encryptionKey [keySize]byte, recipients [][keySize]byte) ([]RecipientSlot, error) {
	wrapped, err := encodeValue([]interface{}{senderPublic[:], encryptionKey[:]})
	if err != nil {
		return nil, newError(KindInvalidArgument, err)
	}
	nonce := nonceAt(noncePrefix(ephemeral.Public), headerNonceCounter)
	slots := make([]RecipientSlot, len(recipients))
	for i, recipientPublic := range recipients {
		slots[i] = RecipientSlot{
			Identifier:  nil,
			WrappedKeys: sealBox(wrapped, nonce, recipientPublic, ephemeral.Private),
		}
	}
	return slots, nil
}

func encodeHeader(h Header) ([]byte, error) {
	recipients := make([]interface{}, len(h.Recipients))
	for i, s := range h.Recipients {
		recipients[i] = []interface{}{nil, s.WrappedKeys}
	}
	return encodeValue([]interface{}{
		h.FormatName,
		[]interface{}{h.Version[0], h.Version[1]},
		h.Mode,
		h.EphemeralPublic[:],
		recipients,
	})
}

func decodeHeader(pr *packetReader) (Header, error) {
	var raw []interface{}
	if err := pr.readValue(&raw, KindMalformedHeader, KindMalformedHeader); err != nil {
		return Header{}, err
	}
	if len(raw) != 5 {
		return Header{}, newError(KindMalformedHeader, fmt.Errorf("header has %d fields, want 5", len(raw)))
	}

	formatNameRaw, ok := raw[0].(string)
	if !ok {
		return Header{}, newError(KindMalformedHeader, errors.New("format name is not a string"))
	}
	if formatNameRaw != formatName {
		return Header{}, newError(KindMalformedHeader, fmt.Errorf("unexpected format name %q", formatNameRaw))
	}

	versionRaw, ok := raw[1].([]interface{})
	if !ok || len(versionRaw) != 2 {
		return Header{}, newError(KindMalformedHeader, errors.New("version is not a 2-tuple"))
	}
	major, majorOK := toInt(versionRaw[0])
	minor, minorOK := toInt(versionRaw[1])
	if !majorOK || !minorOK {
		return Header{}, newError(KindMalformedHeader, errors.New("version components are not integers"))
	}
	if major != formatMajor || minor != formatMinor {
		return Header{}, newError(KindUnsupportedVersion, fmt.Errorf("version %d.%d", major, minor))
	}

	mode, ok := toInt(raw[2])
	if !ok {
		return Header{}, newError(KindMalformedHeader, errors.New("mode is not an integer"))
	}
	if mode != modeEncryption {
		return Header{}, newError(KindUnsupportedMode, fmt.Errorf("mode %d", mode))
	}

	ephemeralRaw, ok := raw[3].([]byte)
	if !ok || len(ephemeralRaw) != keySize {
		return Header{}, newError(KindMalformedHeader, errors.New("ephemeral public key is not a 32-byte string"))
	}
	var ephemeral [keySize]byte
	copy(ephemeral[:], ephemeralRaw)

	recipientsRaw, ok := raw[4].([]interface{})
	if !ok {
		return Header{}, newError(KindMalformedHeader, errors.New("recipients is not an array"))
	}
	slots := make([]RecipientSlot, len(recipientsRaw))
	for i, entry := range recipientsRaw {
		pairRaw, ok := entry.([]interface{})
		if !ok || len(pairRaw) != 2 {
			return Header{}, newError(KindMalformedHeader, fmt.Errorf("recipient slot %d is not a 2-tuple", i))
		}
		wrappedKeys, ok := pairRaw[1].([]byte)
		if !ok {
			return Header{}, newError(KindMalformedHeader, fmt.Errorf("recipient slot %d wrapped-keys box is not a byte string", i))
		}
		slots[i] = RecipientSlot{Identifier: pairRaw[0], WrappedKeys: wrappedKeys}
	}

	return Header{
		FormatName:      formatNameRaw,
		Version:         [2]int{major, minor},
		Mode:            mode,
		EphemeralPublic: ephemeral,
		Recipients:      slots,
	}, nil
}

// toInt normalizes the handful of integer types msgpack.Decode may produce
// when decoding into an interface{} slot.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	default:
		return 0, false
	}
}
