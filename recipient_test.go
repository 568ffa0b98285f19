package saltbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRecipientFindsMatchingSlot(t *testing.T) {
	ephemeral, err := GenerateKeyPair(nil)
	assert.NoError(t, err)
	senderPublic := scalarBaseMult(deterministicKey(0xAA))
	var encryptionKey [keySize]byte
	encryptionKey[0] = 0x7

	skA := deterministicKey(0x01)
	skB := deterministicKey(0x02)
	recipients := [][keySize]byte{scalarBaseMult(skA), scalarBaseMult(skB)}
	slots, err := buildRecipientSlots(ephemeral, senderPublic, encryptionKey, recipients)
	assert.NoError(t, err)

	sp, ek, idx, err := resolveRecipient(ephemeral.Public, skB, slots)
	assert.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, senderPublic, sp)
	assert.Equal(t, encryptionKey, ek)
}

func TestResolveRecipientNoMatch(t *testing.T) {
	ephemeral, err := GenerateKeyPair(nil)
	assert.NoError(t, err)
	senderPublic := scalarBaseMult(deterministicKey(0xAA))
	var encryptionKey [keySize]byte

	skA := deterministicKey(0x01)
	skC := deterministicKey(0x03)
	recipients := [][keySize]byte{scalarBaseMult(skA)}
	slots, err := buildRecipientSlots(ephemeral, senderPublic, encryptionKey, recipients)
	assert.NoError(t, err)

	_, _, _, err = resolveRecipient(ephemeral.Public, skC, slots)
	assert.ErrorIs(t, err, ErrNoMatchingRecipient)
}

func TestResolveRecipientFirstMatchWins(t *testing.T) {
	// Two slots wrapped for the same recipient key: resolution must return
	// the first one and never examine the second.
	ephemeral, err := GenerateKeyPair(nil)
	assert.NoError(t, err)
	senderPublicFirst := scalarBaseMult(deterministicKey(0xAA))
	senderPublicSecond := scalarBaseMult(deterministicKey(0xBB))
	var keyFirst, keySecond [keySize]byte
	keyFirst[0] = 0x01
	keySecond[0] = 0x02

	sk := deterministicKey(0x01)
	pk := scalarBaseMult(sk)

	slotsFirst, err := buildRecipientSlots(ephemeral, senderPublicFirst, keyFirst, [][keySize]byte{pk})
	assert.NoError(t, err)
	slotsSecond, err := buildRecipientSlots(ephemeral, senderPublicSecond, keySecond, [][keySize]byte{pk})
	assert.NoError(t, err)

	slots := append(slotsFirst, slotsSecond...)
	sp, ek, idx, err := resolveRecipient(ephemeral.Public, sk, slots)
	assert.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, senderPublicFirst, sp)
	assert.Equal(t, keyFirst, ek)
}
