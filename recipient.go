package saltbox

// resolveRecipient walks the header's recipient slots looking for the one
// wrapped for recipientSK: the first slot that opens wins, and a per-slot
// open failure is the expected "not this slot" signal, never surfaced on its
// own. Only if every slot fails is NoMatchingRecipient returned.
func resolveRecipient(ephemeralPublic, recipientSK [keySize]byte, slots []RecipientSlot) (senderPublic, encryptionKey [keySize]byte, index int, err error) {
	ephemeralBeforeNM := precompute(ephemeralPublic, recipientSK)
	nonce := nonceAt(noncePrefix(ephemeralPublic), headerNonceCounter)

	for i, slot := range slots {
		opened, ok := openAfterNM(slot.WrappedKeys, nonce, ephemeralBeforeNM)
		if !ok {
			continue
		}

		var raw []interface{}
		if err := decodeValue(opened, &raw); err != nil {
			continue // a slot that opens but doesn't parse behaves like a non-match
		}
		if len(raw) != 2 {
			continue
		}
		senderPub, ok1 := raw[0].([]byte)
		encKey, ok2 := raw[1].([]byte)
		if !ok1 || !ok2 || len(senderPub) != keySize || len(encKey) != keySize {
			continue
		}

		var sp, ek [keySize]byte
		copy(sp[:], senderPub)
		copy(ek[:], encKey)
		return sp, ek, i, nil
	}

	return [keySize]byte{}, [keySize]byte{}, 0, newError(KindNoMatchingRecipient, nil)
}
