package saltbox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
)

// maxPacketCounter bounds the number of payload packets a decoder will
// accept; overflow past 2^63 packets is treated as a fatal condition rather
// than a practical concern.
const maxPacketCounter = uint64(math.MaxInt64)

type packet struct {
	TagBoxes [][]byte
	Body     []byte
}

func encodePacket(p packet) ([]byte, error) {
	return encodeValue([]interface{}{p.TagBoxes, p.Body})
}

func decodePacket(pr *packetReader, expectedRecipients int) (packet, error) {
	var raw []interface{}
	if err := pr.readValue(&raw, KindTruncated, KindMalformedPacket); err != nil {
		return packet{}, err
	}
	if len(raw) != 2 {
		return packet{}, newError(KindMalformedPacket, fmt.Errorf("packet has %d fields, want 2", len(raw)))
	}

	tagBoxesRaw, ok := raw[0].([]interface{})
	if !ok {
		return packet{}, newError(KindMalformedPacket, errors.New("tag box list has the wrong type"))
	}
	if len(tagBoxesRaw) != expectedRecipients {
		return packet{}, newError(KindMalformedPacket, fmt.Errorf("got %d tag boxes, want %d", len(tagBoxesRaw), expectedRecipients))
	}
	tagBoxes := make([][]byte, len(tagBoxesRaw))
	for i, v := range tagBoxesRaw {
		b, ok := v.([]byte)
		if !ok {
			return packet{}, newError(KindMalformedPacket, fmt.Errorf("tag box %d has the wrong type", i))
		}
		tagBoxes[i] = b
	}

	body, ok := raw[1].([]byte)
	if !ok {
		return packet{}, newError(KindMalformedPacket, errors.New("packet body has the wrong type"))
	}

	return packet{TagBoxes: tagBoxes, Body: body}, nil
}

// chunksWithSentinel splits plaintext into chunks of at most chunkSize
// bytes, in order, with a trailing empty chunk marking end-of-stream.
func chunksWithSentinel(plaintext []byte, chunkSize int) [][]byte {
	chunks := make([][]byte, 0, len(plaintext)/chunkSize+1)
	for start := 0; start < len(plaintext); start += chunkSize {
		end := start + chunkSize
		if end > len(plaintext) {
			end = len(plaintext)
		}
		chunks = append(chunks, plaintext[start:end])
	}
	return append(chunks, nil)
}

// encodePayload writes the payload packet sequence for plaintext to w: one
// secretbox per chunk, its Poly1305 tag rewrapped per recipient under the
// sender's long-term identity so a malicious recipient can't forge chunks
// other recipients would accept.
func encodePayload(w io.Writer, prefix [16]byte, encryptionKey [keySize]byte, senderPrivate [keySize]byte, recipients [][keySize]byte, plaintext []byte, chunkSize int, parallel bool) error {
	beforeNMs := make([][keySize]byte, len(recipients))
	for i, recipientPublic := range recipients {
		beforeNMs[i] = precompute(recipientPublic, senderPrivate)
	}

	for j, chunk := range chunksWithSentinel(plaintext, chunkSize) {
		nonce := nonceAt(prefix, payloadNonceCounter(uint64(j)))
		sealed := sealSecret(chunk, nonce, encryptionKey)
		tag, body := sealed[:tagSize], sealed[tagSize:]

		tagBoxes := make([][]byte, len(recipients))
		if parallel && len(recipients) > 1 {
			var wg sync.WaitGroup
			wg.Add(len(recipients))
			for i := range recipients {
				go func(i int) {
					defer wg.Done()
					tagBoxes[i] = sealAfterNM(tag, nonce, beforeNMs[i])
				}(i)
			}
			wg.Wait()
		} else {
			for i := range recipients {
				tagBoxes[i] = sealAfterNM(tag, nonce, beforeNMs[i])
			}
		}

		encoded, err := encodePacket(packet{TagBoxes: tagBoxes, Body: body})
		if err != nil {
			return newError(KindInvalidArgument, err)
		}
		if _, err := w.Write(encoded); err != nil {
			return newError(KindInvalidArgument, err)
		}
	}
	return nil
}

// decodePayload reads and verifies the payload packet sequence, returning
// the reassembled plaintext once the empty sentinel chunk is reached.
func decodePayload(pr *packetReader, prefix [16]byte, encryptionKey, senderPublic, recipientSK [keySize]byte, recipientCount, selectedIndex int) ([]byte, error) {
	senderBeforeNM := precompute(senderPublic, recipientSK)

	var out bytes.Buffer
	for j := uint64(0); ; j++ {
		if j > maxPacketCounter {
			return nil, newError(KindInvalidArgument, errors.New("payload packet counter overflow"))
		}
		nonce := nonceAt(prefix, payloadNonceCounter(j))

		pkt, err := decodePacket(pr, recipientCount)
		if err != nil {
			return nil, err
		}
		if selectedIndex < 0 || selectedIndex >= len(pkt.TagBoxes) {
			return nil, newError(KindMalformedPacket, errors.New("recipient index out of range for this packet"))
		}

		tag, ok := openAfterNM(pkt.TagBoxes[selectedIndex], nonce, senderBeforeNM)
		if !ok {
			return nil, newError(KindAuthenticationFailed, nil)
		}
		if len(tag) != tagSize {
			return nil, newError(KindMalformedPacket, errors.New("tag box opened to the wrong size"))
		}

		sealed := make([]byte, 0, len(tag)+len(pkt.Body))
		sealed = append(sealed, tag...)
		sealed = append(sealed, pkt.Body...)
		chunk, ok := openSecret(sealed, nonce, encryptionKey)
		if !ok {
			return nil, newError(KindAuthenticationFailed, nil)
		}

		if len(chunk) == 0 {
			if !pr.atEOF() {
				return nil, newError(KindTrailingData, nil)
			}
			return out.Bytes(), nil
		}
		out.Write(chunk)
	}
}
