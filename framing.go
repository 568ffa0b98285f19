package saltbox

import (
	"bufio"
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// encodeValue serializes v as a single MessagePack value.
func encodeValue(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// decodeValue parses data as a single MessagePack value into v.
func decodeValue(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}

// packetReader reads a stream of framed MessagePack values one at a time,
// so a decoder never needs to buffer more of the ciphertext than a single
// header or packet.
type packetReader struct {
	buf *bufio.Reader
	dec *msgpack.Decoder
}

func newPacketReader(r io.Reader) *packetReader {
	buf := bufio.NewReader(r)
	return &packetReader{buf: buf, dec: msgpack.NewDecoder(buf)}
}

// readValue decodes exactly one framed value into v. eofKind is the error
// kind reported when the source ends before the value is complete, whether
// no bytes of it were available or it was cut off part-way through;
// malformedKind is reported for every other decode failure.
func (pr *packetReader) readValue(v interface{}, eofKind, malformedKind Kind) error {
	if err := pr.dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return newError(eofKind, err)
		}
		return newError(malformedKind, err)
	}
	return nil
}

// atEOF reports whether the underlying byte source has no bytes left.
func (pr *packetReader) atEOF() bool {
	_, err := pr.buf.Peek(1)
	return err != nil
}
