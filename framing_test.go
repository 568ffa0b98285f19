package saltbox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeValueRoundTrip(t *testing.T) {
	in := []interface{}{"SaltBox", []interface{}{1, 0}, 0, []byte{1, 2, 3}}
	data, err := encodeValue(in)
	assert.NoError(t, err)

	var out []interface{}
	assert.NoError(t, decodeValue(data, &out))
	assert.Equal(t, len(in), len(out))
}

func TestPacketReaderReadsValuesInOrder(t *testing.T) {
	a, err := encodeValue("first")
	assert.NoError(t, err)
	b, err := encodeValue("second")
	assert.NoError(t, err)

	var buf bytes.Buffer
	buf.Write(a)
	buf.Write(b)

	pr := newPacketReader(&buf)
	var v1, v2 string
	assert.NoError(t, pr.readValue(&v1, KindTruncated, KindMalformedPacket))
	assert.Equal(t, "first", v1)
	assert.False(t, pr.atEOF())
	assert.NoError(t, pr.readValue(&v2, KindTruncated, KindMalformedPacket))
	assert.Equal(t, "second", v2)
	assert.True(t, pr.atEOF())
}

func TestPacketReaderEmptySourceIsEOFKind(t *testing.T) {
	pr := newPacketReader(bytes.NewReader(nil))
	var v string
	err := pr.readValue(&v, KindTruncated, KindMalformedPacket)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestPacketReaderPartialValueIsEOFKind(t *testing.T) {
	full, err := encodeValue("hello world")
	assert.NoError(t, err)
	partial := full[:len(full)-2]

	pr := newPacketReader(bytes.NewReader(partial))
	var v string
	err = pr.readValue(&v, KindTruncated, KindMalformedPacket)
	assert.ErrorIs(t, err, ErrTruncated)
}
