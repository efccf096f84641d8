package dwarfbin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_ULEB128RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  uint64
	}{
		{"single byte", []byte{0x02}, 2},
		{"three bytes", []byte{0xe5, 0x8e, 0x26}, 624485},
		{"zero", []byte{0x00}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cur := NewCursor(tc.bytes, 0, len(tc.bytes), 4)
			got, err := cur.ReadULEB128()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, cur.Done())
		})
	}
}

func TestCursor_SLEB128RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  int64
	}{
		{"positive", []byte{0x02}, 2},
		{"negative small", []byte{0x7e}, -2},
		{"negative large", []byte{0x9b, 0xf1, 0x59}, -624485},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cur := NewCursor(tc.bytes, 0, len(tc.bytes), 4)
			got, err := cur.ReadSLEB128()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCursor_ReadString(t *testing.T) {
	data := []byte("foo.c\x00trailing")
	cur := NewCursor(data, 0, len(data), 4)
	s, err := cur.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "foo.c", s)
	assert.Equal(t, 6, cur.Pos)
}

func TestCursor_ReadString_Truncated(t *testing.T) {
	data := []byte("no-terminator")
	cur := NewCursor(data, 0, len(data), 4)
	_, err := cur.ReadString()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestCursor_ReadAddress_RejectsNon4ByteWord(t *testing.T) {
	cur := NewCursor([]byte{1, 2, 3, 4, 5, 6, 7, 8}, 0, 8, 8)
	_, err := cur.ReadAddress()
	assert.Error(t, err)
}
