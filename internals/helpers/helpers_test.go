package helpers

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializeSHA256KnownVectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SerializeSHA256(tt.in))
	}
}

func TestSerializeSHA256IsStable(t *testing.T) {
	assert.Equal(t, SerializeSHA256("block"), SerializeSHA256("block"))
	assert.NotEqual(t, SerializeSHA256("block"), SerializeSHA256("block2"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "10", FormatAmount(10.0))
	assert.Equal(t, "5.5", FormatAmount(5.5))
	assert.Equal(t, "0.1", FormatAmount(0.1))
}

func TestRandomHex(t *testing.T) {
	a := RandomHex(8)
	b := RandomHex(8)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)

	_, err := hex.DecodeString(a)
	assert.NoError(t, err)
}

func TestNewNodeID(t *testing.T) {
	assert.Len(t, NewNodeID(), 16)
}
