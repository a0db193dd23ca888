package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestDecode(t *testing.T) {
	line := "255 Humera 2025-07-22 18:41:57 1\n"

	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(line))
	require.NoError(t, err)

	tests := []struct {
		name     string
		data     []byte
		wantText string
		wantEnc  string
	}{
		{"plain utf-8", []byte(line), line, EncodingUTF8},
		{"utf-8 bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, line...), line, EncodingUTF8BOM},
		{"utf-16 be", utf16be, line, EncodingUTF16BE},
		{"windows-1252 fallback", []byte("7 Jos\xe9 2025-07-22 08:00 0"), "7 José 2025-07-22 08:00 0", EncodingCP1252},
		{"empty", nil, "", EncodingUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantEnc, enc)
		})
	}
}

func TestDecodedAccentsAreStrippedFromNames(t *testing.T) {
	text, _, err := Decode([]byte("7 Jos\xe9 2025-07-22 08:00 0"))
	require.NoError(t, err)

	p, reason := ParseLine(text)
	require.Empty(t, reason)
	assert.Equal(t, "Jos", p.Name)
}
