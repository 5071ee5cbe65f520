package dns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTXTStrings(t *testing.T) {
	tests := []struct {
		name  string
		rdata []byte
		want  []string
	}{
		{"empty rdata", nil, nil},
		{"single chunk", []byte{3, 'a', '=', '1'}, []string{"a=1"}},
		{"two chunks", []byte{1, 'x', 2, 'y', 'z'}, []string{"x", "yz"}},
		{"empty chunk", []byte{0, 1, 'q'}, []string{"", "q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTXTStrings(tt.rdata)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], string(got[i]))
			}
		})
	}
}

func TestDecodeTXTStrings_Truncated(t *testing.T) {
	tests := []struct {
		name  string
		rdata []byte
	}{
		{"length exceeds rdata", []byte{5, 'a', 'b'}},
		{"second chunk overruns", []byte{1, 'a', 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTXTStrings(tt.rdata)
			require.ErrorIs(t, err, ErrTruncatedTXT)
			assert.ErrorIs(t, err, ErrDNSError)
		})
	}
}

func TestEncodeTXTStrings(t *testing.T) {
	b, err := EncodeTXTStrings([]string{"a=1", ""})
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 'a', '=', '1', 0}, b)

	_, err = EncodeTXTStrings([]string{strings.Repeat("z", 256)})
	assert.ErrorIs(t, err, ErrStringTooLong)

	b, err = EncodeTXTStrings([]string{strings.Repeat("z", 255)})
	require.NoError(t, err)
	assert.Len(t, b, 256)
}

func TestTXTRoundTrip(t *testing.T) {
	in := []string{"a=0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "note=hello world"}
	rdata, err := EncodeTXTStrings(in)
	require.NoError(t, err)

	out, err := DecodeTXTStrings(rdata)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i], string(out[i]))
	}
}
