package dns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	b, err := PackName("google.com.")
	require.NoError(t, err)
	exp := []byte{6, 'g', 'o', 'o', 'g', 'l', 'e', 3, 'c', 'o', 'm', 0}
	assert.Equal(t, exp, b)
}

func TestEncodeName_Root(t *testing.T) {
	b, err := EncodeName(Name{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, b)

	root, err := ParseName(".")
	require.NoError(t, err)
	assert.Empty(t, root)
}

func TestEncodeName_LabelTooLong(t *testing.T) {
	_, err := EncodeName(Name{strings.Repeat("a", 64), "test"})
	require.ErrorIs(t, err, ErrLabelTooLong)
	assert.ErrorIs(t, err, ErrDNSError)

	_, err = EncodeName(Name{strings.Repeat("a", 63)})
	assert.NoError(t, err, "63-byte labels are legal")
}

func TestEncodeName_EmptyInteriorLabel(t *testing.T) {
	_, err := EncodeName(Name{"a", "", "b"})
	assert.ErrorIs(t, err, ErrEmptyLabel)
}

func TestEncodeName_NameTooLong(t *testing.T) {
	label := strings.Repeat("a", 63)
	_, err := EncodeName(Name{label, label, label, label})
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestParseName(t *testing.T) {
	tests := []struct {
		in      string
		want    Name
		wantErr error
	}{
		{"test.", Name{"test"}, nil},
		{"test", Name{"test"}, nil},
		{"_ens.nic.test.", Name{"_ens", "nic", "test"}, nil},
		{"", Name{}, nil},
		{".", Name{}, nil},
		{"a..b", nil, ErrEmptyLabel},
		{strings.Repeat("x", 64) + ".", nil, ErrLabelTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseName(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNameStringAndEqual(t *testing.T) {
	n := MustParseName("_ENS.Nic.Test")
	assert.Equal(t, "_ENS.Nic.Test.", n.String())
	assert.True(t, n.Equal(MustParseName("_ens.nic.test.")))
	assert.False(t, n.Equal(MustParseName("nic.test.")))
	assert.False(t, n.Equal(MustParseName("_ens.nic.tesu.")))
	assert.Equal(t, ".", Name{}.String())
}

func TestNamePrepend(t *testing.T) {
	base := MustParseName("test.")
	q := base.Prepend("_ens", "nic")
	assert.Equal(t, "_ens.nic.test.", q.String())
	assert.Equal(t, "test.", base.String(), "base must not be modified")
}

func TestDecodeName_Uncompressed(t *testing.T) {
	msg := []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	off := 0
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com.", n.String())
	assert.Equal(t, len(msg), off)
}

func TestDecodeName_AtOffset(t *testing.T) {
	msg := []byte{0xff, 0xff, 4, 't', 'e', 's', 't', 0, 0xaa}
	off := 2
	n, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, Name{"test"}, n)
	assert.Equal(t, 8, off)
}

func TestDecodeName_Truncated(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
	}{
		{"empty buffer", []byte{}},
		{"missing terminator", []byte{4, 't', 'e', 's', 't'}},
		{"label overruns", []byte{10, 't', 'e', 's', 't'}},
		{"length byte only", []byte{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off := 0
			_, err := DecodeName(tt.msg, &off)
			require.ErrorIs(t, err, ErrTruncatedName)
			assert.Equal(t, 0, off, "offset must not move on error")
		})
	}
}

func TestDecodeName_RejectsCompressionPointer(t *testing.T) {
	msg := []byte{4, 't', 'e', 's', 't', 0, 0xC0, 0x00}
	off := 6
	_, err := DecodeName(msg, &off)
	assert.ErrorIs(t, err, ErrLabelTooLong)
}

func TestDecodeName_TooLong(t *testing.T) {
	var msg []byte
	for range 5 {
		msg = append(msg, 63)
		msg = append(msg, strings.Repeat("a", 63)...)
	}
	msg = append(msg, 0)
	off := 0
	_, err := DecodeName(msg, &off)
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestNameRoundTrip(t *testing.T) {
	names := []string{
		".",
		"test.",
		"_ens.nic.test.",
		"MiXeD.Case.Example.",
		strings.Repeat("a", 63) + ".b.",
		"xn--bcher-kva.example.",
	}

	for _, s := range names {
		t.Run(s, func(t *testing.T) {
			n := MustParseName(s)
			wire, err := EncodeName(n)
			require.NoError(t, err)
			assert.Len(t, wire, n.WireLength())

			off := 0
			got, err := DecodeName(wire, &off)
			require.NoError(t, err)
			assert.Equal(t, n, got)
			assert.Equal(t, len(wire), off)

			again, err := EncodeName(got)
			require.NoError(t, err)
			assert.Equal(t, wire, again)
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "example.com", NormalizeName("Example.COM."))
	assert.Equal(t, "", NormalizeName("."))
}
