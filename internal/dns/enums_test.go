package dns_test

import (
	"testing"

	"github.com/jroosing/tldclaim/internal/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTypeString(t *testing.T) {
	assert.Equal(t, "TXT", dns.TypeTXT.String())
	assert.Equal(t, "DS", dns.TypeDS.String())
	assert.Equal(t, "TYPE999", dns.RecordType(999).String())
}

func TestParseRecordType(t *testing.T) {
	tests := []struct {
		in   string
		want dns.RecordType
	}{
		{"TXT", dns.TypeTXT},
		{"txt", dns.TypeTXT},
		{" ds ", dns.TypeDS},
		{"SOA", dns.TypeSOA},
		{"TYPE16", dns.TypeTXT},
		{"43", dns.TypeDS},
		{"type999", dns.RecordType(999)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dns.ParseRecordType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "NONE", "0", "TYPE", "CNAMEISH", "70000"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := dns.ParseRecordType(bad)
			assert.ErrorIs(t, err, dns.ErrDNSError)
		})
	}
}
