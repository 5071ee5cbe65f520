package dns

import "fmt"

// DecodeTXTStrings splits TXT RDATA into its <character-string> chunks
// (RFC 1035 Section 3.3.14). Each chunk is a length byte followed by that
// many bytes. Empty rdata yields an empty sequence.
func DecodeTXTStrings(rdata []byte) ([][]byte, error) {
	var out [][]byte
	off := 0
	for off < len(rdata) {
		n := int(rdata[off])
		off++
		if off+n > len(rdata) {
			return nil, fmt.Errorf("%w: chunk %d needs %d bytes, %d remain",
				ErrTruncatedTXT, len(out), n, len(rdata)-off)
		}
		chunk := make([]byte, n)
		copy(chunk, rdata[off:off+n])
		out = append(out, chunk)
		off += n
	}
	return out, nil
}

// EncodeTXTStrings builds TXT RDATA from text chunks.
func EncodeTXTStrings(text []string) ([]byte, error) {
	size := 0
	for _, s := range text {
		if len(s) > MaxStringLength {
			return nil, fmt.Errorf("%w (%d > %d)", ErrStringTooLong, len(s), MaxStringLength)
		}
		size += 1 + len(s)
	}
	if size > MaxRDataLength {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrRDataTooLong, size, MaxRDataLength)
	}
	out := make([]byte, 0, size)
	for _, s := range text {
		out = append(out, byte(len(s)))
		out = append(out, s...)
	}
	return out, nil
}
