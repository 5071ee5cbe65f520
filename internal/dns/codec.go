package dns

import (
	"fmt"
	"strings"
)

// Name is a domain name held as its ordered labels, most specific first.
// The terminating root label is implicit: the root name is an empty Name.
type Name []string

// NormalizeName returns a lowercase DNS name without trailing dots.
// DNS domain names are case-insensitive per RFC 4343.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}

// ParseName converts the presentation form ("test.", "_ens.nic.test") into a Name.
// A single trailing dot is optional; "." and "" both denote the root.
func ParseName(s string) (Name, error) {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return Name{}, nil
	}
	labels := strings.Split(s, ".")
	for _, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyLabel, s)
		}
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w (%d > %d): %q", ErrLabelTooLong, len(label), MaxLabelLength, label)
		}
	}
	n := Name(labels)
	if n.WireLength() > MaxNameLength {
		return nil, fmt.Errorf("%w (%d > %d)", ErrNameTooLong, n.WireLength(), MaxNameLength)
	}
	return n, nil
}

// MustParseName is ParseName for constants; it panics on error.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the fully-qualified presentation form, e.g. "test.".
func (n Name) String() string {
	if len(n) == 0 {
		return "."
	}
	return joinLabels(n) + "."
}

// Equal compares two names label by label, ignoring ASCII case.
func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if !strings.EqualFold(n[i], other[i]) {
			return false
		}
	}
	return true
}

// Prepend returns a new name with labels placed in front of n.
func (n Name) Prepend(labels ...string) Name {
	out := make(Name, 0, len(labels)+len(n))
	out = append(out, labels...)
	return append(out, n...)
}

// WireLength is the length of the uncompressed wire form, root label included.
func (n Name) WireLength() int {
	total := 1
	for _, label := range n {
		total += 1 + len(label)
	}
	return total
}

// EncodeName encodes a domain name to DNS wire format (RFC 1035 Section 3.1).
//
// DNS names are encoded as a sequence of labels, where each label is:
//   - 1 byte: length (0-63)
//   - N bytes: label characters
//
// The name is terminated by a zero-length label (single 0x00 byte).
//
// Example: "www.example.com." encodes as:
//
//	[3]www[7]example[3]com[0]
//
// No compression is performed; proofs are standalone records.
func EncodeName(n Name) ([]byte, error) {
	out := make([]byte, 0, n.WireLength())
	for _, label := range n {
		if label == "" {
			return nil, fmt.Errorf("%w in %q", ErrEmptyLabel, n.String())
		}
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w (%d > %d): %q", ErrLabelTooLong, len(label), MaxLabelLength, label)
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	out = append(out, 0) // Terminating zero-length label

	if len(out) > MaxNameLength {
		return nil, fmt.Errorf("%w (%d > %d)", ErrNameTooLong, len(out), MaxNameLength)
	}
	return out, nil
}

// PackName parses the presentation form and encodes it in one step.
func PackName(s string) ([]byte, error) {
	n, err := ParseName(s)
	if err != nil {
		return nil, err
	}
	return EncodeName(n)
}

// DecodeName decodes an uncompressed domain name from wire format.
//
// It reads from msg starting at *off, advancing *off past the terminating
// zero label. A length byte above 63 is rejected with ErrLabelTooLong; this
// covers the compression pointer (11xxxxxx) and reserved (01/10xxxxxx) forms,
// neither of which may appear in a standalone proof.
//
// *off is left untouched on error.
func DecodeName(msg []byte, off *int) (Name, error) {
	pos := *off
	if pos < 0 {
		return nil, fmt.Errorf("%w: negative offset", ErrTruncatedName)
	}

	// Pre-allocate for typical proof depth (e.g., _ens.nic.test = 3 labels)
	labels := make(Name, 0, 4)
	wire := 0
	for {
		if pos >= len(msg) {
			return nil, fmt.Errorf("%w: unexpected EOF at offset %d", ErrTruncatedName, pos)
		}
		labelLen := int(msg[pos])
		pos++
		wire++

		// Zero-length label marks end of name
		if labelLen == 0 {
			break
		}
		if labelLen > MaxLabelLength {
			return nil, fmt.Errorf("%w: length byte 0x%02x at offset %d", ErrLabelTooLong, labelLen, pos-1)
		}

		label, err := readLabel(msg, pos, labelLen)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
		pos += labelLen
		wire += labelLen

		if wire+1 > MaxNameLength {
			return nil, fmt.Errorf("%w: exceeds %d bytes", ErrNameTooLong, MaxNameLength)
		}
	}

	*off = pos
	return labels, nil
}

// readLabel reads a single DNS label of the given length starting at pos.
func readLabel(msg []byte, pos, length int) (string, error) {
	if pos+length > len(msg) {
		return "", fmt.Errorf("%w: label of %d bytes at offset %d overruns buffer", ErrTruncatedName, length, pos)
	}
	return string(msg[pos : pos+length]), nil
}

// joinLabels concatenates DNS labels with dots.
// Uses strings.Builder with size pre-allocation for efficiency.
func joinLabels(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	if len(labels) == 1 {
		return labels[0]
	}
	// Pre-calculate size to minimize Builder allocations
	totalSize := len(labels) - 1 // dots
	for _, label := range labels {
		totalSize += len(label)
	}
	var b strings.Builder
	b.Grow(totalSize)
	b.WriteString(labels[0])
	for i := 1; i < len(labels); i++ {
		b.WriteByte('.')
		b.WriteString(labels[i])
	}
	return b.String()
}
