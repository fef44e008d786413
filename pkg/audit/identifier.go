package audit

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const addressHexLen = 40

// ProjectIdentifier is the parsed audit target: a validated contract address
// or a free-text project name. Immutable once parsed. Name-only identifiers
// skip on-chain collection entirely.
type ProjectIdentifier struct {
	Name    string
	Address string
}

func (p *ProjectIdentifier) IsAddress() bool {
	return p.Address != ""
}

func (p *ProjectIdentifier) String() string {
	if p.IsAddress() {
		return p.Address
	}
	return p.Name
}

// ParseIdentifier validates and normalizes the raw audit target. Anything
// 0x-prefixed is treated as address-shaped and must pass format validation,
// plus EIP-55 checksum validation when the input carries mixed-case hex.
// Everything else is a project name.
func ParseIdentifier(raw string) (*ProjectIdentifier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidIdentifier)
	}

	if !strings.HasPrefix(raw, "0x") && !strings.HasPrefix(raw, "0X") {
		return &ProjectIdentifier{Name: raw}, nil
	}

	addr, err := normalizeAddress(raw)
	if err != nil {
		return nil, err
	}

	return &ProjectIdentifier{
		Name:    "Contract_" + addr[:10],
		Address: addr,
	}, nil
}

func normalizeAddress(raw string) (string, error) {
	hex := raw[2:]
	if len(hex) != addressHexLen {
		return "", fmt.Errorf("%w: address must be %d hex chars, got %d", ErrInvalidIdentifier, addressHexLen, len(hex))
	}
	for _, c := range hex {
		if !isHexChar(byte(c)) {
			return "", fmt.Errorf("%w: non-hex character %q in address", ErrInvalidIdentifier, c)
		}
	}

	checksummed := checksumAddress(strings.ToLower(hex))

	// All-lower and all-upper inputs carry no checksum; mixed case must
	// match EIP-55 exactly.
	if hex != strings.ToLower(hex) && hex != strings.ToUpper(hex) && "0x"+hex != checksummed {
		return "", fmt.Errorf("%w: address checksum mismatch", ErrInvalidIdentifier)
	}

	return checksummed, nil
}

// checksumAddress applies EIP-55 casing to a lowercase 40-char hex string.
func checksumAddress(hex string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(hex))
	digest := h.Sum(nil)

	out := make([]byte, addressHexLen)
	for i := 0; i < addressHexLen; i++ {
		c := hex[i]
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if c >= 'a' && c <= 'f' && nibble >= 8 {
			c = c - 'a' + 'A'
		}
		out[i] = c
	}
	return "0x" + string(out)
}

func isHexChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
