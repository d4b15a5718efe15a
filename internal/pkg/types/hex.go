// Package types holds small value types shared by the transport adapters.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Hex is an unsigned quantity encoded as a 0x-prefixed hexadecimal string, the
// way Ethereum JSON-RPC encodes block numbers (e.g. "0x1a").
type Hex string

// HexFromString validates s and returns it as a Hex.
func HexFromString(s string) (Hex, error) {
	if err := validateHex(s); err != nil {
		return "", err
	}
	return Hex(s), nil
}

// HexFromUint64 encodes n as a lowercase, 0x-prefixed quantity without leading
// zeros ("0x0" for zero).
func HexFromUint64(n uint64) Hex {
	return Hex("0x" + strconv.FormatUint(n, 16))
}

// validateHex checks whether a string is a valid hexadecimal number starting with "0x" or "0X".
func validateHex(s string) error {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("hex string must start with 0x")
	}

	if _, err := strconv.ParseUint(s[2:], 16, 64); err != nil {
		return fmt.Errorf("invalid hexadecimal value: %w", err)
	}

	return nil
}

// MarshalJSON encodes the Hex as a JSON string.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(h))
}

// UnmarshalJSON parses and validates a JSON-encoded hexadecimal string.
func (h *Hex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex string: %w", err)
	}

	if err := validateHex(s); err != nil {
		return err
	}

	*h = Hex(s)
	return nil
}

// Uint64 decodes the quantity.
func (h Hex) Uint64() (uint64, error) {
	if err := validateHex(string(h)); err != nil {
		return 0, err
	}

	return strconv.ParseUint(string(h)[2:], 16, 64)
}
