package validation

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/stepaks675/sproutcard/internal/apperrors"
)

// walletAddressPattern matches a 0x-prefixed, 20-byte hex address.
var walletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidateWalletAddress checks that a string is a well-formed EVM wallet
// address. The recap engine itself never validates addresses; bad input is
// rejected at the API boundary before any provider calls are made.
func ValidateWalletAddress(address string) error {
	if address == "" {
		return apperrors.ErrEmptyWalletAddress
	}
	if !walletAddressPattern.MatchString(address) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidWalletAddress, address)
	}
	return nil
}

// ValidateRecapID checks that a recap share ID is a valid UUID.
func ValidateRecapID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidRecapID, id)
	}
	return nil
}
