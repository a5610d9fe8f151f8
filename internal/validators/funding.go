package validators

import (
	"strings"

	"github.com/mkarchin/go-bank-ledger/models"
)

// Inclusive funding bounds in integer cents: [10.00, 10000.00].
const (
	minDepositCents = 10_00
	maxDepositCents = 10_000_00
)

type fundingValidator struct {
}

// NewFundingValidator constructs the stateless [FundingValidator].
func NewFundingValidator() FundingValidator {
	return &fundingValidator{}
}

// ValidateAmount implements [FundingValidator]. Both bounds are inclusive:
// 10.00 and 10000.00 are accepted, 9.99 and 10000.01 are not.
func (v *fundingValidator) ValidateAmount(amountCents int64) error {
	if amountCents < minDepositCents {
		return ErrAmountBelowMinimum
	}
	if amountCents > maxDepositCents {
		return ErrAmountAboveMaximum
	}
	return nil
}

// ValidateFundingSource implements [FundingValidator]. Card sources must
// pass length and Luhn checks and map to a known brand; bank sources need a
// digit-only account number and a 9-digit routing number.
func (v *fundingValidator) ValidateFundingSource(source models.FundingSource) (models.CardBrand, error) {
	switch source.Kind {
	case models.FundingSourceCard:
		return validateCard(source.CardNumber)
	case models.FundingSourceBank:
		return "", validateBank(source.AccountNumber, source.RoutingNumber)
	default:
		return "", ErrUnknownFundingKind
	}
}

func validateCard(number string) (models.CardBrand, error) {
	number = strings.ReplaceAll(strings.ReplaceAll(number, " ", ""), "-", "")

	if !digitsOnly(number) || len(number) < 13 || len(number) > 19 || !luhnValid(number) {
		return "", ErrInvalidCardNumber
	}

	brand, ok := detectBrand(number)
	if !ok {
		return "", ErrUnknownCardBrand
	}

	return brand, nil
}

func validateBank(accountNumber, routingNumber string) error {
	if accountNumber == "" || !digitsOnly(accountNumber) {
		return ErrInvalidAccountNumber
	}
	if len(routingNumber) != 9 || !digitsOnly(routingNumber) {
		return ErrInvalidRoutingNumber
	}
	return nil
}

// luhnValid runs the standard Luhn mod-10 checksum over a digit string.
func luhnValid(number string) bool {
	var sum int
	double := false

	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// detectBrand maps a card number to its network by prefix and length.
func detectBrand(number string) (models.CardBrand, bool) {
	switch {
	case strings.HasPrefix(number, "4") && (len(number) == 13 || len(number) == 16 || len(number) == 19):
		return models.CardBrandVisa, true
	case len(number) == 16 && (number[0] == '5' && number[1] >= '1' && number[1] <= '5'):
		return models.CardBrandMastercard, true
	case len(number) == 15 && (strings.HasPrefix(number, "34") || strings.HasPrefix(number, "37")):
		return models.CardBrandAmex, true
	case len(number) == 16 && strings.HasPrefix(number, "6011"):
		return models.CardBrandDiscover, true
	default:
		return "", false
	}
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
