package model

import "github.com/shopspring/decimal"

// BusinessInfo is the singleton business profile. The store holds one
// instance; a full data wipe resets it to defaults.
type BusinessInfo struct {
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Address           string          `json:"address"`
	Website           string          `json:"website"`
	TaxID             string          `json:"taxId"`
	DefaultCurrency   string          `json:"defaultCurrency"`
	DefaultHourlyRate decimal.Decimal `json:"defaultHourlyRate"`
}

// DefaultBusinessInfo returns the profile used before the user sets one
// up and after an account erasure.
func DefaultBusinessInfo() BusinessInfo {
	return BusinessInfo{
		DefaultCurrency:   "USD",
		DefaultHourlyRate: decimal.NewFromInt(100),
	}
}

// DisplayName returns the business name, falling back to a neutral
// label for email subjects when none is set.
func (b BusinessInfo) DisplayName() string {
	if b.Name == "" {
		return "Your Business"
	}
	return b.Name
}
