package paramstore

import (
	"context"
	"fmt"
	"strings"
)

// Static serves parameters from memory. It backs local runs where no SSM
// prefix is configured.
type Static map[string]string

// DefaultBankProfile returns the built-in profile parameters under prefix.
func DefaultBankProfile(prefix string) Static {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	return Static{
		prefix + "/bank_name":     "XYZ Bank",
		prefix + "/support_phone": "1-800-XYZ-BANK (1-800-999-2265)",
		prefix + "/support_email": "support@xyzbank.com",
	}
}

func (s Static) GetParameter(_ context.Context, name string) (string, error) {
	v, ok := s[strings.TrimSpace(name)]
	if !ok {
		return "", fmt.Errorf("paramstore: parameter %q not found", name)
	}
	return v, nil
}
