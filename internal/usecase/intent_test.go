package usecase

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"hi", IntentGreeting},
		{"good morning!", IntentGreeting},
		{"hey, what's my balance?", IntentGreeting},
		{"bye", IntentFarewell},
		{"ok, see you later", IntentFarewell},
		{"exit", IntentFarewell},
		{"which branch is open?", IntentBranch},
		{"this card is blocked", IntentCard},
		{"how much do i have", IntentBalance},
		{"show my recent transactions", IntentTransactions},
		{"account statement please", IntentTransactions},
		{"what's my card status?", IntentCard},
		{"do i have any active loans?", IntentLoan},
		{"when is my emi due", IntentLoan},
		{"how do i transfer money?", IntentTransfer},
		{"forex rates", IntentExchange},
		{"nearest atm", IntentBranch},
		{"i need help", IntentSupport},
		{"make a payment", IntentUnknown},
		{"use account 123456", IntentUnknown},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, DetectIntent(tc.message), "message=%q", tc.message)
	}
}

func TestAccountFromMessage(t *testing.T) {
	require.Equal(t, "123456", accountFromMessage("balance for account 123456?"))
	require.Equal(t, "99", accountFromMessage("account 99"))
	require.Empty(t, accountFromMessage("my account is blocked"))
}

func TestTitleCase(t *testing.T) {
	require.Equal(t, "Personal", titleCase("personal"))
	require.Equal(t, "Home Improvement", titleCase("HOME improvement"))
	require.Equal(t, "Éducation Loan", titleCase("éducation LOAN"))
	require.True(t, utf8.ValidString(titleCase("ñame")))
	require.Empty(t, titleCase(""))
}
