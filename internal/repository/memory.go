package repository

import (
	"context"

	"bank-assistant/internal/domain"
)

// Memory is a read-only in-process account store used when no table is
// configured.
type Memory struct {
	accounts map[string]domain.Account
}

// NewMemory returns a store holding the given accounts.
func NewMemory(accounts ...domain.Account) *Memory {
	m := &Memory{accounts: make(map[string]domain.Account, len(accounts))}
	for _, a := range accounts {
		m.accounts[a.Number] = a
	}
	return m
}

func (m *Memory) GetAccount(_ context.Context, number string) (domain.Account, error) {
	a, ok := m.accounts[number]
	if !ok {
		return domain.Account{}, ErrAccountNotFound
	}
	return a, nil
}

// DemoAccounts returns the two placeholder accounts the widget offers.
func DemoAccounts() []domain.Account {
	return []domain.Account{
		{
			Number:  "123456",
			Name:    "Dhruvi Nanotkar",
			Balance: 5000.00,
			Transactions: []domain.Transaction{
				{Date: "2023-05-01", Description: "Salary", Amount: 3000.00},
				{Date: "2023-05-05", Description: "Grocery", Amount: -150.00},
				{Date: "2023-05-10", Description: "Transfer to Jane", Amount: -500.00},
			},
			CardStatus: domain.CardActive,
			Loans: []domain.Loan{
				{Type: "personal", Amount: 10000.00, EMI: 925.00, DueDate: "15th monthly"},
			},
		},
		{
			Number:  "654321",
			Name:    "Vaishnavi Naik",
			Balance: 12000.50,
			Transactions: []domain.Transaction{
				{Date: "2023-05-02", Description: "Deposit", Amount: 2000.00},
				{Date: "2023-05-08", Description: "Online Shopping", Amount: -320.50},
			},
			CardStatus: domain.CardBlocked,
		},
	}
}
