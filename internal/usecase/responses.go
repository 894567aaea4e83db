package usecase

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"bank-assistant/internal/domain"
)

const (
	lineBreak           = "<br>"
	recentTransactions  = 3
	accountNotFoundText = "Account not found. Please check your account number and try again."
	unknownText         = "I'm not sure I understand. Could you please rephrase your question?"
	transferText        = "For security reasons, I can't process transfers directly. " +
		"Please use our mobile app or online banking for transfers. " +
		"Would you like me to explain how to make a transfer?"
)

type bankProfile struct {
	name         string
	supportPhone string
	supportEmail string
}

type exchangeRate struct {
	currency string
	rate     string
}

var exchangeRates = []exchangeRate{
	{"USD", "1.0"},
	{"EUR", "0.85"},
	{"GBP", "0.72"},
	{"JPY", "110.25"},
	{"CAD", "1.21"},
}

type branch struct {
	location string
	address  string
	hours    string
}

var branches = []branch{
	{"Main Branch", "123 Financial St, New York", "9AM-5PM Mon-Fri"},
	{"Downtown Branch", "456 Commerce Ave, New York", "10AM-6PM Mon-Fri, 10AM-2PM Sat"},
	{"Westside ATM Center", "789 Urban Blvd, New York", "24/7"},
}

func greetingText(p bankProfile) string {
	return fmt.Sprintf("Hello! Welcome to %s's virtual assistant. How can I help you today?", p.name)
}

func farewellText(p bankProfile) string {
	return fmt.Sprintf("Thank you for banking with %s. Have a great day!", p.name)
}

func supportText(p bankProfile) string {
	return fmt.Sprintf("For customer support, please call our 24/7 helpline at %s "+
		"or email us at %s. Our representatives will be happy to assist you.", p.supportPhone, p.supportEmail)
}

func balanceText(acct domain.Account) string {
	return fmt.Sprintf("Your current balance for account %s is $%.2f.", acct.Number, acct.Balance)
}

func transactionsText(acct domain.Account) string {
	txs := acct.Transactions
	if len(txs) > recentTransactions {
		txs = txs[len(txs)-recentTransactions:]
	}
	if len(txs) == 0 {
		return "No recent transactions found for this account."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Recent transactions for account %s:%s", acct.Number, lineBreak)
	for _, tx := range txs {
		fmt.Fprintf(&b, "%s: %s - $%.2f%s", tx.Date, tx.Description, tx.Amount, lineBreak)
	}
	return b.String()
}

func cardText(acct domain.Account) string {
	switch acct.CardStatus {
	case domain.CardActive:
		return fmt.Sprintf("Dear %s, your card linked to account %s is active and ready to use.", acct.Name, acct.Number)
	case domain.CardBlocked:
		return fmt.Sprintf("Dear %s, your card linked to account %s is currently blocked. "+
			"Please visit a branch or call customer support.", acct.Name, acct.Number)
	default:
		return fmt.Sprintf("Your card status is: %s", acct.CardStatus)
	}
}

func loansText(acct domain.Account) string {
	if len(acct.Loans) == 0 {
		return fmt.Sprintf("You currently have no active loans with account %s.", acct.Number)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Loan information for account %s:%s", acct.Number, lineBreak)
	for _, l := range acct.Loans {
		fmt.Fprintf(&b, "Type: %s, Amount: $%.2f, EMI: $%.2f, Due Date: %s%s",
			titleCase(l.Type), l.Amount, l.EMI, l.DueDate, lineBreak)
	}
	return b.String()
}

func exchangeText() string {
	var b strings.Builder
	b.WriteString("Current exchange rates (USD base):" + lineBreak)
	for _, r := range exchangeRates {
		fmt.Fprintf(&b, "1 USD = %s %s%s", r.rate, r.currency, lineBreak)
	}
	return b.String()
}

func branchesText() string {
	var b strings.Builder
	b.WriteString("Our branch locations:" + lineBreak)
	for _, br := range branches {
		fmt.Fprintf(&b, "%s: %s (Hours: %s)%s", br.location, br.address, br.hours, lineBreak)
	}
	return b.String()
}

// missingAccountText asks for an account number for the given lookup.
func missingAccountText(intent Intent) string {
	switch intent {
	case IntentBalance:
		return "Please provide your account number to check your balance. Example: 'What's my balance for account 123456'?"
	case IntentTransactions:
		return "Please provide your account number to view transactions. Example: 'Show transactions for account 123456'"
	case IntentCard:
		return "Please provide your account number to check card status. Example: 'What's my card status for account 123456'?"
	default:
		return "Please provide your account number to check loan information. Example: 'What are my loans for account 123456'?"
	}
}

func quickRepliesFor(intent Intent, account string) []string {
	switch intent {
	case IntentGreeting:
		return []string{"Check my balance", "View transactions", "Card information", "Loan details"}
	case IntentBalance:
		first := "Show my transactions"
		if account != "" {
			first = "Show transactions for account " + account
		}
		return []string{first, "Exchange rates", "Branch locations"}
	case IntentTransactions:
		first := "Check my balance"
		if account != "" {
			first = "Check balance for account " + account
		}
		return []string{first, "Transfer money", "Customer support"}
	case IntentCard:
		return []string{"Report lost card", "Unblock my card", "Request new card"}
	case IntentLoan:
		return []string{"Apply for new loan", "Make loan payment", "View payment schedule"}
	case IntentTransfer:
		return []string{"Transfer between my accounts", "Send to another bank", "International transfer"}
	case IntentExchange:
		return []string{"Order foreign currency", "View historical rates", "Currency calculator"}
	case IntentBranch:
		return []string{"Nearest branch to me", "ATM locations", "Business hours"}
	case IntentSupport:
		return []string{"Call me back", "Live chat with agent", "Schedule appointment"}
	case IntentUnknown:
		return []string{"Check my balance", "View transactions", "Card information"}
	default:
		return nil
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
