package usecase

import (
	"regexp"
	"strings"
	"unicode"
)

type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentFarewell     Intent = "farewell"
	IntentBalance      Intent = "balance"
	IntentTransactions Intent = "transactions"
	IntentCard         Intent = "card"
	IntentLoan         Intent = "loan"
	IntentTransfer     Intent = "transfer"
	IntentExchange     Intent = "exchange"
	IntentBranch       Intent = "branch"
	IntentSupport      Intent = "support"
	IntentUnknown      Intent = "unknown"
)

type intentRule struct {
	intent   Intent
	keywords []string
}

// Greetings and farewells must appear as whole words so that "which" or
// "this" do not read as "hi".
var (
	greetingWords = []string{"hi", "hello", "hey", "good morning", "good afternoon"}
	farewellWords = []string{"bye", "goodbye", "see you", "exit"}
)

// topicRules are checked in order against the lowercased message; the first
// substring hit wins.
var topicRules = []intentRule{
	{intent: IntentBalance, keywords: []string{"balance", "how much do i have"}},
	{intent: IntentTransactions, keywords: []string{"transaction", "history", "statement"}},
	{intent: IntentCard, keywords: []string{"card", "debit", "credit"}},
	{intent: IntentLoan, keywords: []string{"loan", "emi", "repayment"}},
	{intent: IntentTransfer, keywords: []string{"transfer", "send money"}},
	{intent: IntentExchange, keywords: []string{"exchange", "currency", "forex"}},
	{intent: IntentBranch, keywords: []string{"branch", "location", "atm"}},
	{intent: IntentSupport, keywords: []string{"support", "help", "contact"}},
}

var accountInMessage = regexp.MustCompile(`account (\d+)`)

// DetectIntent classifies a lowercased user message.
func DetectIntent(message string) Intent {
	words := " " + strings.Join(strings.FieldsFunc(message, isSeparator), " ") + " "
	if containsWord(words, greetingWords) {
		return IntentGreeting
	}
	if containsWord(words, farewellWords) {
		return IntentFarewell
	}
	for _, r := range topicRules {
		if containsAny(message, r.keywords) {
			return r.intent
		}
	}
	return IntentUnknown
}

// accountFromMessage returns the digits following "account " in a lowercased
// message, if any.
func accountFromMessage(message string) string {
	if m := accountInMessage.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return ""
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func containsWord(padded string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
