package widget

import (
	"strings"

	"bank-assistant/internal/domain"
)

// Demo accounts offered when the bot asks for a balance without one selected.
const (
	demoAccountPrimary   = "123456"
	demoAccountSecondary = "654321"
)

type rule struct {
	keywords []string
	replies  []string
	// prepend returns extra chips shown before the catalog entries.
	prepend func(c domain.ConversationContext) []domain.QuickReply
}

// rules are evaluated top to bottom and the first match wins. Matching is a
// case-sensitive substring test against the bot's wording.
var rules = []rule{
	{
		keywords: []string{"balance"},
		replies: []string{
			"Show my recent transactions",
			"What's my card status?",
			"Do I have any active loans?",
		},
		prepend: accountChoices,
	},
	{
		keywords: []string{"transaction", "transactions"},
		replies: []string{
			"What's my current balance?",
			"How do I transfer money?",
			"Where are your branches?",
		},
	},
	{
		keywords: []string{"card"},
		replies: []string{
			"How do I unblock my card?",
			"What's my account balance?",
			"Contact customer support",
		},
	},
	{
		keywords: []string{"loan", "EMI"},
		replies: []string{
			"What's my current balance?",
			"Make a payment",
			"View payment schedule",
		},
	},
	{
		keywords: []string{"branch", "ATM"},
		replies: []string{
			"What are your working hours?",
			"Do you have drive-thru ATMs?",
			"Nearest branch to me",
		},
	},
}

var fallback = rule{
	replies: []string{
		"What's my balance?",
		"Show recent transactions",
		"Card status",
	},
	prepend: clearChoice,
}

// Generate returns the quick replies for a bot response. Account extraction
// is not done here; callers run Observe first.
func Generate(responseText string, c domain.ConversationContext) []domain.QuickReply {
	for _, r := range rules {
		if containsAny(responseText, r.keywords) {
			return r.build(c)
		}
	}
	return fallback.build(c)
}

// InitialReplies are the chips shown under the welcome message.
func InitialReplies() []domain.QuickReply {
	return []domain.QuickReply{
		{Text: "What's my balance for account " + demoAccountPrimary + "?", Action: domain.SetAccount(demoAccountPrimary)},
		{Text: "Show transactions for account " + demoAccountSecondary, Action: domain.SetAccount(demoAccountSecondary)},
		{Text: "Is my card active?"},
		{Text: "What loans do I have?"},
	}
}

func (r rule) build(c domain.ConversationContext) []domain.QuickReply {
	var out []domain.QuickReply
	if r.prepend != nil {
		out = r.prepend(c)
	}
	for _, text := range r.replies {
		out = append(out, domain.QuickReply{Text: text})
	}
	return out
}

func accountChoices(c domain.ConversationContext) []domain.QuickReply {
	if c.CurrentAccount != "" {
		return nil
	}
	return []domain.QuickReply{
		{Text: "Use account " + demoAccountPrimary, Action: domain.SetAccount(demoAccountPrimary)},
		{Text: "Use account " + demoAccountSecondary, Action: domain.SetAccount(demoAccountSecondary)},
	}
}

func clearChoice(c domain.ConversationContext) []domain.QuickReply {
	if c.CurrentAccount == "" {
		return nil
	}
	return []domain.QuickReply{{Text: "Clear account selection", Action: domain.ClearAccount()}}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
