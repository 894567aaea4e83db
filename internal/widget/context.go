// Package widget is the client side of the bank assistant chat: the
// conversation context tracker, the quick-reply rule engine and the reducer
// that turns user and transport events into render instructions.
package widget

import (
	"regexp"
	"strings"

	"bank-assistant/internal/domain"
)

// accountMention matches an account number as the bot phrases it. Only the
// first six digits are captured.
var accountMention = regexp.MustCompile(`account (\d{6})`)

// ApplyAction applies a quick-reply action to c.
func ApplyAction(c domain.ConversationContext, a domain.Action) domain.ConversationContext {
	switch a.Kind {
	case domain.ActionSetAccount:
		c.CurrentAccount = a.Account
	case domain.ActionClearAccount:
		c.CurrentAccount = ""
	}
	return c
}

// RecordQuestion stores the lowercased user text as the last question.
func RecordQuestion(c domain.ConversationContext, text string) domain.ConversationContext {
	c.LastQuestion = strings.ToLower(text)
	return c
}

// Observe picks up the first account number mentioned in a bot response.
// A response without one leaves c untouched.
func Observe(c domain.ConversationContext, responseText string) domain.ConversationContext {
	if m := accountMention.FindStringSubmatch(responseText); m != nil {
		c.CurrentAccount = m[1]
	}
	return c
}
