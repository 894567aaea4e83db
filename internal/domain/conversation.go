package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ConversationContext is the per-session state the widget sends with every
// message. Empty strings mean "unset" and are encoded as JSON null.
type ConversationContext struct {
	CurrentAccount string
	LastQuestion   string
}

type conversationContextJSON struct {
	CurrentAccount *string `json:"currentAccount"`
	LastQuestion   *string `json:"lastQuestion"`
}

func (c ConversationContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(conversationContextJSON{
		CurrentAccount: nullable(c.CurrentAccount),
		LastQuestion:   nullable(c.LastQuestion),
	})
}

func (c *ConversationContext) UnmarshalJSON(data []byte) error {
	var raw conversationContextJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.CurrentAccount = deref(raw.CurrentAccount)
	c.LastQuestion = deref(raw.LastQuestion)
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Sender identifies who authored a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry of the append-only transcript.
type Message struct {
	Text         string       `json:"text"`
	Sender       Sender       `json:"sender"`
	QuickReplies []QuickReply `json:"quickReplies,omitempty"`
}

// ActionKind enumerates the side effects a quick reply may carry.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSetAccount
	ActionClearAccount
)

const (
	setAccountPrefix   = "set_account_"
	clearAccountAction = "clear_account"
)

var accountIDPattern = regexp.MustCompile(`^\d{6}$`)

// Action is applied to the conversation context when its chip is clicked.
// The zero value is "no action".
type Action struct {
	Kind    ActionKind
	Account string
}

// SetAccount returns a SET_ACCOUNT action. It panics on ids that are not six
// digits; use ParseAction for untrusted input.
func SetAccount(id string) Action {
	if !accountIDPattern.MatchString(id) {
		panic(fmt.Sprintf("domain: invalid account id %q", id))
	}
	return Action{Kind: ActionSetAccount, Account: id}
}

// ClearAccount returns a CLEAR_ACCOUNT action.
func ClearAccount() Action {
	return Action{Kind: ActionClearAccount}
}

// IsZero reports whether a carries no action.
func (a Action) IsZero() bool {
	return a.Kind == ActionNone
}

func (a Action) String() string {
	switch a.Kind {
	case ActionSetAccount:
		return setAccountPrefix + a.Account
	case ActionClearAccount:
		return clearAccountAction
	default:
		return ""
	}
}

// ParseAction is the inverse of Action.String. The empty string parses to the
// zero Action.
func ParseAction(s string) (Action, error) {
	switch {
	case s == "":
		return Action{}, nil
	case s == clearAccountAction:
		return ClearAccount(), nil
	case strings.HasPrefix(s, setAccountPrefix):
		id := strings.TrimPrefix(s, setAccountPrefix)
		if !accountIDPattern.MatchString(id) {
			return Action{}, fmt.Errorf("domain: invalid account id in action %q", s)
		}
		return Action{Kind: ActionSetAccount, Account: id}, nil
	default:
		return Action{}, fmt.Errorf("domain: unknown action %q", s)
	}
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// QuickReply is a suggestion chip shown under a bot message.
type QuickReply struct {
	Text   string `json:"text"`
	Action Action `json:"action"`
}
