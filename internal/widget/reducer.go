package widget

import (
	"strings"
	"time"

	"bank-assistant/internal/domain"
)

const (
	// ConnectionErrorText is shown when /chat cannot be reached or answers garbage.
	ConnectionErrorText = "Sorry, I'm having trouble connecting to the server. Please try again later."
	// SessionEndedText replaces the input placeholder once the bot says goodbye.
	SessionEndedText = "Chat session ended. Please refresh to start a new chat."
	// WelcomeText is the first bot message of every session.
	WelcomeText = "Hello! Welcome to XYZ Bank's virtual assistant. How can I help you today?"

	lockDelay = time.Second
)

// Event is something that happened to the widget: user input or the outcome
// of a /chat round trip.
type Event interface {
	isEvent()
}

// UserSent is text typed by the user and submitted.
type UserSent struct {
	Text string
}

// QuickReplyClicked is a chip selection. Its action is applied before the
// chip text is sent.
type QuickReplyClicked struct {
	Text   string
	Action domain.Action
}

// ReplyReceived carries a decoded /chat response.
type ReplyReceived struct {
	Response string
	Farewell bool
}

// TransportFailed reports that the /chat round trip failed.
type TransportFailed struct {
	Err error
}

func (UserSent) isEvent()          {}
func (QuickReplyClicked) isEvent() {}
func (ReplyReceived) isEvent()     {}
func (TransportFailed) isEvent()   {}

// Instruction tells the host what to paint or do next.
type Instruction interface {
	isInstruction()
}

// AppendMessage adds a message to the transcript.
type AppendMessage struct {
	Message domain.Message
}

// ClearInput empties the text input.
type ClearInput struct{}

// ShowTyping displays the transient typing indicator.
type ShowTyping struct{}

// HideTyping removes the typing indicator.
type HideTyping struct{}

// PostChat asks the host to send Request to /chat.
type PostChat struct {
	Request domain.ChatRequest
}

// LockInput disables further input after the given delay.
type LockInput struct {
	After       time.Duration
	Placeholder string
}

func (AppendMessage) isInstruction() {}
func (ClearInput) isInstruction()    {}
func (ShowTyping) isInstruction()    {}
func (HideTyping) isInstruction()    {}
func (PostChat) isInstruction()      {}
func (LockInput) isInstruction()     {}

// Reduce applies ev to c and returns the new context together with the
// instructions the host must carry out, in order.
func Reduce(c domain.ConversationContext, ev Event) (domain.ConversationContext, []Instruction) {
	switch ev := ev.(type) {
	case UserSent:
		return send(c, ev.Text)
	case QuickReplyClicked:
		return send(ApplyAction(c, ev.Action), ev.Text)
	case ReplyReceived:
		c = Observe(c, ev.Response)
		out := []Instruction{
			HideTyping{},
			AppendMessage{Message: domain.Message{
				Text:         ev.Response,
				Sender:       domain.SenderBot,
				QuickReplies: Generate(ev.Response, c),
			}},
		}
		if ev.Farewell {
			out = append(out, LockInput{After: lockDelay, Placeholder: SessionEndedText})
		}
		return c, out
	case TransportFailed:
		return c, []Instruction{
			HideTyping{},
			AppendMessage{Message: domain.Message{Text: ConnectionErrorText, Sender: domain.SenderBot}},
		}
	default:
		return c, nil
	}
}

func send(c domain.ConversationContext, text string) (domain.ConversationContext, []Instruction) {
	message := strings.TrimSpace(text)
	if message == "" {
		return c, nil
	}
	c = RecordQuestion(c, message)
	return c, []Instruction{
		AppendMessage{Message: domain.Message{Text: message, Sender: domain.SenderUser}},
		ClearInput{},
		ShowTyping{},
		PostChat{Request: domain.ChatRequest{Message: message, Context: c}},
	}
}
