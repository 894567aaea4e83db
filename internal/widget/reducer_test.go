package widget

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bank-assistant/internal/domain"
)

func TestReduce_UserSent(t *testing.T) {
	c, ins := Reduce(domain.ConversationContext{CurrentAccount: "123456"}, UserSent{Text: "  Show My Transactions "})

	require.Equal(t, "show my transactions", c.LastQuestion)
	require.Equal(t, []Instruction{
		AppendMessage{Message: domain.Message{Text: "Show My Transactions", Sender: domain.SenderUser}},
		ClearInput{},
		ShowTyping{},
		PostChat{Request: domain.ChatRequest{Message: "Show My Transactions", Context: c}},
	}, ins)
}

func TestReduce_EmptyInputIsNoop(t *testing.T) {
	prior := domain.ConversationContext{CurrentAccount: "654321", LastQuestion: "card status"}
	for _, text := range []string{"", "   ", "\t\n"} {
		c, ins := Reduce(prior, UserSent{Text: text})
		require.Equal(t, prior, c)
		require.Empty(t, ins)
	}
}

func TestReduce_QuickReplyAppliesActionFirst(t *testing.T) {
	c, ins := Reduce(domain.ConversationContext{}, QuickReplyClicked{
		Text:   "What's my balance for account 123456?",
		Action: domain.SetAccount("123456"),
	})
	require.Equal(t, "123456", c.CurrentAccount)
	require.Len(t, ins, 4)
	post, ok := ins[3].(PostChat)
	require.True(t, ok)
	require.Equal(t, "123456", post.Request.Context.CurrentAccount)
	require.Equal(t, "what's my balance for account 123456?", post.Request.Context.LastQuestion)

	c, ins = Reduce(c, QuickReplyClicked{Text: "Clear account selection", Action: domain.ClearAccount()})
	require.Empty(t, c.CurrentAccount)
	require.Empty(t, ins[3].(PostChat).Request.Context.CurrentAccount)
}

func TestReduce_ReplyReceived_ObservesBeforeGenerating(t *testing.T) {
	c, ins := Reduce(domain.ConversationContext{}, ReplyReceived{Response: "Your balance for account 123456 is $500"})

	require.Equal(t, "123456", c.CurrentAccount)
	require.Len(t, ins, 2)
	require.Equal(t, HideTyping{}, ins[0])
	msg := ins[1].(AppendMessage).Message
	require.Equal(t, domain.SenderBot, msg.Sender)
	require.Equal(t, []string{"Show my recent transactions", "What's my card status?", "Do I have any active loans?"}, texts(msg.QuickReplies))
}

func TestReduce_ReplyReceived_Farewell(t *testing.T) {
	_, ins := Reduce(domain.ConversationContext{}, ReplyReceived{
		Response: "Thank you for banking with XYZ Bank. Have a great day!",
		Farewell: true,
	})
	require.Len(t, ins, 3)
	require.Equal(t, LockInput{After: time.Second, Placeholder: SessionEndedText}, ins[2])
}

func TestReduce_TransportFailedKeepsContext(t *testing.T) {
	prior := domain.ConversationContext{CurrentAccount: "654321", LastQuestion: "card status"}
	c, ins := Reduce(prior, TransportFailed{Err: errors.New("connection refused")})
	require.Equal(t, prior, c)
	require.Equal(t, []Instruction{
		HideTyping{},
		AppendMessage{Message: domain.Message{Text: ConnectionErrorText, Sender: domain.SenderBot}},
	}, ins)
}
