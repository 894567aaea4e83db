package widget

import (
	"context"
	"errors"
	"log/slog"

	"bank-assistant/internal/domain"
)

// Poster sends a chat request to the backend.
type Poster interface {
	Post(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error)
}

// Renderer paints instructions for a human. Implementations must not block
// beyond what painting needs; LockInput delays are the renderer's to honor.
type Renderer interface {
	Render(ins Instruction)
}

// Session drives one conversation: it owns the context and the transcript
// and performs the /chat round trips the reducer asks for. A Session is meant
// to be used from a single goroutine.
type Session struct {
	poster   Poster
	renderer Renderer
	logger   *slog.Logger

	context    domain.ConversationContext
	transcript []domain.Message
	locked     bool
}

// NewSession creates a Session. renderer and logger may be nil.
func NewSession(p Poster, r Renderer, logger *slog.Logger) (*Session, error) {
	if p == nil {
		return nil, errors.New("widget: poster must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{poster: p, renderer: r, logger: logger}, nil
}

// Welcome appends the greeting message with the initial quick replies.
func (s *Session) Welcome() {
	s.apply([]Instruction{AppendMessage{Message: domain.Message{
		Text:         WelcomeText,
		Sender:       domain.SenderBot,
		QuickReplies: InitialReplies(),
	}}})
}

// Dispatch feeds ev through the reducer and carries out the resulting
// instructions. A PostChat instruction blocks until the backend answers or
// fails; its outcome is dispatched before Dispatch returns.
func (s *Session) Dispatch(ctx context.Context, ev Event) {
	if s.locked {
		switch ev.(type) {
		case UserSent, QuickReplyClicked:
			return
		}
	}

	var ins []Instruction
	s.context, ins = Reduce(s.context, ev)
	if post, ok := s.apply(ins); ok {
		reply, err := s.poster.Post(ctx, post.Request)
		if err != nil {
			s.logger.Error("chat request failed", "err", err)
			s.Dispatch(ctx, TransportFailed{Err: err})
			return
		}
		s.Dispatch(ctx, ReplyReceived{Response: reply.Response, Farewell: reply.Farewell})
	}
}

// Context returns the current conversation context.
func (s *Session) Context() domain.ConversationContext {
	return s.context
}

// Transcript returns a copy of the messages exchanged so far.
func (s *Session) Transcript() []domain.Message {
	out := make([]domain.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Locked reports whether the session has ended.
func (s *Session) Locked() bool {
	return s.locked
}

func (s *Session) apply(ins []Instruction) (PostChat, bool) {
	var (
		post    PostChat
		hasPost bool
	)
	for _, in := range ins {
		switch in := in.(type) {
		case AppendMessage:
			s.transcript = append(s.transcript, in.Message)
		case PostChat:
			post, hasPost = in, true
		case LockInput:
			s.locked = true
		}
		if s.renderer != nil {
			s.renderer.Render(in)
		}
	}
	return post, hasPost
}
