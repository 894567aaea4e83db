package domain

// ChatRequest is the body the widget posts to /chat.
type ChatRequest struct {
	Message string              `json:"message"`
	Context ConversationContext `json:"context"`
}

// ChatReply is the body /chat answers with. The widget only reads Response
// and Farewell; the remaining fields are informational.
type ChatReply struct {
	Response     string        `json:"response"`
	Farewell     bool          `json:"farewell"`
	QuickReplies []string      `json:"quick_replies,omitempty"`
	Context      *ReplyContext `json:"context,omitempty"`
}

// ReplyContext echoes the account the backend resolved for the turn.
type ReplyContext struct {
	Account *string `json:"account"`
}
