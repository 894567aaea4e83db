package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bank-assistant/internal/domain"
	"bank-assistant/internal/widget"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

var accountMention = regexp.MustCompile(`account \d{6}`)

// terminalRenderer paints widget instructions as plain lines of text.
type terminalRenderer struct {
	out   io.Writer
	sleep func(time.Duration)
	// chips are the quick replies under the latest bot message.
	chips []domain.QuickReply
}

func newTerminalRenderer(out io.Writer) *terminalRenderer {
	return &terminalRenderer{out: out, sleep: time.Sleep}
}

func (r *terminalRenderer) Render(ins widget.Instruction) {
	switch ins := ins.(type) {
	case widget.AppendMessage:
		r.renderMessage(ins.Message)
	case widget.ShowTyping:
		fmt.Fprint(r.out, "Bot is typing...")
	case widget.HideTyping:
		fmt.Fprint(r.out, "\r\x1b[K")
	case widget.LockInput:
		r.sleep(ins.After)
		r.chips = nil
		fmt.Fprintln(r.out, ins.Placeholder)
	}
}

func (r *terminalRenderer) renderMessage(m domain.Message) {
	if m.Sender == domain.SenderUser {
		fmt.Fprintf(r.out, "You: %s\n", m.Text)
		return
	}
	fmt.Fprintf(r.out, "Bot: %s\n", formatBotText(m.Text))
	r.chips = m.QuickReplies
	for i, qr := range m.QuickReplies {
		fmt.Fprintf(r.out, "  [%d] %s\n", i+1, qr.Text)
	}
	fmt.Fprintln(r.out)
}

// chip resolves a typed chip number.
func (r *terminalRenderer) chip(input string) (domain.QuickReply, bool) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(r.chips) {
		return domain.QuickReply{}, false
	}
	return r.chips[n-1], true
}

// formatBotText turns backend line breaks into newlines and makes account
// mentions stand out.
func formatBotText(text string) string {
	text = strings.TrimSuffix(text, "<br>")
	text = strings.ReplaceAll(text, "<br>", "\n     ")
	return accountMention.ReplaceAllString(text, ansiBold+"$0"+ansiReset)
}

// runChat reads lines from in until EOF or the bot ends the session.
func runChat(ctx context.Context, in io.Reader, out io.Writer, poster widget.Poster, logger *slog.Logger) error {
	renderer := newTerminalRenderer(out)
	session, err := widget.NewSession(poster, renderer, logger)
	if err != nil {
		return err
	}
	session.Welcome()

	scanner := bufio.NewScanner(in)
	for !session.Locked() {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, "You> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if qr, ok := renderer.chip(line); ok {
			session.Dispatch(ctx, widget.QuickReplyClicked{Text: qr.Text, Action: qr.Action})
			continue
		}
		session.Dispatch(ctx, widget.UserSent{Text: line})
	}
	return nil
}
