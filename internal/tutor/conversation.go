package tutor

import (
	"context"
	"strings"
)

// Conversation is a chat transcript that opens with the greeting.
type Conversation struct {
	svc      *Service
	messages []Message
}

func NewConversation(svc *Service) *Conversation {
	return &Conversation{
		svc:      svc,
		messages: []Message{{Role: RoleModel, Text: Greeting}},
	}
}

func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

func (c *Conversation) Append(role Role, text string) {
	c.messages = append(c.messages, Message{Role: role, Text: text})
}

// Send records text, asks the tutor with the prior transcript, and records
// the reply. Blank input is ignored.
func (c *Conversation) Send(ctx context.Context, text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	history := c.Messages()
	c.Append(RoleUser, text)
	reply := c.svc.Ask(ctx, history, text)
	c.Append(RoleModel, reply)
	return reply, true
}
