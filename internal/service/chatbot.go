package service

import (
	"context"
	"fmt"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// Chatbot wraps the VanMitra assistant endpoint. The assistant answers
// product, order, and FAQ queries and attaches quick-reply suggestions
// for the caller's role.
type Chatbot struct {
	client *api.Client
}

// NewChatbot creates a chatbot service over the shared client.
func NewChatbot(client *api.Client) *Chatbot {
	return &Chatbot{client: client}
}

// Send submits one message and returns the assistant's reply. An empty
// role is sent as GUEST so the assistant still answers before login.
func (c *Chatbot) Send(ctx context.Context, message string, role model.Role, userID int64) (*model.ChatReply, error) {
	userRole := string(role)
	if userRole == "" {
		userRole = model.ChatGuestRole
	}

	prompt := model.ChatPrompt{Message: message, UserRole: userRole, UserID: userID}
	var out model.ChatReply
	if err := c.client.Post(ctx, "/api/chatbot/message", prompt, &out); err != nil {
		return nil, fmt.Errorf("sending chat message: %w", err)
	}
	return &out, nil
}
