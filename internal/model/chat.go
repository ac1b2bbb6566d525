package model

// Assistant reply types.
const (
	ChatText        = "TEXT"
	ChatProductList = "PRODUCT_LIST"
	ChatOrderList   = "ORDER_LIST"
	ChatOrderInfo   = "ORDER_INFO"
	ChatFAQ         = "FAQ"
	ChatError       = "ERROR"
)

// ChatGuestRole is the role sent for unauthenticated assistant users.
const ChatGuestRole = "GUEST"

// ChatPrompt is the payload for POST /api/chatbot/message.
type ChatPrompt struct {
	Message  string `json:"message"`
	UserRole string `json:"userRole"`
	UserID   int64  `json:"userId,omitempty"`
}

// ChatCard is one structured result attached to an assistant reply.
// Product replies fill Name, Price, and Category; order replies fill
// ID, TotalAmount, and Status.
type ChatCard struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price,omitempty"`
	TotalAmount float64 `json:"totalAmount,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// ChatReply is the assistant's answer: a message, the reply type, any
// structured cards, and quick-reply suggestions tuned to the caller's
// role.
type ChatReply struct {
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	Data        []ChatCard `json:"data,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
}
