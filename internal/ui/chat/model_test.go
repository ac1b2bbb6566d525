package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/api"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
	"github.com/vanvyapaar/vanvyapaar-cli/internal/service"
)

func newChatView(t *testing.T, reply string) (Model, *model.ChatPrompt) {
	t.Helper()

	var prompt model.ChatPrompt
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&prompt))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, func() string { return "tok" }, api.Hooks{})
	m := New(service.NewChatbot(client), 80, 24)
	return m, &prompt
}

func TestStartGreetsOnce(t *testing.T) {
	m, prompt := newChatView(t, `{"message":"Namaste!","type":"TEXT"}`)
	m.SetIdentity(42, model.RoleBuyer)

	cmd := m.Start()
	require.NotNil(t, cmd)
	collectMsgs(t, cmd())

	assert.Equal(t, "hello", prompt.Message)
	assert.Equal(t, "BUYER", prompt.UserRole)

	// The greeting is the assistant's opener, not a user message.
	assert.Empty(t, m.entries)

	// A second open does not greet again.
	prompt.Message = ""
	m.waiting = false
	collectMsgs(t, m.Start()())
	assert.Empty(t, prompt.Message)
}

func TestQuickReplySendsSuggestion(t *testing.T) {
	m, prompt := newChatView(t, `{"message":"On their way","type":"TEXT"}`)
	m.SetIdentity(42, model.RoleBuyer)
	m.greeted = true

	m, _ = m.Update(ReplyMsg{Reply: &model.ChatReply{
		Message:     "Namaste!",
		Type:        model.ChatText,
		Suggestions: []string{"Track my orders", "Shipping policy"},
	}})
	require.Len(t, m.suggestions, 2)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	require.NotNil(t, cmd)
	reply, ok := cmd().(ReplyMsg)
	require.True(t, ok)
	require.NotNil(t, reply.Reply)

	assert.Equal(t, "Shipping policy", prompt.Message)
	assert.Equal(t, int64(42), prompt.UserID)
	assert.True(t, m.waiting)

	// The picked suggestion shows as the user's message.
	require.NotEmpty(t, m.entries)
	assert.True(t, m.entries[len(m.entries)-1].fromUser)
	assert.Equal(t, "Shipping policy", m.entries[len(m.entries)-1].text)
}

func TestFailedCallShowsApology(t *testing.T) {
	m, _ := newChatView(t, `{}`)

	m, _ = m.Update(ReplyMsg{})
	require.Len(t, m.entries, 1)
	assert.False(t, m.entries[0].fromUser)
	assert.Equal(t, model.ChatError, m.entries[0].kind)
	assert.Empty(t, m.suggestions)
}

// collectMsgs executes nested batch commands so a Start round-trip
// completes in tests.
func collectMsgs(t *testing.T, msg tea.Msg) {
	t.Helper()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				collectMsgs(t, c())
			}
		}
	}
}
