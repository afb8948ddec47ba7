package discord

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/PigFarmBot_Go/internal/command"
)

// capturedRequest is one call made to the Discord REST API
type capturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// MockRoundTripper intercepts Discord REST calls
type MockRoundTripper struct {
	mu       sync.Mutex
	requests []capturedRequest
	// Respond returns the body for a request; nil means "{}"
	Respond func(req *http.Request) (int, string)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	m.mu.Lock()
	m.requests = append(m.requests, capturedRequest{Method: req.Method, Path: req.URL.Path, Body: body})
	m.mu.Unlock()

	status, payload := http.StatusOK, "{}"
	if m.Respond != nil {
		status, payload = m.Respond(req)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(payload)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Request:    req,
	}, nil
}

// Requests returns the captured calls with the given method
func (m *MockRoundTripper) Requests(method string) []capturedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []capturedRequest
	for _, r := range m.requests {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

// newTestSession returns a session whose REST calls never leave the process
func newTestSession(t *testing.T) (*discordgo.Session, *MockRoundTripper) {
	t.Helper()
	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Failed to create mock session: %v", err)
	}
	transport := &MockRoundTripper{}
	session.Client = &http.Client{Transport: transport}
	return session, transport
}

// fakeDispatcher records dispatches and answers with a canned reply
type fakeDispatcher struct {
	commands []command.Command
	reply    string
	err      error

	mu    sync.Mutex
	calls []dispatchCall
}

type dispatchCall struct {
	Sender, Username, Name string
	Args                   []string
}

func (f *fakeDispatcher) Dispatch(_ context.Context, sender, username, name string, args []string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, dispatchCall{Sender: sender, Username: username, Name: name, Args: args})
	f.mu.Unlock()
	return f.reply, f.err
}

func (f *fakeDispatcher) Commands() []command.Command { return f.commands }

// createTestInteraction builds a guild slash command interaction
func createTestInteraction(name string, options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "interaction-1",
			AppID: "app",
			Token: "token",
			Type:  discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "123", Username: "Tester"},
			},
		},
	}
}
