package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencred/lending-service/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestClient_CompleteSuccess(t *testing.T) {
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "Start with an energy audit."}}],
			"usage": {"prompt_tokens": 42, "completion_tokens": 12}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "gpt-4o-mini", testLogger())
	scores := &models.ESGInput{Environmental: 45, Social: 70, Governance: 80, Risk: 65}
	reply, err := client.Complete(context.Background(), "How do I improve?", nil, scores)
	require.NoError(t, err)

	assert.False(t, reply.Fallback)
	assert.Equal(t, "Start with an energy audit.", reply.Text)
	require.NotNil(t, reply.Usage)
	assert.Equal(t, 42, reply.Usage.PromptTokens)

	// system prompt, score context, then the user turn
	require.GreaterOrEqual(t, len(gotReq.Messages), 3)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "environmental 45")
	assert.Equal(t, "user", gotReq.Messages[len(gotReq.Messages)-1].Role)
}

func TestClient_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "gpt-4o-mini", testLogger())
	reply, err := client.Complete(context.Background(), "what is esg?", nil, nil)
	require.NoError(t, err)

	assert.True(t, reply.Fallback, "degraded replies must be flagged")
	assert.Contains(t, reply.Text, "Environmental, Social, and Governance")
}

func TestClient_FallbackWithoutAPIKey(t *testing.T) {
	client := NewClient("http://localhost:0", "", "gpt-4o-mini", testLogger())
	reply, err := client.Complete(context.Background(), "tell me about green loans", nil, nil)
	require.NoError(t, err)

	assert.True(t, reply.Fallback)
	assert.Contains(t, reply.Text, "Sustainable finance")
}

func TestFallbackReply_KeywordRouting(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantSub string
	}{
		{name: "esg keyword", message: "Explain ESG please", wantSub: "Environmental, Social, and Governance"},
		{name: "green loan keyword", message: "do you offer a green loan?", wantSub: "Sustainable finance"},
		{name: "improve score", message: "how can I improve my score?", wantSub: "improve your ESG score"},
		{name: "default", message: "hello there", wantSub: "What would you like to learn about?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := fallbackReply(tt.message)
			assert.True(t, reply.Fallback)
			assert.Contains(t, reply.Text, tt.wantSub)
		})
	}
}

func TestBuildMessages_TruncatesHistory(t *testing.T) {
	history := make([]Message, 25)
	for i := range history {
		history[i] = Message{Role: "user", Content: "old"}
	}

	msgs := buildMessages("latest", history, nil)

	// system prompt + last 10 history turns + current user message
	assert.Len(t, msgs, 12)
	assert.Equal(t, "latest", msgs[len(msgs)-1].Content)
}
