package openai_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-bot/pkg/openai"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Stream   bool   `json:"stream"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newFakeOpenAI(t *testing.T, captured *capturedRequest) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, captured)

		if captured.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			for _, delta := range []string{"Try ", "", "Moneyball."} {
				fmt.Fprintf(w, "data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"gpt-test\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", delta)
			}
			fmt.Fprint(w, "data: [DONE]\n\n")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "c1", "object": "chat.completion", "created": 1, "model": "gpt-test",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Try Moneyball."}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
		}`)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func testRequest() *openai.Request {
	return &openai.Request{
		Messages: []openai.Message{
			{Role: "system", Content: "You recommend movies."},
			{Role: "assistant", Content: "Hello! I'm MOVIE BOT."},
			{Role: "user", Content: "I love Brad Pitt movies"},
		},
		Temperature: 0.7,
	}
}

func TestGenerateContent(t *testing.T) {
	var captured capturedRequest
	ts := newFakeOpenAI(t, &captured)

	client, err := openai.New(openai.Config{APIKey: "sk-test", Model: "gpt-test", BaseURL: ts.URL + "/v1/"})
	require.NoError(t, err)

	resp, err := client.GenerateContent(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "Try Moneyball.", resp.Content)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
	assert.Equal(t, "gpt-test", captured.Model)
	require.Len(t, captured.Messages, 3)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "assistant", captured.Messages[1].Role)
	assert.Equal(t, "user", captured.Messages[2].Role)
	assert.Equal(t, "I love Brad Pitt movies", captured.Messages[2].Content)
}

func TestStreamContent(t *testing.T) {
	var captured capturedRequest
	ts := newFakeOpenAI(t, &captured)

	client, err := openai.New(openai.Config{APIKey: "sk-test", Model: "gpt-test", BaseURL: ts.URL + "/v1/"})
	require.NoError(t, err)

	stream := client.StreamContent(context.Background(), testRequest())
	defer stream.Close()

	var chunks []string
	for stream.Next() {
		chunks = append(chunks, stream.Chunk())
	}
	require.NoError(t, stream.Err())
	assert.Equal(t, []string{"Try ", "Moneyball."}, chunks)
	assert.True(t, captured.Stream)
}

func TestGenerateContent_Unauthorized(t *testing.T) {
	var captured capturedRequest
	ts := newFakeOpenAI(t, &captured)

	client, err := openai.New(openai.Config{APIKey: "wrong", BaseURL: ts.URL + "/v1/"})
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), testRequest())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "openai:"))
}

func TestNew_Defaults(t *testing.T) {
	_, err := openai.New(openai.Config{})
	assert.Error(t, err)

	client, err := openai.New(openai.Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, openai.DefaultModel, client.Model())
}
