package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-bot/internal/chat"
	chatUC "movie-bot/internal/chat/usecase"
	"movie-bot/internal/filmography"
	"movie-bot/internal/session"
	"movie-bot/pkg/llmprovider"
	pkgLog "movie-bot/pkg/log"
)

type fakeFilmography struct{}

func (fakeFilmography) Lookup(ctx context.Context, input filmography.LookupInput) (filmography.Filmography, error) {
	if input.Name != "Brad" {
		return filmography.Filmography{}, filmography.ErrActorNotFound
	}
	return filmography.Filmography{Query: input.Name, Titles: []string{"Troy", "Babylon"}}, nil
}

type fakeLLM struct{}

func (fakeLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	return &llmprovider.Response{Content: "Try Moneyball."}, nil
}

func (fakeLLM) StreamContent(ctx context.Context, req *llmprovider.Request) (llmprovider.Stream, error) {
	return &wordStream{words: []string{"Try ", "Moneyball."}}, nil
}

type wordStream struct {
	words []string
	cur   string
}

func (s *wordStream) Next() bool {
	if len(s.words) == 0 {
		return false
	}
	s.cur, s.words = s.words[0], s.words[1:]
	return true
}
func (s *wordStream) Chunk() string { return s.cur }
func (s *wordStream) Err() error    { return nil }
func (s *wordStream) Close() error  { return nil }

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

// expiringUseCase drops the session right before every reply.
type expiringUseCase struct {
	chat.UseCase
}

func (uc expiringUseCase) Reply(ctx context.Context, input chat.ReplyInput) (chat.ReplyOutput, error) {
	if err := uc.EndSession(ctx, input.SessionID); err != nil {
		return chat.ReplyOutput{}, err
	}
	return uc.UseCase.Reply(ctx, input)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWith(t, func(uc chat.UseCase) chat.UseCase { return uc })
}

func newTestRouterWith(t *testing.T, wrap func(chat.UseCase) chat.UseCase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := pkgLog.NewNop()
	store := session.NewStore(session.StoreConfig{})
	uc := chatUC.New(l, store, fakeFilmography{}, fakeLLM{}, chatUC.Config{})
	h := New(l, wrap(uc))

	r := gin.New()
	RegisterWebRoutes(r, h)
	RegisterRoutes(r.Group("/api/v1"), h)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) (envelope, T) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data T
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &data))
	}
	return env, data
}

type sessionData struct {
	ID       string `json:"id"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type replyData struct {
	Actor    string `json:"actor"`
	Failure  string `json:"failure"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode[sessionData](t, w)
	require.NotEmpty(t, data.ID)
	require.Len(t, data.Messages, 1)
	assert.Equal(t, session.DefaultGreeting, data.Messages[0].Content)
	return data.ID
}

func TestPostMessage(t *testing.T) {
	r := newTestRouter(t)
	id := createSession(t, r)

	w := do(r, http.MethodPost, "/api/v1/sessions/"+id+"/messages", `{"text":"I love Brad Pitt movies"}`)
	require.Equal(t, http.StatusOK, w.Code)

	env, data := decode[replyData](t, w)
	assert.Equal(t, 0, env.ErrorCode)
	assert.Equal(t, "Brad", data.Actor)
	assert.Empty(t, data.Failure)
	require.Len(t, data.Messages, 4)
	assert.Equal(t, "user", data.Messages[0].Role)
	assert.Equal(t, "Movies featuring Brad:\n- Troy\n- Babylon\n", data.Messages[1].Content)
	assert.Equal(t, "Try Moneyball.", data.Messages[3].Content)

	w = do(r, http.MethodGet, "/api/v1/sessions/"+id+"/messages", "")
	require.Equal(t, http.StatusOK, w.Code)
	_, transcript := decode[sessionData](t, w)
	assert.Len(t, transcript.Messages, 5)
}

func TestPostMessage_ActorNotFound(t *testing.T) {
	r := newTestRouter(t)
	id := createSession(t, r)

	w := do(r, http.MethodPost, "/api/v1/sessions/"+id+"/messages", `{"text":"lee byung-hun"}`)
	require.Equal(t, http.StatusOK, w.Code)

	_, data := decode[replyData](t, w)
	assert.Equal(t, "actor_not_found", data.Failure)
	require.Len(t, data.Messages, 2)
	assert.Equal(t, chatUC.MsgActorNotFound, data.Messages[1].Content)
}

func TestPostMessage_Errors(t *testing.T) {
	r := newTestRouter(t)
	id := createSession(t, r)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown session", "/api/v1/sessions/nope/messages", `{"text":"Brad"}`, http.StatusNotFound},
		{"missing text", "/api/v1/sessions/" + id + "/messages", `{}`, http.StatusBadRequest},
		{"blank text", "/api/v1/sessions/" + id + "/messages", `{"text":"   "}`, http.StatusBadRequest},
		{"malformed body", "/api/v1/sessions/" + id + "/messages", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			env, _ := decode[map[string]any](t, w)
			assert.NotZero(t, env.ErrorCode)
		})
	}
}

func TestStreamMessage(t *testing.T) {
	r := newTestRouter(t)
	id := createSession(t, r)

	w := do(r, http.MethodPost, "/api/v1/sessions/"+id+"/messages/stream", `{"text":"Brad"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event:message"))
	assert.Equal(t, 2, strings.Count(body, "event:chunk"))
	assert.Equal(t, 1, strings.Count(body, "event:done"))
	assert.Less(t, strings.Index(body, "event:message"), strings.Index(body, "event:chunk"))
	assert.Contains(t, body, "Try Moneyball.")

	w = do(r, http.MethodGet, "/api/v1/sessions/"+id+"/messages", "")
	_, transcript := decode[sessionData](t, w)
	require.Len(t, transcript.Messages, 5)
	assert.Equal(t, "Try Moneyball.", transcript.Messages[4].Content)
}

func TestDeleteSession(t *testing.T) {
	r := newTestRouter(t)
	id := createSession(t, r)

	w := do(r, http.MethodDelete, "/api/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebUI(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MOVIE BOT.")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)

	form := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("text=I+love+Brad+Pitt+movies"))
	form.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	page := httptest.NewRequest(http.MethodGet, "/", nil)
	page.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, page)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "I love Brad Pitt movies")
	assert.Contains(t, body, "- Troy")
	assert.Contains(t, body, "Try Moneyball.")
	assert.Empty(t, w.Result().Cookies())
}

func TestWebUI_SessionExpiredDuringSubmit(t *testing.T) {
	r := newTestRouterWith(t, func(uc chat.UseCase) chat.UseCase { return expiringUseCase{uc} })

	w := do(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	form := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("text=Brad"))
	form.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	page := httptest.NewRequest(http.MethodGet, "/", nil)
	page.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, page)
	require.Equal(t, http.StatusOK, w.Code)

	fresh := w.Result().Cookies()
	require.Len(t, fresh, 1)
	assert.NotEqual(t, cookies[0].Value, fresh[0].Value)
	assert.NotContains(t, w.Body.String(), "- Troy")
}

func TestMapError_Unknown(t *testing.T) {
	h := &handler{}
	err := h.mapError(assert.AnError)
	assert.EqualError(t, err, "internal server error")
}
