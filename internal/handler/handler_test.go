package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aqua-health-go/internal/config"
	"aqua-health-go/internal/i18n"
	"aqua-health-go/internal/intent"
	"aqua-health-go/internal/knowledge"
	"aqua-health-go/internal/scorer"
	"aqua-health-go/internal/service"
	"aqua-health-go/pkg/hash"
	"aqua-health-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *token.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kb := knowledge.Builtin()
	catalog, err := i18n.NewCatalog(kb, []string{"en", "hi", "bn"})
	require.NoError(t, err)
	composer := service.NewResponseComposer(kb, catalog)
	stats := service.NewStatsService(nil)

	hashed, err := hash.HashPassword("s3cret")
	require.NoError(t, err)
	jwtManager := token.NewJWTManager("test-secret", 1)

	svc := Services{
		Analysis: service.NewAnalysisService(i18n.NewLocalizer(kb, catalog), scorer.New(kb), composer, 0),
		Chat:     service.NewChatService(intent.NewResolver(kb, intent.DefaultLexicon()), composer, nil, "", service.NewDirectPublisher(stats)),
		Disease:  service.NewDiseaseService(kb, catalog, composer, nil),
		Stats:    stats,
		Auth:     service.NewAuthService(config.AdminConfig{Username: "admin", PasswordHash: hashed}, jwtManager),
		Composer: composer,
	}
	return NewRouter(svc, jwtManager, len(kb.Diseases()), len(kb.Symptoms())), jwtManager
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, header map[string]string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestAnalyze(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodPost, "/api/v1/analysis",
		gin.H{"symptoms": []string{"fever", "diarrhea", "vomiting", "dehydration"}}, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Results []struct {
			ID          string   `json:"id"`
			Name        string   `json:"name"`
			Remedies    []string `json:"remedies"`
			Probability int      `json:"probability"`
		} `json:"results"`
		NoMatch bool `json:"noMatch"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Results, 3)
	assert.Equal(t, "cholera", data.Results[0].ID)
	assert.Equal(t, "Cholera", data.Results[0].Name)
	assert.Equal(t, 67, data.Results[0].Probability)
	assert.NotEmpty(t, data.Results[0].Remedies)
	assert.False(t, data.NoMatch)
}

func TestAnalyze_NoMatchAndUnknown(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodPost, "/api/v1/analysis", gin.H{"symptoms": []string{}}, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"noMatch":true`)

	status, env = doJSON(t, r, http.MethodPost, "/api/v1/analysis", gin.H{"symptoms": []string{"fever", "itching"}}, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"unknown":["itching"]}`, string(env.Data))
}

func TestSymptoms_AcceptLanguage(t *testing.T) {
	r, _ := newTestRouter(t)

	status, env := doJSON(t, r, http.MethodGet, "/api/v1/symptoms", nil, map[string]string{"Accept-Language": "hi-IN,hi;q=0.9,en;q=0.8"})
	require.Equal(t, http.StatusOK, status)
	var data struct {
		Language string `json:"language"`
		Symptoms []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"symptoms"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "hi", data.Language)
	assert.Equal(t, "बुखार", data.Symptoms[0].Label)
}

func TestChat(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name     string
		body     gin.H
		intent   string
		response string
	}{
		{
			name:     "疾病字段问题",
			body:     gin.H{"message": "What are the symptoms of cholera?"},
			intent:   "disease_field",
			response: "Symptoms of Cholera: Profuse watery (rice-water) diarrhea, vomiting, leg cramps and rapid dehydration.",
		},
		{name: "问候", body: gin.H{"message": "hello"}, intent: "greeting"},
		{name: "无法识别", body: gin.H{"message": "xyz unrelated gibberish"}, intent: "fallback"},
		{name: "印地语问候", body: gin.H{"message": "namaste", "lang": "hi"}, intent: "greeting"},
		{name: "未指定语言的印地语问候", body: gin.H{"message": "namaste"}, intent: "greeting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, r, http.MethodPost, "/api/v1/chat", tt.body, nil)
			require.Equal(t, http.StatusOK, status)
			var data struct {
				Intent   string `json:"intent"`
				Response string `json:"response"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, tt.intent, data.Intent)
			assert.NotEmpty(t, data.Response)
			if tt.response != "" {
				assert.Equal(t, tt.response, data.Response)
			}
		})
	}
}

func TestDiseases(t *testing.T) {
	r, _ := newTestRouter(t)

	status, _ := doJSON(t, r, http.MethodGet, "/api/v1/diseases/typhoid?lang=hi", nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, r, http.MethodGet, "/api/v1/diseases/plague", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env := doJSON(t, r, http.MethodGet, "/api/v1/diseases/search?q=giardia", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"id":"giardiasis"`)

	status, env = doJSON(t, r, http.MethodGet, "/api/v1/diseases", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 7)
}

func TestAdmin(t *testing.T) {
	r, _ := newTestRouter(t)

	status, _ := doJSON(t, r, http.MethodPost, "/api/v1/admin/login", gin.H{"username": "admin", "password": "bad"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := doJSON(t, r, http.MethodPost, "/api/v1/admin/login", gin.H{"username": "admin", "password": "s3cret"}, nil)
	require.Equal(t, http.StatusOK, status)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	auth := map[string]string{"Authorization": "Bearer " + login.Token}

	// 测试环境没有 Redis 和 Elasticsearch
	status, _ = doJSON(t, r, http.MethodGet, "/api/v1/admin/intent-stats", nil, auth)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	status, _ = doJSON(t, r, http.MethodPost, "/api/v1/admin/diseases/reindex", nil, auth)
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = doJSON(t, r, http.MethodGet, "/api/v1/admin/intent-stats", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestChatWebSocket(t *testing.T) {
	r, _ := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws?lang=hi"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("हैजा के लक्षण क्या हैं?")))

	var chunk map[string]string
	require.NoError(t, conn.ReadJSON(&chunk))
	assert.True(t, strings.HasPrefix(chunk["chunk"], "हैजा के लक्षण: "))

	var done map[string]interface{}
	require.NoError(t, conn.ReadJSON(&done))
	assert.Equal(t, "completion", done["type"])
	assert.Equal(t, "disease_field", done["intent"])
	assert.Equal(t, "hi", done["language"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"message":"What are the symptoms of cholera?","lang":"en"}`)))
	require.NoError(t, conn.ReadJSON(&chunk))
	assert.Equal(t, "Symptoms of Cholera: Profuse watery (rice-water) diarrhea, vomiting, leg cramps and rapid dehydration.", chunk["chunk"])
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	status, env := doJSON(t, r, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","diseases":7,"symptoms":23}`, string(env.Data))
}
