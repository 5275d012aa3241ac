package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"betledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, status int, content string, seen *map[string]any) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
			return
		}

		body, _ := json.Marshal(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func testMatch() models.MatchContext {
	return models.MatchContext{
		HomeTeam:      "Ajax",
		AwayTeam:      "PSV",
		League:        "Eredivisie",
		CurrentScore:  "1-0",
		CurrentMinute: "52",
		Context:       "PSV down to ten men",
	}
}

func TestOpenAIPredictionClient_Predict(t *testing.T) {
	var request map[string]any
	content := `{"homeWin":0.62,"draw":0.25,"awayWin":0.13,"doubleChance1X":0.87,"doubleChanceX2":0.38,
		"over05":1,"over15":0.71,"reasoning":"Ajax in control","confidence":72}`
	server := chatServer(t, http.StatusOK, content, &request)

	client := NewOpenAIPredictionClient(PredictionClientOptions{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1/",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})

	result, err := client.Predict(context.Background(), testMatch())

	require.NoError(t, err)
	assert.Equal(t, 0.87, result.DoubleChance1X)
	assert.Equal(t, 72.0, result.Confidence)
	assert.Equal(t, "Ajax in control", result.Reasoning)
	assert.False(t, result.Fallback)

	assert.Equal(t, "test-model", request["model"])
	messages, ok := request["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	userMessage := messages[1].(map[string]any)["content"].(string)
	assert.Contains(t, userMessage, "Ajax vs PSV (Eredivisie)")
	assert.Contains(t, userMessage, "minute 52, score 1-0")
	assert.Contains(t, userMessage, "PSV down to ten men")
}

func TestOpenAIPredictionClient_FencedReply(t *testing.T) {
	content := "```json\n{\"homeWin\":0.5,\"over05\":0.9,\"confidence\":50}\n```"
	server := chatServer(t, http.StatusOK, content, nil)

	client := NewOpenAIPredictionClient(PredictionClientOptions{BaseURL: server.URL + "/v1"})

	result, err := client.Predict(context.Background(), testMatch())

	require.NoError(t, err)
	assert.Equal(t, 0.5, result.HomeWin)
	assert.Equal(t, 0.9, result.Over05)
}

func TestOpenAIPredictionClient_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := chatServer(t, http.StatusInternalServerError, "", nil)
		client := NewOpenAIPredictionClient(PredictionClientOptions{BaseURL: server.URL + "/v1"})

		_, err := client.Predict(context.Background(), testMatch())
		assert.ErrorContains(t, err, "failed to request prediction")
	})

	t.Run("not json", func(t *testing.T) {
		server := chatServer(t, http.StatusOK, "The home side should win.", nil)
		client := NewOpenAIPredictionClient(PredictionClientOptions{BaseURL: server.URL + "/v1"})

		_, err := client.Predict(context.Background(), testMatch())
		assert.ErrorContains(t, err, "failed to decode prediction")
	})

	t.Run("empty reply", func(t *testing.T) {
		server := chatServer(t, http.StatusOK, "  ", nil)
		client := NewOpenAIPredictionClient(PredictionClientOptions{BaseURL: server.URL + "/v1"})

		_, err := client.Predict(context.Background(), testMatch())
		assert.ErrorIs(t, err, ErrEmptyPrediction)
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := chatServer(t, http.StatusOK, "{}", nil)
		client := NewOpenAIPredictionClient(PredictionClientOptions{BaseURL: server.URL + "/v1", RequestsPerMinute: 1})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Predict(ctx, testMatch())
		assert.Error(t, err)
	})
}

func TestDecodePrediction_ClearsFallbackFlag(t *testing.T) {
	result, err := decodePrediction(`{"homeWin":0.4,"fallback":true}`)
	require.NoError(t, err)
	assert.False(t, result.Fallback)
}
