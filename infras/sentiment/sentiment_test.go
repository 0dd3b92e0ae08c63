package sentiment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sabai/config"
	"sabai/infras/otel/mocks"
	"sabai/infras/sentiment"
	"sabai/shared/failure"

	"github.com/stretchr/testify/assert"
)

func newAnalyzer(endpoint string) sentiment.Analyzer {
	cfg := &config.Config{}
	cfg.External.Sentiment.Endpoint = endpoint
	cfg.External.Sentiment.TimeoutSeconds = 2

	return sentiment.New(cfg, mocks.NewOtel())
}

func TestAnalyze(t *testing.T) {
	t.Run("returns score on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Text string `json:"text"`
			}

			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "great massage, very relaxing", req.Text)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"positive":0.92,"negative":0.08}`))
		}))
		defer server.Close()

		analyzer := newAnalyzer(server.URL)

		score, err := analyzer.Analyze(context.Background(), "great massage, very relaxing")
		assert.NoError(t, err)
		assert.InDelta(t, 0.92, score.Positive, 1e-9)
		assert.InDelta(t, 0.08, score.Negative, 1e-9)
	})

	t.Run("maps non-200 to bad gateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		analyzer := newAnalyzer(server.URL)

		_, err := analyzer.Analyze(context.Background(), "meh")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	})

	t.Run("maps unreachable service to bad gateway", func(t *testing.T) {
		analyzer := newAnalyzer("http://127.0.0.1:1")

		_, err := analyzer.Analyze(context.Background(), "meh")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	})

	t.Run("maps malformed body to bad gateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		analyzer := newAnalyzer(server.URL)

		_, err := analyzer.Analyze(context.Background(), "meh")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	})
}
