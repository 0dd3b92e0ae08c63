package sentiment

//go:generate go run go.uber.org/mock/mockgen -source=./sentiment.go -destination=./mocks/sentiment_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sabai/config"
	"sabai/infras/otel"
	"sabai/shared/constant"
	"sabai/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	otelAttrEndpoint = "sentiment.endpoint"

	defaultTimeoutSeconds = 10
)

// Score holds the classifier output. Positive and Negative are
// probabilities in [0, 1].
type Score struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

// Analyzer scores free-form review text against the external sentiment
// service.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Score, error)
}

type analyzerImpl struct {
	client   *http.Client
	endpoint string
	otel     otel.Otel
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func New(cfg *config.Config, ot otel.Otel) Analyzer {
	timeout := cfg.External.Sentiment.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return &analyzerImpl{
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		endpoint: cfg.External.Sentiment.Endpoint,
		otel:     ot,
	}
}

// Analyze implements Analyzer.
func (a *analyzerImpl) Analyze(ctx context.Context, text string) (score Score, err error) {
	ctx, scope := a.otel.NewScope(ctx, constant.OtelSentimentScopeName, constant.OtelSentimentScopeName+".Analyze")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrEndpoint, a.endpoint)

	payload, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return score, fmt.Errorf("failed to marshal sentiment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return score, fmt.Errorf("failed to build sentiment request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := a.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("endpoint", a.endpoint).Msg("sentiment service unreachable")

		return score, failure.BadGateway("sentiment service unreachable") //nolint:wrapcheck
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("endpoint", a.endpoint).Msg("sentiment service returned non-200")

		return score, failure.BadGateway("sentiment service returned an error") //nolint:wrapcheck
	}

	if err = json.NewDecoder(resp.Body).Decode(&score); err != nil {
		log.Error().Err(err).Str("endpoint", a.endpoint).Msg("failed to decode sentiment response")

		return score, failure.BadGateway("sentiment service returned a malformed response") //nolint:wrapcheck
	}

	return score, nil
}
