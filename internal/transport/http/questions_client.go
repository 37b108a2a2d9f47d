package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"quiz-widget/internal/domain"
)

// maxBodyBytes caps the question payload read from the endpoint.
const maxBodyBytes = 8 << 20

// QuestionsClient fetches the question list from a remote endpoint.
type QuestionsClient struct {
	endpoint string
	client   *http.Client
}

// NewQuestionsClient builds a client for endpoint. The default client has no
// timeout; the fetch waits until the transport or the context gives up.
func NewQuestionsClient(endpoint string, client *http.Client) *QuestionsClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &QuestionsClient{endpoint: endpoint, client: client}
}

// FetchQuestions issues a single GET. Every failure wraps domain.ErrFetchFailure.
func (c *QuestionsClient) FetchQuestions(ctx context.Context) ([]domain.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", domain.ErrFetchFailure, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrFetchFailure, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: response larger than %d bytes", domain.ErrFetchFailure, maxBodyBytes)
	}
	return decodeQuestions(body)
}
