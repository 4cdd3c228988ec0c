package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type Slack struct {
	Webhook string
	Client  *http.Client
}

func NewSlack(webhook string) *Slack {
	if webhook == "" {
		return nil
	}
	return &Slack{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type slackPayload struct {
	Text string `json:"text"`
}

func (s *Slack) Send(ctx context.Context, ev Event) error {
	if s == nil || s.Webhook == "" {
		return errors.New("slack disabled")
	}

	title := "🔴 Endpoint DOWN"
	if ev.Recovered {
		title = "🟢 Endpoint RECOVERED"
	}
	text := fmt.Sprintf(
		"Endpoint: %s (%s)\nClassification: %s\nLatency: %.0f ms\nDetail: %s\nChecked: %s",
		ev.Addr, ev.Kind, ev.Classification, ev.LatencyMS, ev.Message,
		ev.CheckedAt.Format(time.RFC3339),
	)

	body, _ := json.Marshal(slackPayload{Text: "*" + title + "*\n" + text})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return errors.New("slack non-2xx")
	}
	return nil
}
