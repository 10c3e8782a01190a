package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	coreerrors "github.com/K0NGR3SS/profilebench/internal/errors"
	"github.com/K0NGR3SS/profilebench/internal/report"
)

type SlackNotifier struct {
	WebhookURL string
	Channel    string
	HTTPClient *http.Client
}

type slackMessage struct {
	Channel     string            `json:"channel,omitempty"`
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji"`
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	Fields []slackField `json:"fields,omitempty"`
	Footer string       `json:"footer,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func NewSlackNotifier(webhookURL, channel string) *SlackNotifier {
	return &SlackNotifier{
		WebhookURL: webhookURL,
		Channel:    channel,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendReport posts one attachment per comparison; green when the finding
// sets match, orange when one profile confirmed something the other missed.
func (s *SlackNotifier) SendReport(ctx context.Context, rep *report.Report, title string) error {
	comparisons := rep.Comparisons()
	deltas := 0
	for _, c := range comparisons {
		if !c.Delta.Equal() {
			deltas++
		}
	}

	text := fmt.Sprintf("📊 *%s*\n%d target(s), %d comparison(s), %d with finding deltas", title, len(rep.Groups), len(comparisons), deltas)

	attachments := make([]slackAttachment, 0, len(comparisons))
	for _, c := range comparisons {
		color := "good"
		if !c.Delta.Equal() {
			color = "warning"
		}
		tokens := fmt.Sprintf("%d vs %d", c.Other.TokensUsed, c.Baseline.TokensUsed)
		if pct, ok := c.TokenDeltaPct(); ok {
			tokens += fmt.Sprintf(" (%+.1f%%)", pct)
		}
		attachments = append(attachments, slackAttachment{
			Color: color,
			Title: fmt.Sprintf("%s: %s vs %s", c.Target, c.Other.Profile, c.Baseline.Profile),
			Text:  c.Note,
			Fields: []slackField{
				{Title: "Tokens", Value: tokens, Short: true},
				{Title: "Est. Cost (USD)", Value: fmt.Sprintf("$%.2f vs $%.2f", c.Other.EstimatedCostUSD, c.Baseline.EstimatedCostUSD), Short: true},
			},
			Footer: "profilebench",
		})
	}

	msg := slackMessage{
		Channel:     s.Channel,
		Username:    "profilebench",
		IconEmoji:   ":bar_chart:",
		Text:        text,
		Attachments: attachments,
	}

	return s.sendMessage(ctx, msg)
}

func (s *SlackNotifier) sendMessage(ctx context.Context, msg slackMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return coreerrors.Wrap(fmt.Errorf("failed to build slack request: %w", err), coreerrors.CategoryInvalidInput, "slack_request", "check slack.webhook_url")
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return coreerrors.Wrap(fmt.Errorf("failed to send slack message: %w", err), coreerrors.CategoryNotifyFailed, "slack_send", "")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return coreerrors.Wrap(fmt.Errorf("slack returned non-200 status: %d", resp.StatusCode), coreerrors.CategoryNotifyFailed, "slack_status", "")
	}

	return nil
}
