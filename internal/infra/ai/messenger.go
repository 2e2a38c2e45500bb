// Package ai implements the Messenger domain service against the Gemini
// REST API. Every call degrades to a canned message on any failure, so the
// rest of the application never depends on the API being reachable.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"atelier/config"
	"atelier/internal/domain/entity"
	"atelier/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com"
	defaultModel    = "gemini-1.5-flash"
	defaultTimeout  = 15 * time.Second
)

type messenger struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewMessenger builds the Gemini-backed messenger. A missing config section
// or empty API key is fine; drafts then always use the canned fallback.
func NewMessenger(cfg *config.Config, logger *slog.Logger) service.Messenger {
	m := &messenger{
		model:    defaultModel,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   logger,
	}

	if cfg != nil && cfg.Messenger != nil {
		m.apiKey = cfg.Messenger.APIKey
		if cfg.Messenger.Model != "" {
			m.model = cfg.Messenger.Model
		}
		if cfg.Messenger.Endpoint != "" {
			m.endpoint = strings.TrimRight(cfg.Messenger.Endpoint, "/")
		}
		if cfg.Messenger.Timeout > 0 {
			m.client.Timeout = cfg.Messenger.Timeout
		}
	}

	return m
}

// DraftClientMessage writes a short, warm re-engagement DM for the client.
func (m *messenger) DraftClientMessage(ctx context.Context, client *entity.Client) (string, error) {
	fallback := fmt.Sprintf(
		"Hi %s! It's been a while since your last appointment. Would you like to book your next session? I'd love to see you at the studio again!",
		firstName(client.Name),
	)

	prompt := fmt.Sprintf(
		"Write a short, warm Instagram DM (2-3 sentences, no hashtags) inviting a nail studio client back for her next appointment. "+
			"Client name: %s. Last visit: %s. Notes about her: %s. Write in a friendly, personal tone and sign off as the studio owner.",
		client.Name, client.LastVisit.Format("2 January 2006"), client.Notes,
	)

	return m.generate(ctx, prompt, fallback)
}

// AnalyzeRevenue summarizes recent ledger entries into a short observation.
func (m *messenger) AnalyzeRevenue(ctx context.Context, transactions []entity.Transaction) (string, error) {
	total := decimal.Zero
	byCategory := map[entity.TransactionCategory]decimal.Decimal{}
	for _, txn := range transactions {
		total = total.Add(txn.Amount)
		byCategory[txn.Category] = byCategory[txn.Category].Add(txn.Amount)
	}

	fallback := fmt.Sprintf(
		"You recorded %d transactions for a total of %s. Services brought in %s, sales %s.",
		len(transactions), total.StringFixed(2),
		byCategory[entity.CategoryService].StringFixed(2),
		byCategory[entity.CategorySale].StringFixed(2),
	)

	summary, err := json.Marshal(transactions)
	if err != nil {
		return fallback, nil
	}

	prompt := fmt.Sprintf(
		"You are the bookkeeper of a small nail studio. Summarize the following ledger entries in 2-3 sentences for the owner: "+
			"total revenue, the strongest category, and one actionable observation. Ledger JSON: %s",
		summary,
	)

	return m.generate(ctx, prompt, fallback)
}

// generate calls the model and falls back to the canned text on any error.
// The error return stays nil on fallback: callers always get usable text.
func (m *messenger) generate(ctx context.Context, prompt, fallback string) (string, error) {
	if m.apiKey == "" {
		return fallback, nil
	}

	text, err := m.call(ctx, prompt)
	if err != nil {
		m.logger.Warn("message draft failed, using fallback", slog.Any("error", err))

		return fallback, nil
	}

	return text, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (m *messenger) call(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "encode request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", m.endpoint, m.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call model")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("model returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, "decode response")
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("model returned no candidates")
	}

	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("model returned empty text")
	}

	return text, nil
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}

	return full
}
