// SPDX-License-Identifier: Apache-2.0

// Package mail delivers transactional email through an HTTP mail provider.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mealdrop/mealdrop/internal/config"
	"github.com/mealdrop/mealdrop/internal/logger"
)

var ErrMailDelivery = errors.New("mail delivery failed")

// Sender sends transactional messages to users.
type Sender interface {
	SendPasswordReset(ctx context.Context, to string, resetLink string) error
}

type httpMailClient struct {
	client *resty.Client
	from   string
	logger *logger.Logger
}

// NewHTTPMailClient constructs a [Sender] that posts messages to the
// configured mail provider endpoint.
func NewHTTPMailClient(cfg config.Mail, logger *logger.Logger) Sender {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIEndpoint, "/")).
		SetTimeout(15 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &httpMailClient{client: cli, from: cfg.From, logger: logger}
}

type sendMessageRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// SendPasswordReset mails the password-reset link to the given address.
func (m *httpMailClient) SendPasswordReset(ctx context.Context, to string, resetLink string) error {
	body := sendMessageRequest{
		From:    m.from,
		To:      to,
		Subject: "Reset your password",
		Text:    "Follow the link to set a new password: " + resetLink,
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/messages")
	if err != nil {
		m.logger.Err(err).Str("to", to).Msg("password reset mail request failed")
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}
	if resp.IsError() {
		m.logger.Error().Str("to", to).Int("status", resp.StatusCode()).Msg("mail provider rejected message")
		return fmt.Errorf("%w: provider returned status %d", ErrMailDelivery, resp.StatusCode())
	}

	return nil
}
