// Package fcmgate implements the push-notification gateway on top of the
// FCM legacy HTTP API.
package fcmgate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type sendRequest struct {
	To           string            `json:"to"`
	Notification notificationBody  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type notificationBody struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendResponse struct {
	Success   int    `json:"success"`
	Failure   int    `json:"failure"`
	MessageID int64  `json:"message_id"`
	Results   []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// Gateway sends push messages through an FCM-compatible endpoint.
type Gateway struct {
	baseURL   string
	serverKey string
	client    *resty.Client
}

// NewGateway creates a Gateway. baseURL is the API root, without the
// /fcm/send suffix.
func NewGateway(baseURL string, serverKey string) (*Gateway, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if serverKey == "" {
		return nil, errs.NewValueIsRequiredError("serverKey")
	}
	return &Gateway{
		baseURL:   baseURL,
		serverKey: serverKey,
		client:    resty.New(),
	}, nil
}

func (g *Gateway) Send(ctx context.Context, token string, title string, body string,
	data map[string]string) (string, error) {
	if token == "" {
		return "", errs.NewValueIsRequiredError("token")
	}

	payload := sendRequest{
		To:           token,
		Notification: notificationBody{Title: title, Body: body},
		Data:         data,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "key="+g.serverKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(g.baseURL + "/fcm/send")
	if err != nil {
		return "", fmt.Errorf("send push: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("push request status: %d", resp.StatusCode())
	}

	var answer sendResponse
	if err := json.Unmarshal(resp.Body(), &answer); err != nil {
		return "", fmt.Errorf("decode push response: %w", err)
	}
	if answer.Failure > 0 || answer.Success == 0 {
		reason := "unknown"
		if len(answer.Results) > 0 && answer.Results[0].Error != "" {
			reason = answer.Results[0].Error
		}
		return "", fmt.Errorf("%w: %s", errs.ErrNotificationNotDelivered, reason)
	}
	if len(answer.Results) > 0 && answer.Results[0].MessageID != "" {
		return answer.Results[0].MessageID, nil
	}
	return fmt.Sprintf("%d", answer.MessageID), nil
}

var _ ports.NotificationGateway = (*Gateway)(nil)
