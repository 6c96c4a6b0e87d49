package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	repo "app/internal/repository"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJS互換のREST中継クライアント。
type EmailJSMailer struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	client     *http.Client
}

func NewEmailJSMailer(serviceID, templateID, publicKey, privateKey string) *EmailJSMailer {
	return &EmailJSMailer{
		endpoint:   defaultEndpoint,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		privateKey: privateKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	ServiceID      string              `json:"service_id"`
	TemplateID     string              `json:"template_id"`
	UserID         string              `json:"user_id"`
	AccessToken    string              `json:"accessToken,omitempty"`
	TemplateParams repo.TemplateParams `json:"template_params"`
}

func (m *EmailJSMailer) Send(ctx context.Context, params repo.TemplateParams) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:      m.serviceID,
		TemplateID:     m.templateID,
		UserID:         m.publicKey,
		AccessToken:    m.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("emailjs: status %d: %s", res.StatusCode, string(msg))
	}
	return nil
}
