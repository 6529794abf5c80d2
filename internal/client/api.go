/*
Package client implements the chat session controller used by the terminal client.

It talks to the server over plain HTTP: login, fixed-interval polling of the
message window, text/image sends, and multipart image upload.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dealchat/internal/app/storage"
	"dealchat/internal/app/store"
)

// API is a thin HTTP client for the chat server endpoints.
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI creates an API client for the server at baseURL (e.g. "http://localhost:8080").
func NewAPI(baseURL string) *API {
	return &API{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// postJSON sends the given payload and decodes a successful response into dst.
// Non-2xx responses are surfaced as the server's error message.
func (a *API) postJSON(ctx context.Context, path string, payload any, dst any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	return decodeResponse(res, dst)
}

func decodeResponse(res *http.Response, dst any) error {
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		var envelope errorEnvelope
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
			return errors.New(envelope.Error)
		}
		return fmt.Errorf("server returned status %d", res.StatusCode)
	}

	if dst == nil {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// Login authenticates the given credentials and returns the confirmed username.
func (a *API) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Success  bool   `json:"success"`
		Username string `json:"username"`
	}

	err := a.postJSON(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return "", err
	}

	return out.Username, nil
}

// Messages fetches the full bounded history window, oldest first.
func (a *API) Messages(ctx context.Context) ([]store.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/messages", nil)
	if err != nil {
		return nil, err
	}

	res, err := a.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var out struct {
		Success  bool            `json:"success"`
		Messages []store.Message `json:"messages"`
	}
	if err := decodeResponse(res, &out); err != nil {
		return nil, err
	}

	return out.Messages, nil
}

// Send submits a new message on behalf of from.
func (a *API) Send(ctx context.Context, from, content, kind string, imageURL *string) error {
	payload := map[string]any{
		"from":    from,
		"content": content,
		"type":    kind,
	}
	if imageURL != nil {
		payload["imageUrl"] = *imageURL
	}

	return a.postJSON(ctx, "/messages/send", payload, nil)
}

// Subscribe registers a push-endpoint descriptor for the given username.
func (a *API) Subscribe(ctx context.Context, username string, descriptor json.RawMessage) error {
	return a.postJSON(ctx, "/notifications/subscribe", map[string]any{
		"username":     username,
		"subscription": descriptor,
	}, nil)
}

// Upload sends the image at path as a multipart upload and returns the
// locator URL the server stored it under.
func (a *API) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := storage.ExtToMIME[ext]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(path)))
	partHeader.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var out struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
	}
	if err := decodeResponse(res, &out); err != nil {
		return "", err
	}

	return out.URL, nil
}
