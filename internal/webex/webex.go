// Package webex posts messages with file attachments to a Webex room.
package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the Webex REST API root.
const DefaultBaseURL = "https://webexapis.com/v1"

// defaultTimeout bounds a whole upload, file transfer included.
const defaultTimeout = 60 * time.Second

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 64 * 1024

var (
	// ErrMissingToken is returned when no bot token is configured.
	ErrMissingToken = errors.New("webex token is required")

	// ErrMissingRoom is returned when a message has no room id.
	ErrMissingRoom = errors.New("webex room id is required")
)

// Config configures a Client.
type Config struct {
	// Token is the bot access token sent as a Bearer credential.
	Token string

	// BaseURL overrides DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the default client with a 60 second timeout.
	HTTPClient *http.Client
}

// Message is one room message carrying a single file.
type Message struct {
	RoomID   string
	Text     string
	FilePath string
}

// Sent describes the message Webex created.
type Sent struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"roomId"`
	Created    time.Time `json:"created"`
	TrackingID string    `json:"-"`
}

// APIError is a non-success response from the Webex API.
type APIError struct {
	StatusCode int
	Body       string
	TrackingID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("webex API error (status %d): %s", e.StatusCode, e.Body)
}

// Client talks to the Webex messages API.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a Client from config.
func NewClient(config Config) *Client {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		token:   config.Token,
		baseURL: baseURL,
		client:  httpClient,
	}
}

// IsConfigured returns true if a token is set.
func (c *Client) IsConfigured() bool {
	return c.token != ""
}

// SendFile posts msg as multipart form data to the messages endpoint.
// 200 and 202 are success; any other status is returned as *APIError
// carrying the response body.
func (c *Client) SendFile(ctx context.Context, msg Message) (*Sent, error) {
	if !c.IsConfigured() {
		return nil, ErrMissingToken
	}
	if msg.RoomID == "" {
		return nil, ErrMissingRoom
	}

	body, contentType, err := encodeMessage(msg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	trackingID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("TrackingID", trackingID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
			TrackingID: trackingID,
		}
	}

	sent := &Sent{}
	// The upload already succeeded; an unexpected body only loses the ids.
	_ = json.NewDecoder(resp.Body).Decode(sent)
	sent.TrackingID = trackingID
	return sent, nil
}

// encodeMessage builds the multipart body: roomId, optional text, files.
func encodeMessage(msg Message) (*bytes.Buffer, string, error) {
	f, err := os.Open(msg.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("roomId", msg.RoomID); err != nil {
		return nil, "", fmt.Errorf("write roomId: %w", err)
	}
	if msg.Text != "" {
		if err := w.WriteField("text", msg.Text); err != nil {
			return nil, "", fmt.Errorf("write text: %w", err)
		}
	}

	name := filepath.Base(msg.FilePath)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     "files",
		"filename": name,
	}))
	header.Set("Content-Type", contentTypeFor(name))

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read attachment: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

func contentTypeFor(name string) string {
	// Not in the built-in mime table on every platform
	if strings.EqualFold(filepath.Ext(name), ".zip") {
		return "application/zip"
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
