package webex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAttachment(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifacts.zip")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestClient_SendFile(t *testing.T) {
	t.Run("posts multipart message", func(t *testing.T) {
		var (
			roomID, text, filename, fileBody, auth, tracking string
		)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/messages", r.URL.Path)
			auth = r.Header.Get("Authorization")
			tracking = r.Header.Get("TrackingID")

			require.NoError(t, r.ParseMultipartForm(1<<20))
			roomID = r.FormValue("roomId")
			text = r.FormValue("text")

			file, header, err := r.FormFile("files")
			require.NoError(t, err)
			defer file.Close()
			filename = header.Filename
			data, _ := io.ReadAll(file)
			fileBody = string(data)

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id": "msg-1", "roomId": "room-1", "created": "2024-05-01T10:00:00.000Z"}`)
		}))
		defer server.Close()

		c := NewClient(Config{Token: "secret", BaseURL: server.URL + "/"})
		sent, err := c.SendFile(context.Background(), Message{
			RoomID:   "room-1",
			Text:     "Fabric docs attached",
			FilePath: writeAttachment(t, "PK-data"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Bearer secret", auth)
		assert.Equal(t, "room-1", roomID)
		assert.Equal(t, "Fabric docs attached", text)
		assert.Equal(t, "artifacts.zip", filename)
		assert.Equal(t, "PK-data", fileBody)

		_, err = uuid.Parse(tracking)
		assert.NoError(t, err)
		assert.Equal(t, tracking, sent.TrackingID)
		assert.Equal(t, "msg-1", sent.ID)
		assert.Equal(t, "room-1", sent.RoomID)
	})

	t.Run("omits empty text", func(t *testing.T) {
		hasText := true
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, hasText = r.MultipartForm.Value["text"]
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		c := NewClient(Config{Token: "secret", BaseURL: server.URL})
		sent, err := c.SendFile(context.Background(), Message{RoomID: "room-1", FilePath: writeAttachment(t, "x")})
		require.NoError(t, err)
		assert.False(t, hasText)
		assert.Empty(t, sent.ID, "202 without a body is still success")
	})

	t.Run("returns API error with body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message": "The request requires a valid access token set in the Authorization request header."}`+"\n")
		}))
		defer server.Close()

		c := NewClient(Config{Token: "bad", BaseURL: server.URL})
		_, err := c.SendFile(context.Background(), Message{RoomID: "room-1", FilePath: writeAttachment(t, "x")})
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "valid access token")
		assert.NotEmpty(t, apiErr.TrackingID)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("treats other 2xx as failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c := NewClient(Config{Token: "t", BaseURL: server.URL})
		_, err := c.SendFile(context.Background(), Message{RoomID: "room-1", FilePath: writeAttachment(t, "x")})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNoContent, apiErr.StatusCode)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := NewClient(Config{Token: "t", BaseURL: server.URL})
		_, err := c.SendFile(ctx, Message{RoomID: "room-1", FilePath: writeAttachment(t, "x")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "send request")
	})
}

func TestClient_SendFile_Validation(t *testing.T) {
	path := writeAttachment(t, "x")

	t.Run("missing token", func(t *testing.T) {
		_, err := NewClient(Config{}).SendFile(context.Background(), Message{RoomID: "r", FilePath: path})
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("missing room", func(t *testing.T) {
		_, err := NewClient(Config{Token: "t"}).SendFile(context.Background(), Message{FilePath: path})
		assert.ErrorIs(t, err, ErrMissingRoom)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewClient(Config{Token: "t"}).SendFile(context.Background(), Message{
			RoomID:   "r",
			FilePath: filepath.Join(t.TempDir(), "missing.zip"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open attachment")
	})
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{Token: "t"})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, defaultTimeout, c.client.Timeout)
	assert.True(t, c.IsConfigured())
	assert.False(t, NewClient(Config{}).IsConfigured())
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/zip", contentTypeFor("artifacts.zip"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("artifacts"))
}
