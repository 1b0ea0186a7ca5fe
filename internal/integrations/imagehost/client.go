package imagehost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL адрес API загрузки ImgBB
	DefaultBaseURL = "https://api.imgbb.com/1/upload"

	maxErrorBody = 4 << 10
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент хостинга изображений (ImgBB-совместимый API)
type Client struct {
	uploadURL  string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента хостинга
func NewClient(uploadURL, apiKey string, timeout time.Duration, log Logger) *Client {
	if uploadURL == "" {
		uploadURL = DefaultBaseURL
	}
	return &Client{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Upload загружает изображение под именем name и возвращает его публичный URL
func (c *Client) Upload(ctx context.Context, name string, image []byte) (*UploadResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUpload)
	}

	body, contentType, err := c.buildForm(name, image)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build form: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", contentType)

	c.log.Info("imagehost: uploading %s (%d bytes)", name, len(image))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("imagehost: request failed for %s: %v", name, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= http.StatusInternalServerError:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(raw))
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpload, resp.StatusCode, errorMessage(resp.Body))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !parsed.Success || parsed.Data.URL == "" {
		msg := "no url in response"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("%w: %s", ErrUpload, msg)
	}

	c.log.Info("imagehost: uploaded %s as %s", name, parsed.Data.URL)
	return &UploadResult{
		URL:       parsed.Data.URL,
		DeleteURL: parsed.Data.DeleteURL,
		ThumbURL:  parsed.Data.Thumb.URL,
	}, nil
}

// buildForm multipart-форма: key, image (base64), name
func (c *Client) buildForm(name string, image []byte) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"key", c.apiKey},
		{"image", base64.StdEncoding.EncodeToString(image)},
		{"name", name},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func errorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))

	var parsed uploadResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return string(raw)
}
