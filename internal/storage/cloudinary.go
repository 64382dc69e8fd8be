package storage

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CloudinaryStore uploads blobs through Cloudinary's signed upload API.
type CloudinaryStore struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string

	// HTTPClient overrides the default client in tests.
	HTTPClient *http.Client
}

func (s CloudinaryStore) client() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (s CloudinaryStore) publicID(key string) string {
	if s.Folder != "" {
		return s.Folder + "/" + key
	}
	return key
}

// sign builds the SHA1 request signature over the alphabetically sorted
// parameters, as the upload API requires.
func (s CloudinaryStore) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	// small fixed sets, insertion sort is enough
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	b.WriteString(s.APISecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(b.String())))
}

func (s CloudinaryStore) endpoint(action string) string {
	return "https://api.cloudinary.com/v1_1/" + s.CloudName + "/image/" + action
}

// Upload sends a signed base64 upload and returns the secure URL.
func (s CloudinaryStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.CloudName == "" || s.APIKey == "" || s.APISecret == "" {
		return "", fmt.Errorf("cloudinary credentials not configured")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	publicID := s.publicID(key)
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("file", "data:"+contentType+";base64,"+base64.StdEncoding.EncodeToString(data))
	form.Add("api_key", s.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", s.sign(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}))

	body, status, err := s.post(ctx, s.endpoint("upload"), form)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("cloudinary upload failed with status %d: %s", status, truncate(body))
	}

	var res struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("cloudinary upload: parse response: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL != "" {
		return res.SecureURL, nil
	}
	return res.URL, nil
}

// Delete destroys the object behind key. A "not found" result maps to
// ErrNotFound so cascade deletes can skip it.
func (s CloudinaryStore) Delete(ctx context.Context, key string) error {
	if s.CloudName == "" || s.APIKey == "" || s.APISecret == "" {
		return fmt.Errorf("cloudinary credentials not configured")
	}

	publicID := s.publicID(key)
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("api_key", s.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", s.sign(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}))

	body, status, err := s.post(ctx, s.endpoint("destroy"), form)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("cloudinary destroy failed with status %d: %s", status, truncate(body))
	}

	var res struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("cloudinary destroy: parse response: %w", err)
	}
	if res.Result == "not found" {
		return ErrNotFound
	}
	if res.Result != "ok" {
		return fmt.Errorf("cloudinary destroy: unexpected result %q", res.Result)
	}
	return nil
}

func (s CloudinaryStore) post(ctx context.Context, endpoint string, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.client().Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, res.StatusCode, nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
