package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"unicode/utf8"

	"modelbench/domain/account"
	"modelbench/domain/catalog"
	"modelbench/domain/core"
	"modelbench/domain/history"
	"modelbench/domain/tabular"
	"modelbench/domain/training"
	apperrors "modelbench/internal/errors"

	"github.com/tidwall/gjson"
)

// maxReplyBytes caps how much of a reply body is read.
const maxReplyBytes = 8 << 20

const maxSnippet = 200

// Client implements ports.ModelAPI over the training API's HTTP endpoints
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a training API client
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Login checks credentials against the API's user table. The API answers a
// bare true or false.
func (c *Client) Login(ctx context.Context, creds account.Credentials) error {
	body, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	var ok bool
	if err := c.do(ctx, http.MethodPost, "/login", "application/json", bytes.NewReader(body), &ok); err != nil {
		return err
	}
	if !ok {
		return core.ErrUnauthorized
	}
	return nil
}

// Signup registers a new user
func (c *Client) Signup(ctx context.Context, creds account.Credentials) error {
	body, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	var reply signupReply
	if err := c.do(ctx, http.MethodPost, "/signup", "application/json", bytes.NewReader(body), &reply); err != nil {
		return err
	}
	switch {
	case reply.Failed != "":
		return fmt.Errorf("%w: %q", core.ErrUsernameTaken, creds.Username)
	case reply.Success == "":
		return core.NewUpstreamError("unexpected signup reply")
	}
	return nil
}

// Train uploads the dataset to the model's endpoint
func (c *Client) Train(ctx context.Context, job training.Job) (*training.Result, error) {
	if job.Model.Slug == "" {
		return nil, core.ErrUnknownModel
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, job.FileName))
	header.Set("Content-Type", tabular.MimeType(tabular.Extension(job.FileName)))
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(job.Data); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}

	if err := w.WriteField("target_column", job.TargetColumn); err != nil {
		return nil, fmt.Errorf("write target_column: %w", err)
	}
	if job.Model.Configurable {
		cfg := catalog.DefaultNetworkConfig()
		if job.Network != nil {
			cfg = *job.Network
		}
		raw, err := json.Marshal(networkRequest{TargetColumn: job.TargetColumn, ModelConfig: cfg})
		if err != nil {
			return nil, fmt.Errorf("marshal request_data: %w", err)
		}
		if err := w.WriteField("request_data", string(raw)); err != nil {
			return nil, fmt.Errorf("write request_data: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	var result training.Result
	if err := c.do(ctx, http.MethodPost, "/"+job.Model.Slug, w.FormDataContentType(), &body, &result); err != nil {
		return nil, err
	}
	if result.Metrics == nil {
		result.Metrics = map[string]any{}
	}
	return &result, nil
}

// SaveResult stores a finished run for later comparison
func (c *Client) SaveResult(ctx context.Context, run training.SavedRun) error {
	metrics, err := json.Marshal(run.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := []struct{ name, value string }{
		{"username", run.Username},
		{"dataset_name", run.DatasetName},
		{"model_type", run.ModelType},
		{"target_column", run.TargetColumn},
		{"metrics", string(metrics)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	var reply messageReply
	return c.do(ctx, http.MethodPost, "/save-model-result", w.FormDataContentType(), &body, &reply)
}

// History lists the saved runs of a user
func (c *Client) History(ctx context.Context, username string) ([]history.Record, error) {
	var reply historyReply
	if err := c.do(ctx, http.MethodGet, "/model-history/"+url.PathEscape(username), "", nil, &reply); err != nil {
		return nil, err
	}
	if reply.History == nil {
		return []history.Record{}, nil
	}
	return reply.History, nil
}

// ClearHistory deletes every saved run of a user
func (c *Client) ClearHistory(ctx context.Context, username string) error {
	var reply messageReply
	return c.do(ctx, http.MethodDelete, "/clear-model-history/"+url.PathEscape(username), "", nil, &reply)
}

// do sends one request and decodes the JSON reply into out. The API reports
// failures as a 200 with an "error" key, which becomes ErrUpstream.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.ExternalServiceError("model API", fmt.Errorf("%w: %s %s: %w", core.ErrUpstream, method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.ExternalServiceError("model API", fmt.Errorf("%w: http %d: %s", core.ErrUpstream, resp.StatusCode, detail(raw)))
	}
	if msg := replyError(raw); msg != "" {
		return core.NewUpstreamError(msg)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: unmarshal response: %v", core.ErrUpstream, err)
	}
	return nil
}

// replyError returns the "error" value of a reply, or "" when there is none
func replyError(raw []byte) string {
	res := gjson.GetBytes(raw, "error")
	switch {
	case !res.Exists(), res.Type == gjson.Null:
		return ""
	case res.Type == gjson.String:
		return strings.TrimSpace(res.Str)
	default:
		return res.Raw
	}
}

// detail prefers FastAPI's "detail" field when summarising a failed reply
func detail(raw []byte) string {
	if d := gjson.GetBytes(raw, "detail"); d.Exists() && d.Type != gjson.Null {
		if d.Type == gjson.String {
			return d.Str
		}
		return snippet([]byte(d.Raw))
	}
	return snippet(raw)
}

// snippet shortens raw to at most maxSnippet bytes without splitting a rune
func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) <= maxSnippet {
		return s
	}
	cut := maxSnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
