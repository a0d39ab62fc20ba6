package helper

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"signal_bot/internal/models"
)

const maxErrBody = 512

// NewHTTPClient: общий клиент с таймаутом и опциональным прокси.
func NewHTTPClient(timeout time.Duration, proxy string) (*http.Client, error) {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, errors.Wrapf(err, "parse proxy %q", proxy)
		}
		tr.Proxy = http.ProxyURL(u)
	}
	return &http.Client{Timeout: timeout, Transport: tr}, nil
}

// Request: один запрос к внешнему API.
type Request struct {
	Source  string
	Op      string
	Method  string
	URL     string
	Headers map[string]string
	Body    any
}

// DoJSON выполняет запрос и разбирает ответ sonic'ом в out.
// Сеть и не-2xx дают ErrUpstream, кривой JSON даёт ErrMalformed, обе в *models.FetchError.
func DoJSON(ctx context.Context, c *http.Client, r Request, out any) error {
	var body io.Reader
	if r.Body != nil {
		b, err := sonic.Marshal(r.Body)
		if err != nil {
			return models.NewFetchError(r.Source, r.Op, errors.Wrap(err, "encode body"))
		}
		body = bytes.NewReader(b)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return models.NewFetchError(r.Source, r.Op, errors.Wrap(err, "build request"))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Do(req)
	if err != nil {
		return models.NewFetchError(r.Source, r.Op, errors.Wrap(models.ErrUpstream, err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return models.NewFetchError(r.Source, r.Op,
			errors.Wrapf(models.ErrUpstream, "http %d: %s", resp.StatusCode, string(b)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.NewFetchError(r.Source, r.Op, errors.Wrap(models.ErrUpstream, err.Error()))
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return models.NewFetchError(r.Source, r.Op, errors.Wrap(models.ErrMalformed, err.Error()))
	}
	return nil
}
