// Package client calls the survey API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/care-survey/httpx"
	"github.com/mbolis/care-survey/model"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API at baseURL. A nil httpClient means
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// StatusError is a non-2xx answer of the API.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("survey api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("survey api: %d %s", e.Status, e.Message)
}

// Create posts one submission and returns the id the API assigned.
func (c *Client) Create(ctx context.Context, s model.Submission) (int64, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	var created struct {
		ID int64 `json:"id"`
	}
	err = c.do(req, http.StatusCreated, &created)
	return created.ID, err
}

// List fetches every stored response, most recent first.
func (c *Client) List(ctx context.Context) ([]model.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/responses", nil)
	if err != nil {
		return nil, err
	}

	responses := []model.Response{}
	err = c.do(req, http.StatusOK, &responses)
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (c *Client) do(req *http.Request, want int, v any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		statusErr := &StatusError{Status: resp.StatusCode}
		var body httpx.ErrorResponse
		if render.DecodeJSON(resp.Body, &body) == nil {
			statusErr.Message = body.Error
		}
		return statusErr
	}

	return render.DecodeJSON(resp.Body, v)
}
