// Package registry resolves company static ids against the member registry.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dErrors "creditlines/pkg/domain-errors"
)

// Company is the registry's view of a network participant.
type Company struct {
	StaticID               string `json:"staticId"`
	Name                   string `json:"name"`
	IsMember               bool   `json:"isMember"`
	IsFinancialInstitution bool   `json:"isFinancialInstitution"`
}

// Client resolves companies by static id.
type Client interface {
	GetCompany(ctx context.Context, staticID string) (*Company, error)
}

// ErrCompanyNotFound is returned when the registry has no company for the id.
var ErrCompanyNotFound = dErrors.New(dErrors.CodeNotFound, "company not found in registry")

// HTTPClient talks to the member registry API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) GetCompany(ctx context.Context, staticID string) (*Company, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v0/companies/"+staticID, nil)
	if err != nil {
		return nil, fmt.Errorf("build registry request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call registry: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrCompanyNotFound
	default:
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var company Company
	if err := json.NewDecoder(resp.Body).Decode(&company); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}
	return &company, nil
}
