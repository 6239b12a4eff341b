package testutil

import (
	"embed"
	"encoding/json"

	"github.com/agent-ops/sandboxctl/internal/session"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// LoadFixture loads a JSON fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadCreateRequestFixture loads a create request fixture.
func LoadCreateRequestFixture(name string) (*session.CreateRequest, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	var req session.CreateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidCreateRequest returns the valid create request fixture.
func ValidCreateRequest() (*session.CreateRequest, error) {
	return LoadCreateRequestFixture("valid_create_request.json")
}

// InvalidCreateRequest returns the invalid create request fixture.
func InvalidCreateRequest() (*session.CreateRequest, error) {
	return LoadCreateRequestFixture("invalid_create_request.json")
}

// RestoreRequest returns the restore request fixture.
func RestoreRequest() (*session.CreateRequest, error) {
	return LoadCreateRequestFixture("restore_request.json")
}
