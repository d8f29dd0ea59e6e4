package client

import (
	"encoding/json"
	"fmt"
)

// ProjectClient manages pipeline projects.
type ProjectClient struct {
	service
}

func NewProjectClient(baseURL string, creds CredentialSource) *ProjectClient {
	return &ProjectClient{service: newService(baseURL, creds)}
}

// Project is a pipeline project record as the backend returns it.
type Project struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
	Groups      []string `json:"groups,omitempty"`
	CreatedBy   string   `json:"createdBy,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// AddProjectRequest carries the fields for creating a project.
// CreatedBy is stamped from the session token; any caller-supplied
// value is overwritten.
type AddProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

// EditProjectRequest carries the optional fields for updating a
// project; zero values are omitted from the payload.
type EditProjectRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// ProjectListResult is the envelope for List.
type ProjectListResult struct {
	Success bool      `json:"success"`
	Data    []Project `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
	Count   int       `json:"count,omitempty"`
}

// ProjectResult is the envelope for project mutations. ProjectID is
// populated from the backend's echoed id on Add when present.
type ProjectResult struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	ProjectID int64                  `json:"projectId,omitempty"`
}

// ProjectOption is one entry of the dropdown listing.
type ProjectOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProjectDropdownResult is the envelope for Dropdown.
type ProjectDropdownResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    []ProjectOption `json:"data,omitempty"`
}

// List fetches all projects.
func (c *ProjectClient) List() ProjectListResult {
	resp, err := c.doJSON("GET", "/api/project/list", nil)
	if err != nil {
		return ProjectListResult{Message: err.Error()}
	}
	body := readBody(resp)

	var env listEnvelope
	if json.Unmarshal(body, &env) == nil && env.Status == statusSuccess {
		var projects []Project
		_ = json.Unmarshal(env.Data, &projects)
		count := env.Count
		if count == 0 {
			count = len(projects)
		}
		return ProjectListResult{Success: true, Data: projects, Count: count}
	}

	if !isHTTPSuccess(resp.StatusCode) {
		return ProjectListResult{Message: errorMessage(resp.StatusCode, body)}
	}
	return ProjectListResult{Message: "Failed to fetch projects"}
}

// Add creates a project, stamping createdBy from the session.
func (c *ProjectClient) Add(req AddProjectRequest) ProjectResult {
	if msg := validationMessage(req); msg != "" {
		return ProjectResult{Message: msg}
	}
	req.CreatedBy = c.username()

	resp, err := c.doJSON("POST", "/api/project/add", req)
	if err != nil {
		return ProjectResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return ProjectResult{Message: errorMessage(resp.StatusCode, body)}
	}

	msg, data := successBody(body, "Project added successfully")
	return ProjectResult{Success: true, Message: msg, Data: data, ProjectID: numericID(data)}
}

// Edit updates a project by id.
func (c *ProjectClient) Edit(id int64, req EditProjectRequest) ProjectResult {
	resp, err := c.doJSON("PUT", fmt.Sprintf("/api/project/edit/%d", id), req)
	if err != nil {
		return ProjectResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return ProjectResult{Message: errorMessage(resp.StatusCode, body)}
	}

	msg, data := successBody(body, "Project updated successfully")
	return ProjectResult{Success: true, Message: msg, Data: data}
}

// Delete removes a project by id.
func (c *ProjectClient) Delete(id int64) ProjectResult {
	resp, err := c.doJSON("DELETE", fmt.Sprintf("/api/project/delete/%d", id), nil)
	if err != nil {
		return ProjectResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return ProjectResult{Message: errorMessage(resp.StatusCode, body)}
	}

	return ProjectResult{Success: true, Message: "Project deleted successfully"}
}

// Dropdown fetches the reduced project listing used by select inputs.
func (c *ProjectClient) Dropdown() ProjectDropdownResult {
	resp, err := c.doJSON("GET", "/api/project/dropdown", nil)
	if err != nil {
		return ProjectDropdownResult{Message: err.Error()}
	}
	body := readBody(resp)

	var env listEnvelope
	if json.Unmarshal(body, &env) == nil && env.Status == statusSuccess {
		var options []ProjectOption
		_ = json.Unmarshal(env.Data, &options)
		return ProjectDropdownResult{Success: true, Message: env.Message, Data: options}
	}

	if !isHTTPSuccess(resp.StatusCode) {
		return ProjectDropdownResult{Message: errorMessage(resp.StatusCode, body)}
	}
	return ProjectDropdownResult{Message: "Failed to fetch dropdown projects"}
}

// numericID pulls an integral id out of a normalized response payload.
func numericID(data map[string]interface{}) int64 {
	switch v := data["id"].(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	default:
		return 0
	}
}
