package client

import "encoding/json"

// GroupClient manages script groups: named, ordered pipelines of
// scripts attached to a project.
type GroupClient struct {
	service
}

func NewGroupClient(baseURL string, creds CredentialSource) *GroupClient {
	return &GroupClient{service: newService(baseURL, creds)}
}

// ScriptOrder is one script slot inside a group, with its execution
// position.
type ScriptOrder struct {
	ScriptID int64  `json:"scriptId"`
	Name     string `json:"name"`
	Order    int    `json:"order"`
}

// Group is a script group record as the backend returns it.
type Group struct {
	ID          int64         `json:"id"`
	Name        string        `json:"groupName"`
	Description string        `json:"groupDescription,omitempty"`
	Project     string        `json:"project,omitempty"`
	CreatedBy   string        `json:"createdBy,omitempty"`
	Scripts     []ScriptOrder `json:"scripts,omitempty"`
}

// AddGroupRequest carries the fields for creating a group. CreatedBy is
// stamped from the session token.
type AddGroupRequest struct {
	Name        string        `json:"groupName" validate:"required"`
	Description string        `json:"groupDescription"`
	Project     string        `json:"project,omitempty"`
	CreatedBy   string        `json:"createdBy,omitempty"`
	Scripts     []ScriptOrder `json:"scripts"`
}

// GroupListResult is the envelope for List.
type GroupListResult struct {
	Success bool    `json:"success"`
	Data    []Group `json:"data,omitempty"`
	Message string  `json:"message,omitempty"`
	Count   int     `json:"count,omitempty"`
}

// GroupResult is the envelope for group mutations.
type GroupResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// List fetches all groups.
func (c *GroupClient) List() GroupListResult {
	resp, err := c.doJSON("GET", "/api/group/list", nil)
	if err != nil {
		return GroupListResult{Message: err.Error()}
	}
	body := readBody(resp)

	var env listEnvelope
	if json.Unmarshal(body, &env) == nil && env.Status == statusSuccess {
		var groups []Group
		_ = json.Unmarshal(env.Data, &groups)
		count := env.Count
		if count == 0 {
			count = len(groups)
		}
		return GroupListResult{Success: true, Data: groups, Count: count}
	}

	if !isHTTPSuccess(resp.StatusCode) {
		return GroupListResult{Message: errorMessage(resp.StatusCode, body)}
	}
	return GroupListResult{Message: "Failed to fetch groups"}
}

// Add creates a group, stamping createdBy from the session.
func (c *GroupClient) Add(req AddGroupRequest) GroupResult {
	if msg := validationMessage(req); msg != "" {
		return GroupResult{Message: msg}
	}
	req.CreatedBy = c.username()

	resp, err := c.doJSON("POST", "/api/group/add", req)
	if err != nil {
		return GroupResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return GroupResult{Message: errorMessage(resp.StatusCode, body)}
	}

	msg, data := successBody(body, "Group added successfully")
	return GroupResult{Success: true, Message: msg, Data: data}
}
