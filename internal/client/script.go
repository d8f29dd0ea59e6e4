package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// ScriptClient manages pipeline scripts: upload, metadata edits,
// deletion and simulated execution.
type ScriptClient struct {
	service
}

func NewScriptClient(baseURL string, creds CredentialSource) *ScriptClient {
	return &ScriptClient{service: newService(baseURL, creds)}
}

// Script is a script record as the backend returns it.
type Script struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	GroupType   string `json:"groupType,omitempty"`
	Destination string `json:"destination,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
	CreatedTime string `json:"createdTime,omitempty"`
	UpdatedTime string `json:"updatedTime,omitempty"`
}

// UploadScriptRequest carries the multipart fields for uploading a new
// script. CreatedBy is stamped from the session token.
type UploadScriptRequest struct {
	Name        string    `validate:"required"`
	Description string    `validate:"required"`
	GroupType   string    `validate:"required"`
	FileName    string    `validate:"required"`
	File        io.Reader `validate:"required"`
}

// EditScriptRequest carries the optional metadata fields for updating a
// script.
type EditScriptRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	GroupType   string `json:"groupType,omitempty"`
}

// ScriptListResult is the envelope for List.
type ScriptListResult struct {
	Success bool     `json:"success"`
	Data    []Script `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Count   int      `json:"count,omitempty"`
}

// ScriptResult is the envelope for script mutations. ScriptID carries
// the backend's echoed id on Upload when present.
type ScriptResult struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message"`
	ScriptID string                 `json:"scriptId,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// ScriptOption is one entry of the dropdown listing.
type ScriptOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ScriptDropdownResult is the envelope for Dropdown.
type ScriptDropdownResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    []ScriptOption `json:"data,omitempty"`
}

// RunningScript is one row of the execution-tracking view.
type RunningScript struct {
	ID                  int64    `json:"id"`
	ScriptName          string   `json:"scriptName"`
	Group               string   `json:"group"`
	Project             string   `json:"project"`
	Status              string   `json:"status"`
	Progress            int      `json:"progress"`
	StartTime           string   `json:"startTime,omitempty"`
	EstimatedCompletion string   `json:"estimatedCompletion,omitempty"`
	ExecutionOrder      int      `json:"executionOrder,omitempty"`
	Logs                []string `json:"logs,omitempty"`
}

// TrackingResult is the envelope for Tracking.
type TrackingResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    []RunningScript `json:"data,omitempty"`
	Count   int             `json:"count,omitempty"`
}

// List fetches all scripts.
func (c *ScriptClient) List() ScriptListResult {
	resp, err := c.doJSON("GET", "/api/script/get-all", nil)
	if err != nil {
		return ScriptListResult{Message: err.Error()}
	}
	body := readBody(resp)

	var env listEnvelope
	if json.Unmarshal(body, &env) == nil && env.Status == statusSuccess {
		var scripts []Script
		_ = json.Unmarshal(env.Data, &scripts)
		count := env.Count
		if count == 0 {
			count = len(scripts)
		}
		return ScriptListResult{Success: true, Data: scripts, Count: count}
	}

	if !isHTTPSuccess(resp.StatusCode) {
		return ScriptListResult{Message: errorMessage(resp.StatusCode, body)}
	}
	return ScriptListResult{Message: "Failed to fetch scripts"}
}

// Upload sends a new script file as multipart form data. The forced
// JSON content type is omitted so the multipart writer can set its own
// boundary-bearing one. CreatedBy is stamped from the session.
func (c *ScriptClient) Upload(req UploadScriptRequest) ScriptResult {
	if msg := validationMessage(req); msg != "" {
		return ScriptResult{Message: msg}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", req.FileName)
	if err != nil {
		return ScriptResult{Message: err.Error()}
	}
	if _, err := io.Copy(part, req.File); err != nil {
		return ScriptResult{Message: err.Error()}
	}

	fields := map[string]string{
		"name":        req.Name,
		"description": req.Description,
		"groupType":   req.GroupType,
		"createdBy":   c.username(),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return ScriptResult{Message: err.Error()}
		}
	}
	if err := w.Close(); err != nil {
		return ScriptResult{Message: err.Error()}
	}

	httpReq, err := c.newRequest("POST", "/api/script/upload", &buf, w.FormDataContentType())
	if err != nil {
		return ScriptResult{Message: err.Error()}
	}
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return ScriptResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return ScriptResult{Message: errorMessage(resp.StatusCode, body)}
	}

	msg, data := successBody(body, "Script uploaded successfully")
	return ScriptResult{Success: true, Message: msg, ScriptID: stringID(data), Data: data}
}

// Edit updates script metadata by id.
func (c *ScriptClient) Edit(id int64, req EditScriptRequest) ScriptResult {
	resp, err := c.doJSON("PUT", fmt.Sprintf("/api/script/edit/%d", id), req)
	if err != nil {
		return ScriptResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return ScriptResult{Message: errorMessage(resp.StatusCode, body)}
	}

	msg, data := successBody(body, "Script updated successfully")
	return ScriptResult{Success: true, Message: msg, Data: data}
}

// Delete removes a script by id.
func (c *ScriptClient) Delete(id int64) ScriptResult {
	resp, err := c.doJSON("DELETE", fmt.Sprintf("/api/script/delete/%d", id), nil)
	if err != nil {
		return ScriptResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return ScriptResult{Message: errorMessage(resp.StatusCode, body)}
	}

	return ScriptResult{Success: true, Message: "Script deleted successfully"}
}

// Run asks the backend to start a (simulated) execution of the script.
func (c *ScriptClient) Run(id int64) ScriptResult {
	resp, err := c.doJSON("POST", fmt.Sprintf("/api/script/%d/run", id), nil)
	if err != nil {
		return ScriptResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return ScriptResult{Message: errorMessage(resp.StatusCode, body)}
	}

	msg, data := successBody(body, "Script started successfully")
	return ScriptResult{Success: true, Message: msg, Data: data}
}

// Dropdown fetches the reduced script listing used by select inputs.
func (c *ScriptClient) Dropdown() ScriptDropdownResult {
	resp, err := c.doJSON("GET", "/api/script/dropdown", nil)
	if err != nil {
		return ScriptDropdownResult{Message: err.Error()}
	}
	body := readBody(resp)

	var env listEnvelope
	if json.Unmarshal(body, &env) == nil && env.Status == statusSuccess {
		var options []ScriptOption
		_ = json.Unmarshal(env.Data, &options)
		return ScriptDropdownResult{Success: true, Data: options}
	}

	if !isHTTPSuccess(resp.StatusCode) {
		return ScriptDropdownResult{Message: errorMessage(resp.StatusCode, body)}
	}
	return ScriptDropdownResult{Message: "Failed to fetch available scripts"}
}

// Tracking fetches the simulated execution-tracking view.
func (c *ScriptClient) Tracking() TrackingResult {
	resp, err := c.doJSON("GET", "/api/script/tracking", nil)
	if err != nil {
		return TrackingResult{Message: err.Error()}
	}
	body := readBody(resp)

	var env listEnvelope
	if json.Unmarshal(body, &env) == nil && env.Status == statusSuccess {
		var rows []RunningScript
		_ = json.Unmarshal(env.Data, &rows)
		count := env.Count
		if count == 0 {
			count = len(rows)
		}
		return TrackingResult{Success: true, Data: rows, Count: count}
	}

	if !isHTTPSuccess(resp.StatusCode) {
		return TrackingResult{Message: errorMessage(resp.StatusCode, body)}
	}
	return TrackingResult{Message: "Failed to fetch running scripts"}
}

// stringID pulls the id out of a normalized response payload as a
// string, whatever numeric or string form the backend used.
func stringID(data map[string]interface{}) string {
	switch v := data["id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
