package client

import (
	"encoding/json"
	"fmt"
)

// UserClient manages console users.
type UserClient struct {
	service
}

func NewUserClient(baseURL string, creds CredentialSource) *UserClient {
	return &UserClient{service: newService(baseURL, creds)}
}

// User is a console user record as the backend returns it.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	CreatedTime string `json:"createdTime,omitempty"`
}

// AddUserRequest carries the fields for creating a user. Role is
// restricted to the console's fixed role set.
type AddUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USER"`
}

// UserListResult is the envelope for List.
type UserListResult struct {
	Success bool   `json:"success"`
	Data    []User `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// UserResult is the envelope for user mutations.
type UserResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// List fetches all users. The status discriminator in the body decides
// success, not the HTTP status.
func (c *UserClient) List() UserListResult {
	resp, err := c.doJSON("GET", "/api/user/list", nil)
	if err != nil {
		return UserListResult{Message: err.Error()}
	}
	body := readBody(resp)

	var env listEnvelope
	if json.Unmarshal(body, &env) == nil && env.Status == statusSuccess {
		var users []User
		_ = json.Unmarshal(env.Data, &users)
		count := env.Count
		if count == 0 {
			count = len(users)
		}
		return UserListResult{Success: true, Data: users, Count: count}
	}

	if !isHTTPSuccess(resp.StatusCode) {
		return UserListResult{Message: errorMessage(resp.StatusCode, body)}
	}
	return UserListResult{Message: "Failed to fetch users"}
}

// Add creates a user. Input constraints are checked before any call is
// issued.
func (c *UserClient) Add(req AddUserRequest) UserResult {
	if msg := validationMessage(req); msg != "" {
		return UserResult{Message: msg}
	}

	resp, err := c.doJSON("POST", "/api/user/add", req)
	if err != nil {
		return UserResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return UserResult{Message: errorMessage(resp.StatusCode, body)}
	}

	msg, data := successBody(body, "User added successfully")
	return UserResult{Success: true, Message: msg, Data: data}
}

// Delete removes a user by id. Deleting an already-deleted user
// surfaces the backend's error through the envelope; it never panics or
// returns a Go error.
func (c *UserClient) Delete(id int64) UserResult {
	resp, err := c.doJSON("DELETE", fmt.Sprintf("/api/user/delete/%d", id), nil)
	if err != nil {
		return UserResult{Message: err.Error()}
	}
	body := readBody(resp)

	if !isHTTPSuccess(resp.StatusCode) {
		return UserResult{Message: errorMessage(resp.StatusCode, body)}
	}

	return UserResult{Success: true, Message: "User deleted successfully"}
}
