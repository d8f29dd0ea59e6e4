package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/project/list", r.URL.Path)
		w.Write([]byte(`{"status":"success","data":[{"id":1,"name":"ingest","status":"Active","createdBy":"admin"}],"count":1}`))
	}))
	defer server.Close()

	c := NewProjectClient(server.URL, nil)
	result := c.List()

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "ingest", result.Data[0].Name)
	assert.Equal(t, "Active", result.Data[0].Status)
}

func TestProjectAdd_StampsCreatedBy(t *testing.T) {
	var received AddProjectRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/project/add", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"message":"Project added successfully","id":5}`))
	}))
	defer server.Close()

	c := NewProjectClient(server.URL, staticCreds(testToken("carol", "USER")))
	result := c.Add(AddProjectRequest{Name: "etl", CreatedBy: "spoofed"})

	assert.True(t, result.Success)
	assert.Equal(t, int64(5), result.ProjectID)
	// The caller-supplied createdBy never reaches the wire.
	assert.Equal(t, "carol", received.CreatedBy)
}

func TestProjectAdd_PlainTextBody(t *testing.T) {
	// Some backends answer creation with a bare string and a 201.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("Project created"))
	}))
	defer server.Close()

	c := NewProjectClient(server.URL, nil)
	result := c.Add(AddProjectRequest{Name: "etl"})

	assert.True(t, result.Success)
	assert.Equal(t, "Project created", result.Message)
	assert.Equal(t, map[string]interface{}{"message": "Project created"}, result.Data)
	assert.Zero(t, result.ProjectID)
}

func TestProjectAdd_MissingName(t *testing.T) {
	c := NewProjectClient("http://127.0.0.1:1", nil)
	result := c.Add(AddProjectRequest{Description: "no name"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "name is required")
}

func TestProjectEdit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/api/project/edit/7", r.URL.Path)
		w.Write([]byte(`{"message":"Project updated successfully"}`))
	}))
	defer server.Close()

	c := NewProjectClient(server.URL, nil)
	result := c.Edit(7, EditProjectRequest{Name: "renamed"})

	assert.True(t, result.Success)
	assert.Equal(t, "Project updated successfully", result.Message)
}

func TestProjectDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/api/project/delete/7", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewProjectClient(server.URL, nil)
	result := c.Delete(7)

	assert.True(t, result.Success)
	assert.Equal(t, "Project deleted successfully", result.Message)
}

func TestProjectDropdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/project/dropdown", r.URL.Path)
		w.Write([]byte(`{"status":"success","data":[{"id":1,"name":"ingest"},{"id":2,"name":"etl"}]}`))
	}))
	defer server.Close()

	c := NewProjectClient(server.URL, nil)
	result := c.Dropdown()

	assert.True(t, result.Success)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "etl", result.Data[1].Name)
}

func TestProjectDropdown_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewProjectClient(server.URL, nil)
	result := c.Dropdown()

	assert.False(t, result.Success)
	assert.Equal(t, "HTTP error! status: 502", result.Message)
}

func TestNumericID(t *testing.T) {
	assert.Equal(t, int64(5), numericID(map[string]interface{}{"id": float64(5)}))
	assert.Equal(t, int64(0), numericID(map[string]interface{}{"id": "5"}))
	assert.Equal(t, int64(0), numericID(map[string]interface{}{}))
}
