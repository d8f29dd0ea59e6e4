package demo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler serves the demo backend's REST surface. Some mutations
// answer with plain text instead of JSON; the real backend mixes both
// and clients have to cope either way.
type Handler struct {
	store   *Store
	tracker *Tracker
	issuer  *TokenIssuer
	log     zerolog.Logger
}

func NewHandler(store *Store, tracker *Tracker, issuer *TokenIssuer, log zerolog.Logger) *Handler {
	return &Handler{store: store, tracker: tracker, issuer: issuer, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, text)
}

func writeList(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   data,
		"count":  count,
	})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	user, ok := h.store.Authenticate(req.Username, req.Password)
	if !ok {
		h.log.Warn().Str("username", req.Username).Msg("failed login attempt")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		h.log.Error().Err(err).Msg("token issue failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	claims := h.authorize(w, r)
	if claims == nil {
		return
	}

	user, err := h.store.UserByUsername(claims.Username)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unknown user"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"email":    user.Email,
	})
}

// authorize checks the bearer token and writes the 401 itself when it
// fails. A nil return means the response is already sent.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) *TokenClaims {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Missing bearer token"})
		return nil
	}

	claims, err := h.issuer.Validate(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid or expired token"})
		return nil
	}
	return claims
}

// RequireAuth guards the resource endpoints.
func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.authorize(w, r) == nil {
			return
		}
		next(w, r)
	}
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.store.Users()
	writeList(w, users, len(users))
}

type addUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username and password are required"})
		return
	}
	if req.Role == "" {
		req.Role = "USER"
	}

	if _, err := h.store.CreateUser(req.Username, req.Password, req.Email, req.Role); err != nil {
		if errors.Is(err, ErrUserExists) {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Username already exists"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return
	}

	writeText(w, http.StatusOK, "User added successfully")
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid user id"})
		return
	}

	if err := h.store.DeleteUser(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
		return
	}
	writeText(w, http.StatusOK, "User deleted")
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects := h.store.Projects()
	writeList(w, projects, len(projects))
}

type addProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedBy   string `json:"createdBy"`
}

func (h *Handler) AddProject(w http.ResponseWriter, r *http.Request) {
	var req addProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Project name is required"})
		return
	}

	h.store.CreateProject(req.Name, req.Description, req.Status, req.CreatedBy)
	writeText(w, http.StatusCreated, "Project created")
}

type editProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (h *Handler) EditProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid project id"})
		return
	}

	var req editProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if _, err := h.store.UpdateProject(id, req.Name, req.Description, req.Status); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Project not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project updated successfully"})
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid project id"})
		return
	}

	if err := h.store.DeleteProject(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Project not found"})
		return
	}
	writeText(w, http.StatusOK, "Project deleted")
}

func (h *Handler) ProjectDropdown(w http.ResponseWriter, r *http.Request) {
	projects := h.store.Projects()
	options := make([]map[string]interface{}, 0, len(projects))
	for _, p := range projects {
		options = append(options, map[string]interface{}{"id": p.ID, "name": p.Name})
	}
	writeList(w, options, len(options))
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups := h.store.Groups()
	writeList(w, groups, len(groups))
}

type addGroupRequest struct {
	Name        string        `json:"groupName"`
	Description string        `json:"groupDescription"`
	Project     string        `json:"project"`
	CreatedBy   string        `json:"createdBy"`
	Scripts     []ScriptOrder `json:"scripts"`
}

func (h *Handler) AddGroup(w http.ResponseWriter, r *http.Request) {
	var req addGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Group name is required"})
		return
	}

	g, err := h.store.CreateGroup(req.Name, req.Description, req.Project, req.CreatedBy, req.Scripts)
	if err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Group name already exists"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Group added successfully",
		"id":      g.ID,
	})
}

func (h *Handler) ListScripts(w http.ResponseWriter, r *http.Request) {
	scripts := h.store.Scripts()
	writeList(w, scripts, len(scripts))
}

func (h *Handler) UploadScript(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Script file is required"})
		return
	}
	file.Close()

	name := r.FormValue("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Script name is required"})
		return
	}

	// The file content is discarded; only metadata matters here. The
	// destination gets a unique name the way the real store does.
	destination := path.Join("/opt/pipeforge/scripts", uuid.New().String()+"_"+header.Filename)
	sc := h.store.CreateScript(name, r.FormValue("description"), r.FormValue("groupType"), destination, r.FormValue("createdBy"))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Script uploaded successfully",
		"id":      sc.ID,
	})
}

type editScriptRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GroupType   string `json:"groupType"`
}

func (h *Handler) EditScript(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid script id"})
		return
	}

	var req editScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if _, err := h.store.UpdateScript(id, req.Name, req.Description, req.GroupType, ""); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Script not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Script updated successfully"})
}

func (h *Handler) DeleteScript(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid script id"})
		return
	}

	if err := h.store.DeleteScript(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Script not found"})
		return
	}
	writeText(w, http.StatusOK, "Script deleted")
}

func (h *Handler) RunScript(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid script id"})
		return
	}

	sc, err := h.store.ScriptByID(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Script not found"})
		return
	}

	row := h.tracker.Start(sc.Name, sc.GroupType, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Script execution started",
		"id":      row.ID,
	})
}

func (h *Handler) ScriptDropdown(w http.ResponseWriter, r *http.Request) {
	scripts := h.store.Scripts()
	options := make([]map[string]interface{}, 0, len(scripts))
	for _, sc := range scripts {
		options = append(options, map[string]interface{}{"id": sc.ID, "name": sc.Name})
	}
	writeList(w, options, len(options))
}

func (h *Handler) Tracking(w http.ResponseWriter, r *http.Request) {
	rows := h.tracker.Snapshot()
	writeList(w, rows, len(rows))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "demo-backend"})
}
