package demo

import "net/http"

// NewRouter registers the demo backend's routes. Everything except
// login and health requires a bearer token.
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/verify", h.Verify)

	mux.HandleFunc("GET /api/user/list", h.RequireAuth(h.ListUsers))
	mux.HandleFunc("POST /api/user/add", h.RequireAuth(h.AddUser))
	mux.HandleFunc("DELETE /api/user/delete/{id}", h.RequireAuth(h.DeleteUser))

	mux.HandleFunc("GET /api/project/list", h.RequireAuth(h.ListProjects))
	mux.HandleFunc("POST /api/project/add", h.RequireAuth(h.AddProject))
	mux.HandleFunc("PUT /api/project/edit/{id}", h.RequireAuth(h.EditProject))
	mux.HandleFunc("DELETE /api/project/delete/{id}", h.RequireAuth(h.DeleteProject))
	mux.HandleFunc("GET /api/project/dropdown", h.RequireAuth(h.ProjectDropdown))

	mux.HandleFunc("GET /api/group/list", h.RequireAuth(h.ListGroups))
	mux.HandleFunc("POST /api/group/add", h.RequireAuth(h.AddGroup))

	mux.HandleFunc("GET /api/script/get-all", h.RequireAuth(h.ListScripts))
	mux.HandleFunc("POST /api/script/upload", h.RequireAuth(h.UploadScript))
	mux.HandleFunc("PUT /api/script/edit/{id}", h.RequireAuth(h.EditScript))
	mux.HandleFunc("DELETE /api/script/delete/{id}", h.RequireAuth(h.DeleteScript))
	mux.HandleFunc("POST /api/script/{id}/run", h.RequireAuth(h.RunScript))
	mux.HandleFunc("GET /api/script/dropdown", h.RequireAuth(h.ScriptDropdown))
	mux.HandleFunc("GET /api/script/tracking", h.RequireAuth(h.Tracking))

	mux.HandleFunc("GET /api/health", h.Health)

	return mux
}
