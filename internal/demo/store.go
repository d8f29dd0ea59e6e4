package demo

import (
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists      = errors.New("username already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrGroupExists     = errors.New("group name already exists")
	ErrScriptNotFound  = errors.New("script not found")
)

// User is a stored console user. The password is kept only as a bcrypt
// hash.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
	CreatedTime  string `json:"createdTime,omitempty"`
}

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

type ScriptOrder struct {
	ScriptID int64  `json:"scriptId"`
	Name     string `json:"name"`
	Order    int    `json:"order"`
}

type Group struct {
	ID          int64         `json:"id"`
	Name        string        `json:"groupName"`
	Description string        `json:"groupDescription,omitempty"`
	Project     string        `json:"project,omitempty"`
	CreatedBy   string        `json:"createdBy,omitempty"`
	Scripts     []ScriptOrder `json:"scripts,omitempty"`
}

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

// Store is the demo backend's in-memory state. Everything is lost on
// restart; that is the point.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]*User
	projects map[int64]*Project
	groups   map[int64]*Group
	scripts  map[int64]*Script
	nextID   int64
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*User),
		projects: make(map[int64]*Project),
		groups:   make(map[int64]*Group),
		scripts:  make(map[int64]*Script),
		now:      time.Now,
	}
}

func (s *Store) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// CreateUser hashes the password and stores the user. Usernames are
// unique.
func (s *Store) CreateUser(username, password, email, role string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, ErrUserExists
		}
	}

	user := &User{
		ID:           s.nextIDLocked(),
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedTime:  s.timestamp(),
	}
	s.users[user.ID] = user
	return user, nil
}

// Authenticate verifies the password against the stored hash.
func (s *Store) Authenticate(username, password string) (*User, bool) {
	s.mu.RLock()
	var user *User
	for _, u := range s.users {
		if u.Username == username {
			user = u
			break
		}
	}
	s.mu.RUnlock()

	if user == nil {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, false
	}
	return user, true
}

func (s *Store) Users() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sortByID(users, func(u *User) int64 { return u.ID })
	return users
}

func (s *Store) UserByUsername(username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Store) CreateProject(name, description, status, createdBy string) *Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == "" {
		status = "Active"
	}
	p := &Project{
		ID:          s.nextIDLocked(),
		Name:        name,
		Description: description,
		Status:      status,
		CreatedBy:   createdBy,
		CreatedAt:   s.timestamp(),
		UpdatedAt:   s.timestamp(),
	}
	s.projects[p.ID] = p
	return p
}

func (s *Store) Projects() []*Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]*Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	sortByID(projects, func(p *Project) int64 { return p.ID })
	return projects
}

// UpdateProject applies non-empty fields only.
func (s *Store) UpdateProject(id int64, name, description, status string) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	if name != "" {
		p.Name = name
	}
	if description != "" {
		p.Description = description
	}
	if status != "" {
		p.Status = status
	}
	p.UpdatedAt = s.timestamp()
	return p, nil
}

func (s *Store) DeleteProject(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *Store) CreateGroup(name, description, project, createdBy string, scripts []ScriptOrder) (*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		if g.Name == name {
			return nil, ErrGroupExists
		}
	}

	g := &Group{
		ID:          s.nextIDLocked(),
		Name:        name,
		Description: description,
		Project:     project,
		CreatedBy:   createdBy,
		Scripts:     scripts,
	}
	s.groups[g.ID] = g

	// Keep the owning project's group list in sync.
	for _, p := range s.projects {
		if p.Name == project {
			p.Groups = append(p.Groups, name)
			break
		}
	}
	return g, nil
}

func (s *Store) Groups() []*Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]*Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, g)
	}
	sortByID(groups, func(g *Group) int64 { return g.ID })
	return groups
}

func (s *Store) CreateScript(name, description, groupType, destination, createdBy string) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := &Script{
		ID:          s.nextIDLocked(),
		Name:        name,
		Description: description,
		GroupType:   groupType,
		Destination: destination,
		CreatedBy:   createdBy,
		CreatedTime: s.timestamp(),
		UpdatedTime: s.timestamp(),
	}
	s.scripts[sc.ID] = sc
	return sc
}

func (s *Store) Scripts() []*Script {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scripts := make([]*Script, 0, len(s.scripts))
	for _, sc := range s.scripts {
		scripts = append(scripts, sc)
	}
	sortByID(scripts, func(sc *Script) int64 { return sc.ID })
	return scripts
}

func (s *Store) ScriptByID(id int64) (*Script, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scripts[id]
	if !ok {
		return nil, ErrScriptNotFound
	}
	return sc, nil
}

// UpdateScript applies non-empty fields only.
func (s *Store) UpdateScript(id int64, name, description, groupType, updatedBy string) (*Script, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scripts[id]
	if !ok {
		return nil, ErrScriptNotFound
	}
	if name != "" {
		sc.Name = name
	}
	if description != "" {
		sc.Description = description
	}
	if groupType != "" {
		sc.GroupType = groupType
	}
	sc.UpdatedBy = updatedBy
	sc.UpdatedTime = s.timestamp()
	return sc, nil
}

func (s *Store) DeleteScript(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scripts[id]; !ok {
		return ErrScriptNotFound
	}
	delete(s.scripts, id)
	return nil
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
