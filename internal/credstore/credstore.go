// Package credstore persists the session token and the cached user
// profile between CLI invocations, with an expiry bound on both.
package credstore

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTTL is how long stored credentials stay valid. The backend
// issues session tokens with the same one-day lifetime.
const DefaultTTL = 24 * time.Hour

// Profile is the denormalized snapshot of the authenticated user kept
// as a fallback when the token cannot be verified against the backend.
// It is written at login and may go stale if the backend-side record
// changes without a re-login; that is accepted.
type Profile struct {
	ID       int64  `yaml:"id" json:"id"`
	Username string `yaml:"username" json:"username"`
	Email    string `yaml:"email,omitempty" json:"email,omitempty"`
	Role     string `yaml:"role" json:"role"`
}

type credFile struct {
	Token            string     `yaml:"token,omitempty"`
	TokenExpiresAt   *time.Time `yaml:"token_expires_at,omitempty"`
	Profile          *Profile   `yaml:"profile,omitempty"`
	ProfileExpiresAt *time.Time `yaml:"profile_expires_at,omitempty"`
}

// Store reads and writes credentials at a fixed file path.
type Store struct {
	path string
	file credFile
	now  func() time.Time
}

// Open loads the store at path, or ~/.pipeforge/credentials.yaml when
// path is empty. A missing file is not an error; the store starts empty.
func Open(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".pipeforge", "credentials.yaml")
	}

	s := &Store{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, &s.file); err != nil {
		return nil, err
	}
	return s, nil
}

// SetToken stores the session token, replacing any existing one. The
// token expires ttl from now; pass 0 for DefaultTTL.
func (s *Store) SetToken(token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	exp := s.now().Add(ttl)
	s.file.Token = token
	s.file.TokenExpiresAt = &exp
	return s.save()
}

// Token returns the stored token, or "" when none is stored or the
// stored one has expired.
func (s *Store) Token() string {
	if s.file.Token == "" {
		return ""
	}
	if s.file.TokenExpiresAt != nil && s.now().After(*s.file.TokenExpiresAt) {
		return ""
	}
	return s.file.Token
}

// SetProfile stores the cached user profile with the same expiry
// contract as SetToken.
func (s *Store) SetProfile(p *Profile, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	exp := s.now().Add(ttl)
	s.file.Profile = p
	s.file.ProfileExpiresAt = &exp
	return s.save()
}

// Profile returns the cached user profile, or nil when absent/expired.
func (s *Store) Profile() *Profile {
	if s.file.Profile == nil {
		return nil
	}
	if s.file.ProfileExpiresAt != nil && s.now().After(*s.file.ProfileExpiresAt) {
		return nil
	}
	return s.file.Profile
}

// Clear removes the token and the cached profile. Clearing an empty
// store is not an error.
func (s *Store) Clear() error {
	s.file = credFile{}
	return s.save()
}

func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(s.file)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}
