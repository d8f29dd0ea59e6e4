package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateUser(t *testing.T) {
	s := NewStore()

	u, err := s.CreateUser("admin", "admin123", "admin@example.com", "ADMIN")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "admin123", u.PasswordHash)
	assert.NotEmpty(t, u.CreatedTime)

	_, err = s.CreateUser("admin", "other", "", "USER")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestStoreAuthenticate(t *testing.T) {
	s := NewStore()
	_, err := s.CreateUser("admin", "admin123", "", "ADMIN")
	require.NoError(t, err)

	u, ok := s.Authenticate("admin", "admin123")
	require.True(t, ok)
	assert.Equal(t, "admin", u.Username)

	_, ok = s.Authenticate("admin", "wrong")
	assert.False(t, ok)

	_, ok = s.Authenticate("nobody", "admin123")
	assert.False(t, ok)
}

func TestStoreDeleteUser(t *testing.T) {
	s := NewStore()
	u, err := s.CreateUser("admin", "admin123", "", "ADMIN")
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(u.ID))
	assert.ErrorIs(t, s.DeleteUser(u.ID), ErrUserNotFound)
	assert.Empty(t, s.Users())
}

func TestStoreProjectLifecycle(t *testing.T) {
	s := NewStore()

	p := s.CreateProject("ingest", "loads data", "", "admin")
	assert.Equal(t, "Active", p.Status)

	updated, err := s.UpdateProject(p.ID, "", "", "Paused")
	require.NoError(t, err)
	assert.Equal(t, "Paused", updated.Status)
	assert.Equal(t, "ingest", updated.Name)

	_, err = s.UpdateProject(999, "x", "", "")
	assert.ErrorIs(t, err, ErrProjectNotFound)

	require.NoError(t, s.DeleteProject(p.ID))
	assert.Empty(t, s.Projects())
}

func TestStoreGroupLinksProject(t *testing.T) {
	s := NewStore()
	p := s.CreateProject("ingest", "", "", "admin")

	g, err := s.CreateGroup("nightly", "batch", "ingest", "admin", []ScriptOrder{{ScriptID: 1, Name: "x.py", Order: 1}})
	require.NoError(t, err)
	assert.Equal(t, "nightly", g.Name)

	_, err = s.CreateGroup("nightly", "", "", "admin", nil)
	assert.ErrorIs(t, err, ErrGroupExists)

	projects := s.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, []string{"nightly"}, projects[0].Groups)
	_ = p
}

func TestStoreScriptLifecycle(t *testing.T) {
	s := NewStore()

	sc := s.CreateScript("extract.py", "pulls rows", "nightly", "/opt/x", "admin")
	assert.NotZero(t, sc.ID)

	updated, err := s.UpdateScript(sc.ID, "", "updated desc", "", "editor")
	require.NoError(t, err)
	assert.Equal(t, "updated desc", updated.Description)
	assert.Equal(t, "extract.py", updated.Name)
	assert.Equal(t, "editor", updated.UpdatedBy)

	found, err := s.ScriptByID(sc.ID)
	require.NoError(t, err)
	assert.Equal(t, sc.ID, found.ID)

	require.NoError(t, s.DeleteScript(sc.ID))
	_, err = s.ScriptByID(sc.ID)
	assert.ErrorIs(t, err, ErrScriptNotFound)
}

func TestStoreIDsAreSequential(t *testing.T) {
	s := NewStore()
	p1 := s.CreateProject("a", "", "", "")
	p2 := s.CreateProject("b", "", "", "")
	assert.Greater(t, p2.ID, p1.ID)
}
