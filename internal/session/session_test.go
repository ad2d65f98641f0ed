package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrdine/internal/models"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestSessionRoundTrip(t *testing.T) {
	path := tempPath(t)

	s, err := Load(path)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	require.NoError(t, s.SetToken("tok-123"))
	require.NoError(t, s.SetUser(&models.User{ID: 1, Name: "Asha", CompanyID: 9}))
	require.NoError(t, s.SetBranch(4))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", reloaded.Token())
	assert.Equal(t, uint(4), reloaded.BranchID())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, "Asha", reloaded.User().Name)
}

func TestClearBranchRemovesPersistedKey(t *testing.T) {
	path := tempPath(t)
	s, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, s.SetToken("tok"))
	require.NoError(t, s.SetBranch(7))
	require.NoError(t, s.ClearBranch())

	assert.Equal(t, uint(0), s.BranchID())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var state map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &state))
	_, present := state["selected_branch"]
	assert.False(t, present, "cleared branch must not linger in storage")
}

func TestLogoutFiresHookExactlyOnce(t *testing.T) {
	path := tempPath(t)
	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("tok"))

	var fired int
	s.OnLogout(func() { fired++ })

	// Several failing requests race the teardown; one redirect only.
	s.Logout()
	s.Logout()
	s.Logout()

	assert.Equal(t, 1, fired)
	assert.False(t, s.Authenticated())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "session file must be cleared")
}

func TestLogoutRearmsAfterFreshLogin(t *testing.T) {
	s, err := Load(tempPath(t))
	require.NoError(t, err)

	var fired int
	s.OnLogout(func() { fired++ })

	require.NoError(t, s.SetToken("first"))
	s.Logout()
	require.NoError(t, s.SetToken("second"))
	s.Logout()

	assert.Equal(t, 2, fired)
}

func TestParseDeepLink(t *testing.T) {
	dl, err := ParseDeepLink("https://order.example.com/order?token=abc&table=12&branch_id=3&companyId=77&mode=dine-in")
	require.NoError(t, err)
	assert.Equal(t, "abc", dl.Token)
	assert.Equal(t, 12, dl.TableNumber)
	assert.Equal(t, uint(3), dl.BranchID)
	assert.Equal(t, uint(77), dl.CompanyID)
	assert.Equal(t, "dine-in", dl.Mode)
}

func TestParseDeepLinkRejectsBadNumbers(t *testing.T) {
	_, err := ParseDeepLink("https://x.test/order?table=abc")
	assert.Error(t, err)
}

func TestBootstrapAppliesTokenAndBranch(t *testing.T) {
	path := tempPath(t)
	s, err := Load(path)
	require.NoError(t, err)

	dl, err := ParseDeepLink("https://x.test/order?token=qr-tok&table=2&branch_id=5")
	require.NoError(t, err)
	require.NoError(t, s.Bootstrap(dl))

	assert.Equal(t, "qr-tok", s.Token())
	assert.Equal(t, uint(5), s.BranchID())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "qr-tok", reloaded.Token())
}
