package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labshare-dev/labshare/internal/api"
)

var testSecret = []byte("test-secret")

func mustSign(t *testing.T, profile api.Profile, ttl time.Duration) string {
	t.Helper()
	token, err := SignToken(testSecret, profile, ttl)
	require.NoError(t, err)
	return token
}

func TestAnonymous(t *testing.T) {
	s := Anonymous()
	assert.False(t, s.IsLoggedIn())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, Flags{}, s.Flags())
}

func TestNilSession(t *testing.T) {
	var s *Session
	assert.False(t, s.IsLoggedIn())
	assert.False(t, s.IsAdmin())
}

func TestNew_AdminToken(t *testing.T) {
	token := mustSign(t, api.Profile{ID: "A001", UserType: api.UserTypeAdmin}, time.Hour)

	s := New(token, &api.Profile{ID: "A001", Name: "管理员"})

	assert.True(t, s.IsLoggedIn())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "管理员", s.Profile.Name, "display fields come from the cached profile")
	assert.Equal(t, Flags{LoggedIn: true, Admin: true}, s.Flags())
}

func TestNew_StudentToken(t *testing.T) {
	lab := int64(3)
	token := mustSign(t, api.Profile{ID: "2021001", UserType: api.UserTypeStudent, LabID: &lab}, time.Hour)

	s := New(token, nil)

	assert.True(t, s.IsLoggedIn())
	assert.False(t, s.IsAdmin())
	require.NotNil(t, s.Profile.LabID)
	assert.Equal(t, int64(3), *s.Profile.LabID)
}

func TestNew_TokenRoleWinsOverCachedProfile(t *testing.T) {
	token := mustSign(t, api.Profile{ID: "T01", UserType: api.UserTypeTeacher}, time.Hour)

	s := New(token, &api.Profile{ID: "T01", UserType: api.UserTypeAdmin})

	assert.False(t, s.IsAdmin())
}

func TestExpiredToken(t *testing.T) {
	token := mustSign(t, api.Profile{ID: "A001", UserType: api.UserTypeAdmin}, time.Hour)
	s := New(token, nil)
	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	assert.False(t, s.IsLoggedIn())
	// Role is still readable; the guard's login check is what denies access.
	assert.True(t, s.IsAdmin())

	exp, ok := s.ExpiresAt()
	assert.True(t, ok)
	assert.False(t, exp.IsZero())
}

func TestOpaqueTokenUsesCachedProfile(t *testing.T) {
	s := New("not-a-jwt", &api.Profile{ID: "A001", UserType: api.UserTypeAdmin})

	assert.True(t, s.IsLoggedIn())
	assert.True(t, s.IsAdmin())
	_, ok := s.ExpiresAt()
	assert.False(t, ok)
}

func TestVerifyClaims(t *testing.T) {
	token := mustSign(t, api.Profile{ID: "2021001", UserType: api.UserTypeStudent}, time.Hour)

	claims, err := VerifyClaims(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "2021001", claims.UserID)

	_, err = VerifyClaims(token, []byte("other-secret"))
	assert.Error(t, err)

	_, err = VerifyClaims(token, nil)
	assert.Error(t, err)
}

func TestParseClaims_Malformed(t *testing.T) {
	_, err := ParseClaims("garbage")
	assert.ErrorIs(t, err, ErrMalformedToken)
}
