package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"hackafrica-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRedirectsByRole(t *testing.T) {
	cases := []struct {
		role     string
		location string
	}{
		{models.RoleAdmin, "/hackathons"},
		{models.RoleParticipant, "/projects"},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			hs := newHarness(t)
			tok := token(t, tc.role, "Amina", "u1")
			hs.handle("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
				var creds models.Credentials
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
				assert.Equal(t, models.Credentials{Email: "amina@example.com", Password: "pw"}, creds)
				writeJSON(w, http.StatusOK, map[string]string{"token": tok})
			})

			rec := hs.post("/login", url.Values{"email": {" amina@example.com "}, "password": {"pw"}}, "")

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			sess, err := hs.store.Get(context.Background(), cookies[0].Value)
			require.NoError(t, err)
			assert.Equal(t, tok, sess.Token)
			assert.Equal(t, tc.role, sess.Role)
			assert.Equal(t, "Amina", sess.Name)
			assert.Equal(t, "u1", sess.UserID)
		})
	}
}

func TestLoginShowsBackendMessage(t *testing.T) {
	hs := newHarness(t)
	hs.reply("POST /api/auth/login", http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})

	rec := hs.post("/login", url.Values{"email": {"amina@example.com"}, "password": {"wrong"}}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	doc := document(t, rec)
	assert.Equal(t, "Invalid credentials", doc.Find("#error").Text())
	assert.Equal(t, "amina@example.com", doc.Find("#email").AttrOr("value", ""))
}

func TestLoginShowsUnauthorizedMessage(t *testing.T) {
	hs := newHarness(t)
	hs.reply("POST /api/auth/login", http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})

	rec := hs.post("/login", url.Values{"email": {"amina@example.com"}, "password": {"wrong"}}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Invalid credentials", document(t, rec).Find("#error").Text())
}

func TestLoginValidatesBeforeCalling(t *testing.T) {
	hs := newHarness(t)

	rec := hs.post("/login", url.Values{"email": {"not-an-email"}, "password": {"pw"}}, "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Please enter a valid email", document(t, rec).Find("#error").Text())
	assert.Zero(t, hs.called("POST /api/auth/login"))
}

func TestLoginResumesPendingParticipation(t *testing.T) {
	hs := newHarness(t)
	ctx := context.Background()
	require.NoError(t, hs.store.StashPending(ctx, "s1", "h1"))

	tok := token(t, models.RoleParticipant, "Kofi", "u2")
	hs.reply("POST /api/auth/login", http.StatusOK, map[string]string{"token": tok})
	var auth string
	hs.handle("POST /api/hackathons/{id}/participate", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "h1", r.PathValue("id"))
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})

	rec := hs.post("/login", url.Values{"email": {"kofi@example.com"}, "password": {"pw"}}, "s1")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/submit-project/h1", rec.Header().Get("Location"))
	assert.Equal(t, "Bearer "+tok, auth)

	pending, err := hs.store.TakePending(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLoginResumeFailureStaysOnHackathon(t *testing.T) {
	hs := newHarness(t)
	require.NoError(t, hs.store.StashPending(context.Background(), "s1", "h1"))
	hs.reply("POST /api/auth/login", http.StatusOK, map[string]string{"token": token(t, models.RoleParticipant, "Kofi", "u2")})
	hs.reply("POST /api/hackathons/{id}/participate", http.StatusOK, map[string]bool{"success": false})

	rec := hs.post("/login", url.Values{"email": {"kofi@example.com"}, "password": {"pw"}}, "s1")

	assert.Equal(t, "/hackathons/h1", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "Failed to participate. Please try again.", hs.flash(cookies[0].Value))
}

func TestLoginIssuesFreshSessionID(t *testing.T) {
	hs := newHarness(t)
	ctx := context.Background()
	require.NoError(t, hs.store.SetFlash(ctx, "planted", "carried over"))
	tok := token(t, models.RoleParticipant, "Kofi", "u2")
	hs.reply("POST /api/auth/login", http.StatusOK, map[string]string{"token": tok})

	rec := hs.post("/login", url.Values{"email": {"kofi@example.com"}, "password": {"pw"}}, "planted")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.NotEqual(t, "planted", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	old, err := hs.store.Get(ctx, "planted")
	require.NoError(t, err)
	assert.False(t, old.Authenticated())

	fresh, err := hs.store.Get(ctx, cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, tok, fresh.Token)
	assert.Equal(t, "carried over", hs.flash(cookies[0].Value))

	doc := document(t, hs.get("/hackathons", "planted"))
	assert.Equal(t, 1, doc.Find("#login-link").Length())
}

func TestRegister(t *testing.T) {
	hs := newHarness(t)
	var sent models.Registration
	hs.handle("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		writeJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
	})

	rec := hs.post("/register", url.Values{
		"name":     {"Amina"},
		"email":    {"amina@example.com"},
		"password": {"pw"},
		"role":     {"admin"},
	}, "")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, models.Registration{Name: "Amina", Email: "amina@example.com", Password: "pw", Role: "admin"}, sent)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	doc := document(t, hs.get("/login", cookies[0].Value))
	assert.Equal(t, "Registration successful. Please login.", doc.Find("#flash").Text())
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	hs := newHarness(t)

	rec := hs.post("/register", url.Values{
		"name":     {"Amina"},
		"email":    {"amina@example.com"},
		"password": {"pw"},
		"role":     {"root"},
	}, "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Please choose a role", document(t, rec).Find("#error").Text())
	assert.Zero(t, hs.called("POST /api/auth/register"))
}

func TestLogoutClearsSession(t *testing.T) {
	hs := newHarness(t)
	hs.login("s1", models.RoleAdmin, "Amina", "u1")

	rec := hs.post("/logout", url.Values{}, "s1")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	sess, err := hs.store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Role)
	assert.Empty(t, sess.Name)
}
