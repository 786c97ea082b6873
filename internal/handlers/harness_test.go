package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"hackafrica-web/internal/apiclient"
	"hackafrica-web/internal/database"
	"hackafrica-web/internal/session"
	"hackafrica-web/internal/views"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testCookie = "sid"

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type imageHostFunc func(ctx context.Context, name string, r io.Reader) (string, error)

func (f imageHostFunc) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	return f(ctx, name, r)
}

// harness runs the handlers against a fake backend and a sqlite session store.
type harness struct {
	t       *testing.T
	h       *Handler
	store   *session.Store
	engine  *gin.Engine
	backend *http.ServeMux

	mu    sync.Mutex
	calls []string
	clock time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hs := &harness{t: t, backend: http.NewServeMux(), clock: testNow}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hs.mu.Lock()
		hs.calls = append(hs.calls, r.Method+" "+r.URL.Path)
		hs.mu.Unlock()
		hs.backend.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sessions.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	hs.store = session.NewStore(db)

	api := apiclient.New(srv.URL+"/api", time.Second, hs.store)
	api.OnUnauthorized = hs.store.ClearCurrent

	pages, err := views.New()
	require.NoError(t, err)

	hs.h = &Handler{
		API:      api,
		Sessions: hs.store,
		Images: imageHostFunc(func(context.Context, string, io.Reader) (string, error) {
			return "https://cdn.example/hackathon.png", nil
		}),
		CheckConcurrency: 2,
		BannerDelay:      5 * time.Second,
		CookieName:       testCookie,
		Now: func() time.Time {
			hs.mu.Lock()
			defer hs.mu.Unlock()
			return hs.clock
		},
	}

	r := gin.New()
	r.HTMLRender = pages
	r.Use(hs.h.LoadSession)
	r.GET("/", hs.h.Home)
	r.GET("/hackathons", hs.h.Hackathons)
	r.GET("/hackathons/:id", hs.h.Hackathon)
	r.POST("/hackathons/:id/participate", hs.h.Participate)
	r.GET("/projects", hs.h.Projects)
	r.GET("/projects/:id", hs.h.Project)
	r.GET("/profile", hs.h.Profile)
	r.GET("/submit-project/:id", hs.h.SubmitProjectForm)
	r.POST("/submit-project/:id", hs.h.SubmitProject)
	r.GET("/create-hackathon", hs.h.CreateHackathonForm)
	r.POST("/create-hackathon/image", hs.h.UploadHackathonImage)
	r.POST("/create-hackathon", hs.h.CreateHackathon)
	r.GET("/login", hs.h.LoginForm)
	r.POST("/login", hs.h.Login)
	r.GET("/register", hs.h.RegisterForm)
	r.POST("/register", hs.h.Register)
	r.POST("/logout", hs.h.Logout)
	r.GET("/api/session", hs.h.SessionJSON)
	r.GET("/api/participation", hs.h.ParticipationJSON)
	r.NoRoute(hs.h.NotFound)
	hs.engine = r
	return hs
}

func (hs *harness) handle(pattern string, fn http.HandlerFunc) {
	hs.backend.HandleFunc(pattern, fn)
}

func (hs *harness) reply(pattern string, status int, body any) {
	hs.handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	})
}

func (hs *harness) advance(d time.Duration) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.clock = hs.clock.Add(d)
}

func (hs *harness) called(call string) int {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	n := 0
	for _, c := range hs.calls {
		if c == call {
			n++
		}
	}
	return n
}

// login stores a signed-in session for sid and returns its token.
func (hs *harness) login(sid, role, name, userID string) string {
	hs.t.Helper()
	tok := token(hs.t, role, name, userID)
	_, err := hs.store.Login(context.Background(), sid, tok)
	require.NoError(hs.t, err)
	return tok
}

func (hs *harness) send(req *http.Request, sid string) *httptest.ResponseRecorder {
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sid})
	}
	rec := httptest.NewRecorder()
	hs.engine.ServeHTTP(rec, req)
	return rec
}

func (hs *harness) get(path, sid string) *httptest.ResponseRecorder {
	return hs.send(httptest.NewRequest(http.MethodGet, path, nil), sid)
}

func (hs *harness) post(path string, form url.Values, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return hs.send(req, sid)
}

func (hs *harness) flash(sid string) string {
	hs.t.Helper()
	msg, err := hs.store.TakeFlash(context.Background(), sid)
	require.NoError(hs.t, err)
	return msg
}

func token(t *testing.T, role, name, userID string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"name": name,
		"id":   userID,
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func hackathonJSON(id, title, description string, start, end time.Time) map[string]any {
	return map[string]any{
		"_id":         id,
		"title":       title,
		"description": description,
		"startDate":   start.Format(time.RFC3339),
		"endDate":     end.Format(time.RFC3339),
		"rules":       "Be kind",
		"prizes":      "Glory",
		"imageUrl":    "https://cdn.example/" + id + ".png",
	}
}
