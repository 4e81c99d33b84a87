package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/go-blog-api/internal/auth"
	"github.com/redmonkez12/go-blog-api/internal/blog"
	"github.com/redmonkez12/go-blog-api/internal/config"
	"github.com/redmonkez12/go-blog-api/internal/database/dbtest"
	"github.com/redmonkez12/go-blog-api/internal/email"
	"github.com/redmonkez12/go-blog-api/internal/httputil"
	"github.com/redmonkez12/go-blog-api/internal/logging"
	"github.com/redmonkez12/go-blog-api/internal/profile"
	"github.com/redmonkez12/go-blog-api/internal/user"
)

const adaPassword = "Tr0ub4dor&3-horse-staple"

func newTestAPI(t *testing.T, denylist auth.Denylist) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Env: "dev"},
		Auth: config.AuthConfig{
			PasetoKey:        []byte("0123456789abcdef0123456789abcdef"),
			SessionDuration:  config.DefaultSessionDuration,
			PasswordMinScore: config.DefaultPasswordMinScore,
		},
	}
	logger := logging.NewDiscardLogger()
	db := dbtest.New(t)

	tokens, err := auth.NewPasetoService(cfg.Auth.PasetoKey, cfg.Auth.SessionDuration)
	require.NoError(t, err)

	users := user.NewRepository(db)
	notifier := email.NewNopService(logger)
	authService := auth.NewService(
		users,
		tokens,
		auth.NewPasswordHasher(auth.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}),
		auth.NewStrengthChecker(cfg.Auth.PasswordMinScore),
		denylist,
		notifier,
		logger,
	)
	blogService := blog.NewService(blog.NewRepository(db), logger)
	profileService := profile.NewService(users, blogService, notifier, logger)

	return NewRouter(cfg, Handlers{
		Auth:    auth.NewHandler(authService, logger, false),
		Blog:    blog.NewHandler(blogService),
		Profile: profile.NewHandler(profileService, false),
	}, auth.NewMiddleware(tokens, denylist), NewMetrics(), logger)
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func register(t *testing.T, h http.Handler, first, userName string) uuid.UUID {
	t.Helper()
	c := &client{t: t, handler: h}
	rec := c.do(http.MethodPost, "/auth/register", `{"firstName":"`+first+`","lastName":"Lovelace","userName":"`+userName+`","emailAddress":"`+userName+`@example.com","password":"`+adaPassword+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, sessionCookie(rec), "registration must not log in")

	var resp auth.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.User.ID
}

func login(t *testing.T, h http.Handler, identifier string) *client {
	t.Helper()
	c := &client{t: t, handler: h}
	rec := c.do(http.MethodPost, "/auth/login", `{"identifier":"`+identifier+`","password":"`+adaPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	c.cookie = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
	return c
}

func decodeBlogs(t *testing.T, rec *httptest.ResponseRecorder) blog.BlogsResponse {
	t.Helper()
	var resp blog.BlogsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestScenario_RegisterLoginCreateTrashRecover(t *testing.T) {
	h := newTestAPI(t, nil)

	adaID := register(t, h, "Ada", "ada")
	ada := login(t, h, "ada")

	rec := ada.do(http.MethodPost, "/auth/login", `{"identifier":"ada@example.com","password":"`+adaPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var claims map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &claims))
	assert.Equal(t, adaID.String(), claims["id"])
	assert.Equal(t, "Ada", claims["firstName"])
	assert.Equal(t, "Lovelace", claims["lastName"])
	assert.Equal(t, "ada", claims["userName"])
	assert.Equal(t, "ada@example.com", claims["emailAddress"])
	assert.NotContains(t, rec.Body.String(), "argon2id")

	rec = ada.do(http.MethodPost, "/blogs", `{"title":"Hello","synopsis":"First post","content":"Body text"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created blog.BlogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Blog.ID.String()

	list := decodeBlogs(t, ada.do(http.MethodGet, "/blogs", ""))
	require.Len(t, list.Blogs, 1)
	assert.Equal(t, "Hello", list.Blogs[0].Title)

	rec = ada.do(http.MethodPatch, "/blogs/trash/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, decodeBlogs(t, ada.do(http.MethodGet, "/blogs", "")).Blogs)
	assert.Len(t, decodeBlogs(t, ada.do(http.MethodGet, "/blogs/trash", "")).Blogs, 1)
	assert.Len(t, decodeBlogs(t, ada.do(http.MethodGet, "/profile/trash", "")).Blogs, 1)

	rec = ada.do(http.MethodPatch, "/blogs/recover/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	after := decodeBlogs(t, ada.do(http.MethodGet, "/blogs", ""))
	assert.Equal(t, list, after)

	rec = ada.do(http.MethodGet, "/profile/trash", "")
	assert.JSONEq(t, `{"blogs":[],"message":"trash is empty"}`, rec.Body.String())
}

func TestScenario_DefaultPasswordPolicy(t *testing.T) {
	h := newTestAPI(t, nil)
	anon := &client{t: t, handler: h}

	rec := anon.do(http.MethodPost, "/auth/register", `{"firstName":"Ada","lastName":"Lovelace","userName":"ada","emailAddress":"ada@example.com","password":"Str0ng!Pass9"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = anon.do(http.MethodPost, "/auth/login", `{"identifier":"ada","password":"Str0ng!Pass9"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	ada := &client{t: t, handler: h, cookie: &http.Cookie{Name: cookie.Name, Value: cookie.Value}}

	rec = ada.do(http.MethodPost, "/blogs", `{"title":"Hello","synopsis":"First post","content":"Body text"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created blog.BlogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Blog.ID.String()

	list := decodeBlogs(t, ada.do(http.MethodGet, "/blogs", ""))
	require.Len(t, list.Blogs, 1)
	assert.Equal(t, "Hello", list.Blogs[0].Title)

	require.Equal(t, http.StatusOK, ada.do(http.MethodPatch, "/blogs/trash/"+id, "").Code)
	assert.Empty(t, decodeBlogs(t, ada.do(http.MethodGet, "/blogs", "")).Blogs)
	assert.Len(t, decodeBlogs(t, ada.do(http.MethodGet, "/blogs/trash", "")).Blogs, 1)

	require.Equal(t, http.StatusOK, ada.do(http.MethodPatch, "/blogs/recover/"+id, "").Code)
	assert.Len(t, decodeBlogs(t, ada.do(http.MethodGet, "/blogs", "")).Blogs, 1)

	for _, weak := range []string{"password", "Password1"} {
		rec = anon.do(http.MethodPost, "/auth/register", `{"firstName":"Grace","lastName":"Hopper","userName":"grace","emailAddress":"grace@example.com","password":"`+weak+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, weak)
		assert.Contains(t, rec.Body.String(), httputil.CodeWeakPassword, weak)
	}
}

func TestRegister_DuplicateAndValidation(t *testing.T) {
	h := newTestAPI(t, nil)
	register(t, h, "Ada", "ada")
	anon := &client{t: t, handler: h}

	rec := anon.do(http.MethodPost, "/auth/register", `{"firstName":"Other","lastName":"Person","userName":"other","emailAddress":"ada@example.com","password":"`+adaPassword+`"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), httputil.CodeEmailAlreadyExists)

	rec = anon.do(http.MethodPost, "/auth/register", `{"firstName":"Grace","lastName":"Hopper","emailAddress":"grace@example.com","password":"`+adaPassword+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "userName", body.Field)

	rec = anon.do(http.MethodPost, "/auth/register", `{"firstName":"Grace","lastName":"Hopper","userName":"grace","emailAddress":"grace@example.com","password":"password"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), httputil.CodeWeakPassword)
}

func TestLogin_FailuresLookIdentical(t *testing.T) {
	h := newTestAPI(t, nil)
	register(t, h, "Ada", "ada")
	anon := &client{t: t, handler: h}

	wrongPassword := anon.do(http.MethodPost, "/auth/login", `{"identifier":"ada","password":"nope"}`)
	unknownUser := anon.do(http.MethodPost, "/auth/login", `{"identifier":"nobody","password":"nope"}`)

	for _, rec := range []*httptest.ResponseRecorder{wrongPassword, unknownUser} {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, sessionCookie(rec))
	}
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Contains(t, wrongPassword.Body.String(), "Wrong login credentials")
}

func TestProtectedRoutes_RequireValidCookie(t *testing.T) {
	h := newTestAPI(t, nil)
	register(t, h, "Ada", "ada")
	ada := login(t, h, "ada")

	rec := ada.do(http.MethodPost, "/blogs", `{"title":"Hello","synopsis":"First post","content":"Body text"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created blog.BlogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Blog.ID.String()

	routes := []struct{ method, path, body string }{
		{http.MethodPost, "/auth/logout", ""},
		{http.MethodPatch, "/auth/password", `{"currentPassword":"x","newPassword":"y"}`},
		{http.MethodPost, "/blogs", `{"title":"t","synopsis":"s","content":"c"}`},
		{http.MethodGet, "/blogs", ""},
		{http.MethodGet, "/blogs/" + id, ""},
		{http.MethodPatch, "/blogs/" + id, `{"title":"hijacked"}`},
		{http.MethodPatch, "/blogs/trash/" + id, ""},
		{http.MethodPatch, "/blogs/recover/" + id, ""},
		{http.MethodDelete, "/blogs/" + id, ""},
		{http.MethodGet, "/blogs/trash", ""},
		{http.MethodGet, "/profile", ""},
		{http.MethodPatch, "/profile", `{"firstName":"Eve"}`},
		{http.MethodGet, "/profile/blogs", ""},
		{http.MethodGet, "/profile/trash", ""},
		{http.MethodPatch, "/users/delete", ""},
		{http.MethodDelete, "/users/delete/" + uuid.NewString(), ""},
	}

	tampered := []byte(ada.cookie.Value)
	i := len("v4.local.") + 10
	if tampered[i] == 'A' {
		tampered[i] = 'B'
	} else {
		tampered[i] = 'A'
	}

	for _, cookie := range []*http.Cookie{
		nil,
		{Name: auth.SessionCookieName, Value: string(tampered)},
		{Name: auth.SessionCookieName, Value: "garbage"},
	} {
		anon := &client{t: t, handler: h, cookie: cookie}
		for _, rt := range routes {
			rec := anon.do(rt.method, rt.path, rt.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", rt.method, rt.path)
		}
	}

	rec = ada.do(http.MethodGet, "/blogs/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Hello"`)

	rec = ada.do(http.MethodGet, "/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"firstName":"Ada"`)
}

func TestBlogs_ForeignOwnerSeesNotFound(t *testing.T) {
	h := newTestAPI(t, nil)
	register(t, h, "Ada", "ada")
	register(t, h, "Grace", "grace")
	ada := login(t, h, "ada")
	grace := login(t, h, "grace")

	rec := ada.do(http.MethodPost, "/blogs", `{"title":"Hello","synopsis":"First post","content":"Body text"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created blog.BlogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Blog.ID.String()

	for _, rt := range []struct{ method, path, body string }{
		{http.MethodGet, "/blogs/" + id, ""},
		{http.MethodPatch, "/blogs/" + id, `{"title":"mine"}`},
		{http.MethodPatch, "/blogs/trash/" + id, ""},
		{http.MethodPatch, "/blogs/recover/" + id, ""},
		{http.MethodDelete, "/blogs/" + id, ""},
	} {
		rec := grace.do(rt.method, rt.path, rt.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", rt.method, rt.path)
	}

	rec = grace.do(http.MethodGet, "/profile/blogs", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ada.do(http.MethodGet, "/profile/blogs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBlogs(t, rec).Blogs, 1)
}

func TestPermanentDelete_Irreversible(t *testing.T) {
	h := newTestAPI(t, nil)
	register(t, h, "Ada", "ada")
	ada := login(t, h, "ada")

	rec := ada.do(http.MethodPost, "/blogs", `{"title":"Hello","synopsis":"First post","content":"Body text"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created blog.BlogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Blog.ID.String()

	rec = ada.do(http.MethodDelete, "/blogs/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusNotFound, ada.do(http.MethodGet, "/blogs/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, ada.do(http.MethodPatch, "/blogs/recover/"+id, "").Code)
	assert.Empty(t, decodeBlogs(t, ada.do(http.MethodGet, "/blogs/trash", "")).Blogs)
}

func TestAccountDeletion(t *testing.T) {
	h := newTestAPI(t, nil)
	adaID := register(t, h, "Ada", "ada")
	graceID := register(t, h, "Grace", "grace")
	ada := login(t, h, "ada")
	grace := login(t, h, "grace")

	rec := ada.do(http.MethodDelete, "/users/delete/"+graceID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusOK, grace.do(http.MethodGet, "/profile", "").Code)

	rec = grace.do(http.MethodPatch, "/users/delete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	rec = (&client{t: t, handler: h}).do(http.MethodPost, "/auth/login", `{"identifier":"grace","password":"`+adaPassword+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ada.do(http.MethodDelete, "/users/delete/"+adaID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, ada.do(http.MethodGet, "/profile", "").Code)
}

func TestLogout_ClearsCookieAndRevokesWhenEnabled(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	h := newTestAPI(t, auth.NewRedisDenylist(rdb))
	register(t, h, "Ada", "ada")
	ada := login(t, h, "ada")

	rec := ada.do(http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(rec)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	rec = ada.do(http.MethodGet, "/blogs", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), httputil.CodeTokenRevoked)
}

func TestLogout_StatelessTokenStaysValid(t *testing.T) {
	h := newTestAPI(t, nil)
	register(t, h, "Ada", "ada")
	ada := login(t, h, "ada")

	rec := ada.do(http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusOK, ada.do(http.MethodGet, "/blogs", "").Code)
}

func TestUpdatePassword_Endpoint(t *testing.T) {
	h := newTestAPI(t, nil)
	register(t, h, "Ada", "ada")
	ada := login(t, h, "ada")

	rec := ada.do(http.MethodPatch, "/auth/password", `{"currentPassword":"wrong","newPassword":"correct-Horse-battery-9-staple"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), httputil.CodeInvalidCredentials)

	rec = ada.do(http.MethodPatch, "/auth/password", `{"currentPassword":"`+adaPassword+`","newPassword":"password"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), httputil.CodeWeakPassword)

	rec = ada.do(http.MethodPatch, "/auth/password", `{"currentPassword":"`+adaPassword+`","newPassword":"correct-Horse-battery-9-staple"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// The existing session is not re-issued and stays valid
	assert.Equal(t, http.StatusOK, ada.do(http.MethodGet, "/profile", "").Code)
}

func TestHealthMetricsAndHeaders(t *testing.T) {
	h := newTestAPI(t, nil)
	anon := &client{t: t, handler: h}

	rec := anon.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))

	anon.do(http.MethodGet, "/blogs/"+uuid.NewString(), "")

	rec = anon.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",path="/health",service="blog-api",status="200"} 1`)
	assert.Contains(t, body, `path="/blogs/{id}"`)
}

func TestSessionCookieExpiry(t *testing.T) {
	h := newTestAPI(t, nil)
	register(t, h, "Ada", "ada")

	rec := (&client{t: t, handler: h}).do(http.MethodPost, "/auth/login", `{"identifier":"ada","password":"`+adaPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.InDelta(t, (14 * 24 * time.Hour).Seconds(), float64(cookie.MaxAge), 5)
}

func TestCreateBlog_OversizedBodyRejected(t *testing.T) {
	h := newTestAPI(t, nil)
	register(t, h, "Ada", "ada")
	ada := login(t, h, "ada")

	body := `{"title":"Hello","synopsis":"First post","content":"` + strings.Repeat("a", httputil.MaxBodyBytes) + `"}`
	rec := ada.do(http.MethodPost, "/blogs", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), httputil.CodeInvalidRequestBody)
	assert.Empty(t, decodeBlogs(t, ada.do(http.MethodGet, "/blogs", "")).Blogs)
}
