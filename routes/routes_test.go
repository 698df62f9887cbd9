package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Santiago26009/blog-challenge/middleware"
	"github.com/Santiago26009/blog-challenge/services"
	"github.com/Santiago26009/blog-challenge/storage"
	"github.com/Santiago26009/blog-challenge/store/memstore"
	"github.com/Santiago26009/blog-challenge/utils"
)

type testServer struct {
	t *testing.T
	r *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := utils.NewTokenIssuer("test-secret", 5*time.Minute, 24*time.Hour)
	svc := services.New(memstore.New(), issuer, storage.NewDiskStore(dir, UploadsPath), 5<<20, logger)

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	SetupRoutes(r, svc, Options{UploadDir: dir})
	return &testServer{t: t, r: r}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(s.t, err)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.send(req, token)
}

func (s *testServer) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type loginResponse struct {
	Username string          `json:"username"`
	Tokens   utils.TokenPair `json:"tokens"`
}

// register signs up and logs in username, returning its token pair.
func (s *testServer) register(username string) utils.TokenPair {
	s.t.Helper()
	w := s.do(http.MethodPost, "/signup", "", map[string]string{
		"email":      username + "@example.com",
		"first_name": "First",
		"last_name":  "Last",
		"username":   username,
		"password":   "secret123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/login", "", map[string]string{"username": username, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode[loginResponse](s.t, w).Tokens
}

func (s *testServer) createPost(token, title string) map[string]interface{} {
	s.t.Helper()
	w := s.do(http.MethodPost, "/post/", token, map[string]interface{}{
		"title": title, "content": "body", "category": "news", "tags": []string{"go"},
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]interface{}](s.t, w)
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, typ string, details ...string) utils.ErrorResponse {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	body := decode[utils.ErrorResponse](t, w)
	assert.Equal(t, typ, body.Type)
	got := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		got = append(got, e.Detail)
	}
	if len(details) > 0 {
		assert.Equal(t, details, got)
	}
	return body
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/signup", "", map[string]string{
		"email": "ana@example.com", "first_name": "Ana", "last_name": "Lopez",
		"username": "ana", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"email":"ana@example.com","first_name":"Ana","last_name":"Lopez","username":"ana"}`, w.Body.String())

	w = s.do(http.MethodPost, "/signup", "", map[string]string{
		"email": "ana@example.com", "first_name": "Ana", "last_name": "Lopez",
		"username": "ana", "password": "secret123",
	})
	body := assertError(t, w, http.StatusBadRequest, "validation_error",
		"A user with that email already exists.", "user with this username already exists.")
	assert.Equal(t, "email", *body.Errors[0].Attr)
	assert.Equal(t, "username", *body.Errors[1].Attr)

	w = s.do(http.MethodPost, "/login", "", map[string]string{"username": "ana", "password": "wrong-one"})
	body = assertError(t, w, http.StatusUnauthorized, "client_error", "Invalid credentials, try again")
	assert.Nil(t, body.Errors[0].Attr)

	w = s.do(http.MethodPost, "/login", "", map[string]string{"username": "ana", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[loginResponse](t, w)
	assert.Equal(t, "ana", login.Username)
	assert.NotEmpty(t, login.Tokens.Access)
	assert.NotEmpty(t, login.Tokens.Refresh)
}

func TestAuthenticationRequired(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/user/", "/profile/", "/like/", "/user/activity/"} {
		w := s.do(http.MethodGet, path, "", nil)
		assertError(t, w, http.StatusUnauthorized, "client_error", "Authentication credentials were not provided.")
	}

	w := s.do(http.MethodGet, "/user/", "garbage", nil)
	assertError(t, w, http.StatusUnauthorized, "client_error", "Given token not valid for any token type")

	w = s.do(http.MethodGet, "/post/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestLogoutAndRefresh(t *testing.T) {
	s := newTestServer(t)
	tokens := s.register("ana")

	w := s.do(http.MethodPost, "/token/refresh", "", map[string]string{"refresh": tokens.Refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	access := decode[map[string]string](t, w)["access"]
	require.NotEmpty(t, access)

	w = s.do(http.MethodGet, "/user/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/logout", tokens.Access, map[string]string{"refresh_token": "nope"})
	body := assertError(t, w, http.StatusBadRequest, "validation_error", "Token is invalid or expired")
	assert.Equal(t, "refresh_token", *body.Errors[0].Attr)

	w = s.do(http.MethodPost, "/logout", tokens.Access, map[string]string{"refresh_token": tokens.Refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"Logout"}`, w.Body.String())

	for _, token := range []string{tokens.Access, access} {
		w = s.do(http.MethodGet, "/user/", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	for i, all := range []string{`true`, `"true"`, `1`} {
		other := s.register(fmt.Sprintf("bob%d", i))
		w = s.do(http.MethodPost, "/logout", other.Access, `{"all": `+all+`}`)
		require.Equal(t, http.StatusOK, w.Code, all)
		assert.JSONEq(t, `{"status":"OK, goodbye, all refresh tokens blacklisted"}`, w.Body.String())
		w = s.do(http.MethodGet, "/user/", other.Access, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, all)
	}
}

func TestPostEndpoints(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("ana")
	bob := s.register("bob")

	first := s.createPost(ana.Access, "first")
	second := s.createPost(ana.Access, "second")
	assert.Equal(t, "second", second["title"])
	assert.Equal(t, []interface{}{"go"}, second["tags"])
	assert.Nil(t, second["publish_date"])

	w := s.do(http.MethodGet, "/post/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]interface{}](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0]["title"])

	firstPath := fmt.Sprintf("/post/%v/", first["id"])
	w = s.do(http.MethodGet, firstPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/post/999/", "", nil)
	assertError(t, w, http.StatusNotFound, "client_error", "No post found")
	w = s.do(http.MethodGet, "/post/abc/", "", nil)
	assertError(t, w, http.StatusNotFound, "client_error", "No post found")

	w = s.do(http.MethodPatch, firstPath, bob.Access, map[string]string{"title": "stolen"})
	assertError(t, w, http.StatusBadRequest, "client_error", "You cannot update someone else post")

	w = s.do(http.MethodPatch, firstPath, ana.Access, `{"publish_date": "2024-03-01T10:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2024-03-01T10:00:00Z", decode[map[string]interface{}](t, w)["publish_date"])

	w = s.do(http.MethodPatch, firstPath, ana.Access, `{"publish_date": null}`)
	require.Equal(t, http.StatusOK, w.Code)
	patched := decode[map[string]interface{}](t, w)
	assert.Nil(t, patched["publish_date"])
	assert.Equal(t, "first", patched["title"])

	w = s.do(http.MethodPatch, firstPath, ana.Access, `{"publish_date": "tomorrow"}`)
	body := assertError(t, w, http.StatusBadRequest, "validation_error")
	assert.Equal(t, "publish_date", *body.Errors[0].Attr)

	w = s.do(http.MethodPut, firstPath, ana.Access, map[string]string{"title": "only title"})
	assertError(t, w, http.StatusBadRequest, "validation_error")

	w = s.do(http.MethodDelete, firstPath, bob.Access, nil)
	assertError(t, w, http.StatusBadRequest, "client_error", "You cannot delete someone else post")

	w = s.do(http.MethodDelete, firstPath, ana.Access, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, firstPath, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentEndpoints(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("ana")
	post := s.createPost(ana.Access, "first")

	w := s.do(http.MethodPost, "/comment/", ana.Access, map[string]interface{}{"post": 999, "text": "hi"})
	body := assertError(t, w, http.StatusBadRequest, "validation_error", `Invalid pk "999" - object does not exist.`)
	assert.Equal(t, "post", *body.Errors[0].Attr)

	w = s.do(http.MethodPost, "/comment/", ana.Access, map[string]interface{}{"post": "abc", "text": "hi"})
	body = assertError(t, w, http.StatusBadRequest, "validation_error")
	assert.Equal(t, "post", *body.Errors[0].Attr)
	assert.Equal(t, "incorrect_type", body.Errors[0].Code)

	w = s.do(http.MethodPost, "/comment/", ana.Access, map[string]interface{}{"post": post["id"], "text": "hi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	comment := decode[map[string]interface{}](t, w)
	assert.Equal(t, post["id"], comment["post"])
	assert.Equal(t, "hi", comment["text"])

	w = s.do(http.MethodGet, "/comment/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, w), 1)

	path := fmt.Sprintf("/comment/%v/", comment["id"])
	w = s.do(http.MethodPut, path, ana.Access, map[string]string{"text": "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", decode[map[string]interface{}](t, w)["text"])

	w = s.do(http.MethodDelete, path, ana.Access, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLikeEndpoints(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("ana")
	post := s.createPost(ana.Access, "first")

	w := s.do(http.MethodPost, "/comment/", ana.Access, map[string]interface{}{"post": post["id"], "text": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	comment := decode[map[string]interface{}](t, w)

	w = s.do(http.MethodPost, "/like/", ana.Access, map[string]interface{}{"post": post["id"], "comment": comment["id"]})
	assertError(t, w, http.StatusBadRequest, "client_error", "You cannot like a comment and a post at the same time")

	w = s.do(http.MethodPost, "/like/", ana.Access, map[string]interface{}{})
	assertError(t, w, http.StatusBadRequest, "client_error", "You did not set the object you like")

	w = s.do(http.MethodPost, "/like/", ana.Access, map[string]interface{}{"comment": 999})
	assertError(t, w, http.StatusNotFound, "client_error", "No comment found")

	w = s.do(http.MethodPost, "/like/", ana.Access, map[string]interface{}{"post": post["id"]})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detail":"Liked"}`, w.Body.String())

	w = s.do(http.MethodPost, "/like/", ana.Access, map[string]interface{}{"post": post["id"]})
	assertError(t, w, http.StatusBadRequest, "client_error", "You already liked this post")

	w = s.do(http.MethodGet, "/like/", ana.Access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	likes := decode[[]map[string]interface{}](t, w)
	require.Len(t, likes, 1)
	assert.Equal(t, post["id"], likes[0]["post"])
	assert.Nil(t, likes[0]["comment"])

	bob := s.register("bob")
	path := fmt.Sprintf("/like/%v/", likes[0]["id"])
	w = s.do(http.MethodDelete, path, bob.Access, nil)
	assertError(t, w, http.StatusBadRequest, "client_error", "You cannot delete someone else like")
	w = s.do(http.MethodDelete, path, ana.Access, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodDelete, path, ana.Access, nil)
	assertError(t, w, http.StatusNotFound, "client_error", "No like found")
}

func TestProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("ana")

	w := s.do(http.MethodGet, "/profile/", ana.Access, nil)
	assertError(t, w, http.StatusBadRequest, "validation_error", "No profile associated")

	w = s.do(http.MethodPost, "/profile/", ana.Access, map[string]string{"biography": "hi", "profile_image": "https://cdn.example/a.png"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"biography":"hi","profile_image":"https://cdn.example/a.png"}`, w.Body.String())

	w = s.do(http.MethodPost, "/profile/", ana.Access, map[string]string{"profile_image": "b.png"})
	assertError(t, w, http.StatusBadRequest, "client_error", "Profile exists")

	// Replace the reference with an uploaded file.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("biography", "with picture"))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="profile_image"; filename="me.png"`)
	h.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/profile/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = s.send(req, ana.Access)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	profile := decode[map[string]string](t, w)
	assert.Equal(t, "with picture", profile["biography"])
	require.Contains(t, profile["profile_image"], "/uploads/avatars/")

	w = s.do(http.MethodGet, profile["profile_image"], "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())

	w = s.do(http.MethodDelete, "/profile/", ana.Access, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, profile["profile_image"], "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("ana")
	s.register("bob")
	s.createPost(ana.Access, "first")

	w := s.do(http.MethodGet, "/user/", ana.Access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"ana@example.com","first_name":"First","last_name":"Last","username":"ana"}`, w.Body.String())

	w = s.do(http.MethodPatch, "/user/", ana.Access, map[string]string{"username": "bob"})
	body := assertError(t, w, http.StatusBadRequest, "validation_error", "user with this username already exists.")
	assert.Equal(t, "username", *body.Errors[0].Attr)

	w = s.do(http.MethodPatch, "/user/", ana.Access, map[string]string{"first_name": "Ana"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana", decode[map[string]interface{}](t, w)["first_name"])

	w = s.do(http.MethodGet, "/user/activity/?limit=abc", ana.Access, nil)
	assertError(t, w, http.StatusBadRequest, "validation_error")
	w = s.do(http.MethodGet, "/user/activity/", ana.Access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	activity := decode[[]map[string]interface{}](t, w)
	require.Len(t, activity, 1)
	assert.Equal(t, "post_created", activity[0]["activity"])

	w = s.do(http.MethodDelete, "/user/", ana.Access, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/post/", "", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
	w = s.do(http.MethodGet, "/user/", ana.Access, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMalformedJSON(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("ana")

	w := s.do(http.MethodPost, "/post/", ana.Access, `{"title": `)
	assertError(t, w, http.StatusBadRequest, "client_error")

	w = s.do(http.MethodPost, "/post/", ana.Access, nil)
	body := assertError(t, w, http.StatusBadRequest, "validation_error")
	assert.Len(t, body.Errors, 3)
}

func TestValidationEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.register("ana")

	cases := []struct {
		path   string
		exists bool
	}{
		{"/validation/username/ana", true},
		{"/validation/username/bob", false},
		{"/validation/email/ana@EXAMPLE.com", true},
		{"/validation/email/bob@example.com", false},
	}
	for _, tc := range cases {
		w := s.do(http.MethodGet, tc.path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.Equal(t, map[string]bool{"exists": tc.exists}, decode[map[string]bool](t, w), tc.path)
	}
}
