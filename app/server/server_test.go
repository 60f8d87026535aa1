package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/umputun/confessions/app/confess"
	"github.com/umputun/confessions/app/email"
	"github.com/umputun/confessions/app/secrets"
	"github.com/umputun/confessions/app/store"
)

const testOwnerHeader = "X-Firebase-Uid"

func TestServer_CreateAndReveal(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{})

	code, body := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"hello world"}`, nil)
	require.Equal(t, http.StatusCreated, code, body)
	token := body["token"].(string)
	assert.Len(t, token, store.TokenSize)
	assert.Equal(t, "https://example.com/view/"+token, body["link"])
	assert.NotEmpty(t, body["expiresAt"])
	assert.NotContains(t, body, "emailSent")
	assert.NotContains(t, body, "content", "content never echoed back")

	code, body = doJSON(t, "GET", ts.URL+"/api/secrets/"+token, "", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "hello world", body["content"])
	assert.NotEmpty(t, body["expiresAt"])

	code, body = doJSON(t, "GET", ts.URL+"/api/secrets/"+token, "", nil)
	assert.Equal(t, http.StatusGone, code)
	assert.Equal(t, "Message has already been viewed", body["error"])

	code, body = doJSON(t, "GET", ts.URL+"/api/secrets/"+strings.Repeat("0", 32), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Message not found or already viewed", body["error"])
}

func TestServer_RevealExpired(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{TTL: 50 * time.Millisecond})

	code, body := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"short lived"}`, nil)
	require.Equal(t, http.StatusCreated, code)
	token := body["token"].(string)

	time.Sleep(100 * time.Millisecond)
	code, body = doJSON(t, "GET", ts.URL+"/api/secrets/"+token, "", nil)
	assert.Equal(t, http.StatusGone, code)
	assert.Equal(t, "Message has expired", body["error"])

	code, _ = doJSON(t, "GET", ts.URL+"/api/secrets/"+token, "", nil)
	assert.Equal(t, http.StatusNotFound, code, "expired message removed on reveal")
}

func TestServer_RevealConcurrent(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{})
	code, body := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"only one"}`, nil)
	require.Equal(t, http.StatusCreated, code)
	token := body["token"].(string)

	var lock sync.Mutex
	codes := map[int]int{}
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(ts.URL + "/api/secrets/" + token)
			if !assert.NoError(t, err) {
				return
			}
			resp.Body.Close()
			lock.Lock()
			codes[resp.StatusCode]++
			lock.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, map[int]int{http.StatusOK: 1, http.StatusGone: 9}, codes)
}

func TestServer_RevealConstantTime(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{}, func(c *Config) { c.RevealMinTime = 150 * time.Millisecond })

	st := time.Now()
	code, _ := doJSON(t, "GET", ts.URL+"/api/secrets/nonexistent", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.GreaterOrEqual(t, time.Since(st), 150*time.Millisecond)
}

func TestServer_MalformedToken(t *testing.T) {
	sec := &SecretsMock{
		RevealFunc: func(context.Context, string) (*store.SecretMessage, error) { return nil, store.ErrNotFound },
		GetFunc:    func(context.Context, string) (*store.SecretMessage, error) { return nil, store.ErrNotFound },
	}
	srv, err := New(sec, &ConfessionsMock{}, nil, "test", testConfig())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	for _, token := range []string{"nonexistent", strings.Repeat("A", 32), strings.Repeat("a", 33), "0123456789abcdef0123456789abcdeg"} {
		t.Run(token, func(t *testing.T) {
			code, body := doJSON(t, "GET", ts.URL+"/api/secrets/"+token, "", nil)
			assert.Equal(t, http.StatusNotFound, code)
			assert.Equal(t, "Message not found or already viewed", body["error"])

			code, page := getPage(t, ts.URL+"/view/"+token)
			assert.Equal(t, http.StatusNotFound, code)
			assert.Contains(t, page, "Message not found")
		})
	}
	assert.Empty(t, sec.RevealCalls(), "malformed tokens never reach the store")
	assert.Empty(t, sec.GetCalls())
}

func TestServer_RequestTimeout(t *testing.T) {
	board := &ConfessionsMock{FeedFunc: func(ctx context.Context) ([]store.Confession, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond
	srv, err := New(&SecretsMock{}, board, nil, "test", cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	st := time.Now()
	code, page := getPage(t, ts.URL+"/api/confessions")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "Request timeout", page)
	assert.Less(t, time.Since(st), 2*time.Second)
}

func TestServer_CreateSecretValidation(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "empty", body: `{"content":""}`, field: "content"},
		{name: "too long", body: `{"content":"` + strings.Repeat("a", 5001) + `"}`, field: "content"},
		{name: "email disabled", body: `{"content":"hi","email":"user@example.com"}`, field: "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doJSON(t, "POST", ts.URL+"/api/secrets", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "validation failed", body["error"])
			fields, ok := body["fields"].(map[string]any)
			require.True(t, ok, "fields expected in %v", body)
			assert.Contains(t, fields, tt.field)
		})
	}

	code, body := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":`, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "can't decode request", body["error"])

	code, _ = doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"`+strings.Repeat("ж", 5000)+`"}`, nil)
	assert.Equal(t, http.StatusCreated, code, "limit counts characters, not bytes")

	code, body = doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"  \n "}`, nil)
	require.Equal(t, http.StatusCreated, code, "whitespace is valid content")
	code, body = doJSON(t, "GET", ts.URL+"/api/secrets/"+body["token"].(string), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "  \n ", body["content"])
}

func TestServer_CreateSecretWithEmail(t *testing.T) {
	var failSend atomic.Bool
	sndr := &EmailSenderMock{SendFunc: func(context.Context, email.Request) error {
		if failSend.Load() {
			return errors.New("smtp down")
		}
		return nil
	}}
	keeper := secrets.New(store.NewMemory(), secrets.Params{})
	srv, err := New(keeper, confess.New(store.NewMemory(), confess.Params{}), sndr, "test", testConfig())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	code, body := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"for you","email":"friend@example.com"}`, nil)
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, true, body["emailSent"])
	require.Len(t, sndr.SendCalls(), 1)
	req := sndr.SendCalls()[0].Req
	assert.Equal(t, "friend@example.com", req.To)
	assert.Equal(t, body["link"], req.Link)
	assert.False(t, req.ExpiresAt.IsZero())

	code, body = doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"for you","email":"not an email"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "email")

	failSend.Store(true)
	code, body = doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"for you","email":"friend@example.com"}`, nil)
	require.Equal(t, http.StatusCreated, code, "delivery failure doesn't fail creation")
	assert.Equal(t, false, body["emailSent"])

	code, body = doJSON(t, "GET", ts.URL+"/api/params", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["emailEnabled"])
}

func TestServer_OwnerSecrets(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{})
	owner := map[string]string{testOwnerHeader: "uid-1"}
	other := map[string]string{testOwnerHeader: "uid-2"}

	code, _ := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"mine"}`, owner)
	require.Equal(t, http.StatusCreated, code)
	code, _ = doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"anonymous"}`, nil)
	require.Equal(t, http.StatusCreated, code)

	code, _ = doJSON(t, "GET", ts.URL+"/api/my/secrets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	list := doJSONList(t, "GET", ts.URL+"/api/my/secrets", owner)
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0]["content"])
	assert.Equal(t, "uid-1", list[0]["firebaseUid"])
	assert.Equal(t, false, list[0]["isAnonymous"])
	id := int64(list[0]["id"].(float64))
	idPath := ts.URL + "/api/secrets/" + jsonInt(id)

	code, _ = doJSON(t, "DELETE", idPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, body := doJSON(t, "DELETE", idPath, "", other)
	assert.Equal(t, http.StatusNotFound, code, "foreign owner can't delete")
	assert.Equal(t, "Message not found or already viewed", body["error"])
	code, _ = doJSON(t, "DELETE", idPath, "", owner)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = doJSON(t, "DELETE", ts.URL+"/api/secrets/abc", "", owner)
	assert.Equal(t, http.StatusBadRequest, code)

	assert.Empty(t, doJSONList(t, "GET", ts.URL+"/api/my/secrets", owner))
}

func TestServer_Confessions(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{})
	owner := map[string]string{testOwnerHeader: "uid-1"}
	other := map[string]string{testOwnerHeader: "uid-2"}

	code, body := doJSON(t, "POST", ts.URL+"/api/confessions", `{"content":"I ate the last cookie"}`, nil)
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, true, body["isAnonymous"])

	code, body = doJSON(t, "POST", ts.URL+"/api/confessions", `{"content":"I like pineapple pizza"}`, owner)
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, false, body["isAnonymous"])
	idPath := ts.URL + "/api/confessions/" + jsonInt(int64(body["id"].(float64)))

	code, body = doJSON(t, "POST", ts.URL+"/api/confessions", `{"content":"`+strings.Repeat("x", 1001)+`"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "content")

	feed := doJSONList(t, "GET", ts.URL+"/api/confessions", nil)
	require.Len(t, feed, 2)
	assert.Equal(t, "I like pineapple pizza", feed[0]["content"], "newest first")

	code, _ = doJSON(t, "GET", ts.URL+"/api/my/confessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	mine := doJSONList(t, "GET", ts.URL+"/api/my/confessions", owner)
	require.Len(t, mine, 1)

	code, _ = doJSON(t, "PATCH", idPath, `{"content":"edited"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, body = doJSON(t, "PATCH", idPath, `{"content":"edited"}`, other)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Confession not found", body["error"])
	code, _ = doJSON(t, "PATCH", idPath, `{"content":""}`, owner)
	assert.Equal(t, http.StatusBadRequest, code)
	code, body = doJSON(t, "PATCH", idPath, `{"content":"edited"}`, owner)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "edited", body["content"])

	code, _ = doJSON(t, "DELETE", idPath, "", other)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = doJSON(t, "DELETE", idPath, "", owner)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Len(t, doJSONList(t, "GET", ts.URL+"/api/confessions", nil), 1)
}

func TestServer_Params(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{})
	code, body := doJSON(t, "GET", ts.URL+"/api/params", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 5000, body["maxSecretLength"], 0)
	assert.InDelta(t, 1000, body["maxConfessionLength"], 0)
	assert.InDelta(t, 86400, body["ttlSeconds"], 0)
	assert.InDelta(t, 50, body["feedSize"], 0)
	assert.Equal(t, false, body["emailEnabled"])
}

func TestServer_AdminPurge(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{TTL: 10 * time.Millisecond})
	for range 3 {
		code, _ := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"soon gone"}`, nil)
		require.Equal(t, http.StatusCreated, code)
	}
	time.Sleep(50 * time.Millisecond)

	purge := func(user, passwd string) (int, map[string]any) {
		req, err := http.NewRequest("POST", ts.URL+"/api/admin/purge", http.NoBody)
		require.NoError(t, err)
		if user != "" {
			req.SetBasicAuth(user, passwd)
		}
		return doRequest(t, req)
	}

	code, _ := purge("", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = purge("admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = purge("root", "admin-password")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := purge("admin", "admin-password")
	require.Equal(t, http.StatusOK, code, body)
	assert.InDelta(t, 3, body["purged"], 0)

	code, body = purge("admin", "admin-password")
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 0, body["purged"], 0)

	// admin api is not registered without password hash
	ts2 := prepTestServer(t, secrets.Params{}, func(c *Config) { c.AdminHash = "" })
	req, err := http.NewRequest("POST", ts2.URL+"/api/admin/purge", http.NoBody)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "admin-password")
	code, _ = doRequest(t, req)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound, "Message not found or already viewed"},
		{"expired", store.ErrExpired, http.StatusGone, "Message has expired"},
		{"viewed", store.ErrViewed, http.StatusGone, "Message has already been viewed"},
		{"wrapped", errors.Join(errors.New("ctx"), store.ErrViewed), http.StatusGone, "Message has already been viewed"},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := &SecretsMock{RevealFunc: func(context.Context, string) (*store.SecretMessage, error) { return nil, tt.err }}
			srv, err := New(sec, &ConfessionsMock{}, nil, "test", testConfig())
			require.NoError(t, err)
			ts := httptest.NewServer(srv.routes())
			defer ts.Close()

			code, body := doJSON(t, "GET", ts.URL+"/api/secrets/"+strings.Repeat("a", 32), "", nil)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, body["error"])
			require.Len(t, sec.RevealCalls(), 1)
			assert.Equal(t, strings.Repeat("a", 32), sec.RevealCalls()[0].Token)
		})
	}
}

func TestServer_CreateSecretErrors(t *testing.T) {
	var badContent atomic.Bool
	sec := &SecretsMock{CreateFunc: func(context.Context, string, string) (*store.SecretMessage, error) {
		if badContent.Load() {
			return nil, secrets.ErrBadContent
		}
		return nil, store.ErrSaveRejected
	}}
	srv, err := New(sec, &ConfessionsMock{}, nil, "test", testConfig())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	code, body := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"x"}`, map[string]string{testOwnerHeader: "uid-9"})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", body["error"])
	require.Len(t, sec.CreateCalls(), 1)
	assert.Equal(t, "uid-9", sec.CreateCalls()[0].Owner)

	badContent.Store(true)
	code, _ = doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_FeedError(t *testing.T) {
	board := &ConfessionsMock{FeedFunc: func(context.Context) ([]store.Confession, error) { return nil, errors.New("db down") }}
	srv, err := New(&SecretsMock{}, board, nil, "test", testConfig())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	code, _ := doJSON(t, "GET", ts.URL+"/api/confessions", "", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestServer_ViewPage(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{})
	code, body := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"look but don't touch"}`, nil)
	require.Equal(t, http.StatusCreated, code)
	token := body["token"].(string)

	for range 2 {
		code, page := getPage(t, ts.URL+"/view/"+token)
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, page, `data-token="`+token+`"`)
		assert.Contains(t, page, "Reveal message")
		assert.NotContains(t, page, "look but don't touch", "page never contains the content")
	}

	code, body = doJSON(t, "GET", ts.URL+"/api/secrets/"+token, "", nil)
	require.Equal(t, http.StatusOK, code, "view page didn't consume the message")
	assert.Equal(t, "look but don't touch", body["content"])

	code, page := getPage(t, ts.URL+"/view/"+token)
	assert.Equal(t, http.StatusGone, code)
	assert.Contains(t, page, "Message already viewed")

	code, page = getPage(t, ts.URL+"/view/"+strings.Repeat("b", 32))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, page, "Message not found")
}

func TestServer_ViewPageExpired(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{TTL: 10 * time.Millisecond})
	code, body := doJSON(t, "POST", ts.URL+"/api/secrets", `{"content":"late"}`, nil)
	require.Equal(t, http.StatusCreated, code)
	time.Sleep(30 * time.Millisecond)

	code, page := getPage(t, ts.URL+"/view/"+body["token"].(string))
	assert.Equal(t, http.StatusGone, code)
	assert.Contains(t, page, "Message has expired")
}

func TestServer_Misc(t *testing.T) {
	ts := prepTestServer(t, secrets.Params{})

	code, page := getPage(t, ts.URL+"/robots.txt")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, page, "Disallow: /view/")

	code, page = getPage(t, ts.URL+"/ping")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", page)

	code, body := doJSON(t, "GET", ts.URL+"/api/no-such-thing", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not found", body["error"])

	resp, err := http.Get(ts.URL + "/api/params")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "confessions", resp.Header.Get("App-Name"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func prepTestServer(t *testing.T, params secrets.Params, opts ...func(*Config)) *httptest.Server {
	t.Helper()
	keeper := secrets.New(store.NewMemory(), params)
	board := confess.New(store.NewMemory(), confess.Params{})
	cfg := testConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	srv, err := New(keeper, board, nil, "test", cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func testConfig() Config {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return Config{
		URL:           "https://example.com/",
		OwnerHeader:   testOwnerHeader,
		RevealMinTime: time.Millisecond,
		RateLimit:     10000,
		AdminHash:     string(hash),
		IPSecret:      "test-secret",
	}
}

func doJSON(t *testing.T, method, url, body string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return doRequest(t, req)
}

func doRequest(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	res := map[string]any{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &res)
	}
	return resp.StatusCode, res
}

func doJSONList(t *testing.T, method, url string, headers map[string]string) []map[string]any {
	t.Helper()
	req, err := http.NewRequest(method, url, http.NoBody)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := []map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func getPage(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func jsonInt(v int64) string {
	data, _ := json.Marshal(v)
	return string(data)
}
