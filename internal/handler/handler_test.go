package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/storage"
)

type fakeSender struct {
	calls []string
	fail  map[string]string
}

func (f *fakeSender) Send(_ context.Context, phone, _ string) (string, error) {
	f.calls = append(f.calls, phone)
	if reason, ok := f.fail[phone]; ok {
		return "", errors.New(reason)
	}
	return "SM123", nil
}

func newTestHandler(t *testing.T) (http.Handler, *storage.Store, *fakeSender) {
	t.Helper()

	store, err := storage.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	require.NoError(t, store.SeedAdmin(context.Background()))

	sender := &fakeSender{}
	h := New(store, storage.NewVenueCache(store.GetVenue), sender, Config{
		SessionSecret: "test-secret",
		PublicURL:     "http://example.com",
	}, zerolog.Nop())
	return h, store, sender
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func login(t *testing.T, h http.Handler) []*http.Cookie {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/admin/login",
		`{"username":"admin","password":"admin123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}
