package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func doAgainst(t *testing.T, handler http.HandlerFunc, req Request) Outcome {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	exec := NewExecutor(srv.URL, nil)
	if req.Timeout == 0 {
		req.Timeout = 5 * time.Second
	}
	return exec.Do(context.Background(), req)
}

func TestSuccessEnvelope(t *testing.T) {
	out := doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": 42}`))
	}, Request{Method: http.MethodGet, Path: "/api/test"})

	if out.Kind != KindSuccess {
		t.Fatalf("kind = %v, want success", out.Kind)
	}
	if string(out.Payload) != `{"success": true, "data": 42}` {
		t.Errorf("payload = %s", out.Payload)
	}
}

func TestSuccessFieldAbsent(t *testing.T) {
	// Endpoints outside the success/error envelope return the raw body as
	// the payload.
	out := doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tweets_analyzed": 5}`))
	}, Request{Method: http.MethodGet, Path: "/api/test"})

	if out.Kind != KindSuccess {
		t.Fatalf("kind = %v, want success", out.Kind)
	}
	if string(out.Payload) != `{"tweets_analyzed": 5}` {
		t.Errorf("payload = %s", out.Payload)
	}
}

func TestBusinessError(t *testing.T) {
	out := doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "invalid credentials"}`))
	}, Request{Method: http.MethodPost, Path: "/api/test"})

	if out.Kind != KindBusinessError {
		t.Fatalf("kind = %v, want business_error", out.Kind)
	}
	if out.Message != "invalid credentials" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestBusinessErrorMessageField(t *testing.T) {
	// Error text sometimes lives under "message" instead of "error".
	out := doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "something went wrong"}`))
	}, Request{Method: http.MethodPost, Path: "/api/test"})

	if out.Kind != KindBusinessError {
		t.Fatalf("kind = %v, want business_error", out.Kind)
	}
	if out.Message != "something went wrong" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestHTTPErrorWithBody(t *testing.T) {
	out := doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "Email already exists"}`))
	}, Request{Method: http.MethodPost, Path: "/api/test"})

	if out.Kind != KindHTTPError {
		t.Fatalf("kind = %v, want http_error", out.Kind)
	}
	if out.Status != http.StatusConflict {
		t.Errorf("status = %d, want 409", out.Status)
	}
	if out.Message != "Email already exists" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestHTTPErrorGenericMessage(t *testing.T) {
	out := doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, Request{Method: http.MethodGet, Path: "/api/test"})

	if out.Kind != KindHTTPError {
		t.Fatalf("kind = %v, want http_error", out.Kind)
	}
	if out.Message != "HTTP 500 Internal Server Error" {
		t.Errorf("message = %q", out.Message)
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	out := doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}, Request{Method: http.MethodGet, Path: "/api/test"})

	if out.Kind != KindNetworkError {
		t.Fatalf("kind = %v, want network_error", out.Kind)
	}
	if out.Cause == nil {
		t.Error("expected a cause for malformed body")
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	exec := NewExecutor(srv.URL, nil)
	out := exec.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/api/test",
		Timeout: 5 * time.Second,
	})

	if out.Kind != KindNetworkError {
		t.Fatalf("kind = %v, want network_error", out.Kind)
	}
}

func TestTimeoutWinsRace(t *testing.T) {
	out := doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}, Request{Method: http.MethodGet, Path: "/api/slow", Timeout: 100 * time.Millisecond})

	if out.Kind != KindTimeout {
		t.Fatalf("kind = %v, want timeout", out.Kind)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true}`))
	}, Request{Method: http.MethodGet, Path: "/api/test", Token: "tok-1"})

	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-1")
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true}`))
	}, Request{Method: http.MethodGet, Path: "/api/test"})

	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestQueryEncoding(t *testing.T) {
	var gotURL string
	doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{"success": true}`))
	}, Request{
		Method: http.MethodGet,
		Path:   "/api/analyze_profile",
		Query: url.Values{
			"url":   {"https://twitter.com/some body"},
			"count": {"5"},
		},
	})

	parsed, err := url.Parse(gotURL)
	if err != nil {
		t.Fatalf("parse received URL: %v", err)
	}
	if got := parsed.Query().Get("url"); got != "https://twitter.com/some body" {
		t.Errorf("url param = %q", got)
	}
	if got := parsed.Query().Get("count"); got != "5" {
		t.Errorf("count param = %q", got)
	}
}

func TestJSONBodyAndContentType(t *testing.T) {
	var gotBody string
	var gotType string
	doAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"success": true}`))
	}, Request{
		Method: http.MethodPost,
		Path:   "/api/users/login",
		Body:   map[string]string{"email": "a@b.com"},
	})

	if gotBody != `{"email":"a@b.com"}` {
		t.Errorf("body = %q", gotBody)
	}
	if gotType != "application/json" {
		t.Errorf("content type = %q", gotType)
	}
}

func TestCallErrorHelpers(t *testing.T) {
	timeout := Outcome{Kind: KindTimeout}.Err()
	if !IsTimeout(timeout) {
		t.Error("IsTimeout should match a timeout outcome")
	}
	if IsUnauthorized(timeout) {
		t.Error("IsUnauthorized should not match a timeout outcome")
	}

	unauthorized := Outcome{Kind: KindHTTPError, Status: 401, Message: "unauthorized"}.Err()
	if !IsUnauthorized(unauthorized) {
		t.Error("IsUnauthorized should match a 401 outcome")
	}

	forbidden := Outcome{Kind: KindHTTPError, Status: 403, Message: "forbidden"}.Err()
	if IsUnauthorized(forbidden) {
		t.Error("IsUnauthorized should not match a 403 outcome")
	}

	if err := (Outcome{Kind: KindSuccess}).Err(); err != nil {
		t.Errorf("success outcome should yield nil error, got %v", err)
	}
}
