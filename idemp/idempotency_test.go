package idemp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestComputeRequestHashStableAndSensitive(t *testing.T) {
	newReq := func(path, body string) (*http.Request, []byte) {
		r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		return r, []byte(body)
	}

	r1, b1 := newReq("/api/v1/order/create-single-order/p1/a1", `{"quantity":2}`)
	r2, b2 := newReq("/api/v1/order/create-single-order/p1/a1", `{"quantity":2}`)
	if computeRequestHash(r1, b1, "u1") != computeRequestHash(r2, b2, "u1") {
		t.Fatal("identical requests must hash identically")
	}

	r3, b3 := newReq("/api/v1/order/create-single-order/p1/a1", `{"quantity":3}`)
	if computeRequestHash(r1, b1, "u1") == computeRequestHash(r3, b3, "u1") {
		t.Fatal("different bodies must hash differently")
	}

	if computeRequestHash(r1, b1, "u1") == computeRequestHash(r1, b1, "u2") {
		t.Fatal("different users must hash differently")
	}

	r4, b4 := newReq("/api/v1/order/create-single-order/p2/a1", `{"quantity":2}`)
	if computeRequestHash(r1, b1, "u1") == computeRequestHash(r4, b4, "u1") {
		t.Fatal("different paths must hash differently")
	}
}

func TestCaptureResponseWriterRecordsStatusAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	crw := newCaptureResponseWriter(rec)

	crw.WriteHeader(http.StatusCreated)
	crw.WriteHeader(http.StatusInternalServerError) // second call must be ignored
	crw.Write([]byte(`{"ok":true}`))

	if crw.statusCode != http.StatusCreated {
		t.Fatalf("expected captured status 201, got %d", crw.statusCode)
	}
	if crw.buf.String() != `{"ok":true}` {
		t.Fatalf("unexpected captured body %q", crw.buf.String())
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Fatal("body must still reach the underlying writer")
	}
}
