package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestValidPincode(t *testing.T) {
	cases := []struct {
		pincode int
		want    bool
	}{
		{110045, true},
		{999999, true},
		{11004, false},
		{1100456, false},
		{0, false},
	}
	for _, c := range cases {
		if got := ValidPincode(c.pincode); got != c.want {
			t.Fatalf("ValidPincode(%d) = %v, want %v", c.pincode, got, c.want)
		}
	}
}

func TestSendEnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	SendEnvelope(rec, 201, M{"id": "p123"}, "created")

	if rec.Code != 201 {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if env.StatusCode != 201 || !env.Success || env.Message != "created" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestSendEnvelopeErrorNotSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, 404, "not found")

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if env.Success {
		t.Fatal("4xx envelope must not be marked success")
	}
	if env.Data == nil {
		t.Fatal("data should be an empty object, not null")
	}
}

func TestGenerateIDLength(t *testing.T) {
	id := GenerateID(14)
	if len(id) != 14 {
		t.Fatalf("expected 14 characters, got %d", len(id))
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := SanitizeFilename("../etc/pass wd?.png")
	for _, r := range got {
		if r == '/' || r == '?' || r == ' ' {
			t.Fatalf("sanitized filename still contains %q: %s", r, got)
		}
	}
}
