package auth

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar/db"
	"bazaar/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func registerForm(t *testing.T, email string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	for key, value := range map[string]string{
		"fullname": "Dupe Tester",
		"email":    email,
		"password": "hunter2hunter2",
		"phone":    "9876543210",
	} {
		if err := form.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return body, form.FormDataContentType()
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("existing email returns 409", func(mt *mtest.T) {
		prev := db.UserCollection
		db.UserCollection = mt.Coll
		defer func() { db.UserCollection = prev }()

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "bazaardb.users", mtest.FirstBatch,
			bson.D{{Key: "email", Value: "dupe@example.com"}}))

		body, contentType := registerForm(mt.T, "dupe@example.com")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		registerHandler(rec, req)

		if rec.Code != http.StatusConflict {
			mt.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
		}
		var env utils.Envelope
		if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
			mt.Fatalf("decode envelope: %v", err)
		}
		if env.Success || env.Message != "User already exists" {
			mt.Fatalf("unexpected envelope: %+v", env)
		}
	})
}
