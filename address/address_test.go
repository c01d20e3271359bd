package address

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar/db"
	"bazaar/globals"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func authedRequest(method, target, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), globals.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestDeleteAddressAbsentID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("well-formed but absent id returns 404", func(mt *mtest.T) {
		prev := db.AddressCollection
		db.AddressCollection = mt.Coll
		defer func() { db.AddressCollection = prev }()

		// Delete matched nothing.
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		req := authedRequest(http.MethodDelete, "/api/v1/address/delete-address/addr000000000000", "u1")
		ps := httprouter.Params{{Key: "addressId", Value: "addr000000000000"}}
		rec := httptest.NewRecorder()
		DeleteAddress(rec, req, ps)

		if rec.Code != http.StatusNotFound {
			mt.Fatalf("expected 404, got %d", rec.Code)
		}
		var env utils.Envelope
		if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
			mt.Fatalf("decode envelope: %v", err)
		}
		if env.Success {
			mt.Fatalf("unexpected envelope: %+v", env)
		}
	})
}

func TestGetAddressAbsentID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("absent id returns 404", func(mt *mtest.T) {
		prev := db.AddressCollection
		db.AddressCollection = mt.Coll
		defer func() { db.AddressCollection = prev }()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bazaardb.addresses", mtest.FirstBatch))

		req := authedRequest(http.MethodGet, "/api/v1/address/get-address/addr000000000000", "u1")
		ps := httprouter.Params{{Key: "addressId", Value: "addr000000000000"}}
		rec := httptest.NewRecorder()
		GetAddressByID(rec, req, ps)

		if rec.Code != http.StatusNotFound {
			mt.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
