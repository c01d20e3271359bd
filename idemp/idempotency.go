package idemp

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const recordTTL = 24 * time.Hour

func computeRequestHash(r *http.Request, bodyBytes []byte, userID string) string {
	h := sha256.New()
	h.Write([]byte(r.Method + ":" + r.URL.Path + ":" + userID + ":"))
	h.Write(bodyBytes)
	return hex.EncodeToString(h.Sum(nil))
}

// captureResponseWriter wraps http.ResponseWriter to record status and body
// while still streaming to the client.
type captureResponseWriter struct {
	w           http.ResponseWriter
	statusCode  int
	buf         bytes.Buffer
	wroteHeader bool
}

func newCaptureResponseWriter(w http.ResponseWriter) *captureResponseWriter {
	return &captureResponseWriter{w: w, statusCode: http.StatusOK}
}

func (c *captureResponseWriter) Header() http.Header { return c.w.Header() }

func (c *captureResponseWriter) WriteHeader(statusCode int) {
	if !c.wroteHeader {
		c.statusCode = statusCode
		c.w.WriteHeader(statusCode)
		c.wroteHeader = true
	}
}

func (c *captureResponseWriter) Write(b []byte) (int, error) {
	c.buf.Write(b)
	return c.w.Write(b)
}

// Guard makes a mutating endpoint replay-safe when the client sends an
// Idempotency-Key header.
//
//   - No header: pass-through.
//   - First request for a key: run the handler, capture and store the response.
//   - Replay with the same key and payload: return the stored response.
//   - Same key, different payload: 409.
//   - Key seen but response not yet stored (in flight): run the handler,
//     relying on the handler's own database-level idempotency.
func Guard(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		key := r.Header.Get("Idempotency-Key")
		if key == "" {
			next(w, r, ps)
			return
		}

		userID := utils.GetUserIDFromRequest(r)

		bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		reqHash := computeRequestHash(r, bodyBytes, userID)
		now := time.Now()
		rec := models.IdempotencyRecord{
			Key:         key,
			Method:      r.Method,
			Path:        r.URL.Path,
			UserID:      userID,
			RequestHash: reqHash,
			CreatedAt:   now,
			ExpiresAt:   now.Add(recordTTL),
		}

		ctx := r.Context()
		_, err = db.IdempotencyCollection.InsertOne(ctx, rec)
		if err == nil {
			crw := newCaptureResponseWriter(w)
			next(crw, r, ps)

			var parsed interface{}
			if err := json.Unmarshal(crw.buf.Bytes(), &parsed); err != nil {
				parsed = crw.buf.String()
			}

			_, _ = db.IdempotencyCollection.UpdateOne(ctx,
				bson.M{"key": key},
				bson.M{"$set": bson.M{"response": bson.M{
					"status": crw.statusCode,
					"body":   parsed,
				}}},
			)
			return
		}

		if !mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusInternalServerError, "Idempotency lookup error")
			return
		}

		var existing models.IdempotencyRecord
		if err := db.IdempotencyCollection.FindOne(ctx, bson.M{"key": key}).Decode(&existing); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Idempotency lookup error")
			return
		}

		if existing.RequestHash != reqHash {
			utils.RespondWithError(w, http.StatusConflict, "Idempotency-Key already used with a different request")
			return
		}

		if existing.Response != nil {
			statusFloat, _ := existing.Response["status"].(float64)
			status := int(statusFloat)
			if status == 0 {
				if si, ok := existing.Response["status"].(int32); ok {
					status = int(si)
				} else if si, ok := existing.Response["status"].(int64); ok {
					status = int(si)
				} else {
					status = http.StatusOK
				}
			}
			utils.RespondWithJSON(w, status, existing.Response["body"])
			return
		}

		next(w, r, ps)
	}
}
