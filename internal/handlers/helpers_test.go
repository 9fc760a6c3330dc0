package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/jharden/parley/internal/models"
	"github.com/jharden/parley/internal/store/sqlstore"
	"github.com/jharden/parley/internal/token"
)

const testPassword = "Passw0rd!"

type testEnv struct {
	router *mux.Router
	store  *sqlstore.SQLStore
	tokens *token.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := sqlstore.New("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	tokens := token.NewService("test-secret", time.Hour)
	return &testEnv{router: NewRouter(st, tokens), store: st, tokens: tokens}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &models.User{Username: username, Email: username + "@example.com", Password: string(hash)}
	if err := e.store.CreateUser(user); err != nil {
		t.Fatalf("Failed to create user %q: %v", username, err)
	}
	return user
}

// do performs a request against the full router; asUser attaches a freshly
// issued bearer token.
func (e *testEnv) do(t *testing.T, method, path string, body any, asUser *models.User) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if asUser != nil {
		req.Header.Set("Authorization", "Bearer "+e.tokens.Issue(asUser.ID))
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func userPath(userID int, rest string) string {
	return fmt.Sprintf("/api/v1/users/%d%s", userID, rest)
}
