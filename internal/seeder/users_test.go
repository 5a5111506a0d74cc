package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appseed/internal/console"
	"appseed/internal/faker"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedBackend is a stub project API: it creates users and teams with
// incrementing identifiers and records membership requests.
type seedBackend struct {
	mu          sync.Mutex
	users       int
	teams       int
	memberships []string
	verified    map[string]bool

	duplicateEvery int
	failMembership func(teamID, userID string) bool
}

func newSeedBackend() *seedBackend {
	return &seedBackend{verified: map[string]bool{}}
}

func (b *seedBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		switch {
		case r.URL.Path == "/users" && r.Method == http.MethodPost:
			b.users++
			if b.duplicateEvery > 0 && b.users%b.duplicateEvery == 0 {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"message":"User exists","type":"user_already_exists"}`))
				return
			}
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusCreated)
			_, _ = fmt.Fprintf(w, `{"$id":"user%d","email":%q}`, b.users, body["email"])
		case strings.HasSuffix(r.URL.Path, "/verification") && r.Method == http.MethodPatch:
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/users/"), "/verification")
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			verified, _ := body["emailVerification"].(bool)
			b.verified[id] = verified
			w.WriteHeader(http.StatusOK)
			_, _ = fmt.Fprintf(w, `{"$id":%q,"emailVerification":%t}`, id, verified)
		case r.URL.Path == "/teams" && r.Method == http.MethodPost:
			b.teams++
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			w.WriteHeader(http.StatusCreated)
			_, _ = fmt.Fprintf(w, `{"$id":"team%d","name":%q}`, b.teams, body["name"])
		case strings.HasSuffix(r.URL.Path, "/memberships") && r.Method == http.MethodPost:
			teamID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/teams/"), "/memberships")
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			userID, _ := body["userId"].(string)
			if b.failMembership != nil && b.failMembership(teamID, userID) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"message":"Server error","type":"general_unknown"}`))
				return
			}
			b.memberships = append(b.memberships, teamID+"/"+userID)
			w.WriteHeader(http.StatusCreated)
			_, _ = fmt.Fprintf(w, `{"$id":"m%d","teamId":%q,"userId":%q}`, len(b.memberships), teamID, userID)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestGenerator(t *testing.T, backend *seedBackend, cfg Config) *Generator {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)
	client := console.NewClient(server.URL).WithKey("test", "key")
	return New(client, faker.New(rand.New(rand.NewSource(1))), testLogger(), cfg)
}

func TestUsers_CreatesAndVerifies(t *testing.T) {
	backend := newSeedBackend()
	gen := newTestGenerator(t, backend, Config{PauseEvery: -1})

	var progressCalls []int
	users, err := gen.Users(context.Background(), 5, func(created, total int) {
		assert.Equal(t, 5, total)
		progressCalls = append(progressCalls, created)
	})
	require.NoError(t, err)
	require.Len(t, users, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, progressCalls)

	// Every created user had its verification flag patched.
	assert.Len(t, backend.verified, 5)
	for _, u := range users {
		flag, ok := backend.verified[u.ID]
		require.True(t, ok)
		assert.Equal(t, u.EmailVerification, flag)
	}
}

func TestUsers_SkipsDuplicates(t *testing.T) {
	backend := newSeedBackend()
	backend.duplicateEvery = 3
	gen := newTestGenerator(t, backend, Config{PauseEvery: -1})

	users, err := gen.Users(context.Background(), 9, nil)
	require.NoError(t, err)
	// Every third creation conflicts and is skipped, not fatal.
	assert.Len(t, users, 6)
}

func TestUsers_AllDuplicatesReturnsErrNoUsers(t *testing.T) {
	backend := newSeedBackend()
	backend.duplicateEvery = 1
	gen := newTestGenerator(t, backend, Config{PauseEvery: -1})

	users, err := gen.Users(context.Background(), 4, nil)
	require.ErrorIs(t, err, ErrNoUsers)
	assert.Nil(t, users)
}

func TestUsers_ZeroCountReturnsErrNoUsers(t *testing.T) {
	gen := newTestGenerator(t, newSeedBackend(), Config{PauseEvery: -1})
	_, err := gen.Users(context.Background(), 0, nil)
	require.ErrorIs(t, err, ErrNoUsers)
}

func TestUsers_PausesAfterEveryNthIteration(t *testing.T) {
	backend := newSeedBackend()
	gen := newTestGenerator(t, backend, Config{PauseEvery: 10, PauseDuration: time.Second})

	var pauses []time.Duration
	gen.sleep = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}

	_, err := gen.Users(context.Background(), 25, nil)
	require.NoError(t, err)
	// 25 iterations with a pause after every 10th: exactly two pauses.
	require.Len(t, pauses, 2)
	assert.Equal(t, time.Second, pauses[0])
}

func TestUsers_NoPauseOnShortBatch(t *testing.T) {
	gen := newTestGenerator(t, newSeedBackend(), Config{PauseEvery: 100, PauseDuration: time.Second})
	gen.sleep = func(_ context.Context, _ time.Duration) error {
		t.Fatal("unexpected pause")
		return nil
	}
	_, err := gen.Users(context.Background(), 99, nil)
	require.NoError(t, err)
}

func TestUsers_ContextCancellation(t *testing.T) {
	gen := newTestGenerator(t, newSeedBackend(), Config{PauseEvery: -1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Users(ctx, 10, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestUsers_VerificationFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users" {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"$id":"user1"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Server error","type":"general_unknown"}`))
	}))
	defer server.Close()

	client := console.NewClient(server.URL).WithKey("test", "key")
	gen := New(client, faker.New(rand.New(rand.NewSource(1))), testLogger(), Config{PauseEvery: -1})

	_, err := gen.Users(context.Background(), 3, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set verification for user user1")
}
