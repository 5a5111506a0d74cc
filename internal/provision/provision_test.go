package provision

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appseed/internal/console"
)

// provisionStub answers the team, project, and key endpoints. Each resource
// can be marked pre-existing to exercise the conflict paths.
type provisionStub struct {
	teamExists    bool
	projectExists bool
	keyExists     bool
	listedSecret  string

	keyCreatePaths []string
}

func (s *provisionStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/teams" && r.Method == http.MethodPost:
			if s.teamExists {
				conflict(w, "team_already_exists")
				return
			}
			s.teamExists = true
			created(w, `{"$id":"test","name":"Test Team"}`)
		case r.URL.Path == "/projects" && r.Method == http.MethodPost:
			if s.projectExists {
				conflict(w, "project_already_exists")
				return
			}
			s.projectExists = true
			created(w, `{"$id":"test","name":"Test Project","teamId":"test","region":"eu-de"}`)
		case r.URL.Path == "/projects/test/keys" && r.Method == http.MethodPost:
			s.keyCreatePaths = append(s.keyCreatePaths, r.URL.Path)
			if s.keyExists {
				conflict(w, "key_already_exists")
				return
			}
			s.keyExists = true
			created(w, `{"$id":"key1","name":"Project Key","secret":"s3cr3t"}`)
		case r.URL.Path == "/projects/test/keys" && r.Method == http.MethodGet:
			if s.listedSecret == "" {
				_, _ = w.Write([]byte(`{"total":1,"keys":[{"$id":"key1","name":"Project Key"}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"total":1,"keys":[{"$id":"key1","name":"Project Key","secret":"` + s.listedSecret + `"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func conflict(w http.ResponseWriter, errType string) {
	w.WriteHeader(http.StatusConflict)
	_, _ = w.Write([]byte(`{"message":"Already exists","type":"` + errType + `"}`))
}

func created(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(body))
}

func testSpecs() (TeamSpec, ProjectSpec, KeySpec) {
	return TeamSpec{ID: "test", Name: "Test Team"},
		ProjectSpec{ID: "test", Name: "Test Project", Region: "eu-de"},
		KeySpec{Name: "Project Key", Scopes: DefaultKeyScopes}
}

func TestProvisioner_FreshInstance(t *testing.T) {
	stub := &provisionStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	team, project, key := testSpecs()
	result, err := New(console.NewClient(server.URL), testLogger()).Run(context.Background(), team, project, key)
	require.NoError(t, err)

	assert.Equal(t, Created, result.Team.Outcome)
	assert.Equal(t, Created, result.Project.Outcome)
	assert.Equal(t, Created, result.Key.Outcome)
	assert.Equal(t, "s3cr3t", result.Secret)
}

func TestProvisioner_RerunConverges(t *testing.T) {
	stub := &provisionStub{teamExists: true, projectExists: true, keyExists: true, listedSecret: "s3cr3t"}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	team, project, key := testSpecs()
	result, err := New(console.NewClient(server.URL), testLogger()).Run(context.Background(), team, project, key)
	require.NoError(t, err)

	assert.Equal(t, AlreadyExists, result.Team.Outcome)
	assert.Equal(t, AlreadyExists, result.Project.Outcome)
	assert.Equal(t, AlreadyExists, result.Key.Outcome)
	assert.Equal(t, "s3cr3t", result.Secret)
}

func TestProvisioner_KeyPathUsesProjectID(t *testing.T) {
	stub := &provisionStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	team, project, key := testSpecs()
	_, err := New(console.NewClient(server.URL), testLogger()).Run(context.Background(), team, project, key)
	require.NoError(t, err)
	require.Len(t, stub.keyCreatePaths, 1)
	assert.Equal(t, "/projects/test/keys", stub.keyCreatePaths[0])
}

func TestProvisioner_UnreadableSecretFailsLoud(t *testing.T) {
	// The key exists but the listing does not expose its secret. An empty
	// secret must never be returned as success.
	stub := &provisionStub{teamExists: true, projectExists: true, keyExists: true}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	team, project, key := testSpecs()
	result, err := New(console.NewClient(server.URL), testLogger()).Run(context.Background(), team, project, key)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "delete the key and rerun")
}

func TestProvisioner_ProjectFailureStopsBeforeKey(t *testing.T) {
	var keyRequests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams":
			created(w, `{"$id":"test"}`)
		case "/projects":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Invalid region","type":"project_invalid_region"}`))
		default:
			keyRequests++
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	team, project, key := testSpecs()
	_, err := New(console.NewClient(server.URL), testLogger()).Run(context.Background(), team, project, key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `create project "test"`)
	assert.False(t, console.IsConflict(err))
	assert.Zero(t, keyRequests)
}

func TestDefaultKeyScopes_PairedReadWrite(t *testing.T) {
	assert.Len(t, DefaultKeyScopes, 26)
	assert.Contains(t, DefaultKeyScopes, "users.write")
	assert.Contains(t, DefaultKeyScopes, "migrations.write")
	assert.Contains(t, DefaultKeyScopes, "locale.read")
	assert.NotContains(t, DefaultKeyScopes, "locale.write")
}
