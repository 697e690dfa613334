package githubapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/teamsync/internal/githubapi"
	"github.com/agentstation/teamsync/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *githubapi.RESTClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return githubapi.NewREST("test-token", "acme/infra", githubapi.WithBaseURL(server.URL))
}

func TestUser(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "login": "alice"})
	}))

	user, err := client.User(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), uint64(user.ID))
	assert.Equal(t, "alice", user.Login.String())
}

func TestUserNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	}))

	_, err := client.User(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestCommitUsesConfiguredRepo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/infra/commits/abc123", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sha":    "abc123",
			"author": map[string]any{"id": 7, "login": "bob"},
		})
	}))

	commit, err := client.Commit(context.Background(), "abc123")
	require.NoError(t, err)
	require.NotNil(t, commit.Author)
	assert.Equal(t, "bob", commit.Author.Login.String())
}

func TestTeamMembersPaginates(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/42/members", r.URL.Path)
		page := r.URL.Query().Get("page")

		switch page {
		case "1":
			members := make([]map[string]any, 100)
			for i := range members {
				members[i] = map[string]any{"id": i + 1, "login": fmt.Sprintf("user%d", i+1)}
			}
			_ = json.NewEncoder(w).Encode(members)
		default:
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": 101, "login": "user101"},
			})
		}
	}))

	members, err := client.TeamMembers(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, members, 101)
}

func TestPendingInvitationsSkipsEmailOnly(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"login": "alice"},
			{"login": nil}, // email-only invitation
		})
	}))

	invites, err := client.PendingInvitations(context.Background(), "acme-corp")
	require.NoError(t, err)
	require.Len(t, invites, 1)
	assert.Equal(t, "alice", invites[0].Login.String())
}

func TestAddTeamMember(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"state": "pending"})
	}))

	require.NoError(t, client.AddTeamMember(context.Background(), 42, "charlie"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/teams/42/memberships/charlie", gotPath)
}

func TestRemoveTeamMemberPermissionError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	err := client.RemoveTeamMember(context.Background(), 42, "charlie")
	require.Error(t, err)
	assert.True(t, errors.IsPermission(err))
}
