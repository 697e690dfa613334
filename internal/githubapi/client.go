// Package githubapi implements the directory client: the minimal slice of the
// GitHub REST API that reconciliation needs (teams, members, invitations,
// users, commits).
package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/teamsync/internal/transport"
	"github.com/agentstation/teamsync/pkg/errors"
	"github.com/agentstation/teamsync/pkg/roster"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// perPage is the page size used for paginated list endpoints.
const perPage = 100

// Client is the directory service consumed by the reconciliation core. Every
// method may fail independently; callers decide which failures are fatal.
type Client interface {
	// Teams lists an organization's teams.
	Teams(ctx context.Context, org string) ([]Team, error)

	// Team fetches a single team by its numeric ID.
	Team(ctx context.Context, teamID uint64) (*Team, error)

	// TeamMembers lists the current members of a team.
	TeamMembers(ctx context.Context, teamID uint64) ([]Member, error)

	// PendingInvitations lists an organization's outstanding invitations.
	PendingInvitations(ctx context.Context, org string) ([]Invitation, error)

	// User looks up an account by login.
	User(ctx context.Context, login roster.GitHubName) (*User, error)

	// Commit fetches commit metadata from the configured repository.
	Commit(ctx context.Context, sha string) (*Commit, error)

	// AddTeamMember invites or adds a user to a team.
	AddTeamMember(ctx context.Context, teamID uint64, login roster.GitHubName) error

	// RemoveTeamMember removes a user from a team.
	RemoveTeamMember(ctx context.Context, teamID uint64, login roster.GitHubName) error
}

// RESTClient talks to the GitHub v3 REST API.
type RESTClient struct {
	base string
	repo string // "owner/name", the repository holding the roster history
	http *transport.Client
}

// Option configures a RESTClient.
type Option func(*RESTClient)

// WithBaseURL overrides the API endpoint, e.g. for GitHub Enterprise or tests.
func WithBaseURL(url string) Option {
	return func(c *RESTClient) { c.base = strings.TrimRight(url, "/") }
}

// NewREST creates a REST client. The repo argument names the repository whose
// commits back the roster's provenance trail, in "owner/name" form.
func NewREST(token, repo string, opts ...Option) *RESTClient {
	var auth transport.Authenticator = &transport.NoAuth{}
	if token != "" {
		auth = &transport.TokenAuth{Token: token}
	}
	c := &RESTClient{
		base: DefaultBaseURL,
		repo: repo,
		http: transport.New(auth),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Teams lists an organization's teams.
func (c *RESTClient) Teams(ctx context.Context, org string) ([]Team, error) {
	var teams []Team
	err := c.getPaged(ctx, fmt.Sprintf("%s/orgs/%s/teams", c.base, org), "list teams", org, func(body io.Reader) (int, error) {
		var page []Team
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return 0, err
		}
		teams = append(teams, page...)
		return len(page), nil
	})
	return teams, err
}

// Team fetches a single team by its numeric ID.
func (c *RESTClient) Team(ctx context.Context, teamID uint64) (*Team, error) {
	var team Team
	if err := c.getJSON(ctx, fmt.Sprintf("%s/teams/%d", c.base, teamID), "get team", fmt.Sprint(teamID), &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// TeamMembers lists the current members of a team.
func (c *RESTClient) TeamMembers(ctx context.Context, teamID uint64) ([]Member, error) {
	var members []Member
	err := c.getPaged(ctx, fmt.Sprintf("%s/teams/%d/members", c.base, teamID), "list members", fmt.Sprint(teamID), func(body io.Reader) (int, error) {
		var page []Member
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return 0, err
		}
		members = append(members, page...)
		return len(page), nil
	})
	return members, err
}

// PendingInvitations lists an organization's outstanding invitations.
func (c *RESTClient) PendingInvitations(ctx context.Context, org string) ([]Invitation, error) {
	var invites []Invitation
	err := c.getPaged(ctx, fmt.Sprintf("%s/orgs/%s/invitations", c.base, org), "list invitations", org, func(body io.Reader) (int, error) {
		var page []Invitation
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return 0, err
		}
		for _, invite := range page {
			// Email-only invitations carry no login and cannot be
			// matched against roster identities.
			if invite.Login != "" {
				invites = append(invites, invite)
			}
		}
		return len(page), nil
	})
	return invites, err
}

// User looks up an account by login.
func (c *RESTClient) User(ctx context.Context, login roster.GitHubName) (*User, error) {
	var user User
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.base, login), "get user", login.String(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Commit fetches commit metadata from the configured repository.
func (c *RESTClient) Commit(ctx context.Context, sha string) (*Commit, error) {
	var commit Commit
	if err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/commits/%s", c.base, c.repo, sha), "get commit", sha, &commit); err != nil {
		return nil, err
	}
	return &commit, nil
}

// AddTeamMember invites or adds a user to a team with the member role.
func (c *RESTClient) AddTeamMember(ctx context.Context, teamID uint64, login roster.GitHubName) error {
	url := fmt.Sprintf("%s/teams/%d/memberships/%s", c.base, teamID, login)
	resp, err := c.http.Put(ctx, url, strings.NewReader(`{"role":"member"}`))
	if err != nil {
		return errors.NewAPIError("add member", login.String(), 0, err.Error())
	}
	defer drain(resp)
	if resp.StatusCode >= 300 {
		return apiError(resp, "add member", login.String())
	}
	return nil
}

// RemoveTeamMember removes a user from a team.
func (c *RESTClient) RemoveTeamMember(ctx context.Context, teamID uint64, login roster.GitHubName) error {
	url := fmt.Sprintf("%s/teams/%d/memberships/%s", c.base, teamID, login)
	resp, err := c.http.Delete(ctx, url)
	if err != nil {
		return errors.NewAPIError("remove member", login.String(), 0, err.Error())
	}
	defer drain(resp)
	if resp.StatusCode >= 300 {
		return apiError(resp, "remove member", login.String())
	}
	return nil
}

// getJSON performs a GET request and decodes the response body.
func (c *RESTClient) getJSON(ctx context.Context, url, operation, resource string, out any) error {
	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return errors.NewAPIError(operation, resource, 0, err.Error())
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return apiError(resp, operation, resource)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewAPIError(operation, resource, 0, "decoding response: "+err.Error())
	}
	return nil
}

// getPaged walks a paginated list endpoint until a short page is returned.
func (c *RESTClient) getPaged(ctx context.Context, url, operation, resource string, decode func(io.Reader) (int, error)) error {
	for page := 1; ; page++ {
		pageURL := fmt.Sprintf("%s?per_page=%d&page=%d", url, perPage, page)
		resp, err := c.http.Get(ctx, pageURL)
		if err != nil {
			return errors.NewAPIError(operation, resource, 0, err.Error())
		}
		if resp.StatusCode != http.StatusOK {
			defer drain(resp)
			return apiError(resp, operation, resource)
		}
		n, err := decode(resp.Body)
		drain(resp)
		if err != nil {
			return errors.NewAPIError(operation, resource, 0, "decoding response: "+err.Error())
		}
		if n < perPage {
			return nil
		}
	}
}

// apiError converts a non-success response into a typed APIError.
func apiError(resp *http.Response, operation, resource string) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
	if payload.Message == "" {
		payload.Message = resp.Status
	}
	return errors.NewAPIError(operation, resource, resp.StatusCode, payload.Message)
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
}
