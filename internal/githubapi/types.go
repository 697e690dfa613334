package githubapi

import "github.com/agentstation/teamsync/pkg/roster"

// Team is an organization team.
type Team struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Member is a current team member.
type Member struct {
	ID    roster.GitHubID   `json:"id"`
	Login roster.GitHubName `json:"login"`
}

// Invitation is a pending organization invitation. Login may be empty for
// invitations sent to an email address rather than an existing account.
type Invitation struct {
	Login roster.GitHubName `json:"login"`
}

// User is a GitHub account looked up by login.
type User struct {
	ID    roster.GitHubID   `json:"id"`
	Login roster.GitHubName `json:"login"`
}

// Commit is the subset of commit metadata needed for provenance checking.
type Commit struct {
	SHA    string `json:"sha"`
	Author *User  `json:"author"`
}
