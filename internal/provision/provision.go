package provision

import (
	"context"
	"fmt"
	"log/slog"

	"appseed/internal/console"
)

// Outcome reports how an ensure step concluded.
type Outcome int

const (
	// Created means the resource did not exist and was created by this run.
	Created Outcome = iota
	// AlreadyExists means a prior run (or another process) created it.
	AlreadyExists
)

func (o Outcome) String() string {
	if o == AlreadyExists {
		return "already exists"
	}
	return "created"
}

// TeamSpec names the baseline team.
type TeamSpec struct {
	ID   string
	Name string
}

// ProjectSpec names the baseline project, owned by the team.
type ProjectSpec struct {
	ID     string
	Name   string
	Region string
}

// KeySpec names the project credential and its fixed scope allow-list.
type KeySpec struct {
	Name   string
	Scopes []string
}

// DefaultKeyScopes is the fixed allow-list granted to the bootstrap
// credential. The credential is created with exactly this set.
var DefaultKeyScopes = []string{
	"users.read", "users.write",
	"teams.read", "teams.write",
	"databases.read", "databases.write",
	"collections.read", "collections.write",
	"attributes.read", "attributes.write",
	"indexes.read", "indexes.write",
	"documents.read", "documents.write",
	"files.read", "files.write",
	"buckets.read", "buckets.write",
	"functions.read", "functions.write",
	"execution.read", "execution.write",
	"locale.read",
	"avatars.read",
	"health.read",
	"migrations.read", "migrations.write",
}

// StepResult is the identifier and outcome of one ensure step.
type StepResult struct {
	ID      string
	Outcome Outcome
}

// Result reports the provisioned baseline. Secret is the credential's secret
// material and is always non-empty on success.
type Result struct {
	Team    StepResult
	Project StepResult
	Key     StepResult
	Secret  string
}

// Provisioner ensures the baseline resources exist, in strict order: the team
// first, then the project under it, then the credential under the project.
type Provisioner struct {
	client *console.Client
	logger *slog.Logger
}

// New creates a Provisioner over a session-authenticated client.
func New(client *console.Client, logger *slog.Logger) *Provisioner {
	return &Provisioner{client: client, logger: logger}
}

// Run ensures team, project, and credential exist and returns the credential
// secret. Any non-conflict failure aborts immediately with the backend's
// response surfaced; nothing already created is rolled back.
func (p *Provisioner) Run(ctx context.Context, team TeamSpec, project ProjectSpec, key KeySpec) (*Result, error) {
	result := &Result{}

	teamResult, err := p.ensureTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	result.Team = teamResult
	p.logger.Info("team ensured", "team_id", teamResult.ID, "outcome", teamResult.Outcome.String())

	projectResult, err := p.ensureProject(ctx, project, team.ID)
	if err != nil {
		return nil, err
	}
	result.Project = projectResult
	p.logger.Info("project ensured", "project_id", projectResult.ID, "outcome", projectResult.Outcome.String())

	keyResult, secret, err := p.ensureKey(ctx, project.ID, key)
	if err != nil {
		return nil, err
	}
	result.Key = keyResult
	result.Secret = secret
	p.logger.Info("api key ensured", "key", key.Name, "outcome", keyResult.Outcome.String())

	return result, nil
}

func (p *Provisioner) ensureTeam(ctx context.Context, spec TeamSpec) (StepResult, error) {
	_, err := p.client.CreateTeam(ctx, spec.ID, spec.Name)
	switch {
	case err == nil:
		return StepResult{ID: spec.ID, Outcome: Created}, nil
	case console.IsConflict(err):
		return StepResult{ID: spec.ID, Outcome: AlreadyExists}, nil
	default:
		return StepResult{}, fmt.Errorf("create team %q: %w", spec.ID, err)
	}
}

func (p *Provisioner) ensureProject(ctx context.Context, spec ProjectSpec, teamID string) (StepResult, error) {
	_, err := p.client.CreateProject(ctx, spec.ID, spec.Name, teamID, spec.Region)
	switch {
	case err == nil:
		return StepResult{ID: spec.ID, Outcome: Created}, nil
	case console.IsConflict(err):
		return StepResult{ID: spec.ID, Outcome: AlreadyExists}, nil
	default:
		return StepResult{}, fmt.Errorf("create project %q: %w", spec.ID, err)
	}
}

// ensureKey creates the credential and returns its secret. When the credential
// already exists its secret is re-read from the key listing; a credential
// whose secret cannot be recovered is an error, never an empty secret.
func (p *Provisioner) ensureKey(ctx context.Context, projectID string, spec KeySpec) (StepResult, string, error) {
	key, err := p.client.CreateKey(ctx, projectID, spec.Name, spec.Scopes)
	switch {
	case err == nil:
		if key.Secret == "" {
			return StepResult{}, "", fmt.Errorf("create api key %q: backend returned no secret", spec.Name)
		}
		return StepResult{ID: key.ID, Outcome: Created}, key.Secret, nil
	case console.IsConflict(err):
		existing, listErr := p.client.ListKeys(ctx, projectID)
		if listErr != nil {
			return StepResult{}, "", fmt.Errorf("api key %q exists but listing keys failed: %w", spec.Name, listErr)
		}
		for _, k := range existing {
			if k.Name == spec.Name && k.Secret != "" {
				return StepResult{ID: k.ID, Outcome: AlreadyExists}, k.Secret, nil
			}
		}
		return StepResult{}, "", fmt.Errorf("api key %q already exists and its secret cannot be re-read; delete the key and rerun", spec.Name)
	default:
		return StepResult{}, "", fmt.Errorf("create api key %q: %w", spec.Name, err)
	}
}
