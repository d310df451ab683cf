package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/localrivet/gomcp/server"

	"github.com/localrivet/aristotlemcp/internal/errortypes"
	"github.com/localrivet/aristotlemcp/internal/tools"
)

// projectListArgs is the (empty) argument set of the static listing
// resource.
type projectListArgs struct{}

// projectDetailArgs binds the templated segment of the project detail
// resource URI.
type projectDetailArgs struct {
	ProjectID string `path:"project_id"`
}

// handleProjectsResource serves the aristotle://projects resource as an
// indented JSON listing.
func (s *MCPProofToolServer) handleProjectsResource(ctx *server.Context, args *projectListArgs) (string, error) {
	slog.Debug("Reading projects resource", "limit", s.resourceListLimit)

	summaries, err := s.listProjects(s.resourceListLimit)
	if err != nil {
		errortypes.LogError(nil, err)
		return "", err
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", errortypes.InternalError(err, "failed to encode project listing")
	}

	return string(data), nil
}

// handleProjectDetailResource serves aristotle://projects/{project_id} as
// an indented JSON status snapshot, including the solution when the
// project is complete.
func (s *MCPProofToolServer) handleProjectDetailResource(ctx *server.Context, args *projectDetailArgs) (string, error) {
	slog.Debug("Reading project detail resource", "project_id", args.ProjectID)

	if args.ProjectID == "" {
		return "", errortypes.ValidationError(fmt.Errorf("project_id is required"), "invalid project resource URI")
	}

	status, err := s.projectStatus(args.ProjectID)
	if err != nil {
		errortypes.LogError(nil, err)
		return "", err
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return "", errortypes.InternalError(err, "failed to encode project status")
	}

	return string(data), nil
}

// writeListing persists a plain-text rendering of a project listing, one
// line per project.
func writeListing(path string, summaries []tools.ProjectSummary) error {
	var builder strings.Builder
	for _, p := range summaries {
		fmt.Fprintf(&builder, "Project: %s, Status: %s, Created: %s\n",
			p.ProjectID, p.Status, p.CreatedAt)
	}

	if err := os.WriteFile(path, []byte(builder.String()), 0644); err != nil {
		return errortypes.FileError(err, "failed to write project listing", path)
	}
	return nil
}
