// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestIdConstants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		JobfileNotFoundId,
		JobfileParseErrorId,
		SourceDirNotFoundId,
		EntryPointNotFoundId,
		InterpreterNotFoundId,
		DependencyInstallFailedId,
		BuildHookFailedId,
		ChannelStagingFailedId,
		ObjectStoreUnavailableId,
		JobFailedId,
		ConfigLoadFailedId,
		WorkspaceCreateFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if JobfileNotFoundId != 1 {
		t.Errorf("JobfileNotFoundId = %d, want 1", JobfileNotFoundId)
	}
}

func TestCatalogComplete(t *testing.T) {
	t.Parallel()

	// Every declared ID must resolve to a catalog entry with a message.
	for id := JobfileNotFoundId; id <= WorkspaceCreateFailedId; id++ {
		issue := Get(id)
		if issue == nil {
			t.Errorf("Get(%d) returned nil", id)
			continue
		}
		if issue.Id() != id {
			t.Errorf("issue.Id() = %d, want %d", issue.Id(), id)
		}
		if issue.MarkdownMsg() == "" {
			t.Errorf("issue %d has an empty message", id)
		}
	}
}

func TestIssueContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       Id
		contains string
	}{
		{JobfileNotFoundId, "No job file found"},
		{JobfileParseErrorId, "Failed to parse job file"},
		{JobFailedId, "not of the launcher"},
		{ChannelStagingFailedId, "s3://"},
		{InterpreterNotFoundId, "python"},
	}

	for _, tt := range tests {
		msg := string(Get(tt.id).MarkdownMsg())
		if !strings.Contains(msg, tt.contains) {
			t.Errorf("issue %d message does not mention %q", tt.id, tt.contains)
		}
	}
}

func TestLinksAreCloned(t *testing.T) {
	t.Parallel()

	issue := &Issue{
		id:       JobFailedId,
		mdMsg:    "x",
		docLinks: []HttpLink{"https://example.test/docs"},
	}
	links := issue.DocLinks()
	links[0] = "modified"
	if issue.DocLinks()[0] != "https://example.test/docs" {
		t.Error("DocLinks() should return a clone")
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	if len(Values()) != len(issues) {
		t.Errorf("Values() returned %d issues, want %d", len(Values()), len(issues))
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	out, err := Get(JobfileNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "No job file found") {
		t.Errorf("rendered output missing heading: %q", out)
	}
}
