// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	JobfileNotFoundId Id = iota + 1
	JobfileParseErrorId
	SourceDirNotFoundId
	EntryPointNotFoundId
	InterpreterNotFoundId
	DependencyInstallFailedId
	BuildHookFailedId
	ChannelStagingFailedId
	ObjectStoreUnavailableId
	JobFailedId
	ConfigLoadFailedId
	WorkspaceCreateFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links for this issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	jobfileNotFoundIssue = &Issue{
		id: JobfileNotFoundId,
		mdMsg: `
# No job file found!

We searched for a job file but couldn't find one in the expected locations.

## Search locations (in order of precedence):
1. The path given with --file
2. smjob.cue in the current directory

## Things you can try:
- Scaffold a job file in your current directory:
~~~
$ smlaunch init
~~~

- Or point at an existing one:
~~~
$ smlaunch run --file path/to/smjob.cue
~~~`,
	}

	jobfileParseErrorIssue = &Issue{
		id: JobfileParseErrorId,
		mdMsg: `
# Failed to parse job file!

Your job file contains syntax errors or invalid configuration.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- Channel names that are not lowercase (channel names must match [a-z][a-z0-9_]*)
- Hyperparameter keys starting with a digit

## Things you can try:
- Check the error message above for the specific line/column
- Validate your CUE syntax using the cue command-line tool

## Example of a valid job file:
~~~cue
name: "sherlock-rnn"
entry_point: "train.py"
source_dir: "./src"

hyperparameters: {
	num_epochs: 4
	lr:         0.001
}

channels: {
	training: "s3://data/sherlock"
}
~~~`,
	}

	sourceDirNotFoundIssue = &Issue{
		id: SourceDirNotFoundId,
		mdMsg: `
# Source directory not found!

The source_dir referenced by the job file does not exist or is not readable.

## Things you can try:
- Check the source_dir value in your job file; relative paths resolve against
  the job file's own directory
- Verify the directory exists and you can read it:
~~~
$ ls <source_dir>
~~~`,
	}

	entryPointNotFoundIssue = &Issue{
		id: EntryPointNotFoundId,
		mdMsg: `
# Entry point not found!

The entry_point script does not exist inside the source directory.

## Things you can try:
- Check the entry_point value for typos
- The entry point must be a path relative to source_dir, not absolute
- List the packaged code to see what was copied:
~~~
$ smlaunch run --keep ...
$ ls <workspace>/code
~~~`,
	}

	interpreterNotFoundIssue = &Issue{
		id: InterpreterNotFoundId,
		mdMsg: `
# Interpreter not found!

The python interpreter needed to run the entry point is not on PATH.

## Things you can try:
- Install python3, or
- Point the launcher at a specific interpreter:
~~~cue
template: {
	interpreter: "/usr/local/bin/python3.11"
}
~~~

- Or set it globally in your launcher config:
~~~cue
interpreter: "python3"
~~~`,
	}

	dependencyInstallFailedIssue = &Issue{
		id: DependencyInstallFailedId,
		mdMsg: `
# Dependency install failed!

Installing the dependencies declared by the source directory failed, so the
job was aborted before any user code ran.

## Common causes:
- A pinned version in requirements.txt that does not exist
- No network access to the package index
- A build dependency missing on this host

## Things you can try:
- Run the install manually to see the full resolver output:
~~~
$ python3 -m pip install -r requirements.txt
~~~
- Loosen or correct the failing pin`,
	}

	buildHookFailedIssue = &Issue{
		id: BuildHookFailedId,
		mdMsg: `
# Build hook failed!

The setup.sh build hook exited with a non-zero status, so the job was aborted
before the entry point ran.

## Things you can try:
- The hook's output is streamed above; fix the failing step
- Run the hook manually from the source directory:
~~~
$ cd <source_dir> && sh setup.sh
~~~`,
	}

	channelStagingFailedIssue = &Issue{
		id: ChannelStagingFailedId,
		mdMsg: `
# Channel staging failed!

A data channel could not be materialized into the workspace.

## Common causes:
- A local channel path that does not exist or is not a directory
- An s3:// prefix that matches no objects
- An s3:// channel with no object store configured

## Things you can try:
- Check each channel source in your job file
- For remote channels, verify the object store settings:
~~~
$ smlaunch config show
~~~`,
	}

	objectStoreUnavailableIssue = &Issue{
		id: ObjectStoreUnavailableId,
		mdMsg: `
# Object store unavailable!

A remote channel or artifact upload needs an object store, but none is
configured or the configured endpoint is unreachable.

## Things you can try:
- Configure the endpoint and credentials in your launcher config:
~~~cue
object_store: {
	endpoint:   "localhost:9000"
	access_key: "..."
	secret_key: "..."
}
~~~
- Check the endpoint is reachable from this host`,
	}

	jobFailedIssue = &Issue{
		id: JobFailedId,
		mdMsg: `
# Job failed!

The entry point exited with a non-zero status. This is a failure of the
training script itself, not of the launcher.

## Things you can try:
- The script's own output above is the primary diagnostic
- Re-run with --keep to inspect the workspace afterwards:
~~~
$ smlaunch run --keep ...
~~~
- Check output/data in the kept workspace for failure files`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the launcher configuration file.

## Configuration file locations:
- Linux: ~/.config/smlaunch/config.cue
- macOS: ~/Library/Application Support/smlaunch/config.cue
- Windows: %APPDATA%\smlaunch\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ smlaunch config init
~~~
- Check the configuration syntax
- Remove the config file to use defaults`,
	}

	workspaceCreateFailedIssue = &Issue{
		id: WorkspaceCreateFailedId,
		mdMsg: `
# Workspace creation failed!

The per-launch workspace directory could not be created.

## Common causes:
- The configured workspace base directory is not writable
- The disk is full

## Things you can try:
- Check the workspace_dir setting in your launcher config
- Point it at a writable location:
~~~cue
workspace_dir: "/tmp/smlaunch"
~~~`,
	}

	issues = map[Id]*Issue{
		jobfileNotFoundIssue.Id():         jobfileNotFoundIssue,
		jobfileParseErrorIssue.Id():       jobfileParseErrorIssue,
		sourceDirNotFoundIssue.Id():       sourceDirNotFoundIssue,
		entryPointNotFoundIssue.Id():      entryPointNotFoundIssue,
		interpreterNotFoundIssue.Id():     interpreterNotFoundIssue,
		dependencyInstallFailedIssue.Id(): dependencyInstallFailedIssue,
		buildHookFailedIssue.Id():         buildHookFailedIssue,
		channelStagingFailedIssue.Id():    channelStagingFailedIssue,
		objectStoreUnavailableIssue.Id():  objectStoreUnavailableIssue,
		jobFailedIssue.Id():               jobFailedIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		workspaceCreateFailedIssue.Id():   workspaceCreateFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
