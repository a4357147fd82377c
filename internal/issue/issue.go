// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	WorkspaceRootNotFoundId Id = iota + 1
	ManifestParseErrorId
	ManifestReadErrorId
	ConfigLoadFailedId
	NoPackageRootsId
	ModulePathUnresolvedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty
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
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

const (
	packageJSONDocs HttpLink = "https://docs.npmjs.com/cli/configuring-npm/package-json"
	addonDocs       HttpLink = "https://cli.emberjs.com/release/writing-addons/"
	layoutDocs      HttpLink = "https://cli.emberjs.com/release/advanced-use/project-layouts/"
)

var (
	render = glamour.Render

	workspaceRootNotFoundIssue = &Issue{
		id: WorkspaceRootNotFoundId,
		mdMsg: `
# Workspace root not found!

The directory given as workspace root does not exist or cannot be read.

## Things you can try:
- Run from the top of your repository, or pass it explicitly:
~~~
$ emberpath --root /path/to/repo roots
~~~
- Check the ` + "`root`" + ` value in your emberpath config file`,
		docLinks: []HttpLink{layoutDocs},
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse package.json!

One of the package manifests in the workspace is not valid JSON. The
registry is only built when every manifest can be read, so no file can be
resolved until it is fixed.

## Things you can try:
- Look at the file named in the error above and fix the JSON syntax
- If the file is generated output, add its directory to ` + "`ignore`" + ` in your config:
~~~cue
ignore: ["**/dist/**"]
~~~`,
		docLinks: []HttpLink{packageJSONDocs},
	}

	manifestReadErrorIssue = &Issue{
		id: ManifestReadErrorId,
		mdMsg: `
# Failed to read package.json!

A manifest was found during the workspace scan but could not be opened.

## Things you can try:
- Check the file permissions of the path named in the error above
- Exclude the directory with an ` + "`ignore`" + ` pattern if it is not part of the workspace`,
		docLinks: []HttpLink{packageJSONDocs},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The emberpath configuration file could not be loaded.

## Things you can try:
- Check the file for CUE or TOML syntax errors
- Show the configuration emberpath is using:
~~~
$ emberpath config show
~~~
- Remove the file to fall back to defaults`,
		docLinks: []HttpLink{layoutDocs},
	}

	noPackageRootsIssue = &Issue{
		id: NoPackageRootsId,
		mdMsg: `
# No Ember packages found!

The workspace scan did not find any addon (` + "`\"keywords\": [\"ember-addon\"]`" + `)
or application (a dependency on ` + "`ember-cli`" + `).

## Things you can try:
- Make sure you are running from the workspace root
- Check that package directories are not matched by an ignore pattern`,
		docLinks: []HttpLink{addonDocs, layoutDocs},
	}

	modulePathUnresolvedIssue = &Issue{
		id: ModulePathUnresolvedId,
		mdMsg: `
# Module path could not be determined!

The file is not inside the ` + "`app`" + `, ` + "`tests`" + `, ` + "`addon`" + ` or
` + "`addon-test-support`" + ` tree of a known package.

## Things you can try:
- List the package roots emberpath found:
~~~
$ emberpath roots
~~~
- Use ` + "`--passthrough`" + ` to get the extension-stripped path instead`,
		docLinks: []HttpLink{addonDocs},
	}

	issues = map[Id]*Issue{
		workspaceRootNotFoundIssue.Id(): workspaceRootNotFoundIssue,
		manifestParseErrorIssue.Id():    manifestParseErrorIssue,
		manifestReadErrorIssue.Id():     manifestReadErrorIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		noPackageRootsIssue.Id():        noPackageRootsIssue,
		modulePathUnresolvedIssue.Id():  modulePathUnresolvedIssue,
	}
)

// Values returns every known issue ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
