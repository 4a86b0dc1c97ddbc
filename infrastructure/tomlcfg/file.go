// Package tomlcfg loads the operator policy from the licensedeny.toml
// configuration file: discovery near the project root, TOML decoding,
// struct validation, and mapping into the domain config.
package tomlcfg

// ConfigFilename is the policy file name looked up near the project root.
const ConfigFilename = "licensedeny.toml"

// File mirrors the on-disk TOML layout before mapping into
// entities.Config. Field names and nesting follow the file format, not the
// domain model.
type File struct {
	Licenses LicensesSection `toml:"licenses" json:"licenses"`
	Bans     BansSection     `toml:"bans" json:"bans"`
	Sources  SourcesSection  `toml:"sources" json:"sources"`
}

// LicensesSection is the [licenses] table.
type LicensesSection struct {
	Allow      []string         `toml:"allow" json:"allow" jsonschema_description:"Globally allowed canonical license ids"`
	Deny       []string         `toml:"deny" json:"deny,omitempty" jsonschema_description:"License ids rejected outright; overrides allow"`
	Unlicensed string           `toml:"unlicensed" json:"unlicensed,omitempty" validate:"omitempty,oneof=allow warn deny"`
	Copyleft   string           `toml:"copyleft" json:"copyleft,omitempty" validate:"omitempty,oneof=allow warn deny"`
	Exceptions []ExceptionEntry `toml:"exceptions" json:"exceptions,omitempty"`
	Clarify    []ClarifyEntry   `toml:"clarify" json:"clarify,omitempty"`
	Private    PrivateSection   `toml:"private" json:"private,omitempty"`
}

// ExceptionEntry is one [[licenses.exceptions]] entry.
type ExceptionEntry struct {
	Package string   `toml:"package" json:"package"`
	Allow   []string `toml:"allow" json:"allow"`
	Source  string   `toml:"source" json:"source,omitempty"`
	Reason  string   `toml:"reason" json:"reason,omitempty"`
}

// ClarifyEntry is one [[licenses.clarify]] entry.
type ClarifyEntry struct {
	Package    string `toml:"package" json:"package"`
	Expression string `toml:"expression" json:"expression"`
	Version    string `toml:"version" json:"version,omitempty" jsonschema_description:"Optional version range the override applies to"`
	Link       string `toml:"link" json:"link,omitempty"`
}

// PrivateSection is the [licenses.private] table.
type PrivateSection struct {
	Ignore     bool     `toml:"ignore" json:"ignore,omitempty"`
	Registries []string `toml:"registries" json:"registries,omitempty"`
}

// BansSection is the [bans] table.
type BansSection struct {
	Deny []BanEntry `toml:"deny" json:"deny,omitempty"`
	Skip []BanEntry `toml:"skip" json:"skip,omitempty"`
}

// BanEntry is one [[bans.deny]] or [[bans.skip]] entry.
type BanEntry struct {
	Name   string `toml:"name" json:"name"`
	Reason string `toml:"reason" json:"reason,omitempty"`
}

// SourcesSection is the [sources] table.
type SourcesSection struct {
	UnknownRegistry string              `toml:"unknown-registry" json:"unknown-registry,omitempty" validate:"omitempty,oneof=allow warn deny"`
	UnknownGit      string              `toml:"unknown-git" json:"unknown-git,omitempty" validate:"omitempty,oneof=allow warn deny"`
	AllowRegistry   []string            `toml:"allow-registry" json:"allow-registry,omitempty"`
	AllowGit        []string            `toml:"allow-git" json:"allow-git,omitempty"`
	AllowOrg        map[string][]string `toml:"allow-org" json:"allow-org,omitempty" jsonschema_description:"Git host to allowed organizations"`
}
