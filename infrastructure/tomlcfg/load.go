package tomlcfg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"

	"github.com/licensedeny/licensedeny/domain/entities"
)

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = validator.New()

var leadingOperatorRe = regexp.MustCompile(`^[<>=!~^]`)

// Load reads and validates the TOML policy file at path and maps it into the
// domain config. Decision fields default to deny when absent.
func Load(path string) (entities.Config, error) {
	var file File
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return entities.Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := validate.Struct(file); err != nil {
		return entities.Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return mapConfig(file), nil
}

func mapConfig(file File) entities.Config {
	licenses := entities.LicensePolicy{
		Allow:      entities.NewStringSet(file.Licenses.Allow...),
		Deny:       entities.NewStringSet(file.Licenses.Deny...),
		Unlicensed: entities.ParseDecision(file.Licenses.Unlicensed, entities.DecisionDeny),
		Copyleft:   entities.ParseDecision(file.Licenses.Copyleft, entities.DecisionAllow),
		Private: entities.PrivatePolicy{
			Ignore:     file.Licenses.Private.Ignore,
			Registries: file.Licenses.Private.Registries,
		},
	}

	for _, exc := range file.Licenses.Exceptions {
		if exc.Package == "" || len(exc.Allow) == 0 {
			continue
		}
		licenses.Exceptions = append(licenses.Exceptions, entities.LicenseException{
			Package: strings.ToLower(exc.Package),
			Allow:   entities.NewStringSet(exc.Allow...),
			Source:  exc.Source,
			Reason:  exc.Reason,
		})
	}

	for _, entry := range file.Licenses.Clarify {
		if entry.Package == "" || entry.Expression == "" {
			continue
		}
		licenses.ClarifyRules = append(licenses.ClarifyRules, entities.ClarifyRule{
			Package:    strings.ToLower(entry.Package),
			Expression: entry.Expression,
			Versions:   ParseVersionSpec(entry.Version),
			Link:       entry.Link,
		})
	}

	bans := entities.BanPolicy{}
	for _, entry := range file.Bans.Deny {
		if entry.Name == "" {
			continue
		}
		bans.Deny = append(bans.Deny, entities.BanRule{Name: strings.ToLower(entry.Name), Reason: entry.Reason})
	}
	for _, entry := range file.Bans.Skip {
		if entry.Name == "" {
			continue
		}
		bans.Skip = append(bans.Skip, entities.BanRule{Name: strings.ToLower(entry.Name), Reason: entry.Reason})
	}

	sources := entities.SourcePolicy{
		UnknownRegistry: entities.ParseDecision(file.Sources.UnknownRegistry, entities.DecisionDeny),
		UnknownGit:      entities.ParseDecision(file.Sources.UnknownGit, entities.DecisionDeny),
		AllowRegistry:   file.Sources.AllowRegistry,
		AllowGit:        file.Sources.AllowGit,
		AllowOrg:        file.Sources.AllowOrg,
	}

	return entities.Config{Licenses: licenses, Bans: bans, Sources: sources}
}

// ParseVersionSpec parses a clarify-rule version range. Python-style
// operators are translated ("==" to "=", "~=" to "~"), and a bare version
// means exact equality. An empty or unparseable spec yields nil, meaning the
// rule is unconstrained.
func ParseVersionSpec(spec string) *semver.Constraints {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil
	}
	normalized := strings.ReplaceAll(spec, "==", "=")
	normalized = strings.ReplaceAll(normalized, "~=", "~")
	if !leadingOperatorRe.MatchString(normalized) {
		normalized = "=" + normalized
	}
	constraints, err := semver.NewConstraint(normalized)
	if err != nil {
		return nil
	}
	return constraints
}
