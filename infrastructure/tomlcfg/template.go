package tomlcfg

import (
	"fmt"
	"os"
	"path/filepath"
)

// Template is the starter policy written by `licensedeny init`.
const Template = `# licensedeny policy configuration.
# Canonical license ids are SPDX-style short identifiers (MIT, Apache-2.0, ...).

[licenses]
allow = [
    "MIT",
    "Apache-2.0",
    "BSD-3-Clause",
    "BSD-2-Clause",
    "ISC",
    "PSF-2.0",
]
# Licenses rejected outright, even when also allowed above.
deny = []
# Decision for packages without license metadata: allow | warn | deny.
unlicensed = "deny"
# Decision for GPL-family licenses: allow | warn | deny.
copyleft = "warn"

# Per-package extra license grants.
# [[licenses.exceptions]]
# package = "some-package"
# allow = ["GPL-3.0"]
# source = "github.com/myorg"
# reason = "internal fork, licensing reviewed"

# Per-package license overrides for untrustworthy metadata; first match wins.
# [[licenses.clarify]]
# package = "some-package"
# version = ">=1.0,<2.0"
# expression = "MIT"
# link = "https://github.com/example/some-package/blob/main/LICENSE"

[licenses.private]
ignore = false
registries = []

[bans]
# [[bans.deny]]
# name = "leftpad"
# reason = "unmaintained"
# [[bans.skip]]
# name = "internal-tool"
# reason = "first-party package"

[sources]
# Decision for registry/url/unknown sources not in allow-registry.
unknown-registry = "deny"
# Decision for git sources not in allow-git or allow-org.
unknown-git = "deny"
allow-registry = []
allow-git = []
# [sources.allow-org]
# "github.com" = ["myorg"]
`

// WriteTemplate writes the starter policy into dir, refusing to overwrite an
// existing file unless force is set. It returns the written path.
func WriteTemplate(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ConfigFilename)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config already exists at %s, use --force to overwrite", path)
	}
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		return "", fmt.Errorf("failed to write template: %w", err)
	}
	return path, nil
}
