package pyenv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/licensedeny/licensedeny/domain/entities"
)

// directURL mirrors PEP 610's direct_url.json.
type directURL struct {
	URL     string   `json:"url"`
	VCSInfo *vcsInfo `json:"vcs_info"`
}

type vcsInfo struct {
	VCS               string `json:"vcs"`
	CommitID          string `json:"commit_id"`
	RequestedRevision string `json:"requested_revision"`
}

// resolveSource classifies a distribution's provenance from its
// direct_url.json. No file means a regular index install (pypi); an
// unreadable file degrades to unknown rather than failing the run.
func resolveSource(distInfo string) entities.SourceInfo {
	path := filepath.Join(distInfo, "direct_url.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entities.SourceInfo{Label: "pypi", Kind: entities.SourceKindPyPI}
		}
		return entities.SourceInfo{Label: "unknown", Kind: entities.SourceKindUnknown}
	}
	return classifyDirectURL(data)
}

func classifyDirectURL(data []byte) entities.SourceInfo {
	var direct directURL
	if err := json.Unmarshal(data, &direct); err != nil {
		return entities.SourceInfo{Label: "unknown", Kind: entities.SourceKindUnknown}
	}

	if direct.VCSInfo != nil {
		vcs := direct.VCSInfo.VCS
		if vcs == "" {
			vcs = "vcs"
		}
		ref := direct.VCSInfo.CommitID
		if ref == "" {
			ref = direct.VCSInfo.RequestedRevision
		}
		label := fmt.Sprintf("%s:%s", vcs, direct.URL)
		if ref != "" {
			label = fmt.Sprintf("%s@%s", label, ref)
		}
		return entities.SourceInfo{Label: label, Kind: entities.SourceKindGit}
	}

	lowered := strings.ToLower(direct.URL)
	switch {
	case strings.HasPrefix(direct.URL, "file://"):
		return entities.SourceInfo{Label: direct.URL, Kind: entities.SourceKindDir}
	case strings.HasPrefix(lowered, "git+"), strings.HasPrefix(lowered, "ssh://"), strings.HasPrefix(lowered, "git@"):
		return entities.SourceInfo{Label: direct.URL, Kind: entities.SourceKindGit}
	case direct.URL != "":
		return entities.SourceInfo{Label: direct.URL, Kind: entities.SourceKindRegistry}
	default:
		return entities.SourceInfo{Label: "pypi", Kind: entities.SourceKindPyPI}
	}
}
