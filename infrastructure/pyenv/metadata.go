package pyenv

import (
	"bufio"
	"net/textproto"
	"os"
	"strings"

	"github.com/licensedeny/licensedeny/domain/license"
)

// classifierRule maps a "License ::" trove classifier, lowercased, to a
// license string. Rules apply in order; first match wins.
type classifierRule struct {
	license string
	all     []string
	any     []string
}

func (r classifierRule) matches(s string) bool {
	for _, sub := range r.all {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, sub := range r.any {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var classifierRules = []classifierRule{
	{license: "PSF-2.0", all: []string{"python software foundation license"}},
	{license: "MIT", all: []string{"mit"}},
	{license: "Apache-2.0", all: []string{"apache", "2.0"}},
	{license: "BSD-3-Clause", all: []string{"bsd"}, any: []string{"3-clause", "three clause"}},
	{license: "BSD", all: []string{"bsd"}},
	{license: "Public Domain", all: []string{"public domain"}},
	{license: "MPL-2.0", all: []string{"mozilla public license 2.0"}},
}

// readMetadataFile parses a dist-info METADATA file, which is RFC-822 style
// headers followed by an optional body.
func readMetadataFile(path string) (textproto.MIMEHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reader := textproto.NewReader(bufio.NewReader(f))
	header, err := reader.ReadMIMEHeader()
	// io.EOF after at least one header is normal for files without a body.
	if len(header) == 0 && err != nil {
		return nil, err
	}
	return header, nil
}

// ExtractLicense pulls the best available license string out of distribution
// metadata: License-Expression first, then the License field (ignoring the
// UNKNOWN and Other/Proprietary placeholders), then "License ::" trove
// classifiers. Everything else is the Unknown sentinel.
func ExtractLicense(meta textproto.MIMEHeader) string {
	if expr := strings.TrimSpace(meta.Get("License-Expression")); expr != "" {
		return expr
	}
	if field := strings.TrimSpace(meta.Get("License")); field != "" &&
		field != "UNKNOWN" && field != "Other/Proprietary" {
		return field
	}
	for _, classifier := range meta.Values("Classifier") {
		if !strings.HasPrefix(classifier, "License ::") {
			continue
		}
		lowered := strings.ToLower(classifier)
		for _, rule := range classifierRules {
			if rule.matches(lowered) {
				return rule.license
			}
		}
	}
	return license.UnknownLicense
}
