package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/head"
	"git.home.luguber.info/inful/oakdocs/internal/linkverify"
	"git.home.luguber.info/inful/oakdocs/internal/metrics"
	"git.home.luguber.info/inful/oakdocs/internal/theme"
)

// Artifact file names written to the output directory.
const (
	FileSiteYAML   = "site.yaml"
	FileSiteJSON   = "site.json"
	FileHead       = "head.html"
	FileMermaid    = "mermaid.json"
	FileComponents = "components.json"
	FileReport     = "report.json"
)

// ComponentManifest lists the theme chain and the components it recognises.
type ComponentManifest struct {
	Theme       string            `json:"theme"`
	Base        string            `json:"base,omitempty"`
	Components  []theme.Component `json:"components"`
	Stylesheets []string          `json:"stylesheets"`
}

// Report is the machine-readable summary of a generation pass.
type Report struct {
	BuildID    string            `json:"buildId"`
	Started    time.Time         `json:"started"`
	DurationMS float64           `json:"durationMs"`
	Outcome    metrics.Outcome   `json:"outcome"`
	Routes     int               `json:"routes"`
	Diagrams   int               `json:"diagrams"`
	Components []string          `json:"components"`
	Links      linkverify.Report `json:"links"`
	Artifacts  []string          `json:"artifacts"`
}

// Manifest builds the component manifest for a theme.
func Manifest(th *theme.Theme) ComponentManifest {
	m := ComponentManifest{Theme: th.Name, Components: []theme.Component{}, Stylesheets: []string{}}
	m.Stylesheets = append(m.Stylesheets, th.AllStylesheets()...)
	if th.Base != nil {
		m.Base = th.Base.Name
	}
	for cur := th; cur != nil; cur = cur.Base {
		if cur.Registry != nil {
			m.Components = append(m.Components, cur.Registry.Components()...)
		}
	}
	return m
}

// NewReport summarises res. The outcome reflects the stages run so far.
func NewReport(res *Result, elapsed time.Duration) Report {
	rep := Report{
		BuildID:    res.BuildID,
		Started:    res.Started.UTC(),
		DurationMS: float64(elapsed.Microseconds()) / 1000,
		Outcome:    outcomeFor(nil, res.Links),
		Routes:     res.Routes.Len(),
		Components: res.Theme.Components(),
		Links:      res.Links,
		Artifacts:  []string{FileSiteYAML, FileSiteJSON, FileHead, FileMermaid, FileComponents, FileReport},
	}
	if res.Routes != nil {
		for _, p := range res.Routes.Pages() {
			rep.Diagrams += p.Diagrams
		}
	}
	return rep
}

func writeArtifacts(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "create output directory").WithContext("path", dir).Build()
	}

	siteYAML, err := marshalYAML(res.Site)
	if err != nil {
		return encodeError(FileSiteYAML, err)
	}
	siteJSON, err := marshalJSON(res.Site)
	if err != nil {
		return encodeError(FileSiteJSON, err)
	}
	var headHTML bytes.Buffer
	if err := head.Render(&headHTML, res.Site.Head); err != nil {
		return encodeError(FileHead, err)
	}
	mermaid, err := marshalJSON(res.Site.Mermaid)
	if err != nil {
		return encodeError(FileMermaid, err)
	}
	components, err := marshalJSON(Manifest(res.Theme))
	if err != nil {
		return encodeError(FileComponents, err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{FileSiteYAML, siteYAML},
		{FileSiteJSON, siteJSON},
		{FileHead, headHTML.Bytes()},
		{FileMermaid, mermaid},
		{FileComponents, components},
	}
	for _, f := range files {
		if err := writeFileAtomic(filepath.Join(dir, f.name), f.data); err != nil {
			return err
		}
	}

	// The report goes last so its presence marks a complete artifact set.
	report, err := marshalJSON(NewReport(res, time.Since(res.Started)))
	if err != nil {
		return encodeError(FileReport, err)
	}
	return writeFileAtomic(filepath.Join(dir, FileReport), report)
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func encodeError(file string, err error) error {
	return foundation.WrapError(err, foundation.CategoryBuild, fmt.Sprintf("encode %s", file)).Build()
}

// writeFileAtomic writes data to a temp file in the target directory and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "create temp file").WithContext("path", path).Build()
	}
	tmpName := tmp.Name()
	ok := false
	defer func() {
		if !ok {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return foundation.WrapError(err, foundation.CategoryFileSystem, "write temp file").WithContext("path", path).Build()
	}
	if err := tmp.Close(); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "close temp file").WithContext("path", path).Build()
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "chmod temp file").WithContext("path", path).Build()
	}
	if err := os.Rename(tmpName, path); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "atomic rename").WithContext("path", path).Build()
	}
	ok = true
	return nil
}
