package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/salesdojo/callcoach/internal/flashcards"
	"github.com/salesdojo/callcoach/internal/playlist"
)

//go:embed data/*.yaml
var embedded embed.FS

// FormatMajor is the content format major version this build reads.
const FormatMajor = "v1"

// Content file names, both in the embedded pack and in override directories.
const (
	PlaylistFile     = "playlist.yaml"
	ExercisesFile    = "exercises.yaml"
	DecisionTreeFile = "decision_tree.yaml"
	GlossaryFile     = "glossary.yaml"
	FlashcardsFile   = "flashcards.yaml"
	ScriptsFile      = "scripts.yaml"
)

// Files lists every content file.
var Files = []string{PlaylistFile, ExercisesFile, DecisionTreeFile, GlossaryFile, FlashcardsFile, ScriptsFile}

// ErrUnsupportedFormat is returned for content written for another major
// format version.
var ErrUnsupportedFormat = errors.New("unsupported content format")

// LoadOptions configures Load.
type LoadOptions struct {
	// Dir overrides individual files. Files missing from Dir come from the
	// embedded pack.
	Dir    string
	Logger *slog.Logger
}

// Load reads, validates and decodes the content pack.
func Load(opts LoadOptions) (*Pack, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	l := loader{opts: opts}
	p := &Pack{}

	var playlistDoc struct {
		Tracks []playlist.Track `yaml:"tracks"`
	}
	var exercisesDoc struct {
		Exercises []Exercise `yaml:"exercises"`
	}
	var glossaryDoc struct {
		Terms []Term `yaml:"terms"`
	}
	var cardsDoc struct {
		Cards []flashcards.Card `yaml:"cards"`
	}
	var scriptsDoc struct {
		Compliance []Requirement `yaml:"compliance"`
		Modules    []Module      `yaml:"modules"`
	}

	steps := []struct {
		file   string
		schema *schema
		out    any
	}{
		{PlaylistFile, playlistSchema, &playlistDoc},
		{ExercisesFile, exercisesSchema, &exercisesDoc},
		{DecisionTreeFile, decisionTreeSchema, &p.DecisionTree},
		{GlossaryFile, glossarySchema, &glossaryDoc},
		{FlashcardsFile, flashcardsSchema, &cardsDoc},
		{ScriptsFile, scriptsSchema, &scriptsDoc},
	}
	for _, s := range steps {
		if err := l.load(s.file, s.schema, s.out); err != nil {
			return nil, err
		}
	}

	p.Tracks = playlistDoc.Tracks
	p.Exercises = exercisesDoc.Exercises
	p.Glossary = glossaryDoc.Terms
	p.Flashcards = cardsDoc.Cards
	p.Compliance = scriptsDoc.Compliance
	p.Modules = scriptsDoc.Modules

	if err := p.DecisionTree.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", DecisionTreeFile, err)
	}
	if err := checkUnique(p); err != nil {
		return nil, err
	}
	return p, nil
}

type loader struct {
	opts LoadOptions
}

func (l loader) load(name string, s *schema, out any) error {
	data, origin, err := l.read(name)
	if err != nil {
		return err
	}
	if err := decode(data, s, out); err != nil {
		return fmt.Errorf("%s: %w", origin, err)
	}
	l.opts.Logger.Debug("content loaded", "file", name, "origin", origin)
	return nil
}

func (l loader) read(name string) ([]byte, string, error) {
	if l.opts.Dir != "" {
		path := filepath.Join(l.opts.Dir, name)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			return data, path, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, "", fmt.Errorf("read content override: %w", err)
		}
	}
	data, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, "", fmt.Errorf("read embedded content %s: %w", name, err)
	}
	return data, "embedded:" + name, nil
}

// decode validates a YAML document against s, checks its format version
// and decodes it into out.
func decode(data []byte, s *schema, out any) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	// The schema validator works on JSON values.
	js, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}
	var doc any
	if err := json.Unmarshal(js, &doc); err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}

	if err := validate(s, doc); err != nil {
		return err
	}
	if err := checkFormat(doc); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func checkFormat(doc any) error {
	m, _ := doc.(map[string]any)
	v, _ := m["format"].(string)
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: invalid version %q", ErrUnsupportedFormat, v)
	}
	if semver.Major(v) != FormatMajor {
		return fmt.Errorf("%w: %s (this build reads %s.x)", ErrUnsupportedFormat, v, FormatMajor)
	}
	return nil
}

func checkUnique(p *Pack) error {
	var errs []error
	dup := func(kind string, ids []string) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				errs = append(errs, fmt.Errorf("duplicate %s %q", kind, id))
			}
			seen[id] = true
		}
	}

	var ids []string
	for _, t := range p.Tracks {
		ids = append(ids, t.ModuleKey)
	}
	dup("track module", ids)

	ids = ids[:0]
	for _, ex := range p.Exercises {
		ids = append(ids, ex.ID)
	}
	dup("exercise", ids)

	ids = ids[:0]
	for _, c := range p.Flashcards {
		ids = append(ids, c.ID)
	}
	dup("flashcard", ids)

	ids = ids[:0]
	for _, m := range p.Modules {
		ids = append(ids, m.Key)
	}
	dup("script module", ids)

	return errors.Join(errs...)
}
