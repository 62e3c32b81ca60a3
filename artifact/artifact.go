// Package artifact loads the three pre-fitted artifacts the predictor needs: the regressor,
// the numeric scaler and the categorical encoder.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/aouyang1/go-loanpredictor/models"
	"github.com/aouyang1/go-loanpredictor/preprocess"
)

const (
	DefaultModelFile   = "model_xgb.json"
	DefaultScalerFile  = "scaler.json"
	DefaultEncoderFile = "ohe.json"
)

var (
	ErrMissingArtifact = errors.New("missing artifact")
	ErrCorruptArtifact = errors.New("corrupt artifact")
)

// Paths locates the artifact files. Relative file names are resolved against Dir.
type Paths struct {
	Dir     string
	Model   string
	Scaler  string
	Encoder string
}

// NewDefaultPaths returns the default artifact file names inside dir
func NewDefaultPaths(dir string) Paths {
	return Paths{
		Dir:     dir,
		Model:   DefaultModelFile,
		Scaler:  DefaultScalerFile,
		Encoder: DefaultEncoderFile,
	}
}

func (p Paths) resolve(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Dir, name)
}

func (p Paths) ModelPath() string {
	return p.resolve(p.Model, DefaultModelFile)
}

func (p Paths) ScalerPath() string {
	return p.resolve(p.Scaler, DefaultScalerFile)
}

func (p Paths) EncoderPath() string {
	return p.resolve(p.Encoder, DefaultEncoderFile)
}

// Bundle holds the decoded artifacts. Every field is immutable after loading.
type Bundle struct {
	Regressor *models.TreeEnsemble
	Scaler    *preprocess.StandardScaler
	Encoder   *preprocess.OneHotEncoder
}

// Load reads and decodes all artifacts. Any missing or undecodable file fails the whole load.
func Load(paths Paths) (*Bundle, error) {
	regressor, err := decodeFile(paths.ModelPath(), models.DecodeXGBoost)
	if err != nil {
		return nil, fmt.Errorf("unable to load regressor, %w", err)
	}
	scaler, err := decodeFile(paths.ScalerPath(), preprocess.DecodeStandardScaler)
	if err != nil {
		return nil, fmt.Errorf("unable to load scaler, %w", err)
	}
	encoder, err := decodeFile(paths.EncoderPath(), preprocess.DecodeOneHotEncoder)
	if err != nil {
		return nil, fmt.Errorf("unable to load encoder, %w", err)
	}

	slog.Info("loaded artifacts",
		"model", paths.ModelPath(),
		"trees", len(regressor.Trees()),
		"features", regressor.NumFeatures(),
		"encoder_columns", encoder.Width(),
	)
	return &Bundle{
		Regressor: regressor,
		Scaler:    scaler,
		Encoder:   encoder,
	}, nil
}

func decodeFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zero, fmt.Errorf("%s, %w", path, ErrMissingArtifact)
		}
		return zero, fmt.Errorf("unable to open %s, %w", path, err)
	}
	defer f.Close()

	v, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("%s, %w: %w", path, ErrCorruptArtifact, err)
	}
	return v, nil
}

// Loader loads the artifacts at most once and hands out the same bundle on every call.
type Loader struct {
	paths Paths

	once   sync.Once
	bundle *Bundle
	err    error
}

func NewLoader(paths Paths) *Loader {
	return &Loader{paths: paths}
}

// Load returns the memoized bundle, loading it on the first call
func (l *Loader) Load() (*Bundle, error) {
	l.once.Do(func() {
		l.bundle, l.err = Load(l.paths)
	})
	return l.bundle, l.err
}

// Paths returns the locations the loader reads from
func (l *Loader) Paths() Paths {
	return l.paths
}
