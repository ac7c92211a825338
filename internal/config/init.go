package config

import (
	"bytes"

	"github.com/conneroisu/compgen/internal/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const fileHeader = `# compgen configuration
#
# Every key can be overridden with a COMPGEN_ environment variable,
# e.g. COMPGEN_OUTPUT_DIR=dist or COMPGEN_LOG_LEVEL=debug.
`

// Marshal renders cfg as a commented YAML document.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.WrapConfig(err, "failed to encode configuration")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapConfig(err, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}

// WriteFile writes cfg to filename. An existing file is kept unless force
// is set.
func WriteFile(fs afero.Fs, filename string, cfg *Config, force bool) error {
	if !force {
		exists, err := afero.Exists(fs, filename)
		if err != nil {
			return errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to check configuration file", filename)
		}
		if exists {
			return errors.NewConfigError(errors.ErrCodeConfigInvalid,
				"configuration file "+filename+" already exists (use --force to overwrite)")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, filename, data, 0o644); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to write configuration file", filename)
	}
	return nil
}
