package manifest

import (
	"fmt"

	"github.com/JonMunkholm/acparts/internal/core"
	"github.com/spf13/viper"
)

// fileDocument is the layout of a manifest file:
//
//	parts:
//	  - description: Aft pintle sin
//	    required: 2
type fileDocument struct {
	Parts []core.RequiredPart `mapstructure:"parts"`
}

// FromFile reads parts from a YAML, JSON or TOML file. The format follows
// the file extension.
func FromFile(path string) ([]core.RequiredPart, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no manifest path", core.ErrInvalidManifest)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var doc fileDocument
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", core.ErrInvalidManifest, path, err)
	}
	return doc.Parts, nil
}
