package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// HomeDir holds the configuration file and the logs.
var HomeDir = func() string {
	dir, err := homedir.Dir()
	if err != nil {
		log.Fatalf("couldn't get user home directory: %s", err)
	}
	return filepath.Join(dir, ".gometastore")
}()

func DefaultPath() string {
	return filepath.Join(HomeDir, "config.yml")
}

// ReadConfig reads the YAML configuration file at path.
// A missing file is not an error, it yields an empty configuration so that every getter falls back to its default.
func ReadConfig(path string) (map[string]interface{}, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't expand path")
	}

	f, err := os.Open(expanded)
	if os.IsNotExist(err) {
		return map[string]interface{}{}, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	var config map[string]interface{}
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		if err == io.EOF {
			return map[string]interface{}{}, nil
		}
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}
	if config == nil {
		config = map[string]interface{}{}
	}
	cleanupMaps(config)

	return config, nil
}

// Nested maps may still come out as map[interface{}]interface{} when keys aren't strings.
// cleanupMaps will change them to map[string]interface{}.
func cleanupMaps(config map[string]interface{}) {
	for k, v := range config {
		config[k] = cleanupMapsRecursive(v)
	}
}

func cleanupMapsRecursive(config interface{}) interface{} {
	switch config := config.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{})
		for k, v := range config {
			out[fmt.Sprintf("%v", k)] = cleanupMapsRecursive(v)
		}
		return out
	case map[string]interface{}:
		for k, v := range config {
			config[k] = cleanupMapsRecursive(v)
		}
	case []interface{}:
		for i := range config {
			config[i] = cleanupMapsRecursive(config[i])
		}
	}

	return config
}
