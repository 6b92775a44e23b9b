package cmd

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/recap-build/gometastore/config"
	"github.com/recap-build/gometastore/hms"
	"github.com/recap-build/gometastore/hmsdb"
	"github.com/recap-build/gometastore/metastore"
)

const (
	backendThrift   = "thrift"
	backendPostgres = "postgres"
)

// settings is the configuration file with command line overrides applied.
type settings struct {
	Backend   string
	Thrift    hms.Options
	Postgres  hmsdb.Config
	Metastore metastore.Options
}

func loadSettings(cfg map[string]interface{}, addressOverride, backendOverride string) (*settings, error) {
	var out settings
	var err error

	if out.Backend, err = config.GetString(cfg, "metastore.backend", config.WithDefault(backendThrift)); err != nil {
		return nil, errors.Wrap(err, "couldn't get metastore backend")
	}
	if out.Thrift.Address, err = config.GetString(cfg, "metastore.address", config.WithDefault(hms.DefaultAddress)); err != nil {
		return nil, errors.Wrap(err, "couldn't get metastore address")
	}
	if out.Thrift.Protocol, err = config.GetString(cfg, "metastore.protocol", config.WithDefault("binary")); err != nil {
		return nil, errors.Wrap(err, "couldn't get metastore protocol")
	}
	if out.Thrift.Transport, err = config.GetString(cfg, "metastore.transport", config.WithDefault("buffered")); err != nil {
		return nil, errors.Wrap(err, "couldn't get metastore transport")
	}
	if out.Thrift.Secure, err = config.GetBool(cfg, "metastore.secure", config.WithDefault(false)); err != nil {
		return nil, errors.Wrap(err, "couldn't get metastore secure flag")
	}
	if out.Thrift.InsecureSkipVerify, err = config.GetBool(cfg, "metastore.insecureSkipVerify", config.WithDefault(false)); err != nil {
		return nil, errors.Wrap(err, "couldn't get metastore insecureSkipVerify flag")
	}
	if out.Thrift.Timeout, err = config.GetDuration(cfg, "metastore.timeout", config.WithDefault(hms.DefaultTimeout)); err != nil {
		return nil, errors.Wrap(err, "couldn't get metastore timeout")
	}

	if out.Postgres.Host, err = config.GetString(cfg, "postgres.host", config.WithDefault("localhost")); err != nil {
		return nil, errors.Wrap(err, "couldn't get postgres host")
	}
	if out.Postgres.Port, err = config.GetInt(cfg, "postgres.port", config.WithDefault(5432)); err != nil {
		return nil, errors.Wrap(err, "couldn't get postgres port")
	}
	if out.Postgres.User, err = config.GetString(cfg, "postgres.user", config.WithDefault("hive")); err != nil {
		return nil, errors.Wrap(err, "couldn't get postgres user")
	}
	if out.Postgres.Password, err = config.GetString(cfg, "postgres.password", config.WithDefault("")); err != nil {
		return nil, errors.Wrap(err, "couldn't get postgres password")
	}
	if out.Postgres.Database, err = config.GetString(cfg, "postgres.database", config.WithDefault("metastore")); err != nil {
		return nil, errors.Wrap(err, "couldn't get postgres database")
	}

	params, err := config.GetMap(cfg, "postgres.params", config.WithDefault(map[string]interface{}{}))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't get postgres runtime parameters")
	}
	out.Postgres.RuntimeParams = make(map[string]string, len(params))
	for name, value := range params {
		out.Postgres.RuntimeParams[name] = fmt.Sprint(value)
	}

	if out.Metastore.MaxTypeDepth, out.Metastore.MaxTypeLength, err = loadParserLimits(cfg); err != nil {
		return nil, err
	}
	typeCacheSize, err := config.GetInt(cfg, "cache.typeCacheSize", config.WithDefault(10000))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't get type cache size")
	}
	out.Metastore.TypeCacheSize = int64(typeCacheSize)

	if addressOverride != "" {
		out.Thrift.Address = addressOverride
	}
	if backendOverride != "" {
		out.Backend = backendOverride
	}
	if out.Backend != backendThrift && out.Backend != backendPostgres {
		return nil, errors.Errorf("unknown backend '%s', expected %s or %s", out.Backend, backendThrift, backendPostgres)
	}

	return &out, nil
}

// loadParserLimits reads the type parser limits, which the offline commands use as well.
func loadParserLimits(cfg map[string]interface{}) (maxDepth, maxLength int, err error) {
	if maxDepth, err = config.GetInt(cfg, "parser.maxDepth", config.WithDefault(0)); err != nil {
		return 0, 0, errors.Wrap(err, "couldn't get parser max depth")
	}
	if maxLength, err = config.GetInt(cfg, "parser.maxLength", config.WithDefault(0)); err != nil {
		return 0, 0, errors.Wrap(err, "couldn't get parser max length")
	}
	return maxDepth, maxLength, nil
}
