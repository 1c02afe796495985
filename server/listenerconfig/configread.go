package listenerconfig

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

// ReadYAML decodes YAML from reader into c, leaving fields absent from the
// document untouched.
func ReadYAML(reader io.Reader, c *Config) error {
	decoder := yaml.NewDecoder(reader)

	if err := decoder.Decode(c); err != nil && err != io.EOF {
		return errors.Annotatef(err, "decode yaml config")
	}

	return nil
}

// ReadFile opens filename and decodes it into c via ReadYAML.
func ReadFile(filename string, c *Config) error {
	f, err := os.Open(filename)
	if err != nil {
		return errors.Annotatef(err, "open config file: %s", filename)
	}

	defer f.Close()

	return errors.Annotatef(ReadYAML(f, c), "read config file: %s", filename)
}

// ReadEnv overlays environment variables prefixed with prefix onto c.
// Recognised suffixes: PLI_INTERVAL (duration, e.g. "3s"), EVENTS_BUFFER_SIZE
// (int), LOG (comma-separated namespace list).
func ReadEnv(prefix string, c *Config) error {
	if v := os.Getenv(prefix + "PLI_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Annotatef(err, "parse %sPLI_INTERVAL", prefix)
		}

		c.PLIInterval = d
	}

	if v := os.Getenv(prefix + "EVENTS_BUFFER_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Annotatef(err, "parse %sEVENTS_BUFFER_SIZE", prefix)
		}

		c.EventsBufferSize = n
	}

	if v := os.Getenv(prefix + "LOG"); v != "" {
		c.Log = strings.Split(v, ",")
	}

	return nil
}

// Read builds a Config starting from Default, layering any YAML files (in
// order) and then prefix-scoped environment variables on top.
func Read(prefix string, filenames []string) (Config, error) {
	c := Default()

	for _, filename := range filenames {
		if err := ReadFile(filename, &c); err != nil {
			return c, errors.Trace(err)
		}
	}

	if err := ReadEnv(prefix, &c); err != nil {
		return c, errors.Trace(err)
	}

	return c, nil
}
