package docindex

import "fmt"

// ConfigError reports a fatal problem with the mapping configuration.
// It is surfaced at startup; no partial configuration is ever accepted.
type ConfigError struct {
	Source string // mapping file path, or a description of the source
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mapping config %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("mapping config %s: %s", e.Source, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NotFoundError reports a query for something the index does not contain.
// It is recoverable and returned to the calling layer.
type NotFoundError struct {
	Kind string // "resource" or "project"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// IOError reports a content read that failed after the file was indexed,
// typically because the filesystem changed since the last scan. It is
// recoverable and returned to the calling layer.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
