package logging

import (
	"io"
	"regexp"
	"strings"
)

// RedactingWriter is an io.Writer that redacts sensitive information before
// writing to an underlying writer.
type RedactingWriter struct {
	underlying   io.Writer                 // The underlying writer to write to.
	replacements map[*regexp.Regexp]string // Map of regex patterns to their replacements.
}

// NewRedactingWriter creates a new writer that masks the data path and the
// given secrets (for example the admin password) in everything written.
func NewRedactingWriter(w io.Writer, dataPath string, secrets []string) io.Writer {
	replacements := make(map[*regexp.Regexp]string)

	if dataPath != "" {
		// Quote meta characters in path and handle path separators for different OS
		sanitizedPath := strings.ReplaceAll(regexp.QuoteMeta(dataPath), `\\`, `[/\\]`)
		replacements[regexp.MustCompile(sanitizedPath)] = "[DATA_PATH]"
	}

	for _, secret := range secrets {
		if strings.TrimSpace(secret) == "" {
			continue
		}
		replacements[regexp.MustCompile(regexp.QuoteMeta(secret))] = "[REDACTED]"
	}

	return &RedactingWriter{
		underlying:   w,
		replacements: replacements,
	}
}

// Write redacts the input byte slice and writes it to the underlying writer.
func (rw *RedactingWriter) Write(p []byte) (n int, err error) {
	message := string(p)
	for re, repl := range rw.replacements {
		message = re.ReplaceAllString(message, repl)
	}

	if _, err := rw.underlying.Write([]byte(message)); err != nil {
		return 0, err
	}

	// Report the original length; callers only care that p was consumed.
	return len(p), nil
}
