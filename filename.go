package tfrecord

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// splitPrefix splits a path prefix like "runs/exp1/events" into its
// directory ("runs/exp1") and file-name prefix ("events"), the way
// TensorBoard event writers do before deriving the final .tfevents
// filename. A prefix ending in the path separator (e.g. "runs/exp1/") is
// treated as a bare directory with an empty file-name prefix, matching
// every regular file in it; a prefix with no directory separator at all
// yields a directory of ".".
func splitPrefix(prefix string) (dir, fileNamePrefix string, err error) {
	if prefix == "" {
		return "", "", &ErrInvalidArgument{Description: "file name prefix must not be empty"}
	}
	if strings.HasSuffix(prefix, string(filepath.Separator)) {
		return prefix, "", nil
	}
	dir = filepath.Dir(prefix)
	fileNamePrefix = filepath.Base(prefix)
	return dir, fileNamePrefix, nil
}

// tfStylePath builds a TensorBoard-compatible event file path from a
// prefix and optional suffix:
//
//	{dir}/{fileNamePrefix}.out.tfevents.{timestampMicros}.{hostname}{suffix}
func tfStylePath(prefix, suffix string) (string, error) {
	dir, fileNamePrefix, err := splitPrefix(prefix)
	if err != nil {
		return "", err
	}
	hostname, err := os.Hostname()
	if err != nil {
		return "", &ErrIO{Err: err}
	}
	name := fmt.Sprintf("%s.out.tfevents.%d.%s%s", fileNamePrefix, time.Now().UnixMicro(), hostname, suffix)
	return filepath.Join(dir, name), nil
}
