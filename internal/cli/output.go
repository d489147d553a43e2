package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelsheet/pkg/pipeline"
	"github.com/matzehuels/labelsheet/pkg/storage"
)

// outputPlan says where each artifact of a run is written.
type outputPlan struct {
	bucket string            // non-empty for s3:// outputs
	dir    string            // local directory otherwise
	keys   map[string]string // format -> key in bucket or dir
}

// planOutputs maps --output to one key per format.
//
// An empty output writes base.<format> to the working directory. A
// directory (existing, or spelled with a trailing separator) receives
// base.<format>. A single format with an explicit extension is written
// as-is; otherwise a known format extension is stripped and every format
// gets its own extension. s3://bucket/key follows the same rules on the key.
func planOutputs(output, base string, formats []string) (outputPlan, error) {
	plan := outputPlan{keys: make(map[string]string, len(formats))}

	var name string
	if storage.IsS3(output) {
		t, err := storage.ParseTarget(output)
		if err != nil {
			return plan, err
		}
		plan.bucket = t.Bucket
		if t.Key == "" || strings.HasSuffix(t.Key, "/") {
			name = storage.JoinKey(t.Key, base)
		} else {
			name = t.Key
		}
	} else {
		switch {
		case output == "":
			plan.dir, name = ".", base
		case strings.HasSuffix(output, string(os.PathSeparator)) || strings.HasSuffix(output, "/") || isDir(output):
			plan.dir, name = output, base
		default:
			plan.dir, name = filepath.Dir(output), filepath.Base(output)
		}
	}

	if len(formats) == 1 && name != base && extOf(name) != "" {
		plan.keys[formats[0]] = name
		return plan, nil
	}
	stem := name
	if ext := extOf(name); pipeline.ValidFormats[ext] {
		stem = strings.TrimSuffix(name, "."+ext)
	}
	for _, f := range formats {
		plan.keys[f] = stem + "." + f
	}
	return plan, nil
}

// extOf returns the lower-cased extension of the last path element,
// without the dot.
func extOf(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// store opens the storage backend for the plan.
func (p outputPlan) store(ctx context.Context, logger *log.Logger) (storage.Store, error) {
	if p.bucket == "" {
		return storage.NewFileStore(p.dir), nil
	}
	endpoint := os.Getenv(envS3Endpoint)
	s3, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:       p.bucket,
		Region:       os.Getenv("AWS_REGION"),
		Endpoint:     endpoint,
		UsePathStyle: endpoint != "",
	}, storage.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return s3, nil
}
