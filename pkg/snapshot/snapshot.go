// Package snapshot compares JSON renderings of values against files in testdata
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// UpdateEnv rewrites every snapshot when set to a non-empty value
const UpdateEnv = "JAPJAP_UPDATE_SNAPSHOTS"

var (
	mu    sync.Mutex
	calls = make(map[string]int)
)

// T is the part of *testing.T a snapshot check uses
type T interface {
	Helper()
	Name() string
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

var _ T = (*testing.T)(nil)

// Validate compares obj with the next snapshot recorded for the running test
// A missing snapshot fails unless UpdateEnv is set, in which case it is written
func Validate(t T, obj interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()

	filename := nextFilename(t.Name())
	actual, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not marshal snapshot: %v", err)
		return false
	}

	if os.Getenv(UpdateEnv) != "" {
		if err := write(filename, actual); err != nil {
			t.Fatalf("could not write snapshot %s: %v", filename, err)
			return false
		}

		return true
	}

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		t.Errorf("snapshot %s does not exist, set %s=1 to write it", filename, UpdateEnv)
		return false
	} else if err != nil {
		t.Fatalf("could not read snapshot %s: %v", filename, err)
		return false
	}

	if !assert.Equal(t, strings.TrimSpace(string(expects)), strings.TrimSpace(string(actual)), msgAndArgs...) {
		t.Logf("snapshot %s, set %s=1 to update", filename, UpdateEnv)
		return false
	}

	return true
}

func nextFilename(testName string) string {
	mu.Lock()
	defer mu.Unlock()

	call := calls[testName]
	calls[testName] = call + 1

	name := strings.NewReplacer("/", "_", " ", "_").Replace(testName)
	return filepath.Join("testdata", "snapshots", fmt.Sprintf("%s-%d.json", name, call))
}

func write(filename string, data []byte) error {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	return os.WriteFile(filename, append(data, '\n'), 0o644)
}
