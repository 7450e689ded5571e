package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/turing/cas"
	"github.com/timewinder-dev/turing/model"
)

// TestMachineSpecs runs every description in testdata and checks its
// expectations.
func TestMachineSpecs(t *testing.T) {
	testdataDir := filepath.Join("..", "testdata")

	err := filepath.Walk(testdataDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		ext := filepath.Ext(path)
		if info.IsDir() || (ext != ".toml" && ext != ".star") {
			return nil
		}

		relPath, _ := filepath.Rel(testdataDir, path)
		testName := strings.TrimSuffix(relPath, ext)
		testName = strings.ReplaceAll(testName, string(filepath.Separator), "/")

		t.Run(testName, func(t *testing.T) {
			spec, err := model.LoadSpecFromFile(path)
			require.NoError(t, err, "Failed to load spec file")

			// The descriptions tick slowly for the CLI
			spec.Machine.Interval = "1ms"
			m, err := spec.BuildMachine()
			require.NoError(t, err, "Failed to build machine")
			defer m.Reset()

			casStore := cas.NewLRUCache(cas.NewMemoryCAS(), 10000)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			result, err := model.RunToEnd(ctx, m, model.RunOptions{
				MaxSteps:    1000,
				DetectLoops: true,
				CAS:         casStore,
			})
			require.NoError(t, err, "Error during run")
			require.NotNil(t, result, "Result should not be nil")

			t.Logf("%s after %d macro-steps, %d events, tape %q",
				result.Outcome, result.Steps, result.Events, result.Tape.Trimmed())
			require.NoError(t, spec.Check(result))
		})
		return nil
	})
	require.NoError(t, err)
}
