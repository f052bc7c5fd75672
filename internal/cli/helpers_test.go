package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/recordq/internal/engine"
	"github.com/roach88/recordq/internal/store"
	"github.com/roach88/recordq/internal/testutil"
)

// cliEnv is an isolated database and config path for one test.
type cliEnv struct {
	dir string
	db  string
	cfg string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	return &cliEnv{
		dir: dir,
		db:  filepath.Join(dir, "recordq.db"),
		cfg: filepath.Join(dir, "missing.yaml"),
	}
}

// run executes the root command and returns stdout.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", e.cfg, "--db", e.db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// seedEmployees inserts the employee fixture directly through the store.
func (e *cliEnv) seedEmployees(t *testing.T) {
	t.Helper()
	st, err := store.Open(e.db)
	require.NoError(t, err)
	defer st.Close()

	eng := engine.New(st)
	for _, rec := range testutil.Employees() {
		_, err := eng.Insert(context.Background(), testutil.EmployeeDataset, rec)
		require.NoError(t, err)
	}
}
