package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
subjects:
  - name: Physics
    chapters:
      - {code: PHY01, name: Mechanics, level: 3}
      - {code: PHY02, name: Thermodynamics, level: 2}
      - {code: PHY03, name: Optics, level: 1}
  - name: Chemistry
    chapters:
      - {code: CHE01, name: Atomic Structure, level: 2}
      - {code: CHE02, name: Bonding, level: 1}
`

// resetFlags restores every flag to its default. Cobra commands are package
// globals, so values from a previous run would otherwise leak.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "examdraft")
	assert.Contains(t, out, "v1.0.0")
}

func TestCatalogCheckAndList(t *testing.T) {
	cat := writeFile(t, "catalog.yaml", testCatalog)

	out, err := run(t, "catalog", "check", cat)
	require.NoError(t, err)
	assert.Contains(t, out, "2 subject(s), 5 chapter(s)")

	out, err = run(t, "catalog", "list", cat, "--subject", "chemistry")
	require.NoError(t, err)
	assert.Contains(t, out, "CHE02")
	assert.NotContains(t, out, "PHY01")
}

func TestCatalogCheck_Invalid(t *testing.T) {
	cat := writeFile(t, "catalog.yaml", `
subjects:
  - name: Physics
    chapters:
      - {code: PHY01, name: Mechanics, level: 0}
`)
	_, err := run(t, "catalog", "check", cat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level must be >= 1")
}

func TestGenerate_JSON(t *testing.T) {
	cat := writeFile(t, "catalog.yaml", testCatalog)

	out, err := run(t, "generate", "--catalog", cat, "--subject", "Physics", "--seed", "7", "--json")
	require.NoError(t, err)

	var table quota.Table
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	require.Len(t, table.Rows, 3)
	one, two := table.Sums()
	assert.Equal(t, quota.DivisionOneTotal, one)
	assert.Equal(t, quota.DivisionTwoTotal, two)
	assert.True(t, quota.Validate(table).Valid)
}

func TestGenerate_Seeded(t *testing.T) {
	cat := writeFile(t, "catalog.yaml", testCatalog)

	a, err := run(t, "generate", "--catalog", cat, "--subject", "Physics", "--seed", "42", "--json")
	require.NoError(t, err)
	b, err := run(t, "generate", "--catalog", cat, "--subject", "Physics", "--seed", "42", "--json")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_ZeroSeed(t *testing.T) {
	cat := writeFile(t, "catalog.yaml", testCatalog)

	a, err := run(t, "generate", "--catalog", cat, "--subject", "Physics", "--seed", "0", "--json")
	require.NoError(t, err)
	b, err := run(t, "generate", "--catalog", cat, "--subject", "Physics", "--seed", "0", "--json")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_BadConfig(t *testing.T) {
	cat := writeFile(t, "catalog.yaml", testCatalog)

	_, err := run(t, "generate", "--catalog", cat, "--subject", "Physics", "--buffer", "nope")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cat := writeFile(t, "catalog.yaml", testCatalog)
	out, err := run(t, "generate", "--catalog", cat, "--subject", "Physics", "--seed", "3", "--json")
	require.NoError(t, err)

	good := writeFile(t, "table.json", out)
	out, err = run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "table is valid")

	var table quota.Table
	require.NoError(t, json.Unmarshal([]byte(readFile(t, good)), &table))
	table.Rows[0].DivisionOne++
	data, err := json.Marshal(table)
	require.NoError(t, err)
	bad := writeFile(t, "bad.json", string(data))

	out, err = run(t, "validate", bad)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "Division 1 total must be 20, got 21")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDraftLifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "examdraft.db")
	cat := writeFile(t, "catalog.yaml", testCatalog)

	out, err := run(t, "--db", db, "draft", "new", "MOCK-1", "--description", "first mock")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved MOCK-1 (revision 1)")

	out, err = run(t, "--db", db, "section", "add", "MOCK-1", "--catalog", cat, "--subject", "Physics", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "table is valid")
	assert.Contains(t, out, "revision 2")

	out, err = run(t, "--db", db, "section", "edit", "MOCK-1", "physics", "--chapter", "PHY01", "--field", "d1", "--value", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "error(s)")

	out, err = run(t, "--db", db, "section", "generate", "MOCK-1", "Physics")
	require.NoError(t, err)
	assert.Contains(t, out, "table is valid")

	out, err = run(t, "--db", db, "draft", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "MOCK-1")
	assert.Contains(t, out, "1 draft(s)")

	out, err = run(t, "--db", db, "draft", "history", "MOCK-1")
	require.NoError(t, err)
	assert.Contains(t, out, "#4")
	assert.Contains(t, out, "#1")

	out, err = run(t, "--db", db, "draft", "history", "MOCK-1", "--prune", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "#4")
	assert.NotContains(t, out, "#1 ")

	out, err = run(t, "--db", db, "draft", "delete", "MOCK-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted MOCK-1")

	_, err = run(t, "--db", db, "draft", "show", "MOCK-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSelectAndCheck(t *testing.T) {
	db := filepath.Join(t.TempDir(), "examdraft.db")
	cat := writeFile(t, "catalog.yaml", testCatalog)

	_, err := run(t, "--db", db, "draft", "new", "MOCK-2")
	require.NoError(t, err)
	_, err = run(t, "--db", db, "section", "add", "MOCK-2", "--catalog", cat, "--subject", "Physics", "--seed", "11")
	require.NoError(t, err)

	out, err := run(t, "--db", db, "check", "MOCK-2")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "MOCK-2 is not ready")

	// A numerical question tagged for division 1 is moved to division 2.
	out, err = run(t, "--db", db, "select", "add", "MOCK-2", "Physics",
		"--id", "q-extra", "--chapter", "PHY01", "--difficulty", "E", "--format", "numerical", "--division", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "moved to division 2")

	out, err = run(t, "--db", db, "select", "remove", "MOCK-2", "Physics", "q-extra", "q-missing")
	require.NoError(t, err)
	assert.Contains(t, out, "q-missing was not selected")

	table := sectionTable(t, db, "MOCK-2", "Physics")
	sel := writeFile(t, "selections.yaml", selectionsFor("Physics", table))

	out, err = run(t, "--db", db, "select", "import", "MOCK-2", sel)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 25 question(s) into Physics")

	out, err = run(t, "--db", db, "select", "import", "MOCK-2", sel)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 question(s)")
	assert.Contains(t, out, "25 duplicate(s) skipped")

	out, err = run(t, "--db", db, "check", "MOCK-2")
	require.NoError(t, err)
	assert.Contains(t, out, "selection meets every quota")
	assert.Contains(t, out, "MOCK-2 is ready for export")

	out, err = run(t, "--db", db, "check", "MOCK-2", "--json")
	require.NoError(t, err)
	var reports []sectionReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Verdict.IsValid)
	assert.Equal(t, 25, reports[0].Progress.Total)
}

func TestSelectImport_NoSection(t *testing.T) {
	db := filepath.Join(t.TempDir(), "examdraft.db")
	sel := writeFile(t, "selections.yaml", "questions:\n  - {id: q1, chapter: PHY01, difficulty: E, division: 1}\n")

	_, err := run(t, "--db", db, "select", "import", "MOCK-3", sel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no section given")
}

func TestPostgresNeedsDSN(t *testing.T) {
	t.Setenv("EXAMDRAFT_DB", "")
	_, err := run(t, "--driver", "postgres", "draft", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres driver needs --db")
}

// sectionTable reads a section's table straight from the store.
func sectionTable(t *testing.T, db, code, section string) quota.Table {
	t.Helper()
	st, err := store.Open(store.DriverSQLite, db)
	require.NoError(t, err)
	defer st.Close()

	d, err := st.Drafts().Find(context.Background(), code)
	require.NoError(t, err)
	s, err := d.Section(section)
	require.NoError(t, err)
	return s.Table
}

// selectionsFor writes a selection file that fills every quota in the table
// exactly, handing out each row's difficulty counts in order.
func selectionsFor(section string, table quota.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "section: %s\nquestions:\n", section)
	n := 0
	for _, r := range table.Rows {
		bands := append(append(repeat("E", r.Easy), repeat("M", r.Medium)...), repeat("H", r.Hard)...)
		for i := 0; i < r.Total(); i++ {
			div := 1
			if i >= r.DivisionOne {
				div = 2
			}
			n++
			fmt.Fprintf(&b, "  - {id: q-%03d, chapter: %s, difficulty: %s, division: %d}\n", n, r.Code, bands[i], div)
		}
	}
	return b.String()
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
