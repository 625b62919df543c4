package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zatekoja/ncrm/pkg/errors"
)

type harness struct {
	fs  afero.Fs
	out *bytes.Buffer
	app *App
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fs := afero.NewMemMapFs()
	out := &bytes.Buffer{}
	return &harness{
		fs:  fs,
		out: out,
		app: NewApp(fs, "/data/hospital_data.json", "/data/doctor_notes.json", out),
	}
}

// run parses args and executes the selected command, returning its output.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	h.out.Reset()

	command := new(CLI)
	parser, err := New(command, kong.Writers(h.out, h.out), kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	if err != nil {
		return h.out.String(), err
	}
	err = ctx.Run(h.app)
	return h.out.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func TestDirectoryCommands(t *testing.T) {
	h := newHarness(t)

	h.mustRun(t, "add-doctor", "General", "Dr. Adeyemi", "--role", "Cardiologist", "--address", "Ikeja")
	out := h.mustRun(t, "refer", "Dr. Adeyemi - Cardiologist [General]", "Dr. Bello", "--role", "Resident", "--address", "Yaba")
	assert.Contains(t, out, "Dr. Bello - Resident [General]")

	out = h.mustRun(t, "tree")
	assert.Contains(t, out, "General")
	assert.Contains(t, out, "Dr. Bello - Resident (Yaba)")

	out = h.mustRun(t, "doctors")
	assert.Equal(t, "Dr. Adeyemi - Cardiologist [General]\nDr. Bello - Resident [General]\n", out)

	h.mustRun(t, "rename-doctor", "General", "Dr. Bello", "Dr. Bello-Okafor")
	h.mustRun(t, "rename-hospital", "General", "Lagos General")

	out = h.mustRun(t, "search", "okafor")
	assert.Contains(t, out, "Lagos General")
	assert.Contains(t, out, "Dr. Bello-Okafor")

	out = h.mustRun(t, "search", "nothing-here")
	assert.Contains(t, out, "no match")
}

func TestDirectoryCommandErrors(t *testing.T) {
	h := newHarness(t)

	h.mustRun(t, "add-hospital", "General")
	_, err := h.run(t, "add-hospital", "general")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	_, err = h.run(t, "add-doctor", "General", "Dr. Adeyemi", "--role", "GP")
	assert.Error(t, err, "address flag is required")

	_, err = h.run(t, "refer", "Dr. Nobody", "Dr. Bello", "--role", "GP", "--address", "Yaba")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestRecordCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add-doctor", "General", "Dr. Adeyemi", "--role", "Cardiologist", "--address", "Ikeja")

	long := strings.Repeat("n", 45)
	h.mustRun(t, "add-note", "Dr. Adeyemi", "General", long, "--date", "1/2/2025")
	h.mustRun(t, "add-note", "dr. adeyemi", "general", "second", "--date", "2/2/2025")
	h.mustRun(t, "edit-note", "Dr. Adeyemi", "General", "1", "edited", "--date", "3/2/2025")
	h.mustRun(t, "set-phones", "Dr. Adeyemi", "General", "0801", " ", "0802")

	out := h.mustRun(t, "notes", "Dr. Adeyemi", "General")
	assert.Equal(t, "Dr. Adeyemi [General]\n"+
		"Phones:\n  0801\n  0802\n"+
		"Notes:\n"+
		"  [0] 1/2/2025  "+strings.Repeat("n", 40)+"...\n"+
		"  [1] 3/2/2025  edited\n", out)

	out = h.mustRun(t, "notes", "Dr. Adeyemi", "General", "--full")
	assert.Contains(t, out, long+"\n")

	_, err := h.run(t, "edit-note", "Dr. Adeyemi", "General", "7", "x", "--date", "1/1/2025")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	out = h.mustRun(t, "set-phones", "Dr. Adeyemi", "General")
	assert.Contains(t, out, "Phones:\nNotes:")
}

func TestAddNoteDefaultsDate(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add-doctor", "General", "Dr. Adeyemi", "--role", "Cardiologist", "--address", "Ikeja")

	out := h.mustRun(t, "add-note", "Dr. Adeyemi", "General", "no date given")

	assert.Regexp(t, `\[0\] \d{1,2}/\d{1,2}/\d{4}  no date given`, out)
}

func TestImportCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.fs, "/in/hospitals.json",
		[]byte(`[{"name":"Imported","doctors":[{"name":"A","role":"GP","address":"X"}]}]`), 0o644))
	require.NoError(t, afero.WriteFile(h.fs, "/in/notes.json",
		[]byte(`[{"doctor":"A","hospital":"Imported","phones":["1"],"notes":[]}]`), 0o644))

	h.mustRun(t, "import", "/in/hospitals.json", "/in/notes.json")

	out := h.mustRun(t, "notes", "A", "Imported")
	assert.Contains(t, out, "Phones:\n  1\n")

	_, err := h.run(t, "import", "/in/hospitals.json", "/in/missing.json")
	assert.Error(t, err)
}
