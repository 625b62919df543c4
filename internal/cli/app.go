// Package cli implements the ncrm command line client.
package cli

import (
	"io"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/zatekoja/ncrm/internal/adapters/filestore"
	"github.com/zatekoja/ncrm/internal/application/services"
)

// App is bound into every command's Run method.
type App struct {
	Directory *services.DirectoryService
	Records   *services.RecordService
	Fs        afero.Fs
	Out       io.Writer
}

// NewApp wires the services over the two documents on fs.
func NewApp(fs afero.Fs, hospitalPath, notesPath string, out io.Writer) *App {
	hospitals := filestore.NewHospitalAdapter(fs, hospitalPath)
	records := filestore.NewDoctorRecordAdapter(fs, notesPath)
	lock := services.NewStoreLock()
	return &App{
		Directory: services.NewDirectoryService(hospitals, records, lock),
		Records:   services.NewRecordService(hospitals, records, lock),
		Fs:        fs,
		Out:       out,
	}
}

// CLI is the root command.
type CLI struct {
	DataDir string `help:"Directory holding the JSON documents. Defaults to DATA_DIR." name:"data-dir" short:"d"`
	Verbose bool   `help:"Enable debug logging." short:"v"`

	Tree           *TreeCommand           `cmd:"tree" help:"Print every referral tree."`
	Search         *SearchCommand         `cmd:"search" help:"Print the trees matching a query."`
	Doctors        *DoctorsCommand        `cmd:"doctors" help:"List doctors as 'Name - Role [Hospital]'."`
	AddHospital    *AddHospitalCommand    `cmd:"add-hospital" help:"Add an empty hospital."`
	AddDoctor      *AddDoctorCommand      `cmd:"add-doctor" help:"Add a doctor to a hospital, creating the hospital if needed."`
	Refer          *ReferCommand          `cmd:"refer" help:"Add a doctor referred by an existing doctor."`
	RenameHospital *RenameHospitalCommand `cmd:"rename-hospital" help:"Rename a hospital and move its records."`
	RenameDoctor   *RenameDoctorCommand   `cmd:"rename-doctor" help:"Rename a doctor and move its record."`
	Notes          *NotesCommand          `cmd:"notes" help:"Show a doctor's phones and notes."`
	AddNote        *AddNoteCommand        `cmd:"add-note" help:"Append a note to a doctor's record."`
	EditNote       *EditNoteCommand       `cmd:"edit-note" help:"Replace a note by index."`
	SetPhones      *SetPhonesCommand      `cmd:"set-phones" help:"Replace a doctor's phone numbers."`
	Import         *ImportCommand         `cmd:"import" help:"Replace both documents with the given files."`
}

// New builds the kong parser for cli.
func New(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name("ncrm"),
		kong.Description("Hospital, doctor and referral directory"),
		kong.UsageOnError(),
	}, options...)...)
}
