package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/zatekoja/ncrm/internal/application/services"
	"github.com/zatekoja/ncrm/internal/domain/entities"
)

// NoteDateLayout is the day/month/year form notes are dated with.
const NoteDateLayout = "2/1/2006"

// RecordArgs name the record a command works on.
type RecordArgs struct {
	Doctor   string `arg:"" help:"Doctor name."`
	Hospital string `arg:"" help:"Hospital whose tree holds the doctor."`
}

// NotesCommand prints a doctor's phones and notes.
type NotesCommand struct {
	RecordArgs `embed:""`
	Full bool `help:"Print whole note descriptions instead of previews."`
}

func (r *NotesCommand) Run(app *App) error {
	record, err := app.Records.GetRecord(context.Background(), r.Doctor, r.Hospital)
	if err != nil {
		return err
	}
	printRecord(app, record, r.Full)
	return nil
}

// AddNoteCommand appends a dated note to a record.
type AddNoteCommand struct {
	RecordArgs `embed:""`
	Desc string `arg:"" help:"Note text."`
	Date string `help:"Note date, day/month/year. Defaults to today."`
}

func (r *AddNoteCommand) Run(app *App) error {
	date := r.Date
	if date == "" {
		date = time.Now().Format(NoteDateLayout)
	}
	record, err := app.Records.AddNote(context.Background(), r.Doctor, r.Hospital,
		services.NoteInput{Date: date, Desc: r.Desc})
	if err != nil {
		return err
	}
	printRecord(app, record, false)
	return nil
}

// EditNoteCommand replaces one note by index.
type EditNoteCommand struct {
	RecordArgs `embed:""`
	Index int    `arg:"" help:"Index of the note, as shown by notes."`
	Desc  string `arg:"" help:"Replacement text."`
	Date  string `help:"Replacement date, day/month/year." required:""`
}

func (r *EditNoteCommand) Run(app *App) error {
	record, err := app.Records.UpdateNote(context.Background(), r.Doctor, r.Hospital, r.Index,
		services.NoteInput{Date: r.Date, Desc: r.Desc})
	if err != nil {
		return err
	}
	printRecord(app, record, false)
	return nil
}

// SetPhonesCommand replaces a record's phone list.
type SetPhonesCommand struct {
	RecordArgs `embed:""`
	Phones []string `arg:"" optional:"" help:"Phone numbers. None clears the list."`
}

func (r *SetPhonesCommand) Run(app *App) error {
	record, err := app.Records.SetPhones(context.Background(), r.Doctor, r.Hospital, r.Phones)
	if err != nil {
		return err
	}
	printRecord(app, record, false)
	return nil
}

func printRecord(app *App, record *entities.DoctorRecord, full bool) {
	fmt.Fprintf(app.Out, "%s [%s]\n", record.Doctor, record.Hospital)
	fmt.Fprintln(app.Out, "Phones:")
	for _, phone := range record.Phones {
		fmt.Fprintf(app.Out, "  %s\n", phone)
	}
	fmt.Fprintln(app.Out, "Notes:")
	for i, note := range record.Notes {
		desc := note.Preview()
		if full {
			desc = note.Desc
		}
		fmt.Fprintf(app.Out, "  [%d] %s  %s\n", i, note.Date, desc)
	}
}

func readFile(app *App, path string) ([]byte, error) {
	data, err := afero.ReadFile(app.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
