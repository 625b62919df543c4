package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zatekoja/ncrm/internal/application/services"
	"github.com/zatekoja/ncrm/internal/render"
)

// TreeCommand prints the whole referral forest.
type TreeCommand struct {
	JSON bool `help:"Print the documents' JSON instead of a tree." name:"json"`
}

func (r *TreeCommand) Run(app *App) error {
	hospitals, err := app.Directory.ListHospitals(context.Background())
	if err != nil {
		return err
	}
	if r.JSON {
		return printJSON(app, hospitals)
	}
	return render.Forest(app.Out, hospitals)
}

// SearchCommand prints the hospitals and doctors matching a query.
type SearchCommand struct {
	Query string `arg:"" help:"Text to look for in hospital names and doctor name, role or address."`
	JSON  bool   `help:"Print JSON instead of a tree." name:"json"`
}

func (r *SearchCommand) Run(app *App) error {
	hospitals, err := app.Directory.Search(context.Background(), r.Query)
	if err != nil {
		return err
	}
	if len(hospitals) == 0 {
		fmt.Fprintf(app.Out, "no match for %q\n", r.Query)
		return nil
	}
	if r.JSON {
		return printJSON(app, hospitals)
	}
	return render.Forest(app.Out, hospitals)
}

// DoctorsCommand lists every doctor with its hospital.
type DoctorsCommand struct{}

func (r *DoctorsCommand) Run(app *App) error {
	suggestions, err := app.Directory.Suggestions(context.Background())
	if err != nil {
		return err
	}
	for _, label := range suggestions.DoctorLabels {
		fmt.Fprintln(app.Out, label)
	}
	return nil
}

// AddHospitalCommand creates an empty hospital.
type AddHospitalCommand struct {
	Name string `arg:"" help:"Hospital name."`
}

func (r *AddHospitalCommand) Run(app *App) error {
	h, err := app.Directory.AddHospital(context.Background(), r.Name)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "added hospital %s\n", h.Name)
	return nil
}

// DoctorFlags are the fields entered for a new doctor.
type DoctorFlags struct {
	Role    string `help:"Doctor's role or specialty." required:""`
	Address string `help:"Doctor's address." required:""`
}

// AddDoctorCommand adds a root doctor to a hospital.
type AddDoctorCommand struct {
	Hospital string `arg:"" help:"Hospital the doctor works at."`
	Name     string `arg:"" help:"Doctor name."`
	DoctorFlags `embed:""`
}

func (r *AddDoctorCommand) Run(app *App) error {
	d, err := app.Directory.AddDoctor(context.Background(), r.Hospital, services.DoctorInput{
		Name:    r.Name,
		Role:    r.Role,
		Address: r.Address,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "added %s to %s\n", d.Name, r.Hospital)
	return nil
}

// ReferCommand adds a doctor referred by an existing one.
type ReferCommand struct {
	Referrer string `arg:"" help:"Referring doctor, by name or 'Name - Role [Hospital]' label."`
	Name     string `arg:"" help:"Name of the referred doctor."`
	DoctorFlags `embed:""`
}

func (r *ReferCommand) Run(app *App) error {
	details, err := app.Directory.AddReferral(context.Background(), r.Referrer, services.DoctorInput{
		Name:    r.Name,
		Role:    r.Role,
		Address: r.Address,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "added %s under %s\n", details.Doctor.Label(details.Hospital), r.Referrer)
	return nil
}

// RenameHospitalCommand renames a hospital and its records.
type RenameHospitalCommand struct {
	Old string `arg:"" help:"Current hospital name."`
	New string `arg:"" help:"New hospital name."`
}

func (r *RenameHospitalCommand) Run(app *App) error {
	if err := app.Directory.RenameHospital(context.Background(), r.Old, r.New); err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "renamed %s to %s\n", r.Old, r.New)
	return nil
}

// RenameDoctorCommand renames a doctor and moves its record.
type RenameDoctorCommand struct {
	Hospital string `arg:"" help:"Hospital whose tree holds the doctor."`
	Old      string `arg:"" help:"Current doctor name."`
	New      string `arg:"" help:"New doctor name."`
}

func (r *RenameDoctorCommand) Run(app *App) error {
	if err := app.Directory.RenameDoctor(context.Background(), r.Hospital, r.Old, r.New); err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "renamed %s to %s\n", r.Old, r.New)
	return nil
}

// ImportCommand replaces both data files from JSON files on disk.
type ImportCommand struct {
	HospitalFile string `arg:"" help:"Hospital tree document to import." type:"path"`
	NotesFile    string `arg:"" help:"Doctor notes document to import." type:"path"`
}

func (r *ImportCommand) Run(app *App) error {
	hospitalJSON, err := readFile(app, r.HospitalFile)
	if err != nil {
		return err
	}
	notesJSON, err := readFile(app, r.NotesFile)
	if err != nil {
		return err
	}
	if err := app.Directory.Import(context.Background(), hospitalJSON, notesJSON); err != nil {
		return err
	}
	fmt.Fprintln(app.Out, "imported hospital and notes documents")
	return nil
}

func printJSON(app *App, v interface{}) error {
	encoder := json.NewEncoder(app.Out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
