// Package render prints referral forests as text trees.
package render

import (
	"fmt"
	"io"

	"github.com/ddddddO/gtree"

	"github.com/zatekoja/ncrm/internal/domain/entities"
)

// DoctorText is how a doctor node reads in a rendered tree.
func DoctorText(d *entities.Doctor) string {
	return fmt.Sprintf("%s - %s (%s)", d.Name, d.Role, d.Address)
}

// Forest writes each hospital as its own tree, in order.
func Forest(w io.Writer, hospitals []*entities.Hospital) error {
	for _, h := range hospitals {
		if err := Hospital(w, h); err != nil {
			return err
		}
	}
	return nil
}

// Hospital writes one hospital and its referral tree.
func Hospital(w io.Writer, h *entities.Hospital) error {
	root := gtree.NewRoot(h.Name)
	addDoctors(root, h.Doctors)
	if err := gtree.OutputFromRoot(w, root); err != nil {
		return fmt.Errorf("render %q: %w", h.Name, err)
	}
	return nil
}

func addDoctors(node *gtree.Node, doctors []*entities.Doctor) {
	for _, d := range doctors {
		addDoctors(node.Add(DoctorText(d)), d.ReferredDoctors)
	}
}
