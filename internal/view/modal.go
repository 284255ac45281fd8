package view

import (
	"github.com/nfrund/alphaprime/internal/domain"
	"github.com/nfrund/alphaprime/internal/enrollment"
)

// Modal is what the page-level modal host shows. At most one modal is open.
// The set of variants is closed.
type Modal interface {
	modal()
}

// NoModal means the host is empty.
type NoModal struct{}

// EnrollModal hosts an enrollment form.
type EnrollModal struct {
	Form enrollment.View
}

// RegisterModal hosts a registration form.
type RegisterModal struct {
	Form enrollment.View
}

// BlogModal shows one post in full.
type BlogModal struct {
	Post domain.BlogPost
}

func (NoModal) modal()       {}
func (EnrollModal) modal()   {}
func (RegisterModal) modal() {}
func (BlogModal) modal()     {}

// FormModal returns the variant hosting v, or NoModal once the form reached
// a terminal state.
func FormModal(v enrollment.View) Modal {
	if v.State.Terminal() {
		return NoModal{}
	}
	if v.Kind == enrollment.KindRegister {
		return RegisterModal{Form: v}
	}
	return EnrollModal{Form: v}
}
