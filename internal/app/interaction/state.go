// internal/app/interaction/state.go

// Package interaction owns the per-visitor state of the predictor page: the
// current selection with its cascading reset, the interaction phase, the
// display theme and the last prediction.
package interaction

import (
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/matpredict/internal/app/catalog"
	"github.com/dalemusser/matpredict/internal/domain/models"
)

// Phase is the position of a visitor in the select → predict cycle.
type Phase string

const (
	Idle       Phase = "idle"       // nothing chosen yet
	Selecting  Phase = "selecting"  // one or two fields chosen
	Ready      Phase = "ready"      // all three chosen, no result
	Predicting Phase = "predicting" // prediction delay running
	Resolved   Phase = "resolved"   // result available
	Failed     Phase = "failed"     // last prediction failed
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Selection fields, as named in forms and query strings.
const (
	FieldFormula       = "formula"
	FieldCrystalSystem = "crystal_system"
	FieldSpaceGroup    = "space_group"
)

// FailureMessage is what a visitor sees when a prediction cannot be produced.
const FailureMessage = "Failed to fetch prediction. Please try again."

var (
	// ErrBusy is returned when the state is changed during a prediction.
	ErrBusy = errors.New("a prediction is already in progress")
	// ErrNotReady is returned when predicting without a complete selection.
	ErrNotReady = errors.New("formula, crystal system and space group must all be selected")
	// ErrUnknownOption is returned when a value is not among the offered options.
	ErrUnknownOption = errors.New("value is not an available option")
	// ErrUnknownField is returned for a field name other than the three above.
	ErrUnknownField = errors.New("unknown selection field")
	// errNotPredicting guards Resolve and Fail.
	errNotPredicting = errors.New("no prediction in progress")
)

// Selection is the visitor's current choice. Empty means unselected.
type Selection struct {
	Formula       string `json:"formula"`
	CrystalSystem string `json:"crystal_system"`
	SpaceGroup    string `json:"space_group"`
}

// Key returns the selection as a catalog key.
func (s Selection) Key() models.MaterialKey {
	return models.MaterialKey{Formula: s.Formula, CrystalSystem: s.CrystalSystem, SpaceGroup: s.SpaceGroup}
}

// Complete reports whether all three fields are chosen.
func (s Selection) Complete() bool { return s.Key().Complete() }

// Empty reports whether no field is chosen.
func (s Selection) Empty() bool {
	return s.Formula == "" && s.CrystalSystem == "" && s.SpaceGroup == ""
}

// Result is one successful prediction.
type Result struct {
	ID        string                `json:"id"`
	Actual    models.MaterialRecord `json:"actual"`
	Predicted models.MaterialRecord `json:"predicted"`
	At        time.Time             `json:"at"`
}

// View is a point-in-time copy of a State for rendering.
type View struct {
	Selection      Selection
	Phase          Phase
	Theme          string
	Formulas       []string
	CrystalSystems []string
	SpaceGroups    []string
	Result         *Result
	Error          string
	CanPredict     bool
}

// State is the interaction state of one visitor. All methods are safe for
// concurrent use; the mutex serializes events from the same visitor.
type State struct {
	mu sync.Mutex

	cat    *catalog.Catalog
	sel    Selection
	phase  Phase
	theme  string
	result *Result
	errMsg string
}

// New returns an Idle state with an empty selection and the light theme.
func New(cat *catalog.Catalog) *State {
	return &State{cat: cat, phase: Idle, theme: ThemeLight}
}

// Set changes one field by name. See SetFormula.
func (s *State) Set(field, value string) error {
	switch field {
	case FieldFormula:
		return s.SetFormula(value)
	case FieldCrystalSystem:
		return s.SetCrystalSystem(value)
	case FieldSpaceGroup:
		return s.SetSpaceGroup(value)
	}
	return ErrUnknownField
}

// SetFormula chooses a formula ("" unselects) and applies the cascading
// reset. It fails with ErrBusy while predicting and with ErrUnknownOption
// for a formula the catalog does not offer.
func (s *State) SetFormula(v string) error {
	return s.update(func() error {
		if v != "" && !contains(s.cat.Formulas(), v) {
			return ErrUnknownOption
		}
		s.sel.Formula = v
		return nil
	})
}

// SetCrystalSystem chooses a crystal system among those offered for the
// current formula.
func (s *State) SetCrystalSystem(v string) error {
	return s.update(func() error {
		if v != "" && !s.cat.FilterOptions(s.sel.Formula, "").HasCrystalSystem(v) {
			return ErrUnknownOption
		}
		s.sel.CrystalSystem = v
		return nil
	})
}

// SetSpaceGroup chooses a space group among those offered for the current
// formula and crystal system.
func (s *State) SetSpaceGroup(v string) error {
	return s.update(func() error {
		if v != "" && !s.cat.FilterOptions(s.sel.Formula, s.sel.CrystalSystem).HasSpaceGroup(v) {
			return ErrUnknownOption
		}
		s.sel.SpaceGroup = v
		return nil
	})
}

// Reset clears the selection and any result, keeping the theme.
func (s *State) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Predicting {
		return ErrBusy
	}
	s.sel = Selection{}
	s.result = nil
	s.errMsg = ""
	s.phase = Idle
	return nil
}

// update runs change under the lock and then brings the selection and
// phase back in line with the catalog.
func (s *State) update(change func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Predicting {
		return ErrBusy
	}
	if err := change(); err != nil {
		return err
	}

	s.reconcile()
	s.result = nil
	s.errMsg = ""
	s.phase = selectionPhase(s.sel)
	return nil
}

// reconcile clears a chosen crystal system that the formula no longer
// offers, then a chosen space group that formula and crystal system no
// longer offer. Both are checked against the selection as it stands, so a
// cleared crystal system always takes its space group with it.
func (s *State) reconcile() {
	opts := s.cat.FilterOptions(s.sel.Formula, s.sel.CrystalSystem)
	if s.sel.CrystalSystem != "" && !opts.HasCrystalSystem(s.sel.CrystalSystem) {
		s.sel.CrystalSystem = ""
		s.sel.SpaceGroup = ""
		return
	}
	if s.sel.SpaceGroup != "" && !opts.HasSpaceGroup(s.sel.SpaceGroup) {
		s.sel.SpaceGroup = ""
	}
}

func selectionPhase(sel Selection) Phase {
	switch {
	case sel.Empty():
		return Idle
	case sel.Complete():
		return Ready
	default:
		return Selecting
	}
}

// BeginPredict moves a complete selection into Predicting and returns the
// selection to predict for.
func (s *State) BeginPredict() (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Predicting {
		return Selection{}, ErrBusy
	}
	if !s.sel.Complete() {
		return Selection{}, ErrNotReady
	}
	s.errMsg = ""
	s.phase = Predicting
	return s.sel, nil
}

// Resolve stores a result and ends the prediction.
func (s *State) Resolve(res Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Predicting {
		return errNotPredicting
	}
	s.result = &res
	s.errMsg = ""
	s.phase = Resolved
	return nil
}

// Fail records msg, drops any previous result and ends the prediction.
func (s *State) Fail(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Predicting {
		return errNotPredicting
	}
	s.result = nil
	s.errMsg = msg
	s.phase = Failed
	return nil
}

// ToggleTheme switches between the light and dark themes.
func (s *State) ToggleTheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	return s.theme
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Selection returns the current selection.
func (s *State) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Snapshot returns a copy of the state with the dropdown options for the
// current selection.
func (s *State) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := s.cat.FilterOptions(s.sel.Formula, s.sel.CrystalSystem)
	v := View{
		Selection:      s.sel,
		Phase:          s.phase,
		Theme:          s.theme,
		Formulas:       s.cat.Formulas(),
		CrystalSystems: opts.CrystalSystems,
		SpaceGroups:    opts.SpaceGroups,
		Error:          s.errMsg,
		CanPredict:     s.sel.Complete() && s.phase != Predicting,
	}
	if s.result != nil {
		r := *s.result
		v.Result = &r
	}
	return v
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
