// internal/app/features/predictor/types.go
package predictor

import (
	"github.com/dalemusser/matpredict/internal/app/interaction"
	"github.com/dalemusser/matpredict/internal/app/system/viewdata"
	"github.com/dalemusser/matpredict/internal/domain/models"
	"github.com/dustin/go-humanize"
)

// Units shown next to property values.
const (
	unitEV        = "eV"
	unitBohrMagne = "µB"
)

// pageData is the view model for the predictor page and its panel snippet.
type pageData struct {
	viewdata.BaseVM

	View   interaction.View
	Fields []selectField
	Cards  []resultCard
	Notice string // validation or busy message for the last action
}

// selectField is one dependent dropdown.
type selectField struct {
	Name     string
	Label    string
	Options  []string
	Value    string
	Disabled bool
}

// buildFields lays out the three dropdowns. Each is open at any time, with an
// empty upstream field placing no constraint; all are disabled while
// predicting.
func buildFields(v interaction.View) []selectField {
	busy := v.Phase == interaction.Predicting
	return []selectField{
		{Name: interaction.FieldFormula, Label: "Formula", Options: v.Formulas,
			Value: v.Selection.Formula, Disabled: busy},
		{Name: interaction.FieldCrystalSystem, Label: "Crystal System", Options: v.CrystalSystems,
			Value: v.Selection.CrystalSystem, Disabled: busy},
		{Name: interaction.FieldSpaceGroup, Label: "Space Group", Options: v.SpaceGroups,
			Value: v.Selection.SpaceGroup, Disabled: busy},
	}
}

// resultCard is one property shown as actual vs. predicted.
type resultCard struct {
	Label     string
	Actual    string
	Predicted string
	Unit      string
}

// buildCards lays out the four properties of a result in display order.
func buildCards(res *interaction.Result) []resultCard {
	if res == nil {
		return nil
	}
	a, p := res.Actual, res.Predicted
	return []resultCard{
		{Label: "Energy Above Hull", Actual: formatFloat(a.EnergyAboveHull), Predicted: formatFloat(p.EnergyAboveHull), Unit: unitEV},
		{Label: "Band Gap", Actual: formatFloat(a.BandGap), Predicted: formatFloat(p.BandGap), Unit: unitEV},
		{Label: "Is Metal", Actual: yesNo(a.IsMetal), Predicted: yesNo(p.IsMetal)},
		{Label: "Total Magnetization", Actual: formatFloat(a.TotalMagnetization), Predicted: formatFloat(p.TotalMagnetization), Unit: unitBohrMagne},
	}
}

// formatFloat prints v without trailing zeros: 0.5, 2.31, 0.
func formatFloat(v float64) string {
	return humanize.Ftoa(v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// optionsResponse is the JSON body of GET /api/options.
type optionsResponse struct {
	Formulas       []string `json:"formulas"`
	CrystalSystems []string `json:"crystal_systems"`
	SpaceGroups    []string `json:"space_groups"`
}

// predictResponse is the JSON body of GET /api/predict.
type predictResponse struct {
	ID        string                `json:"id"`
	Actual    models.MaterialRecord `json:"actual"`
	Predicted models.MaterialRecord `json:"predicted"`
}

// catalogResponse is the JSON body of GET /api/catalog.
type catalogResponse struct {
	Count   int                     `json:"count"`
	Records []models.MaterialRecord `json:"records"`
}

// errorResponse is the JSON body of API errors.
type errorResponse struct {
	Error string `json:"error"`
}
