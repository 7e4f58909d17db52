package schema

import "github.com/templui/focusflow/internal/model"

// UpsertDailyFocus is the body of a daily check-in write. All fields are optional;
// the focus date is always assigned by the server.
type UpsertDailyFocus struct {
	TopPriorityID *int64  `json:"topPriorityId,omitempty" validate:"omitnil,gt=0"`
	Mood          *string `json:"mood,omitempty" validate:"omitnil,mood"`
	EnergyLevel   *int    `json:"energyLevel,omitempty" validate:"omitnil,min=1,max=5"`
	Notes         *string `json:"notes,omitempty" validate:"omitnil,max=5000"`
}

func (in UpsertDailyFocus) Patch() model.FocusPatch {
	return model.FocusPatch{
		TopPriorityID: in.TopPriorityID,
		Mood:          in.Mood,
		EnergyLevel:   in.EnergyLevel,
		Notes:         in.Notes,
	}
}
