// Package wizard implements the coach → date → time → details booking flow
// as an explicit state machine.
package wizard

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wolfman30/tennis-booking/internal/coaching"
)

// Stage names a wizard state.
type Stage string

const (
	StageNoCoach     Stage = "no_coach"
	StageCoachChosen Stage = "coach_chosen"
	StageDateChosen  Stage = "date_chosen"
	StageSlotChosen  Stage = "slot_chosen"
)

// State is one of NoCoach, CoachChosen, DateChosen or SlotChosen. Each
// later state embeds the one before it, so a slot cannot exist without a
// date and a date cannot exist without a coach.
type State interface {
	Stage() Stage
	state()
}

// NoCoach is the initial state.
type NoCoach struct{}

// CoachChosen holds the selected coach and the dates the backend offered.
type CoachChosen struct {
	Coach coaching.Coach
	Dates []string
}

// DateChosen adds the selected date and its open slots.
type DateChosen struct {
	CoachChosen
	Date  string
	Slots []coaching.Slot
}

// SlotChosen adds the selected slot; the details form is shown here.
type SlotChosen struct {
	DateChosen
	Slot coaching.Slot
}

func (NoCoach) Stage() Stage     { return StageNoCoach }
func (CoachChosen) Stage() Stage { return StageCoachChosen }
func (DateChosen) Stage() Stage  { return StageDateChosen }
func (SlotChosen) Stage() Stage  { return StageSlotChosen }

func (NoCoach) state()     {}
func (CoachChosen) state() {}
func (DateChosen) state()  {}
func (SlotChosen) state()  {}

// ErrInvalidSnapshot is returned when a stored state breaks the ordering
// rules of the flow.
var ErrInvalidSnapshot = errors.New("wizard: invalid state snapshot")

// Snapshot makes a State storable as JSON.
type Snapshot struct {
	State State
}

type snapshotJSON struct {
	Stage Stage           `json:"stage"`
	Coach *coaching.Coach `json:"coach,omitempty"`
	Dates []string        `json:"dates,omitempty"`
	Date  string          `json:"date,omitempty"`
	Slots []coaching.Slot `json:"slots,omitempty"`
	Slot  *coaching.Slot  `json:"slot,omitempty"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{Stage: StageNoCoach}
	switch st := s.State.(type) {
	case nil, NoCoach:
	case CoachChosen:
		out.Stage = StageCoachChosen
		out.Coach, out.Dates = &st.Coach, st.Dates
	case DateChosen:
		out.Stage = StageDateChosen
		out.Coach, out.Dates = &st.Coach, st.Dates
		out.Date, out.Slots = st.Date, st.Slots
	case SlotChosen:
		out.Stage = StageSlotChosen
		out.Coach, out.Dates = &st.Coach, st.Dates
		out.Date, out.Slots = st.Date, st.Slots
		out.Slot = &st.Slot
	default:
		return nil, fmt.Errorf("wizard: unknown state %T", s.State)
	}
	return json.Marshal(out)
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch in.Stage {
	case "", StageNoCoach:
		s.State = NoCoach{}
		return nil
	case StageCoachChosen, StageDateChosen, StageSlotChosen:
	default:
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidSnapshot, in.Stage)
	}

	if in.Coach == nil {
		return fmt.Errorf("%w: %s without coach", ErrInvalidSnapshot, in.Stage)
	}
	coach := CoachChosen{Coach: *in.Coach, Dates: in.Dates}
	if in.Stage == StageCoachChosen {
		s.State = coach
		return nil
	}

	if in.Date == "" {
		return fmt.Errorf("%w: %s without date", ErrInvalidSnapshot, in.Stage)
	}
	date := DateChosen{CoachChosen: coach, Date: in.Date, Slots: in.Slots}
	if in.Stage == StageDateChosen {
		s.State = date
		return nil
	}

	if in.Slot == nil {
		return fmt.Errorf("%w: %s without slot", ErrInvalidSnapshot, in.Stage)
	}
	s.State = SlotChosen{DateChosen: date, Slot: *in.Slot}
	return nil
}
