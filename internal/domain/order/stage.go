package order

// Stage describes how far the two-step checkout has progressed. It is
// derived from the current field values rather than stored, so any field
// edit re-enters the corresponding in-progress stage automatically.
type Stage int

const (
	StageEmpty Stage = iota
	StageDeliveryInProgress
	StageDeliveryComplete
	StageContactInProgress
	StageContactComplete
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageDeliveryInProgress:
		return "delivery-in-progress"
	case StageDeliveryComplete:
		return "delivery-complete"
	case StageContactInProgress:
		return "contact-in-progress"
	case StageContactComplete:
		return "contact-complete"
	default:
		return "unknown"
	}
}

// Stage reports the current checkout stage. Submission is only attempted
// from StageContactComplete; a failed remote submission leaves the fields
// untouched, so the draft stays there and the user may retry.
func (d *Draft) Stage(basketEmpty bool) Stage {
	if d.Empty() {
		return StageEmpty
	}
	if len(d.DeliveryErrors(basketEmpty)) > 0 {
		return StageDeliveryInProgress
	}
	if d.email == "" && d.phone == "" {
		return StageDeliveryComplete
	}
	if len(d.ContactErrors()) > 0 {
		return StageContactInProgress
	}
	return StageContactComplete
}
