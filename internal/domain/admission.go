package domain

// CapacityReason причина отказа в допуске бронирования
type CapacityReason string

const (
	ReasonNone             CapacityReason = ""
	ReasonWalkLimitReached CapacityReason = "walk_limit_reached"
	ReasonSlotTaken        CapacityReason = "slot_taken"
	ReasonSittingOverlap   CapacityReason = "sitting_overlap"
)

// AdmissionDecision результат проверки допуска, не сохраняется
type AdmissionDecision struct {
	Admitted bool
	Reason   CapacityReason
}

// Admit returns a positive decision
func Admit() *AdmissionDecision {
	return &AdmissionDecision{Admitted: true, Reason: ReasonNone}
}

// Reject returns a negative decision with a reason
func Reject(reason CapacityReason) *AdmissionDecision {
	return &AdmissionDecision{Admitted: false, Reason: reason}
}

// WalkCapState состояние даты относительно лимита прогулок
type WalkCapState int

const (
	// WalkCapInactive нет активной передержки - лимит не действует
	WalkCapInactive WalkCapState = iota
	// WalkCapUnlimited передержка активна, но на дату снят лимит (override с NULL)
	WalkCapUnlimited
	// WalkCapEnforced передержка активна, действует лимит Cap
	WalkCapEnforced
)

func (s WalkCapState) String() string {
	switch s {
	case WalkCapInactive:
		return "inactive"
	case WalkCapUnlimited:
		return "unlimited"
	case WalkCapEnforced:
		return "enforced"
	default:
		return "unknown"
	}
}
