package enums

type ElectionStatus string

const (
	ElectionStatusDraft        ElectionStatus = "draft"
	ElectionStatusVotingOpen   ElectionStatus = "voting_open"
	ElectionStatusVotingClosed ElectionStatus = "voting_closed"
)

var ValidElectionStatuses = []ElectionStatus{
	ElectionStatusDraft,
	ElectionStatusVotingOpen,
	ElectionStatusVotingClosed,
}

func (s ElectionStatus) IsValid() bool { return contains(ValidElectionStatuses, s) }

func (s ElectionStatus) rank() int {
	for i, candidate := range ValidElectionStatuses {
		if candidate == s {
			return i
		}
	}
	return -1
}

// CanMoveTo allows only single forward steps.
func (s ElectionStatus) CanMoveTo(next ElectionStatus) bool {
	from, to := s.rank(), next.rank()
	return from >= 0 && to == from+1
}
