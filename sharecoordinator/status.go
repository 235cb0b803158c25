package sharecoordinator

import (
	"github.com/anyproto/any-share/remoteshare"
)

type State int

const (
	StateNotShared State = iota
	StateShared
	StatePending
	StateError
)

func (s State) String() string {
	switch s {
	case StateNotShared:
		return "notShared"
	case StateShared:
		return "shared"
	case StatePending:
		return "pending"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Status is the sharing status of a single resource. Message is set only for StateError.
type Status struct {
	State   State
	Message string
}

func StatusNotShared() Status { return Status{State: StateNotShared} }

func StatusShared() Status { return Status{State: StateShared} }

func StatusPending() Status { return Status{State: StatePending} }

func StatusError(msg string) Status { return Status{State: StateError, Message: msg} }

func (s Status) String() string {
	if s.State == StateError {
		return s.State.String() + "(" + s.Message + ")"
	}
	return s.State.String()
}

type EventKind int

const (
	EventStatusChanged EventKind = iota
	EventInvitationsChanged
)

// Event describes a change of coordinator state.
// Share is set when a status change registered a share; Invitations carries the new pending list.
type Event struct {
	Kind        EventKind
	ResourceId  string
	Status      Status
	Share       *remoteshare.Share
	Invitations []remoteshare.InvitationMetadata
}

type Observer func(event Event)

// state is owned by the affinity executor; never touch it outside executor closures
type state struct {
	activeShares map[string]*remoteshare.Share
	pending      []remoteshare.InvitationMetadata
	statuses     map[string]Status
	lastError    string
	events       []Event
}

func newState() *state {
	return &state{
		activeShares: make(map[string]*remoteshare.Share),
		statuses:     make(map[string]Status),
	}
}

func (st *state) setStatus(resourceId string, status Status) {
	st.statuses[resourceId] = status
	st.events = append(st.events, Event{Kind: EventStatusChanged, ResourceId: resourceId, Status: status})
}

func (st *state) setShared(resourceId string, share *remoteshare.Share) {
	st.activeShares[resourceId] = share.Copy()
	st.statuses[resourceId] = StatusShared()
	st.events = append(st.events, Event{Kind: EventStatusChanged, ResourceId: resourceId, Status: StatusShared(), Share: share.Copy()})
}

func (st *state) setNotShared(resourceId string) {
	delete(st.activeShares, resourceId)
	st.setStatus(resourceId, StatusNotShared())
}

func (st *state) setError(resourceId, msg string) {
	st.lastError = msg
	if resourceId != "" {
		st.setStatus(resourceId, StatusError(msg))
	}
}

func (st *state) setPending(invitations []remoteshare.InvitationMetadata) {
	st.pending = invitations
	st.events = append(st.events, Event{Kind: EventInvitationsChanged, Invitations: copyInvitations(invitations)})
}

func (st *state) takeEvents() []Event {
	events := st.events
	st.events = nil
	return events
}

func copyInvitations(in []remoteshare.InvitationMetadata) []remoteshare.InvitationMetadata {
	if in == nil {
		return nil
	}
	out := make([]remoteshare.InvitationMetadata, len(in))
	copy(out, in)
	return out
}
