package remoteshare

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

type Permission int

const (
	PermissionNone Permission = iota
	PermissionReadOnly
	PermissionReadWrite
)

func (p Permission) String() string {
	switch p {
	case PermissionNone:
		return "none"
	case PermissionReadOnly:
		return "readOnly"
	case PermissionReadWrite:
		return "readWrite"
	}
	return "unknown"
}

type ParticipantRole int

const (
	RoleUnknown ParticipantRole = iota
	RoleOwner
	RolePrivateUser
	RolePublicUser
)

type AcceptanceStatus int

const (
	AcceptanceUnknown AcceptanceStatus = iota
	AcceptancePending
	AcceptanceAccepted
	AcceptanceRemoved
	AcceptanceDeclined
)

func (s AcceptanceStatus) String() string {
	switch s {
	case AcceptancePending:
		return "pending"
	case AcceptanceAccepted:
		return "accepted"
	case AcceptanceRemoved:
		return "removed"
	case AcceptanceDeclined:
		return "declined"
	}
	return "unknown"
}

// Record is a root resource stored remotely
type Record struct {
	Id     string
	Type   string
	Fields map[string]string
	// ShareRef is the id of the share rooted at this record, empty when not shared
	ShareRef string
}

func (r *Record) Copy() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.Fields != nil {
		c.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			c.Fields[k] = v
		}
	}
	return &c
}

type Participant struct {
	Identity         string
	Name             string
	Role             ParticipantRole
	Permission       Permission
	AcceptanceStatus AcceptanceStatus
}

type Share struct {
	Id               string
	RootId           string
	Title            string
	PublicPermission Permission
	Participants     []*Participant
	// ChangeTag is assigned by the server on every save
	ChangeTag string
}

// NewShare creates a share rooted at root with a client generated id.
// Public access is disabled.
func NewShare(root *Record, title string) *Share {
	return &Share{
		Id:               "share-" + uuid.NewString(),
		RootId:           root.Id,
		Title:            title,
		PublicPermission: PermissionNone,
	}
}

// Participant returns the participant with the given identity
func (s *Share) Participant(identity string) (*Participant, bool) {
	idx := slices.IndexFunc(s.Participants, func(p *Participant) bool {
		return p.Identity == identity
	})
	if idx == -1 {
		return nil, false
	}
	return s.Participants[idx], true
}

// RemoveParticipant drops the participant with the given identity and reports whether it was present
func (s *Share) RemoveParticipant(identity string) bool {
	before := len(s.Participants)
	s.Participants = slices.DeleteFunc(s.Participants, func(p *Participant) bool {
		return p.Identity == identity
	})
	return len(s.Participants) != before
}

// Copy returns a deep copy; participants are copied too
func (s *Share) Copy() *Share {
	if s == nil {
		return nil
	}
	c := *s
	if s.Participants != nil {
		c.Participants = make([]*Participant, 0, len(s.Participants))
		for _, p := range s.Participants {
			pc := *p
			c.Participants = append(c.Participants, &pc)
		}
	}
	return &c
}

// InvitationMetadata identifies an invitation to join a share
type InvitationMetadata struct {
	ShareId           string
	RootRecordId      string
	OwnerIdentity     string
	Title             string
	Permission        Permission
	ParticipantStatus AcceptanceStatus
}
