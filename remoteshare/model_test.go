package remoteshare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShare(t *testing.T) {
	root := &Record{Id: "proj1", Type: "Project"}
	s1 := NewShare(root, "Shared Project")
	s2 := NewShare(root, "Shared Project")
	assert.NotEqual(t, s1.Id, s2.Id)
	assert.Equal(t, "proj1", s1.RootId)
	assert.Equal(t, "Shared Project", s1.Title)
	assert.Equal(t, PermissionNone, s1.PublicPermission)
}

func TestShare_Participants(t *testing.T) {
	share := &Share{
		Id: "s1",
		Participants: []*Participant{
			{Identity: "alice", Role: RoleOwner},
			{Identity: "bob", Role: RolePrivateUser, Permission: PermissionReadOnly},
		},
	}
	p, ok := share.Participant("bob")
	require.True(t, ok)
	assert.Equal(t, PermissionReadOnly, p.Permission)

	_, ok = share.Participant("carol")
	assert.False(t, ok)

	c := share.Copy()
	c.Participants[1].Permission = PermissionReadWrite
	assert.Equal(t, PermissionReadOnly, p.Permission)

	assert.True(t, share.RemoveParticipant("bob"))
	assert.False(t, share.RemoveParticipant("bob"))
	assert.Len(t, share.Participants, 1)
	assert.Len(t, c.Participants, 2)
}

func TestEntry(t *testing.T) {
	plain := &Record{Id: "r1"}
	assert.Equal(t, EntryKindPlain, RecordEntry(plain).Kind)
	ref := &Record{Id: "r2", ShareRef: "s1"}
	assert.Equal(t, EntryKindShareReference, RecordEntry(ref).Kind)
	assert.Equal(t, "r2", RecordEntry(ref).Id())
	assert.Equal(t, "s1", ShareEntry(&Share{Id: "s1"}).Id())
	assert.Equal(t, "", Entry{}.Id())
	assert.Equal(t, "unknown", Entry{Kind: EntryKind(42)}.Kind.String())

	rec := &Record{Id: "r3", Fields: map[string]string{"name": "a"}}
	c := RecordEntry(rec).Copy()
	c.Record.Fields["name"] = "b"
	assert.Equal(t, "a", rec.Fields["name"])
}

func TestAcceptanceStatus_String(t *testing.T) {
	assert.Equal(t, "pending", AcceptancePending.String())
	assert.Equal(t, "accepted", AcceptanceAccepted.String())
	assert.Equal(t, "declined", AcceptanceDeclined.String())
	assert.Equal(t, "removed", AcceptanceRemoved.String())
	assert.Equal(t, "unknown", AcceptanceUnknown.String())
}
