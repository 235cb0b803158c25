package sharecoordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/remoteshare"
	"github.com/anyproto/any-share/remoteshare/memremote"
	"github.com/anyproto/any-share/remoteshare/shareerr"
)

type memConfig struct {
	testConfig
	mem memremote.Config
}

func (c *memConfig) GetMemRemote() memremote.Config { return c.mem }

func newMemFixture(t *testing.T, mem memremote.Config) (ShareCoordinator, memremote.MemRemote) {
	remote := memremote.New()
	c := New()
	a := new(app.App)
	a.Register(&memConfig{mem: mem}).Register(remote).Register(c)
	require.NoError(t, a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, a.Close(ctx))
	})
	return c, remote
}

func TestShareCoordinator_MemRemoteLifecycle(t *testing.T) {
	c, remote := newMemFixture(t, memremote.Config{Identity: "alice"})

	share, err := c.CreateShare(ctx, testRoot("proj1"), "proj1")
	require.NoError(t, err)
	require.Len(t, share.Participants, 1)
	assert.Equal(t, remoteshare.RoleOwner, share.Participants[0].Role)
	require.NoError(t, remote.Invite(share.Id, "bob", "Bob", remoteshare.PermissionReadOnly))

	// act as the invited participant
	remote.SetIdentity("bob")
	require.NoError(t, c.FetchPendingInvitations(ctx))
	pending := c.PendingInvitations()
	require.Len(t, pending, 1)
	assert.Equal(t, share.Id, pending[0].ShareId)
	assert.Equal(t, "alice", pending[0].OwnerIdentity)
	require.NoError(t, c.AcceptShare(ctx, pending[0]))
	assert.Empty(t, c.PendingInvitations())
	require.NoError(t, c.FetchPendingInvitations(ctx))
	assert.Empty(t, c.PendingInvitations())

	// back to the owner
	remote.SetIdentity("alice")
	fetched, err := c.FetchShare(ctx, "proj1", "proj1")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	bob, ok := fetched.Participant("bob")
	require.True(t, ok)
	assert.Equal(t, remoteshare.AcceptanceAccepted, bob.AcceptanceStatus)

	require.NoError(t, c.RemoveParticipant(ctx, fetched, bob, "proj1"))
	active, ok := c.ActiveShare("proj1")
	require.True(t, ok)
	_, ok = active.Participant("bob")
	assert.False(t, ok)

	require.NoError(t, c.RemoveShare(ctx, "proj1"))
	status, _ := c.Status("proj1")
	assert.Equal(t, StatusNotShared(), status)

	// the root survives without a share reference
	res, err := c.FetchShare(ctx, "proj1", "proj1")
	require.NoError(t, err)
	assert.Nil(t, res)

	res, err = c.FetchShare(ctx, "proj2", "proj2")
	require.NoError(t, err)
	assert.Nil(t, res)
	status, _ = c.Status("proj2")
	assert.Equal(t, StatusNotShared(), status)
}

func TestShareCoordinator_MemRemoteQuota(t *testing.T) {
	c, _ := newMemFixture(t, memremote.Config{Identity: "alice", MaxRecords: 2})

	_, err := c.CreateShare(ctx, testRoot("proj0"), "proj0")
	require.NoError(t, err)
	_, err = c.CreateShare(ctx, testRoot("proj1"), "proj1")
	require.ErrorIs(t, err, shareerr.ErrQuotaExceeded)

	status, _ := c.Status("proj1")
	assert.Equal(t, StatusError("quota exceeded"), status)
	_, ok := c.ActiveShare("proj1")
	assert.False(t, ok)
	assert.Equal(t, "quota exceeded", c.LastError())
}

func TestShareCoordinator_MemRemoteStaleShare(t *testing.T) {
	c, _ := newMemFixture(t, memremote.Config{Identity: "alice"})

	share, err := c.CreateShare(ctx, testRoot("proj1"), "proj1")
	require.NoError(t, err)
	owner := share.Participants[0]

	stale := share.Copy()
	require.NoError(t, c.UpdateParticipantPermission(ctx, share, owner, remoteshare.PermissionReadOnly))
	err = c.UpdateParticipantPermission(ctx, stale, stale.Participants[0], remoteshare.PermissionReadWrite)
	require.ErrorIs(t, err, shareerr.ErrServerRecordChanged)
}
