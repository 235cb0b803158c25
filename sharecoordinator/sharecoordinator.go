// Package sharecoordinator manages the sharing lifecycle of local resources against the remote sharing
// service and mirrors the remote state into observable local state.
package sharecoordinator

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/debugstat"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/metric"
	"github.com/anyproto/any-share/remoteshare"
	"github.com/anyproto/any-share/remoteshare/shareerr"
	"github.com/anyproto/any-share/shareui"
	"github.com/anyproto/any-share/util/affinity"
	"github.com/anyproto/any-share/util/periodicsync"
)

const CName = "share.sharecoordinator"

var log = logger.NewNamed(CName)

var (
	ErrNoPresenter         = errors.New("sharing presenter is not registered")
	ErrParticipantNotFound = errors.New("participant not found in share")
)

func New() ShareCoordinator {
	return new(shareCoordinator)
}

type ShareCoordinator interface {
	// CreateShare creates a share rooted at root and saves both records atomically
	CreateShare(ctx context.Context, root *remoteshare.Record, resourceId string) (*remoteshare.Share, error)
	AcceptShare(ctx context.Context, meta remoteshare.InvitationMetadata) error
	// FetchPendingInvitations replaces the pending list with the invitations still awaiting an answer
	FetchPendingInvitations(ctx context.Context) error
	// RemoveShare deletes the cached share of resourceId; it does nothing when no share is cached
	RemoveShare(ctx context.Context, resourceId string) error
	// UpdateParticipantPermission changes the permission on the given share and saves it.
	// Cached shares are not refreshed.
	UpdateParticipantPermission(ctx context.Context, share *remoteshare.Share, participant *remoteshare.Participant, permission remoteshare.Permission) error
	RemoveParticipant(ctx context.Context, share *remoteshare.Share, participant *remoteshare.Participant, resourceId string) error
	// FetchShare resolves recordId to a share, following a record's share reference.
	// It returns nil without error when there is no share.
	FetchShare(ctx context.Context, resourceId, recordId string) (*remoteshare.Share, error)
	// PresentSharing opens the sharing dialog for resourceId, creating the share first when needed
	PresentSharing(ctx context.Context, root *remoteshare.Record, resourceId string) error
	// RefreshInvitations triggers the background invitation refresh if it is enabled
	RefreshInvitations()

	ActiveShare(resourceId string) (*remoteshare.Share, bool)
	ActiveShares() map[string]*remoteshare.Share
	PendingInvitations() []remoteshare.InvitationMetadata
	Status(resourceId string) (Status, bool)
	Statuses() map[string]Status
	LastError() string

	// Subscribe registers observer under id; events are delivered in order on a dedicated goroutine
	Subscribe(id string, observer Observer)
	Unsubscribe(id string)

	app.ComponentRunnable
}

type shareCoordinator struct {
	conf      Config
	remote    remoteshare.Service
	presenter shareui.Presenter
	metricSrv metric.Metric
	stat      debugstat.StatService
	metrics   *metrics
	refresher periodicsync.PeriodicSync

	exec     *affinity.Executor
	notifier *affinity.Executor
	state    *state

	observersMu sync.Mutex
	observers   map[string]Observer
}

func (c *shareCoordinator) Init(a *app.App) (err error) {
	if cg, ok := a.Component("config").(configGetter); ok {
		c.conf = cg.GetShareCoordinator()
	}
	c.remote = a.MustComponent(remoteshare.CName).(remoteshare.Service)
	if p, ok := a.Component(shareui.CName).(shareui.Presenter); ok {
		c.presenter = p
	}
	if m, ok := a.Component(metric.CName).(metric.Metric); ok {
		c.metricSrv = m
	}
	if s, ok := a.Component(debugstat.CName).(debugstat.StatService); ok {
		c.stat = s
	}
	c.state = newState()
	c.observers = make(map[string]Observer)
	c.exec = affinity.New()
	c.notifier = affinity.New()
	return nil
}

func (c *shareCoordinator) Name() (name string) {
	return CName
}

func (c *shareCoordinator) Run(ctx context.Context) (err error) {
	c.exec.Run()
	c.notifier.Run()
	if c.metricSrv != nil && c.metricSrv.Registry() != nil {
		if c.metrics, err = newMetrics(c.metricSrv.Registry()); err != nil {
			return err
		}
	}
	if c.stat != nil {
		c.stat.AddProvider(c)
	}
	if c.conf.InvitationRefreshPeriodSec > 0 {
		c.refresher = periodicsync.NewPeriodicSync(c.conf.InvitationRefreshPeriodSec, c.conf.refreshTimeout(), c.FetchPendingInvitations, log)
		c.refresher.Run()
	}
	return nil
}

func (c *shareCoordinator) Close(ctx context.Context) (err error) {
	if c.stat != nil {
		c.stat.RemoveProvider(c)
	}
	if c.refresher != nil {
		c.refresher.Close()
	}
	if c.exec != nil {
		_ = c.exec.Close()
	}
	if c.notifier != nil {
		_ = c.notifier.Close()
	}
	return nil
}

func (c *shareCoordinator) CreateShare(ctx context.Context, root *remoteshare.Record, resourceId string) (share *remoteshare.Share, err error) {
	defer c.observe("createShare", time.Now(), &err)
	ctx = logger.CtxWithFields(ctx, zap.String("resourceId", resourceId), zap.String("rootId", root.Id))

	share = remoteshare.NewShare(root, c.conf.shareTitle())
	rootRec := root.Copy()
	rootRec.ShareRef = share.Id

	results, err := c.remote.ModifyRecords(ctx, []remoteshare.Entry{
		remoteshare.RecordEntry(rootRec),
		remoteshare.ShareEntry(share),
	}, remoteshare.ModifyOptions{Policy: remoteshare.SavePolicyIfServerRecordUnchanged, Atomic: true})
	if err != nil {
		return nil, c.fail(ctx, "create share", resourceId, err)
	}
	saved, err := savedShare(results, share.Id)
	if err != nil {
		return nil, c.fail(ctx, "create share", resourceId, err)
	}
	if err = c.update(func(st *state) {
		st.setShared(resourceId, saved)
	}); err != nil {
		return nil, err
	}
	log.InfoCtx(ctx, "share created", zap.String("shareId", saved.Id))
	return saved, nil
}

func savedShare(results map[string]remoteshare.SaveResult, shareId string) (*remoteshare.Share, error) {
	res, ok := results[shareId]
	if !ok {
		return nil, shareerr.ErrUnknownResult
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Entry.Kind != remoteshare.EntryKindShare || res.Entry.Share == nil {
		return nil, shareerr.ErrUnknownResult
	}
	return res.Entry.Share, nil
}

func (c *shareCoordinator) AcceptShare(ctx context.Context, meta remoteshare.InvitationMetadata) (err error) {
	defer c.observe("acceptShare", time.Now(), &err)
	resourceId := meta.RootRecordId
	ctx = logger.CtxWithFields(ctx, zap.String("resourceId", resourceId), zap.String("shareId", meta.ShareId))

	if err = c.update(func(st *state) {
		st.setStatus(resourceId, StatusPending())
	}); err != nil {
		return err
	}
	share, err := c.remote.AcceptInvitation(ctx, meta)
	if err != nil {
		return c.fail(ctx, "accept share", resourceId, err)
	}
	if share == nil {
		return c.fail(ctx, "accept share", resourceId, shareerr.ErrUnknownResult)
	}
	if err = c.update(func(st *state) {
		st.setShared(resourceId, share)
		// several invitations may target the same resource; prune only the accepted one
		idx := slices.IndexFunc(st.pending, func(m remoteshare.InvitationMetadata) bool {
			return m.ShareId == meta.ShareId
		})
		if idx != -1 {
			st.setPending(slices.Delete(slices.Clone(st.pending), idx, idx+1))
		}
	}); err != nil {
		return err
	}
	log.InfoCtx(ctx, "share accepted")
	return nil
}

func (c *shareCoordinator) FetchPendingInvitations(ctx context.Context) (err error) {
	defer c.observe("fetchPendingInvitations", time.Now(), &err)
	invitations, err := c.remote.ListInvitations(ctx)
	if err != nil {
		return c.fail(ctx, "fetch pending invitations", "", err)
	}
	pending := make([]remoteshare.InvitationMetadata, 0, len(invitations))
	for _, inv := range invitations {
		if inv.ParticipantStatus == remoteshare.AcceptancePending {
			pending = append(pending, inv)
		}
	}
	if err = c.update(func(st *state) {
		st.setPending(pending)
	}); err != nil {
		return err
	}
	log.DebugCtx(ctx, "pending invitations fetched", zap.Int("total", len(invitations)), zap.Int("pending", len(pending)))
	return nil
}

func (c *shareCoordinator) RemoveShare(ctx context.Context, resourceId string) (err error) {
	defer c.observe("removeShare", time.Now(), &err)
	ctx = logger.CtxWithFields(ctx, zap.String("resourceId", resourceId))

	share, ok := c.ActiveShare(resourceId)
	if !ok {
		log.InfoCtx(ctx, "no active share to remove")
		return nil
	}
	// the share record is deleted by its own id, not by the root's
	if err = c.remote.DeleteRecord(ctx, share.Id); err != nil {
		// local state is left as is: the cached share and its Shared status remain
		err = shareerr.Wrap(err)
		log.WarnCtx(ctx, "remove share failed", zap.String("shareId", share.Id), zap.Error(err))
		return err
	}
	if err = c.update(func(st *state) {
		st.setNotShared(resourceId)
	}); err != nil {
		return err
	}
	log.InfoCtx(ctx, "share removed", zap.String("shareId", share.Id))
	return nil
}

func (c *shareCoordinator) UpdateParticipantPermission(ctx context.Context, share *remoteshare.Share, participant *remoteshare.Participant, permission remoteshare.Permission) (err error) {
	defer c.observe("updateParticipantPermission", time.Now(), &err)
	ctx = logger.CtxWithFields(ctx, zap.String("shareId", share.Id), zap.String("participant", participant.Identity))

	target, ok := share.Participant(participant.Identity)
	if !ok {
		return c.fail(ctx, "update participant permission", "", ErrParticipantNotFound)
	}
	target.Permission = permission
	participant.Permission = permission
	if _, err = c.remote.SaveRecord(ctx, remoteshare.ShareEntry(share)); err != nil {
		return c.fail(ctx, "update participant permission", "", err)
	}
	log.InfoCtx(ctx, "participant permission updated", zap.Stringer("permission", permission))
	return nil
}

func (c *shareCoordinator) RemoveParticipant(ctx context.Context, share *remoteshare.Share, participant *remoteshare.Participant, resourceId string) (err error) {
	defer c.observe("removeParticipant", time.Now(), &err)
	ctx = logger.CtxWithFields(ctx, zap.String("resourceId", resourceId), zap.String("shareId", share.Id), zap.String("participant", participant.Identity))

	if !share.RemoveParticipant(participant.Identity) {
		return c.fail(ctx, "remove participant", resourceId, ErrParticipantNotFound)
	}
	saved, err := c.remote.SaveRecord(ctx, remoteshare.ShareEntry(share))
	if err != nil {
		return c.fail(ctx, "remove participant", resourceId, err)
	}
	if saved.Kind != remoteshare.EntryKindShare || saved.Share == nil {
		return c.fail(ctx, "remove participant", resourceId, shareerr.ErrUnknownResult)
	}
	if err = c.update(func(st *state) {
		st.setShared(resourceId, saved.Share)
	}); err != nil {
		return err
	}
	log.InfoCtx(ctx, "participant removed")
	return nil
}

func (c *shareCoordinator) FetchShare(ctx context.Context, resourceId, recordId string) (share *remoteshare.Share, err error) {
	defer c.observe("fetchShare", time.Now(), &err)
	ctx = logger.CtxWithFields(ctx, zap.String("resourceId", resourceId), zap.String("recordId", recordId))

	entry, err := c.remote.FetchRecord(ctx, recordId)
	if err != nil {
		return nil, c.fetchFailed(ctx, resourceId, err)
	}
	switch entry.Kind {
	case remoteshare.EntryKindShare:
		if entry.Share != nil {
			return c.registerFetched(resourceId, entry.Share)
		}
	case remoteshare.EntryKindShareReference:
		if entry.Record == nil {
			break
		}
		ref, err := c.remote.FetchRecord(ctx, entry.Record.ShareRef)
		if err != nil {
			return nil, c.fetchFailed(ctx, resourceId, err)
		}
		switch ref.Kind {
		case remoteshare.EntryKindShare:
			if ref.Share != nil {
				return c.registerFetched(resourceId, ref.Share)
			}
		case remoteshare.EntryKindPlain, remoteshare.EntryKindShareReference:
			return nil, nil
		}
	case remoteshare.EntryKindPlain:
		return nil, nil
	}
	return nil, c.fail(ctx, "fetch share", resourceId, shareerr.ErrUnknownResult)
}

func (c *shareCoordinator) fetchFailed(ctx context.Context, resourceId string, err error) error {
	err = shareerr.Wrap(err)
	if !shareerr.IsNotFound(err) {
		return c.fail(ctx, "fetch share", resourceId, err)
	}
	log.DebugCtx(ctx, "record not found, resource is not shared")
	return c.update(func(st *state) {
		st.setNotShared(resourceId)
	})
}

func (c *shareCoordinator) registerFetched(resourceId string, share *remoteshare.Share) (*remoteshare.Share, error) {
	if err := c.update(func(st *state) {
		st.setShared(resourceId, share)
	}); err != nil {
		return nil, err
	}
	return share, nil
}

func (c *shareCoordinator) PresentSharing(ctx context.Context, root *remoteshare.Record, resourceId string) (err error) {
	if c.presenter == nil {
		return ErrNoPresenter
	}
	share, ok := c.ActiveShare(resourceId)
	if !ok {
		if share, err = c.CreateShare(ctx, root, resourceId); err != nil {
			return err
		}
	}
	return c.presenter.Present(ctx, share, &sessionDelegate{c: c, resourceId: resourceId})
}

func (c *shareCoordinator) RefreshInvitations() {
	if c.refresher != nil {
		c.refresher.Kick()
	}
}

// fail records err as the last error and, when resourceId is set, as that resource's status
func (c *shareCoordinator) fail(ctx context.Context, op, resourceId string, err error) error {
	if !errors.Is(err, ErrParticipantNotFound) {
		err = shareerr.Wrap(err)
	}
	log.WarnCtx(ctx, op+" failed", zap.Error(err))
	msg := shareerr.Message(err)
	if uerr := c.update(func(st *state) {
		st.setError(resourceId, msg)
	}); uerr != nil {
		log.WarnCtx(ctx, "can't record failure", zap.Error(uerr))
	}
	return err
}

// update applies fn to the state on the executor and queues resulting events for observers
func (c *shareCoordinator) update(fn func(st *state)) error {
	return c.exec.Do(func() {
		fn(c.state)
		for _, e := range c.state.takeEvents() {
			e := e
			_ = c.notifier.Go(func() {
				c.broadcast(e)
			})
		}
	})
}

func (c *shareCoordinator) observe(op string, start time.Time, err *error) {
	c.metrics.observe(op, start, *err)
}

func (c *shareCoordinator) Subscribe(id string, observer Observer) {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()
	c.observers[id] = observer
}

func (c *shareCoordinator) Unsubscribe(id string) {
	c.observersMu.Lock()
	defer c.observersMu.Unlock()
	delete(c.observers, id)
}

func (c *shareCoordinator) broadcast(e Event) {
	c.observersMu.Lock()
	observers := make([]Observer, 0, len(c.observers))
	for _, o := range c.observers {
		observers = append(observers, o)
	}
	c.observersMu.Unlock()
	for _, o := range observers {
		o(e)
	}
}

func (c *shareCoordinator) ActiveShare(resourceId string) (share *remoteshare.Share, ok bool) {
	_ = c.exec.Do(func() {
		var s *remoteshare.Share
		if s, ok = c.state.activeShares[resourceId]; ok {
			share = s.Copy()
		}
	})
	return
}

func (c *shareCoordinator) ActiveShares() (shares map[string]*remoteshare.Share) {
	shares = make(map[string]*remoteshare.Share)
	_ = c.exec.Do(func() {
		for id, s := range c.state.activeShares {
			shares[id] = s.Copy()
		}
	})
	return
}

func (c *shareCoordinator) PendingInvitations() (invitations []remoteshare.InvitationMetadata) {
	_ = c.exec.Do(func() {
		invitations = copyInvitations(c.state.pending)
	})
	return
}

func (c *shareCoordinator) Status(resourceId string) (status Status, ok bool) {
	_ = c.exec.Do(func() {
		status, ok = c.state.statuses[resourceId]
	})
	return
}

func (c *shareCoordinator) Statuses() (statuses map[string]Status) {
	statuses = make(map[string]Status)
	_ = c.exec.Do(func() {
		for id, s := range c.state.statuses {
			statuses[id] = s
		}
	})
	return
}

func (c *shareCoordinator) LastError() (msg string) {
	_ = c.exec.Do(func() {
		msg = c.state.lastError
	})
	return
}
