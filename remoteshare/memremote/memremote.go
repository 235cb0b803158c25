// Package memremote is an in-process implementation of remoteshare.Service.
// It keeps every record in memory and acts on behalf of a single identity.
package memremote

import (
	"context"
	"strings"
	"sync"

	"github.com/anyproto/lexid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/app/logger"
	"github.com/anyproto/any-share/remoteshare"
	"github.com/anyproto/any-share/remoteshare/shareerr"
)

const CName = remoteshare.CName

var log = logger.NewNamed("share.memremote")

var lexId = lexid.Must(lexid.CharsAllNoEscape, 4, 100)

type Config struct {
	Identity string `yaml:"identity"`
	// MaxRecords limits records plus shares, zero means no limit
	MaxRecords int `yaml:"maxRecords"`
}

type configGetter interface {
	GetMemRemote() Config
}

type MemRemote interface {
	remoteshare.Service
	// Invite adds a pending participant to an existing share
	Invite(shareId, identity, name string, permission remoteshare.Permission) error
	// SetIdentity switches the identity the service acts for
	SetIdentity(identity string)
	RequestCount() int64
}

func New() MemRemote {
	return &memRemote{
		records: make(map[string]*remoteshare.Record),
		shares:  make(map[string]*remoteshare.Share),
	}
}

type memRemote struct {
	conf     Config
	mu       sync.Mutex
	records  map[string]*remoteshare.Record
	shares   map[string]*remoteshare.Share
	lastTag  string
	requests atomic.Int64
}

func (m *memRemote) Init(a *app.App) (err error) {
	if cg, ok := a.Component("config").(configGetter); ok {
		m.conf = cg.GetMemRemote()
	}
	log.Info("in-memory remote initialized", zap.String("identity", m.conf.Identity), zap.Int("maxRecords", m.conf.MaxRecords))
	return nil
}

func (m *memRemote) Name() (name string) {
	return CName
}

func (m *memRemote) SetIdentity(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conf.Identity = identity
}

func (m *memRemote) RequestCount() int64 {
	return m.requests.Load()
}

func (m *memRemote) request(ctx context.Context) error {
	m.requests.Inc()
	if err := ctx.Err(); err != nil {
		return shareerr.New(shareerr.CodeNetworkFailure, err.Error())
	}
	return nil
}

func (m *memRemote) ModifyRecords(ctx context.Context, entries []remoteshare.Entry, opts remoteshare.ModifyOptions) (map[string]remoteshare.SaveResult, error) {
	if err := m.request(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if opts.Atomic {
		for _, e := range entries {
			if err := m.validate(e, entries, opts.Policy); err != nil {
				return nil, err
			}
		}
		if err := m.checkQuota(entries); err != nil {
			return nil, err
		}
	}
	results := make(map[string]remoteshare.SaveResult, len(entries))
	for _, e := range entries {
		if !opts.Atomic {
			err := m.validate(e, entries, opts.Policy)
			if err == nil {
				err = m.checkQuota([]remoteshare.Entry{e})
			}
			if err != nil {
				results[e.Id()] = remoteshare.SaveResult{Err: err}
				continue
			}
		}
		results[e.Id()] = remoteshare.SaveResult{Entry: m.store(e)}
	}
	return results, nil
}

func (m *memRemote) AcceptInvitation(ctx context.Context, meta remoteshare.InvitationMetadata) (*remoteshare.Share, error) {
	if err := m.request(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	share, ok := m.shares[meta.ShareId]
	if !ok {
		return nil, shareerr.New(shareerr.CodeNotFound, "share not found")
	}
	p, ok := share.Participant(m.conf.Identity)
	if !ok || p.AcceptanceStatus == remoteshare.AcceptanceRemoved {
		return nil, shareerr.New(shareerr.CodePermissionFailure, "identity is not invited to the share")
	}
	p.AcceptanceStatus = remoteshare.AcceptanceAccepted
	share.ChangeTag = m.nextTag()
	return share.Copy(), nil
}

func (m *memRemote) ListInvitations(ctx context.Context) ([]remoteshare.InvitationMetadata, error) {
	if err := m.request(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []remoteshare.InvitationMetadata
	for _, share := range m.shares {
		p, ok := share.Participant(m.conf.Identity)
		if !ok || p.Role == remoteshare.RoleOwner {
			continue
		}
		meta := remoteshare.InvitationMetadata{
			ShareId:           share.Id,
			RootRecordId:      share.RootId,
			Title:             share.Title,
			Permission:        p.Permission,
			ParticipantStatus: p.AcceptanceStatus,
		}
		if owner := ownerOf(share); owner != nil {
			meta.OwnerIdentity = owner.Identity
		}
		res = append(res, meta)
	}
	slices.SortFunc(res, func(a, b remoteshare.InvitationMetadata) int {
		return strings.Compare(a.ShareId, b.ShareId)
	})
	return res, nil
}

func (m *memRemote) DeleteRecord(ctx context.Context, id string) error {
	if err := m.request(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if share, ok := m.shares[id]; ok {
		delete(m.shares, id)
		if root, ok := m.records[share.RootId]; ok && root.ShareRef == id {
			root.ShareRef = ""
		}
		return nil
	}
	if rec, ok := m.records[id]; ok {
		delete(m.records, id)
		if rec.ShareRef != "" {
			delete(m.shares, rec.ShareRef)
		}
		return nil
	}
	return shareerr.New(shareerr.CodeNotFound, "record not found")
}

func (m *memRemote) SaveRecord(ctx context.Context, entry remoteshare.Entry) (remoteshare.Entry, error) {
	if err := m.request(ctx); err != nil {
		return remoteshare.Entry{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	batch := []remoteshare.Entry{entry}
	if err := m.validate(entry, batch, remoteshare.SavePolicyIfServerRecordUnchanged); err != nil {
		return remoteshare.Entry{}, err
	}
	if err := m.checkQuota(batch); err != nil {
		return remoteshare.Entry{}, err
	}
	return m.store(entry), nil
}

func (m *memRemote) FetchRecord(ctx context.Context, id string) (remoteshare.Entry, error) {
	if err := m.request(ctx); err != nil {
		return remoteshare.Entry{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if share, ok := m.shares[id]; ok {
		return remoteshare.ShareEntry(share.Copy()), nil
	}
	if rec, ok := m.records[id]; ok {
		return remoteshare.RecordEntry(rec.Copy()), nil
	}
	return remoteshare.Entry{}, shareerr.New(shareerr.CodeNotFound, "record not found")
}

func (m *memRemote) Invite(shareId, identity, name string, permission remoteshare.Permission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	share, ok := m.shares[shareId]
	if !ok {
		return shareerr.New(shareerr.CodeNotFound, "share not found")
	}
	if p, ok := share.Participant(identity); ok {
		p.Permission = permission
		p.AcceptanceStatus = remoteshare.AcceptancePending
	} else {
		share.Participants = append(share.Participants, &remoteshare.Participant{
			Identity:         identity,
			Name:             name,
			Role:             remoteshare.RolePrivateUser,
			Permission:       permission,
			AcceptanceStatus: remoteshare.AcceptancePending,
		})
	}
	share.ChangeTag = m.nextTag()
	return nil
}

func (m *memRemote) validate(e remoteshare.Entry, batch []remoteshare.Entry, policy remoteshare.SavePolicy) error {
	switch e.Kind {
	case remoteshare.EntryKindShare:
		if e.Share == nil || e.Share.Id == "" {
			return shareerr.New(shareerr.CodeUnexpected, "invalid share")
		}
		if !m.rootExists(e.Share.RootId, batch) {
			return shareerr.New(shareerr.CodeNotFound, "root record not found")
		}
		stored, ok := m.shares[e.Share.Id]
		if ok && policy == remoteshare.SavePolicyIfServerRecordUnchanged && stored.ChangeTag != e.Share.ChangeTag {
			return shareerr.New(shareerr.CodeServerRecordChanged, "server record changed")
		}
		if ok && !m.isOwner(stored) {
			return shareerr.New(shareerr.CodePermissionFailure, "only the owner can modify a share")
		}
	case remoteshare.EntryKindPlain, remoteshare.EntryKindShareReference:
		if e.Record == nil || e.Record.Id == "" {
			return shareerr.New(shareerr.CodeUnexpected, "invalid record")
		}
	default:
		return shareerr.New(shareerr.CodeUnexpected, "unsupported entry kind: "+e.Kind.String())
	}
	return nil
}

func (m *memRemote) rootExists(rootId string, batch []remoteshare.Entry) bool {
	if _, ok := m.records[rootId]; ok {
		return true
	}
	return slices.ContainsFunc(batch, func(e remoteshare.Entry) bool {
		return e.Kind != remoteshare.EntryKindShare && e.Record != nil && e.Record.Id == rootId
	})
}

func (m *memRemote) isOwner(share *remoteshare.Share) bool {
	owner := ownerOf(share)
	return owner == nil || owner.Identity == m.conf.Identity
}

func (m *memRemote) checkQuota(batch []remoteshare.Entry) error {
	if m.conf.MaxRecords <= 0 {
		return nil
	}
	added := 0
	for _, e := range batch {
		id := e.Id()
		if _, ok := m.records[id]; ok {
			continue
		}
		if _, ok := m.shares[id]; ok {
			continue
		}
		added++
	}
	if len(m.records)+len(m.shares)+added > m.conf.MaxRecords {
		return shareerr.New(shareerr.CodeQuotaExceeded, "quota exceeded")
	}
	return nil
}

func (m *memRemote) store(e remoteshare.Entry) remoteshare.Entry {
	switch e.Kind {
	case remoteshare.EntryKindShare:
		share := e.Share.Copy()
		if len(share.Participants) == 0 && m.conf.Identity != "" {
			share.Participants = append(share.Participants, &remoteshare.Participant{
				Identity:         m.conf.Identity,
				Role:             remoteshare.RoleOwner,
				Permission:       remoteshare.PermissionReadWrite,
				AcceptanceStatus: remoteshare.AcceptanceAccepted,
			})
		}
		share.ChangeTag = m.nextTag()
		m.shares[share.Id] = share
		return remoteshare.ShareEntry(share.Copy())
	default:
		rec := e.Record.Copy()
		m.records[rec.Id] = rec
		return remoteshare.RecordEntry(rec.Copy())
	}
}

func (m *memRemote) nextTag() string {
	m.lastTag = lexId.Next(m.lastTag)
	return m.lastTag
}

func ownerOf(share *remoteshare.Share) *remoteshare.Participant {
	for _, p := range share.Participants {
		if p.Role == remoteshare.RoleOwner {
			return p
		}
	}
	return nil
}
