//go:generate mockgen -destination mock_remoteshare/mock_remoteshare.go github.com/anyproto/any-share/remoteshare Service
// Package remoteshare describes the remote record store that owns shares, participants and invitations.
package remoteshare

import (
	"context"

	"github.com/anyproto/any-share/app"
)

const CName = "share.remoteshare"

// Service is the remote sharing backend. Every call is a single round trip.
type Service interface {
	// ModifyRecords saves the given entries; with opts.Atomic either all entries are stored or none
	ModifyRecords(ctx context.Context, entries []Entry, opts ModifyOptions) (map[string]SaveResult, error)
	// AcceptInvitation exchanges invitation metadata for a live share
	AcceptInvitation(ctx context.Context, meta InvitationMetadata) (*Share, error)
	// ListInvitations returns every invitation visible to the current identity
	ListInvitations(ctx context.Context) ([]InvitationMetadata, error)
	DeleteRecord(ctx context.Context, id string) error
	// SaveRecord stores a single entry and returns it as the server sees it after the save
	SaveRecord(ctx context.Context, entry Entry) (Entry, error)
	FetchRecord(ctx context.Context, id string) (Entry, error)
	app.Component
}

type SavePolicy int

const (
	// SavePolicyIfServerRecordUnchanged rejects the save when the server holds a newer change tag
	SavePolicyIfServerRecordUnchanged SavePolicy = iota
	SavePolicyChangedKeys
	SavePolicyAllKeys
)

type ModifyOptions struct {
	Policy SavePolicy
	Atomic bool
}

// SaveResult is the per-record outcome of ModifyRecords
type SaveResult struct {
	Entry Entry
	Err   error
}
