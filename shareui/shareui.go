//go:generate mockgen -destination mock_shareui/mock_shareui.go github.com/anyproto/any-share/shareui Presenter
// Package shareui is the boundary to the platform sharing dialog.
package shareui

import (
	"context"

	"github.com/anyproto/any-share/app"
	"github.com/anyproto/any-share/remoteshare"
)

const CName = "share.shareui"

// Presenter shows the sharing dialog for a share.
// Each session reports exactly one terminal event to its delegate.
type Presenter interface {
	Present(ctx context.Context, share *remoteshare.Share, delegate SessionDelegate) error
	app.Component
}

type SessionDelegate interface {
	SaveSucceeded(share *remoteshare.Share)
	SaveFailed(err error)
	StoppedSharing()
}
