package sharecoordinator

import (
	"go.uber.org/zap"

	"github.com/anyproto/any-share/remoteshare"
	"github.com/anyproto/any-share/remoteshare/shareerr"
)

// sessionDelegate receives the terminal event of one sharing dialog session for a resource
type sessionDelegate struct {
	c          *shareCoordinator
	resourceId string
}

func (d *sessionDelegate) SaveSucceeded(share *remoteshare.Share) {
	if share == nil {
		return
	}
	if err := d.c.update(func(st *state) {
		st.setShared(d.resourceId, share)
	}); err != nil {
		log.Warn("can't apply saved share", zap.String("resourceId", d.resourceId), zap.Error(err))
	}
}

func (d *sessionDelegate) SaveFailed(err error) {
	msg := shareerr.Message(shareerr.Wrap(err))
	log.Warn("sharing dialog failed to save share", zap.String("resourceId", d.resourceId), zap.Error(err))
	if uerr := d.c.update(func(st *state) {
		st.setError(d.resourceId, msg)
	}); uerr != nil {
		log.Warn("can't record failure", zap.String("resourceId", d.resourceId), zap.Error(uerr))
	}
}

func (d *sessionDelegate) StoppedSharing() {
	if err := d.c.update(func(st *state) {
		st.setNotShared(d.resourceId)
	}); err != nil {
		log.Warn("can't apply stopped sharing", zap.String("resourceId", d.resourceId), zap.Error(err))
	}
}
