package ui

import (
	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/db"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/ui/common"
	"github.com/deemkeen/crownconsole/util"
)

// Services holds what every console session shares. Journal and Avatars may
// be nil.
type Services struct {
	Conf    *util.AppConfig
	Journal *db.DB
	Avatars *api.AvatarFetcher
}

func NewServices(conf *util.AppConfig, journal *db.DB) Services {
	s := Services{Conf: conf, Journal: journal}
	if conf.Conf.Avatars {
		s.Avatars = api.NewAvatarFetcher(conf.Conf.AvatarBase, nil)
	}
	return s
}

// Client returns a REST client acting for sess.
func (s Services) Client(sess domain.Session) *api.Client {
	return api.NewClient(s.Conf.Conf.ApiBase, sess, api.Options{
		Timeout:           s.Conf.Timeout(),
		RequestsPerSecond: s.Conf.Conf.RequestsPerSecond,
		Logger:            util.Logger(),
	})
}

// Deps builds the dependencies for one console session.
func (s Services) Deps(sess domain.Session) common.Deps {
	deps := common.Deps{Session: sess, Backend: s.Client(sess)}
	if s.Journal != nil {
		deps.Journal = s.Journal
	}
	if s.Avatars != nil {
		deps.Avatars = s.Avatars
	}
	return deps
}
