package web

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deemkeen/crownconsole/api"
	"github.com/deemkeen/crownconsole/domain"
	"github.com/deemkeen/crownconsole/util"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
)

const feedLimit = 50

// PunishmentSource lists punishments for the feed.
type PunishmentSource interface {
	ListPunishments(ctx context.Context, q api.PunishmentQuery) api.Result[[]domain.Punishment]
}

// BuildFeed turns punishments into a feed, newest first as the API returns them.
func BuildFeed(ps []domain.Punishment, link string) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       "Punishments",
		Link:        &feeds.Link{Href: link},
		Description: "Recent punishments issued on the server",
		Author:      &feeds.Author{Name: util.Name},
		Created:     time.Now(),
	}
	if len(ps) > 0 && !ps[0].Timestamp.IsZero() {
		feed.Updated = ps[0].Timestamp.Time
	}

	for _, p := range ps {
		title := fmt.Sprintf("%s %s", p.TypeLabel(), p.Target())
		desc := fmt.Sprintf("Reason: %s\nDuration: %s\nMethod: %s\nStatus: %s",
			p.Reason, p.DurationLabel(), p.Method(), p.StatusLabel())
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.ID,
			Title:       title,
			Link:        &feeds.Link{Href: strings.TrimRight(link, "/") + "#" + p.ID},
			Description: desc,
			Author:      &feeds.Author{Name: p.Moderator()},
			Created:     p.Timestamp.Time,
		})
	}
	return feed
}

func feedAllowed(c *gin.Context, token string) bool {
	if token == "" {
		return true
	}
	got := c.Query("token")
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}

type feedFormat int

const (
	formatRSS feedFormat = iota
	formatAtom
)

// HandleFeed serves recent punishments as RSS or Atom.
func HandleFeed(source PunishmentSource, conf *util.AppConfig, format feedFormat) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !feedAllowed(c, conf.Conf.FeedToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid feed token"})
			return
		}

		res := source.ListPunishments(c.Request.Context(), api.PunishmentQuery{Limit: feedLimit})
		if !res.OK() {
			util.Logger().Warn("Feed fetch failed", "err", res.Failure())
			c.JSON(http.StatusBadGateway, gin.H{"error": api.Describe(res.Failure())})
			return
		}

		link := fmt.Sprintf("%s://%s/", scheme(c), c.Request.Host)
		feed := BuildFeed(res.Value, link)

		var (
			body        string
			err         error
			contentType string
		)
		switch format {
		case formatRSS:
			body, err = feed.ToRss()
			contentType = "application/rss+xml; charset=utf-8"
		case formatAtom:
			body, err = feed.ToAtom()
			contentType = "application/atom+xml; charset=utf-8"
		}
		if err != nil {
			util.Logger().Error("Feed encoding failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not encode feed"})
			return
		}
		c.Data(http.StatusOK, contentType, []byte(body))
	}
}

func scheme(c *gin.Context) string {
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}
