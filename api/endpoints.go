package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/deemkeen/crownconsole/domain"
)

// PunishmentQuery filters the punishment list. Zero fields are omitted.
type PunishmentQuery struct {
	Limit     int
	Type      domain.PunishmentType
	Target    string
	Moderator string
}

func (q PunishmentQuery) values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Type != domain.TypeUnknown {
		v.Set("type", q.Type.String())
	}
	if q.Target != "" {
		v.Set("target", q.Target)
	}
	if q.Moderator != "" {
		v.Set("moderator", q.Moderator)
	}
	return v
}

// ListPunishments returns GET /punishments. A nil backend list becomes an
// empty, successful slice.
func (c *Client) ListPunishments(ctx context.Context, q PunishmentQuery) Result[[]domain.Punishment] {
	var out []domain.Punishment
	err := c.doRequest(ctx, http.MethodGet, "/punishments", q.values(), nil, &out)
	if out == nil {
		out = []domain.Punishment{}
	}
	return resultOf(out, err)
}

func (c *Client) GetPunishment(ctx context.Context, id string) Result[domain.PunishmentDetails] {
	var out domain.PunishmentDetails
	err := c.doRequest(ctx, http.MethodGet, "/punishments/"+url.PathEscape(id), nil, nil, &out)
	return resultOf(out, err)
}

// CreatePunishment submits the form as this session's admin. The form's
// field rules are applied again before sending.
func (c *Client) CreatePunishment(ctx context.Context, form domain.CreateForm) Result[domain.CreatePunishmentResponse] {
	req := form.Request(c.session.AdminName())
	var out domain.CreatePunishmentResponse
	if err := c.doRequest(ctx, http.MethodPost, "/punishments", nil, req, &out); err != nil {
		return Fail[domain.CreatePunishmentResponse](err)
	}
	if !out.Succeeded() {
		return Fail[domain.CreatePunishmentResponse](&RejectedError{Message: out.Message})
	}
	if out.Type == "" {
		out.Type = req.Type
	}
	if out.Target == "" {
		out.Target = req.Target
	}
	return Ok(out)
}

// ListReports returns GET /reports, filtered by status unless it is ReportUnknown.
func (c *Client) ListReports(ctx context.Context, status domain.ReportStatus) Result[[]domain.Report] {
	q := url.Values{}
	if status != domain.ReportUnknown {
		q.Set("status", status.String())
	}
	var out []domain.Report
	err := c.doRequest(ctx, http.MethodGet, "/reports", q, nil, &out)
	if out == nil {
		out = []domain.Report{}
	}
	return resultOf(out, err)
}

func (c *Client) GetReport(ctx context.Context, id string) Result[domain.Report] {
	var out domain.Report
	err := c.doRequest(ctx, http.MethodGet, "/reports/"+url.PathEscape(id), nil, nil, &out)
	return resultOf(out, err)
}

// UpdateReportStatus resolves or rejects a report as this session's admin.
func (c *Client) UpdateReportStatus(ctx context.Context, id string, status domain.ReportStatus) Result[bool] {
	body := domain.UpdateReportRequest{Status: status.String()}
	if adminUUID, ok := c.session.AdminUUID(); ok {
		s := adminUUID.String()
		body.ModeratorUUID = &s
	}
	var out domain.SuccessResponse
	if err := c.doRequest(ctx, http.MethodPost, "/reports/"+url.PathEscape(id)+"/status", nil, body, &out); err != nil {
		return Fail[bool](err)
	}
	if !out.Success {
		return Fail[bool](&RejectedError{})
	}
	return Ok(true)
}

func (c *Client) ModeratorStats(ctx context.Context, moderator string) Result[domain.ModeratorStats] {
	var out domain.ModeratorStats
	err := c.doRequest(ctx, http.MethodGet, "/moderators/"+url.PathEscape(moderator), nil, nil, &out)
	return resultOf(out, err)
}
