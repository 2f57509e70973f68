package handlers

import (
	"context"
	"net/http"

	"github.com/ragavan2104/mailblaster/accounts"
	"github.com/ragavan2104/mailblaster/campaigns"
	"github.com/ragavan2104/mailblaster/internal"
	"github.com/ragavan2104/mailblaster/middlewares"
)

// Dispatcher is the part of campaigns.Dispatcher the send routes need.
type Dispatcher interface {
	Dispatch(ctx context.Context, req campaigns.Request) (campaigns.Result, error)
	SendSingle(ctx context.Context, to, subject, body string) (campaigns.SingleResult, error)
}

// SendMail serves bulk and single sends.
type SendMail struct {
	dispatcher Dispatcher
	protect    internal.Middleware
}

// NewSendMail creates the send handler. protect guards bulk sends only;
// single sends are unauthenticated.
func NewSendMail(d Dispatcher, protect internal.Middleware) *SendMail {
	return &SendMail{dispatcher: d, protect: protect}
}

func (h *SendMail) Routes(r internal.Router) {
	r.POST("/sendmail", h.bulk, h.protect)
	r.POST("/sendmail/single", h.single)
}

type bulkRequest struct {
	Msg     string   `json:"msg"`
	Subject string   `json:"subject"`
	Emails  []string `json:"emails"`
}

type singleRequest struct {
	Msg     string `json:"msg"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

func (h *SendMail) bulk(c internal.Context) error {
	var req bulkRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}

	sentBy := ""
	if claims := middlewares.GetJWTClaims[accounts.Claims](c); claims != nil {
		sentBy = claims.Username
	}

	res, err := h.dispatcher.Dispatch(c.Context(), campaigns.Request{
		Subject: req.Subject,
		Body:    req.Msg,
		Emails:  req.Emails,
		SentBy:  sentBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":   "Email sending completed",
		"summary":   res.Summary,
		"results":   res.Results,
		"historyId": res.HistoryID,
	})
}

func (h *SendMail) single(c internal.Context) error {
	var req singleRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	res, err := h.dispatcher.SendSingle(c.Context(), req.Email, req.Subject, req.Msg)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":   "Email sent successfully",
		"email":     res.Email,
		"messageId": res.MessageID,
	})
}
