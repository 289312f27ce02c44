// Package gmail fetches candidate inquiry messages from a Gmail inbox
// and archives them after successful delivery.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	gm "google.golang.org/api/gmail/v1"

	"github.com/sawadari/hankyo/internal/types"
)

// Client wraps the Gmail API as a pipeline message source.
type Client struct {
	svc   *gm.Service
	query string
}

// NewClient builds a source over an authenticated service. query is an
// optional Gmail search filter applied on top of the inbox listing.
func NewClient(svc *gm.Service, query string) *Client {
	return &Client{svc: svc, query: query}
}

// FetchCandidateIDs lists unprocessed inbox message IDs, newest first.
func (c *Client) FetchCandidateIDs(ctx context.Context, max int) ([]string, error) {
	call := c.svc.Users.Messages.List("me").
		LabelIds("INBOX").
		MaxResults(int64(max)).
		Context(ctx)
	if c.query != "" {
		call = call.Q(c.query)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// FetchFullMessage fetches one message with its decoded body parts.
func (c *Client) FetchFullMessage(ctx context.Context, id string) (*types.RawMessage, error) {
	msg, err := c.svc.Users.Messages.Get("me", id).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", id, err)
	}

	headers := headerMap(msg.Payload.Headers)
	return &types.RawMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Sender:   headers["From"],
		Subject:  defaultStr(headers["Subject"], "(no subject)"),
		Date:     headers["Date"],
		Parts:    extractParts(msg.Payload),
		Received: time.UnixMilli(msg.InternalDate).UTC(),
	}, nil
}

// ArchiveMessage removes the message from the inbox.
func (c *Client) ArchiveMessage(ctx context.Context, id string) error {
	_, err := c.svc.Users.Messages.Modify("me", id, &gm.ModifyMessageRequest{
		RemoveLabelIds: []string{"INBOX"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("archive message %s: %w", id, err)
	}
	return nil
}

// extractParts collects decoded text parts from a payload, recursing
// into nested multiparts. text/plain comes before text/html so the
// flattened body prefers plain text.
func extractParts(payload *gm.MessagePart) []types.BodyPart {
	var plain, html []types.BodyPart

	var scan func(p *gm.MessagePart)
	scan = func(p *gm.MessagePart) {
		if p.Body != nil && p.Body.Data != "" {
			if decoded, err := decodeBase64URL(p.Body.Data); err == nil {
				switch {
				case p.MimeType == "text/plain" || p.MimeType == "":
					plain = append(plain, types.BodyPart{MimeType: "text/plain", Content: decoded})
				case p.MimeType == "text/html":
					html = append(html, types.BodyPart{MimeType: "text/html", Content: decoded})
				}
			}
		}
		for _, child := range p.Parts {
			scan(child)
		}
	}
	scan(payload)

	if len(plain) > 0 {
		return plain
	}
	return html
}

// headerMap converts Gmail API headers into a simple key-value map.
func headerMap(headers []*gm.MessagePartHeader) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h.Name] = h.Value
	}
	return m
}

// decodeBase64URL decodes Gmail's base64url-encoded content.
func decodeBase64URL(data string) (string, error) {
	// Gmail uses URL-safe base64 without padding.
	data = strings.ReplaceAll(data, "-", "+")
	data = strings.ReplaceAll(data, "_", "/")
	switch len(data) % 4 {
	case 2:
		data += "=="
	case 3:
		data += "="
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
