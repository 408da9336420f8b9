package lex

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2/types"
)

type Utterance struct {
	SessionID         string
	Text              string
	SessionAttributes map[string]string
}

type Reply struct {
	Message           string
	DialogState       string
	SessionAttributes map[string]string
	Slots             map[string]string
}

type LexInterface interface {
	RecognizeText(ctx context.Context, u *Utterance) (*Reply, error)
}

type recognizer interface {
	RecognizeText(ctx context.Context, params *lexruntimev2.RecognizeTextInput, optFns ...func(*lexruntimev2.Options)) (*lexruntimev2.RecognizeTextOutput, error)
}

type Client struct {
	api        recognizer
	botID      string
	botAliasID string
	localeID   string
}

func NewClient(cfg aws.Config, botID, botAliasID, localeID string) *Client {
	return newClient(lexruntimev2.NewFromConfig(cfg), botID, botAliasID, localeID)
}

func newClient(api recognizer, botID, botAliasID, localeID string) *Client {
	return &Client{api: api, botID: botID, botAliasID: botAliasID, localeID: localeID}
}

func (c *Client) RecognizeText(ctx context.Context, u *Utterance) (*Reply, error) {
	out, err := c.api.RecognizeText(ctx, &lexruntimev2.RecognizeTextInput{
		BotId:      aws.String(c.botID),
		BotAliasId: aws.String(c.botAliasID),
		LocaleId:   aws.String(c.localeID),
		SessionId:  aws.String(u.SessionID),
		Text:       aws.String(u.Text),
		SessionState: &types.SessionState{
			SessionAttributes: u.SessionAttributes,
		},
	})
	if err != nil {
		return nil, err
	}

	reply := &Reply{
		SessionAttributes: map[string]string{},
		Slots:             map[string]string{},
	}
	if len(out.Messages) > 0 {
		reply.Message = aws.ToString(out.Messages[0].Content)
	}
	if out.SessionState != nil {
		if out.SessionState.SessionAttributes != nil {
			reply.SessionAttributes = out.SessionState.SessionAttributes
		}
		if intent := out.SessionState.Intent; intent != nil {
			reply.DialogState = string(intent.State)
			for name, slot := range intent.Slots {
				if slot.Value != nil {
					reply.Slots[name] = aws.ToString(slot.Value.InterpretedValue)
				}
			}
		}
	}
	return reply, nil
}
