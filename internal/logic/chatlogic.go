package logic

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/apperr"
	"findash-api/internal/svc"
	"findash-api/internal/types"
	"findash-api/pkg/assistant"
)

type ChatLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChatLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatLogic {
	return &ChatLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ChatLogic) Chat(req *types.ChatReq) (resp *types.ChatResp, err error) {
	turn, err := l.svcCtx.Assistant.Ask(l.ctx, assistant.Question{Message: req.Message, Symbol: req.Symbol})
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		return nil, apperr.Validation("Message is required", err)
	case errors.Is(err, assistant.ErrMessageTooLong):
		return nil, apperr.Validation(err.Error(), err)
	case err != nil:
		return nil, apperr.Internal("failed to process chat message", err)
	}
	return &types.ChatResp{
		ID:        turn.ID,
		Response:  turn.Response,
		Symbol:    symbolOrNil(turn.Symbol),
		CreatedAt: turn.CreatedAt,
	}, nil
}
