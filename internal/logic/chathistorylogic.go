package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"findash-api/internal/apperr"
	"findash-api/internal/repo"
	"findash-api/internal/svc"
	"findash-api/internal/types"
)

type ChatHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChatHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatHistoryLogic {
	return &ChatHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ChatHistory lists turns oldest first, scoped to symbol when one is given.
func (l *ChatHistoryLogic) ChatHistory(symbol string) ([]types.ChatMessage, error) {
	var (
		turns []repo.ChatTurn
		err   error
	)
	if symbol != "" {
		turns, err = l.svcCtx.Repos.Transcript.ListBySymbol(l.ctx, symbol)
	} else {
		turns, err = l.svcCtx.Repos.Transcript.ListAll(l.ctx)
	}
	if err != nil {
		return nil, apperr.Internal("failed to fetch chat history", err)
	}
	out := make([]types.ChatMessage, 0, len(turns))
	for _, t := range turns {
		out = append(out, toChatMessage(t))
	}
	return out, nil
}
