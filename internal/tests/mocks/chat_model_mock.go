package mocks

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModelMock records every history it receives.
type ChatModelMock struct {
	GenerateFunc func(ctx context.Context, input []*schema.Message) (*schema.Message, error)
	Inputs       [][]*schema.Message
}

func (m *ChatModelMock) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.Inputs = append(m.Inputs, input)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, input)
	}
	return schema.AssistantMessage("", nil), nil
}

func (m *ChatModelMock) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming is not supported by the mock")
}
