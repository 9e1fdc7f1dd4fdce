package configgen

import (
	"context"

	"github.com/jonathan/nac-planner/internal/llm"
)

type fakeClient struct {
	response string
	err      error
	requests []llm.Request
}

func (f *fakeClient) Generate(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) Model(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

func (f *fakeClient) Close() error { return nil }
