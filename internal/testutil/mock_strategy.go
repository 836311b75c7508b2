//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/guandan/internal/ai"
	"github.com/palemoky/guandan/internal/game/pattern"
	"github.com/palemoky/guandan/internal/game/session"
)

// MockStrategy 实现 ai.Strategy 的 mock
type MockStrategy struct {
	mock.Mock
}

func (m *MockStrategy) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStrategy) SelectBestPlay(options []ai.Option, view *session.View, mem *ai.Memory) ai.Decision {
	args := m.Called(options, view, mem)
	return args.Get(0).(ai.Decision)
}

func (m *MockStrategy) EvaluatePlay(p *pattern.Pattern, view *session.View, mem *ai.Memory) float64 {
	args := m.Called(p, view, mem)
	return args.Get(0).(float64)
}

func (m *MockStrategy) EvaluatePass(view *session.View, mem *ai.Memory) float64 {
	args := m.Called(view, mem)
	return args.Get(0).(float64)
}

func (m *MockStrategy) UpdateMemory(rec session.PlayRecord, view *session.View, mem *ai.Memory) {
	m.Called(rec, view, mem)
}

// PanicStrategy 评估时必定 panic 的策略，不使用 testify（用于验证决策降级路径）
type PanicStrategy struct{}

func (PanicStrategy) Name() string { return "panic" }

func (PanicStrategy) SelectBestPlay([]ai.Option, *session.View, *ai.Memory) ai.Decision {
	panic("评估崩溃")
}

func (PanicStrategy) EvaluatePlay(*pattern.Pattern, *session.View, *ai.Memory) float64 {
	panic("评估崩溃")
}

func (PanicStrategy) EvaluatePass(*session.View, *ai.Memory) float64 {
	panic("评估崩溃")
}

func (PanicStrategy) UpdateMemory(session.PlayRecord, *session.View, *ai.Memory) {}
