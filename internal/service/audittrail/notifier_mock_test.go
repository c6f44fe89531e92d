package audittrail

import (
	"context"
	"sync"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	SuccessFunc func(ctx context.Context, title string, message string)
	WarningFunc func(ctx context.Context, title string, message string)
	ErrorFunc   func(ctx context.Context, title string, message string)

	calls struct {
		Success []struct {
			Ctx     context.Context
			Title   string
			Message string
		}
		Warning []struct {
			Ctx     context.Context
			Title   string
			Message string
		}
		Error []struct {
			Ctx     context.Context
			Title   string
			Message string
		}
	}
	lockSuccess sync.RWMutex
	lockWarning sync.RWMutex
	lockError   sync.RWMutex
}

func (mock *notifierMock) Success(ctx context.Context, title string, message string) {
	if mock.SuccessFunc == nil {
		panic("notifierMock.SuccessFunc: method is nil but notifier.Success was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Title   string
		Message string
	}{
		Ctx:     ctx,
		Title:   title,
		Message: message,
	}
	mock.lockSuccess.Lock()
	mock.calls.Success = append(mock.calls.Success, callInfo)
	mock.lockSuccess.Unlock()
	mock.SuccessFunc(ctx, title, message)
}

func (mock *notifierMock) SuccessCalls() []struct {
	Ctx     context.Context
	Title   string
	Message string
} {
	var calls []struct {
		Ctx     context.Context
		Title   string
		Message string
	}
	mock.lockSuccess.RLock()
	calls = mock.calls.Success
	mock.lockSuccess.RUnlock()
	return calls
}

func (mock *notifierMock) Warning(ctx context.Context, title string, message string) {
	if mock.WarningFunc == nil {
		panic("notifierMock.WarningFunc: method is nil but notifier.Warning was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Title   string
		Message string
	}{
		Ctx:     ctx,
		Title:   title,
		Message: message,
	}
	mock.lockWarning.Lock()
	mock.calls.Warning = append(mock.calls.Warning, callInfo)
	mock.lockWarning.Unlock()
	mock.WarningFunc(ctx, title, message)
}

func (mock *notifierMock) WarningCalls() []struct {
	Ctx     context.Context
	Title   string
	Message string
} {
	var calls []struct {
		Ctx     context.Context
		Title   string
		Message string
	}
	mock.lockWarning.RLock()
	calls = mock.calls.Warning
	mock.lockWarning.RUnlock()
	return calls
}

func (mock *notifierMock) Error(ctx context.Context, title string, message string) {
	if mock.ErrorFunc == nil {
		panic("notifierMock.ErrorFunc: method is nil but notifier.Error was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Title   string
		Message string
	}{
		Ctx:     ctx,
		Title:   title,
		Message: message,
	}
	mock.lockError.Lock()
	mock.calls.Error = append(mock.calls.Error, callInfo)
	mock.lockError.Unlock()
	mock.ErrorFunc(ctx, title, message)
}

func (mock *notifierMock) ErrorCalls() []struct {
	Ctx     context.Context
	Title   string
	Message string
} {
	var calls []struct {
		Ctx     context.Context
		Title   string
		Message string
	}
	mock.lockError.RLock()
	calls = mock.calls.Error
	mock.lockError.RUnlock()
	return calls
}
