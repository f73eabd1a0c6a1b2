package api

import (
	"context"

	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockContactService is a mock implementation of ContactService for testing.
type MockContactService struct {
	mock.Mock
}

var _ ContactService = (*MockContactService)(nil)

// List provides a mock function with given fields: ctx.
func (_m *MockContactService) List(ctx context.Context) ([]domain.Contact, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Contact
	if rf, ok := ret.Get(0).(func(context.Context) []domain.Contact); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Contact)
	}

	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, payload.
func (_m *MockContactService) Create(ctx context.Context, payload domain.ContactPayload) (domain.Contact, error) {
	ret := _m.Called(ctx, payload)

	var r0 domain.Contact
	if rf, ok := ret.Get(0).(func(context.Context, domain.ContactPayload) domain.Contact); ok {
		r0 = rf(ctx, payload)
	} else {
		r0 = ret.Get(0).(domain.Contact)
	}

	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, id.
func (_m *MockContactService) Delete(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}
