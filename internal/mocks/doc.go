// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify/mock so tests can set expectations on
// exact arguments; their WithTx methods return the mock itself so the same
// expectations apply inside transactions. Service and credential mocks use
// function fields with default return values.
//
// Usage:
//
//	users := new(mocks.UserStore)
//	users.On("GetByID", mock.Anything, id).Return(user, nil)
//
//	jwtService := &mocks.MockJWTService{Token: "mocked-token"}
package mocks
