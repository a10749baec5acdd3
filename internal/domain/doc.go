// Package domain contains the core business entities, value objects, and
// domain logic of the application: principals, calorie and exercise log
// entries, friendship edges and their state machine, the input validators
// every request passes through, and the error kinds the API surfaces.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
