package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/events"
	apperrors "github.com/spec-kit/leave-portal/pkg/util"
)

// ListScope selects which requests a listing covers.
type ListScope string

const (
	// ScopeMine lists the requests owned by the calling employee.
	ScopeMine ListScope = "mine"
	// ScopeAll lists every request; managers and admins only.
	ScopeAll ListScope = "all"
)

// StatusFilterAll disables status filtering.
const StatusFilterAll = "ALL"

// LeaveService owns the client-side view of the leave request lifecycle:
// submit validation, the decision transition rules, and list filtering. The
// authoritative state lives behind the backend API; after every mutation the
// caller re-fetches rather than patching local copies.
type LeaveService struct {
	api        backend.LeaveAPI
	dispatcher events.Dispatcher

	mu       sync.Mutex
	inflight map[int64]struct{}
}

// NewLeaveService constructs the service.
func NewLeaveService(api backend.LeaveAPI, dispatcher events.Dispatcher) *LeaveService {
	return &LeaveService{
		api:        api,
		dispatcher: dispatcher,
		inflight:   make(map[int64]struct{}),
	}
}

// SubmitInput describes a new leave request.
type SubmitInput struct {
	LeaveType string
	StartDate domain.Date
	EndDate   domain.Date
	Reason    string
}

// Submit validates and creates a request owned by the actor, always in
// PENDING state.
func (s *LeaveService) Submit(ctx context.Context, actor domain.User, input SubmitInput) (*domain.LeaveRequest, error) {
	if !domain.KnownLeaveType(input.LeaveType) {
		return nil, apperrors.NewValidationError("unrecognized leave type", map[string]any{"leaveType": input.LeaveType})
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, apperrors.NewValidationError("start and end dates are required", nil)
	}
	if input.StartDate.After(input.EndDate) {
		return nil, apperrors.NewValidationError("start date must not be after end date", nil)
	}

	created, err := s.api.CreateLeave(ctx, backend.CreateLeaveRequest{
		EmployeeID: actor.ID,
		LeaveType:  input.LeaveType,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Reason:     strings.TrimSpace(input.Reason),
		Status:     domain.LeaveStatusPending,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventLeaveSubmitted,
		LeaveID: created.ID,
		Actor:   events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.LeaveSubmittedPayload{
			LeaveType:    created.LeaveType,
			StartDate:    created.StartDate,
			EndDate:      created.EndDate,
			DurationDays: created.DurationDays(),
		},
	})
	return created, nil
}

// Decide moves a PENDING request to APPROVED or REJECTED. Only managers and
// admins may decide, a terminal request is never re-decided, and a second
// decision for the same request id is refused while the first is in flight.
func (s *LeaveService) Decide(ctx context.Context, actor domain.User, requestID int64, decision domain.LeaveStatus) (*domain.LeaveRequest, error) {
	if decision != domain.LeaveStatusApproved && decision != domain.LeaveStatusRejected {
		return nil, apperrors.NewValidationError("decision must be APPROVED or REJECTED", nil)
	}
	if !actor.Role.CanDecide() {
		return nil, apperrors.NewForbidden("manager or admin role required")
	}

	if !s.beginDecision(requestID) {
		return nil, apperrors.NewConflict("a decision for this request is already in flight", nil)
	}
	defer s.endDecision(requestID)

	current, err := s.api.GetLeave(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(current.Status, decision) {
		return nil, apperrors.NewConflict("leave request already decided", map[string]any{"status": current.Status})
	}

	updated, err := s.api.UpdateLeaveStatus(ctx, requestID, decision)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventLeaveDecided,
		LeaveID: requestID,
		Actor:   events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.LeaveDecidedPayload{Decision: decision},
	})
	return updated, nil
}

// List fetches requests for the given scope. The result is always fetched
// fresh from the backend.
func (s *LeaveService) List(ctx context.Context, actor domain.User, scope ListScope) ([]domain.LeaveRequest, error) {
	switch scope {
	case ScopeMine:
		return s.api.ListLeavesByEmployee(ctx, actor.ID)
	case ScopeAll:
		if !actor.Role.CanDecide() {
			return nil, apperrors.NewForbidden("manager or admin role required")
		}
		return s.api.ListLeaves(ctx)
	default:
		return nil, apperrors.NewValidationError("scope must be mine or all", nil)
	}
}

// Get fetches one request, enforcing that employees only see their own.
func (s *LeaveService) Get(ctx context.Context, actor domain.User, requestID int64) (*domain.LeaveRequest, error) {
	leave, err := s.api.GetLeave(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanDecide() && leave.EmployeeID != actor.ID {
		return nil, apperrors.NewForbidden("not your leave request")
	}
	return leave, nil
}

// Delete removes a request. Owners may withdraw while still PENDING; admins
// may delete anything.
func (s *LeaveService) Delete(ctx context.Context, actor domain.User, requestID int64) error {
	leave, err := s.api.GetLeave(ctx, requestID)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin {
		if leave.EmployeeID != actor.ID {
			return apperrors.NewForbidden("not your leave request")
		}
		if leave.Status != domain.LeaveStatusPending {
			return apperrors.NewConflict("only pending requests can be withdrawn", nil)
		}
	}
	if err := s.api.DeleteLeave(ctx, requestID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventLeaveDeleted,
		LeaveID: requestID,
		Actor:   events.Actor{UserID: actor.ID, Role: actor.Role},
	})
	return nil
}

// FilterLeaves narrows a fetched list by exact status and a case-insensitive
// substring over leave type, reason, and id. It is a pure view operation.
func FilterLeaves(items []domain.LeaveRequest, status string, term string) []domain.LeaveRequest {
	term = strings.ToLower(strings.TrimSpace(term))
	filtered := make([]domain.LeaveRequest, 0, len(items))
	for _, item := range items {
		if status != "" && status != StatusFilterAll && string(item.Status) != status {
			continue
		}
		if term != "" && !matchesTerm(item, term) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func matchesTerm(item domain.LeaveRequest, term string) bool {
	if strings.Contains(strings.ToLower(item.LeaveType), term) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Reason), term) {
		return true
	}
	return strings.Contains(strconv.FormatInt(item.ID, 10), term)
}

func (s *LeaveService) beginDecision(requestID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[requestID]; busy {
		return false
	}
	s.inflight[requestID] = struct{}{}
	return true
}

func (s *LeaveService) endDecision(requestID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, requestID)
}

var allowedTransitions = map[domain.LeaveStatus][]domain.LeaveStatus{
	domain.LeaveStatusPending:  {domain.LeaveStatusApproved, domain.LeaveStatusRejected},
	domain.LeaveStatusApproved: {},
	domain.LeaveStatusRejected: {},
}

func isValidTransition(current, next domain.LeaveStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func (s *LeaveService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
