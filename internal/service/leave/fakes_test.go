package leave

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/timepulse/timepulse-backend/internal/domain/leave"
)

type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type memRequestRepo struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
	locked   []string
}

func newMemRequestRepo(existing ...leave.LeaveRequest) *memRequestRepo {
	repo := &memRequestRepo{requests: make(map[string]leave.LeaveRequest)}
	for _, r := range existing {
		repo.requests[r.ID] = r
	}
	return repo
}

func (m *memRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[request.ID] = request
	return request, nil
}

func (m *memRequestRepo) GetByID(ctx context.Context, tenantID, id string) (leave.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok || r.TenantID != tenantID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (m *memRequestRepo) List(ctx context.Context, tenantID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if r.TenantID != tenantID {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *memRequestRepo) ListOverlapCandidates(ctx context.Context, employeeID string, dr leave.DateRange) ([]leave.LeaveRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if r.EmployeeID == employeeID && r.Status != leave.LeaveRequestStatusCancelled && dr.Overlaps(r.Range()) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRequestRepo) LockEmployee(ctx context.Context, employeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = append(m.locked, employeeID)
	return nil
}

func (m *memRequestRepo) UpdateDecision(ctx context.Context, request leave.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.requests[request.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if stored.Status != leave.LeaveRequestStatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}
	m.requests[request.ID] = request
	return nil
}

type balanceKey struct {
	employeeID string
	leaveType  leave.LeaveType
	year       int
}

type memBalanceRepo struct {
	mu       sync.Mutex
	balances map[balanceKey]leave.LeaveBalance
}

func newMemBalanceRepo(balances ...leave.LeaveBalance) *memBalanceRepo {
	repo := &memBalanceRepo{balances: make(map[balanceKey]leave.LeaveBalance)}
	for _, b := range balances {
		repo.balances[balanceKey{b.EmployeeID, b.LeaveType, b.Year}] = b
	}
	return repo
}

func (m *memBalanceRepo) get(employeeID string, t leave.LeaveType, year int) leave.LeaveBalance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[balanceKey{employeeID, t, year}]
}

func (m *memBalanceRepo) GetForUpdate(ctx context.Context, employeeID string, t leave.LeaveType, year int) (leave.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[balanceKey{employeeID, t, year}]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (m *memBalanceRepo) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []leave.LeaveBalance
	for k, b := range m.balances {
		if k.employeeID == employeeID && k.year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBalanceRepo) Upsert(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := balanceKey{balance.EmployeeID, balance.LeaveType, balance.Year}
	if existing, ok := m.balances[k]; ok {
		existing.Total = balance.Total
		m.balances[k] = existing
		return existing, nil
	}
	m.balances[k] = balance
	return balance, nil
}

func (m *memBalanceRepo) UpdateUsage(ctx context.Context, balance leave.LeaveBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := balanceKey{balance.EmployeeID, balance.LeaveType, balance.Year}
	if _, ok := m.balances[k]; !ok {
		return leave.ErrBalanceNotFound
	}
	m.balances[k] = balance
	return nil
}

type fakeFileService struct {
	UploadFn func(employeeID, filename string) (string, error)
	deleted  []string
}

func (f *fakeFileService) UploadLeaveAttachment(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	if f.UploadFn != nil {
		return f.UploadFn(employeeID, filename)
	}
	return fmt.Sprintf("leave/%s/%s", employeeID, filename), nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeFileService) GetFileURL(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	return "http://localhost:8080/uploads/" + path, nil
}
