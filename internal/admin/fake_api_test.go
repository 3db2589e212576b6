package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/wolfman30/elitecuts-web/internal/backend"
)

type fakeAPI struct {
	mu         sync.Mutex
	lists      map[backend.Partition][]backend.Reservation
	hours      []backend.WorkingHours
	listErr    map[backend.Partition]error
	hoursErr   error
	cancelErr  error
	createErr  error
	createMsg  string
	listCalls  int
	hoursCalls int
	cancelled  []int
	created    []backend.WorkingHoursRequest
	loginErr   error
	loginToken string
	seenTokens []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		lists: map[backend.Partition][]backend.Reservation{
			backend.PartitionActive: {
				{ID: 5, Name: "Alice Smith", Email: "alice@gmail.com", Date: "2025-03-10T09:00:00", Time: "9:00 AM", Service: "Beard Trim", Status: "active"},
				{ID: 7, Name: "Bob Jones", Email: "bob@yahoo.com", Phone: "(555) 123 45 67", Date: "2025-03-11T14:30:00", Time: "2:30 PM", Service: "Classic Haircut", Status: "active"},
			},
			backend.PartitionPast: {
				{ID: 1, Name: "Carol", Email: "carol@outlook.com", Date: "2025-02-01T10:00:00", Status: "active"},
			},
			backend.PartitionCancelled: {
				{ID: 2, Name: "Dan", Email: "dan@gmail.com", Date: "2025-02-02T11:00:00", Status: "cancelled"},
			},
		},
		hours:     []backend.WorkingHours{{ID: 1, Date: "2025-03-12", StartTime: "09:00", EndTime: "12:00"}},
		listErr:   map[backend.Partition]error{},
		createMsg: "Working hours added",
	}
}

func (f *fakeAPI) ListReservations(_ context.Context, token string, p backend.Partition) ([]backend.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.seenTokens = append(f.seenTokens, token)
	if err := f.listErr[p]; err != nil {
		return nil, err
	}
	return append([]backend.Reservation{}, f.lists[p]...), nil
}

func (f *fakeAPI) CancelReservation(_ context.Context, _ string, id int) (*backend.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	return &backend.MessageResponse{Message: "Reservation cancelled"}, nil
}

func (f *fakeAPI) ListWorkingHours(_ context.Context, _ string) ([]backend.WorkingHours, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hoursCalls++
	if f.hoursErr != nil {
		return nil, f.hoursErr
	}
	return append([]backend.WorkingHours{}, f.hours...), nil
}

func (f *fakeAPI) CreateWorkingHours(_ context.Context, _ string, req backend.WorkingHoursRequest) (*backend.MessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	return &backend.MessageResponse{Message: f.createMsg}, nil
}

func (f *fakeAPI) Login(_ context.Context, _, password string) (*backend.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if password != "secret" {
		return nil, &backend.APIError{StatusCode: 401, Detail: "Incorrect username or password"}
	}
	return &backend.LoginResponse{AccessToken: f.loginToken}, nil
}

func (f *fakeAPI) fetchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls + f.hoursCalls
}

var errTransport = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")
