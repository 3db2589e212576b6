package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/elitecuts-web/internal/backend"
)

func loadedDashboard(t *testing.T, api *fakeAPI, policy MutationPolicy) *Dashboard {
	t.Helper()
	d := NewDashboard(api, policy, nil, nil)
	require.NoError(t, d.Refresh(context.Background(), "tok"))
	return d
}

func TestDashboardRefreshLoadsAllLists(t *testing.T) {
	api := newFakeAPI()
	d := loadedDashboard(t, api, PolicyOptimistic)

	data := d.Data()
	assert.Len(t, data.Active, 2)
	assert.Len(t, data.Past, 1)
	assert.Len(t, data.Cancelled, 1)
	assert.Len(t, data.WorkingHours, 1)
	assert.Equal(t, 4, api.fetchCalls())
	assert.True(t, d.Loaded())
	for _, tok := range api.seenTokens {
		assert.Equal(t, "tok", tok)
	}
}

func TestDashboardRefreshPartialFailureKeepsPrevious(t *testing.T) {
	api := newFakeAPI()
	d := loadedDashboard(t, api, PolicyOptimistic)

	api.mu.Lock()
	api.listErr[backend.PartitionPast] = errTransport
	api.lists[backend.PartitionActive] = api.lists[backend.PartitionActive][:1]
	api.hoursErr = &backend.APIError{StatusCode: 500}
	api.mu.Unlock()

	err := d.Refresh(context.Background(), "tok")
	require.Error(t, err)

	data := d.Data()
	assert.Len(t, data.Active, 1, "successful fetch applied")
	assert.Len(t, data.Past, 1, "failed fetch keeps previous value")
	assert.Len(t, data.WorkingHours, 1)
}

func TestDashboardRefreshFailureOnFirstLoadLeavesEmpty(t *testing.T) {
	api := newFakeAPI()
	api.listErr[backend.PartitionActive] = errTransport
	d := NewDashboard(api, PolicyOptimistic, nil, nil)

	require.Error(t, d.Refresh(context.Background(), "tok"))
	data := d.Data()
	assert.NotNil(t, data.Active)
	assert.Empty(t, data.Active)
	assert.Len(t, data.Past, 1)
}

func TestDashboardRequiresToken(t *testing.T) {
	d := NewDashboard(newFakeAPI(), PolicyOptimistic, nil, nil)
	assert.ErrorIs(t, d.Refresh(context.Background(), ""), ErrNotAuthenticated)
	assert.ErrorIs(t, d.Cancel(context.Background(), "", 7), ErrNotAuthenticated)
	_, err := d.AddWorkingHours(context.Background(), "", NewWorkingHoursForm())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestDashboardCancelMovesRecordWithoutRefetch(t *testing.T) {
	api := newFakeAPI()
	d := loadedDashboard(t, api, PolicyOptimistic)
	before := d.Data()
	callsBefore := api.fetchCalls()

	require.NoError(t, d.Cancel(context.Background(), "tok", 7))

	assert.Equal(t, callsBefore, api.fetchCalls(), "no refetch")
	assert.Equal(t, []int{7}, api.cancelled)

	data := d.Data()
	require.Len(t, data.Active, 1)
	assert.Equal(t, 5, data.Active[0].ID)

	require.Len(t, data.Cancelled, 2)
	want := before.Active[1]
	want.Status = "cancelled"
	assert.Equal(t, want, data.Cancelled[0])
	assert.Equal(t, before.Cancelled[0], data.Cancelled[1])
}

func TestDashboardCancelUnknownIDOnlyFiltersActive(t *testing.T) {
	api := newFakeAPI()
	d := loadedDashboard(t, api, PolicyOptimistic)
	require.NoError(t, d.Cancel(context.Background(), "tok", 99))

	data := d.Data()
	assert.Len(t, data.Active, 2)
	assert.Len(t, data.Cancelled, 1)
}

func TestDashboardCancelRefetchPolicy(t *testing.T) {
	api := newFakeAPI()
	d := loadedDashboard(t, api, PolicyRefetch)
	callsBefore := api.fetchCalls()

	api.mu.Lock()
	api.lists[backend.PartitionActive] = api.lists[backend.PartitionActive][:1]
	api.lists[backend.PartitionCancelled] = append(api.lists[backend.PartitionCancelled], backend.Reservation{ID: 7, Status: "cancelled"})
	api.mu.Unlock()

	require.NoError(t, d.Cancel(context.Background(), "tok", 7))
	assert.Equal(t, callsBefore+4, api.fetchCalls())
	data := d.Data()
	assert.Len(t, data.Active, 1)
	assert.Len(t, data.Cancelled, 2)
}

func TestDashboardCancelFailureLeavesListsUnchanged(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"detail", &backend.APIError{StatusCode: 404, Detail: "Reservation not found"}, "Reservation not found"},
		{"no detail", &backend.APIError{StatusCode: 500}, MsgCancelFailed},
		{"transport", errTransport, MsgConnectionError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := newFakeAPI()
			d := loadedDashboard(t, api, PolicyOptimistic)
			before := d.Data()
			api.cancelErr = tc.err

			err := d.Cancel(context.Background(), "tok", 7)
			var me *MutationError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, tc.want, me.Message)
			assert.Equal(t, before, d.Data())
		})
	}
}

func TestDashboardAddWorkingHoursRefetchesEverything(t *testing.T) {
	api := newFakeAPI()
	api.createMsg = "Working hours added. 1 reservation(s) cancelled."
	d := loadedDashboard(t, api, PolicyOptimistic)
	callsBefore := api.fetchCalls()

	api.mu.Lock()
	api.lists[backend.PartitionActive] = api.lists[backend.PartitionActive][1:]
	api.hours = append(api.hours, backend.WorkingHours{ID: 2, Date: "2025-03-10", StartTime: "09:00", EndTime: "18:30"})
	api.mu.Unlock()

	msg, err := d.AddWorkingHours(context.Background(), "tok", backend.WorkingHoursRequest{Date: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, "Working hours added. 1 reservation(s) cancelled.", msg)
	assert.Equal(t, callsBefore+4, api.fetchCalls())

	require.Len(t, api.created, 1)
	assert.Equal(t, backend.WorkingHoursRequest{Date: "2025-03-10", StartTime: "09:00", EndTime: "18:30"}, api.created[0])

	data := d.Data()
	assert.Len(t, data.Active, 1)
	assert.Len(t, data.WorkingHours, 2)
	assert.Equal(t, NewWorkingHoursForm(), d.WorkingHoursForm())
}

func TestDashboardAddWorkingHoursFailure(t *testing.T) {
	api := newFakeAPI()
	d := loadedDashboard(t, api, PolicyOptimistic)
	callsBefore := api.fetchCalls()
	api.createErr = &backend.APIError{StatusCode: 400}

	req := backend.WorkingHoursRequest{Date: "2025-03-10", StartTime: "10:00", EndTime: "12:00"}
	_, err := d.AddWorkingHours(context.Background(), "tok", req)
	var me *MutationError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, MsgAddHoursFailed, me.Message)
	assert.Equal(t, callsBefore, api.fetchCalls())
	assert.Equal(t, req, d.WorkingHoursForm(), "form keeps the rejected values")
}

func TestDataCounts(t *testing.T) {
	api := newFakeAPI()
	data := loadedDashboard(t, api, PolicyOptimistic).Data()
	assert.Equal(t, 2, data.Count(TabActive))
	assert.Equal(t, 1, data.Count(TabPast))
	assert.Equal(t, 1, data.Count(TabCancelled))
	assert.Equal(t, 1, data.Count(TabWorkingHours))
	assert.Nil(t, data.Reservations(TabWorkingHours))
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, PolicyRefetch, ParsePolicy("refetch"))
	assert.Equal(t, PolicyOptimistic, ParsePolicy("optimistic"))
	assert.Equal(t, PolicyOptimistic, ParsePolicy("bogus"))
}
