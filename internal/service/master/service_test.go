package master

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/holiday"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/workweek"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
)

type fakeHolidayRepo struct {
	rows map[string]holiday.Holiday
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{rows: make(map[string]holiday.Holiday)}
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	h.ID = fmt.Sprintf("hol-%d", len(f.rows)+1)
	f.rows[h.ID] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(_ context.Context, id string) (holiday.Holiday, error) {
	h, ok := f.rows[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (f *fakeHolidayRepo) ListByYear(_ context.Context, year int) ([]holiday.Holiday, error) {
	out := make([]holiday.Holiday, 0)
	for _, h := range f.rows {
		if h.Year == year {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Update(_ context.Context, req holiday.UpdateHolidayRequest) error {
	h, ok := f.rows[req.ID]
	if !ok {
		return holiday.ErrHolidayNotFound
	}
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}
	f.rows[req.ID] = h
	return nil
}

func (f *fakeHolidayRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeWorkWeekRepo struct {
	rows map[string]workweek.WorkWeek
}

func newFakeWorkWeekRepo() *fakeWorkWeekRepo {
	return &fakeWorkWeekRepo{rows: make(map[string]workweek.WorkWeek)}
}

func (f *fakeWorkWeekRepo) Create(_ context.Context, w workweek.WorkWeek) (workweek.WorkWeek, error) {
	if w.IsActive {
		for id, existing := range f.rows {
			existing.IsActive = false
			f.rows[id] = existing
		}
	}
	w.ID = fmt.Sprintf("ww-%d", len(f.rows)+1)
	f.rows[w.ID] = w
	return w, nil
}

func (f *fakeWorkWeekRepo) GetByID(_ context.Context, id string) (workweek.WorkWeek, error) {
	w, ok := f.rows[id]
	if !ok {
		return workweek.WorkWeek{}, workweek.ErrWorkWeekNotFound
	}
	return w, nil
}

func (f *fakeWorkWeekRepo) List(_ context.Context) ([]workweek.WorkWeek, error) {
	out := make([]workweek.WorkWeek, 0, len(f.rows))
	for _, w := range f.rows {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWorkWeekRepo) Update(_ context.Context, req workweek.UpdateWorkWeekRequest) error {
	w, ok := f.rows[req.ID]
	if !ok {
		return workweek.ErrWorkWeekNotFound
	}
	if req.IsActive != nil {
		if *req.IsActive {
			for id, existing := range f.rows {
				existing.IsActive = false
				f.rows[id] = existing
			}
		}
		w.IsActive = *req.IsActive
	}
	if req.Name != nil {
		w.Name = *req.Name
	}
	f.rows[req.ID] = w
	return nil
}

func (f *fakeWorkWeekRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return workweek.ErrWorkWeekNotFound
	}
	delete(f.rows, id)
	return nil
}

func newCalendarService() (*Service, *fakeHolidayRepo, *fakeWorkWeekRepo) {
	holidays := newFakeHolidayRepo()
	weeks := newFakeWorkWeekRepo()
	return &Service{holidayRepo: holidays, workWeekRepo: weeks}, holidays, weeks
}

func TestCreateHoliday_DerivesYearAndDefaultsType(t *testing.T) {
	svc, _, _ := newCalendarService()

	created, err := svc.CreateHoliday(context.Background(), holiday.CreateHolidayRequest{
		Name:      "Founders Day",
		StartDate: "2024-08-15",
		EndDate:   "2024-08-16",
	})

	require.NoError(t, err)
	assert.Equal(t, 2024, created.Year)
	assert.Equal(t, holiday.TypeCompany, created.Type)
	assert.True(t, created.IsActive)
}

func TestCreateHoliday_EndBeforeStartRejected(t *testing.T) {
	svc, holidays, _ := newCalendarService()

	_, err := svc.CreateHoliday(context.Background(), holiday.CreateHolidayRequest{
		Name:      "Backwards",
		StartDate: "2024-08-16",
		EndDate:   "2024-08-15",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "end_date")
	assert.Empty(t, holidays.rows)
}

func TestCreateHoliday_UnknownTypeRejected(t *testing.T) {
	svc, _, _ := newCalendarService()

	_, err := svc.CreateHoliday(context.Background(), holiday.CreateHolidayRequest{
		Name:      "Ambiguous",
		StartDate: "2024-08-15",
		EndDate:   "2024-08-15",
		Type:      "lunar",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "type")
}

func TestListHolidays_FiltersByYear(t *testing.T) {
	svc, _, _ := newCalendarService()

	for _, startDate := range []string{"2024-01-26", "2024-12-25", "2025-01-26"} {
		_, err := svc.CreateHoliday(context.Background(), holiday.CreateHolidayRequest{
			Name:      "Holiday",
			StartDate: startDate,
			EndDate:   startDate,
		})
		require.NoError(t, err)
	}

	listed, err := svc.ListHolidays(context.Background(), 2024)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestCreateWorkWeek_RequiresAWorkingDay(t *testing.T) {
	svc, _, weeks := newCalendarService()

	_, err := svc.CreateWorkWeek(context.Background(), workweek.CreateWorkWeekRequest{
		Name: "No Work At All",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Empty(t, weeks.rows)
}

func TestCreateWorkWeek_ActivationDeactivatesOthers(t *testing.T) {
	svc, _, weeks := newCalendarService()

	first, err := svc.CreateWorkWeek(context.Background(), workweek.CreateWorkWeekRequest{
		Name:   "Mon-Fri",
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
		IsActive: true,
	})
	require.NoError(t, err)

	second, err := svc.CreateWorkWeek(context.Background(), workweek.CreateWorkWeekRequest{
		Name:   "Mon-Sat",
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true, Saturday: true,
		IsActive: true,
	})
	require.NoError(t, err)

	assert.False(t, weeks.rows[first.ID].IsActive)
	assert.True(t, weeks.rows[second.ID].IsActive)
}

func TestWorkWeek_WorksOn(t *testing.T) {
	week := workweek.WorkWeek{
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
	}

	assert.True(t, week.WorksOn(time.Monday))
	assert.True(t, week.WorksOn(time.Friday))
	assert.False(t, week.WorksOn(time.Saturday))
	assert.False(t, week.WorksOn(time.Sunday))
}
