package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriority_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Priority
		wantErr bool
	}{
		{name: "high", input: `1`, want: PriorityHigh},
		{name: "med", input: `2`, want: PriorityMed},
		{name: "low", input: `3`, want: PriorityLow},
		{name: "zero", input: `0`, wantErr: true},
		{name: "out of range", input: `4`, wantErr: true},
		{name: "enum name", input: `"HIGH"`, wantErr: true},
		{name: "numeric string", input: `"2"`, wantErr: true},
		{name: "float", input: `2.5`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Priority
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPriority_Mapping(t *testing.T) {
	assert.Equal(t, "HIGH", PriorityHigh.String())
	assert.Equal(t, "MED", PriorityMed.String())
	assert.Equal(t, "LOW", PriorityLow.String())
	assert.Equal(t, "Priority(9)", Priority(9).String())

	for _, v := range []int{1, 2, 3} {
		p, err := PriorityFromInt(v)
		require.NoError(t, err)
		assert.Equal(t, v, p.Int())
	}

	_, err := PriorityFromInt(7)
	assert.ErrorIs(t, err, ErrInvalidPriority)

	data, err := json.Marshal(PriorityMed)
	require.NoError(t, err)
	assert.JSONEq(t, `2`, string(data))
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "naive seconds", input: "2025-03-10T10:00:00", want: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)},
		{name: "naive minutes", input: "2025-03-10T10:00", want: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)},
		{name: "space separator", input: "2025-03-10 10:00:00", want: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)},
		{name: "fraction", input: "2025-03-10T10:00:00.123456", want: time.Date(2025, 3, 10, 10, 0, 0, 123456000, time.UTC)},
		{name: "utc designator", input: "2025-03-10T10:00:00Z", want: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)},
		{name: "offset converted to utc", input: "2025-03-10T12:00:00+02:00", want: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseDateTime("tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestDateTime_JSONRoundTrip(t *testing.T) {
	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-10T10:00:00"`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-10T10:00:00"`, string(out))

	err = json.Unmarshal([]byte(`20250310`), &d)
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestDateTime_String(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "whole seconds", in: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), want: "2025-03-10T10:00:00"},
		{name: "trailing zeros kept", in: time.Date(2025, 3, 10, 10, 0, 0, 500_000_000, time.UTC), want: "2025-03-10T10:00:00.500000"},
		{name: "microseconds", in: time.Date(2025, 3, 10, 10, 0, 0, 123_456_000, time.UTC), want: "2025-03-10T10:00:00.123456"},
		{name: "nanoseconds truncated", in: time.Date(2025, 3, 10, 10, 0, 0, 999, time.UTC), want: "2025-03-10T10:00:00"},
		{name: "zone dropped", in: time.Date(2025, 3, 10, 12, 0, 0, 0, time.FixedZone("EET", 2*3600)), want: "2025-03-10T10:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDateTime(tt.in).String())
		})
	}

	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-10T10:00:00.500"`), &d))
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-10T10:00:00.500000"`, string(out))
}

func TestTaskPayload_UnmarshalJSON(t *testing.T) {
	t.Run("completed absent", func(t *testing.T) {
		var p TaskPayload
		require.NoError(t, json.Unmarshal([]byte(`{"title":"a","priority":1,"due_date":"2025-03-10T10:00:00"}`), &p))
		require.NotNil(t, p.Title)
		assert.Equal(t, "a", *p.Title)
		require.NotNil(t, p.Priority)
		assert.Equal(t, PriorityHigh, *p.Priority)
		require.NotNil(t, p.DueDate)
		assert.Nil(t, p.Completed)
	})

	t.Run("completed set", func(t *testing.T) {
		var p TaskPayload
		require.NoError(t, json.Unmarshal([]byte(`{"completed":true}`), &p))
		require.NotNil(t, p.Completed)
		assert.True(t, *p.Completed)
	})

	t.Run("completed null", func(t *testing.T) {
		var p TaskPayload
		err := json.Unmarshal([]byte(`{"title":"a","completed":null}`), &p)
		assert.ErrorIs(t, err, ErrNullField)
	})

	t.Run("wrong types name the field", func(t *testing.T) {
		var p TaskPayload
		err := json.Unmarshal([]byte(`{"completed":"yes"}`), &p)
		var typeErr *json.UnmarshalTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "completed", typeErr.Field)

		err = json.Unmarshal([]byte(`{"title":12}`), &p)
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "title", typeErr.Field)
	})

	t.Run("nested value errors kept", func(t *testing.T) {
		var p TaskPayload
		err := json.Unmarshal([]byte(`{"priority":"HIGH"}`), &p)
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})
}

func TestTaskPayload_Record(t *testing.T) {
	title := "Get Tea"
	desc := "green"
	prio := PriorityLow
	due := NewDateTime(time.Date(2025, 3, 10, 10, 0, 0, 999, time.UTC))
	done := true

	rec := TaskPayload{
		Title:       &title,
		Description: &desc,
		Priority:    &prio,
		DueDate:     &due,
		Completed:   &done,
	}.Record(7)

	assert.Equal(t, int64(7), rec.ID)
	assert.Equal(t, "Get Tea", rec.Title)
	require.NotNil(t, rec.Description)
	assert.Equal(t, "green", *rec.Description)
	assert.Equal(t, 3, rec.Priority)
	assert.True(t, rec.DueDate.Equal(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)))
	assert.True(t, rec.Completed)

	desc = "changed"
	assert.Equal(t, "green", *rec.Description, "record must not alias the payload")
}

func TestTaskPayload_RecordDefaults(t *testing.T) {
	title := "Defaults"
	prio := PriorityHigh
	due := NewDateTime(time.Now())

	rec := TaskPayload{Title: &title, Priority: &prio, DueDate: &due}.Record(0)

	assert.Nil(t, rec.Description)
	assert.False(t, rec.Completed)
}

func TestNewTaskResponse(t *testing.T) {
	task := Task{
		ID:       3,
		Title:    "Get Tea",
		Priority: 2,
		DueDate:  time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(NewTaskResponse(task))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 3,
		"title": "Get Tea",
		"description": null,
		"priority": 2,
		"due_date": "2025-03-10T10:00:00",
		"completed": false
	}`, string(data))

	assert.Equal(t, []TaskResponse{}, NewTaskResponses(nil))
}
