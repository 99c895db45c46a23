package classroom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func student(name string, id int, grades ...int64) *Student {
	s := NewStudent(name, id)
	for _, g := range grades {
		s.AddGrade(decimal.NewFromInt(g))
	}
	return s
}

func TestStudent_Average(t *testing.T) {
	assert.True(t, student("Alice", 101, 85, 90).Average().Equal(decimal.RequireFromString("87.5")))
	assert.True(t, student("Nobody", 1).Average().IsZero())
	assert.Equal(t, "Student ID: 1, Name: Nobody, Average Grade: 0.00", student("Nobody", 1).Info())
}

func TestStudent_AverageRepeatingDecimal(t *testing.T) {
	s := student("Dan", 7, 90, 90, 91)
	assert.Equal(t, "90.33", s.Average().StringFixed(2))
}

func TestClassroom_FindListRemove(t *testing.T) {
	c := New()
	c.Add(student("Alice", 101, 85, 90))
	c.Add(student("Bob", 102, 78, 82))
	c.Add(student("Charlie", 103, 95, 88))

	info, err := c.Find(101)
	require.NoError(t, err)
	assert.Equal(t, "Student ID: 101, Name: Alice, Average Grade: 87.50", info)

	want := []string{
		"Student ID: 101, Name: Alice, Average Grade: 87.50",
		"Student ID: 102, Name: Bob, Average Grade: 80.00",
		"Student ID: 103, Name: Charlie, Average Grade: 91.50",
	}
	if diff := cmp.Diff(want, c.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, c.Remove(102))
	if diff := cmp.Diff([]string{want[0], want[2]}, c.List()); diff != "" {
		t.Fatalf("List after remove mismatch (-want +got):\n%s", diff)
	}

	_, err = c.Find(102)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
