// Package classroom 學生成績簿
package classroom

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JoeShih716/go-account-desk/internal/collection"
)

// ErrStudentNotFound 找不到學生
var ErrStudentNotFound = errors.New("student not found")

// Student 學生與其成績
type Student struct {
	id     int
	name   string
	grades []decimal.Decimal
}

func NewStudent(name string, id int) *Student {
	return &Student{id: id, name: name}
}

func (s *Student) ID() int {
	return s.id
}

func (s *Student) Name() string {
	return s.name
}

// AddGrade 新增一筆成績
func (s *Student) AddGrade(grade decimal.Decimal) {
	s.grades = append(s.grades, grade)
}

// Average 平均成績，沒有成績時為 0
func (s *Student) Average() decimal.Decimal {
	if len(s.grades) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(s.grades[0], s.grades[1:]...).Div(decimal.NewFromInt(int64(len(s.grades))))
}

// Info 格式: Student ID: <id>, Name: <name>, Average Grade: <avg>
func (s *Student) Info() string {
	return fmt.Sprintf("Student ID: %d, Name: %s, Average Grade: %s", s.id, s.name, s.Average().StringFixed(2))
}

// Classroom 依加入順序保存學生
type Classroom struct {
	students *collection.Collection[int, *Student]
}

func New() *Classroom {
	return &Classroom{
		students: collection.New(func(s *Student) int { return s.id }),
	}
}

func (c *Classroom) Add(student *Student) {
	c.students.Add(student)
}

// Remove 依學號移除，回傳移除數量
func (c *Classroom) Remove(id int) int {
	return c.students.Remove(id)
}

// Find 依學號搜尋，回傳學生 Info
func (c *Classroom) Find(id int) (string, error) {
	s, ok := c.students.Find(id)
	if !ok {
		return "", ErrStudentNotFound
	}
	return s.Info(), nil
}

// List 所有學生的 Info
func (c *Classroom) List() []string {
	students := c.students.List()
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.Info())
	}
	return out
}
