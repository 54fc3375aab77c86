package models

// Course represents a course owned by a teacher.
type Course struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	TeacherID int64  `json:"teacherId" db:"teacher_id"`

	// Relations (populated when needed)
	Teacher  *Teacher   `json:"teacher,omitempty"`
	Students []*Student `json:"students,omitempty"`
}

// Enrollment is a row of the 'student_course' join table linking a
// student to a course. The pair is the primary key; there are no extra
// attributes.
type Enrollment struct {
	StudentID int64 `json:"studentId" db:"student_id"`
	CourseID  int64 `json:"courseId" db:"course_id"`
}

// TaughtCourse is a course listed from the owning teacher's side,
// carrying the enrollment count from the join table.
type TaughtCourse struct {
	Course
	StudentCount int64 `json:"studentCount" db:"student_count"`
}

// EnrolledCourse is a course listed from the enrolled student's side,
// carrying the owning teacher's name.
type EnrolledCourse struct {
	Course
	TeacherName string `json:"teacherName" db:"teacher_name"`
}
