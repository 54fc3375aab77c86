package dto

// CreateCourseRequest represents a new course submission
type CreateCourseRequest struct {
	Title string `json:"title" form:"title" binding:"required,max=255"`
}

// CourseResponse represents a course from the owning teacher's side
type CourseResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	TeacherID    int64  `json:"teacherId"`
	StudentCount int64  `json:"studentCount"`
}

// EnrolledCourseResponse represents a course from the enrolled student's side
type EnrolledCourseResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	TeacherName string `json:"teacherName"`
}

// TeacherDashboardResponse is the teacher index payload
type TeacherDashboardResponse struct {
	Teacher ProfileResponse  `json:"teacher"`
	Courses []CourseResponse `json:"courses"`
}

// StudentDashboardResponse is the student index payload
type StudentDashboardResponse struct {
	Student ProfileResponse          `json:"student"`
	Courses []EnrolledCourseResponse `json:"courses"`
}

// ProfileResponse represents a teacher or student profile row
type ProfileResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"userId"`
}
