package services

import (
	"context"

	"github.com/schoolhub/schoolhub/internal/app/events"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
)

// fakeUserRepo is an in-memory IUserRepository
type fakeUserRepo struct {
	users    map[int64]*models.User
	teachers map[int64]*models.Teacher // keyed by user id
	students map[int64]*models.Student // keyed by user id
	nextID   int64

	// createErr forces CreateUserWithProfile to fail, standing in for a
	// unique constraint firing under a concurrent registration
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[int64]*models.User),
		teachers: make(map[int64]*models.Teacher),
		students: make(map[int64]*models.Student),
	}
}

func (f *fakeUserRepo) CreateUserWithProfile(_ context.Context, u *models.User, role models.Role) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}

	for _, existing := range f.users {
		if existing.Email == u.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}

	f.nextID++
	id := f.nextID
	stored := *u
	stored.ID = id
	f.users[id] = &stored

	switch role {
	case models.RoleTeacher:
		f.teachers[id] = &models.Teacher{ID: id, Name: u.Name, UserID: id}
	case models.RoleStudent:
		f.students[id] = &models.Student{ID: id, Name: u.Name, UserID: id}
	default:
		delete(f.users, id)
		return 0, apperrors.ErrUnsupportedRole
	}

	return id, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) GetTeacherByUserID(_ context.Context, userID int64) (*models.Teacher, error) {
	t, ok := f.teachers[userID]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return t, nil
}

func (f *fakeUserRepo) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s, ok := f.students[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

// fakeRoleRepo is an in-memory IRoleRepository seeded with the two roles
type fakeRoleRepo struct {
	roles map[int64]string
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[int64]string{
		models.RoleTeacherID: string(models.RoleTeacher),
		models.RoleStudentID: string(models.RoleStudent),
	}}
}

func (f *fakeRoleRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.roles[id]
	return ok, nil
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id int64) (*models.RoleRecord, error) {
	name, ok := f.roles[id]
	if !ok {
		return nil, apperrors.ErrRoleNotFound
	}
	return &models.RoleRecord{ID: id, Name: name}, nil
}

// fakeTokenRepo is an in-memory ITokenRepository
type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
	nextID int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenRepo) CreateToken(_ context.Context, token *models.RefreshToken) error {
	f.nextID++
	token.ID = f.nextID
	stored := *token
	f.tokens[token.Token] = &stored
	return nil
}

func (f *fakeTokenRepo) GetTokenByValue(_ context.Context, tokenValue string) (*models.RefreshToken, error) {
	t, ok := f.tokens[tokenValue]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	if t.IsRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if t.Expired() {
		return nil, apperrors.ErrTokenExpired
	}
	return t, nil
}

func (f *fakeTokenRepo) RevokeToken(_ context.Context, tokenValue string) error {
	t, ok := f.tokens[tokenValue]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.IsRevoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, t := range f.tokens {
		if t.UserID == userID {
			t.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) CleanupExpiredTokens(_ context.Context) (int64, error) {
	var removed int64
	for value, t := range f.tokens {
		if t.IsRevoked || t.Expired() {
			delete(f.tokens, value)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeTokenRepo) activeTokensFor(userID int64) int {
	count := 0
	for _, t := range f.tokens {
		if t.UserID == userID && !t.IsRevoked {
			count++
		}
	}
	return count
}

// fakeCourseRepo is an in-memory ICourseRepository
type fakeCourseRepo struct {
	courses     map[int64]*models.Course
	enrollments map[[2]int64]bool // [studentID, courseID]
	nextID      int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:     make(map[int64]*models.Course),
		enrollments: make(map[[2]int64]bool),
	}
}

func (f *fakeCourseRepo) CreateCourse(_ context.Context, course *models.Course) (int64, error) {
	f.nextID++
	stored := *course
	stored.ID = f.nextID
	f.courses[f.nextID] = &stored
	return f.nextID, nil
}

func (f *fakeCourseRepo) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeCourseRepo) ListByTeacherID(_ context.Context, teacherID int64) ([]models.TaughtCourse, error) {
	var out []models.TaughtCourse
	for _, c := range f.courses {
		if c.TeacherID != teacherID {
			continue
		}
		var count int64
		for key := range f.enrollments {
			if key[1] == c.ID {
				count++
			}
		}
		out = append(out, models.TaughtCourse{Course: *c, StudentCount: count})
	}
	return out, nil
}

func (f *fakeCourseRepo) Enroll(_ context.Context, studentID, courseID int64) error {
	key := [2]int64{studentID, courseID}
	if f.enrollments[key] {
		return apperrors.ErrAlreadyEnrolled
	}
	f.enrollments[key] = true
	return nil
}

func (f *fakeCourseRepo) ListByStudentID(_ context.Context, studentID int64) ([]models.EnrolledCourse, error) {
	var out []models.EnrolledCourse
	for key := range f.enrollments {
		if key[0] != studentID {
			continue
		}
		c := f.courses[key[1]]
		out = append(out, models.EnrolledCourse{Course: *c, TeacherName: "Teacher"})
	}
	return out, nil
}

// fakePublisher records published registration events
type fakePublisher struct {
	published []events.UserRegistered
	err       error
}

func (f *fakePublisher) PublishUserRegistered(event events.UserRegistered) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}
