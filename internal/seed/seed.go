package seed

import (
	"context"

	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/app/repositories"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
)

// SeedRoles ensures the two fixed role rows exist. Safe to run on every
// startup.
func SeedRoles(ctx context.Context, roleRepo *repositories.RoleRepository) error {
	roles := []struct {
		id   int64
		name string
	}{
		{models.RoleTeacherID, string(models.RoleTeacher)},
		{models.RoleStudentID, string(models.RoleStudent)},
	}

	for _, role := range roles {
		if err := roleRepo.Ensure(ctx, role.id, role.name); err != nil {
			return err
		}
	}

	logger.Info().Msg("Role rows seeded")
	return nil
}
