package postgres

import "disc-quiz-service/internal/infra/postgres/migrations"

func migrationNames() []string {
	sorted := migrations.Migrations.Sorted()
	names := make([]string, 0, len(sorted))
	for _, m := range sorted {
		names = append(names, m.Name)
	}
	return names
}
